package types

// Color is a token color on the wire.
type Color string

const (
	ColorWhite Color = "white"
	ColorBlack Color = "black"
	ColorRed   Color = "red"
	ColorGreen Color = "green"
	ColorBlue  Color = "blue"
	ColorGold  Color = "gold"
)

// ColorOrder is the canonical display order for the full token set.
var ColorOrder = []Color{ColorWhite, ColorBlack, ColorRed, ColorGreen, ColorBlue, ColorGold}

// CardColors is the five-color set cards can cost and discount.
// Gold is a wildcard and never appears on a card.
var CardColors = []Color{ColorWhite, ColorBlack, ColorRed, ColorGreen, ColorBlue}

// IsValidColor reports whether c is one of the six known token colors.
func IsValidColor(c Color) bool {
	for _, known := range ColorOrder {
		if c == known {
			return true
		}
	}
	return false
}

// Price maps colors to non-negative token amounts. Server payloads may
// carry a subset of colors; absent colors mean zero.
type Price map[Color]int

// Wallet holds a player's (or the bank's) token counts. All six colors
// are always present on the wire.
type Wallet struct {
	White int `json:"white"`
	Black int `json:"black"`
	Red   int `json:"red"`
	Green int `json:"green"`
	Blue  int `json:"blue"`
	Gold  int `json:"gold"`
}

// Get returns the token count for a color. Unknown colors count as zero.
func (w Wallet) Get(c Color) int {
	switch c {
	case ColorWhite:
		return w.White
	case ColorBlack:
		return w.Black
	case ColorRed:
		return w.Red
	case ColorGreen:
		return w.Green
	case ColorBlue:
		return w.Blue
	case ColorGold:
		return w.Gold
	}
	return 0
}

// AsPrice converts the wallet to a Price over all six colors.
func (w Wallet) AsPrice() Price {
	return Price{
		ColorWhite: w.White,
		ColorBlack: w.Black,
		ColorRed:   w.Red,
		ColorGreen: w.Green,
		ColorBlue:  w.Blue,
		ColorGold:  w.Gold,
	}
}

// GameCard is an immutable catalog entry. Cards never change once
// received; only their location (deck slot, reservation, development)
// does.
type GameCard struct {
	ID       int    `json:"id"`
	Art      string `json:"art"`
	Discount Color  `json:"discount"`
	Price    Price  `json:"price"`
	Score    int    `json:"score"`
	Tier     string `json:"tier"`
}

// Noble is a bonus objective claimed automatically once a player's
// discounts meet its trigger thresholds.
type Noble struct {
	Art     string `json:"art"`
	Score   int    `json:"score"`
	Trigger Price  `json:"trigger"`
}

// Deck is one tier's visible card window plus the hidden remainder count.
type Deck struct {
	Visible     []int `json:"visible"`
	HiddenCount int   `json:"hidden_count"`
}

// Player is one seat in the room. AttainedCollection is the claimed
// noble's index, or nil if none has been claimed.
type Player struct {
	Name               string `json:"name"`
	AttainedCollection *int   `json:"attained_collection"`
	Developments       []int  `json:"developments"`
	Reservations       []int  `json:"reservations"`
	Wallet             Wallet `json:"wallet"`
}

// Board is the `game` aggregate of a room: everything that changes
// turn to turn. The server always sends it whole.
type Board struct {
	Bank              Wallet          `json:"bank"`
	Began             bool            `json:"began"`
	CollectionsInPlay []int           `json:"collections_in_play"`
	Decks             map[string]Deck `json:"decks"`
	Players           PlayerTable     `json:"players"`
	Turn              int             `json:"turn"`
}

// ActivePlayer returns the player whose turn it is: turn mod seat
// count, over the seats in the order they joined.
func (b *Board) ActivePlayer() (Player, bool) {
	if b.Players.Len() == 0 {
		return Player{}, false
	}
	name := b.Players.Order[b.Turn%b.Players.Len()]
	return b.Players.Get(name)
}

// GameState is the full client-side snapshot: the append-only card and
// noble catalogs plus the live board.
type GameState struct {
	Cards       map[int]GameCard `json:"cards"`
	Collections map[int]Noble    `json:"collections"`
	Game        Board            `json:"game"`
}

// NewGameState returns an empty placeholder snapshot for connection start.
func NewGameState() *GameState {
	return &GameState{
		Cards:       make(map[int]GameCard),
		Collections: make(map[int]Noble),
	}
}
