package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlayerTable_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name      string
		payload   string
		wantOrder []string
		wantErr   bool
	}{
		{
			name: "preserves seating order",
			payload: `{
				"Dana": {"name": "Dana", "attained_collection": null, "developments": [], "reservations": [], "wallet": {"white":0,"black":0,"red":0,"green":0,"blue":0,"gold":0}},
				"Alice": {"name": "Alice", "attained_collection": null, "developments": [1], "reservations": [], "wallet": {"white":2,"black":0,"red":0,"green":0,"blue":0,"gold":1}},
				"Bob": {"name": "Bob", "attained_collection": 2, "developments": [], "reservations": [4,5], "wallet": {"white":0,"black":0,"red":0,"green":0,"blue":0,"gold":0}}
			}`,
			wantOrder: []string{"Dana", "Alice", "Bob"},
		},
		{
			name:      "empty object",
			payload:   `{}`,
			wantOrder: nil,
		},
		{
			name:    "not an object",
			payload: `[1, 2, 3]`,
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var table PlayerTable
			err := json.Unmarshal([]byte(tt.payload), &table)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantOrder, table.Order)
			assert.Len(t, table.ByName, len(tt.wantOrder))
		})
	}
}

func TestPlayerTable_MarshalJSON_RoundTrip(t *testing.T) {
	table := NewPlayerTable()
	table.Add(Player{Name: "Zoe", Wallet: Wallet{Red: 3}})
	table.Add(Player{Name: "Ann", Developments: []int{7}})

	b, err := json.Marshal(table)
	require.NoError(t, err)

	var decoded PlayerTable
	require.NoError(t, json.Unmarshal(b, &decoded))
	assert.Equal(t, []string{"Zoe", "Ann"}, decoded.Order)
	zoe, ok := decoded.Get("Zoe")
	require.True(t, ok)
	assert.Equal(t, 3, zoe.Wallet.Red)
}

func TestBoard_ActivePlayer(t *testing.T) {
	table := NewPlayerTable()
	for _, name := range []string{"p0", "p1", "p2", "p3"} {
		table.Add(Player{Name: name})
	}

	tests := []struct {
		name     string
		turn     int
		wantName string
	}{
		{name: "turn 0", turn: 0, wantName: "p0"},
		{name: "turn 5 wraps to second seat", turn: 5, wantName: "p1"},
		{name: "turn 11 wraps to last seat", turn: 11, wantName: "p3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board := &Board{Players: table, Turn: tt.turn}
			active, ok := board.ActivePlayer()
			require.True(t, ok)
			assert.Equal(t, tt.wantName, active.Name)
		})
	}

	t.Run("no players", func(t *testing.T) {
		board := &Board{Players: NewPlayerTable()}
		_, ok := board.ActivePlayer()
		assert.False(t, ok)
	})
}

func TestWallet_Get(t *testing.T) {
	w := Wallet{White: 1, Black: 2, Red: 3, Green: 4, Blue: 5, Gold: 6}
	assert.Equal(t, 1, w.Get(ColorWhite))
	assert.Equal(t, 6, w.Get(ColorGold))
	assert.Equal(t, 0, w.Get(Color("magenta")))
}

func TestGameState_DecodesWireShapes(t *testing.T) {
	payload := `{
		"cards": {"12": {"id": 12, "art": "mine", "discount": "red", "price": {"white": 2, "blue": 1}, "score": 1, "tier": "2"}},
		"collections": {"3": {"art": "duke", "score": 3, "trigger": {"red": 4, "green": 4}}},
		"game": {
			"bank": {"white":7,"black":7,"red":7,"green":7,"blue":7,"gold":5},
			"began": true,
			"collections_in_play": [3],
			"decks": {"1": {"visible": [12, 13, 14, 15], "hidden_count": 36}},
			"players": {"Alice": {"name":"Alice","attained_collection":null,"developments":[],"reservations":[],"wallet":{"white":0,"black":0,"red":0,"green":0,"blue":0,"gold":0}}},
			"turn": 4
		}
	}`

	var state GameState
	require.NoError(t, json.Unmarshal([]byte(payload), &state))

	card, ok := state.Cards[12]
	require.True(t, ok)
	assert.Equal(t, ColorRed, card.Discount)
	assert.Equal(t, Price{ColorWhite: 2, ColorBlue: 1}, card.Price)

	noble, ok := state.Collections[3]
	require.True(t, ok)
	assert.Equal(t, 3, noble.Score)

	assert.True(t, state.Game.Began)
	assert.Equal(t, 36, state.Game.Decks["1"].HiddenCount)
	assert.Equal(t, []string{"Alice"}, state.Game.Players.Order)
}
