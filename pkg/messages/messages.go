// Package messages defines the JSON wire protocol between the client
// and the room server: outbound commands and the inbound messages they
// provoke. Frames are plain JSON text over a persistent websocket.
package messages

import (
	"encoding/json"
	"fmt"

	gametypes "github.com/calebwray/gemtable/pkg/game/types"
)

// Outbound command names.
const (
	CommandCreateRoom             = "create_room"
	CommandJoinRoom               = "join_room"
	CommandBeginGame              = "begin_game"
	CommandViewRoom               = "view_room"
	CommandGetCardsAndCollections = "get_cards_and_collections"
	CommandAction                 = "action"
	CommandDebugWebSocketStatus   = "debug_check_websocket_status"
)

// Turn action names carried in the `action` field of an action command.
const (
	ActionTakeSame      = "take_same"
	ActionTakeDifferent = "take_different"
	ActionReserve       = "reserve"
	ActionPurchase      = "purchase"
)

// Inbound message types.
const (
	ServerTypeGameStateUpdate = "game_state_update"
	ServerTypeNotification    = "notification"
	ServerTypeInfo            = "info"
	ServerTypeError           = "error"
)

// Command is an outbound client→server message. Every command carries
// at least `command` and `room_name`; the rest depends on the command.
type Command struct {
	Command    string      `json:"command"`
	RoomName   string      `json:"room_name"`
	Username   string      `json:"username,omitempty"`
	Action     string      `json:"action,omitempty"`
	ActionArgs interface{} `json:"action_args,omitempty"`
}

// TakeSameArgs takes two tokens of one color.
type TakeSameArgs struct {
	Color gametypes.Color `json:"color"`
}

func (a TakeSameArgs) Validate() error {
	if !gametypes.IsValidColor(a.Color) || a.Color == gametypes.ColorGold {
		return fmt.Errorf("cannot take tokens of color %q", a.Color)
	}
	return nil
}

// TakeDifferentArgs takes one token each of three distinct colors.
type TakeDifferentArgs struct {
	Colors []gametypes.Color `json:"colors"`
}

func (a TakeDifferentArgs) Validate() error {
	if len(a.Colors) != 3 {
		return fmt.Errorf("take_different needs exactly 3 colors, got %d", len(a.Colors))
	}
	seen := make(map[gametypes.Color]bool, 3)
	for _, c := range a.Colors {
		if !gametypes.IsValidColor(c) || c == gametypes.ColorGold {
			return fmt.Errorf("cannot take tokens of color %q", c)
		}
		if seen[c] {
			return fmt.Errorf("take_different colors must be distinct, %q repeats", c)
		}
		seen[c] = true
	}
	return nil
}

// ReserveArgs sets a card aside. A nil CardID reserves the hidden top
// card of Tier; the field must then be absent from the frame entirely,
// since the server treats any present id, zero included, as a card
// lookup.
type ReserveArgs struct {
	Tier   string `json:"tier"`
	CardID *int   `json:"card_id,omitempty"`
}

func (a ReserveArgs) Validate() error {
	if a.CardID != nil && *a.CardID <= 0 {
		return fmt.Errorf("reserve card id must be positive, got %d", *a.CardID)
	}
	if a.CardID == nil && a.Tier == "" {
		return fmt.Errorf("reserve needs a card id or a tier")
	}
	return nil
}

// PurchaseArgs buys a card. GoldUsage lists one color per gold token
// spent, repeating a color to spend several on it.
type PurchaseArgs struct {
	CardID    int               `json:"card_id"`
	GoldUsage []gametypes.Color `json:"gold_usage"`
}

func (a PurchaseArgs) Validate() error {
	if a.CardID <= 0 {
		return fmt.Errorf("purchase needs a card id")
	}
	for _, c := range a.GoldUsage {
		if !gametypes.IsValidColor(c) || c == gametypes.ColorGold {
			return fmt.Errorf("gold cannot substitute for %q", c)
		}
	}
	return nil
}

// GameStateDelta is the state portion of a game_state_update. Only the
// game aggregate arrives here; the catalogs ride at the top level.
type GameStateDelta struct {
	Game *gametypes.Board `json:"game,omitempty"`
}

// ServerMessage is an inbound server→client message, discriminated by
// Type. Fields not used by a given type are left zero.
type ServerMessage struct {
	Type           string                       `json:"type"`
	Message        string                       `json:"message,omitempty"`
	Error          string                       `json:"error,omitempty"`
	Username       string                       `json:"username,omitempty"`
	Action         string                       `json:"action,omitempty"`
	ActionArgs     json.RawMessage              `json:"action_args,omitempty"`
	GameStateDelta *GameStateDelta              `json:"gameStateDelta,omitempty"`
	Cards          map[int]gametypes.GameCard   `json:"cards,omitempty"`
	Collections    map[int]gametypes.Noble      `json:"collections,omitempty"`
}

// ErrorText returns the server-reported error string. Some server
// errors arrive in `message` rather than `error`, so `message` wins
// when both are set.
func (m *ServerMessage) ErrorText() string {
	if m.Message != "" {
		return m.Message
	}
	return m.Error
}
