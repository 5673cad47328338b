package messages

import (
	"encoding/json"
	"testing"

	gametypes "github.com/calebwray/gemtable/pkg/game/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int {
	return &v
}

func TestSerializeCommand(t *testing.T) {
	tests := []struct {
		name string
		cmd  *Command
		want map[string]interface{}
	}{
		{
			name: "create_room carries username",
			cmd:  &Command{Command: CommandCreateRoom, RoomName: "testRoom", Username: "Alice"},
			want: map[string]interface{}{
				"command":   "create_room",
				"room_name": "testRoom",
				"username":  "Alice",
			},
		},
		{
			name: "view_room omits empty fields",
			cmd:  &Command{Command: CommandViewRoom, RoomName: "testRoom"},
			want: map[string]interface{}{
				"command":   "view_room",
				"room_name": "testRoom",
			},
		},
		{
			name: "action take_same",
			cmd: &Command{
				Command:    CommandAction,
				RoomName:   "testRoom",
				Username:   "Alice",
				Action:     ActionTakeSame,
				ActionArgs: TakeSameArgs{Color: gametypes.ColorWhite},
			},
			want: map[string]interface{}{
				"command":     "action",
				"room_name":   "testRoom",
				"username":    "Alice",
				"action":      "take_same",
				"action_args": map[string]interface{}{"color": "white"},
			},
		},
		{
			name: "action reserve by card id",
			cmd: &Command{
				Command:    CommandAction,
				RoomName:   "testRoom",
				Username:   "Alice",
				Action:     ActionReserve,
				ActionArgs: ReserveArgs{Tier: "2", CardID: intPtr(31)},
			},
			want: map[string]interface{}{
				"command":   "action",
				"room_name": "testRoom",
				"username":  "Alice",
				"action":    "reserve",
				"action_args": map[string]interface{}{
					"tier":    "2",
					"card_id": float64(31),
				},
			},
		},
		{
			// A present card_id, zero included, means a card lookup on
			// the server, so the hidden-card form must omit it.
			name: "action reserve hidden card omits card_id",
			cmd: &Command{
				Command:    CommandAction,
				RoomName:   "testRoom",
				Username:   "Alice",
				Action:     ActionReserve,
				ActionArgs: ReserveArgs{Tier: "2"},
			},
			want: map[string]interface{}{
				"command":     "action",
				"room_name":   "testRoom",
				"username":    "Alice",
				"action":      "reserve",
				"action_args": map[string]interface{}{"tier": "2"},
			},
		},
		{
			name: "action purchase with gold usage",
			cmd: &Command{
				Command:    CommandAction,
				RoomName:   "testRoom",
				Username:   "Alice",
				Action:     ActionPurchase,
				ActionArgs: PurchaseArgs{CardID: 12, GoldUsage: []gametypes.Color{gametypes.ColorRed, gametypes.ColorRed}},
			},
			want: map[string]interface{}{
				"command":   "action",
				"room_name": "testRoom",
				"username":  "Alice",
				"action":    "purchase",
				"action_args": map[string]interface{}{
					"card_id":    float64(12),
					"gold_usage": []interface{}{"red", "red"},
				},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := SerializeCommand(tt.cmd)
			require.NoError(t, err)

			var got map[string]interface{}
			require.NoError(t, json.Unmarshal(b, &got))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDeserializeServerMessage(t *testing.T) {
	t.Run("game_state_update", func(t *testing.T) {
		payload := `{
			"type": "game_state_update",
			"gameStateDelta": {"game": {"bank": {"white":7,"black":7,"red":7,"green":7,"blue":7,"gold":5}, "began": false, "collections_in_play": [], "decks": {}, "players": {}, "turn": 0}},
			"cards": {"1": {"id": 1, "art": "mine", "discount": "red", "price": {}, "score": 0, "tier": "1"}}
		}`
		msg, err := DeserializeServerMessage([]byte(payload))
		require.NoError(t, err)
		assert.Equal(t, ServerTypeGameStateUpdate, msg.Type)
		require.NotNil(t, msg.GameStateDelta)
		require.NotNil(t, msg.GameStateDelta.Game)
		assert.Equal(t, 7, msg.GameStateDelta.Game.Bank.White)
		assert.Contains(t, msg.Cards, 1)
		assert.Nil(t, msg.Collections)
	})

	t.Run("error prefers message over error field", func(t *testing.T) {
		msg, err := DeserializeServerMessage([]byte(`{"type":"error","message":"room is full","error":"ignored"}`))
		require.NoError(t, err)
		assert.Equal(t, "room is full", msg.ErrorText())

		msg, err = DeserializeServerMessage([]byte(`{"type":"error","error":"boom"}`))
		require.NoError(t, err)
		assert.Equal(t, "boom", msg.ErrorText())
	})

	t.Run("unknown type still decodes", func(t *testing.T) {
		msg, err := DeserializeServerMessage([]byte(`{"type":"telemetry","message":"hi"}`))
		require.NoError(t, err)
		assert.Equal(t, "telemetry", msg.Type)
	})

	t.Run("malformed frame errors", func(t *testing.T) {
		_, err := DeserializeServerMessage([]byte(`{not json`))
		assert.Error(t, err)
	})
}

func TestActionArgsValidate(t *testing.T) {
	tests := []struct {
		name    string
		args    interface{ Validate() error }
		wantErr bool
	}{
		{name: "take_same white", args: TakeSameArgs{Color: gametypes.ColorWhite}},
		{name: "take_same gold rejected", args: TakeSameArgs{Color: gametypes.ColorGold}, wantErr: true},
		{name: "take_same unknown rejected", args: TakeSameArgs{Color: "magenta"}, wantErr: true},
		{name: "take_different three distinct", args: TakeDifferentArgs{Colors: []gametypes.Color{gametypes.ColorWhite, gametypes.ColorRed, gametypes.ColorBlue}}},
		{name: "take_different repeat rejected", args: TakeDifferentArgs{Colors: []gametypes.Color{gametypes.ColorWhite, gametypes.ColorWhite, gametypes.ColorBlue}}, wantErr: true},
		{name: "take_different two colors rejected", args: TakeDifferentArgs{Colors: []gametypes.Color{gametypes.ColorWhite, gametypes.ColorBlue}}, wantErr: true},
		{name: "reserve by card id", args: ReserveArgs{Tier: "1", CardID: intPtr(12)}},
		{name: "reserve by tier only", args: ReserveArgs{Tier: "2"}},
		{name: "reserve zero card id rejected", args: ReserveArgs{Tier: "1", CardID: intPtr(0)}, wantErr: true},
		{name: "reserve empty rejected", args: ReserveArgs{}, wantErr: true},
		{name: "purchase", args: PurchaseArgs{CardID: 12}},
		{name: "purchase without card rejected", args: PurchaseArgs{}, wantErr: true},
		{name: "purchase gold-for-gold rejected", args: PurchaseArgs{CardID: 12, GoldUsage: []gametypes.Color{gametypes.ColorGold}}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.args.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
