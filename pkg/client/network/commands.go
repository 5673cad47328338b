package network

import (
	"fmt"

	"github.com/calebwray/gemtable/pkg/economy"
	gametypes "github.com/calebwray/gemtable/pkg/game/types"
	"github.com/calebwray/gemtable/pkg/log"
	"github.com/calebwray/gemtable/pkg/messages"
	"github.com/gorilla/websocket"
)

// sendCommand writes one command frame. Commands are fire-and-forget:
// there is no response correlation, and a command issued while the
// connection is not open is dropped with a warning, never queued.
func (m *NetworkManager) sendCommand(cmd *messages.Command) error {
	b, err := messages.SerializeCommand(cmd)
	if err != nil {
		return fmt.Errorf("failed to serialize %s command: %v", cmd.Command, err)
	}

	m.lock.Lock()
	defer m.lock.Unlock()
	if m.status != StatusOpen || m.conn == nil {
		log.Warn("Connection is not open, dropping %s command", cmd.Command)
		return nil
	}
	if err := m.conn.WriteMessage(websocket.TextMessage, b); err != nil {
		return fmt.Errorf("failed to write %s command: %v", cmd.Command, err)
	}
	log.Trace("Sent %s command", cmd.Command)
	return nil
}

// CreateRoom asks the server to create the room and seat this player.
func (m *NetworkManager) CreateRoom() error {
	return m.sendCommand(&messages.Command{
		Command:  messages.CommandCreateRoom,
		RoomName: m.roomName,
		Username: m.username,
	})
}

// JoinRoom seats this player in an existing room.
func (m *NetworkManager) JoinRoom() error {
	return m.sendCommand(&messages.Command{
		Command:  messages.CommandJoinRoom,
		RoomName: m.roomName,
		Username: m.username,
	})
}

// BeginGame starts the game for everyone in the room.
func (m *NetworkManager) BeginGame() error {
	return m.sendCommand(&messages.Command{
		Command:  messages.CommandBeginGame,
		RoomName: m.roomName,
	})
}

// ViewRoom pulls the full current room state.
func (m *NetworkManager) ViewRoom() error {
	return m.sendCommand(&messages.Command{
		Command:  messages.CommandViewRoom,
		RoomName: m.roomName,
	})
}

// GetCardsAndCollections pulls the card and noble catalogs.
func (m *NetworkManager) GetCardsAndCollections() error {
	return m.sendCommand(&messages.Command{
		Command:  messages.CommandGetCardsAndCollections,
		RoomName: m.roomName,
	})
}

// DebugStatus asks the server to report this connection's status.
func (m *NetworkManager) DebugStatus() error {
	return m.sendCommand(&messages.Command{
		Command:  messages.CommandDebugWebSocketStatus,
		RoomName: m.roomName,
		Username: m.username,
	})
}

// DoAction submits a turn action and immediately re-pulls the room
// state. The action's own acknowledgment is not trusted to carry the
// full state, so the client pulls after every push rather than relying
// on server deltas alone.
func (m *NetworkManager) DoAction(action string, args interface{}) error {
	if v, ok := args.(interface{ Validate() error }); ok {
		if err := v.Validate(); err != nil {
			return fmt.Errorf("invalid %s action: %v", action, err)
		}
	}
	if purchase, ok := args.(messages.PurchaseArgs); ok {
		if err := m.validatePurchase(purchase); err != nil {
			return fmt.Errorf("invalid purchase: %v", err)
		}
	}

	if err := m.sendCommand(&messages.Command{
		Command:    messages.CommandAction,
		RoomName:   m.roomName,
		Username:   m.username,
		Action:     action,
		ActionArgs: args,
	}); err != nil {
		return err
	}

	return m.ViewRoom()
}

// validatePurchase checks a gold allocation against the viewer's
// wallet and the card's discounted price so an over-allocation never
// reaches the wire.
func (m *NetworkManager) validatePurchase(args messages.PurchaseArgs) error {
	snapshot := m.stateManager.Read()
	card, ok := snapshot.Cards[args.CardID]
	if !ok {
		return fmt.Errorf("card %d is not in the catalog", args.CardID)
	}

	you, ok := m.stateManager.YourPlayer()
	if !ok {
		return fmt.Errorf("player %q is not seated in the room", m.username)
	}

	goldUsage := gametypes.Price{}
	for _, color := range args.GoldUsage {
		goldUsage[color]++
	}

	discount := economy.PlayerDiscount(&you, snapshot.Cards)
	discounted := economy.PriceAfterDiscount(card.Price, discount)
	return economy.ValidateGoldUsage(&you, discounted, goldUsage)
}
