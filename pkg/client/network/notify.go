package network

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/calebwray/gemtable/pkg/log"
	"github.com/calebwray/gemtable/pkg/messages"
)

// Notification levels.
const (
	NotificationLevelInfo  = "info"
	NotificationLevelError = "error"
)

// Notification is one transient user-facing message. The presentation
// layer drains these from the notification queue.
type Notification struct {
	Level    string
	Username string
	Action   string
	Text     string
}

// describeNotification turns a notification message into displayable
// text. Action notifications reference cards by id, so the description
// is synthesized from the catalog as merged so far; a card that has
// not arrived yet degrades to its id.
func (m *NetworkManager) describeNotification(msg *messages.ServerMessage) *Notification {
	n := &Notification{
		Level:    NotificationLevelInfo,
		Username: msg.Username,
		Action:   msg.Action,
		Text:     msg.Message,
	}
	if msg.Action == "" {
		return n
	}

	who := msg.Username
	if who == "" {
		who = "someone"
	}

	switch msg.Action {
	case messages.ActionTakeSame:
		var args messages.TakeSameArgs
		if !decodeArgs(msg.ActionArgs, &args) {
			break
		}
		n.Text = fmt.Sprintf("%s took two %s tokens", who, args.Color)
	case messages.ActionTakeDifferent:
		var args messages.TakeDifferentArgs
		if !decodeArgs(msg.ActionArgs, &args) {
			break
		}
		names := make([]string, len(args.Colors))
		for i, c := range args.Colors {
			names[i] = string(c)
		}
		n.Text = fmt.Sprintf("%s took %s tokens", who, strings.Join(names, ", "))
	case messages.ActionReserve:
		var args messages.ReserveArgs
		if !decodeArgs(msg.ActionArgs, &args) {
			break
		}
		if args.CardID == nil {
			n.Text = fmt.Sprintf("%s reserved a hidden tier %s card", who, args.Tier)
			break
		}
		n.Text = fmt.Sprintf("%s reserved %s", who, m.describeCard(*args.CardID))
	case messages.ActionPurchase:
		var args messages.PurchaseArgs
		if !decodeArgs(msg.ActionArgs, &args) {
			break
		}
		n.Text = fmt.Sprintf("%s purchased %s", who, m.describeCard(args.CardID))
	default:
		log.Debug("No description for notification action %q", msg.Action)
	}

	return n
}

// describeCard names a card from the merged catalog.
func (m *NetworkManager) describeCard(cardID int) string {
	card, ok := m.stateManager.Read().Cards[cardID]
	if !ok {
		return fmt.Sprintf("card %d", cardID)
	}
	if card.Score > 0 {
		return fmt.Sprintf("%s (%d points)", card.Art, card.Score)
	}
	return card.Art
}

func decodeArgs(raw json.RawMessage, out interface{}) bool {
	if len(raw) == 0 {
		return false
	}
	if err := json.Unmarshal(raw, out); err != nil {
		log.Debug("Failed to decode notification action args: %v", err)
		return false
	}
	return true
}
