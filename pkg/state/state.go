package state

import (
	gametypes "github.com/calebwray/gemtable/pkg/game/types"
)

// Update is one inbound partial state update. Each non-nil field fully
// replaces the corresponding subtree of the snapshot; nil fields leave
// the previous value untouched. This is a shallow, field-level merge by
// contract: a partial Game would clobber sibling fields, so the server
// must always send the game aggregate whole.
type Update struct {
	Game        *gametypes.Board
	Cards       map[int]gametypes.GameCard
	Collections map[int]gametypes.Noble
}

// StateManager provides shared access to the room snapshot.
// Implementations must be safe for concurrent readers; writes come
// from a single writer (the network manager's message handler).
type StateManager interface {
	// Read returns the current snapshot. Callers must not mutate it.
	Read() *gametypes.GameState
	// ApplyUpdate merges an inbound partial update, replace-if-present
	// per top-level field.
	ApplyUpdate(update Update)
	// SetIdentity stamps the connection's own display name and room.
	// Normally called exactly once, at connection open.
	SetIdentity(yourName, roomName string)
	// Identity returns the connection's display name and room.
	Identity() (yourName, roomName string)
	// ActivePlayer returns the player whose turn it is.
	ActivePlayer() (gametypes.Player, bool)
	// YourPlayer returns the viewer's own player, if seated.
	YourPlayer() (gametypes.Player, bool)
}
