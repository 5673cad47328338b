package state

import (
	"sync"

	gametypes "github.com/calebwray/gemtable/pkg/game/types"
)

// InMemoryStateManager holds the live snapshot for one connection.
// Updates swap in a fresh GameState value with structural sharing of
// the untouched subtrees; the previous snapshot is never mutated in
// place, so readers holding it see a consistent view.
type InMemoryStateManager struct {
	lock      sync.RWMutex
	gameState *gametypes.GameState
	yourName  string
	roomName  string
}

func NewInMemoryStateManager() *InMemoryStateManager {
	return &InMemoryStateManager{
		gameState: gametypes.NewGameState(),
	}
}

func (m *InMemoryStateManager) Read() *gametypes.GameState {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.gameState
}

func (m *InMemoryStateManager) ApplyUpdate(update Update) {
	m.lock.Lock()
	defer m.lock.Unlock()

	next := *m.gameState
	if update.Game != nil {
		next.Game = *update.Game
	}
	if update.Cards != nil {
		next.Cards = update.Cards
	}
	if update.Collections != nil {
		next.Collections = update.Collections
	}
	m.gameState = &next
}

func (m *InMemoryStateManager) SetIdentity(yourName, roomName string) {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.yourName = yourName
	m.roomName = roomName
}

func (m *InMemoryStateManager) Identity() (string, string) {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.yourName, m.roomName
}

func (m *InMemoryStateManager) ActivePlayer() (gametypes.Player, bool) {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.gameState.Game.ActivePlayer()
}

func (m *InMemoryStateManager) YourPlayer() (gametypes.Player, bool) {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.gameState.Game.Players.Get(m.yourName)
}
