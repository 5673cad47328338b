// Package network owns the websocket connection to the room server:
// it classifies inbound messages, merges state updates into the state
// manager, and exposes the outbound command API.
package network

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/calebwray/gemtable/pkg/log"
	"github.com/calebwray/gemtable/pkg/messages"
	"github.com/calebwray/gemtable/pkg/queue"
	"github.com/calebwray/gemtable/pkg/state"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Status is the connection lifecycle state.
type Status int

const (
	StatusConnecting Status = iota
	StatusOpen
	StatusClosed
)

func (s Status) String() string {
	switch s {
	case StatusConnecting:
		return "connecting"
	case StatusOpen:
		return "open"
	case StatusClosed:
		return "closed"
	}
	return "unknown"
}

// NetworkManager owns one connection to the room server. All inbound
// messages are handled one at a time on a single goroutine, so state
// merges are serialized by construction; the manager is the only
// writer to the state manager.
type NetworkManager struct {
	serverURL         string
	roomName          string
	username          string
	stateManager      state.StateManager
	notificationQueue queue.Queue
	reconnectAttempts int
	reconnectDelay    time.Duration
	sessionID         string

	lock   sync.Mutex
	conn   *websocket.Conn
	status Status

	cancelCtx context.CancelFunc
	wg        sync.WaitGroup
	errChan   chan error
}

// NewNetworkManagerOptions contains options for creating a new NetworkManager.
type NewNetworkManagerOptions struct {
	ServerURL         string
	RoomName          string
	Username          string
	StateManager      state.StateManager
	NotificationQueue queue.Queue

	// ReconnectAttempts enables bounded-retry reconnection with a full
	// view_room resync after each successful redial. Zero disables
	// reconnection: a lost connection stays lost.
	ReconnectAttempts int
	ReconnectDelay    time.Duration
}

// NewNetworkManager creates a new network manager.
func NewNetworkManager(opts NewNetworkManagerOptions) (*NetworkManager, error) {
	if opts.ServerURL == "" {
		return nil, fmt.Errorf("server URL is required")
	}
	if opts.RoomName == "" {
		return nil, fmt.Errorf("room name is required")
	}
	if opts.Username == "" {
		return nil, fmt.Errorf("username is required")
	}
	if opts.StateManager == nil {
		return nil, fmt.Errorf("state manager is required")
	}
	if opts.NotificationQueue == nil {
		return nil, fmt.Errorf("notification queue is required")
	}
	delay := opts.ReconnectDelay
	if delay <= 0 {
		delay = time.Second
	}
	return &NetworkManager{
		serverURL:         opts.ServerURL,
		roomName:          opts.RoomName,
		username:          opts.Username,
		stateManager:      opts.StateManager,
		notificationQueue: opts.NotificationQueue,
		reconnectAttempts: opts.ReconnectAttempts,
		reconnectDelay:    delay,
		sessionID:         uuid.NewString(),
		status:            StatusConnecting,
		errChan:           make(chan error, 1),
	}, nil
}

// Start connects to the server and begins handling inbound messages.
func (m *NetworkManager) Start() error {
	if m.cancelCtx != nil {
		return fmt.Errorf("network manager already started")
	}

	ctx, cancel := context.WithCancel(context.Background())
	m.cancelCtx = cancel

	if err := m.connect(ctx); err != nil {
		cancel()
		m.cancelCtx = nil
		return fmt.Errorf("failed to connect to %s: %v", m.serverURL, err)
	}

	m.wg.Add(1)
	go m.readLoop(ctx)

	return nil
}

// connect dials the server, stamps identity into the state manager,
// and pulls the full room state. The context aborts an in-flight dial
// and gates installation: a dial that completes after Stop must not
// resurrect the connection.
func (m *NetworkManager) connect(ctx context.Context) error {
	m.setStatus(StatusConnecting)
	log.Info("Session %s connecting to %s", m.sessionID, m.serverURL)

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, m.serverURL, nil)
	if err != nil {
		m.setStatus(StatusClosed)
		return err
	}

	m.lock.Lock()
	if ctx.Err() != nil {
		m.status = StatusClosed
		m.lock.Unlock()
		conn.Close()
		return fmt.Errorf("connection torn down during dial: %v", ctx.Err())
	}
	m.conn = conn
	m.status = StatusOpen
	m.lock.Unlock()

	m.stateManager.SetIdentity(m.username, m.roomName)
	if err := m.ViewRoom(); err != nil {
		log.Warn("Failed to request room state after connect: %v", err)
	}

	return nil
}

// readLoop handles inbound messages until the connection dies or the
// manager stops. Messages are processed to completion one at a time in
// arrival order.
func (m *NetworkManager) readLoop(ctx context.Context) {
	defer m.wg.Done()
	for {
		conn := m.currentConn()
		if conn == nil {
			return
		}

		_, data, err := conn.ReadMessage()
		if err != nil {
			select {
			case <-ctx.Done():
				m.setStatus(StatusClosed)
				return
			default:
			}

			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Error("Error reading server message: %v", err)
			} else {
				log.Debug("Connection closed: %v", err)
			}

			if m.reconnect(ctx) {
				continue
			}

			m.setStatus(StatusClosed)
			select {
			case m.errChan <- err:
			default:
			}
			return
		}

		// A single bad message must never tear down the connection.
		if err := m.handleMessage(data); err != nil {
			log.Error("Failed to handle server message: %v", err)
		}
	}
}

// handleMessage classifies one inbound frame and dispatches it.
func (m *NetworkManager) handleMessage(data []byte) error {
	msg, err := messages.DeserializeServerMessage(data)
	if err != nil {
		return fmt.Errorf("failed to parse server message: %v", err)
	}

	switch msg.Type {
	case messages.ServerTypeGameStateUpdate:
		update := state.Update{
			Cards:       msg.Cards,
			Collections: msg.Collections,
		}
		if msg.GameStateDelta != nil {
			update.Game = msg.GameStateDelta.Game
		}
		m.stateManager.ApplyUpdate(update)
		log.Trace("Merged game state update")
	case messages.ServerTypeNotification:
		// The catalog lookup must run after any state merge this
		// notification refers to; ordered single-goroutine handling
		// guarantees that.
		m.enqueueNotification(m.describeNotification(msg))
	case messages.ServerTypeInfo:
		m.enqueueNotification(&Notification{Level: NotificationLevelInfo, Text: msg.Message})
	case messages.ServerTypeError:
		m.enqueueNotification(&Notification{Level: NotificationLevelError, Text: msg.ErrorText()})
	default:
		log.Debug("Ignoring server message of unknown type %q", msg.Type)
	}

	return nil
}

func (m *NetworkManager) enqueueNotification(n *Notification) {
	if err := m.notificationQueue.Enqueue(n); err != nil {
		log.Warn("Dropping notification: %v", err)
	}
}

// reconnect redials up to the configured number of attempts. A
// successful redial re-pulls the full room state via connect.
func (m *NetworkManager) reconnect(ctx context.Context) bool {
	for attempt := 1; attempt <= m.reconnectAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return false
		case <-time.After(m.reconnectDelay):
		}

		log.Info("Reconnect attempt %d/%d to %s", attempt, m.reconnectAttempts, m.serverURL)
		if err := m.connect(ctx); err != nil {
			if ctx.Err() != nil {
				return false
			}
			log.Warn("Reconnect attempt %d failed: %v", attempt, err)
			continue
		}
		return true
	}
	return false
}

// Stop closes the connection and waits for the message handler to
// finish. Pending notifications are discarded.
func (m *NetworkManager) Stop() error {
	if m.cancelCtx == nil {
		log.Warn("Network manager already stopped")
		return nil
	}
	m.cancelCtx()
	m.cancelCtx = nil

	m.lock.Lock()
	conn := m.conn
	m.conn = nil
	m.status = StatusClosed
	m.lock.Unlock()

	if conn != nil {
		conn.Close()
	}
	m.wg.Wait()

	if err := m.notificationQueue.ClearQueue(); err != nil {
		return fmt.Errorf("failed to clear notification queue: %v", err)
	}

	log.Info("Session %s stopped", m.sessionID)
	return nil
}

// Status returns the connection lifecycle state.
func (m *NetworkManager) Status() Status {
	m.lock.Lock()
	defer m.lock.Unlock()
	return m.status
}

// SessionID returns the locally-generated id for this connection,
// used only for logging.
func (m *NetworkManager) SessionID() string {
	return m.sessionID
}

// ErrChan reports the error that ended the connection, if any.
func (m *NetworkManager) ErrChan() <-chan error {
	return m.errChan
}

func (m *NetworkManager) setStatus(s Status) {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.status = s
}

func (m *NetworkManager) currentConn() *websocket.Conn {
	m.lock.Lock()
	defer m.lock.Unlock()
	return m.conn
}
