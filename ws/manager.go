package ws

import (
	"encoding/json"
	"errors"
	"sync"

	"github.com/gorilla/websocket"
)

var ErrNotConnected = errors.New("session not connected")

// Conn is the part of *websocket.Conn the manager uses.
type Conn interface {
	WriteMessage(messageType int, data []byte) error
	Close() error
}

type client struct {
	conn    Conn
	writeMu sync.Mutex // gorilla allows one concurrent writer
}

// Manager keeps track of the live form connection for each session.
type Manager struct {
	mu          sync.RWMutex
	connections map[string]*client // sessionID -> conn
}

func NewManager() *Manager {
	return &Manager{connections: make(map[string]*client)}
}

// Register registers a session connection, replacing any existing one.
func (m *Manager) Register(sessionID string, conn Conn) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if old, ok := m.connections[sessionID]; ok && old.conn != conn {
		// a newer tab takes over the session
		_ = old.conn.Close()
	}
	m.connections[sessionID] = &client{conn: conn}
}

// Unregister removes conn if it is still the registered connection for the
// session. A replaced connection must not evict its successor.
func (m *Manager) Unregister(sessionID string, conn Conn) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.connections[sessionID]; ok && c.conn == conn {
		_ = c.conn.Close()
		delete(m.connections, sessionID)
	}
}

// SendTo writes v only if conn is still the session's registered connection.
// A handler whose connection was replaced gets ErrNotConnected instead of
// writing into the newer tab.
func (m *Manager) SendTo(sessionID string, conn Conn, v interface{}) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return err
	}

	m.mu.RLock()
	c, ok := m.connections[sessionID]
	m.mu.RUnlock()
	if !ok || c == nil || c.conn != conn {
		return ErrNotConnected
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteMessage(websocket.TextMessage, payload)
}

// IsConnected returns whether a session currently has a live form open.
func (m *Manager) IsConnected(sessionID string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.connections[sessionID]
	return ok
}

// List returns a copy of current connected session IDs.
func (m *Manager) List() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.connections))
	for id := range m.connections {
		ids = append(ids, id)
	}
	return ids
}
