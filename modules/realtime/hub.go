package realtime

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gofiber/contrib/websocket"
)

// Server-to-client event names.
const (
	EventOnlineUsers = "online-users-changed"
	EventNewMessage  = "new-message"
)

// Conn is the subset of the websocket connection the hub writes to.
// *websocket.Conn satisfies it; tests substitute an in-memory fake.
type Conn interface {
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// Client represents one live connection. UserID is empty for anonymous
// connections: they receive presence broadcasts but are never registered
// and never receive directed messages.
type Client struct {
	ID     string
	UserID string
	Conn   Conn
}

// Identified reports whether the connection carried a user identity at
// handshake time.
func (c *Client) Identified() bool {
	return c.UserID != ""
}

// Envelope is the wire frame for all server-to-client events.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// Hub owns the presence registry and every live connection. It is the sole
// writer of the registry; all mutations happen inside Register/Unregister so
// each presence change and its broadcast are consistent.
type Hub struct {
	registry *Registry

	mu    sync.RWMutex
	conns map[string]*Client // connectionID -> Client
}

// NewHub creates a Hub with an empty registry.
func NewHub() *Hub {
	return &Hub{
		registry: NewRegistry(),
		conns:    make(map[string]*Client),
	}
}

// Register adds a connection to the hub. If the client is identified it is
// entered into the presence registry (overwriting any previous connection of
// the same user) and the new online set is broadcast to everyone.
func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	h.conns[client.ID] = client
	h.mu.Unlock()

	if !client.Identified() {
		log.Printf("[realtime] anonymous connection %s registered", client.ID)
		return
	}

	h.registry.Register(client.UserID, client.ID)
	log.Printf("[realtime] user %s online (conn %s)", client.UserID, client.ID)
	h.broadcastPresence()
}

// Unregister removes a connection. The registry removal is guarded: if the
// user has already reconnected on a newer connection, the stale disconnect
// leaves the live mapping untouched and no broadcast is sent. Calling
// Unregister twice for the same connection is a no-op the second time.
func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	delete(h.conns, client.ID)
	h.mu.Unlock()

	if !client.Identified() {
		return
	}

	if h.registry.Unregister(client.UserID, client.ID) {
		log.Printf("[realtime] user %s offline (conn %s)", client.UserID, client.ID)
		h.broadcastPresence()
	}
}

// SendToUser delivers a directed event to the connection currently registered
// for userID, if any. An offline recipient is the expected common case, not
// an error; the caller already persisted whatever it is delivering. Reports
// whether a delivery was attempted.
func (h *Hub) SendToUser(userID, event string, payload any) bool {
	connID, ok := h.registry.Lookup(userID)
	if !ok {
		return false
	}

	h.mu.RLock()
	client, ok := h.conns[connID]
	h.mu.RUnlock()
	if !ok {
		return false
	}

	data, err := json.Marshal(payload)
	if err != nil {
		log.Printf("[realtime] failed to marshal %s payload: %v", event, err)
		return false
	}
	h.send(client, event, data)
	return true
}

// broadcastPresence sends the full online snapshot to every connection,
// identified or anonymous. Full snapshots rather than deltas keep clients
// consistent regardless of delivery order.
func (h *Hub) broadcastPresence() {
	data, err := json.Marshal(h.registry.SnapshotKeys())
	if err != nil {
		log.Printf("[realtime] failed to marshal online set: %v", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, client := range h.conns {
		h.send(client, EventOnlineUsers, data)
	}
}

// send writes one enveloped event to a client. Write failures are logged and
// ignored: a broken connection will surface its own disconnect, which
// triggers the next presence broadcast.
func (h *Hub) send(client *Client, event string, data json.RawMessage) {
	frame, err := json.Marshal(Envelope{Event: event, Data: data})
	if err != nil {
		log.Printf("[realtime] failed to marshal frame for %s: %v", client.ID, err)
		return
	}
	if err := client.Conn.WriteMessage(websocket.TextMessage, frame); err != nil {
		log.Printf("[realtime] failed to send to %s: %v", client.ID, err)
	}
}

// OnlineUsers returns the current online snapshot.
func (h *Hub) OnlineUsers() []string {
	return h.registry.SnapshotKeys()
}

// ClientCount returns the number of live connections (including anonymous).
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}

// CloseAll closes every connection and resets hub state. Used on shutdown.
func (h *Hub) CloseAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, client := range h.conns {
		_ = client.Conn.Close()
	}
	h.conns = make(map[string]*Client)
	h.registry = NewRegistry()
}
