package realtime

import (
	"encoding/json"
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"
)

// fakeConn records every frame written to it.
type fakeConn struct {
	mu         sync.Mutex
	frames     []Envelope
	closed     bool
	failWrites bool
}

func (c *fakeConn) WriteMessage(_ int, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failWrites {
		return errors.New("write failed")
	}
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}
	c.frames = append(c.frames, env)
	return nil
}

func (c *fakeConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *fakeConn) eventsNamed(event string) []Envelope {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []Envelope
	for _, f := range c.frames {
		if f.Event == event {
			out = append(out, f)
		}
	}
	return out
}

// lastOnlineSet decodes the payload of the most recent presence broadcast.
func (c *fakeConn) lastOnlineSet(t *testing.T) []string {
	t.Helper()
	frames := c.eventsNamed(EventOnlineUsers)
	if len(frames) == 0 {
		t.Fatal("no presence broadcast received")
	}
	var users []string
	if err := json.Unmarshal(frames[len(frames)-1].Data, &users); err != nil {
		t.Fatalf("failed to decode online set: %v", err)
	}
	return users
}

func newTestClient(id, userID string) (*Client, *fakeConn) {
	conn := &fakeConn{}
	return &Client{ID: id, UserID: userID, Conn: conn}, conn
}

func TestHubBroadcastsFullSnapshotOnConnect(t *testing.T) {
	hub := NewHub()

	a, aConn := newTestClient("c1", "u1")
	hub.Register(a)
	if got := aConn.lastOnlineSet(t); !reflect.DeepEqual(got, []string{"u1"}) {
		t.Errorf("online set after first connect = %v, want [u1]", got)
	}

	b, bConn := newTestClient("c2", "u2")
	hub.Register(b)
	want := []string{"u1", "u2"}
	if got := aConn.lastOnlineSet(t); !reflect.DeepEqual(got, want) {
		t.Errorf("existing client online set = %v, want %v", got, want)
	}
	if got := bConn.lastOnlineSet(t); !reflect.DeepEqual(got, want) {
		t.Errorf("new client online set = %v, want %v", got, want)
	}
}

func TestHubBroadcastsOnDisconnect(t *testing.T) {
	hub := NewHub()

	a, aConn := newTestClient("c1", "u1")
	b, _ := newTestClient("c2", "u2")
	hub.Register(a)
	hub.Register(b)

	hub.Unregister(b)
	if got := aConn.lastOnlineSet(t); !reflect.DeepEqual(got, []string{"u1"}) {
		t.Errorf("online set after disconnect = %v, want [u1]", got)
	}
}

func TestHubStaleDisconnectKeepsUserOnline(t *testing.T) {
	hub := NewHub()

	watcher, watcherConn := newTestClient("c0", "watcher")
	hub.Register(watcher)

	// u1 connects, then reconnects (e.g. tab refresh) before the old
	// connection's disconnect is processed.
	old, _ := newTestClient("c1", "u1")
	hub.Register(old)
	fresh, freshConn := newTestClient("c2", "u1")
	hub.Register(fresh)

	broadcastsBefore := len(watcherConn.eventsNamed(EventOnlineUsers))
	hub.Unregister(old)

	if got := len(watcherConn.eventsNamed(EventOnlineUsers)); got != broadcastsBefore {
		t.Errorf("stale disconnect triggered %d broadcasts, want 0", got-broadcastsBefore)
	}
	want := []string{"u1", "watcher"}
	if got := hub.OnlineUsers(); !reflect.DeepEqual(got, want) {
		t.Errorf("OnlineUsers() = %v, want %v", got, want)
	}

	// The fresh connection must still receive directed messages.
	if !hub.SendToUser("u1", EventNewMessage, NewMessagePayload{ID: "m1"}) {
		t.Fatal("SendToUser(u1) = false, want delivery to the fresh connection")
	}
	if got := len(freshConn.eventsNamed(EventNewMessage)); got != 1 {
		t.Errorf("fresh connection received %d directed events, want 1", got)
	}
}

func TestHubDirectedDelivery(t *testing.T) {
	hub := NewHub()

	sender, senderConn := newTestClient("c1", "u1")
	recipient, recipientConn := newTestClient("c2", "u2")
	hub.Register(sender)
	hub.Register(recipient)

	created := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	payload := NewMessagePayload{
		ID:         "m1",
		SenderID:   "u1",
		ReceiverID: "u2",
		Text:       "hello",
		ImageURLs:  []string{"/api/v1/media/img1"},
		CreatedAt:  created,
	}
	if !hub.SendToUser("u2", EventNewMessage, payload) {
		t.Fatal("SendToUser(u2) = false, want true")
	}

	frames := recipientConn.eventsNamed(EventNewMessage)
	if len(frames) != 1 {
		t.Fatalf("recipient received %d new-message events, want 1", len(frames))
	}
	var got NewMessagePayload
	if err := json.Unmarshal(frames[0].Data, &got); err != nil {
		t.Fatalf("failed to decode payload: %v", err)
	}
	if !reflect.DeepEqual(got, payload) {
		t.Errorf("delivered payload = %+v, want %+v", got, payload)
	}

	// The sender's connection does not receive the directed event.
	if got := len(senderConn.eventsNamed(EventNewMessage)); got != 0 {
		t.Errorf("sender received %d directed events, want 0", got)
	}
}

func TestHubOfflineRecipientIsNotAnError(t *testing.T) {
	hub := NewHub()

	a, _ := newTestClient("c1", "u1")
	hub.Register(a)

	if hub.SendToUser("u2", EventNewMessage, NewMessagePayload{ID: "m1"}) {
		t.Error("SendToUser to an offline user = true, want false")
	}
}

func TestHubAnonymousConnections(t *testing.T) {
	hub := NewHub()

	anon, anonConn := newTestClient("c-anon", "")
	hub.Register(anon)

	a, _ := newTestClient("c1", "u1")
	hub.Register(a)

	// Anonymous connections receive broadcasts...
	if got := anonConn.lastOnlineSet(t); !reflect.DeepEqual(got, []string{"u1"}) {
		t.Errorf("anonymous online set = %v, want [u1]", got)
	}
	// ...but never appear in them,
	for _, userID := range hub.OnlineUsers() {
		if userID == "" {
			t.Error("anonymous connection appeared in the online set")
		}
	}
	// and can never be the target of directed delivery.
	if hub.SendToUser("", EventNewMessage, NewMessagePayload{ID: "m1"}) {
		t.Error("directed delivery to an empty user id succeeded")
	}

	// Anonymous disconnect changes nothing observable.
	broadcastsBefore := len(anonConn.eventsNamed(EventOnlineUsers))
	hub.Unregister(anon)
	if got := len(anonConn.eventsNamed(EventOnlineUsers)); got != broadcastsBefore {
		t.Error("anonymous disconnect triggered a presence broadcast")
	}
}

func TestHubUnregisterIsIdempotent(t *testing.T) {
	hub := NewHub()

	watcher, watcherConn := newTestClient("c0", "watcher")
	hub.Register(watcher)
	a, _ := newTestClient("c1", "u1")
	hub.Register(a)

	hub.Unregister(a)
	snapshotAfterFirst := hub.OnlineUsers()
	broadcastsAfterFirst := len(watcherConn.eventsNamed(EventOnlineUsers))

	hub.Unregister(a)
	if got := hub.OnlineUsers(); !reflect.DeepEqual(got, snapshotAfterFirst) {
		t.Errorf("online set after double disconnect = %v, want %v", got, snapshotAfterFirst)
	}
	if got := len(watcherConn.eventsNamed(EventOnlineUsers)); got != broadcastsAfterFirst {
		t.Error("second disconnect triggered an extra broadcast")
	}
}

func TestHubFailedSendDoesNotStopBroadcast(t *testing.T) {
	hub := NewHub()

	broken, brokenConn := newTestClient("c1", "u1")
	brokenConn.failWrites = true
	hub.Register(broken)

	healthy, healthyConn := newTestClient("c2", "u2")
	hub.Register(healthy)

	want := []string{"u1", "u2"}
	if got := healthyConn.lastOnlineSet(t); !reflect.DeepEqual(got, want) {
		t.Errorf("healthy client online set = %v, want %v", got, want)
	}
}

func TestHubCloseAll(t *testing.T) {
	hub := NewHub()

	a, aConn := newTestClient("c1", "u1")
	anon, anonConn := newTestClient("c2", "")
	hub.Register(a)
	hub.Register(anon)

	hub.CloseAll()

	if !aConn.closed || !anonConn.closed {
		t.Error("CloseAll did not close every connection")
	}
	if hub.ClientCount() != 0 {
		t.Errorf("ClientCount() = %d, want 0", hub.ClientCount())
	}
	if got := hub.OnlineUsers(); len(got) != 0 {
		t.Errorf("OnlineUsers() = %v, want empty", got)
	}
}

// Full scenario: connect, connect, message, disconnect, message-to-offline.
func TestHubPresenceScenario(t *testing.T) {
	hub := NewHub()

	a, aConn := newTestClient("c1", "u1")
	hub.Register(a)
	if got := aConn.lastOnlineSet(t); !reflect.DeepEqual(got, []string{"u1"}) {
		t.Fatalf("step 1: online set = %v, want [u1]", got)
	}

	b, bConn := newTestClient("c2", "u2")
	hub.Register(b)
	if got := aConn.lastOnlineSet(t); !reflect.DeepEqual(got, []string{"u1", "u2"}) {
		t.Fatalf("step 2: online set = %v, want [u1 u2]", got)
	}

	if !hub.SendToUser("u2", EventNewMessage, NewMessagePayload{ID: "m1", SenderID: "u1"}) {
		t.Fatal("step 3: message to online u2 was not delivered")
	}
	frames := bConn.eventsNamed(EventNewMessage)
	if len(frames) != 1 {
		t.Fatalf("step 3: u2 received %d messages, want 1", len(frames))
	}
	var delivered NewMessagePayload
	if err := json.Unmarshal(frames[0].Data, &delivered); err != nil {
		t.Fatalf("step 3: decode: %v", err)
	}
	if delivered.SenderID != "u1" {
		t.Errorf("step 3: sender = %q, want u1", delivered.SenderID)
	}

	hub.Unregister(b)
	if got := aConn.lastOnlineSet(t); !reflect.DeepEqual(got, []string{"u1"}) {
		t.Fatalf("step 4: online set = %v, want [u1]", got)
	}

	if hub.SendToUser("u2", EventNewMessage, NewMessagePayload{ID: "m2", SenderID: "u1"}) {
		t.Error("step 5: message to offline u2 reported as delivered")
	}
}
