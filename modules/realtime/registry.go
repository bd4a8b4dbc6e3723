package realtime

import (
	"sort"
	"sync"
)

// Registry is the authoritative in-memory mapping of online users to their
// active connection. A user has at most one live connection at a time; a new
// connection from the same user overwrites the previous mapping.
type Registry struct {
	mu     sync.RWMutex
	byUser map[string]string // userID -> connectionID
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		byUser: make(map[string]string),
	}
}

// Register inserts or overwrites the mapping for userID. It always succeeds;
// an overwrite means the user reconnected (last register wins).
func (r *Registry) Register(userID, connID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byUser[userID] = connID
}

// Unregister removes the mapping for userID only if the stored connection
// identifier equals connID. A stale disconnect (the user has already
// reconnected on a newer connection) is a silent no-op, so it can never
// evict a live mapping. Reports whether a removal actually happened.
func (r *Registry) Unregister(userID, connID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if current, ok := r.byUser[userID]; ok && current == connID {
		delete(r.byUser, userID)
		return true
	}
	return false
}

// Lookup returns the connection identifier currently mapped for userID.
func (r *Registry) Lookup(userID string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	connID, ok := r.byUser[userID]
	return connID, ok
}

// SnapshotKeys returns all currently online user identifiers, sorted so
// broadcast payloads are stable.
func (r *Registry) SnapshotKeys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	keys := make([]string, 0, len(r.byUser))
	for userID := range r.byUser {
		keys = append(keys, userID)
	}
	sort.Strings(keys)
	return keys
}

// Size returns the number of online users.
func (r *Registry) Size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byUser)
}
