package realtime

import (
	"reflect"
	"testing"
)

func TestRegistryRegisterAndLookup(t *testing.T) {
	r := NewRegistry()

	if _, ok := r.Lookup("u1"); ok {
		t.Fatal("expected empty registry to have no mapping for u1")
	}

	r.Register("u1", "c1")
	connID, ok := r.Lookup("u1")
	if !ok || connID != "c1" {
		t.Errorf("Lookup(u1) = %q, %v, want c1, true", connID, ok)
	}

	// A reconnect overwrites the previous mapping.
	r.Register("u1", "c2")
	connID, ok = r.Lookup("u1")
	if !ok || connID != "c2" {
		t.Errorf("Lookup(u1) after reconnect = %q, %v, want c2, true", connID, ok)
	}
	if r.Size() != 1 {
		t.Errorf("Size() = %d, want 1", r.Size())
	}
}

func TestRegistryGuardedUnregister(t *testing.T) {
	tests := []struct {
		name        string
		setup       func(r *Registry)
		userID      string
		connID      string
		wantRemoved bool
		wantConn    string
		wantOnline  bool
	}{
		{
			name:        "matching connection removes mapping",
			setup:       func(r *Registry) { r.Register("u1", "c1") },
			userID:      "u1",
			connID:      "c1",
			wantRemoved: true,
			wantOnline:  false,
		},
		{
			name: "stale disconnect does not evict live mapping",
			setup: func(r *Registry) {
				r.Register("u1", "c1")
				r.Register("u1", "c2")
			},
			userID:      "u1",
			connID:      "c1",
			wantRemoved: false,
			wantConn:    "c2",
			wantOnline:  true,
		},
		{
			name:        "unknown user is a no-op",
			setup:       func(r *Registry) {},
			userID:      "ghost",
			connID:      "c9",
			wantRemoved: false,
			wantOnline:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRegistry()
			tt.setup(r)

			removed := r.Unregister(tt.userID, tt.connID)
			if removed != tt.wantRemoved {
				t.Errorf("Unregister(%s, %s) = %v, want %v", tt.userID, tt.connID, removed, tt.wantRemoved)
			}

			connID, ok := r.Lookup(tt.userID)
			if ok != tt.wantOnline {
				t.Fatalf("Lookup(%s) online = %v, want %v", tt.userID, ok, tt.wantOnline)
			}
			if ok && connID != tt.wantConn {
				t.Errorf("Lookup(%s) = %q, want %q", tt.userID, connID, tt.wantConn)
			}
		})
	}
}

func TestRegistryUnregisterIsIdempotent(t *testing.T) {
	r := NewRegistry()
	r.Register("u1", "c1")

	if !r.Unregister("u1", "c1") {
		t.Fatal("first unregister should remove the mapping")
	}
	if r.Unregister("u1", "c1") {
		t.Error("second unregister should be a no-op")
	}
	if r.Size() != 0 {
		t.Errorf("Size() = %d, want 0", r.Size())
	}
}

func TestRegistrySnapshotKeys(t *testing.T) {
	r := NewRegistry()

	if got := r.SnapshotKeys(); len(got) != 0 {
		t.Fatalf("SnapshotKeys() on empty registry = %v, want empty", got)
	}

	r.Register("u3", "c3")
	r.Register("u1", "c1")
	r.Register("u2", "c2")
	r.Unregister("u2", "c2")

	want := []string{"u1", "u3"}
	if got := r.SnapshotKeys(); !reflect.DeepEqual(got, want) {
		t.Errorf("SnapshotKeys() = %v, want %v", got, want)
	}
}

// Lookup must always return the most recent register not followed by a
// matching unregister, across arbitrary interleavings.
func TestRegistryConsistencyAcrossSequences(t *testing.T) {
	type op struct {
		kind   string // "reg" or "unreg"
		userID string
		connID string
	}
	tests := []struct {
		name     string
		ops      []op
		userID   string
		wantConn string
		wantOK   bool
	}{
		{
			name: "register unregister register",
			ops: []op{
				{"reg", "u1", "c1"},
				{"unreg", "u1", "c1"},
				{"reg", "u1", "c2"},
			},
			userID: "u1", wantConn: "c2", wantOK: true,
		},
		{
			name: "interleaved users",
			ops: []op{
				{"reg", "u1", "c1"},
				{"reg", "u2", "c2"},
				{"unreg", "u1", "c1"},
			},
			userID: "u2", wantConn: "c2", wantOK: true,
		},
		{
			name: "double reconnect with one stale disconnect",
			ops: []op{
				{"reg", "u1", "c1"},
				{"reg", "u1", "c2"},
				{"reg", "u1", "c3"},
				{"unreg", "u1", "c1"},
				{"unreg", "u1", "c2"},
			},
			userID: "u1", wantConn: "c3", wantOK: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRegistry()
			for _, o := range tt.ops {
				switch o.kind {
				case "reg":
					r.Register(o.userID, o.connID)
				case "unreg":
					r.Unregister(o.userID, o.connID)
				}
			}
			connID, ok := r.Lookup(tt.userID)
			if ok != tt.wantOK || connID != tt.wantConn {
				t.Errorf("Lookup(%s) = %q, %v, want %q, %v", tt.userID, connID, ok, tt.wantConn, tt.wantOK)
			}
		})
	}
}
