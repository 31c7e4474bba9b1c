package http

import (
	"testing"
	"time"
)

func TestSessionStoreRoundTrip(t *testing.T) {
	store := newSessionStore(time.Minute)

	id, err := store.Create("alice", "tok")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	sess, ok := store.Get(id)
	if !ok {
		t.Fatal("expected session to exist")
	}
	if sess.login != "alice" || sess.token != "tok" {
		t.Fatalf("unexpected session %+v", sess)
	}

	store.Delete(id)
	if _, ok := store.Get(id); ok {
		t.Fatal("session should be gone after Delete")
	}
}

func TestSessionStoreExpiry(t *testing.T) {
	store := newSessionStore(time.Nanosecond)

	id, err := store.Create("alice", "tok")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	time.Sleep(time.Millisecond)

	if _, ok := store.Get(id); ok {
		t.Fatal("expected session to have expired")
	}
	if _, err := store.Create("bob", "tok2"); err != nil {
		t.Fatalf("Create: %v", err)
	}
	time.Sleep(time.Millisecond)
	if dropped := store.Purge(); dropped != 1 {
		t.Fatalf("Purge() = %d, want 1", dropped)
	}
}

func TestSessionIDsAreUnique(t *testing.T) {
	store := newSessionStore(time.Minute)
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		id, err := store.Create("alice", "tok")
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		if seen[id] {
			t.Fatalf("duplicate session id %s", id)
		}
		seen[id] = true
	}
}
