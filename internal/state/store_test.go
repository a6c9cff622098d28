package state

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestStore_ApplyAndSnapshotClone(t *testing.T) {
	s := NewStore("dashboard", nil, nil)

	view := "history"
	reachable := true
	s.Apply(Patch{
		ActiveViewID: &view,
		APIReachable: &reachable,
		Session:      &Session{Email: "a@b.c", Plan: "free"},
		AddRecent:    []Activity{{ID: 1, Text: "first"}},
	})

	snap := s.Snapshot()
	if snap.ActiveViewID != "history" || !snap.APIReachable {
		t.Fatalf("snapshot = %#v, want history/reachable", snap)
	}
	if snap.Session == nil || snap.Session.Email != "a@b.c" {
		t.Fatalf("session = %#v, want a@b.c", snap.Session)
	}

	// Returned snapshot should be independent of the stored one.
	snap.Recent[0].Text = "mutated"
	snap.Session.Email = "evil@b.c"
	snap.Preferences["sneaky"] = true

	snap2 := s.Snapshot()
	if snap2.Recent[0].Text != "first" {
		t.Fatalf("Snapshot should clone recent; got %q want first", snap2.Recent[0].Text)
	}
	if snap2.Session.Email != "a@b.c" {
		t.Fatalf("Snapshot should clone session; got %q", snap2.Session.Email)
	}
	if snap2.Preferences["sneaky"] {
		t.Fatal("Snapshot should clone preferences")
	}
}

func TestStore_AddRecentFrontInsertAndCap(t *testing.T) {
	s := NewStore("dashboard", nil, nil)

	for i := 0; i < MaxRecent+1; i++ {
		s.Apply(Patch{AddRecent: []Activity{{ID: int64(i), Text: fmt.Sprintf("claim %d", i)}}})
	}

	snap := s.Snapshot()
	if len(snap.Recent) != MaxRecent {
		t.Fatalf("len(Recent) = %d, want %d", len(snap.Recent), MaxRecent)
	}
	if snap.Recent[0].ID != int64(MaxRecent) {
		t.Fatalf("Recent[0].ID = %d, want newest %d", snap.Recent[0].ID, MaxRecent)
	}
	// The oldest record fell off the end.
	if snap.Recent[len(snap.Recent)-1].ID != 1 {
		t.Fatalf("oldest ID = %d, want 1", snap.Recent[len(snap.Recent)-1].ID)
	}
}

func TestStore_PreferencesShallowMerge(t *testing.T) {
	s := NewStore("dashboard", nil, nil)

	s.Apply(Patch{Preferences: map[string]bool{"a": true, "b": true}})
	s.Apply(Patch{Preferences: map[string]bool{"b": false}})

	snap := s.Snapshot()
	if !snap.Preferences["a"] {
		t.Fatal("merge dropped untouched key a")
	}
	if snap.Preferences["b"] {
		t.Fatal("merge did not overwrite key b")
	}
}

func TestStore_ClearSessionAndRecent(t *testing.T) {
	s := NewStore("dashboard", nil, nil)
	s.Apply(Patch{
		Session:   &Session{Email: "a@b.c"},
		AddRecent: []Activity{{ID: 1}},
	})

	s.Apply(Patch{ClearSession: true, ClearRecent: true})

	snap := s.Snapshot()
	if snap.Session != nil {
		t.Fatalf("session = %#v, want nil", snap.Session)
	}
	if len(snap.Recent) != 0 {
		t.Fatalf("recent = %#v, want empty", snap.Recent)
	}
}

func TestStore_NilPatchFieldsLeaveStateUntouched(t *testing.T) {
	s := NewStore("dashboard", nil, nil)
	reachable := true
	s.Apply(Patch{APIReachable: &reachable})

	s.Apply(Patch{})

	snap := s.Snapshot()
	if snap.ActiveViewID != "dashboard" || !snap.APIReachable {
		t.Fatalf("empty patch changed state: %#v", snap)
	}
}

// recordingSaver captures Persist calls and can fail on demand.
type recordingSaver struct {
	mu       sync.Mutex
	done     chan struct{}
	err      error
	settings []Snapshot
	recent   [][]Activity
}

func (r *recordingSaver) SaveSettings(s Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.settings = append(r.settings, s)
	return r.err
}

func (r *recordingSaver) SaveRecent(a []Activity) error {
	r.mu.Lock()
	r.recent = append(r.recent, a)
	r.mu.Unlock()
	if r.done != nil {
		close(r.done)
	}
	return r.err
}

func TestStore_PersistIsAsynchronous(t *testing.T) {
	saver := &recordingSaver{done: make(chan struct{})}
	s := NewStore("dashboard", saver, nil)
	s.Apply(Patch{AddRecent: []Activity{{ID: 7, Text: "claim"}}})

	s.Persist()

	select {
	case <-saver.done:
	case <-time.After(2 * time.Second):
		t.Fatal("saver was never invoked")
	}

	saver.mu.Lock()
	defer saver.mu.Unlock()
	if len(saver.settings) != 1 || len(saver.recent) != 1 {
		t.Fatalf("saver calls = %d/%d, want 1/1", len(saver.settings), len(saver.recent))
	}
	if saver.recent[0][0].ID != 7 {
		t.Fatalf("persisted ID = %d, want 7", saver.recent[0][0].ID)
	}
}

func TestStore_PersistFailureDoesNotPanic(t *testing.T) {
	saver := &recordingSaver{done: make(chan struct{}), err: errors.New("disk full")}
	s := NewStore("dashboard", saver, nil)

	s.Persist()

	select {
	case <-saver.done:
	case <-time.After(2 * time.Second):
		t.Fatal("saver was never invoked")
	}

	// The store stays usable after a persistence failure.
	s.Apply(Patch{AddRecent: []Activity{{ID: 1}}})
	if len(s.Snapshot().Recent) != 1 {
		t.Fatal("store unusable after failed persist")
	}
}
