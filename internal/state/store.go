// Package state owns the mutable application record shared by the router,
// the search surfaces, and the background health poller. All mutation goes
// through Apply; callers outside the package only ever see copies.
package state

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Verdict classifies a completed verification.
type Verdict string

const (
	VerdictSupported Verdict = "supported"
	VerdictDisputed  Verdict = "disputed"
	VerdictUncertain Verdict = "uncertain"
	VerdictRefuted   Verdict = "refuted"
)

// Session holds the signed-in user, if any.
type Session struct {
	Email string
	Plan  string // "free" or "pro"
}

// Activity is one completed verification. Records are immutable after
// creation and removed only by bulk clear. ID is the creation time in unix
// nanoseconds and serves as the stable identity.
type Activity struct {
	ID        int64
	Text      string
	Score     int // 0-100
	Verdict   Verdict
	CreatedAt time.Time
	Sources   int
}

// MaxRecent caps the recent-activity list.
const MaxRecent = 200

// Snapshot is a point-in-time copy of the application state.
type Snapshot struct {
	ActiveViewID string
	Session      *Session
	APIReachable bool
	Recent       []Activity
	Preferences  map[string]bool
}

// Saver persists snapshots. Implementations must tolerate being called from
// a background goroutine. The zero dependency is substituted with a no-op so
// a missing persistence backend is never fatal.
type Saver interface {
	SaveSettings(Snapshot) error
	SaveRecent([]Activity) error
}

type nopSaver struct{}

func (nopSaver) SaveSettings(Snapshot) error { return nil }
func (nopSaver) SaveRecent([]Activity) error { return nil }

// Patch describes a state mutation. Nil pointer fields are left untouched;
// Preferences is shallow-merged; AddRecent entries are inserted at the front
// with truncation at MaxRecent.
type Patch struct {
	ActiveViewID *string
	Session      *Session
	ClearSession bool
	APIReachable *bool
	Preferences  map[string]bool
	AddRecent    []Activity
	ClearRecent  bool
}

// Store coordinates concurrent access to the snapshot.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
	saver    Saver
	log      logrus.FieldLogger
}

// NewStore creates a store whose active view starts at defaultView. A nil
// saver or logger degrades to a no-op / the standard logger.
func NewStore(defaultView string, saver Saver, log logrus.FieldLogger) *Store {
	if saver == nil {
		saver = nopSaver{}
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Store{
		snapshot: Snapshot{
			ActiveViewID: defaultView,
			Preferences:  make(map[string]bool),
		},
		saver: saver,
		log:   log,
	}
}

// Apply mutates the state according to patch.
func (s *Store) Apply(patch Patch) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if patch.ActiveViewID != nil {
		s.snapshot.ActiveViewID = *patch.ActiveViewID
	}
	if patch.ClearSession {
		s.snapshot.Session = nil
	} else if patch.Session != nil {
		dup := *patch.Session
		s.snapshot.Session = &dup
	}
	if patch.APIReachable != nil {
		s.snapshot.APIReachable = *patch.APIReachable
	}
	for k, v := range patch.Preferences {
		s.snapshot.Preferences[k] = v
	}
	if patch.ClearRecent {
		s.snapshot.Recent = nil
	}
	for _, a := range patch.AddRecent {
		s.snapshot.Recent = append([]Activity{a}, s.snapshot.Recent...)
	}
	if len(s.snapshot.Recent) > MaxRecent {
		s.snapshot.Recent = s.snapshot.Recent[:MaxRecent]
	}
}

// Snapshot returns an independent copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	if s.snapshot.Session != nil {
		dup := *s.snapshot.Session
		snap.Session = &dup
	}
	snap.Recent = cloneRecent(s.snapshot.Recent)
	snap.Preferences = make(map[string]bool, len(s.snapshot.Preferences))
	for k, v := range s.snapshot.Preferences {
		snap.Preferences[k] = v
	}
	return snap
}

// Persist hands the current snapshot to the saver without blocking the
// caller. Failures are logged and never surfaced as errors; navigation and
// search must not stall on a slow or broken persistence backend.
func (s *Store) Persist() {
	snap := s.Snapshot()
	go func() {
		if err := s.saver.SaveSettings(snap); err != nil {
			s.log.WithError(err).Warn("persist settings failed")
		}
		if err := s.saver.SaveRecent(snap.Recent); err != nil {
			s.log.WithError(err).Warn("persist history failed")
		}
	}()
}

func cloneRecent(items []Activity) []Activity {
	if len(items) == 0 {
		return nil
	}
	dup := make([]Activity, len(items))
	copy(dup, items)
	return dup
}
