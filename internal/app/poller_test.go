package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rlind/attest/internal/state"
	"github.com/rlind/attest/internal/veritas"
)

func TestCalculateBackoff(t *testing.T) {
	base := 2 * time.Second

	tests := []struct {
		name     string
		failures int
		want     time.Duration
	}{
		{"zero failures", 0, 2 * time.Second},
		{"negative failures", -1, 2 * time.Second},
		{"one failure", 1, 4 * time.Second},
		{"two failures", 2, 8 * time.Second},
		{"three failures", 3, 16 * time.Second},
		{"four failures capped", 4, 30 * time.Second}, // Would be 32s, capped to 30s
		{"many failures capped", 10, 30 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calculateBackoff(tt.failures, base)
			if got != tt.want {
				t.Errorf("calculateBackoff(%d, %v) = %v, want %v", tt.failures, base, got, tt.want)
			}
		})
	}
}

func TestCalculateBackoff_MaxCap(t *testing.T) {
	base := 2 * time.Second
	for failures := 0; failures <= 20; failures++ {
		got := calculateBackoff(failures, base)
		if got > maxBackoff {
			t.Errorf("calculateBackoff(%d, %v) = %v, exceeds maxBackoff %v", failures, base, got, maxBackoff)
		}
	}
}

// fakeAPI lets tests script health outcomes.
type fakeAPI struct {
	healthErr error
}

func (f *fakeAPI) Health(ctx context.Context) error { return f.healthErr }

func (f *fakeAPI) Verify(ctx context.Context, text string) (*veritas.VerifyResult, error) {
	return nil, errors.New("not implemented")
}

func TestCheck_FlipsReachability(t *testing.T) {
	store := state.NewStore("dashboard", nil, nil)
	api := &fakeAPI{}

	if !check(context.Background(), store, api, nil) {
		t.Fatal("check() = false with healthy daemon")
	}
	if !store.Snapshot().APIReachable {
		t.Fatal("APIReachable = false after healthy check")
	}

	api.healthErr = errors.New("connection refused")
	if check(context.Background(), store, api, nil) {
		t.Fatal("check() = true with failing daemon")
	}
	if store.Snapshot().APIReachable {
		t.Fatal("APIReachable = true after failed check")
	}
}

func TestStartPoller_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	store := state.NewStore("dashboard", nil, nil)

	StartPoller(ctx, store, &fakeAPI{}, time.Hour, nil)

	// The first check runs before the first wait, so reachability flips even
	// with a long interval.
	deadline := time.After(2 * time.Second)
	for !store.Snapshot().APIReachable {
		select {
		case <-deadline:
			t.Fatal("poller never ran its first check")
		case <-time.After(10 * time.Millisecond):
		}
	}
	cancel()
}
