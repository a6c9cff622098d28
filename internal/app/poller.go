package app

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/rlind/attest/internal/state"
	"github.com/rlind/attest/internal/veritas"
)

const (
	defaultPollInterval = 5 * time.Second
	healthTimeout       = 3 * time.Second
	maxBackoff          = 30 * time.Second
)

// StartPoller launches a background goroutine that probes the daemon's
// health endpoint at a fixed cadence and flips the store's reachability
// flag. Checks run strictly one at a time: the next check is only scheduled
// after the previous one resolves or times out. It returns immediately.
func StartPoller(ctx context.Context, store *state.Store, client veritas.API, interval time.Duration, log logrus.FieldLogger) {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	go func() {
		failures := 0
		for {
			if check(ctx, store, client, log) {
				failures = 0
			} else {
				failures++
			}

			timer := time.NewTimer(calculateBackoff(failures, interval))
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-timer.C:
			}
		}
	}()
}

// check runs one bounded health probe and records the result. Returns true
// when the daemon was reachable.
func check(ctx context.Context, store *state.Store, client veritas.API, log logrus.FieldLogger) bool {
	cctx, cancel := context.WithTimeout(ctx, healthTimeout)
	err := client.Health(cctx)
	cancel()

	reachable := err == nil
	prev := store.Snapshot().APIReachable
	store.Apply(state.Patch{APIReachable: &reachable})

	if err != nil && prev {
		log.WithError(err).Warn("daemon unreachable")
	}
	if err == nil && !prev {
		log.Info("daemon reachable")
	}
	return reachable
}

// calculateBackoff stretches the poll interval after consecutive failures so
// a down daemon is not hammered, capped at maxBackoff.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	d := base
	for i := 0; i < failures; i++ {
		d *= 2
		if d >= maxBackoff {
			return maxBackoff
		}
	}
	return d
}
