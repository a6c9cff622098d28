// Package app boots the attest shell: configuration, persisted settings and
// history, the veritas client, the state store, the health poller, and
// finally the TUI.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/rlind/attest/internal/catalog"
	"github.com/rlind/attest/internal/config"
	"github.com/rlind/attest/internal/prefs"
	"github.com/rlind/attest/internal/state"
	"github.com/rlind/attest/internal/ui"
	"github.com/rlind/attest/internal/veritas"
)

// Options configure the attest application.
type Options struct {
	ConfigPath   string
	SettingsPath string // empty uses default ~/.config/attest/settings.toml
	HistoryPath  string // empty uses default ~/.config/attest/recent.toml
	PollEvery    int    // seconds; zero uses the configured default
}

// Run boots the attest TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := newLogger(cfg.LogPath())

	settings := prefs.LoadSettings(opts.SettingsPath)
	records := prefs.LoadHistory(opts.HistoryPath)

	client, err := veritas.NewClient(cfg.Endpoint)
	if err != nil {
		return fmt.Errorf("init veritas client: %w", err)
	}

	saver := &prefsSaver{
		settingsPath: opts.SettingsPath,
		historyPath:  opts.HistoryPath,
		theme:        settings.Theme,
	}
	store := state.NewStore(ui.DefaultViewID, saver, logger)
	seedStore(store, settings, records)

	cat := catalog.New()
	if snap := store.Snapshot(); snap.Session != nil {
		cat.RecomputeLocked(snap.Session.Plan)
	}

	interval := time.Duration(cfg.PollSeconds) * time.Second
	if opts.PollEvery > 0 {
		interval = time.Duration(opts.PollEvery) * time.Second
	}

	StartPoller(ctx, store, client, interval, logger)

	uiOpts := ui.Options{
		Context:   ctx,
		Client:    client,
		Store:     store,
		Catalog:   cat,
		PollTick:  interval,
		ThemeName: settings.Theme,
		OnTheme:   saver.rememberTheme,
		Logger:    logger,
	}
	return ui.Run(uiOpts)
}

// seedStore restores the persisted session, preferences, and history into a
// fresh store.
func seedStore(store *state.Store, settings prefs.Settings, records []prefs.Record) {
	patch := state.Patch{Preferences: settings.Preferences}
	if settings.Email != "" {
		patch.Session = &state.Session{Email: settings.Email, Plan: settings.Plan}
	}
	store.Apply(patch)

	// Records persist most-recent-first; re-adding front-first would reverse
	// them, so walk backwards.
	add := make([]state.Activity, 0, len(records))
	for i := len(records) - 1; i >= 0; i-- {
		r := records[i]
		add = append(add, state.Activity{
			ID:        r.ID,
			Text:      r.Text,
			Score:     r.Score,
			Verdict:   state.Verdict(r.Verdict),
			CreatedAt: r.CreatedAt,
			Sources:   r.Sources,
		})
	}
	store.Apply(state.Patch{AddRecent: add})
}

// newLogger builds the file-backed logger. The TUI owns the terminal, so a
// broken log file silently discards output instead of corrupting the screen.
func newLogger(path string) *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.InfoLevel)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		logger.SetOutput(io.Discard)
		return logger
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		logger.SetOutput(io.Discard)
		return logger
	}
	logger.SetOutput(file)
	return logger
}
