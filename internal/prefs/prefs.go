// Package prefs persists attest settings and verification history.
// Settings live in ~/.config/attest/settings.toml, history in recent.toml.
// Loading tolerates missing or corrupt files and degrades to defaults; the
// shell must come up even with no persistence backend at all.
package prefs

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Settings holds everything the shell restores at startup: the saved
// session, the theme, and the preference toggles.
type Settings struct {
	Theme       string          `toml:"theme"`
	Email       string          `toml:"email"`
	Plan        string          `toml:"plan"`
	Preferences map[string]bool `toml:"preferences"`
}

// Record is one persisted verification.
type Record struct {
	ID        int64     `toml:"id"`
	Text      string    `toml:"text"`
	Score     int       `toml:"score"`
	Verdict   string    `toml:"verdict"`
	CreatedAt time.Time `toml:"created_at"`
	Sources   int       `toml:"sources"`
}

type history struct {
	Records []Record `toml:"records"`
}

const (
	defaultSettingsPath = "~/.config/attest/settings.toml"
	defaultHistoryPath  = "~/.config/attest/recent.toml"
	defaultTheme        = "Nightfox"
)

// DefaultSettingsPath returns the default settings file path.
func DefaultSettingsPath() string { return defaultSettingsPath }

// DefaultHistoryPath returns the default history file path.
func DefaultHistoryPath() string { return defaultHistoryPath }

// LoadSettings reads settings from the given path, falling back to defaults
// when the file is missing or unreadable.
func LoadSettings(path string) Settings {
	settings := Settings{Theme: defaultTheme, Preferences: make(map[string]bool)}

	resolved, err := resolvePath(path, defaultSettingsPath)
	if err != nil {
		return settings
	}

	file, err := os.Open(resolved)
	if err != nil {
		return settings
	}
	defer func() { _ = file.Close() }()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return settings
	}

	if err := toml.Unmarshal(bytes, &settings); err != nil {
		return Settings{Theme: defaultTheme, Preferences: make(map[string]bool)}
	}

	if strings.TrimSpace(settings.Theme) == "" {
		settings.Theme = defaultTheme
	}
	if settings.Preferences == nil {
		settings.Preferences = make(map[string]bool)
	}
	return settings
}

// SaveSettings writes settings to the given path, creating directories as
// needed.
func SaveSettings(path string, s Settings) error {
	resolved, err := resolvePath(path, defaultSettingsPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}
	return writeTOML(resolved, s)
}

// LoadHistory reads persisted verification records. Any failure yields an
// empty history rather than an error.
func LoadHistory(path string) []Record {
	resolved, err := resolvePath(path, defaultHistoryPath)
	if err != nil {
		return nil
	}

	bytes, err := os.ReadFile(resolved)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return nil
	}

	var h history
	if err := toml.Unmarshal(bytes, &h); err != nil {
		return nil
	}
	return h.Records
}

// SaveHistory writes the record list to the given path.
func SaveHistory(path string, records []Record) error {
	resolved, err := resolvePath(path, defaultHistoryPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}
	return writeTOML(resolved, history{Records: records})
}

func writeTOML(path string, v any) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create dir: %w", err)
	}

	bytes, err := toml.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}

	if err := os.WriteFile(path, bytes, 0o644); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

func resolvePath(path, fallback string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(fallback)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
