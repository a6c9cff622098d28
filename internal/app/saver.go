package app

import (
	"sync"

	"github.com/rlind/attest/internal/prefs"
	"github.com/rlind/attest/internal/state"
)

// prefsSaver adapts the prefs package to the state.Saver interface. The
// theme is owned by the UI rather than the store, so it is carried here and
// folded into each settings write.
type prefsSaver struct {
	settingsPath string
	historyPath  string

	mu    sync.Mutex
	theme string
}

var _ state.Saver = (*prefsSaver)(nil)

func (p *prefsSaver) rememberTheme(name string) {
	p.mu.Lock()
	p.theme = name
	p.mu.Unlock()
}

func (p *prefsSaver) currentTheme() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.theme
}

// SaveSettings implements state.Saver.
func (p *prefsSaver) SaveSettings(snap state.Snapshot) error {
	settings := prefs.Settings{
		Theme:       p.currentTheme(),
		Preferences: snap.Preferences,
	}
	if snap.Session != nil {
		settings.Email = snap.Session.Email
		settings.Plan = snap.Session.Plan
	}
	return prefs.SaveSettings(p.settingsPath, settings)
}

// SaveRecent implements state.Saver.
func (p *prefsSaver) SaveRecent(items []state.Activity) error {
	records := make([]prefs.Record, 0, len(items))
	for _, a := range items {
		records = append(records, prefs.Record{
			ID:        a.ID,
			Text:      a.Text,
			Score:     a.Score,
			Verdict:   string(a.Verdict),
			CreatedAt: a.CreatedAt,
			Sources:   a.Sources,
		})
	}
	return prefs.SaveHistory(p.historyPath, records)
}
