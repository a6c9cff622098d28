package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rlind/attest/internal/state"
)

// navigate switches the active view. Unknown ids are tolerated: the id is
// recorded as-is and rendering falls back to the default view, so a
// malformed destination can never crash navigation. Calling navigate with
// the current id just re-renders.
func (m *Model) navigate(viewID string) tea.Cmd {
	if m.store != nil {
		active := viewID
		m.store.Apply(state.Patch{ActiveViewID: &active})
		m.snap = m.store.Snapshot()
	} else {
		m.snap.ActiveViewID = viewID
	}
	m.cat.SetActive(viewID)

	// Navigation always dismisses the palette.
	if m.overlay.kind == overlayPalette {
		m.closeOverlay()
	}

	resolved := resolveViewID(viewID)

	// The inline search surface lives on the dashboard; leaving closes it.
	if resolved != "dashboard" && m.searchBox.session.Open {
		m.closeSearchBox()
	}

	attach, ok := viewAttach[resolved]
	if !ok {
		attach = viewAttach[DefaultViewID]
	}
	cmd := attach(m)

	if m.store != nil {
		m.store.Persist()
	}
	return cmd
}

// currentViewID resolves the active view id to a registered view.
func (m Model) currentViewID() string {
	return resolveViewID(m.snap.ActiveViewID)
}

// adjacentView returns the next or previous view in the tab cycle relative
// to the current one.
func (m Model) adjacentView(delta int) string {
	current := m.currentViewID()
	n := len(viewOrder)
	for i, id := range viewOrder {
		if id == current {
			return viewOrder[((i+delta)%n+n)%n]
		}
	}
	return DefaultViewID
}
