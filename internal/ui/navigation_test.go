package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rlind/attest/internal/catalog"
	"github.com/rlind/attest/internal/state"
)

func testModel() Model {
	store := state.NewStore(DefaultViewID, nil, nil)
	m := New(Options{Store: store, Catalog: catalog.New()})
	m.width = 100
	m.height = 40
	m.ready = true
	m.initHistoryViewport()
	return m
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func press(t *testing.T, m Model, msg tea.KeyMsg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return out
}

func TestNavigate_UnknownIDFallsBackToDefault(t *testing.T) {
	m := testModel()

	m.navigate("bogus-view")

	// The raw id is recorded, rendering falls back.
	if m.snap.ActiveViewID != "bogus-view" {
		t.Errorf("ActiveViewID = %q, want bogus-view", m.snap.ActiveViewID)
	}
	if got := m.currentViewID(); got != DefaultViewID {
		t.Errorf("currentViewID() = %q, want %q", got, DefaultViewID)
	}
	if out := m.renderContent(); out == "" {
		t.Error("renderContent() empty for unknown id")
	}
}

func TestNavigate_SameViewIsIdempotent(t *testing.T) {
	m := testModel()

	m.navigate("history")
	m.navigate("history")

	if m.snap.ActiveViewID != "history" {
		t.Errorf("ActiveViewID = %q, want history", m.snap.ActiveViewID)
	}
	if !m.cat.Entries()[2].Active {
		t.Error("history catalog entry not active")
	}
}

func TestNavigate_ClosesPalette(t *testing.T) {
	m := testModel()
	m.openOverlay(overlayPalette)

	m.navigate("settings")

	if m.overlay.kind != overlayNone {
		t.Errorf("overlay = %d, want none after navigation", m.overlay.kind)
	}
	if m.snap.ActiveViewID != "settings" {
		t.Errorf("ActiveViewID = %q, want settings", m.snap.ActiveViewID)
	}
}

func TestNavigate_LeavingDashboardClosesSearchBox(t *testing.T) {
	m := testModel()
	m.openSearchBox()
	if !m.searchBox.session.Open || m.focus != focusSearchBox {
		t.Fatal("search box did not open")
	}

	m.navigate("about")

	if m.searchBox.session.Open {
		t.Error("search box still open after leaving the dashboard")
	}
	if m.searchBox.session.Query != "" {
		t.Errorf("query = %q, want cleared", m.searchBox.session.Query)
	}
}

func TestAdjacentView_Wraps(t *testing.T) {
	m := testModel()

	if got := m.adjacentView(-1); got != "about" {
		t.Errorf("adjacentView(-1) from dashboard = %q, want about", got)
	}

	m.navigate("about")
	if got := m.adjacentView(1); got != "dashboard" {
		t.Errorf("adjacentView(1) from about = %q, want dashboard", got)
	}
}

func TestKey_SwitchesViews(t *testing.T) {
	m := testModel()

	m = press(t, m, keyRune('v'))
	if m.currentViewID() != "verify" {
		t.Fatalf("view = %q, want verify", m.currentViewID())
	}
	if m.focus != focusVerifyInput {
		t.Error("verify view did not focus the claim input")
	}

	// Escape unfocuses the input, a second escape returns to the dashboard.
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.focus != focusMain {
		t.Error("escape did not unfocus the claim input")
	}
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.currentViewID() != DefaultViewID {
		t.Errorf("view = %q, want dashboard", m.currentViewID())
	}
}

func TestView_RenderAllRegistered(t *testing.T) {
	m := testModel()
	for id := range viewRenderers {
		m.navigate(id)
		if out := m.View(); out == "" {
			t.Errorf("View() empty for %q", id)
		}
	}
}
