package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestOverlay_EscapeClosesAndRestoresFocus(t *testing.T) {
	m := testModel()
	m.openSearchBox()
	m.openOverlay(overlayInfo)
	if m.overlay.kind != overlayInfo {
		t.Fatal("info overlay did not open")
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	if m.overlay.kind != overlayNone {
		t.Fatal("escape did not close the overlay")
	}
	if m.focus != focusSearchBox {
		t.Errorf("focus = %d, want search box restored", m.focus)
	}
}

func TestOverlay_ReplacementKeepsOriginalFocus(t *testing.T) {
	m := testModel()
	m.openSearchBox()

	m.openOverlay(overlayPalette)
	m.openOverlay(overlayUpgrade)
	if m.overlay.kind != overlayUpgrade {
		t.Fatal("upgrade overlay did not replace the palette")
	}
	if m.palette.session.Open {
		t.Error("palette session not reset on replacement")
	}

	m.closeOverlay()
	if m.focus != focusSearchBox {
		t.Errorf("focus = %d, want the pre-overlay search box", m.focus)
	}
}

func TestOverlay_PaletteShortcutSuppressedWhileTyping(t *testing.T) {
	m := testModel()
	m.openSearchBox()

	m = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlK})

	if m.overlay.kind != overlayNone {
		t.Error("ctrl+k opened the palette while the search box was focused")
	}
	if !m.searchBox.session.Open {
		t.Error("search box closed by suppressed shortcut")
	}

	// Same while the claim input has focus.
	m = testModel()
	m.navigate("verify")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlK})
	if m.overlay.kind != overlayNone {
		t.Error("ctrl+k opened the palette while the claim input was focused")
	}
}

func TestOverlay_CtrlKOpensPalette(t *testing.T) {
	m := testModel()

	m = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlK})

	if m.overlay.kind != overlayPalette {
		t.Fatal("ctrl+k did not open the palette")
	}
	if !m.palette.session.Open {
		t.Fatal("palette session not open")
	}
	// Curated suggestions appear without any typing.
	if len(m.palette.session.Results) == 0 {
		t.Fatal("no suggestions for the empty query")
	}
	if m.palette.session.Results[0].SourceID != "dashboard" {
		t.Errorf("first suggestion = %q, want dashboard", m.palette.session.Results[0].SourceID)
	}
}

func TestOverlay_OutsideClickCloses(t *testing.T) {
	m := testModel()
	m.openOverlay(overlayUpgrade)

	// A click inside the box keeps it open.
	x, y, w, h := m.overlayBounds()
	inside := tea.MouseMsg{
		X: x + w/2, Y: y + h/2,
		Action: tea.MouseActionPress, Button: tea.MouseButtonLeft,
	}
	next, _ := m.Update(inside)
	m = next.(Model)
	if m.overlay.kind != overlayUpgrade {
		t.Fatal("inside click closed the overlay")
	}

	// A click on the backdrop dismisses it.
	outside := tea.MouseMsg{
		X: 0, Y: 0,
		Action: tea.MouseActionPress, Button: tea.MouseButtonLeft,
	}
	next, _ = m.Update(outside)
	m = next.(Model)
	if m.overlay.kind != overlayNone {
		t.Fatal("outside click did not close the overlay")
	}
}

func TestAuth_FocusRingWraps(t *testing.T) {
	m := testModel()
	m.openOverlay(overlayAuth)
	if len(m.auth.inputs) != 2 {
		t.Fatalf("login inputs = %d, want 2", len(m.auth.inputs))
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.auth.focusIdx != 1 {
		t.Errorf("focusIdx = %d, want 1", m.auth.focusIdx)
	}
	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.auth.focusIdx != 0 {
		t.Errorf("focusIdx = %d, want wrap to 0", m.auth.focusIdx)
	}
	m = press(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.auth.focusIdx != 1 {
		t.Errorf("focusIdx = %d, want wrap to 1", m.auth.focusIdx)
	}
}

func TestAuth_TabSwitchRebuildsInputs(t *testing.T) {
	m := testModel()
	m.openOverlay(overlayAuth)
	m.auth.inputs[0].SetValue("typed@example.com")

	m = press(t, m, tea.KeyMsg{Type: tea.KeyRight})

	if m.auth.tab != authTabRegister {
		t.Fatal("right arrow did not switch to register")
	}
	if len(m.auth.inputs) != 3 {
		t.Fatalf("register inputs = %d, want 3", len(m.auth.inputs))
	}
	if m.auth.inputs[0].Value() != "" {
		t.Error("switching tabs kept stale input")
	}
}

func TestAuth_SubmitCreatesSession(t *testing.T) {
	m := testModel()
	m.openOverlay(overlayAuth)
	m.auth.inputs[0].SetValue("kai@example.com")
	m.auth.inputs[1].SetValue("hunter2")

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.overlay.kind != overlayNone {
		t.Fatal("successful sign-in left the dialog open")
	}
	if m.snap.Session == nil || m.snap.Session.Email != "kai@example.com" {
		t.Fatalf("session = %#v", m.snap.Session)
	}
	if m.snap.Session.Plan != "free" {
		t.Errorf("plan = %q, want free", m.snap.Session.Plan)
	}
}

func TestAuth_SubmitValidates(t *testing.T) {
	m := testModel()
	m.openOverlay(overlayAuth)
	m.auth.inputs[0].SetValue("not-an-email")
	m.auth.inputs[1].SetValue("pw")

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.overlay.kind != overlayAuth {
		t.Fatal("invalid email closed the dialog")
	}
	if m.auth.errText == "" {
		t.Error("no validation message shown")
	}
	if m.snap.Session != nil {
		t.Error("session created from invalid form")
	}
}

func TestSignOut_ReLocksProDestinations(t *testing.T) {
	m := testModel()
	m.openOverlay(overlayAuth)
	m.auth.inputs[0].SetValue("kai@example.com")
	m.auth.inputs[1].SetValue("hunter2")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	m.navigate("account")
	m = press(t, m, keyRune('x'))

	if m.snap.Session != nil {
		t.Fatal("sign out kept the session")
	}
	if entry, _ := m.cat.Lookup("batch"); !entry.Locked {
		t.Error("batch stayed unlocked after sign out")
	}
}
