package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// overlayKind identifies the transient dialog rendered above the active
// view. At most one overlay is open at a time.
type overlayKind int

const (
	overlayNone overlayKind = iota
	overlayPalette
	overlayAuth
	overlayUpgrade
	overlayInfo
)

// overlayState tracks the open overlay and the focus to restore when it
// closes. Every dismissal path (close key, Escape, outside click) funnels
// through closeOverlay so restoration runs exactly once.
type overlayState struct {
	kind  overlayKind
	prior focusArea
}

// openOverlay opens kind, implicitly replacing any overlay already open.
// The pre-overlay focus is recorded on the first open and survives
// replacement, so closing always restores the surface the user came from.
func (m *Model) openOverlay(kind overlayKind) {
	if m.overlay.kind == overlayNone {
		m.overlay.prior = m.focus
		m.searchBox.input.Blur()
		m.verifyInput.Blur()
	} else {
		m.resetOverlayState(m.overlay.kind)
	}
	m.overlay.kind = kind

	switch kind {
	case overlayPalette:
		m.openPalette()
	case overlayAuth:
		// Focusable elements are recomputed on every open, never cached.
		m.auth = newAuthState(authTabLogin)
	}
}

// closeOverlay resets the open overlay's state and restores focus.
func (m *Model) closeOverlay() {
	m.resetOverlayState(m.overlay.kind)
	m.overlay.kind = overlayNone

	m.focus = m.overlay.prior
	switch m.focus {
	case focusSearchBox:
		if m.searchBox.session.Open {
			m.searchBox.input.Focus()
		} else {
			m.focus = focusMain
		}
	case focusVerifyInput:
		m.verifyInput.Focus()
	}
}

func (m *Model) resetOverlayState(kind overlayKind) {
	switch kind {
	case overlayPalette:
		m.palette.reset()
	case overlayAuth:
		m.auth = authState{}
	}
}

// handleOverlayKey routes keystrokes while an overlay is open.
func (m Model) handleOverlayKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.overlay.kind {
	case overlayPalette:
		return m.handlePaletteKey(msg)

	case overlayAuth:
		return m.handleAuthKey(msg)

	case overlayUpgrade, overlayInfo:
		switch msg.String() {
		case "esc", "enter", "q", " ":
			m.closeOverlay()
		}
		return m, nil
	}
	return m, nil
}

// renderOverlay renders the open overlay centered over a blank backdrop.
func (m Model) renderOverlay() string {
	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		m.overlayBox(),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(m.theme.Background)),
	)
}

func (m Model) overlayBox() string {
	switch m.overlay.kind {
	case overlayPalette:
		return m.renderPaletteBox()
	case overlayAuth:
		return m.renderAuthBox()
	case overlayUpgrade:
		return m.renderUpgradeBox()
	case overlayInfo:
		return m.renderInfoBox()
	}
	return ""
}

// overlayBounds reports the rectangle the centered overlay occupies, for
// outside-click dismissal.
func (m Model) overlayBounds() (x, y, w, h int) {
	box := m.overlayBox()
	w = lipgloss.Width(box)
	h = lipgloss.Height(box)
	x = (m.width - w) / 2
	y = (m.height - h) / 2
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	return x, y, w, h
}

func (m Model) renderUpgradeBox() string {
	styles := m.theme.Styles()
	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Upgrade to Pro"))
	b.WriteString("\n\n")
	b.WriteString(styles.Text.Render("Pro unlocks batch verification and the source explorer."))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("Manage your subscription at veritas.example/account."))
	b.WriteString("\n\n")
	b.WriteString(styles.FaintText.Render("esc close"))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.BorderFocus)).
		Padding(1, 2).
		Width(54).
		Render(b.String())
}

// renderInfoBox renders the keyboard shortcut reference.
func (m Model) renderInfoBox() string {
	styles := m.theme.Styles()
	var b strings.Builder

	b.WriteString(styles.Text.Bold(true).Render("Keyboard Shortcuts"))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 32)))
	b.WriteString("\n\n")

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.theme.Warning)).
		Width(12)
	rows := m.keys.FullHelp()
	for i, row := range rows {
		for _, binding := range row {
			help := binding.Help()
			b.WriteString(keyStyle.Render(help.Key))
			b.WriteString(styles.Text.Render(help.Desc))
			b.WriteString("\n")
		}
		if i < len(rows)-1 {
			b.WriteString("\n")
		}
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Accent)).
		Padding(1, 2).
		Width(44).
		Render(b.String())
}
