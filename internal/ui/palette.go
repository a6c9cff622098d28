package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rlind/attest/internal/search"
)

const paletteWidth = 60

// paletteState holds the command palette's input and search session. The
// version counter stamps scheduled searches so stale debounce ticks can be
// discarded.
type paletteState struct {
	input   textinput.Model
	session *search.Session
	version int
}

func newPaletteState() paletteState {
	input := textinput.New()
	input.Placeholder = "Where to?"
	input.Prompt = "› "
	input.CharLimit = 120
	return paletteState{
		input:   input,
		session: search.NewSession(),
	}
}

func (p *paletteState) reset() {
	p.input.Reset()
	p.input.Blur()
	p.session.Close()
}

// openPalette prepares the palette for a fresh session. The curated
// suggestions appear immediately; typed queries go through the debounce.
func (m *Model) openPalette() {
	m.palette.input.Reset()
	m.palette.input.Focus()
	m.palette.session.Close()
	m.palette.session.Open = true
	m.palette.session.SetResults(m.engine.Search("", nil, search.PaletteLimit))
}

// handlePaletteKey processes keystrokes while the palette is open.
func (m Model) handlePaletteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+k":
		m.closeOverlay()
		return m, nil

	case "up", "ctrl+p", "shift+tab":
		m.palette.session.Move(-1)
		return m, nil

	case "down", "ctrl+n", "tab":
		m.palette.session.Move(1)
		return m, nil

	case "enter":
		r, ok := m.palette.session.Accept()
		if !ok {
			return m, nil
		}
		cmd := m.resolveSearchResult(r)
		// Locked destinations swap the palette for the upgrade prompt;
		// everything else navigated and already closed it.
		if m.overlay.kind == overlayPalette {
			m.closeOverlay()
		}
		return m, cmd
	}

	var cmd tea.Cmd
	m.palette.input, cmd = m.palette.input.Update(msg)
	if v := m.palette.input.Value(); v != m.palette.session.Query {
		m.palette.session.Query = v
		m.palette.version++
		return m, tea.Batch(cmd, debounceCmd(surfacePalette, m.palette.version))
	}
	return m, cmd
}

func (m Model) renderPaletteBox() string {
	styles := m.theme.Styles()
	var b strings.Builder

	b.WriteString(m.palette.input.View())
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", paletteWidth-6)))
	b.WriteString("\n")
	b.WriteString(m.renderSearchResults(m.palette.session, search.PaletteLimit))
	b.WriteString("\n\n")
	b.WriteString(styles.FaintText.Render("↑/↓ select  enter go  esc close"))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.BorderFocus)).
		Padding(1, 2).
		Width(paletteWidth).
		Render(b.String())
}
