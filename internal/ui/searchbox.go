package ui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rlind/attest/internal/search"
)

// searchBoxState is the dashboard's inline search surface. It runs its own
// session and debounce version, independent of the palette.
type searchBoxState struct {
	input   textinput.Model
	session *search.Session
	version int
}

func newSearchBoxState() searchBoxState {
	input := textinput.New()
	input.Placeholder = "Search destinations and history"
	input.Prompt = ""
	input.CharLimit = 120
	return searchBoxState{
		input:   input,
		session: search.NewSession(),
	}
}

// openSearchBox activates the inline search surface and shows the curated
// suggestions for the empty query.
func (m *Model) openSearchBox() {
	m.searchBox.input.Reset()
	m.searchBox.input.Focus()
	m.searchBox.session.Close()
	m.searchBox.session.Open = true
	m.searchBox.session.SetResults(m.engine.Search("", nil, 0))
	m.focus = focusSearchBox
}

// closeSearchBox deactivates the surface and clears its query and results.
func (m *Model) closeSearchBox() {
	m.searchBox.session.Close()
	m.searchBox.input.Reset()
	m.searchBox.input.Blur()
	if m.focus == focusSearchBox {
		m.focus = focusMain
	}
}

// handleSearchBoxKey processes keystrokes while the inline search surface
// has focus.
func (m Model) handleSearchBoxKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closeSearchBox()
		return m, nil

	case "ctrl+k":
		// Reserved palette shortcut is ignored while typing.
		return m, nil

	case "up", "ctrl+p":
		m.searchBox.session.Move(-1)
		return m, nil

	case "down", "ctrl+n":
		m.searchBox.session.Move(1)
		return m, nil

	case "enter":
		r, ok := m.searchBox.session.Accept()
		if !ok {
			return m, nil
		}
		cmd := m.resolveSearchResult(r)
		m.closeSearchBox()
		return m, cmd
	}

	var cmd tea.Cmd
	m.searchBox.input, cmd = m.searchBox.input.Update(msg)
	if v := m.searchBox.input.Value(); v != m.searchBox.session.Query {
		m.searchBox.session.Query = v
		m.searchBox.version++
		return m, tea.Batch(cmd, debounceCmd(surfaceSearchBox, m.searchBox.version))
	}
	return m, cmd
}
