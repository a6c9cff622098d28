package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Palette    key.Binding
	Tab        key.Binding
	ShiftTab   key.Binding
	Escape     key.Binding

	// View switching
	ViewDashboard key.Binding
	ViewVerify    key.Binding
	ViewHistory   key.Binding
	ViewAccount   key.Binding
	ViewSettings  key.Binding
	ViewAbout     key.Binding

	// Navigation
	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding

	// Surfaces
	Search  key.Binding
	Confirm key.Binding

	// View actions
	ClearHistory key.Binding
	Toggle       key.Binding
	TestConn     key.Binding
	SignIn       key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		// Global
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "e"),
			key.WithHelp("e", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Shortcuts"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Palette: key.NewBinding(
			key.WithKeys("ctrl+k"),
			key.WithHelp("ctrl+k", "Command palette"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "Cycle views"),
		),
		ShiftTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "Cycle views (reverse)"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Return to dashboard"),
		),

		// View switching
		ViewDashboard: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "Dashboard"),
		),
		ViewVerify: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "Verify claim"),
		),
		ViewHistory: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "History"),
		),
		ViewAccount: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "Account"),
		),
		ViewSettings: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "Settings"),
		),
		ViewAbout: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "About"),
		),

		// Navigation
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "Go to top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Go to bottom"),
		),

		// Surfaces
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "Search"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Confirm"),
		),

		// View actions
		ClearHistory: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "Clear history"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("Space", "Toggle setting"),
		),
		TestConn: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "Test connection"),
		),
		SignIn: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "Sign in"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Palette, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Palette, k.Search, k.Tab},
		{k.ViewDashboard, k.ViewVerify, k.ViewHistory, k.ViewAccount, k.ViewSettings, k.ViewAbout},
		{k.Up, k.Down, k.Top, k.Bottom},
		{k.ClearHistory, k.Toggle, k.TestConn, k.SignIn},
		{k.CycleTheme, k.Help, k.Quit},
	}
}
