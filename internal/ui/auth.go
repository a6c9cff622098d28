package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rlind/attest/internal/state"
)

type authTab int

const (
	authTabLogin authTab = iota
	authTabRegister
)

// authState is the sign-in dialog. Inputs are rebuilt whenever the dialog
// opens or the tab switches, so the focus ring always matches the visible
// fields. Tab and shift+tab cycle within the ring and wrap at the edges.
type authState struct {
	tab      authTab
	inputs   []textinput.Model
	labels   []string
	focusIdx int
	errText  string
}

func newAuthState(tab authTab) authState {
	labels := []string{"Email", "Password"}
	if tab == authTabRegister {
		labels = append(labels, "Confirm password")
	}

	inputs := make([]textinput.Model, len(labels))
	for i, label := range labels {
		in := textinput.New()
		in.Prompt = "› "
		in.CharLimit = 120
		in.Placeholder = label
		if label != "Email" {
			in.EchoMode = textinput.EchoPassword
			in.EchoCharacter = '•'
		}
		inputs[i] = in
	}
	inputs[0].Focus()

	return authState{
		tab:    tab,
		inputs: inputs,
		labels: labels,
	}
}

// moveFocus advances the focus ring by delta with wraparound.
func (a *authState) moveFocus(delta int) {
	a.inputs[a.focusIdx].Blur()
	n := len(a.inputs)
	a.focusIdx = ((a.focusIdx+delta)%n + n) % n
	a.inputs[a.focusIdx].Focus()
}

// handleAuthKey processes keystrokes while the sign-in dialog is open.
func (m Model) handleAuthKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closeOverlay()
		return m, nil

	case "ctrl+k":
		return m, nil

	case "left", "right":
		// Switching tabs discards what was typed; the field set differs.
		next := authTabLogin
		if m.auth.tab == authTabLogin {
			next = authTabRegister
		}
		m.auth = newAuthState(next)
		return m, nil

	case "tab", "down":
		m.auth.moveFocus(1)
		return m, nil

	case "shift+tab", "up":
		m.auth.moveFocus(-1)
		return m, nil

	case "enter":
		return m.submitAuth()
	}

	var cmd tea.Cmd
	m.auth.inputs[m.auth.focusIdx], cmd = m.auth.inputs[m.auth.focusIdx].Update(msg)
	return m, cmd
}

// submitAuth validates the form and establishes the session.
func (m Model) submitAuth() (tea.Model, tea.Cmd) {
	email := strings.TrimSpace(m.auth.inputs[0].Value())
	password := m.auth.inputs[1].Value()

	switch {
	case email == "" || !strings.Contains(email, "@"):
		m.auth.errText = "Enter a valid email address"
		return m, nil
	case password == "":
		m.auth.errText = "Password must not be empty"
		return m, nil
	case m.auth.tab == authTabRegister && m.auth.inputs[2].Value() != password:
		m.auth.errText = "Passwords do not match"
		return m, nil
	}

	session := state.Session{Email: email, Plan: "free"}
	if m.store != nil {
		m.store.Apply(state.Patch{Session: &session})
		m.store.Persist()
		m.snap = m.store.Snapshot()
	} else {
		m.snap.Session = &session
	}
	m.cat.RecomputeLocked(session.Plan)

	m.closeOverlay()
	cmd := m.showToast("Signed in as "+email, toastSuccess)
	return m, cmd
}

func (m Model) renderAuthBox() string {
	styles := m.theme.Styles()
	var b strings.Builder

	activeTab := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.theme.SelectionText)).
		Background(lipgloss.Color(m.theme.SelectionBg)).
		Padding(0, 2)
	idleTab := styles.MutedText.Padding(0, 2)

	login := idleTab.Render("Sign in")
	register := idleTab.Render("Register")
	if m.auth.tab == authTabLogin {
		login = activeTab.Render("Sign in")
	} else {
		register = activeTab.Render("Register")
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, login, " ", register))
	b.WriteString("\n\n")

	for i, in := range m.auth.inputs {
		b.WriteString(styles.MutedText.Render(m.auth.labels[i]))
		b.WriteString("\n")
		b.WriteString(in.View())
		b.WriteString("\n")
	}

	if m.auth.errText != "" {
		b.WriteString("\n")
		b.WriteString(styles.DangerText.Render(m.auth.errText))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render("tab next field  ←/→ switch  enter submit  esc close"))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.BorderFocus)).
		Padding(1, 2).
		Width(56).
		Render(b.String())
}
