package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rlind/attest/internal/search"
)

// DefaultViewID is rendered when the active view id is not registered.
const DefaultViewID = "dashboard"

type renderFunc func(Model) string

// attachFunc wires up view-specific interaction state after navigation.
// Attach routines must be idempotent; navigating to the current view runs
// them again.
type attachFunc func(*Model) tea.Cmd

var viewRenderers = map[string]renderFunc{
	"dashboard": renderDashboard,
	"verify":    renderVerify,
	"history":   renderHistory,
	"account":   renderAccount,
	"settings":  renderSettings,
	"about":     renderAbout,
	"batch":     renderBatch,
	"sources":   renderSources,
}

var viewAttach = map[string]attachFunc{
	"dashboard": attachDefault,
	"verify":    attachVerify,
	"history":   attachHistory,
	"account":   attachDefault,
	"settings":  attachSettings,
	"about":     attachDefault,
	"batch":     attachDefault,
	"sources":   attachDefault,
}

// viewOrder drives the tab cycle.
var viewOrder = []string{"dashboard", "verify", "history", "account", "settings", "about"}

var viewTitles = map[string]string{
	"dashboard": "Dashboard",
	"verify":    "Verify Claim",
	"history":   "History",
	"account":   "Account & Billing",
	"settings":  "Settings",
	"about":     "About",
	"batch":     "Batch Verify",
	"sources":   "Source Explorer",
}

// resolveViewID maps an arbitrary id to a registered view, falling back to
// the default.
func resolveViewID(id string) string {
	if _, ok := viewRenderers[id]; ok {
		return id
	}
	return DefaultViewID
}

// Attach routines

func attachDefault(m *Model) tea.Cmd {
	m.verifyInput.Blur()
	m.focus = focusMain
	return nil
}

func attachVerify(m *Model) tea.Cmd {
	m.focus = focusVerifyInput
	return m.verifyInput.Focus()
}

func attachHistory(m *Model) tea.Cmd {
	m.verifyInput.Blur()
	m.focus = focusMain
	m.updateHistoryViewport()
	m.historyViewport.GotoTop()
	return nil
}

func attachSettings(m *Model) tea.Cmd {
	m.verifyInput.Blur()
	m.focus = focusMain
	if m.settingsCursor >= len(preferenceItems) {
		m.settingsCursor = len(preferenceItems) - 1
	}
	return nil
}

// renderContent renders the active view, falling back to the default
// renderer for unknown ids.
func (m Model) renderContent() string {
	render, ok := viewRenderers[m.snap.ActiveViewID]
	if !ok {
		render = viewRenderers[DefaultViewID]
	}
	return render(m)
}

// Dashboard

func renderDashboard(m Model) string {
	styles := m.theme.Styles()
	var b strings.Builder

	// Inline search surface
	if m.searchBox.session.Open {
		b.WriteString(styles.AccentText.Render("/ "))
		b.WriteString(m.searchBox.input.View())
		b.WriteString("\n")
		b.WriteString(m.renderSearchResults(m.searchBox.session, m.contentHeight()-4))
		b.WriteString("\n")
	} else {
		b.WriteString(styles.FaintText.Render("Press / to search, ctrl+k for the command palette"))
		b.WriteString("\n\n")
	}

	// Summary cards
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Border)).
		Padding(0, 2).
		Width(24)

	total := fmt.Sprintf("%d", len(m.snap.Recent))
	verdict := "—"
	if len(m.snap.Recent) > 0 {
		verdict = string(m.snap.Recent[0].Verdict)
	}
	status := "offline"
	statusStyle := styles.DangerText
	if m.snap.APIReachable {
		status = "online"
		statusStyle = styles.SuccessText
	}
	plan := "guest"
	if m.snap.Session != nil {
		plan = m.snap.Session.Plan
		if plan == "" {
			plan = "free"
		}
	}

	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		card.Render(styles.MutedText.Render("Verifications")+"\n"+styles.Text.Bold(true).Render(total)),
		card.Render(styles.MutedText.Render("Last verdict")+"\n"+styles.VerdictStyle(verdict).Render(verdict)),
		card.Render(styles.MutedText.Render("Daemon")+"\n"+statusStyle.Render(status)),
		card.Render(styles.MutedText.Render("Plan")+"\n"+styles.AccentText.Render(plan)),
	)
	b.WriteString(cards)
	b.WriteString("\n\n")

	// Recent strip
	b.WriteString(styles.MutedText.Render("Recent"))
	b.WriteString("\n")
	if len(m.snap.Recent) == 0 {
		b.WriteString(styles.FaintText.Render("  Nothing verified yet. Press v to verify a claim."))
	} else {
		max := 5
		if len(m.snap.Recent) < max {
			max = len(m.snap.Recent)
		}
		for _, a := range m.snap.Recent[:max] {
			badge := styles.VerdictStyle(string(a.Verdict)).Render(string(a.Verdict))
			b.WriteString(fmt.Sprintf("  %s %s\n", badge, styles.Text.Render(truncate(a.Text, m.width-20))))
		}
	}

	return b.String()
}

// renderSearchResults renders a session's result list with the selection
// highlighted, windowed to maxLines.
func (m Model) renderSearchResults(s *search.Session, maxLines int) string {
	styles := m.theme.Styles()
	if len(s.Results) == 0 {
		if strings.TrimSpace(s.Query) == "" {
			return styles.FaintText.Render("  Type to search destinations and history")
		}
		return styles.FaintText.Render("  No matches")
	}

	if maxLines < 1 {
		maxLines = 1
	}
	start := 0
	if s.Selected >= maxLines {
		start = s.Selected - maxLines + 1
	}
	end := start + maxLines
	if end > len(s.Results) {
		end = len(s.Results)
	}

	var b strings.Builder
	for i := start; i < end; i++ {
		r := s.Results[i]
		prefix := "  "
		line := r.Label
		if r.Kind == search.KindHistory {
			line = "↺ " + line
		}
		if i == s.Selected {
			b.WriteString(styles.Selected.Render("> " + line))
		} else {
			b.WriteString(prefix + styles.Text.Render(line))
		}
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// Verify

func renderVerify(m Model) string {
	styles := m.theme.Styles()
	var b strings.Builder

	b.WriteString(styles.MutedText.Render("Submit a claim for verification"))
	b.WriteString("\n\n")
	b.WriteString(m.verifyInput.View())
	b.WriteString("\n\n")

	if m.verifying {
		b.WriteString(styles.InfoText.Render("Verifying..."))
		b.WriteString("\n")
	}

	if m.lastResult != nil {
		a := m.lastResult
		badge := styles.VerdictStyle(string(a.Verdict)).Render(string(a.Verdict))
		b.WriteString(fmt.Sprintf("%s  score %d/100  %d sources\n", badge, a.Score, a.Sources))
		b.WriteString(styles.FaintText.Render(truncate(a.Text, m.width-4)))
		b.WriteString("\n")
	}

	if !m.snap.APIReachable {
		b.WriteString("\n")
		b.WriteString(styles.WarningText.Render("Daemon offline: running in demo mode"))
	}

	return b.String()
}

// History

func renderHistory(m Model) string {
	return m.historyViewport.View()
}

// updateHistoryViewport rebuilds the history listing from the snapshot.
func (m *Model) updateHistoryViewport() {
	styles := m.theme.Styles()
	if len(m.snap.Recent) == 0 {
		m.historyViewport.SetContent(styles.FaintText.Render("No verification history yet. Press v to verify a claim."))
		return
	}

	var b strings.Builder
	for _, a := range m.snap.Recent {
		badge := styles.VerdictStyle(string(a.Verdict)).Render(string(a.Verdict))
		when := a.CreatedAt.Format("2006-01-02 15:04")
		line := fmt.Sprintf("%s  %s  %3d/100  %d src  %s",
			styles.FaintText.Render(when), badge, a.Score, a.Sources,
			styles.Text.Render(truncate(a.Text, m.width-40)))
		b.WriteString(line)
		b.WriteString("\n")
	}
	m.historyViewport.SetContent(b.String())
}

// Account

func renderAccount(m Model) string {
	styles := m.theme.Styles()
	var b strings.Builder

	if m.snap.Session == nil {
		b.WriteString(styles.MutedText.Render("Not signed in"))
		b.WriteString("\n\n")
		b.WriteString(styles.Text.Render("Press i to sign in or create an account."))
		b.WriteString("\n")
	} else {
		s := m.snap.Session
		plan := s.Plan
		if plan == "" {
			plan = "free"
		}
		b.WriteString(styles.Text.Render("Signed in as ") + styles.AccentText.Render(s.Email))
		b.WriteString("\n")
		b.WriteString(styles.Text.Render("Plan: ") + styles.AccentText.Render(plan))
		b.WriteString("\n\n")
		b.WriteString(styles.FaintText.Render("x sign out"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("Plans"))
	b.WriteString("\n")
	b.WriteString(styles.Text.Render("  free  single claim verification, 200 history entries"))
	b.WriteString("\n")
	b.WriteString(styles.Text.Render("  pro   batch verification, source explorer"))
	b.WriteString("\n\n")
	b.WriteString(styles.FaintText.Render("u upgrade info"))

	return b.String()
}

// Settings

// preferenceItems is the fixed, ordered list of toggles shown on the
// settings view. Keys match the persisted preference map.
var preferenceItems = []struct {
	key   string
	label string
}{
	{"autosave_history", "Save history to disk"},
	{"show_scores", "Show confidence scores on the dashboard"},
	{"compact_recent", "Compact recent list"},
	{"notify_verdicts", "Toast on completed verifications"},
}

func renderSettings(m Model) string {
	styles := m.theme.Styles()
	var b strings.Builder

	b.WriteString(styles.MutedText.Render("Preferences"))
	b.WriteString("\n")
	for i, item := range preferenceItems {
		mark := "[ ]"
		if m.snap.Preferences[item.key] {
			mark = "[x]"
		}
		line := fmt.Sprintf("%s %s", mark, item.label)
		if i == m.settingsCursor {
			b.WriteString(styles.Selected.Render("> " + line))
		} else {
			b.WriteString("  " + styles.Text.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("Appearance"))
	b.WriteString("\n")
	b.WriteString(styles.Text.Render("  Theme: ") + styles.AccentText.Render(m.theme.Name) + styles.FaintText.Render("  (T cycles)"))
	b.WriteString("\n\n")
	b.WriteString(styles.FaintText.Render("Space toggles, t tests the daemon connection"))

	return b.String()
}

// About

func renderAbout(m Model) string {
	styles := m.theme.Styles()
	var b strings.Builder
	b.WriteString(styles.Logo.Render("ATTEST"))
	b.WriteString("\n\n")
	b.WriteString(styles.Text.Render("Terminal client for the veritas claim-verification daemon."))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("Claims are checked against multiple sources and fused into a single verdict."))
	b.WriteString("\n")
	return b.String()
}

// Pro views

func renderBatch(m Model) string {
	styles := m.theme.Styles()
	return styles.MutedText.Render("Batch verification queue") + "\n\n" +
		styles.FaintText.Render("Paste multiple claims to verify them in one pass.")
}

func renderSources(m Model) string {
	styles := m.theme.Styles()
	return styles.MutedText.Render("Source explorer") + "\n\n" +
		styles.FaintText.Render("Browse the sources consulted for each verdict.")
}

func truncate(s string, max int) string {
	if max < 4 {
		max = 4
	}
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}
