package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderMain assembles the standard screen: header, command bar, active
// view content, and the status line.
func (m Model) renderMain() string {
	header := m.renderHeader()
	bar := m.renderCommandBar()
	content := m.renderContent()
	status := m.renderStatusLine()

	body := lipgloss.NewStyle().
		Height(m.contentHeight()).
		MaxHeight(m.contentHeight()).
		Render(content)

	return header + "\n" + bar + "\n" + body + "\n" + status
}

func (m Model) renderHeader() string {
	styles := m.theme.Styles()

	left := styles.Logo.Render(" ATTEST ") +
		styles.Text.Render(" "+viewTitles[m.currentViewID()])

	daemon := styles.DangerText.Render("● offline")
	if m.snap.APIReachable {
		daemon = styles.SuccessText.Render("● online")
	}
	who := styles.FaintText.Render("guest")
	if m.snap.Session != nil {
		who = styles.AccentText.Render(m.snap.Session.Email)
	}
	right := daemon + "  " + who + " "

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return styles.Header.Width(m.width).Render(left + strings.Repeat(" ", gap) + right)
}

// commandBarHints lists per-view key hints shown under the header.
var commandBarHints = map[string]string{
	"dashboard": "/ search   ctrl+k palette   v verify   r history",
	"verify":    "enter submit   esc unfocus",
	"history":   "j/k scroll   g/G top/bottom   c clear",
	"account":   "i sign in   u upgrade   x sign out",
	"settings":  "j/k move   space toggle   t test connection   T theme",
	"about":     "tab cycle views   ? shortcuts",
	"batch":     "Pro plan required",
	"sources":   "Pro plan required",
}

func (m Model) renderCommandBar() string {
	styles := m.theme.Styles()
	hint, ok := commandBarHints[m.currentViewID()]
	if !ok {
		hint = commandBarHints[DefaultViewID]
	}
	return styles.FaintText.Render(" " + hint)
}

// renderStatusLine shows the active toast, or the short help when none is
// pending.
func (m Model) renderStatusLine() string {
	if m.toast.text != "" {
		return m.toastStyle().Render(" " + m.toast.text)
	}

	styles := m.theme.Styles()
	parts := make([]string, 0, 4)
	for _, binding := range m.keys.ShortHelp() {
		help := binding.Help()
		parts = append(parts, help.Key+" "+help.Desc)
	}
	return styles.Footer.Width(m.width).Render(strings.Join(parts, "   "))
}
