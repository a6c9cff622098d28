package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const toastDuration = 3 * time.Second

type toastLevel int

const (
	toastInfo toastLevel = iota
	toastSuccess
	toastWarn
	toastError
)

// toastState is the transient status-line notice. The generation counter
// lets a newer toast outlive the expiry tick of the one it replaced.
type toastState struct {
	text  string
	level toastLevel
	gen   int
}

type toastExpireMsg struct {
	gen int
}

// showToast replaces the current toast and schedules its expiry.
func (m *Model) showToast(text string, level toastLevel) tea.Cmd {
	m.toast.text = text
	m.toast.level = level
	m.toast.gen++
	gen := m.toast.gen
	return tea.Tick(toastDuration, func(time.Time) tea.Msg {
		return toastExpireMsg{gen: gen}
	})
}

func (m Model) toastStyle() lipgloss.Style {
	styles := m.theme.Styles()
	switch m.toast.level {
	case toastSuccess:
		return styles.SuccessText
	case toastWarn:
		return styles.WarningText
	case toastError:
		return styles.DangerText
	}
	return styles.InfoText
}
