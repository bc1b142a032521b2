package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/vburojevic/hiit/internal/domain"
)

var (
	screenColors = map[domain.Phase]lipgloss.Color{
		domain.PhaseReady:      lipgloss.Color("236"),
		domain.PhaseExercising: lipgloss.Color("28"),
		domain.PhaseResting:    lipgloss.Color("25"),
		domain.PhaseComplete:   lipgloss.Color("91"),
	}

	labelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("255"))

	timerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("255")).
			Padding(1, 0)

	beepingStyle = timerStyle.
			Foreground(lipgloss.Color("226"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	roundStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250"))

	dotCompletedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("46"))

	dotActiveStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("226"))

	dotPendingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244"))

	muteStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))
)

func screenStyle(p domain.Phase, width, height int) lipgloss.Style {
	s := lipgloss.NewStyle().
		Background(screenColors[p]).
		Align(lipgloss.Center, lipgloss.Center)
	if width > 0 {
		s = s.Width(width)
	}
	if height > 0 {
		s = s.Height(height)
	}
	return s
}
