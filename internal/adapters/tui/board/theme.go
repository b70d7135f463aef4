package board

import (
	"github.com/charmbracelet/lipgloss"

	"gymdesk/internal/domain/classwindow"
)

var (
	Surface1 = lipgloss.Color("#45475a")
	Text     = lipgloss.Color("#cdd6f4")
	Subtext0 = lipgloss.Color("#a6adc8")
	Overlay0 = lipgloss.Color("#6c7086")
	Sapphire = lipgloss.Color("#74c7ec")
	Green    = lipgloss.Color("#a6e3a1")
	Peach    = lipgloss.Color("#fab387")
	Red      = lipgloss.Color("#f38ba8")

	Pane = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Surface1).
		Foreground(Text).
		Padding(0, 1)

	Title = lipgloss.NewStyle().Foreground(Sapphire).Bold(true)
	Muted = lipgloss.NewStyle().Foreground(Subtext0)
	Hot   = lipgloss.NewStyle().Foreground(Peach).Bold(true)
	Alert = lipgloss.NewStyle().Foreground(Red).Bold(true)

	phaseStyles = map[classwindow.Phase]lipgloss.Style{
		classwindow.PhaseUpcoming:     lipgloss.NewStyle().Foreground(Text),
		classwindow.PhaseStartingSoon: Hot,
		classwindow.PhaseOngoing:      lipgloss.NewStyle().Foreground(Green).Bold(true),
		classwindow.PhaseCompleted:    lipgloss.NewStyle().Foreground(Overlay0).Strikethrough(true),
	}

	phaseLabels = map[classwindow.Phase]string{
		classwindow.PhaseUpcoming:     "UPCOMING",
		classwindow.PhaseStartingSoon: "SOON",
		classwindow.PhaseOngoing:      "LIVE",
		classwindow.PhaseCompleted:    "DONE",
	}
)

func phaseStyle(p classwindow.Phase) lipgloss.Style {
	if s, ok := phaseStyles[p]; ok {
		return s
	}
	return Muted
}
