package theme

import "github.com/charmbracelet/lipgloss"

var (
	Base     = lipgloss.Color("#1e1e2e")
	Mantle   = lipgloss.Color("#181825")
	Surface1 = lipgloss.Color("#45475a")
	Text     = lipgloss.Color("#cdd6f4")
	Subtext0 = lipgloss.Color("#a6adc8")
	Lavender = lipgloss.Color("#b4befe")
	Sapphire = lipgloss.Color("#74c7ec")
	Green    = lipgloss.Color("#a6e3a1")
	Peach    = lipgloss.Color("#fab387")
	Red      = lipgloss.Color("#f38ba8")

	Pane = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Surface1).
		Foreground(Text).
		Padding(1, 2)

	PaneActive = Pane.BorderForeground(Lavender)

	Title   = lipgloss.NewStyle().Foreground(Sapphire).Bold(true)
	Muted   = lipgloss.NewStyle().Foreground(Subtext0)
	Hot     = lipgloss.NewStyle().Foreground(Peach).Bold(true)
	Warn    = lipgloss.NewStyle().Foreground(Red).Bold(true)
	Counter = lipgloss.NewStyle().Foreground(Text).Bold(true).Padding(0, 1)
)

// PhaseStyle colours the phase badge and countdown.
func PhaseStyle(phase string) lipgloss.Style {
	switch phase {
	case "running":
		return lipgloss.NewStyle().Foreground(Green).Bold(true)
	case "paused":
		return lipgloss.NewStyle().Foreground(Peach).Bold(true)
	case "completed":
		return lipgloss.NewStyle().Foreground(Lavender).Bold(true)
	default:
		return Muted
	}
}
