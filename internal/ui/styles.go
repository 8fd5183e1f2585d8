package ui

import "github.com/charmbracelet/lipgloss"

var (
	Primary     = lipgloss.Color("#2E7D32")
	Accent      = lipgloss.Color("#8BC34A")
	Muted       = lipgloss.Color("#8A8F98")
	Destructive = lipgloss.Color("#E53935")
	Warning     = lipgloss.Color("#FFC107")
)

// Styles holds the styles every view renders with.
type Styles struct {
	Title     lipgloss.Style
	Bold      lipgloss.Style
	Body      lipgloss.Style
	Muted     lipgloss.Style
	Highlight lipgloss.Style
	Eco       lipgloss.Style
	Success   lipgloss.Style
	Notice    lipgloss.Style
	Error     lipgloss.Style
	Panel     lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Title:     lipgloss.NewStyle().Bold(true).Foreground(Primary),
		Bold:      lipgloss.NewStyle().Bold(true),
		Body:      lipgloss.NewStyle(),
		Muted:     lipgloss.NewStyle().Foreground(Muted),
		Highlight: lipgloss.NewStyle().Bold(true).Foreground(Accent),
		Eco:       lipgloss.NewStyle().Foreground(Accent),
		Success:   lipgloss.NewStyle().Bold(true).Foreground(Primary),
		Notice:    lipgloss.NewStyle().Foreground(Warning),
		Error:     lipgloss.NewStyle().Foreground(Destructive),
		Panel:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(Muted).Padding(0, 1),
	}
}
