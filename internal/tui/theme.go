// Package tui renders fecoding notifications in a terminal and asks for
// confirmation with a small bubbletea prompt.
package tui

import "github.com/charmbracelet/lipgloss"

// Theme keeps every style of the console in one place.
type Theme struct {
	Modal  lipgloss.Style
	Status lipgloss.Style
	Error  lipgloss.Style

	Prompt   lipgloss.Style
	Selected lipgloss.Style
	Dim      lipgloss.Style
}

func NewDefaultTheme() Theme {
	purple := lipgloss.Color("#874BFD")
	red := lipgloss.Color("#FF5F56")

	return Theme{
		Modal: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(purple).
			Padding(0, 1),
		Status: lipgloss.NewStyle().Foreground(lipgloss.Color("#61AFEF")),
		Error: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(red).
			Foreground(red).
			Padding(0, 1),

		Prompt: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FAFAFA")),
		Selected: lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Padding(0, 1),
		Dim: lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")).Padding(0, 1),
	}
}
