package cli

import "github.com/charmbracelet/lipgloss"

type theme struct {
	Title    lipgloss.Style
	Label    lipgloss.Style
	Subtitle lipgloss.Style
	Card     lipgloss.Style
}

func defaultTheme() theme {
	return theme{
		Title:    lipgloss.NewStyle().Bold(true),
		Label:    lipgloss.NewStyle().Faint(true).Width(12),
		Subtitle: lipgloss.NewStyle().Faint(true),
		Card: lipgloss.NewStyle().
			Padding(0, 1).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")),
	}
}
