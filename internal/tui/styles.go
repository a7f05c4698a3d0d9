package tui

import "github.com/charmbracelet/lipgloss"

var (
	activeTabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Background(lipgloss.Color("236")).
			Padding(0, 1).
			Bold(true)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240")).
				Padding(0, 1)

	docStyle = lipgloss.NewStyle().Margin(1, 2)

	dangerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))

	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	doneStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))

	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)

	todayStyle = lipgloss.NewStyle().Underline(true).Bold(true)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1).
			Width(18)

	cardValueStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))

	activeDayStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("42"))
)
