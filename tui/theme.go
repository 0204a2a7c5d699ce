package tui

import "github.com/charmbracelet/lipgloss"

var (
	base     = lipgloss.Color("#1e1e2e")
	mantle   = lipgloss.Color("#181825")
	surface1 = lipgloss.Color("#45475a")
	text     = lipgloss.Color("#cdd6f4")
	subtext0 = lipgloss.Color("#a6adc8")
	lavender = lipgloss.Color("#b4befe")
	sapphire = lipgloss.Color("#74c7ec")
	peach    = lipgloss.Color("#fab387")

	appStyle = lipgloss.NewStyle().
			Background(base).
			Foreground(text).
			Padding(1, 2)

	cardStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(surface1).
			Background(mantle).
			Foreground(subtext0).
			Align(lipgloss.Center)

	cardActiveStyle = cardStyle.
			BorderForeground(lavender).
			Foreground(text)

	titleStyle = lipgloss.NewStyle().Foreground(sapphire).Bold(true)
	mutedStyle = lipgloss.NewStyle().Foreground(subtext0)
	hotStyle   = lipgloss.NewStyle().Foreground(peach).Bold(true)
)
