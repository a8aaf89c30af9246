// Package styles defines shared lipgloss styles for the TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/amalmed/opstrack/internal/record"
)

var (
	// Colors
	primaryColor   = lipgloss.Color("#1B3F94") // Facility blue
	accentColor    = lipgloss.Color("#ED1C24") // Facility red
	secondaryColor = lipgloss.Color("#666666") // Gray for secondary text
	successColor   = lipgloss.Color("#22C55E")
	errorColor     = lipgloss.Color("#EF4444")

	// TitleStyle for headers
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			MarginBottom(1)

	// SubtleStyle for hints/help text
	SubtleStyle = lipgloss.NewStyle().
			Foreground(secondaryColor)

	// SelectedStyle for selected items in lists
	SelectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(primaryColor)

	// StatusBarStyle for bottom status bar
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(secondaryColor)

	// BoxStyle for panel borders
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(secondaryColor).
			Padding(0, 1)

	// SuccessStyle for success messages
	SuccessStyle = lipgloss.NewStyle().
			Foreground(successColor)

	// ErrorStyle for error messages
	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(errorColor)

	// AccentStyle for the brand accent
	AccentStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accentColor)

	// HeaderStyle for table column headings
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)

	// TabStyle and ActiveTabStyle for the top navigation
	TabStyle = lipgloss.NewStyle().
			Foreground(secondaryColor).
			Padding(0, 1)
	ActiveTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(primaryColor).
			Padding(0, 1)
)

// Color returns a foreground style for a catalog hex color.
func Color(hex string) lipgloss.Style {
	if hex == "" {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex))
}

// Status renders a status label in its catalog color.
func Status(s record.Status) string {
	return Color(s.Color()).Render(s.Label())
}

// Importance renders an importance label in its catalog color.
func Importance(i record.Importance) string {
	return Color(i.Color()).Render(i.Label())
}
