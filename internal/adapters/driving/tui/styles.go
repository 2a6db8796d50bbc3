package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains pre-configured lipgloss styles for the chat interface.
type Styles struct {
	// Title style for the header.
	Title lipgloss.Style

	// UserLabel style for the user message prefix.
	UserLabel lipgloss.Style

	// AdvisorLabel style for the advisor message prefix.
	AdvisorLabel lipgloss.Style

	// Muted style for hints and the status line.
	Muted lipgloss.Style

	// Error style for error messages.
	Error lipgloss.Style

	// Inputborder style for the input area border.
	InputBorder lipgloss.Style
}

// DefaultStyles returns the default chat styles.
func DefaultStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7C3AED")),
		UserLabel: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#06B6D4")),
		AdvisorLabel: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#A6E3A1")),
		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C7086")),
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F38BA8")),
		InputBorder: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#45475A")).
			Padding(0, 1),
	}
}
