package display

import "github.com/charmbracelet/lipgloss"

// Colors
var (
	colorSuccess = lipgloss.Color("#4ade80")
	colorError   = lipgloss.Color("#ef4444")
	colorMuted   = lipgloss.Color("#6B7280")
)

// Styles
var (
	SuccessStyle = lipgloss.NewStyle().
			Foreground(colorSuccess)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(colorError)

	IdleStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Italic(true)
)
