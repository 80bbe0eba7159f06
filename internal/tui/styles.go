package tui

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	ColorPrimary = lipgloss.Color("#8B5CF6") // Violet
	ColorAccent  = lipgloss.Color("#06B6D4") // Cyan
	ColorText    = lipgloss.Color("#F8FAFC")
	ColorMuted   = lipgloss.Color("#94A3B8")
	ColorDimmed  = lipgloss.Color("#374151")
	ColorValid   = lipgloss.Color("#22C55E") // Green
	ColorInvalid = lipgloss.Color("#EF4444") // Red
)

var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	SectionStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Italic(true)

	FormItemStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			PaddingLeft(2)

	SelectedFormStyle = lipgloss.NewStyle().
				Foreground(ColorAccent).
				Bold(true).
				PaddingLeft(1)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorText).
			Width(24)

	FocusedLabelStyle = LabelStyle.
				Foreground(ColorAccent).
				Bold(true)

	ValidInputStyle = lipgloss.NewStyle().
				Foreground(ColorValid)

	InvalidInputStyle = lipgloss.NewStyle().
				Foreground(ColorInvalid)

	RangeStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	PanelStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(ColorDimmed).
			Padding(0, 1).
			MarginTop(1)

	HelpStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			MarginTop(1)
)
