package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	ColorSuccess = lipgloss.Color("#10B981") // Green
	ColorWarning = lipgloss.Color("#F59E0B") // Amber
	ColorError   = lipgloss.Color("#EF4444") // Red
	ColorInfo    = lipgloss.Color("#3B82F6") // Blue

	ColorEpic     = lipgloss.Color("#8B5CF6") // Purple
	ColorUntraced = lipgloss.Color("#9CA3AF") // Light gray

	ColorTextMuted  = lipgloss.Color("#9CA3AF") // Gray
	ColorTextBright = lipgloss.Color("#FFFFFF") // White
)

var (
	DimStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)
)

// Message styles
var (
	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(ColorInfo)
)

// Tree styles
var (
	TreeRootStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorTextBright)

	TreeEnumeratorStyle = lipgloss.NewStyle().
				Foreground(ColorTextMuted)

	TaskKeyStyle = lipgloss.NewStyle().
			Foreground(ColorInfo).
			Bold(true)

	EpicStyle = lipgloss.NewStyle().
			Foreground(ColorEpic).
			Bold(true)

	UntracedStyle = lipgloss.NewStyle().
			Foreground(ColorUntraced).
			Italic(true)
)

// Table styles
var (
	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorTextBright).
				Padding(0, 1)

	TableCellStyle = lipgloss.NewStyle().
			Padding(0, 1)

	TableBorderStyle = lipgloss.NewStyle().
				Foreground(ColorTextMuted)
)
