package collector

import "github.com/charmbracelet/lipgloss"

var (
	colorPrimary   = lipgloss.Color("205") // Pink/magenta
	colorSuccess   = lipgloss.Color("35")  // Green
	colorWarning   = lipgloss.Color("214") // Gold/yellow
	colorError     = lipgloss.Color("196") // Red
	colorDim       = lipgloss.Color("241") // Gray
	colorAccent    = lipgloss.Color("39")  // Blue
	colorHighlight = lipgloss.Color("212") // Light pink
)

const (
	symbolArrow = "▸"
	symbolCheck = "✓"
	symbolDot   = "●"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	summaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	sectionStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true)

	cursorStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true)

	optionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	optionActiveStyle = lipgloss.NewStyle().
				Foreground(colorHighlight).
				Bold(true)

	selectedStyle = lipgloss.NewStyle().
			Foreground(colorSuccess)

	recommendedStyle = lipgloss.NewStyle().
				Foreground(colorWarning)

	dimStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorError)

	countdownStyle = lipgloss.NewStyle().
			Foreground(colorWarning).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(colorDim)
)
