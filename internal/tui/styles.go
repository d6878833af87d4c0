package tui

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	colorPrimary   = lipgloss.Color("#6C63FF")
	colorMorning   = lipgloss.Color("#FDE047")
	colorEvening   = lipgloss.Color("#818CF8")
	colorMuted     = lipgloss.Color("#666666")
	colorSuccess   = lipgloss.Color("#2ECC71")
	colorWarning   = lipgloss.Color("#F39C12")
	colorError     = lipgloss.Color("#E74C3C")
	colorFg        = lipgloss.Color("#C0CAF5")
	colorSubtle    = lipgloss.Color("#414868")
	colorHighlight = lipgloss.Color("#7AA2F7")

	// Workout type badge colors, matching cardio/strength/hiit/flexibility.
	colorCardio      = lipgloss.Color("#FF6B6B")
	colorStrength    = lipgloss.Color("#3498DB")
	colorHIIT        = lipgloss.Color("#F39C12")
	colorFlexibility = lipgloss.Color("#2ECC71")
)

// Styles
var (
	// Tabs
	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(colorPrimary).
			Padding(0, 2)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(colorMuted).
				Padding(0, 2)

	// Panels
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorSubtle).
			Padding(1, 2)

	activePanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorPrimary).
				Padding(1, 2)

	// Countdown
	countdownStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			Align(lipgloss.Center)

	countdownRestStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorSuccess).
				Align(lipgloss.Center)

	countdownPausedStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorWarning).
				Align(lipgloss.Center)

	// Calendar day cells
	dayStyle = lipgloss.NewStyle().
			Foreground(colorFg)

	dayMutedStyle = lipgloss.NewStyle().
			Foreground(colorSubtle)

	dayCursorStyle = lipgloss.NewStyle().
			Bold(true).
			Reverse(true)

	dayMorningStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorMorning)

	dayEveningStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorEvening)

	dayBothStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorSuccess)

	// Text
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorFg)

	accentStyle = lipgloss.NewStyle().
			Foreground(colorCardio)

	successStyle = lipgloss.NewStyle().
			Foreground(colorSuccess)

	warningStyle = lipgloss.NewStyle().
			Foreground(colorWarning)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorError)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	highlightStyle = lipgloss.NewStyle().
			Foreground(colorHighlight)

	// Header/footer
	headerStyle = lipgloss.NewStyle().
			Padding(0, 1)

	footerStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Padding(0, 1)

	// List items
	selectedItemStyle = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true)

	normalItemStyle = lipgloss.NewStyle().
			Foreground(colorFg)
)

func typeBadgeStyle(planType string) lipgloss.Style {
	var c lipgloss.Color
	switch planType {
	case "cardio":
		c = colorCardio
	case "strength":
		c = colorStrength
	case "hiit":
		c = colorHIIT
	case "flexibility":
		c = colorFlexibility
	default:
		c = colorMuted
	}
	return lipgloss.NewStyle().Bold(true).Foreground(c)
}
