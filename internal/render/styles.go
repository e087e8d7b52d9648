package render

import "github.com/charmbracelet/lipgloss"

// Marker colours keyed by priority
const (
	ColorHigh   = lipgloss.Color("#ff4444")
	ColorMedium = lipgloss.Color("#ffaa00")
	ColorLow    = lipgloss.Color("#44ff44")

	colorAccent    = lipgloss.Color("#667eea")
	colorMuted     = lipgloss.Color("244")
	colorCompleted = lipgloss.Color("#4CAF50")
	colorArchived  = lipgloss.Color("#999999")
	colorStatus    = lipgloss.Color("#e65100")
)

var (
	Title    = lipgloss.NewStyle().Bold(true).Foreground(colorAccent).MarginBottom(1)
	Subtitle = lipgloss.NewStyle().Foreground(colorMuted).Italic(true)
	Heading  = lipgloss.NewStyle().Bold(true).MarginTop(1)
	Muted    = lipgloss.NewStyle().Foreground(colorMuted)
	Spinner  = lipgloss.NewStyle().Foreground(colorAccent)

	tab       = lipgloss.NewStyle().Padding(0, 2).Foreground(colorMuted)
	activeTab = lipgloss.NewStyle().Padding(0, 2).Bold(true).Foreground(lipgloss.Color("#ffffff")).Background(colorAccent)
	navbar    = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, true, false).BorderForeground(colorMuted)

	statusBadge = lipgloss.NewStyle().Bold(true).Foreground(colorStatus)
	cursor      = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	alertLine   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffffff")).Background(colorAccent).Padding(0, 1)
	emptyBox    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorMuted).Padding(1, 4).Foreground(colorMuted)
	card        = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorMuted).Padding(0, 1)
	cardFocused = card.BorderForeground(colorAccent)
	tag         = lipgloss.NewStyle().Padding(0, 1).Background(lipgloss.Color("236"))

	badges = map[string]lipgloss.Style{
		"high":   lipgloss.NewStyle().Bold(true).Padding(0, 1).Foreground(lipgloss.Color("#ffffff")).Background(ColorHigh),
		"medium": lipgloss.NewStyle().Bold(true).Padding(0, 1).Foreground(lipgloss.Color("#000000")).Background(ColorMedium),
		"low":    lipgloss.NewStyle().Bold(true).Padding(0, 1).Foreground(lipgloss.Color("#000000")).Background(ColorLow),
	}
)

// bar draws a task row with a coloured left edge
func bar(color lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(color).
		PaddingLeft(1).
		MarginTop(1)
}

func badgeStyle(class string) lipgloss.Style {
	if s, ok := badges[class]; ok {
		return s
	}
	return badges["low"]
}
