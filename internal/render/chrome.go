package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// AppName is shown at the left of the navbar
const AppName = "🚀 Task Manager"

// Navbar draws the page tabs with the active one highlighted
func Navbar(tabs []string, active int) string {
	parts := []string{Title.UnsetMarginBottom().Render(AppName), " "}
	for i, t := range tabs {
		if i == active {
			parts = append(parts, activeTab.Render(t))
			continue
		}
		parts = append(parts, tab.Render(t))
	}
	return navbar.Render(lipgloss.JoinHorizontal(lipgloss.Top, parts...))
}

// StatusLine draws the most recent alert, or the key help when there is none
func StatusLine(alert, help string) string {
	if alert != "" {
		return alertLine.Render(alert)
	}
	return Muted.Render(help)
}

// Lines joins non-empty blocks with a newline
func Lines(blocks ...string) string {
	kept := blocks[:0:0]
	for _, b := range blocks {
		if b != "" {
			kept = append(kept, b)
		}
	}
	return strings.Join(kept, "\n")
}
