package render

import (
	"fmt"
	"strings"

	"github.com/benvon/taskdeck/internal/models"
)

// Page copy shown by focus mode
const (
	FocusTitle    = "🎯 Focus Mode"
	FocusSubtitle = "AI-prioritized tasks for maximum productivity"
	FocusEmpty    = "No tasks yet. Create one in Brain Dump or Dashboard!"
)

// FocusPage is the display model of focus mode; Rows are already in priority order
type FocusPage struct {
	Loading bool
	Rows    []Row
}

// BuildFocus wraps an ordered task list
func BuildFocus(loading bool, ordered []models.Task) FocusPage {
	page := FocusPage{Loading: loading}
	for _, t := range ordered {
		r := NewRow(t)
		// focus shows the raw priority, not the N/A placeholder
		r.Priority = string(t.Priority)
		page.Rows = append(page.Rows, r)
	}
	return page
}

// Focus draws the page. selected indexes Rows.
func Focus(page FocusPage, selected int) string {
	var b strings.Builder
	b.WriteString(Title.Render(FocusTitle))
	b.WriteString("\n")
	b.WriteString(Subtitle.Render(FocusSubtitle))
	b.WriteString("\n")

	if page.Loading {
		b.WriteString(LoadingText)
		return b.String()
	}
	if len(page.Rows) == 0 {
		b.WriteString("\n")
		b.WriteString(FocusEmpty)
		return b.String()
	}

	for i, r := range page.Rows {
		title := r.Title
		if i == selected {
			title = cursor.Render("› " + title)
		}
		lines := []string{
			title,
			fmt.Sprintf("Priority: %s | Category: %s | Est. Time: %d min", r.Priority, r.Category, r.Minutes),
		}
		if r.DueDate != "" {
			lines = append(lines, "Due: "+r.DueDate)
		}
		lines = append(lines, Muted.Render("[c] ✓ Complete"))
		b.WriteString(bar(r.Marker).Render(strings.Join(lines, "\n")))
		b.WriteString("\n")
	}
	return b.String()
}
