package render

import (
	"fmt"
	"strings"

	"github.com/benvon/taskdeck/internal/models"
	"github.com/charmbracelet/lipgloss"
)

// Page copy shown by the dashboard
const (
	DashboardTitle = "📋 My Tasks"
	LoadingText    = "Loading..."
	DashboardEmpty = "No tasks yet. Go to Smart Add to create some!"
	notAvailable   = "N/A"
)

// Row is one task as the dashboard or focus page displays it, with display
// defaults already applied
type Row struct {
	ID       string
	Title    string
	Category string
	Priority string
	Minutes  int
	DueDate  string
	Status   string
	Marker   lipgloss.Color
}

// Section is a count-labelled group of rows
type Section struct {
	Status models.TaskStatus
	Label  string
	Rows   []Row
}

// DashboardPage is the display model of the dashboard
type DashboardPage struct {
	Loading  bool
	Empty    bool
	Sections []Section
}

// Rows returns every row in display order
func (p DashboardPage) Rows() []Row {
	var rows []Row
	for _, s := range p.Sections {
		rows = append(rows, s.Rows...)
	}
	return rows
}

// MarkerColor picks the left-edge colour for a priority
func MarkerColor(p models.TaskPriority) lipgloss.Color {
	switch p {
	case models.TaskPriorityHigh:
		return ColorHigh
	case models.TaskPriorityMedium:
		return ColorMedium
	default:
		return ColorLow
	}
}

// NewRow applies the display defaults to a task
func NewRow(t models.Task) Row {
	r := Row{
		ID:       t.ID,
		Title:    t.Title,
		Category: t.Category,
		Priority: string(t.Priority),
		Minutes:  t.EstimatedMinutes,
		DueDate:  t.DueDate,
		Status:   string(t.Status.Effective()),
		Marker:   MarkerColor(t.Priority),
	}
	if r.Category == "" {
		r.Category = notAvailable
	}
	if r.Priority == "" {
		r.Priority = notAvailable
	}
	return r
}

// BuildDashboard partitions tasks into sections. Empty sections are left out
// and nothing is partitioned while loading.
func BuildDashboard(loading bool, tasks []models.Task) DashboardPage {
	if loading {
		return DashboardPage{Loading: true}
	}
	p := models.Partition(tasks)
	if p.Len() == 0 {
		return DashboardPage{Empty: true}
	}

	groups := []struct {
		status models.TaskStatus
		label  string
		tasks  []models.Task
	}{
		{models.TaskStatusPending, "Active Tasks", p.Active},
		{models.TaskStatusCompleted, "✓ Completed", p.Completed},
		{models.TaskStatusArchived, "📦 Archived", p.Archived},
	}

	page := DashboardPage{}
	for _, g := range groups {
		if len(g.tasks) == 0 {
			continue
		}
		s := Section{Status: g.status, Label: fmt.Sprintf("%s (%d)", g.label, len(g.tasks))}
		for _, t := range g.tasks {
			s.Rows = append(s.Rows, NewRow(t))
		}
		page.Sections = append(page.Sections, s)
	}
	return page
}

// Dashboard draws the page. selected indexes Rows(); out of range selects nothing.
func Dashboard(page DashboardPage, selected int) string {
	var b strings.Builder
	b.WriteString(Title.Render(DashboardTitle))
	b.WriteString("\n")

	switch {
	case page.Loading:
		b.WriteString(LoadingText)
		return b.String()
	case page.Empty:
		b.WriteString(emptyBox.Render(DashboardEmpty))
		return b.String()
	}

	i := 0
	for _, s := range page.Sections {
		b.WriteString(Heading.Render(s.Label))
		b.WriteString("\n")
		for _, r := range s.Rows {
			b.WriteString(dashboardRow(s.Status, r, i == selected))
			b.WriteString("\n")
			i++
		}
	}
	return b.String()
}

func dashboardRow(section models.TaskStatus, r Row, selected bool) string {
	title := r.Title
	if selected {
		title = cursor.Render("› " + title)
	}

	var lines []string
	switch section {
	case models.TaskStatusCompleted:
		lines = []string{title, Muted.Render(summary(r)), Muted.Render("[a] archive")}
		return bar(colorCompleted).Strikethrough(true).Render(strings.Join(lines, "\n"))
	case models.TaskStatusArchived:
		lines = []string{title, Muted.Render(summary(r)), Muted.Render("[r] restore  [d] delete")}
		return bar(colorArchived).Faint(true).Render(strings.Join(lines, "\n"))
	}

	lines = []string{
		title,
		fmt.Sprintf("Category: %s | Priority: %s | Time: %d min", r.Category, r.Priority, r.Minutes),
	}
	if r.DueDate != "" {
		lines = append(lines, "Due: "+r.DueDate)
	}
	lines = append(lines,
		"Status: "+statusBadge.Render(r.Status),
		Muted.Render("[c] complete  [d] delete"),
	)
	return bar(r.Marker).Render(strings.Join(lines, "\n"))
}

func summary(r Row) string {
	category, priority := r.Category, r.Priority
	if category == notAvailable {
		category = ""
	}
	if priority == notAvailable {
		priority = ""
	}
	return fmt.Sprintf("%s • %s priority • %d min", category, priority, r.Minutes)
}
