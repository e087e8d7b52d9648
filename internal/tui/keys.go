package tui

import (
	"context"

	"github.com/benvon/taskdeck/internal/models"
	"github.com/benvon/taskdeck/internal/render"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	helpDashboard = "1/2/3 tab pages • j/k move • c complete • d delete • a archive • r restore • R refresh • q quit"
	helpEditing   = "ctrl+p parse • esc leave editor • tab next page • ctrl+c quit"
	helpBrainDump = "i edit • ctrl+p parse • j/k move • s save • S save all • 1/2/3 tab pages • q quit"
	helpFocus     = "1/2/3 tab pages • j/k move • c complete • q quit"
)

func (a *App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		a.Close()
		return a, tea.Quit
	}

	// any key dismisses the current alert
	a.alert = ""

	if a.editing {
		return a.handleEditorKey(msg)
	}

	switch key {
	case "q":
		a.Close()
		return a, tea.Quit
	case "1":
		return a, a.goTo(PageDashboard)
	case "2":
		return a, a.goTo(PageBrainDump)
	case "3":
		return a, a.goTo(PageFocus)
	case "tab":
		return a, a.goTo((a.page + 1) % Page(len(tabs)))
	case "shift+tab":
		return a, a.goTo((a.page + Page(len(tabs)) - 1) % Page(len(tabs)))
	case "j", "down":
		a.move(1)
		return a, nil
	case "k", "up":
		a.move(-1)
		return a, nil
	}

	switch a.page {
	case PageDashboard:
		return a, a.dashboardKey(key)
	case PageBrainDump:
		return a, a.brainDumpKey(key)
	case PageFocus:
		return a, a.focusKey(key)
	}
	return a, nil
}

func (a *App) handleEditorKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.editing = false
		a.input.Blur()
		return a, nil
	case "tab":
		return a, a.goTo(PageFocus)
	case "ctrl+p":
		return a, a.parse()
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	a.views.BrainDump.SetText(a.input.Value())
	return a, cmd
}

func (a *App) dashboardKey(key string) tea.Cmd {
	d := a.views.Dashboard
	if key == "R" {
		return a.request(PageDashboard, "refresh", d.Refresh)
	}

	row, section, ok := a.selectedDashboardRow()
	if !ok || row.ID == "" {
		return nil
	}
	id := row.ID

	// actions mirror the buttons each section offers
	switch {
	case key == "c" && section == models.TaskStatusPending:
		return a.request(PageDashboard, "complete", func(ctx context.Context) error { return d.Complete(ctx, id) })
	case key == "d" && section != models.TaskStatusCompleted:
		return a.request(PageDashboard, "delete", func(ctx context.Context) error { return d.Delete(ctx, id) })
	case key == "a" && section == models.TaskStatusCompleted:
		return a.request(PageDashboard, "archive", func(ctx context.Context) error { return d.Archive(ctx, id) })
	case key == "r" && section == models.TaskStatusArchived:
		return a.request(PageDashboard, "restore", func(ctx context.Context) error { return d.Restore(ctx, id) })
	}
	return nil
}

func (a *App) selectedDashboardRow() (render.Row, models.TaskStatus, bool) {
	page := render.BuildDashboard(a.views.Dashboard.Loading(), a.views.Dashboard.Tasks())
	i := a.cursors[PageDashboard]
	for _, s := range page.Sections {
		if i < len(s.Rows) {
			return s.Rows[i], s.Status, true
		}
		i -= len(s.Rows)
	}
	return render.Row{}, "", false
}

func (a *App) brainDumpKey(key string) tea.Cmd {
	b := a.views.BrainDump
	switch key {
	case "i", "enter":
		a.editing = true
		return a.input.Focus()
	case "ctrl+p":
		return a.parse()
	case "s":
		cands := b.Candidates()
		i := a.cursors[PageBrainDump]
		if i >= len(cands) {
			return nil
		}
		k := cands[i].Key
		return a.request(PageBrainDump, "save", func(ctx context.Context) error { return b.Save(ctx, k) })
	case "S":
		return a.request(PageBrainDump, "save_all", func(ctx context.Context) error {
			_, err := b.SaveAll(ctx)
			return err
		})
	}
	return nil
}

func (a *App) parse() tea.Cmd {
	a.views.BrainDump.SetText(a.input.Value())
	return a.request(PageBrainDump, "parse", a.views.BrainDump.Parse)
}

func (a *App) focusKey(key string) tea.Cmd {
	if key != "c" {
		return nil
	}
	tasks := a.views.Focus.Tasks()
	i := a.cursors[PageFocus]
	if i >= len(tasks) || !tasks[i].HasID() {
		return nil
	}
	id := tasks[i].ID
	f := a.views.Focus
	return a.request(PageFocus, "complete", func(ctx context.Context) error { return f.Complete(ctx, id) })
}
