// Package tui is the terminal front end: a bubbletea program hosting the
// dashboard, brain dump and focus views behind a navbar.
package tui

import (
	"context"
	"errors"

	"github.com/benvon/taskdeck/internal/render"
	"github.com/benvon/taskdeck/internal/views"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// Page identifies a top-level page
type Page int

const (
	PageDashboard Page = iota
	PageBrainDump
	PageFocus
)

var tabs = []string{"📋 Dashboard", "🧠 Smart Add", "🎯 Focus Mode"}

// Views are the page states the app drives. Alerts must be the notifier the
// views were built with.
type Views struct {
	Dashboard *views.Dashboard
	BrainDump *views.BrainDump
	Focus     *views.Focus
	Alerts    *views.AlertLog
}

// resultMsg reports a finished request for a page
type resultMsg struct {
	page Page
	op   string
	err  error
}

// App is the root bubbletea model
type App struct {
	ctx    context.Context
	views  Views
	logger *zap.Logger

	page    Page
	cursors [3]int
	editing bool
	input   textarea.Model
	spinner spinner.Model
	alert   string
}

// New creates the app on the dashboard page
func New(ctx context.Context, v Views, logger *zap.Logger) *App {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = render.Spinner

	ta := textarea.New()
	ta.Placeholder = "Write anything that comes to mind...\n- Finish project report\n- Call client at 2pm\n- Review code\n- Buy groceries"
	ta.ShowLineNumbers = false
	ta.SetHeight(6)

	return &App{
		ctx:     ctx,
		views:   v,
		logger:  logger.Named("tui"),
		page:    PageDashboard,
		input:   ta,
		spinner: s,
	}
}

// Page returns the page currently shown
func (a *App) Page() Page {
	return a.page
}

// Alert returns the alert in the status line
func (a *App) Alert() string {
	return a.alert
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		a.spinner.Tick,
		a.request(PageDashboard, "load", a.views.Dashboard.Load),
	)
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		a.input.SetWidth(max(msg.Width-4, 20))
		return a, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case resultMsg:
		a.handleResult(msg)
		return a, nil
	}

	if a.editing {
		var cmd tea.Cmd
		a.input, cmd = a.input.Update(msg)
		return a, cmd
	}
	return a, nil
}

// Close unmounts every view so late responses are dropped
func (a *App) Close() {
	a.views.Dashboard.Close()
	a.views.BrainDump.Close()
	a.views.Focus.Close()
}

// request runs fn as a tea command and reports back with a resultMsg
func (a *App) request(page Page, op string, fn func(context.Context) error) tea.Cmd {
	ctx := a.ctx
	return func() tea.Msg {
		return resultMsg{page: page, op: op, err: fn(ctx)}
	}
}

func (a *App) handleResult(msg resultMsg) {
	if msg.err != nil && !errors.Is(msg.err, views.ErrStaleResponse) {
		a.logger.Debug("request_finished_with_error", zap.String("op", msg.op), zap.Error(msg.err))
	}
	if alerts := a.views.Alerts.Drain(); len(alerts) > 0 {
		a.alert = alerts[len(alerts)-1]
	}
	a.clampCursor(msg.page)
}

// goTo switches pages. The dashboard refetches on every visit; focus loads
// on its first visit only.
func (a *App) goTo(p Page) tea.Cmd {
	a.page = p
	a.editing = false
	a.input.Blur()

	switch p {
	case PageDashboard:
		return a.request(PageDashboard, "load", a.views.Dashboard.Navigate)
	case PageBrainDump:
		a.editing = true
		return a.input.Focus()
	case PageFocus:
		if !a.views.Focus.Mounted() {
			return a.request(PageFocus, "load", a.views.Focus.Mount)
		}
	}
	return nil
}

func (a *App) rowCount(p Page) int {
	switch p {
	case PageDashboard:
		return len(render.BuildDashboard(a.views.Dashboard.Loading(), a.views.Dashboard.Tasks()).Rows())
	case PageBrainDump:
		return len(a.views.BrainDump.Candidates())
	case PageFocus:
		return len(a.views.Focus.Tasks())
	}
	return 0
}

func (a *App) clampCursor(p Page) {
	n := a.rowCount(p)
	if a.cursors[p] >= n {
		a.cursors[p] = n - 1
	}
	if a.cursors[p] < 0 {
		a.cursors[p] = 0
	}
}

func (a *App) move(delta int) {
	a.cursors[a.page] += delta
	a.clampCursor(a.page)
}
