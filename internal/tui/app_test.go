package tui

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/benvon/taskdeck/internal/models"
	"github.com/benvon/taskdeck/internal/views"
	tea "github.com/charmbracelet/bubbletea"
)

type stubService struct {
	mu      sync.Mutex
	tasks   []models.Task
	parsed  []models.Task
	lists   int
	created []models.Task
	updates map[string]models.TaskUpdate
}

func (s *stubService) ListTasks(ctx context.Context) ([]models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lists++
	return append([]models.Task(nil), s.tasks...), nil
}

func (s *stubService) CreateTask(ctx context.Context, task models.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.created = append(s.created, task)
	return nil
}

func (s *stubService) UpdateTask(ctx context.Context, id string, update models.TaskUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.updates == nil {
		s.updates = map[string]models.TaskUpdate{}
	}
	s.updates[id] = update
	return nil
}

func (s *stubService) DeleteTask(ctx context.Context, id string) error {
	return nil
}

func (s *stubService) ParseText(ctx context.Context, text string) ([]models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Task(nil), s.parsed...), nil
}

func newTestApp(svc *stubService) *App {
	alerts := &views.AlertLog{}
	return New(context.Background(), Views{
		Dashboard: views.NewDashboard(svc, alerts, nil),
		BrainDump: views.NewBrainDump(svc, alerts, nil),
		Focus:     views.NewFocus(svc, alerts, nil),
		Alerts:    alerts,
	}, nil)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// press sends a key and, when it produced a request, runs it and feeds the
// result back
func press(t *testing.T, a *App, key tea.KeyMsg) {
	t.Helper()
	_, cmd := a.Update(key)
	if cmd == nil {
		return
	}
	if msg, ok := cmd().(resultMsg); ok {
		a.Update(msg)
	}
}

func TestApp_NavigationLoads(t *testing.T) {
	t.Parallel()

	svc := &stubService{tasks: []models.Task{{ID: "1", Title: "one"}}}
	a := newTestApp(svc)

	press(t, a, runes("3"))
	press(t, a, runes("1"))
	press(t, a, runes("3"))
	press(t, a, runes("1"))

	svc.mu.Lock()
	lists := svc.lists
	svc.mu.Unlock()
	// focus once, dashboard twice
	if lists != 3 {
		t.Errorf("list calls = %d, want 3", lists)
	}
	if a.Page() != PageDashboard {
		t.Errorf("Page() = %v, want dashboard", a.Page())
	}
	if !strings.Contains(a.View(), "one") {
		t.Errorf("dashboard view missing task:\n%s", a.View())
	}
}

func TestApp_DashboardActionsFollowSection(t *testing.T) {
	t.Parallel()

	svc := &stubService{tasks: []models.Task{{ID: "1", Title: "open"}}}
	a := newTestApp(svc)
	press(t, a, runes("1"))

	// archive is only offered on completed tasks
	press(t, a, runes("a"))
	if len(svc.updates) != 0 {
		t.Fatalf("archive on an active task sent %v", svc.updates)
	}

	press(t, a, runes("c"))
	upd, ok := svc.updates["1"]
	if !ok || upd.Completed == nil || !*upd.Completed {
		t.Fatalf("update = %+v, want completed", upd)
	}
	if a.Alert() != views.AlertCompleted {
		t.Errorf("Alert() = %q, want %q", a.Alert(), views.AlertCompleted)
	}
	if got := a.views.Dashboard.Tasks()[0].Status; got != models.TaskStatusCompleted {
		t.Errorf("status = %q, want completed", got)
	}
}

func TestApp_BrainDumpParseAndSave(t *testing.T) {
	t.Parallel()

	svc := &stubService{parsed: []models.Task{{Title: "Buy milk"}}}
	a := newTestApp(svc)

	a.Update(runes("2"))
	if !a.editing {
		t.Fatal("expected the editor to be focused on the brain dump page")
	}
	a.Update(runes("buy milk"))
	press(t, a, tea.KeyMsg{Type: tea.KeyCtrlP})

	if got := a.views.BrainDump.Text(); got != "buy milk" {
		t.Errorf("Text() = %q, want %q", got, "buy milk")
	}
	if n := len(a.views.BrainDump.Candidates()); n != 1 {
		t.Fatalf("candidates = %d, want 1", n)
	}

	a.Update(tea.KeyMsg{Type: tea.KeyEsc})
	press(t, a, runes("s"))
	if len(svc.created) != 1 || svc.created[0].Title != "Buy milk" {
		t.Errorf("created = %+v", svc.created)
	}
	if a.Alert() != views.AlertSaved {
		t.Errorf("Alert() = %q, want %q", a.Alert(), views.AlertSaved)
	}
	if n := len(a.views.BrainDump.Candidates()); n != 0 {
		t.Errorf("candidates after save = %d, want 0", n)
	}
}

func TestApp_BlankParseAlerts(t *testing.T) {
	t.Parallel()

	a := newTestApp(&stubService{})
	a.Update(runes("2"))
	press(t, a, tea.KeyMsg{Type: tea.KeyCtrlP})

	if a.Alert() != views.AlertEmptyText {
		t.Errorf("Alert() = %q, want %q", a.Alert(), views.AlertEmptyText)
	}
}

func TestApp_FocusComplete(t *testing.T) {
	t.Parallel()

	svc := &stubService{tasks: []models.Task{
		{ID: "low", Title: "later", Priority: models.TaskPriorityLow},
		{ID: "high", Title: "now", Priority: models.TaskPriorityHigh},
	}}
	a := newTestApp(svc)
	press(t, a, runes("3"))
	press(t, a, runes("c"))

	if _, ok := svc.updates["high"]; !ok {
		t.Errorf("expected the highest priority task to be completed, updates = %v", svc.updates)
	}
	if got := a.views.Focus.Tasks(); len(got) != 1 || got[0].ID != "low" {
		t.Errorf("Tasks() = %+v", got)
	}
	if a.Alert() != views.AlertFocusCompleted {
		t.Errorf("Alert() = %q", a.Alert())
	}
}

func TestApp_Quit(t *testing.T) {
	t.Parallel()

	a := newTestApp(&stubService{})
	_, cmd := a.Update(runes("q"))
	if cmd == nil {
		t.Fatal("expected a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestApp_ViewShowsNavbar(t *testing.T) {
	t.Parallel()

	out := newTestApp(&stubService{}).View()
	for _, tab := range tabs {
		if !strings.Contains(out, tab) {
			t.Errorf("view missing tab %q", tab)
		}
	}
}
