package views

import (
	"context"
	"errors"
	"testing"

	"github.com/benvon/taskdeck/internal/models"
)

func TestFocus_OrdersByPriority(t *testing.T) {
	t.Parallel()

	svc := newFakeService(
		models.Task{ID: "a", Priority: models.TaskPriorityLow},
		models.Task{ID: "b", Priority: models.TaskPriorityHigh},
		models.Task{ID: "c", Priority: models.TaskPriorityMedium},
		models.Task{ID: "d"},
		models.Task{ID: "e", Priority: models.TaskPriorityHigh},
	)
	f := NewFocus(svc, &AlertLog{}, nil)
	if !f.Loading() {
		t.Fatal("expected a new focus view to start loading")
	}

	if err := f.Mount(context.Background()); err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	if got, want := taskIDs(f.Tasks()), []string{"b", "e", "c", "a", "d"}; !sameStrings(got, want) {
		t.Errorf("Tasks() = %v, want %v", got, want)
	}
	if f.Loading() {
		t.Error("expected loading to clear")
	}
}

func TestFocus_MountLoadsOnce(t *testing.T) {
	t.Parallel()

	svc := newFakeService(models.Task{ID: "1"})
	f := NewFocus(svc, &AlertLog{}, nil)

	for i := 0; i < 3; i++ {
		if err := f.Mount(context.Background()); err != nil {
			t.Fatalf("Mount() error = %v", err)
		}
	}
	if !f.Mounted() {
		t.Error("expected Mounted() after Mount")
	}
	if got := svc.callLog(); !sameStrings(got, []string{"list"}) {
		t.Errorf("calls = %v, want a single list", got)
	}

	if err := f.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := svc.callLog(); len(got) != 2 {
		t.Errorf("explicit Load should refetch, calls = %v", got)
	}
}

func TestFocus_HideClosed(t *testing.T) {
	t.Parallel()

	tasks := []models.Task{
		{ID: "open", Priority: models.TaskPriorityLow},
		{ID: "done", Priority: models.TaskPriorityHigh, Status: models.TaskStatusCompleted},
		{ID: "gone", Priority: models.TaskPriorityHigh, Status: models.TaskStatusArchived},
	}

	tests := []struct {
		name string
		hide bool
		want []string
	}{
		{"show everything", false, []string{"done", "gone", "open"}},
		{"active only", true, []string{"open"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			f := NewFocus(newFakeService(tasks...), &AlertLog{}, nil, WithHideClosed(tt.hide))
			if err := f.Load(context.Background()); err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if got := taskIDs(f.Tasks()); !sameStrings(got, tt.want) {
				t.Errorf("Tasks() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFocus_LoadFailure(t *testing.T) {
	t.Parallel()

	svc := newFakeService()
	svc.listErr = errBackend
	alerts := &AlertLog{}
	f := NewFocus(svc, alerts, nil)

	if err := f.Mount(context.Background()); !errors.Is(err, errBackend) {
		t.Fatalf("Mount() error = %v, want backend error", err)
	}
	if !f.Loading() {
		t.Error("expected loading to remain after a failed load")
	}
	if got := alerts.Drain(); len(got) != 0 {
		t.Errorf("alerts = %v, want none", got)
	}
}

func TestFocus_Complete(t *testing.T) {
	t.Parallel()

	svc := newFakeService(
		models.Task{ID: "1", Priority: models.TaskPriorityHigh},
		models.Task{ID: "2", Priority: models.TaskPriorityLow},
	)
	alerts := &AlertLog{}
	f := NewFocus(svc, alerts, nil)
	if err := f.Mount(context.Background()); err != nil {
		t.Fatalf("Mount() error = %v", err)
	}

	if err := f.Complete(context.Background(), "1"); err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if got := taskIDs(f.Tasks()); !sameStrings(got, []string{"2"}) {
		t.Errorf("Tasks() = %v, want [2]", got)
	}
	if got := alerts.Drain(); !sameStrings(got, []string{AlertFocusCompleted}) {
		t.Errorf("alerts = %v", got)
	}
	upd := svc.updates["1"]
	if upd.Completed == nil || !*upd.Completed {
		t.Errorf("update = %+v, want completed=true", upd)
	}
}

func TestFocus_CompleteFailure(t *testing.T) {
	t.Parallel()

	svc := newFakeService(models.Task{ID: "x"})
	svc.failIDs["x"] = true
	alerts := &AlertLog{}
	f := NewFocus(svc, alerts, nil)
	if err := f.Mount(context.Background()); err != nil {
		t.Fatalf("Mount() error = %v", err)
	}

	if err := f.Complete(context.Background(), "x"); !errors.Is(err, errBackend) {
		t.Fatalf("Complete() error = %v, want backend error", err)
	}
	if got := taskIDs(f.Tasks()); !sameStrings(got, []string{"x"}) {
		t.Errorf("Tasks() = %v, want task kept", got)
	}
	if got := alerts.Drain(); !sameStrings(got, []string{AlertFocusCompleteFailed}) {
		t.Errorf("alerts = %v", got)
	}
}

func TestFocus_StaleLoadDiscarded(t *testing.T) {
	t.Parallel()

	svc := newFakeService(models.Task{ID: "old"})
	gate := make(chan struct{})
	svc.setGate(gate)
	f := NewFocus(svc, &AlertLog{}, nil)

	done := make(chan error, 1)
	go func() { done <- f.Mount(context.Background()) }()
	waitForCalls(t, svc, 1)

	svc.setGate(nil)
	svc.setTasks(models.Task{ID: "new"})
	if err := f.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	close(gate)
	if err := <-done; !errors.Is(err, ErrStaleResponse) {
		t.Fatalf("Mount() error = %v, want ErrStaleResponse", err)
	}
	if got := taskIDs(f.Tasks()); !sameStrings(got, []string{"new"}) {
		t.Errorf("Tasks() = %v, want [new]", got)
	}
}
