package views

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/benvon/taskdeck/internal/models"
)

var errBackend = errors.New("backend rejected request")

// fakeService records calls and returns canned results. A non-nil gate
// blocks ListTasks/ParseText until it is closed.
type fakeService struct {
	mu sync.Mutex

	tasks     []models.Task
	listErr   error
	parsed    []models.Task
	parseErr  error
	failIDs   map[string]bool
	createErr error

	gate    chan struct{}
	calls   []string
	created []models.Task
	updates map[string]models.TaskUpdate
}

func newFakeService(tasks ...models.Task) *fakeService {
	return &fakeService{
		tasks:   tasks,
		failIDs: map[string]bool{},
		updates: map[string]models.TaskUpdate{},
	}
}

func (f *fakeService) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeService) setParsed(tasks ...models.Task) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.parsed = tasks
}

func (f *fakeService) createdTasks() []models.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Task(nil), f.created...)
}

func (f *fakeService) callLog() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func wait(gate chan struct{}) {
	if gate != nil {
		<-gate
	}
}

// ListTasks snapshots its result before waiting on the gate, so a blocked
// call returns what the collection looked like when it was issued.
func (f *fakeService) ListTasks(ctx context.Context) ([]models.Task, error) {
	f.mu.Lock()
	tasks, err, gate := append([]models.Task(nil), f.tasks...), f.listErr, f.gate
	f.mu.Unlock()

	f.record("list")
	wait(gate)
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

func (f *fakeService) setTasks(tasks ...models.Task) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks = tasks
}

func (f *fakeService) setGate(gate chan struct{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gate = gate
}

func (f *fakeService) CreateTask(ctx context.Context, task models.Task) error {
	f.record("create " + task.Title)
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, task)
	return nil
}

func (f *fakeService) UpdateTask(ctx context.Context, id string, update models.TaskUpdate) error {
	f.record("update " + id)
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failIDs[id] {
		return errBackend
	}
	f.updates[id] = update
	return nil
}

func (f *fakeService) DeleteTask(ctx context.Context, id string) error {
	f.record("delete " + id)
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failIDs[id] {
		return errBackend
	}
	return nil
}

func (f *fakeService) ParseText(ctx context.Context, text string) ([]models.Task, error) {
	f.mu.Lock()
	parsed, err, gate := append([]models.Task(nil), f.parsed...), f.parseErr, f.gate
	f.mu.Unlock()

	f.record("parse")
	wait(gate)
	if err != nil {
		return nil, err
	}
	return parsed, nil
}

func taskIDs(tasks []models.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.ID)
	}
	return out
}

func sameStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// waitForCalls blocks until the fake has seen n calls
func waitForCalls(t *testing.T, f *fakeService, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for len(f.callLog()) < n {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %d calls, saw %v", n, f.callLog())
		}
		time.Sleep(time.Millisecond)
	}
}
