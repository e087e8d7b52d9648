// Package views holds the local state behind each page of the client.
//
// Every view mirrors the remote task store on its own; there is no shared
// cache, so two views can disagree until their next fetch. Each fetch is
// tagged with the view's generation and a response that comes back after a
// newer fetch started, or after the view was closed, is dropped.
package views

import (
	"context"
	"errors"
	"sync"

	"github.com/benvon/taskdeck/internal/models"
)

var (
	// ErrStaleResponse is returned when a response arrived for a superseded fetch
	ErrStaleResponse = errors.New("stale response discarded")
	// ErrEmptyText is returned when the brain dump has nothing to parse
	ErrEmptyText = errors.New("nothing to parse")
	// ErrBusy is returned when a parse is requested while another is outstanding
	ErrBusy = errors.New("parse already in progress")
	// ErrUnknownCandidate is returned when saving a candidate that is no longer pending
	ErrUnknownCandidate = errors.New("candidate not found")
)

// TaskService is the remote task store and AI parser as seen by the views
type TaskService interface {
	ListTasks(ctx context.Context) ([]models.Task, error)
	CreateTask(ctx context.Context, task models.Task) error
	UpdateTask(ctx context.Context, id string, update models.TaskUpdate) error
	DeleteTask(ctx context.Context, id string) error
	ParseText(ctx context.Context, text string) ([]models.Task, error)
}

// Notifier shows blocking alerts to the user
type Notifier interface {
	Alert(message string)
}

// NotifierFunc adapts a function to Notifier
type NotifierFunc func(message string)

// Alert calls f(message)
func (f NotifierFunc) Alert(message string) {
	f(message)
}

// AlertLog is a Notifier that queues alerts until they are drained.
// It is safe for concurrent use.
type AlertLog struct {
	mu     sync.Mutex
	alerts []string
}

// Alert records message
func (l *AlertLog) Alert(message string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.alerts = append(l.alerts, message)
}

// Drain returns the queued alerts in order and clears the queue
func (l *AlertLog) Drain() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := l.alerts
	l.alerts = nil
	return out
}

// generation tags fetches so late responses can be recognized. Callers hold the view lock.
type generation struct {
	current uint64
	closed  bool
}

func (g *generation) next() uint64 {
	g.current++
	return g.current
}

func (g *generation) isCurrent(n uint64) bool {
	return !g.closed && g.current == n
}

func (g *generation) close() {
	g.closed = true
	g.current++
}

func cloneTasks(tasks []models.Task) []models.Task {
	out := make([]models.Task, len(tasks))
	copy(out, tasks)
	return out
}

func removeTask(tasks []models.Task, id string) []models.Task {
	out := tasks[:0:0]
	for _, t := range tasks {
		if t.ID != id {
			out = append(out, t)
		}
	}
	return out
}

func patchStatus(tasks []models.Task, id string, status models.TaskStatus) []models.Task {
	out := make([]models.Task, len(tasks))
	for i, t := range tasks {
		if t.ID == id {
			t = t.WithStatus(status)
		}
		out[i] = t
	}
	return out
}
