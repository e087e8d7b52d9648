package views

import (
	"context"
	"strings"
	"sync"

	logpkg "github.com/benvon/taskdeck/internal/logger"
	"github.com/benvon/taskdeck/internal/models"
	"go.uber.org/zap"
)

// Alert messages shown by focus mode
const (
	AlertFocusCompleted      = "Task completed!"
	AlertFocusCompleteFailed = "Failed to complete task"
)

// Focus lists tasks highest priority first so the user can work down the list
type Focus struct {
	svc        TaskService
	notify     Notifier
	logger     *zap.Logger
	hideClosed bool

	mu      sync.Mutex
	tasks   []models.Task
	loading bool
	mounted bool
	gen     generation
}

// FocusOption configures a Focus view
type FocusOption func(*Focus)

// WithHideClosed drops completed and archived tasks from the list. By default
// the view shows whatever the task service returns.
func WithHideClosed(hide bool) FocusOption {
	return func(f *Focus) {
		f.hideClosed = hide
	}
}

// NewFocus creates a focus view in its loading state
func NewFocus(svc TaskService, notify Notifier, logger *zap.Logger, opts ...FocusOption) *Focus {
	if logger == nil {
		logger = zap.NewNop()
	}
	f := &Focus{
		svc:     svc,
		notify:  notify,
		logger:  logger.Named("focus"),
		loading: true,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Mount loads the list the first time the view is shown. Later calls do nothing.
func (f *Focus) Mount(ctx context.Context) error {
	f.mu.Lock()
	if f.mounted {
		f.mu.Unlock()
		return nil
	}
	f.mounted = true
	f.mu.Unlock()

	return f.Load(ctx)
}

// Mounted reports whether Mount has run
func (f *Focus) Mounted() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.mounted
}

// Load fetches the collection and orders it by priority
func (f *Focus) Load(ctx context.Context) error {
	f.mu.Lock()
	gen := f.gen.next()
	f.loading = true
	f.mu.Unlock()

	tasks, err := f.svc.ListTasks(ctx)

	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.gen.isCurrent(gen) {
		f.logger.Debug("stale_task_list_discarded", zap.Uint64("generation", gen))
		return ErrStaleResponse
	}
	if err != nil {
		f.logger.Error("task_list_load_failed", zap.String("error", logpkg.SanitizeError(err)))
		return err
	}

	if f.hideClosed {
		tasks = models.Partition(tasks).Active
	}
	f.tasks = models.SortByPriority(tasks)
	f.loading = false
	return nil
}

// Loading reports whether the list has not loaded yet
func (f *Focus) Loading() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loading
}

// Tasks returns the ordered list
func (f *Focus) Tasks() []models.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	return cloneTasks(f.tasks)
}

// Complete marks a task completed on the server and drops it from the list
func (f *Focus) Complete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return nil
	}
	if err := f.svc.UpdateTask(ctx, id, models.MarkCompleted()); err != nil {
		f.logger.Warn("task_complete_failed", zap.String("task_id", logpkg.SanitizeString(id, 128)), zap.String("error", logpkg.SanitizeError(err)))
		f.notify.Alert(AlertFocusCompleteFailed)
		return err
	}

	f.mu.Lock()
	if !f.gen.closed {
		f.tasks = removeTask(f.tasks, id)
	}
	f.mu.Unlock()

	f.notify.Alert(AlertFocusCompleted)
	return nil
}

// Close marks the view unmounted; a load still in flight is dropped
func (f *Focus) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gen.close()
}
