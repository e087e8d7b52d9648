package views

import (
	"context"
	"strings"
	"sync"

	logpkg "github.com/benvon/taskdeck/internal/logger"
	"github.com/benvon/taskdeck/internal/models"
	"go.uber.org/zap"
)

// Alert messages shown by the dashboard
const (
	AlertCompleted      = "✓ Task marked as completed!"
	AlertCompleteFailed = "Failed to mark task as completed"
	AlertDeleted        = "✓ Task deleted!"
	AlertDeleteFailed   = "Failed to delete task"
	AlertArchived       = "✓ Task archived!"
	AlertArchiveFailed  = "Failed to archive task"
	AlertRestored       = "✓ Task restored!"
	AlertRestoreFailed  = "Failed to restore task"
)

// Dashboard lists every task split into active, completed and archived groups
type Dashboard struct {
	svc           TaskService
	notify        Notifier
	logger        *zap.Logger
	restoreStatus models.TaskStatus

	mu      sync.Mutex
	tasks   []models.Task
	loading bool
	gen     generation
}

// DashboardOption configures a Dashboard
type DashboardOption func(*Dashboard)

// WithRestoreStatus sets the status a restored task is given locally.
// The task service puts restored tasks back in completed, which is the default.
func WithRestoreStatus(status models.TaskStatus) DashboardOption {
	return func(d *Dashboard) {
		if status != "" {
			d.restoreStatus = status
		}
	}
}

// NewDashboard creates a dashboard in its loading state
func NewDashboard(svc TaskService, notify Notifier, logger *zap.Logger, opts ...DashboardOption) *Dashboard {
	if logger == nil {
		logger = zap.NewNop()
	}
	d := &Dashboard{
		svc:           svc,
		notify:        notify,
		logger:        logger.Named("dashboard"),
		restoreStatus: models.TaskStatusCompleted,
		loading:       true,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Load fetches the whole collection and replaces the local list. A failure is
// logged only and leaves the dashboard loading.
func (d *Dashboard) Load(ctx context.Context) error {
	d.mu.Lock()
	gen := d.gen.next()
	d.loading = true
	d.mu.Unlock()

	tasks, err := d.svc.ListTasks(ctx)

	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.gen.isCurrent(gen) {
		d.logger.Debug("stale_task_list_discarded", zap.Uint64("generation", gen))
		return ErrStaleResponse
	}
	if err != nil {
		d.logger.Error("task_list_load_failed", zap.String("error", logpkg.SanitizeError(err)))
		return err
	}
	d.tasks = cloneTasks(tasks)
	d.loading = false
	d.logger.Debug("task_list_loaded", zap.Int("count", len(tasks)))
	return nil
}

// Navigate is called whenever the dashboard is navigated to. It always refetches.
func (d *Dashboard) Navigate(ctx context.Context) error {
	return d.Load(ctx)
}

// Refresh reloads on request from the user
func (d *Dashboard) Refresh(ctx context.Context) error {
	return d.Load(ctx)
}

// Close marks the dashboard unmounted; responses still in flight are dropped
func (d *Dashboard) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.gen.close()
}

// Loading reports whether a fetch has not yet succeeded
func (d *Dashboard) Loading() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.loading
}

// Tasks returns a copy of the local task list
func (d *Dashboard) Tasks() []models.Task {
	d.mu.Lock()
	defer d.mu.Unlock()
	return cloneTasks(d.tasks)
}

// Partitions groups the current list by status
func (d *Dashboard) Partitions() models.Partitions {
	d.mu.Lock()
	defer d.mu.Unlock()
	return models.Partition(d.tasks)
}

// Complete marks a task completed on the server, then patches it locally
func (d *Dashboard) Complete(ctx context.Context, id string) error {
	return d.updateStatus(ctx, id, models.MarkCompleted(), models.TaskStatusCompleted, AlertCompleted, AlertCompleteFailed)
}

// Archive archives a task on the server, then patches it locally
func (d *Dashboard) Archive(ctx context.Context, id string) error {
	return d.updateStatus(ctx, id, models.SetArchived(true), models.TaskStatusArchived, AlertArchived, AlertArchiveFailed)
}

// Restore un-archives a task on the server. Locally it lands in the restore
// status, completed unless configured otherwise.
func (d *Dashboard) Restore(ctx context.Context, id string) error {
	return d.updateStatus(ctx, id, models.SetArchived(false), d.restoreStatus, AlertRestored, AlertRestoreFailed)
}

// Delete removes a task on the server, then drops it from the local list
func (d *Dashboard) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return nil
	}
	if err := d.svc.DeleteTask(ctx, id); err != nil {
		d.logger.Warn("task_delete_failed", zap.String("task_id", logpkg.SanitizeString(id, 128)), zap.String("error", logpkg.SanitizeError(err)))
		d.notify.Alert(AlertDeleteFailed)
		return err
	}

	d.mu.Lock()
	if !d.gen.closed {
		d.tasks = removeTask(d.tasks, id)
	}
	d.mu.Unlock()

	d.notify.Alert(AlertDeleted)
	return nil
}

func (d *Dashboard) updateStatus(ctx context.Context, id string, update models.TaskUpdate, status models.TaskStatus, okMsg, failMsg string) error {
	if strings.TrimSpace(id) == "" {
		return nil
	}
	if err := d.svc.UpdateTask(ctx, id, update); err != nil {
		d.logger.Warn("task_update_failed",
			zap.String("task_id", logpkg.SanitizeString(id, 128)),
			zap.String("target_status", string(status)),
			zap.String("error", logpkg.SanitizeError(err)),
		)
		d.notify.Alert(failMsg)
		return err
	}

	d.mu.Lock()
	if !d.gen.closed {
		d.tasks = patchStatus(d.tasks, id, status)
	}
	d.mu.Unlock()

	d.notify.Alert(okMsg)
	return nil
}
