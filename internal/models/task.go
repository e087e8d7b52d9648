package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// TaskPriority represents how urgent a task is
type TaskPriority string

const (
	TaskPriorityHigh   TaskPriority = "High"
	TaskPriorityMedium TaskPriority = "Medium"
	TaskPriorityLow    TaskPriority = "Low"
)

// TaskStatus represents where a task is in its lifecycle
type TaskStatus string

const (
	TaskStatusPending   TaskStatus = "pending"
	TaskStatusCompleted TaskStatus = "completed"
	TaskStatusArchived  TaskStatus = "archived"
)

// Effective returns the status used for display. Absent or unknown values are pending.
func (s TaskStatus) Effective() TaskStatus {
	switch s {
	case TaskStatusCompleted, TaskStatusArchived:
		return s
	default:
		return TaskStatusPending
	}
}

// Task mirrors a task held by the remote task service.
// ID and Status are empty for candidates that have not been saved yet.
type Task struct {
	ID               string       `json:"id,omitempty"`
	Title            string       `json:"title" validate:"required"`
	Category         string       `json:"category,omitempty"`
	Priority         TaskPriority `json:"priority,omitempty" validate:"omitempty,task_priority"`
	EstimatedMinutes int          `json:"estimated_minutes,omitempty" validate:"gte=0"`
	DueDate          string       `json:"due_date,omitempty"`
	Status           TaskStatus   `json:"status,omitempty" validate:"omitempty,task_status"`
}

// UnmarshalJSON accepts ids given as JSON strings or numbers and
// estimated minutes given as any JSON number, rounded to whole minutes.
func (t *Task) UnmarshalJSON(data []byte) error {
	type Alias Task
	aux := struct {
		*Alias
		ID               json.RawMessage `json:"id"`
		EstimatedMinutes json.RawMessage `json:"estimated_minutes"`
	}{Alias: (*Alias)(t)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	id, err := decodeID(aux.ID)
	if err != nil {
		return err
	}
	minutes, err := decodeMinutes(aux.EstimatedMinutes)
	if err != nil {
		return err
	}
	t.ID = id
	t.EstimatedMinutes = minutes
	return nil
}

func decodeID(raw json.RawMessage) (string, error) {
	var v any
	if len(raw) > 0 {
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.UseNumber()
		if err := dec.Decode(&v); err != nil {
			return "", err
		}
	}
	switch id := v.(type) {
	case nil:
		return "", nil
	case string:
		return id, nil
	case json.Number:
		return id.String(), nil
	default:
		return "", fmt.Errorf("task id must be a string or number, got %s", raw)
	}
}

func decodeMinutes(raw json.RawMessage) (int, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return 0, nil
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return 0, fmt.Errorf("estimated_minutes must be a number, got %s", raw)
	}
	return int(math.Round(f)), nil
}

// HasID reports whether the task has been persisted
func (t Task) HasID() bool {
	return strings.TrimSpace(t.ID) != ""
}

// WithStatus returns a copy of the task with the given status
func (t Task) WithStatus(status TaskStatus) Task {
	t.Status = status
	return t
}

// TaskUpdate is the partial body sent when changing a task's status.
// Only the flags that are set are encoded.
type TaskUpdate struct {
	Completed *bool `json:"completed,omitempty"`
	Archived  *bool `json:"archived,omitempty"`
}

// MarkCompleted returns an update that flags a task as completed
func MarkCompleted() TaskUpdate {
	v := true
	return TaskUpdate{Completed: &v}
}

// SetArchived returns an update that archives or restores a task
func SetArchived(archived bool) TaskUpdate {
	return TaskUpdate{Archived: &archived}
}

// ParseRequest is the body sent to the AI parsing endpoint
type ParseRequest struct {
	Text string `json:"text"`
}
