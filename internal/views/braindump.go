package views

import (
	"context"
	"sync"

	"github.com/benvon/taskdeck/internal/api"
	logpkg "github.com/benvon/taskdeck/internal/logger"
	"github.com/benvon/taskdeck/internal/models"
	"github.com/benvon/taskdeck/internal/validation"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Alert messages shown by the brain dump
const (
	AlertEmptyText         = "Please enter some text to parse!"
	AlertParseFailedPrefix = "AI parse failed: "
	AlertSaved             = "✓ Task saved!"
	AlertSaveFailed        = "Failed to save task"
)

// BrainDump turns free text into candidate tasks through the AI parser and
// saves the ones the user picks
type BrainDump struct {
	svc    TaskService
	notify Notifier
	logger *zap.Logger

	mu         sync.Mutex
	text       string
	candidates []models.Candidate
	busy       bool
	gen        generation
}

// NewBrainDump creates an empty brain dump
func NewBrainDump(svc TaskService, notify Notifier, logger *zap.Logger) *BrainDump {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BrainDump{
		svc:    svc,
		notify: notify,
		logger: logger.Named("brain_dump"),
	}
}

// SetText replaces the text to parse
func (b *BrainDump) SetText(text string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.text = text
}

// Text returns the text to parse
func (b *BrainDump) Text() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.text
}

// Busy reports whether a parse request is outstanding
func (b *BrainDump) Busy() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.busy
}

// CanParse reports whether the parse control is enabled
func (b *BrainDump) CanParse() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return !b.busy && !validation.IsBlank(b.text)
}

// Candidates returns a copy of the pending candidates
func (b *BrainDump) Candidates() []models.Candidate {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]models.Candidate, len(b.candidates))
	copy(out, b.candidates)
	return out
}

// Parse sends the current text to the AI parser and replaces the candidate
// list with the result. Blank text is rejected with an alert and no request.
func (b *BrainDump) Parse(ctx context.Context) error {
	b.mu.Lock()
	text := b.text
	if validation.IsBlank(text) {
		b.mu.Unlock()
		b.notify.Alert(AlertEmptyText)
		return ErrEmptyText
	}
	if b.busy {
		b.mu.Unlock()
		return ErrBusy
	}
	b.busy = true
	gen := b.gen.next()
	b.mu.Unlock()

	parsed, err := b.svc.ParseText(ctx, text)

	b.mu.Lock()
	if !b.gen.isCurrent(gen) {
		b.mu.Unlock()
		b.logger.Debug("stale_parse_result_discarded", zap.Uint64("generation", gen))
		return ErrStaleResponse
	}
	b.busy = false
	if err != nil {
		b.mu.Unlock()
		b.logger.Error("ai_parse_failed", zap.String("error", logpkg.SanitizeError(err)))
		b.notify.Alert(AlertParseFailedPrefix + api.ErrorDetails(err))
		return err
	}
	b.candidates = models.NewCandidates(parsed)
	b.mu.Unlock()

	b.logger.Debug("ai_parse_succeeded", zap.Int("candidates", len(parsed)))
	return nil
}

// Save persists one candidate and removes exactly that candidate from the pending list
func (b *BrainDump) Save(ctx context.Context, key uuid.UUID) error {
	b.mu.Lock()
	var (
		task  models.Task
		found bool
	)
	for _, c := range b.candidates {
		if c.Key == key {
			task, found = c.Task, true
			break
		}
	}
	b.mu.Unlock()
	if !found {
		return ErrUnknownCandidate
	}

	if err := b.svc.CreateTask(ctx, task); err != nil {
		b.logger.Warn("task_save_failed", zap.String("error", logpkg.SanitizeError(err)))
		b.notify.Alert(AlertSaveFailed)
		return err
	}

	b.mu.Lock()
	if !b.gen.closed {
		kept := b.candidates[:0:0]
		for _, c := range b.candidates {
			if c.Key != key {
				kept = append(kept, c)
			}
		}
		b.candidates = kept
	}
	b.mu.Unlock()

	b.notify.Alert(AlertSaved)
	return nil
}

// SaveAll saves every pending candidate in order. It keeps going after a
// failure and returns how many were saved along with the first error.
func (b *BrainDump) SaveAll(ctx context.Context) (int, error) {
	var (
		saved    int
		firstErr error
	)
	for _, c := range b.Candidates() {
		if err := b.Save(ctx, c.Key); err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		saved++
	}
	return saved, firstErr
}

// Close marks the brain dump unmounted; a parse still in flight is dropped
func (b *BrainDump) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.gen.close()
}
