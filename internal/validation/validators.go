package validation

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/benvon/taskdeck/internal/models"
	"github.com/go-playground/validator/v10"
)

var (
	// Validate is a shared validator instance
	Validate *validator.Validate
)

func init() {
	Validate = validator.New()

	if err := Validate.RegisterValidation("task_priority", validateTaskPriority); err != nil {
		panic(fmt.Sprintf("failed to register task_priority validator: %v", err))
	}
	if err := Validate.RegisterValidation("task_status", validateTaskStatus); err != nil {
		panic(fmt.Sprintf("failed to register task_status validator: %v", err))
	}
}

// validateTaskPriority validates that a string is a valid TaskPriority enum value
func validateTaskPriority(fl validator.FieldLevel) bool {
	return ValidateTaskPriority(fl.Field().String()) == nil
}

// validateTaskStatus validates that a string is a valid TaskStatus enum value
func validateTaskStatus(fl validator.FieldLevel) bool {
	return ValidateTaskStatus(fl.Field().String()) == nil
}

// SanitizeText sanitizes text input by trimming whitespace and removing control characters
func SanitizeText(text string) string {
	text = strings.TrimSpace(text)

	// Remove control characters except newline and tab
	var sanitized strings.Builder
	for _, r := range text {
		if unicode.IsControl(r) && r != '\n' && r != '\t' {
			continue
		}
		sanitized.WriteRune(r)
	}

	return sanitized.String()
}

// IsBlank reports whether text has no visible content
func IsBlank(text string) bool {
	return strings.TrimSpace(text) == ""
}

// ValidateTaskPriority validates a TaskPriority string value
func ValidateTaskPriority(value string) error {
	switch models.TaskPriority(value) {
	case models.TaskPriorityHigh, models.TaskPriorityMedium, models.TaskPriorityLow:
		return nil
	default:
		return fmt.Errorf("invalid priority: %s (must be 'High', 'Medium', or 'Low')", value)
	}
}

// ValidateTaskStatus validates a TaskStatus string value
func ValidateTaskStatus(value string) error {
	switch models.TaskStatus(value) {
	case models.TaskStatusPending, models.TaskStatusCompleted, models.TaskStatusArchived:
		return nil
	default:
		return fmt.Errorf("invalid status: %s (must be 'pending', 'completed', or 'archived')", value)
	}
}

// ValidateTask checks that a task can be submitted for creation
func ValidateTask(task models.Task) error {
	if IsBlank(task.Title) {
		return errors.New("title is required")
	}
	if err := Validate.Struct(task); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("invalid %s: failed %s check", strings.ToLower(fe.Field()), fe.Tag())
		}
		return fmt.Errorf("invalid task: %w", err)
	}
	return nil
}
