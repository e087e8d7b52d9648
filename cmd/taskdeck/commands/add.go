package commands

import (
	"fmt"

	"github.com/benvon/taskdeck/internal/models"
	"github.com/benvon/taskdeck/internal/validation"
	"github.com/benvon/taskdeck/internal/views"
	"github.com/spf13/cobra"
)

// NewAddCmd creates the add command
func NewAddCmd(flags *globalFlags) *cobra.Command {
	var title, category, priority, due string
	var minutes int

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a task directly",
		Long:  "Create a task without going through the AI parser",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			task := models.Task{
				Title:            validation.SanitizeText(title),
				Category:         validation.SanitizeText(category),
				Priority:         models.TaskPriority(priority).Normalize(),
				EstimatedMinutes: minutes,
				DueDate:          validation.SanitizeText(due),
			}
			if err := validation.ValidateTask(task); err != nil {
				return err
			}

			s, err := newSession(cmd.Context(), cmd, flags, false)
			if err != nil {
				return err
			}
			defer s.close()

			if err := s.client.CreateTask(cmd.Context(), task); err != nil {
				fmt.Fprintln(s.out, views.AlertSaveFailed)
				return fmt.Errorf("failed to create task: %w", err)
			}
			fmt.Fprintln(s.out, views.AlertSaved)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "task title (required)")
	cmd.Flags().StringVar(&category, "category", "", "task category")
	cmd.Flags().StringVar(&priority, "priority", "", "High, Medium or Low")
	cmd.Flags().IntVar(&minutes, "minutes", 0, "estimated minutes")
	cmd.Flags().StringVar(&due, "due", "", "due date, shown as given")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}
