package commands

import (
	"fmt"

	"github.com/benvon/taskdeck/internal/render"
	"github.com/benvon/taskdeck/internal/views"
	"github.com/spf13/cobra"
)

// NewFocusCmd creates the focus command and its complete subcommand
func NewFocusCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "focus",
		Short: "Print tasks highest priority first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd.Context(), cmd, flags, false)
			if err != nil {
				return err
			}
			defer s.close()

			f := views.NewFocus(s.client, s.notifier(), s.logger, views.WithHideClosed(s.cfg.FocusHideClosed))
			if err := f.Mount(cmd.Context()); err != nil {
				return fmt.Errorf("failed to load tasks: %w", err)
			}

			fmt.Fprintln(s.out, render.Focus(render.BuildFocus(f.Loading(), f.Tasks()), -1))
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "complete <task-id>",
		Short: "Complete a task from focus mode",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd.Context(), cmd, flags, false)
			if err != nil {
				return err
			}
			defer s.close()

			f := views.NewFocus(s.client, s.notifier(), s.logger)
			if err := f.Complete(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("failed to complete task %s: %w", args[0], err)
			}
			return nil
		},
	})

	return cmd
}
