package commands

import (
	"context"
	"fmt"

	"github.com/benvon/taskdeck/internal/render"
	"github.com/benvon/taskdeck/internal/views"
	"github.com/spf13/cobra"
)

// NewDashboardCmd creates the dashboard command
func NewDashboardCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Print every task grouped by status",
		Long:  "Print active, completed and archived tasks. Empty groups are left out.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd.Context(), cmd, flags, false)
			if err != nil {
				return err
			}
			defer s.close()

			d := views.NewDashboard(s.client, s.notifier(), s.logger)
			if err := d.Load(cmd.Context()); err != nil {
				return fmt.Errorf("failed to load tasks: %w", err)
			}

			fmt.Fprintln(s.out, render.Dashboard(render.BuildDashboard(d.Loading(), d.Tasks()), -1))
			return nil
		},
	}
}

// NewStatusCmds creates complete, delete, archive and restore
func NewStatusCmds(flags *globalFlags) []*cobra.Command {
	actions := []struct {
		use   string
		short string
		run   func(d *views.Dashboard) func(ctx context.Context, id string) error
	}{
		{"complete", "Mark a task completed", func(d *views.Dashboard) func(context.Context, string) error { return d.Complete }},
		{"delete", "Delete a task", func(d *views.Dashboard) func(context.Context, string) error { return d.Delete }},
		{"archive", "Archive a task", func(d *views.Dashboard) func(context.Context, string) error { return d.Archive }},
		{"restore", "Restore an archived task", func(d *views.Dashboard) func(context.Context, string) error { return d.Restore }},
	}

	cmds := make([]*cobra.Command, 0, len(actions))
	for _, action := range actions {
		action := action
		cmds = append(cmds, &cobra.Command{
			Use:   action.use + " <task-id>",
			Short: action.short,
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				s, err := newSession(cmd.Context(), cmd, flags, false)
				if err != nil {
					return err
				}
				defer s.close()

				d := views.NewDashboard(s.client, s.notifier(), s.logger, views.WithRestoreStatus(s.cfg.RestoreStatus))
				if err := action.run(d)(cmd.Context(), args[0]); err != nil {
					return fmt.Errorf("failed to %s task %s: %w", action.use, args[0], err)
				}
				return nil
			},
		})
	}
	return cmds
}
