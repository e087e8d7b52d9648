package commands

import (
	"github.com/benvon/taskdeck/internal/tui"
	"github.com/benvon/taskdeck/internal/views"
	"github.com/spf13/cobra"
)

// NewTUICmd creates the tui command
func NewTUICmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Start the interactive terminal UI",
		Long:  "Start the interactive terminal UI with the Dashboard, Smart Add and Focus Mode pages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, flags)
		},
	}
}

func runTUI(cmd *cobra.Command, flags *globalFlags) error {
	ctx := cmd.Context()
	s, err := newSession(ctx, cmd, flags, true)
	if err != nil {
		return err
	}
	defer s.close()

	alerts := &views.AlertLog{}
	app := tui.New(ctx, tui.Views{
		Dashboard: views.NewDashboard(s.client, alerts, s.logger, views.WithRestoreStatus(s.cfg.RestoreStatus)),
		BrainDump: views.NewBrainDump(s.client, alerts, s.logger),
		Focus:     views.NewFocus(s.client, alerts, s.logger, views.WithHideClosed(s.cfg.FocusHideClosed)),
		Alerts:    alerts,
	}, s.logger)

	s.logger.Info("tui_started")
	return tui.Run(ctx, app)
}
