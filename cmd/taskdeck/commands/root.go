package commands

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/benvon/taskdeck/internal/api"
	"github.com/benvon/taskdeck/internal/config"
	"github.com/benvon/taskdeck/internal/logger"
	"github.com/benvon/taskdeck/internal/telemetry"
	"github.com/benvon/taskdeck/internal/views"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type globalFlags struct {
	configPath string
	apiURL     string
	debug      bool
}

// session is everything a command needs to talk to the task service
type session struct {
	cfg    *config.Config
	logger *zap.Logger
	client *api.Client
	out    io.Writer
	close  func()
}

// notifier prints alerts on the command's output, one per line
func (s *session) notifier() views.Notifier {
	return views.NotifierFunc(func(message string) {
		fmt.Fprintln(s.out, message)
	})
}

// NewRootCmd creates the taskdeck command tree. With no subcommand it starts the TUI.
func NewRootCmd() *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:           "taskdeck",
		Short:         "Terminal client for the smart task service",
		Long:          "Dashboard, AI brain dump and focus mode for a remote task service, as a TUI or one-shot commands",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, flags)
		},
	}

	rootCmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "path to a YAML config file (default ~/.taskdeck/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&flags.apiURL, "api-url", "", "base URL of the task service, overrides config")
	rootCmd.PersistentFlags().BoolVar(&flags.debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(NewTUICmd(flags))
	rootCmd.AddCommand(NewDashboardCmd(flags))
	rootCmd.AddCommand(NewStatusCmds(flags)...)
	rootCmd.AddCommand(NewAddCmd(flags))
	rootCmd.AddCommand(NewDumpCmd(flags))
	rootCmd.AddCommand(NewFocusCmd(flags))

	return rootCmd
}

// newSession loads configuration and builds the logger, tracer and API
// client. The TUI logs to a rotating file; everything else logs to stderr,
// as console output in debug mode and JSON otherwise.
func newSession(ctx context.Context, cmd *cobra.Command, flags *globalFlags, fileLogging bool) (*session, error) {
	cfg, err := config.LoadWithOptions(config.Options{ConfigPath: flags.configPath, DotEnvPath: ".env"})
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if flags.apiURL != "" {
		cfg.APIURL = flags.apiURL
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	debugMode := cfg.DebugMode || flags.debug

	var zapLogger *zap.Logger
	switch {
	case fileLogging:
		zapLogger, err = logger.NewFileLogger(cfg.LogFile, debugMode)
	case debugMode:
		zapLogger, err = logger.NewDevelopmentLogger(debugMode)
	default:
		zapLogger, err = logger.NewProductionLogger(debugMode)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	s := &session{
		cfg:    cfg,
		logger: zapLogger,
		out:    cmd.OutOrStdout(),
	}
	closers := []func(){func() { _ = logger.Sync(zapLogger) }}
	s.close = func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	if cfg.OTELEnabled {
		if cfg.OTELEndpoint == "" {
			zapLogger.Warn("otel_enabled_but_endpoint_not_configured")
		} else if tp, err := telemetry.InitTracer(ctx, telemetry.ServiceName, cfg.OTELEndpoint); err != nil {
			zapLogger.Warn("failed_to_initialize_otel_tracer", zap.Error(err))
		} else {
			zapLogger.Debug("otel_tracer_initialized", zap.String("endpoint", cfg.OTELEndpoint))
			closers = append(closers, func() {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := telemetry.Shutdown(shutdownCtx, tp); err != nil {
					zapLogger.Error("failed_to_shutdown_otel_tracer", zap.Error(err))
				}
			})
		}
	}

	var opts []api.Option
	if cfg.RequestTimeout > 0 {
		opts = append(opts, api.WithTimeout(cfg.RequestTimeout))
	}
	if cfg.Breaker.Enabled {
		opts = append(opts, api.WithCircuitBreaker(cfg.Breaker.MaxFailures, cfg.Breaker.Cooldown))
	}
	s.client, err = api.NewClient(cfg.APIURL, zapLogger, opts...)
	if err != nil {
		s.close()
		return nil, fmt.Errorf("failed to create API client: %w", err)
	}

	zapLogger.Debug("session_started",
		zap.String("api_url", cfg.APIURL),
		zap.Duration("request_timeout", cfg.RequestTimeout),
		zap.Bool("breaker_enabled", cfg.Breaker.Enabled),
		zap.Bool("otel_enabled", cfg.OTELEnabled),
	)
	return s, nil
}
