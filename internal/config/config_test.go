package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/benvon/taskdeck/internal/models"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func envFrom(values map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	}
}

func TestLoadWithOptions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		yaml        string
		dotenv      string
		envVars     map[string]string
		expectError bool
		validate    func(*testing.T, *Config)
	}{
		{
			name: "default values",
			validate: func(t *testing.T, cfg *Config) {
				if cfg.APIURL != DefaultAPIURL {
					t.Errorf("Expected default APIURL %q, got %q", DefaultAPIURL, cfg.APIURL)
				}
				if cfg.RequestTimeout != 0 {
					t.Errorf("Expected no request timeout by default, got %v", cfg.RequestTimeout)
				}
				if cfg.RestoreStatus != models.TaskStatusCompleted {
					t.Errorf("Expected default RestoreStatus 'completed', got %q", cfg.RestoreStatus)
				}
				if cfg.FocusHideClosed {
					t.Error("Expected FocusHideClosed to be false by default")
				}
				if cfg.Breaker.Enabled {
					t.Error("Expected breaker to be disabled by default")
				}
				if cfg.Breaker.MaxFailures != DefaultBreakerMaxFailures {
					t.Errorf("Expected default breaker max failures %d, got %d", DefaultBreakerMaxFailures, cfg.Breaker.MaxFailures)
				}
			},
		},
		{
			name: "yaml file values",
			yaml: "api_url: http://tasks.internal:9000/api\nrequest_timeout: 15s\nfocus_hide_closed: true\nbreaker:\n  enabled: true\n  max_failures: 5\n",
			validate: func(t *testing.T, cfg *Config) {
				if cfg.APIURL != "http://tasks.internal:9000/api" {
					t.Errorf("Expected APIURL from file, got %q", cfg.APIURL)
				}
				if cfg.RequestTimeout != 15*time.Second {
					t.Errorf("Expected 15s timeout, got %v", cfg.RequestTimeout)
				}
				if !cfg.FocusHideClosed {
					t.Error("Expected FocusHideClosed from file")
				}
				if !cfg.Breaker.Enabled || cfg.Breaker.MaxFailures != 5 {
					t.Errorf("Expected breaker from file, got %+v", cfg.Breaker)
				}
				if cfg.Breaker.Cooldown != DefaultBreakerCooldown {
					t.Errorf("Expected default cooldown to survive partial breaker block, got %v", cfg.Breaker.Cooldown)
				}
			},
		},
		{
			name:   "env overrides dotenv overrides yaml",
			yaml:   "api_url: http://from-yaml/api\ndebug: false\n",
			dotenv: "TASKDECK_API_URL=http://from-dotenv/api\nTASKDECK_DEBUG=true\n",
			envVars: map[string]string{
				"TASKDECK_API_URL": "https://from-env/api",
			},
			validate: func(t *testing.T, cfg *Config) {
				if cfg.APIURL != "https://from-env/api" {
					t.Errorf("Expected env APIURL, got %q", cfg.APIURL)
				}
				if !cfg.DebugMode {
					t.Error("Expected DebugMode from .env")
				}
			},
		},
		{
			name: "restore status pending",
			envVars: map[string]string{
				"TASKDECK_RESTORE_STATUS": "pending",
			},
			validate: func(t *testing.T, cfg *Config) {
				if cfg.RestoreStatus != models.TaskStatusPending {
					t.Errorf("Expected RestoreStatus 'pending', got %q", cfg.RestoreStatus)
				}
			},
		},
		{
			name: "otel settings",
			envVars: map[string]string{
				"OTEL_ENABLED":                "1",
				"OTEL_EXPORTER_OTLP_ENDPOINT": "localhost:4318",
			},
			validate: func(t *testing.T, cfg *Config) {
				if !cfg.OTELEnabled || cfg.OTELEndpoint != "localhost:4318" {
					t.Errorf("Expected otel settings from env, got %v %q", cfg.OTELEnabled, cfg.OTELEndpoint)
				}
			},
		},
		{
			name:        "invalid restore status",
			envVars:     map[string]string{"TASKDECK_RESTORE_STATUS": "archived"},
			expectError: true,
		},
		{
			name:        "relative api url",
			envVars:     map[string]string{"TASKDECK_API_URL": "/api"},
			expectError: true,
		},
		{
			name:        "bad timeout",
			envVars:     map[string]string{"TASKDECK_REQUEST_TIMEOUT": "soon"},
			expectError: true,
		},
		{
			name:        "negative timeout",
			envVars:     map[string]string{"TASKDECK_REQUEST_TIMEOUT": "-1s"},
			expectError: true,
		},
		{
			name:        "breaker with zero failures",
			envVars:     map[string]string{"TASKDECK_BREAKER_ENABLED": "true", "TASKDECK_BREAKER_MAX_FAILURES": "0"},
			expectError: true,
		},
		{
			name:        "malformed yaml",
			yaml:        "api_url: [unterminated\n",
			expectError: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			opts := Options{
				ConfigPath: writeFile(t, dir, "config.yaml", tt.yaml),
				LookupEnv:  envFrom(tt.envVars),
			}
			if tt.dotenv != "" {
				opts.DotEnvPath = writeFile(t, dir, ".env", tt.dotenv)
			} else {
				opts.DotEnvPath = filepath.Join(dir, "missing.env")
			}

			cfg, err := LoadWithOptions(opts)
			if (err != nil) != tt.expectError {
				t.Fatalf("LoadWithOptions() error = %v, expectError %v", err, tt.expectError)
			}
			if tt.validate != nil && cfg != nil {
				tt.validate(t, cfg)
			}
		})
	}
}

func TestLoadWithOptions_MissingExplicitFile(t *testing.T) {
	t.Parallel()

	_, err := LoadWithOptions(Options{
		ConfigPath: filepath.Join(t.TempDir(), "nope.yaml"),
		LookupEnv:  envFrom(nil),
	})
	if err == nil {
		t.Fatal("Expected error for missing explicit config file")
	}
}

func TestLoadWithOptions_ConfigPathFromEnv(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "taskdeck.yaml", "api_url: http://env-file/api\n")

	cfg, err := LoadWithOptions(Options{
		LookupEnv: envFrom(map[string]string{"TASKDECK_CONFIG": path}),
	})
	if err != nil {
		t.Fatalf("LoadWithOptions() error = %v", err)
	}
	if cfg.APIURL != "http://env-file/api" {
		t.Errorf("Expected APIURL from TASKDECK_CONFIG file, got %q", cfg.APIURL)
	}
}
