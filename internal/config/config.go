package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/benvon/taskdeck/internal/models"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultAPIURL is where the task service listens in a local setup
	DefaultAPIURL = "http://localhost:8000/api"
	// DefaultBreakerMaxFailures is the number of consecutive failures that opens the breaker
	DefaultBreakerMaxFailures = 3
	// DefaultBreakerCooldown is how long the breaker stays open before probing again
	DefaultBreakerCooldown = 5 * time.Second
)

// Config holds application configuration
type Config struct {
	APIURL          string            `yaml:"api_url"`
	RequestTimeout  time.Duration     `yaml:"request_timeout"`
	DebugMode       bool              `yaml:"debug"`
	LogFile         string            `yaml:"log_file"`
	RestoreStatus   models.TaskStatus `yaml:"restore_status"`
	FocusHideClosed bool              `yaml:"focus_hide_closed"`
	Breaker         BreakerConfig     `yaml:"breaker"`
	OTELEnabled     bool              `yaml:"otel_enabled"`
	OTELEndpoint    string            `yaml:"otel_endpoint"`
}

// BreakerConfig controls the optional circuit breaker around API calls
type BreakerConfig struct {
	Enabled     bool          `yaml:"enabled"`
	MaxFailures int           `yaml:"max_failures"`
	Cooldown    time.Duration `yaml:"cooldown"`
}

// Options control where Load looks for configuration
type Options struct {
	// ConfigPath is an explicit YAML file. When set it must exist.
	ConfigPath string
	// DotEnvPath is an optional .env file; missing files are ignored.
	DotEnvPath string
	// LookupEnv reads the process environment. Defaults to os.LookupEnv.
	LookupEnv func(string) (string, bool)
}

// Default returns the configuration used when nothing else is set
func Default() *Config {
	return &Config{
		APIURL:        DefaultAPIURL,
		RestoreStatus: models.TaskStatusCompleted,
		Breaker: BreakerConfig{
			MaxFailures: DefaultBreakerMaxFailures,
			Cooldown:    DefaultBreakerCooldown,
		},
	}
}

// Load loads configuration from the default locations and environment variables
func Load() (*Config, error) {
	return LoadWithOptions(Options{DotEnvPath: ".env"})
}

// LoadWithOptions loads defaults, then the YAML file, then .env values, then
// the environment. Later sources win.
func LoadWithOptions(opts Options) (*Config, error) {
	lookup := opts.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}

	dotenv := map[string]string{}
	if opts.DotEnvPath != "" {
		values, err := godotenv.Read(opts.DotEnvPath)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read %s: %w", opts.DotEnvPath, err)
		}
		if values != nil {
			dotenv = values
		}
	}
	env := func(key string) (string, bool) {
		if v, ok := lookup(key); ok && v != "" {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok && v != ""
	}

	cfg := Default()

	path := opts.ConfigPath
	required := path != ""
	if !required {
		if v, ok := env("TASKDECK_CONFIG"); ok {
			path, required = v, true
		} else {
			path = DefaultConfigPath()
		}
	}
	if path != "" {
		if err := loadFile(path, cfg); err != nil {
			if required || !errors.Is(err, fs.ErrNotExist) {
				return nil, err
			}
		}
	}

	if err := applyEnv(cfg, env); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DefaultConfigPath returns ~/.taskdeck/config.yaml, or "" without a home directory
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".taskdeck", "config.yaml")
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config, env func(string) (string, bool)) error {
	if v, ok := env("TASKDECK_API_URL"); ok {
		cfg.APIURL = v
	}
	if v, ok := env("TASKDECK_REQUEST_TIMEOUT"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid TASKDECK_REQUEST_TIMEOUT: %w", err)
		}
		cfg.RequestTimeout = d
	}
	cfg.DebugMode = getEnvBool(env, "TASKDECK_DEBUG", cfg.DebugMode)
	if v, ok := env("TASKDECK_LOG_FILE"); ok {
		cfg.LogFile = v
	}
	if v, ok := env("TASKDECK_RESTORE_STATUS"); ok {
		cfg.RestoreStatus = models.TaskStatus(v)
	}
	cfg.FocusHideClosed = getEnvBool(env, "TASKDECK_FOCUS_HIDE_CLOSED", cfg.FocusHideClosed)
	cfg.Breaker.Enabled = getEnvBool(env, "TASKDECK_BREAKER_ENABLED", cfg.Breaker.Enabled)
	cfg.Breaker.MaxFailures = getEnvInt(env, "TASKDECK_BREAKER_MAX_FAILURES", cfg.Breaker.MaxFailures)
	cfg.OTELEnabled = getEnvBool(env, "OTEL_ENABLED", cfg.OTELEnabled)
	if v, ok := env("OTEL_EXPORTER_OTLP_ENDPOINT"); ok {
		cfg.OTELEndpoint = v
	}
	return nil
}

// Validate checks values that would otherwise fail later at request time
func (c *Config) Validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("api_url must be an absolute http(s) URL, got %q", c.APIURL)
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("request_timeout must not be negative")
	}
	switch c.RestoreStatus {
	case models.TaskStatusCompleted, models.TaskStatusPending:
	default:
		return fmt.Errorf("restore_status must be 'completed' or 'pending', got %q", c.RestoreStatus)
	}
	if c.Breaker.Enabled && c.Breaker.MaxFailures < 1 {
		return fmt.Errorf("breaker.max_failures must be at least 1")
	}
	return nil
}

func getEnvBool(env func(string) (string, bool), key string, defaultValue bool) bool {
	if value, ok := env(key); ok {
		return value == "true" || value == "1" || value == "yes"
	}
	return defaultValue
}

func getEnvInt(env func(string) (string, bool), key string, defaultValue int) int {
	if value, ok := env(key); ok {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
