// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/jonathan/resume-builder/internal/llm"
)

// Config represents the builder configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults, then environment, then CLI flags.
type Config struct {
	// AI backend
	BackendURL            string `json:"backend_url,omitempty"`             // Base URL of the AI proxy
	Provider              string `json:"provider,omitempty"`                // Selected provider id
	APIKey                string `json:"api_key,omitempty"`                 // Caller key sent with each request
	RequestTimeoutSeconds int    `json:"request_timeout_seconds,omitempty"` // Per-request timeout against the backend

	// Snapshot
	SnapshotDir string `json:"snapshot_dir,omitempty"` // Directory of the file snapshot
	SnapshotKey string `json:"snapshot_key,omitempty"` // Snapshot slot name
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL; selects the database snapshot

	// Server
	Port           int      `json:"port,omitempty"`            // HTTP listen port
	AllowedOrigins []string `json:"allowed_origins,omitempty"` // CORS origins; empty allows any

	Verbose bool `json:"verbose,omitempty"` // Print detailed debug information
}

// Defaults returns the built-in configuration
func Defaults() Config {
	return Config{
		BackendURL:            "http://127.0.0.1:8000",
		Provider:              llm.ProviderMistral,
		RequestTimeoutSeconds: 60,
		SnapshotDir:           defaultSnapshotDir(),
		SnapshotKey:           "resumeData",
		Port:                  8000,
	}
}

func defaultSnapshotDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "resume-builder")
	}
	return ".resume-builder"
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Empty fields are accepted; they are filled by MergeWithDefaults.
func (c *Config) Validate() error {
	if c.Provider != "" {
		if _, ok := llm.Lookup(c.Provider); !ok {
			return fmt.Errorf("config error: unknown provider %q", c.Provider)
		}
	}
	if c.RequestTimeoutSeconds < 0 {
		return fmt.Errorf("config error: 'request_timeout_seconds' must be non-negative")
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535, got %d", c.Port)
	}
	if c.BackendURL != "" && !strings.HasPrefix(c.BackendURL, "http://") && !strings.HasPrefix(c.BackendURL, "https://") {
		return fmt.Errorf("config error: 'backend_url' must be an http(s) URL: %s", c.BackendURL)
	}
	if strings.ContainsAny(c.SnapshotKey, `/\`) {
		return fmt.Errorf("config error: 'snapshot_key' must not contain path separators")
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.BackendURL == "" {
		result.BackendURL = defaults.BackendURL
	}
	if result.Provider == "" {
		result.Provider = defaults.Provider
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.SnapshotDir == "" {
		result.SnapshotDir = defaults.SnapshotDir
	}
	if result.SnapshotKey == "" {
		result.SnapshotKey = defaults.SnapshotKey
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if len(result.AllowedOrigins) == 0 {
		result.AllowedOrigins = defaults.AllowedOrigins
	}

	// Int fields: use default if zero
	if result.RequestTimeoutSeconds == 0 {
		result.RequestTimeoutSeconds = defaults.RequestTimeoutSeconds
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// ApplyEnv overrides fields from environment variables that are set.
// getenv is os.Getenv outside tests.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	setString := func(key string, dst *string) {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			*dst = v
		}
	}
	setString("BACKEND_URL", &c.BackendURL)
	setString("AI_PROVIDER", &c.Provider)
	setString("AI_API_KEY", &c.APIKey)
	setString("SNAPSHOT_DIR", &c.SnapshotDir)
	setString("SNAPSHOT_KEY", &c.SnapshotKey)
	setString("DATABASE_URL", &c.DatabaseURL)

	if v := strings.TrimSpace(getenv("REQUEST_TIMEOUT")); v != "" {
		seconds, err := parseSeconds(v)
		if err != nil {
			return fmt.Errorf("invalid REQUEST_TIMEOUT: %w", err)
		}
		c.RequestTimeoutSeconds = seconds
	}
	if v := strings.TrimSpace(getenv("PORT")); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT: %v", err)
		}
		c.Port = port
	}
	if v := strings.TrimSpace(getenv("ALLOWED_ORIGINS")); v != "" {
		c.AllowedOrigins = nil
		for _, origin := range strings.Split(v, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				c.AllowedOrigins = append(c.AllowedOrigins, origin)
			}
		}
	}
	return nil
}

// parseSeconds accepts a plain number of seconds ("45") or a duration ("1m30s")
func parseSeconds(v string) (int, error) {
	if n, err := strconv.Atoi(v); err == nil {
		return n, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, err
	}
	return int(d / time.Second), nil
}

// RequestTimeout returns the backend request timeout
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

// Load builds the effective configuration: the optional file at path, merged
// over Defaults, then overridden by the environment, then validated.
func Load(path string, getenv func(string) string) (Config, error) {
	file := &Config{}
	if path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return Config{}, err
		}
		file = loaded
	}
	if err := file.Validate(); err != nil {
		return Config{}, err
	}

	cfg := file.MergeWithDefaults(Defaults())
	if err := cfg.ApplyEnv(getenv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
