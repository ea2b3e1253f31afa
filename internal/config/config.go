// Package config provides configuration loading and validation for the CLI
// and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mentorque/skillmatch/internal/engine"
)

// Config represents configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided
// via CLI flags or environment variables.
type Config struct {
	// Engine
	EngineURL        string `json:"engine_url,omitempty"`         // Base URL of the extraction engine
	EngineCommand    string `json:"engine_command,omitempty"`     // Command to start a local engine process
	EngineDir        string `json:"engine_dir,omitempty"`         // Working directory for the engine process
	StartupTimeoutMS int    `json:"startup_timeout_ms,omitempty"` // Max wait for a cold engine start
	RequestTimeoutMS int    `json:"request_timeout_ms,omitempty"` // Per-request timeout against the engine
	ProbeTimeoutMS   int    `json:"probe_timeout_ms,omitempty"`   // Health probe timeout
	PollIntervalMS   int    `json:"poll_interval_ms,omitempty"`   // Health poll interval during startup
	HealthTTLMS      int    `json:"health_ttl_ms,omitempty"`      // How long a positive health result is cached

	// Inputs
	Job        string `json:"job,omitempty"`         // Path to job posting text file
	JobURL     string `json:"job_url,omitempty"`     // URL to fetch job posting from
	VocabPath  string `json:"vocab_path,omitempty"`  // Path to skill display vocabulary CSV
	UseBrowser bool   `json:"use_browser,omitempty"` // Use headless browser for SPA job boards

	// Server
	Port        int    `json:"port,omitempty"`         // HTTP listen port
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL for history
	JWTSecret   string `json:"jwt_secret,omitempty"`   // Enables API auth when set

	// Behavior
	DisableShuffle bool `json:"disable_shuffle,omitempty"` // Deterministic output ordering
	Verbose        bool `json:"verbose,omitempty"`         // Print detailed debug information
	JSONLogs       bool `json:"json_logs,omitempty"`       // Emit JSON-encoded logs
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

// FromEnv fills unset fields from environment variables. Explicit config file
// or flag values win over the environment.
func (c *Config) FromEnv() {
	if c.EngineURL == "" {
		c.EngineURL = os.Getenv("ENGINE_URL")
	}
	if c.EngineCommand == "" {
		c.EngineCommand = os.Getenv("ENGINE_COMMAND")
	}
	if c.DatabaseURL == "" {
		c.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if c.JWTSecret == "" {
		c.JWTSecret = os.Getenv("JWT_SECRET")
	}
	if c.VocabPath == "" {
		c.VocabPath = os.Getenv("VOCAB_PATH")
	}
}

// Validate checks that the configuration has valid values.
// Required fields are checked later, after merging with CLI flags.
func (c *Config) Validate() error {
	if c.Job != "" && c.JobURL != "" {
		return fmt.Errorf("config error: 'job' and 'job_url' are mutually exclusive")
	}

	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.StartupTimeoutMS < 0 {
		return fmt.Errorf("config error: 'startup_timeout_ms' must be non-negative")
	}
	if c.RequestTimeoutMS < 0 {
		return fmt.Errorf("config error: 'request_timeout_ms' must be non-negative")
	}
	if c.ProbeTimeoutMS < 0 || c.PollIntervalMS < 0 || c.HealthTTLMS < 0 {
		return fmt.Errorf("config error: engine timing values must be non-negative")
	}

	if c.Job != "" {
		if _, err := os.Stat(c.Job); os.IsNotExist(err) {
			return fmt.Errorf("config error: job file not found: %s", c.Job)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from
// defaults. This is used to apply config file values as defaults for CLI
// flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.EngineURL == "" {
		result.EngineURL = defaults.EngineURL
	}
	if result.EngineCommand == "" {
		result.EngineCommand = defaults.EngineCommand
	}
	if result.EngineDir == "" {
		result.EngineDir = defaults.EngineDir
	}
	if result.Job == "" {
		result.Job = defaults.Job
	}
	if result.JobURL == "" {
		result.JobURL = defaults.JobURL
	}
	if result.VocabPath == "" {
		result.VocabPath = defaults.VocabPath
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.JWTSecret == "" {
		result.JWTSecret = defaults.JWTSecret
	}

	if result.StartupTimeoutMS == 0 {
		result.StartupTimeoutMS = defaults.StartupTimeoutMS
	}
	if result.RequestTimeoutMS == 0 {
		result.RequestTimeoutMS = defaults.RequestTimeoutMS
	}
	if result.ProbeTimeoutMS == 0 {
		result.ProbeTimeoutMS = defaults.ProbeTimeoutMS
	}
	if result.PollIntervalMS == 0 {
		result.PollIntervalMS = defaults.PollIntervalMS
	}
	if result.HealthTTLMS == 0 {
		result.HealthTTLMS = defaults.HealthTTLMS
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}

	if !result.UseBrowser {
		result.UseBrowser = defaults.UseBrowser
	}
	if !result.DisableShuffle {
		result.DisableShuffle = defaults.DisableShuffle
	}
	if !result.Verbose {
		result.Verbose = defaults.Verbose
	}
	if !result.JSONLogs {
		result.JSONLogs = defaults.JSONLogs
	}

	return result
}

// Defaults returns the baseline configuration.
func Defaults() Config {
	return Config{
		EngineURL: "http://localhost:8000",
		Port:      8080,
		VocabPath: "data/skills.csv",
	}
}

// RequestTimeout returns the engine request timeout, or zero when unset.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutMS) * time.Millisecond
}

// SupervisorConfig maps this configuration onto the engine supervisor.
// Zero timeouts leave the supervisor defaults in place.
func (c *Config) SupervisorConfig() engine.SupervisorConfig {
	sc := engine.SupervisorConfig{
		BootstrapDir: c.EngineDir,
	}
	if c.EngineCommand != "" {
		sc.BootstrapCommand = strings.Fields(c.EngineCommand)
	}
	if c.StartupTimeoutMS > 0 {
		sc.StartupTimeout = time.Duration(c.StartupTimeoutMS) * time.Millisecond
	}
	if c.ProbeTimeoutMS > 0 {
		sc.ProbeTimeout = time.Duration(c.ProbeTimeoutMS) * time.Millisecond
	}
	if c.PollIntervalMS > 0 {
		sc.PollInterval = time.Duration(c.PollIntervalMS) * time.Millisecond
	}
	if c.HealthTTLMS > 0 {
		sc.HealthTTL = time.Duration(c.HealthTTLMS) * time.Millisecond
	}
	return sc
}
