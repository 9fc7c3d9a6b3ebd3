package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from a YAML file, applies defaults and
// validates the result. Environment variables are not consulted; use
// LoadConfigWithEnvOverrides for that.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// LoadConfigWithEnvOverrides loads configuration from a YAML file and
// applies environment variable overrides. Variables follow the naming
// convention VERITOR_SECTION_FIELD (e.g. VERITOR_HISTORY_BACKEND) and
// always take precedence over file-based configuration.
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	// Telemetry overrides
	if val := os.Getenv("VERITOR_TELEMETRY_LOGGING_LEVEL"); val != "" {
		cfg.Telemetry.Logging.Level = val
	}
	if val := os.Getenv("VERITOR_TELEMETRY_LOGGING_FORMAT"); val != "" {
		cfg.Telemetry.Logging.Format = val
	}
	if val := os.Getenv("VERITOR_TELEMETRY_METRICS_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Telemetry.Metrics.Enabled = b
		}
	}
	if val := os.Getenv("VERITOR_TELEMETRY_METRICS_NAMESPACE"); val != "" {
		cfg.Telemetry.Metrics.Namespace = val
	}

	// History overrides
	if val := os.Getenv("VERITOR_HISTORY_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.History.Enabled = b
		}
	}
	if val := os.Getenv("VERITOR_HISTORY_BACKEND"); val != "" {
		cfg.History.Backend = val
	}
	if val := os.Getenv("VERITOR_HISTORY_SQLITE_PATH"); val != "" {
		cfg.History.SQLite.Path = val
	}
	if val := os.Getenv("VERITOR_HISTORY_SQLITE_DRIVER"); val != "" {
		cfg.History.SQLite.Driver = val
	}
	if val := os.Getenv("VERITOR_HISTORY_SQLITE_MAX_OPEN_CONNS"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.History.SQLite.MaxOpenConns = i
		}
	}
	if val := os.Getenv("VERITOR_HISTORY_SQLITE_BUSY_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.History.SQLite.BusyTimeout = d
		}
	}
	if val := os.Getenv("VERITOR_HISTORY_RECORDER_BUFFER"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.History.Recorder.Buffer = i
		}
	}

	// Scheduler overrides
	if val := os.Getenv("VERITOR_SCHEDULER_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Scheduler.Enabled = b
		}
	}
	if val := os.Getenv("VERITOR_SCHEDULER_SCHEDULE"); val != "" {
		cfg.Scheduler.Schedule = val
	}
	if val := os.Getenv("VERITOR_SCHEDULER_PROFILES"); val != "" {
		cfg.Scheduler.Profiles = splitList(val)
	}

	// Tailoring overrides
	if val := os.Getenv("VERITOR_TAILORING_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Tailoring.Enabled = b
		}
	}
	if val := os.Getenv("VERITOR_TAILORING_PATH"); val != "" {
		cfg.Tailoring.Path = val
	}
	if val := os.Getenv("VERITOR_TAILORING_WATCH"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Tailoring.Watch = b
		}
	}

	// Score overrides
	if val := os.Getenv("VERITOR_SCORE_SYSTEM"); val != "" {
		cfg.Score.System = val
	}
}

func splitList(val string) []string {
	parts := strings.Split(val, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
