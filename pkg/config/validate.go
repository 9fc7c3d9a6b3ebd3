package config

import (
	"fmt"
)

var validBackends = map[string]bool{
	"memory": true,
	"sqlite": true,
}

var validDrivers = map[string]bool{
	"sqlite3": true, // github.com/mattn/go-sqlite3
	"sqlite":  true, // modernc.org/sqlite
}

var validScoreSystems = map[string]bool{
	"default":         true,
	"flat":            true,
	"flat-unweighted": true,
	"absolute":        true,
}

// Validate checks the configuration for internal consistency. It is
// called by LoadConfig after defaults are applied.
func Validate(cfg *Config) error {
	switch cfg.Telemetry.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("telemetry.logging.level: unknown level %q", cfg.Telemetry.Logging.Level)
	}
	switch cfg.Telemetry.Logging.Format {
	case "json", "text":
	default:
		return fmt.Errorf("telemetry.logging.format: unknown format %q", cfg.Telemetry.Logging.Format)
	}

	if !validBackends[cfg.History.Backend] {
		return fmt.Errorf("history.backend: unknown backend %q", cfg.History.Backend)
	}
	if cfg.History.Backend == "sqlite" {
		if cfg.History.SQLite.Path == "" {
			return fmt.Errorf("history.sqlite.path: required for the sqlite backend")
		}
		if !validDrivers[cfg.History.SQLite.Driver] {
			return fmt.Errorf("history.sqlite.driver: unknown driver %q", cfg.History.SQLite.Driver)
		}
		if cfg.History.SQLite.MaxOpenConns < 1 {
			return fmt.Errorf("history.sqlite.max_open_conns: must be at least 1")
		}
		if cfg.History.SQLite.MaxIdleConns < 0 {
			return fmt.Errorf("history.sqlite.max_idle_conns: must not be negative")
		}
	}
	if cfg.History.Recorder.Buffer < 1 {
		return fmt.Errorf("history.recorder.buffer: must be at least 1")
	}
	if cfg.History.Recorder.WriteTimeout <= 0 {
		return fmt.Errorf("history.recorder.write_timeout: must be positive")
	}

	if cfg.Scheduler.Enabled && cfg.Scheduler.Schedule == "" {
		return fmt.Errorf("scheduler.schedule: required when the scheduler is enabled")
	}

	if cfg.Tailoring.Enabled && cfg.Tailoring.Path == "" {
		return fmt.Errorf("tailoring.path: required when tailoring is enabled")
	}
	if cfg.Tailoring.Debounce < 0 {
		return fmt.Errorf("tailoring.debounce: must not be negative")
	}

	if !validScoreSystems[cfg.Score.System] {
		return fmt.Errorf("score.system: unknown scoring system %q", cfg.Score.System)
	}

	return nil
}
