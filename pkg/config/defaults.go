package config

import "time"

// Default values for configuration fields.
const (
	// Telemetry defaults
	DefaultLoggingLevel     = "info"
	DefaultLoggingFormat    = "json"
	DefaultMetricsEnabled   = true
	DefaultMetricsNamespace = "veritor"
	DefaultMetricsSubsystem = "policy"

	// History defaults
	DefaultHistoryEnabled       = true
	DefaultHistoryBackend       = "sqlite"
	DefaultSQLitePath           = "data/history.db"
	DefaultSQLiteDriver         = "sqlite3"
	DefaultSQLiteMaxOpenConns   = 10
	DefaultSQLiteMaxIdleConns   = 5
	DefaultSQLiteWALMode        = true
	DefaultSQLiteBusyTimeout    = 5 * time.Second
	DefaultRecorderBuffer       = 1000
	DefaultRecorderWriteTimeout = 5 * time.Second

	// Scheduler defaults
	DefaultSchedulerEnabled  = false
	DefaultSchedulerSchedule = "0 3 * * *"

	// Tailoring defaults
	DefaultTailoringEnabled  = false
	DefaultTailoringWatch    = false
	DefaultTailoringDebounce = 500 * time.Millisecond

	// Score defaults
	DefaultScoreSystem = "default"
)

// ApplyDefaults fills unset fields with their default values. Booleans
// that default to true are only forced when the whole section is zero,
// so an explicit false in the file survives.
func ApplyDefaults(cfg *Config) {
	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLoggingLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLoggingFormat
	}
	if cfg.Telemetry.Metrics.Namespace == "" {
		cfg.Telemetry.Metrics.Namespace = DefaultMetricsNamespace
	}
	if cfg.Telemetry.Metrics.Subsystem == "" {
		cfg.Telemetry.Metrics.Subsystem = DefaultMetricsSubsystem
	}

	if cfg.History.Backend == "" {
		cfg.History.Backend = DefaultHistoryBackend
	}
	if cfg.History.SQLite.Path == "" {
		cfg.History.SQLite.Path = DefaultSQLitePath
	}
	if cfg.History.SQLite.Driver == "" {
		cfg.History.SQLite.Driver = DefaultSQLiteDriver
	}
	if cfg.History.SQLite.MaxOpenConns == 0 {
		cfg.History.SQLite.MaxOpenConns = DefaultSQLiteMaxOpenConns
	}
	if cfg.History.SQLite.MaxIdleConns == 0 {
		cfg.History.SQLite.MaxIdleConns = DefaultSQLiteMaxIdleConns
	}
	if cfg.History.SQLite.BusyTimeout == 0 {
		cfg.History.SQLite.BusyTimeout = DefaultSQLiteBusyTimeout
	}
	if cfg.History.Recorder.Buffer == 0 {
		cfg.History.Recorder.Buffer = DefaultRecorderBuffer
	}
	if cfg.History.Recorder.WriteTimeout == 0 {
		cfg.History.Recorder.WriteTimeout = DefaultRecorderWriteTimeout
	}

	if cfg.Scheduler.Schedule == "" {
		cfg.Scheduler.Schedule = DefaultSchedulerSchedule
	}

	if cfg.Tailoring.Debounce == 0 {
		cfg.Tailoring.Debounce = DefaultTailoringDebounce
	}

	if cfg.Score.System == "" {
		cfg.Score.System = DefaultScoreSystem
	}
}
