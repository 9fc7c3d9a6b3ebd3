package config

import "time"

// Config is the root configuration for an embedding application. All
// sections are optional in the YAML file; ApplyDefaults fills the gaps.
type Config struct {
	// Telemetry configures logging and metrics.
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// History configures result batch persistence.
	History HistoryConfig `yaml:"history"`

	// Scheduler configures recurring re-evaluation.
	Scheduler SchedulerConfig `yaml:"scheduler"`

	// Tailoring configures profile overlay files.
	Tailoring TailoringConfig `yaml:"tailoring"`

	// Score selects the scoring system applied to completed batches.
	Score ScoreConfig `yaml:"score"`
}

// TelemetryConfig groups observability settings.
type TelemetryConfig struct {
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig configures the structured logger.
type LoggingConfig struct {
	// Level is the minimum log level ("debug", "info", "warn", "error").
	Level string `yaml:"level"`

	// Format is the output format ("json", "text").
	Format string `yaml:"format"`

	// AddSource includes file and line number in log entries.
	AddSource bool `yaml:"add_source"`
}

// MetricsConfig configures Prometheus instrumentation.
type MetricsConfig struct {
	// Enabled turns metric collection on.
	Enabled bool `yaml:"enabled"`

	// Namespace is the metric namespace prefix.
	Namespace string `yaml:"namespace"`

	// Subsystem is the metric subsystem.
	Subsystem string `yaml:"subsystem"`
}

// HistoryConfig configures result batch persistence.
type HistoryConfig struct {
	// Enabled turns persistence on. When off, batches live only in the
	// policy's in-memory history.
	Enabled bool `yaml:"enabled"`

	// Backend selects the storage implementation ("memory", "sqlite").
	Backend string `yaml:"backend"`

	// SQLite configures the sqlite backend.
	SQLite SQLiteConfig `yaml:"sqlite"`

	// Recorder configures the async write path.
	Recorder RecorderConfig `yaml:"recorder"`
}

// SQLiteConfig configures SQLite-backed history storage.
type SQLiteConfig struct {
	// Path is the database file path.
	Path string `yaml:"path"`

	// Driver selects the registered database/sql driver name
	// ("sqlite3" for the cgo driver, "sqlite" for the pure-Go driver).
	Driver string `yaml:"driver"`

	// MaxOpenConns bounds the connection pool.
	MaxOpenConns int `yaml:"max_open_conns"`

	// MaxIdleConns bounds idle pooled connections.
	MaxIdleConns int `yaml:"max_idle_conns"`

	// WALMode enables write-ahead logging.
	WALMode bool `yaml:"wal_mode"`

	// BusyTimeout is the SQLite busy handler timeout.
	BusyTimeout time.Duration `yaml:"busy_timeout"`
}

// RecorderConfig configures the asynchronous history recorder.
type RecorderConfig struct {
	// Buffer is the pending-write channel capacity.
	Buffer int `yaml:"buffer"`

	// WriteTimeout bounds a single storage write.
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// SchedulerConfig configures recurring policy re-evaluation.
type SchedulerConfig struct {
	// Enabled turns the scheduler on.
	Enabled bool `yaml:"enabled"`

	// Schedule is a cron expression (five-field, standard syntax).
	Schedule string `yaml:"schedule"`

	// Profiles lists the profile ids to re-evaluate on each tick. An
	// empty list means every instantiated policy.
	Profiles []string `yaml:"profiles"`
}

// TailoringConfig configures profile overlay files.
type TailoringConfig struct {
	// Enabled turns tailoring on.
	Enabled bool `yaml:"enabled"`

	// Path is the overlay YAML file.
	Path string `yaml:"path"`

	// Watch reloads the overlay when the file changes.
	Watch bool `yaml:"watch"`

	// Debounce coalesces filesystem events before a reload.
	Debounce time.Duration `yaml:"debounce"`
}

// ScoreConfig selects the scoring system.
type ScoreConfig struct {
	// System names the scoring formula ("default", "flat",
	// "flat-unweighted", "absolute").
	System string `yaml:"system"`
}
