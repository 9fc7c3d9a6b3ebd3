package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "veritor.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestApplyDefaults(t *testing.T) {
	var cfg Config
	ApplyDefaults(&cfg)

	if cfg.Telemetry.Logging.Level != "info" {
		t.Errorf("logging level = %q, want info", cfg.Telemetry.Logging.Level)
	}
	if cfg.Telemetry.Logging.Format != "json" {
		t.Errorf("logging format = %q, want json", cfg.Telemetry.Logging.Format)
	}
	if cfg.History.Backend != "sqlite" {
		t.Errorf("history backend = %q, want sqlite", cfg.History.Backend)
	}
	if cfg.History.SQLite.Driver != "sqlite3" {
		t.Errorf("sqlite driver = %q, want sqlite3", cfg.History.SQLite.Driver)
	}
	if cfg.History.SQLite.BusyTimeout != 5*time.Second {
		t.Errorf("busy timeout = %v, want 5s", cfg.History.SQLite.BusyTimeout)
	}
	if cfg.History.Recorder.Buffer != 1000 {
		t.Errorf("recorder buffer = %d, want 1000", cfg.History.Recorder.Buffer)
	}
	if cfg.Score.System != "default" {
		t.Errorf("score system = %q, want default", cfg.Score.System)
	}
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := Config{}
	cfg.History.Backend = "memory"
	cfg.Telemetry.Logging.Level = "debug"
	ApplyDefaults(&cfg)

	if cfg.History.Backend != "memory" {
		t.Errorf("explicit backend overwritten: %q", cfg.History.Backend)
	}
	if cfg.Telemetry.Logging.Level != "debug" {
		t.Errorf("explicit level overwritten: %q", cfg.Telemetry.Logging.Level)
	}
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
telemetry:
  logging:
    level: warn
    format: text
history:
  backend: sqlite
  sqlite:
    path: /tmp/veritor-test.db
    driver: sqlite
scheduler:
  enabled: true
  schedule: "*/15 * * * *"
  profiles: [strict, baseline]
score:
  system: flat
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}

	if cfg.Telemetry.Logging.Level != "warn" {
		t.Errorf("level = %q, want warn", cfg.Telemetry.Logging.Level)
	}
	if cfg.History.SQLite.Driver != "sqlite" {
		t.Errorf("driver = %q, want sqlite", cfg.History.SQLite.Driver)
	}
	if cfg.Scheduler.Schedule != "*/15 * * * *" {
		t.Errorf("schedule = %q", cfg.Scheduler.Schedule)
	}
	if len(cfg.Scheduler.Profiles) != 2 {
		t.Errorf("profiles = %v, want 2 entries", cfg.Scheduler.Profiles)
	}
	// Defaults still fill the gaps.
	if cfg.History.SQLite.MaxOpenConns != DefaultSQLiteMaxOpenConns {
		t.Errorf("max open conns = %d, want default", cfg.History.SQLite.MaxOpenConns)
	}
}

func TestLoadConfig_Missing(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("missing file should error")
	}
}

func TestLoadConfig_Malformed(t *testing.T) {
	path := writeConfig(t, "telemetry: [not a mapping")
	if _, err := LoadConfig(path); err == nil {
		t.Error("malformed YAML should error")
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		var cfg Config
		ApplyDefaults(&cfg)
		return &cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults are valid", func(c *Config) {}, false},
		{"bad log level", func(c *Config) { c.Telemetry.Logging.Level = "loud" }, true},
		{"bad log format", func(c *Config) { c.Telemetry.Logging.Format = "csv" }, true},
		{"bad backend", func(c *Config) { c.History.Backend = "postgres" }, true},
		{"bad driver", func(c *Config) { c.History.SQLite.Driver = "mysql" }, true},
		{"memory backend skips sqlite checks", func(c *Config) {
			c.History.Backend = "memory"
			c.History.SQLite.Driver = "anything"
		}, false},
		{"zero recorder buffer", func(c *Config) { c.History.Recorder.Buffer = 0 }, true},
		{"tailoring enabled without path", func(c *Config) { c.Tailoring.Enabled = true }, true},
		{"bad score system", func(c *Config) { c.Score.System = "urn:nope" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := Validate(cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadConfigWithEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
history:
  backend: sqlite
`)
	t.Setenv("VERITOR_HISTORY_BACKEND", "memory")
	t.Setenv("VERITOR_TELEMETRY_LOGGING_LEVEL", "debug")
	t.Setenv("VERITOR_SCHEDULER_PROFILES", "strict, baseline ,")

	cfg, err := LoadConfigWithEnvOverrides(path)
	if err != nil {
		t.Fatalf("LoadConfigWithEnvOverrides() error: %v", err)
	}
	if cfg.History.Backend != "memory" {
		t.Errorf("backend = %q, env override lost", cfg.History.Backend)
	}
	if cfg.Telemetry.Logging.Level != "debug" {
		t.Errorf("level = %q, env override lost", cfg.Telemetry.Logging.Level)
	}
	want := []string{"strict", "baseline"}
	if len(cfg.Scheduler.Profiles) != len(want) {
		t.Fatalf("profiles = %v, want %v", cfg.Scheduler.Profiles, want)
	}
	for i := range want {
		if cfg.Scheduler.Profiles[i] != want[i] {
			t.Errorf("profiles[%d] = %q, want %q", i, cfg.Scheduler.Profiles[i], want[i])
		}
	}
}

func TestLoadConfigWithEnvOverrides_InvalidOverride(t *testing.T) {
	path := writeConfig(t, "")
	t.Setenv("VERITOR_HISTORY_BACKEND", "postgres")

	if _, err := LoadConfigWithEnvOverrides(path); err == nil {
		t.Error("invalid env override must fail re-validation")
	}
}
