package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	// Both SQLite drivers are supported; SQLiteConfig.Driver picks one.
	_ "github.com/mattn/go-sqlite3" // driver name "sqlite3", cgo
	_ "modernc.org/sqlite"          // driver name "sqlite", pure Go
)

// SQLiteConfig contains configuration for the SQLite storage backend.
type SQLiteConfig struct {
	// Path is the database file path.
	Path string

	// Driver is the registered database/sql driver name, "sqlite3"
	// (cgo) or "sqlite" (pure Go). Default: "sqlite3".
	Driver string

	// MaxOpenConns is the maximum number of open connections.
	// Default: 10
	MaxOpenConns int

	// MaxIdleConns is the maximum number of idle connections.
	// Default: 5
	MaxIdleConns int

	// WALMode enables write-ahead logging for better concurrency.
	// Default: true
	WALMode bool

	// BusyTimeout is the duration to wait when the database is locked.
	// Default: 5 seconds
	BusyTimeout time.Duration
}

// DefaultSQLiteConfig returns the default SQLite configuration.
func DefaultSQLiteConfig() *SQLiteConfig {
	return &SQLiteConfig{
		Path:         "data/history.db",
		Driver:       "sqlite3",
		MaxOpenConns: 10,
		MaxIdleConns: 5,
		WALMode:      true,
		BusyTimeout:  5 * time.Second,
	}
}

// SQLiteStorage implements Storage using SQLite.
type SQLiteStorage struct {
	db     *sql.DB
	config *SQLiteConfig
	logger *slog.Logger
}

// NewSQLiteStorage creates a SQLite storage backend. It initializes the
// schema and enables WAL mode if configured.
func NewSQLiteStorage(config *SQLiteConfig, logger *slog.Logger) (*SQLiteStorage, error) {
	if config == nil {
		config = DefaultSQLiteConfig()
	}
	if config.Driver == "" {
		config.Driver = "sqlite3"
	}
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "history.storage.sqlite")

	db, err := sql.Open(config.Driver, config.Path)
	if err != nil {
		return nil, NewStorageError("sqlite", "open", err)
	}

	db.SetMaxOpenConns(config.MaxOpenConns)
	db.SetMaxIdleConns(config.MaxIdleConns)

	s := &SQLiteStorage{
		db:     db,
		config: config,
		logger: logger,
	}

	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("SQLite history storage initialized",
		"path", config.Path,
		"driver", config.Driver,
		"wal_mode", config.WALMode,
	)
	return s, nil
}

func (s *SQLiteStorage) initialize() error {
	if s.config.WALMode {
		if _, err := s.db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
			return NewStorageError("sqlite", "enable_wal", err)
		}
	}

	busyTimeoutMs := s.config.BusyTimeout.Milliseconds()
	if _, err := s.db.Exec(fmt.Sprintf("PRAGMA busy_timeout=%d;", busyTimeoutMs)); err != nil {
		return NewStorageError("sqlite", "set_busy_timeout", err)
	}

	if _, err := s.db.Exec(Schema); err != nil {
		return NewStorageError("sqlite", "create_schema", err)
	}

	if _, err := s.db.Exec(InsertSchemaVersion, SchemaVersion); err != nil {
		return NewStorageError("sqlite", "insert_schema_version", err)
	}

	var version int
	err := s.db.QueryRow(GetSchemaVersion).Scan(&version)
	if err != nil && err != sql.ErrNoRows {
		return NewStorageError("sqlite", "get_schema_version", err)
	}
	if version != SchemaVersion {
		return NewStorageError("sqlite", "schema_version_mismatch",
			fmt.Errorf("expected schema version %d, got %d", SchemaVersion, version))
	}
	return nil
}

// Store persists a record.
func (s *SQLiteStorage) Store(ctx context.Context, record *Record) error {
	counts, err := json.Marshal(record.Counts)
	if err != nil {
		return NewStorageError("sqlite", "marshal_counts", err)
	}
	rules, err := json.Marshal(record.Rules)
	if err != nil {
		return NewStorageError("sqlite", "marshal_rules", err)
	}

	recordedAt := record.RecordedAt
	if recordedAt.IsZero() {
		recordedAt = time.Now().UTC()
	}

	const query = `
		INSERT INTO batches (
			id, benchmark_id, profile_id,
			started_at, finished_at, recorded_at,
			score, score_system,
			rule_count, counts, rules
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = s.db.ExecContext(ctx, query,
		record.ID, record.BenchmarkID, record.ProfileID,
		record.Start, record.End, recordedAt,
		record.Score, record.ScoreSystem,
		record.RuleCount, string(counts), string(rules),
	)
	if err != nil {
		return NewStorageError("sqlite", "insert", err)
	}
	return nil
}

// Get retrieves a record by batch id.
func (s *SQLiteStorage) Get(ctx context.Context, id string) (*Record, error) {
	const query = `
		SELECT id, benchmark_id, profile_id,
		       started_at, finished_at, recorded_at,
		       score, score_system,
		       rule_count, counts, rules
		FROM batches WHERE id = ?
	`
	rec, err := scanRecord(s.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, NewStorageError("sqlite", "get", err)
	}
	return rec, nil
}

// List retrieves records matching the query, newest first.
func (s *SQLiteStorage) List(ctx context.Context, query Query) ([]*Record, error) {
	var sb strings.Builder
	sb.WriteString(`
		SELECT id, benchmark_id, profile_id,
		       started_at, finished_at, recorded_at,
		       score, score_system,
		       rule_count, counts, rules
		FROM batches
	`)

	var conds []string
	var args []any
	if query.ProfileID != "" {
		conds = append(conds, "profile_id = ?")
		args = append(args, query.ProfileID)
	}
	if query.BenchmarkID != "" {
		conds = append(conds, "benchmark_id = ?")
		args = append(args, query.BenchmarkID)
	}
	if !query.Since.IsZero() {
		conds = append(conds, "started_at >= ?")
		args = append(args, query.Since)
	}
	if !query.Until.IsZero() {
		conds = append(conds, "started_at <= ?")
		args = append(args, query.Until)
	}
	if len(conds) > 0 {
		sb.WriteString(" WHERE " + strings.Join(conds, " AND "))
	}
	sb.WriteString(" ORDER BY started_at DESC")
	if query.Limit > 0 {
		sb.WriteString(" LIMIT ?")
		args = append(args, query.Limit)
		if query.Offset > 0 {
			sb.WriteString(" OFFSET ?")
			args = append(args, query.Offset)
		}
	}

	rows, err := s.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, NewStorageError("sqlite", "list", err)
	}
	defer rows.Close()

	var results []*Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, NewStorageError("sqlite", "scan", err)
		}
		results = append(results, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, NewStorageError("sqlite", "list", err)
	}
	return results, nil
}

// Close closes the database.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*Record, error) {
	var rec Record
	var counts, rules string
	err := row.Scan(
		&rec.ID, &rec.BenchmarkID, &rec.ProfileID,
		&rec.Start, &rec.End, &rec.RecordedAt,
		&rec.Score, &rec.ScoreSystem,
		&rec.RuleCount, &counts, &rules,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(counts), &rec.Counts); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(rules), &rec.Rules); err != nil {
		return nil, err
	}
	return &rec, nil
}
