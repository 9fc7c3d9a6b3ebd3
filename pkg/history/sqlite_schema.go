package history

// SchemaVersion is the current database schema version.
const SchemaVersion = 1

// Schema contains the SQL statements to create the history schema.
const Schema = `
-- Evaluation batches
CREATE TABLE IF NOT EXISTS batches (
    id TEXT PRIMARY KEY,
    benchmark_id TEXT NOT NULL,
    profile_id TEXT NOT NULL,

    started_at TIMESTAMP NOT NULL,
    finished_at TIMESTAMP NOT NULL,
    recorded_at TIMESTAMP NOT NULL,

    score REAL,
    score_system TEXT,

    rule_count INTEGER NOT NULL,
    counts TEXT NOT NULL,
    rules TEXT NOT NULL
);

-- Schema version table
CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY,
    applied_at TIMESTAMP NOT NULL
);

-- Indexes for common queries
CREATE INDEX IF NOT EXISTS idx_batches_profile_id ON batches(profile_id);
CREATE INDEX IF NOT EXISTS idx_batches_benchmark_id ON batches(benchmark_id);
CREATE INDEX IF NOT EXISTS idx_batches_started_at ON batches(started_at);
`

// InsertSchemaVersion inserts the schema version row.
const InsertSchemaVersion = `
INSERT INTO schema_version (version, applied_at)
VALUES (?, datetime('now'))
ON CONFLICT(version) DO NOTHING;
`

// GetSchemaVersion retrieves the current schema version.
const GetSchemaVersion = `
SELECT version FROM schema_version ORDER BY version DESC LIMIT 1;
`
