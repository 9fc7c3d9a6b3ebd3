// Package history persists completed evaluation batches. Storage is an
// interface with in-memory and SQLite backends; Recorder provides an
// asynchronous write path so evaluation never blocks on the database.
package history
