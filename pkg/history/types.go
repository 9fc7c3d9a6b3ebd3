package history

import (
	"context"
	"time"

	"veritor-hq/veritor/pkg/policy"
)

// Record is the persisted form of one completed evaluation pass. It
// carries the batch summary plus the per-rule outcomes; check-level
// detail stays in memory on the live batch.
type Record struct {
	// ID is the batch id (a UUID assigned at evaluation time).
	ID string

	// BenchmarkID identifies the evaluated benchmark.
	BenchmarkID string

	// ProfileID identifies the profile, empty for the defaults-only
	// policy.
	ProfileID string

	// Start and End bound the evaluation pass.
	Start time.Time
	End   time.Time

	// RecordedAt is when the record reached storage.
	RecordedAt time.Time

	// Score is the computed compliance score, if one was attached.
	Score float64

	// ScoreSystem names the scoring formula used for Score.
	ScoreSystem string

	// RuleCount is the number of evaluated rules.
	RuleCount int

	// Counts maps outcome names to occurrence counts.
	Counts map[string]int

	// Rules holds the per-rule outcomes in evaluation order.
	Rules []RuleRecord
}

// RuleRecord is one rule's outcome within a record.
type RuleRecord struct {
	RuleID   string        `json:"rule_id"`
	Outcome  string        `json:"outcome"`
	Duration time.Duration `json:"duration"`
	Message  string        `json:"message,omitempty"`
}

// FromBatch converts a result batch into a storable record. Score and
// ScoreSystem are left zero; callers attach them when a score was
// computed.
func FromBatch(batch *policy.ResultBatch) *Record {
	rec := &Record{
		ID:          batch.ID,
		BenchmarkID: batch.BenchmarkID,
		ProfileID:   batch.ProfileID,
		Start:       batch.Start,
		End:         batch.End,
		RuleCount:   len(batch.Rules),
		Counts:      make(map[string]int, 8),
		Rules:       make([]RuleRecord, 0, len(batch.Rules)),
	}
	for i := range batch.Rules {
		r := &batch.Rules[i]
		rec.Counts[r.Outcome.String()]++
		rec.Rules = append(rec.Rules, RuleRecord{
			RuleID:   r.RuleID,
			Outcome:  r.Outcome.String(),
			Duration: r.Duration,
			Message:  r.Message,
		})
	}
	return rec
}

// Query filters a List call. Zero fields match everything.
type Query struct {
	// ProfileID restricts to one profile when non-empty.
	ProfileID string

	// BenchmarkID restricts to one benchmark when non-empty.
	BenchmarkID string

	// Since and Until bound the batch start time.
	Since time.Time
	Until time.Time

	// Limit caps the result count; zero means no cap.
	Limit int

	// Offset skips that many matching records.
	Offset int
}

// Storage persists evaluation records.
type Storage interface {
	// Store persists one record.
	Store(ctx context.Context, record *Record) error

	// Get retrieves a record by batch id. A missing id yields
	// ErrNotFound.
	Get(ctx context.Context, id string) (*Record, error)

	// List retrieves records matching the query, newest first.
	List(ctx context.Context, query Query) ([]*Record, error)

	// Close releases backend resources.
	Close() error
}
