package history

import (
	"context"
	"errors"
	"testing"
	"time"

	"veritor-hq/veritor/pkg/policy"
	"veritor-hq/veritor/pkg/policy/outcome"
)

func sampleRecord(id, profileID string, start time.Time) *Record {
	return &Record{
		ID:          id,
		BenchmarkID: "bench",
		ProfileID:   profileID,
		Start:       start,
		End:         start.Add(time.Second),
		RuleCount:   2,
		Counts:      map[string]int{"pass": 1, "fail": 1},
		Rules: []RuleRecord{
			{RuleID: "r1", Outcome: "pass"},
			{RuleID: "r2", Outcome: "fail", Message: "port open"},
		},
	}
}

func TestMemoryStorage_StoreAndGet(t *testing.T) {
	s := NewMemoryStorage()
	ctx := context.Background()

	rec := sampleRecord("b1", "strict", time.Now())
	if err := s.Store(ctx, rec); err != nil {
		t.Fatalf("Store() error: %v", err)
	}

	got, err := s.Get(ctx, "b1")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if got.ProfileID != "strict" || got.RuleCount != 2 {
		t.Errorf("Get() = %+v", got)
	}

	// Stored copy is insulated from caller mutation.
	rec.Counts["pass"] = 99
	got2, _ := s.Get(ctx, "b1")
	if got2.Counts["pass"] != 1 {
		t.Error("stored record shares state with the caller's copy")
	}

	if _, err := s.Get(ctx, "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(missing) error = %v, want ErrNotFound", err)
	}
}

func TestMemoryStorage_List(t *testing.T) {
	s := NewMemoryStorage()
	ctx := context.Background()
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	s.Store(ctx, sampleRecord("b1", "strict", base))
	s.Store(ctx, sampleRecord("b2", "strict", base.Add(time.Hour)))
	s.Store(ctx, sampleRecord("b3", "baseline", base.Add(2*time.Hour)))

	all, err := s.List(ctx, Query{})
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("List() = %d records, want 3", len(all))
	}
	if all[0].ID != "b3" || all[2].ID != "b1" {
		t.Errorf("List() not newest-first: %s, %s, %s", all[0].ID, all[1].ID, all[2].ID)
	}

	strict, _ := s.List(ctx, Query{ProfileID: "strict"})
	if len(strict) != 2 {
		t.Errorf("profile filter: %d records, want 2", len(strict))
	}

	since, _ := s.List(ctx, Query{Since: base.Add(30 * time.Minute)})
	if len(since) != 2 {
		t.Errorf("since filter: %d records, want 2", len(since))
	}

	limited, _ := s.List(ctx, Query{Limit: 1, Offset: 1})
	if len(limited) != 1 || limited[0].ID != "b2" {
		t.Errorf("pagination: %+v", limited)
	}

	past, _ := s.List(ctx, Query{Offset: 10})
	if len(past) != 0 {
		t.Errorf("offset past end should be empty, got %d", len(past))
	}
}

func TestFromBatch(t *testing.T) {
	batch := &policy.ResultBatch{
		ID:          "batch-1",
		BenchmarkID: "bench",
		ProfileID:   "strict",
		Start:       time.Now().Add(-time.Second),
		End:         time.Now(),
		Rules: []policy.RuleResult{
			{RuleID: "r1", Outcome: outcome.Pass, Duration: time.Millisecond},
			{RuleID: "r2", Outcome: outcome.Fail, Message: "weak cipher"},
			{RuleID: "r3", Outcome: outcome.Pass},
		},
	}

	rec := FromBatch(batch)
	if rec.ID != "batch-1" || rec.RuleCount != 3 {
		t.Errorf("FromBatch() = %+v", rec)
	}
	if rec.Counts["pass"] != 2 || rec.Counts["fail"] != 1 {
		t.Errorf("Counts = %v", rec.Counts)
	}
	if rec.Rules[1].Message != "weak cipher" {
		t.Errorf("rule message lost: %+v", rec.Rules[1])
	}
}
