package history

import (
	"context"
	"sort"
	"sync"
)

// MemoryStorage implements Storage with an in-memory map. Intended for
// tests and for embedders that only need the process-lifetime history.
type MemoryStorage struct {
	mu      sync.RWMutex
	records map[string]*Record
}

// NewMemoryStorage creates an in-memory storage backend.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		records: make(map[string]*Record),
	}
}

// Store persists a record to memory.
func (s *MemoryStorage) Store(ctx context.Context, record *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Copy so later caller mutation cannot reach the stored record.
	cp := *record
	cp.Rules = append([]RuleRecord(nil), record.Rules...)
	cp.Counts = make(map[string]int, len(record.Counts))
	for k, v := range record.Counts {
		cp.Counts[k] = v
	}
	s.records[record.ID] = &cp
	return nil
}

// Get retrieves a record by batch id.
func (s *MemoryStorage) Get(ctx context.Context, id string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *rec
	return &cp, nil
}

// List retrieves records matching the query, newest first.
func (s *MemoryStorage) List(ctx context.Context, query Query) ([]*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var results []*Record
	for _, rec := range s.records {
		if matches(rec, query) {
			cp := *rec
			results = append(results, &cp)
		}
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Start.After(results[j].Start)
	})

	if query.Offset > 0 {
		if query.Offset >= len(results) {
			return nil, nil
		}
		results = results[query.Offset:]
	}
	if query.Limit > 0 && len(results) > query.Limit {
		results = results[:query.Limit]
	}
	return results, nil
}

// Close is a no-op for the memory backend.
func (s *MemoryStorage) Close() error {
	return nil
}

func matches(rec *Record, query Query) bool {
	if query.ProfileID != "" && rec.ProfileID != query.ProfileID {
		return false
	}
	if query.BenchmarkID != "" && rec.BenchmarkID != query.BenchmarkID {
		return false
	}
	if !query.Since.IsZero() && rec.Start.Before(query.Since) {
		return false
	}
	if !query.Until.IsZero() && rec.Start.After(query.Until) {
		return false
	}
	return true
}
