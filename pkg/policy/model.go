package policy

import (
	"log/slog"
	"sync"
	"time"

	"veritor-hq/veritor/pkg/benchmark"
	"veritor-hq/veritor/pkg/policy/checksys"
	"veritor-hq/veritor/pkg/policy/outcome"
	"veritor-hq/veritor/pkg/policy/selection"
)

// Observer receives evaluation telemetry. The metrics package provides a
// Prometheus-backed implementation.
type Observer interface {
	// ObserveRule is called after each rule evaluation.
	ObserveRule(profileID string, oc outcome.Outcome, duration time.Duration)

	// ObserveBatch is called after each completed evaluation pass.
	ObserveBatch(profileID string, duration time.Duration, ruleCount int)
}

// Model owns the benchmark graph, the ordered set of policies derived
// from its profiles, and the single engine registry those policies share.
type Model struct {
	benchmark *benchmark.Benchmark
	registry  *checksys.Registry
	logger    *slog.Logger
	observer  Observer

	mu       sync.Mutex
	policies map[string]*Policy
	order    []string
}

// Option configures a Model.
type Option func(*Model)

// WithLogger sets the structured logger used by the model, its policies
// and its registry.
func WithLogger(l *slog.Logger) Option {
	return func(m *Model) { m.logger = l }
}

// WithObserver attaches evaluation telemetry.
func WithObserver(o Observer) Option {
	return func(m *Model) { m.observer = o }
}

// NewModel builds a policy model around a validated benchmark graph.
func NewModel(b *benchmark.Benchmark, opts ...Option) (*Model, error) {
	if b == nil {
		return nil, ErrNilBenchmark
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}

	m := &Model{
		benchmark: b,
		policies:  make(map[string]*Policy),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.logger == nil {
		m.logger = slog.Default()
	}
	m.logger = m.logger.With("benchmark_id", b.ID)
	m.registry = checksys.NewRegistry(m.logger)

	return m, nil
}

// Benchmark returns the shared, read-only benchmark graph.
func (m *Model) Benchmark() *benchmark.Benchmark {
	return m.benchmark
}

// Registry returns the engine registry shared by every policy of this
// model.
func (m *Model) Registry() *checksys.Registry {
	return m.registry
}

// Policy returns the policy for a profile id, resolving and caching it on
// first use. The empty id yields the implicit defaults-only policy.
// Resolution failures (unknown profile, broken extends chain, dangling
// references) surface as *selection.ConfigurationError.
func (m *Model) Policy(profileID string) (*Policy, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if p, ok := m.policies[profileID]; ok {
		return p, nil
	}

	resolved, err := selection.Resolve(m.benchmark, profileID)
	if err != nil {
		return nil, err
	}

	p := &Policy{
		model:    m,
		resolved: resolved,
		state:    StateCreated,
		logger:   m.logger.With("profile_id", profileID),
	}
	m.policies[profileID] = p
	m.order = append(m.order, profileID)
	return p, nil
}

// Policies returns the instantiated policies in creation order.
func (m *Model) Policies() []*Policy {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*Policy, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.policies[id])
	}
	return out
}

// ProfileIDs returns the benchmark's profile ids in document order.
func (m *Model) ProfileIDs() []string {
	ids := make([]string, 0, len(m.benchmark.Profiles))
	for _, p := range m.benchmark.Profiles {
		ids = append(ids, p.ID)
	}
	return ids
}
