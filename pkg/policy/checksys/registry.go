package checksys

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"veritor-hq/veritor/pkg/benchmark"
)

// Registry maps checking-system URIs to registered engines and carries the
// global start/output hooks. A registry is shared read-mostly by every
// policy of a policy model; registrations may happen at any time and are
// safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	engines map[string]Engine
	start   StartFunc
	output  OutputFunc
	logger  *slog.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		engines: make(map[string]Engine),
		logger:  logger.With("component", "policy.checksys"),
	}
}

// Register binds an engine to a checking-system URI. Re-registration is
// allowed; the last registration for a URI wins.
func (r *Registry) Register(systemURI string, engine Engine) error {
	if systemURI == "" {
		return fmt.Errorf("checksys: empty system URI")
	}
	if engine.Eval == nil {
		return fmt.Errorf("checksys: engine for %q has no eval callback", systemURI)
	}

	r.mu.Lock()
	_, replaced := r.engines[systemURI]
	r.engines[systemURI] = engine
	r.mu.Unlock()

	r.logger.Info("checking engine registered",
		"system", systemURI,
		"replaced", replaced,
		"has_query", engine.Query != nil,
	)
	return nil
}

// Lookup returns the engine registered for a system URI.
func (r *Registry) Lookup(systemURI string) (Engine, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	eng, ok := r.engines[systemURI]
	return eng, ok
}

// Systems returns the registered system URIs in sorted order.
func (r *Registry) Systems() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	systems := make([]string, 0, len(r.engines))
	for uri := range r.engines {
		systems = append(systems, uri)
	}
	sort.Strings(systems)
	return systems
}

// RegisterStart installs the start hook, replacing any prior one.
func (r *Registry) RegisterStart(fn StartFunc) {
	r.mu.Lock()
	r.start = fn
	r.mu.Unlock()
}

// RegisterOutput installs the output hook, replacing any prior one.
func (r *Registry) RegisterOutput(fn OutputFunc) {
	r.mu.Lock()
	r.output = fn
	r.mu.Unlock()
}

// NotifyStart invokes the start hook, if any. Hook errors are logged and
// swallowed.
func (r *Registry) NotifyStart(meta RuleMeta) {
	r.mu.RLock()
	fn := r.start
	r.mu.RUnlock()
	if fn == nil {
		return
	}
	if err := fn(meta); err != nil {
		r.logger.Warn("start hook returned error",
			"rule_id", meta.RuleID,
			"error", err,
		)
	}
}

// NotifyOutput invokes the output hook, if any. Hook errors are logged and
// swallowed.
func (r *Registry) NotifyOutput(report *RuleReport) {
	r.mu.RLock()
	fn := r.output
	r.mu.RUnlock()
	if fn == nil {
		return
	}
	if err := fn(report); err != nil {
		r.logger.Warn("output hook returned error",
			"rule_id", report.RuleID,
			"outcome", report.Outcome.String(),
			"error", err,
		)
	}
}

// Query forwards a query to the engine registered for a system URI. It
// returns (nil, nil) when no engine is registered, the engine has no query
// callback, or the engine does not understand the query kind.
func (r *Registry) Query(ctx context.Context, systemURI string, kind QueryKind, payload any) (any, error) {
	eng, ok := r.Lookup(systemURI)
	if !ok || eng.Query == nil {
		return nil, nil
	}
	return eng.Query(ctx, kind, payload)
}

// FileEntry is one (system, href) pair referenced by a rule check. Check
// content behind an href that is never bound to an engine leaves its rules
// NotChecked after evaluation.
type FileEntry struct {
	System string
	Href   string
}

// SystemsAndFiles returns the distinct (system, href) pairs referenced by
// the benchmark's rule checks, in first-appearance document order.
func SystemsAndFiles(b *benchmark.Benchmark) []FileEntry {
	var entries []FileEntry
	seen := make(map[FileEntry]bool)
	b.WalkRules(func(rule *benchmark.Rule) bool {
		for _, c := range rule.Checks {
			if c.ContentRef.Href == "" {
				continue
			}
			e := FileEntry{System: c.System, Href: c.ContentRef.Href}
			if !seen[e] {
				seen[e] = true
				entries = append(entries, e)
			}
		}
		return true
	})
	return entries
}
