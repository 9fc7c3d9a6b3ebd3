package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"veritor-hq/veritor/pkg/policy"
	"veritor-hq/veritor/pkg/policy/outcome"
)

// Compile-time check that EvalMetrics satisfies the observer contract.
var _ policy.Observer = (*EvalMetrics)(nil)

func TestObserveRule(t *testing.T) {
	registry := prometheus.NewRegistry()
	em := NewEvalMetrics(Config{}, registry)

	em.ObserveRule("strict", outcome.Pass, 5*time.Millisecond)
	em.ObserveRule("strict", outcome.Pass, 7*time.Millisecond)
	em.ObserveRule("strict", outcome.Fail, 3*time.Millisecond)

	pass := testutil.ToFloat64(em.ruleEvaluationsTotal.WithLabelValues("strict", "pass"))
	if pass != 2 {
		t.Errorf("pass counter = %v, want 2", pass)
	}
	fail := testutil.ToFloat64(em.ruleEvaluationsTotal.WithLabelValues("strict", "fail"))
	if fail != 1 {
		t.Errorf("fail counter = %v, want 1", fail)
	}
}

func TestObserveBatch(t *testing.T) {
	registry := prometheus.NewRegistry()
	em := NewEvalMetrics(Config{}, registry)

	em.ObserveBatch("strict", 100*time.Millisecond, 12)
	em.ObserveBatch("strict", 120*time.Millisecond, 10)

	if got := testutil.ToFloat64(em.batchesTotal.WithLabelValues("strict")); got != 2 {
		t.Errorf("batches counter = %v, want 2", got)
	}
	if got := testutil.ToFloat64(em.batchRules.WithLabelValues("strict")); got != 10 {
		t.Errorf("batch rules gauge = %v, want last value 10", got)
	}
}

func TestRecordScore(t *testing.T) {
	registry := prometheus.NewRegistry()
	em := NewEvalMetrics(Config{Namespace: "test", Subsystem: "eval"}, registry)

	em.RecordScore("strict", "flat", 87.5)
	if got := testutil.ToFloat64(em.score.WithLabelValues("strict", "flat")); got != 87.5 {
		t.Errorf("score gauge = %v, want 87.5", got)
	}

	em.RecordScore("strict", "flat", 90)
	if got := testutil.ToFloat64(em.score.WithLabelValues("strict", "flat")); got != 90 {
		t.Errorf("score gauge = %v, want 90 after update", got)
	}
}
