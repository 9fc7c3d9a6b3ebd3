package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"veritor-hq/veritor/pkg/policy/outcome"
)

// Config controls metric naming.
type Config struct {
	// Namespace is the metric namespace prefix (defaults to "veritor").
	Namespace string

	// Subsystem is the metric subsystem (defaults to "policy").
	Subsystem string
}

// EvalMetrics tracks policy evaluation telemetry. It satisfies the
// policy.Observer interface and is wired with policy.WithObserver.
//
// Metrics:
//   - veritor_policy_rule_evaluations_total: rule evaluations by profile and outcome
//   - veritor_policy_rule_duration_seconds: per-rule evaluation duration
//   - veritor_policy_batches_total: completed evaluation passes by profile
//   - veritor_policy_batch_duration_seconds: full-pass duration
//   - veritor_policy_batch_rules: rules per completed pass
//   - veritor_policy_score: last computed score by profile and scoring system
type EvalMetrics struct {
	ruleEvaluationsTotal *prometheus.CounterVec
	ruleDuration         *prometheus.HistogramVec
	batchesTotal         *prometheus.CounterVec
	batchDuration        *prometheus.HistogramVec
	batchRules           *prometheus.GaugeVec
	score                *prometheus.GaugeVec
}

// NewEvalMetrics creates and registers evaluation metrics with the
// provided registry.
func NewEvalMetrics(cfg Config, registry *prometheus.Registry) *EvalMetrics {
	if cfg.Namespace == "" {
		cfg.Namespace = "veritor"
	}
	if cfg.Subsystem == "" {
		cfg.Subsystem = "policy"
	}

	em := &EvalMetrics{
		ruleEvaluationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "rule_evaluations_total",
				Help:      "Total number of rule evaluations",
			},
			[]string{"profile_id", "outcome"},
		),

		ruleDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "rule_duration_seconds",
				Help:      "Duration of individual rule evaluations in seconds",
				// Engine dispatch dominates; content probes can run long.
				Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10), // 100µs to ~26s
			},
			[]string{"profile_id"},
		),

		batchesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "batches_total",
				Help:      "Total number of completed evaluation passes",
			},
			[]string{"profile_id"},
		),

		batchDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "batch_duration_seconds",
				Help:      "Duration of full evaluation passes in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10), // 1ms to ~4m
			},
			[]string{"profile_id"},
		),

		batchRules: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "batch_rules",
				Help:      "Number of rules in the most recent evaluation pass",
			},
			[]string{"profile_id"},
		),

		score: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "score",
				Help:      "Most recently computed compliance score (0-100)",
			},
			[]string{"profile_id", "system"},
		),
	}

	registry.MustRegister(
		em.ruleEvaluationsTotal,
		em.ruleDuration,
		em.batchesTotal,
		em.batchDuration,
		em.batchRules,
		em.score,
	)

	return em
}

// ObserveRule records one rule evaluation.
func (em *EvalMetrics) ObserveRule(profileID string, oc outcome.Outcome, duration time.Duration) {
	em.ruleEvaluationsTotal.WithLabelValues(profileID, oc.String()).Inc()
	em.ruleDuration.WithLabelValues(profileID).Observe(duration.Seconds())
}

// ObserveBatch records one completed evaluation pass.
func (em *EvalMetrics) ObserveBatch(profileID string, duration time.Duration, ruleCount int) {
	em.batchesTotal.WithLabelValues(profileID).Inc()
	em.batchDuration.WithLabelValues(profileID).Observe(duration.Seconds())
	em.batchRules.WithLabelValues(profileID).Set(float64(ruleCount))
}

// RecordScore publishes a computed score for a profile under a scoring
// system name.
func (em *EvalMetrics) RecordScore(profileID, system string, score float64) {
	em.score.WithLabelValues(profileID, system).Set(score)
}
