package policy

import (
	"time"

	"github.com/google/uuid"

	"veritor-hq/veritor/pkg/policy/checksys"
	"veritor-hq/veritor/pkg/policy/outcome"
)

// CheckResult is the verdict of a single check dispatch within a rule.
type CheckResult struct {
	// System is the check's checking-system URI.
	System string

	// Outcome is the engine's verdict, NotChecked when no engine was
	// registered for the system.
	Outcome outcome.Outcome

	// Dispatched reports whether an engine was actually invoked.
	Dispatched bool

	// Err holds the engine failure that degraded the check to Error.
	Err error
}

// RuleResult is the immutable per-rule record appended to a result batch.
type RuleResult struct {
	// RuleID is the evaluated rule.
	RuleID string

	// Outcome is the combined rule verdict.
	Outcome outcome.Outcome

	// Time is when the rule finished evaluating.
	Time time.Time

	// Duration is how long the rule's dispatches took.
	Duration time.Duration

	// Checks holds the per-check verdicts in check declaration order.
	Checks []CheckResult

	// Bindings are the value bindings that were applied to the dispatch.
	Bindings []checksys.ValueBinding

	// Message carries optional detail, such as the engine failure text.
	Message string
}

// ResultBatch is one complete evaluation pass over a policy's selected
// rules. Batches are append-only: once Evaluate returns, a batch is never
// modified again.
type ResultBatch struct {
	// ID uniquely identifies the batch.
	ID string

	// ProfileID is the profile the policy implements, empty for the
	// defaults-only policy.
	ProfileID string

	// BenchmarkID is the evaluated benchmark document.
	BenchmarkID string

	// Start and End bound the evaluation pass.
	Start time.Time
	End   time.Time

	// Rules holds the per-rule results in benchmark document order.
	Rules []RuleResult
}

func newResultBatch(benchmarkID, profileID string) *ResultBatch {
	return &ResultBatch{
		ID:          uuid.NewString(),
		ProfileID:   profileID,
		BenchmarkID: benchmarkID,
		Start:       time.Now().UTC(),
	}
}

// Outcome returns the recorded verdict for a rule id, or NotSelected when
// the batch holds no result for it.
func (b *ResultBatch) Outcome(ruleID string) outcome.Outcome {
	for i := range b.Rules {
		if b.Rules[i].RuleID == ruleID {
			return b.Rules[i].Outcome
		}
	}
	return outcome.NotSelected
}

// Counts returns the number of rule results per outcome.
func (b *ResultBatch) Counts() map[outcome.Outcome]int {
	counts := make(map[outcome.Outcome]int)
	for i := range b.Rules {
		counts[b.Rules[i].Outcome]++
	}
	return counts
}
