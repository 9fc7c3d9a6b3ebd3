package policy

import (
	"errors"
	"fmt"
)

// Sentinel errors for evaluation preconditions.
var (
	// ErrNilBenchmark indicates a model was constructed without a graph.
	ErrNilBenchmark = errors.New("policy: nil benchmark")

	// ErrEvaluating indicates Evaluate was called while another
	// evaluation of the same policy was already in flight.
	ErrEvaluating = errors.New("policy: evaluation already in progress")
)

// FatalError indicates the policy's evaluation preconditions were
// violated: evaluation aborts entirely and returns no result batch. The
// caller must correct the setup and retry.
type FatalError struct {
	ProfileID string
	Message   string
	Cause     error
}

// Error returns the error message.
func (e *FatalError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("policy %s: %s: %v", e.ProfileID, e.Message, e.Cause)
	}
	return fmt.Sprintf("policy %s: %s", e.ProfileID, e.Message)
}

// Unwrap returns the underlying cause.
func (e *FatalError) Unwrap() error {
	return e.Cause
}

// EngineError records a checking-engine failure for a single rule. It is
// not returned from Evaluate: the rule's outcome degrades to Error and
// evaluation continues, with the EngineError preserved on the rule result.
type EngineError struct {
	RuleID string
	System string
	Cause  error
}

// Error returns the error message.
func (e *EngineError) Error() string {
	return fmt.Sprintf("rule %s: engine %s failed: %v", e.RuleID, e.System, e.Cause)
}

// Unwrap returns the underlying cause.
func (e *EngineError) Unwrap() error {
	return e.Cause
}
