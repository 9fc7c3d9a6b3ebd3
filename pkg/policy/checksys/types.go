package checksys

import (
	"context"

	"veritor-hq/veritor/pkg/benchmark"
	"veritor-hq/veritor/pkg/policy/outcome"
)

// ValueBinding is one resolved tunable handed to a checking engine: the
// engine-side variable name plus the effective literal, type and operator
// after profile tailoring. Bindings are built fresh for each rule
// evaluation and are only valid for the duration of the dispatch that
// consumes them.
type ValueBinding struct {
	// Name is the engine-side variable name from the check's export.
	Name string

	// Value is the effective literal after tailoring.
	Value string

	// Type is the declared value type.
	Type benchmark.ValueType

	// Operator is the effective comparison operator.
	Operator benchmark.Operator

	// SetValue holds the profile's set-value literal when one applied,
	// mirroring the raw directive for engines that distinguish it.
	SetValue string
}

// CheckRequest carries everything an engine needs to evaluate one check.
type CheckRequest struct {
	// RuleID is the rule the check belongs to.
	RuleID string

	// CheckID is the check's optional external identifier.
	CheckID string

	// ContentRef locates the check content inside the engine's data.
	ContentRef benchmark.ContentRef

	// Bindings are the resolved value bindings for this dispatch.
	Bindings []ValueBinding
}

// EvalFunc evaluates one check against the target system. The call is
// synchronous and blocking from the orchestrator's perspective; an error
// return degrades the rule's outcome to Error without aborting the rest of
// the evaluation.
type EvalFunc func(ctx context.Context, req *CheckRequest) (outcome.Outcome, error)

// QueryKind enumerates the closed set of queries an engine may answer
// about itself or its loaded content.
type QueryKind int

const (
	// QueryNamesForHref asks which check names are addressable within the
	// content document identified by an href. The payload is the href
	// string; the answer is a []string.
	QueryNamesForHref QueryKind = iota + 1
)

// QueryFunc answers engine queries. Engines return (nil, nil) for query
// kinds they do not understand.
type QueryFunc func(ctx context.Context, kind QueryKind, payload any) (any, error)

// Engine is one registered checking engine: the mandatory evaluation
// callback and an optional query callback.
type Engine struct {
	// Eval performs check evaluation. Required.
	Eval EvalFunc

	// Query answers QueryKind queries. Optional.
	Query QueryFunc
}

// RuleMeta is the rule metadata handed to the start hook before a rule's
// checks are dispatched.
type RuleMeta struct {
	RuleID   string
	Title    string
	Severity string
}

// RuleReport is the per-rule summary handed to the output hook after a
// rule's check outcomes have been combined.
type RuleReport struct {
	// RuleID is the evaluated rule.
	RuleID string

	// Outcome is the combined rule verdict.
	Outcome outcome.Outcome

	// Detail is optional human-readable context, such as the message of
	// the error that degraded the rule.
	Detail string
}

// StartFunc is invoked before each rule evaluation. A non-nil error is
// logged and ignored.
type StartFunc func(meta RuleMeta) error

// OutputFunc is invoked with the final per-rule report after each rule
// evaluation. A non-nil error is logged and ignored.
type OutputFunc func(report *RuleReport) error
