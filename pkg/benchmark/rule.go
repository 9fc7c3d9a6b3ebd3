package benchmark

import "veritor-hq/veritor/pkg/policy/outcome"

// Rule is a checkable item bound to one or more checks performed by
// external checking engines.
type Rule struct {
	Meta

	// Severity is an optional severity label ("low", "medium", "high").
	Severity string

	// Checks is the ordered check list. Most rules carry exactly one.
	Checks []Check

	// CheckOperator combines the outcomes of multiple checks. Defaults to
	// AND when left empty.
	CheckOperator outcome.BoolOp
}

// NewRule creates a rule with default weight 1, selected-by-default and
// the AND check operator.
func NewRule(id string) *Rule {
	return &Rule{
		Meta:          Meta{ID: id, Weight: 1, Selected: true},
		CheckOperator: outcome.OpAnd,
	}
}

// Kind returns KindRule.
func (r *Rule) Kind() Kind { return KindRule }

// WithCheck appends a check and returns the rule for chaining.
func (r *Rule) WithCheck(c Check) *Rule {
	r.Checks = append(r.Checks, c)
	return r
}

// Operator returns the effective check operator, defaulting to AND.
func (r *Rule) Operator() outcome.BoolOp {
	if r.CheckOperator.Valid() {
		return r.CheckOperator
	}
	return outcome.OpAnd
}
