package outcome

import "fmt"

// Outcome is the verdict of evaluating a single check or a whole rule.
type Outcome int

const (
	// Pass indicates the target system satisfied the rule.
	Pass Outcome = iota + 1

	// Fail indicates the target system did not satisfy the rule.
	Fail

	// Error indicates the checking engine failed while evaluating the rule.
	Error

	// Unknown indicates the checking engine could not determine a verdict.
	Unknown

	// NotApplicable indicates the rule does not apply to the target system.
	NotApplicable

	// NotChecked indicates no checking engine evaluated the rule, typically
	// because no engine is registered for the check's system URI.
	NotChecked

	// NotSelected indicates the rule was excluded by the effective profile.
	NotSelected

	// Informational indicates the check produced information only and
	// carries no compliance weight.
	Informational

	// Fixed indicates the rule initially failed and was remediated.
	Fixed
)

var outcomeNames = map[Outcome]string{
	Pass:          "pass",
	Fail:          "fail",
	Error:         "error",
	Unknown:       "unknown",
	NotApplicable: "notapplicable",
	NotChecked:    "notchecked",
	NotSelected:   "notselected",
	Informational: "informational",
	Fixed:         "fixed",
}

// String returns the lowercase wire name of the outcome.
func (o Outcome) String() string {
	if name, ok := outcomeNames[o]; ok {
		return name
	}
	return fmt.Sprintf("outcome(%d)", int(o))
}

// Valid reports whether o is one of the defined outcome values.
func (o Outcome) Valid() bool {
	_, ok := outcomeNames[o]
	return ok
}

// Parse converts a wire name back into an Outcome.
func Parse(name string) (Outcome, error) {
	for o, n := range outcomeNames {
		if n == name {
			return o, nil
		}
	}
	return 0, fmt.Errorf("unknown outcome %q", name)
}

// Scorable reports whether the outcome participates in score computation.
// Only Pass and Fail carry weight; Fixed counts as Pass. All remaining
// outcomes are excluded from both the numerator and the denominator.
func (o Outcome) Scorable() bool {
	return o == Pass || o == Fail || o == Fixed
}

// Passed reports whether the outcome counts as a passing verdict for
// scoring purposes.
func (o Outcome) Passed() bool {
	return o == Pass || o == Fixed
}
