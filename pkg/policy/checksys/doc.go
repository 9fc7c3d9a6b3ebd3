// Package checksys is the registration surface between the policy
// orchestrator and external checking engines.
//
// The orchestrator never inspects a target system itself. For every
// checking-system URI that appears in a rule's checks, callers register an
// Engine whose Eval callback performs the actual inspection and returns an
// outcome. A check whose system URI has no registered engine degrades to
// NotChecked; that is documented behavior for missing engine coverage, not
// an error.
//
// A registry also carries at most one start hook and one output hook,
// invoked around each rule evaluation. Hook failures are advisory: they
// are logged and never abort an evaluation.
package checksys
