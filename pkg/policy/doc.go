// Package policy is the policy evaluation orchestrator. It binds profiles
// of a benchmark to evaluatable policies, dispatches each selected rule's
// checks to registered checking engines, combines check verdicts under the
// documented truth-table algebra, and accumulates immutable result
// batches.
//
// A Model owns the benchmark graph (read-only), one Policy per profile
// (plus the implicit defaults-only policy), and the single checking-engine
// registry shared by all of them. Evaluation is a blocking, document-order
// walk over the selected rules on the calling goroutine; the supplied
// context is consulted between rule dispatches, never inside an engine
// call, because that boundary is opaque to the orchestrator.
//
// Re-evaluating a policy appends a new, independent result batch. Prior
// batches are never mutated; the history is an append-only audit log.
package policy
