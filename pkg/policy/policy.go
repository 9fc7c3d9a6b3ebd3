package policy

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"veritor-hq/veritor/pkg/benchmark"
	"veritor-hq/veritor/pkg/policy/checksys"
	"veritor-hq/veritor/pkg/policy/outcome"
	"veritor-hq/veritor/pkg/policy/selection"
)

// State is the lifecycle phase of a policy.
type State string

const (
	// StateCreated means the policy has never been evaluated.
	StateCreated State = "created"

	// StateEvaluating means an evaluation pass is in flight.
	StateEvaluating State = "evaluating"

	// StateEvaluated means at least one batch has completed. Further
	// evaluations are permitted and append additional batches.
	StateEvaluated State = "evaluated"
)

// Policy binds one profile of the model's benchmark to an evaluatable
// unit: a resolved selection set plus an append-only result history.
//
// The benchmark graph and the engine registry are shared and read-only
// during evaluation. The result history belongs exclusively to this
// policy; evaluating the same policy from multiple goroutines at once is
// rejected with ErrEvaluating rather than silently interleaved.
type Policy struct {
	model    *Model
	resolved *selection.Resolved
	logger   *slog.Logger

	mu      sync.Mutex
	state   State
	batches []*ResultBatch
}

// ProfileID returns the id of the profile this policy implements, empty
// for the defaults-only policy.
func (p *Policy) ProfileID() string {
	return p.resolved.ProfileID
}

// Model returns the owning policy model.
func (p *Policy) Model() *Model {
	return p.model
}

// Resolved exposes the policy's resolved selection for scoring and
// introspection.
func (p *Policy) Resolved() *selection.Resolved {
	return p.resolved
}

// State returns the current lifecycle phase.
func (p *Policy) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// SelectedRules returns the policy's selected rules in document order.
func (p *Policy) SelectedRules() []*benchmark.Rule {
	return p.resolved.SelectedRules(p.model.benchmark)
}

// Results returns the accumulated batches, oldest first. The returned
// slice is a copy; the batches themselves are immutable once appended.
func (p *Policy) Results() []*ResultBatch {
	p.mu.Lock()
	defer p.mu.Unlock()
	batches := make([]*ResultBatch, len(p.batches))
	copy(batches, p.batches)
	return batches
}

// ResultByID returns the batch with the given id, or nil.
func (p *Policy) ResultByID(id string) *ResultBatch {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, b := range p.batches {
		if b.ID == id {
			return b
		}
	}
	return nil
}

// Evaluate runs one evaluation pass: every selected rule, in benchmark
// document order, has its checks dispatched to the registered engines and
// the verdicts combined under the rule's operator. The completed batch is
// appended to the policy's history and returned.
//
// Zero selected rules is success with an empty batch. A missing engine
// degrades the affected check to NotChecked. An engine error or panic
// degrades the affected rule to Error; evaluation continues with the next
// rule. Context cancellation is honored between rule dispatches and
// returns the error without appending a batch.
func (p *Policy) Evaluate(ctx context.Context) (*ResultBatch, error) {
	if p.model == nil || p.model.registry == nil {
		return nil, &FatalError{ProfileID: p.ProfileID(), Message: "no engine registry"}
	}

	p.mu.Lock()
	if p.state == StateEvaluating {
		p.mu.Unlock()
		return nil, ErrEvaluating
	}
	prior := p.state
	p.state = StateEvaluating
	p.mu.Unlock()

	batch, err := p.evaluate(ctx)

	p.mu.Lock()
	if err != nil {
		p.state = prior
	} else {
		p.state = StateEvaluated
		p.batches = append(p.batches, batch)
	}
	p.mu.Unlock()

	return batch, err
}

func (p *Policy) evaluate(ctx context.Context) (*ResultBatch, error) {
	rules := p.SelectedRules()
	batch := newResultBatch(p.model.benchmark.ID, p.ProfileID())

	p.logger.Info("policy evaluation started",
		"profile_id", p.ProfileID(),
		"batch_id", batch.ID,
		"selected_rules", len(rules),
	)

	start := time.Now()
	for _, rule := range rules {
		// Cancellation is a rule-granular boundary: a blocking engine
		// call cannot be interrupted from here.
		select {
		case <-ctx.Done():
			p.logger.Warn("policy evaluation cancelled",
				"profile_id", p.ProfileID(),
				"rule_id", rule.ID,
			)
			return nil, ctx.Err()
		default:
		}

		result := p.evaluateRule(ctx, rule)
		batch.Rules = append(batch.Rules, result)

		if p.model.observer != nil {
			p.model.observer.ObserveRule(p.ProfileID(), result.Outcome, result.Duration)
		}
	}
	batch.End = time.Now().UTC()

	if p.model.observer != nil {
		p.model.observer.ObserveBatch(p.ProfileID(), time.Since(start), len(batch.Rules))
	}

	p.logger.Info("policy evaluation finished",
		"profile_id", p.ProfileID(),
		"batch_id", batch.ID,
		"rule_count", len(batch.Rules),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return batch, nil
}

// evaluateRule dispatches one rule's checks and combines their verdicts.
func (p *Policy) evaluateRule(ctx context.Context, rule *benchmark.Rule) RuleResult {
	ruleStart := time.Now()
	bindings := p.resolveBindings(rule)

	p.model.registry.NotifyStart(checksys.RuleMeta{
		RuleID:   rule.ID,
		Title:    rule.Title,
		Severity: rule.Severity,
	})

	result := RuleResult{
		RuleID:   rule.ID,
		Bindings: bindings,
	}

	outcomes := make([]outcome.Outcome, 0, len(rule.Checks))
	for _, check := range rule.Checks {
		cr := p.dispatchCheck(ctx, rule, check, bindings)
		result.Checks = append(result.Checks, cr)
		outcomes = append(outcomes, cr.Outcome)
		if cr.Err != nil && result.Message == "" {
			result.Message = cr.Err.Error()
		}
	}

	result.Outcome = outcome.Combine(rule.Operator(), outcomes)
	result.Time = time.Now().UTC()
	result.Duration = time.Since(ruleStart)

	p.model.registry.NotifyOutput(&checksys.RuleReport{
		RuleID:  rule.ID,
		Outcome: result.Outcome,
		Detail:  result.Message,
	})

	p.logger.Debug("rule evaluated",
		"rule_id", rule.ID,
		"outcome", result.Outcome.String(),
		"check_count", len(result.Checks),
	)
	return result
}

// dispatchCheck invokes the engine registered for one check. A missing
// engine degrades to NotChecked; an engine error or panic degrades to
// Error. Either way the failure is isolated to this check.
func (p *Policy) dispatchCheck(ctx context.Context, rule *benchmark.Rule, check benchmark.Check, bindings []checksys.ValueBinding) (cr CheckResult) {
	cr = CheckResult{System: check.System}

	engine, ok := p.model.registry.Lookup(check.System)
	if !ok {
		p.logger.Warn("no engine registered for checking system",
			"rule_id", rule.ID,
			"system", check.System,
		)
		cr.Outcome = outcome.NotChecked
		return cr
	}
	cr.Dispatched = true

	defer func() {
		if r := recover(); r != nil {
			cr.Outcome = outcome.Error
			cr.Err = &EngineError{
				RuleID: rule.ID,
				System: check.System,
				Cause:  fmt.Errorf("engine panic: %v", r),
			}
			p.logger.Error("engine panicked during check dispatch",
				"rule_id", rule.ID,
				"system", check.System,
				"panic", fmt.Sprint(r),
			)
		}
	}()

	oc, err := engine.Eval(ctx, &checksys.CheckRequest{
		RuleID:     rule.ID,
		CheckID:    check.ID,
		ContentRef: check.ContentRef,
		Bindings:   bindings,
	})
	if err != nil {
		cr.Outcome = outcome.Error
		cr.Err = &EngineError{RuleID: rule.ID, System: check.System, Cause: err}
		p.logger.Error("engine failed during check dispatch",
			"rule_id", rule.ID,
			"system", check.System,
			"error", err,
		)
		return cr
	}
	if !oc.Valid() {
		cr.Outcome = outcome.Unknown
		return cr
	}

	if check.Negate {
		switch oc {
		case outcome.Pass, outcome.Fixed:
			oc = outcome.Fail
		case outcome.Fail:
			oc = outcome.Pass
		}
	}
	cr.Outcome = oc
	return cr
}
