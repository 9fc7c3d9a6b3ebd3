package score

import (
	"fmt"

	"veritor-hq/veritor/pkg/benchmark"
	"veritor-hq/veritor/pkg/policy"
	"veritor-hq/veritor/pkg/policy/outcome"
)

// System names a scoring formula.
type System string

const (
	// SystemFlat is the weighted pass ratio: the summed weights of
	// passing rules over the summed weights of all scorable rules,
	// scaled to 0..100. Group weights do not participate.
	SystemFlat System = "flat"

	// SystemFlatUnweighted is SystemFlat with every rule weight forced
	// to 1.
	SystemFlatUnweighted System = "flat-unweighted"

	// SystemAbsolute yields 100 when every scorable rule passed, 0
	// otherwise.
	SystemAbsolute System = "absolute"

	// SystemDefault is the per-group normalized weighted average: each
	// group's score is the weighted mean of its scored children, and a
	// group contributes to its parent with the group's own declared
	// weight.
	SystemDefault System = "default"
)

// MaxScore is the upper bound of every scoring system.
const MaxScore = 100.0

// Compute scores a result batch against the benchmark's item tree under
// the named system. A batch with no scorable rules yields the 0 sentinel
// without error; only an unknown system name errors.
func Compute(b *benchmark.Benchmark, batch *policy.ResultBatch, system System) (float64, error) {
	outcomes := batchOutcomes(batch)

	switch system {
	case SystemFlat:
		return flat(b, outcomes, false), nil
	case SystemFlatUnweighted:
		return flat(b, outcomes, true), nil
	case SystemAbsolute:
		if !allScorablePassed(b, outcomes) {
			return 0, nil
		}
		if countScorable(outcomes) == 0 {
			return 0, nil
		}
		return MaxScore, nil
	case SystemDefault:
		s, ok := defaultScore(b.Items, outcomes)
		if !ok {
			return 0, nil
		}
		return s, nil
	default:
		return 0, fmt.Errorf("score: unknown scoring system %q", system)
	}
}

func batchOutcomes(batch *policy.ResultBatch) map[string]outcome.Outcome {
	outcomes := make(map[string]outcome.Outcome, len(batch.Rules))
	for i := range batch.Rules {
		outcomes[batch.Rules[i].RuleID] = batch.Rules[i].Outcome
	}
	return outcomes
}

func countScorable(outcomes map[string]outcome.Outcome) int {
	n := 0
	for _, oc := range outcomes {
		if oc.Scorable() {
			n++
		}
	}
	return n
}

func allScorablePassed(b *benchmark.Benchmark, outcomes map[string]outcome.Outcome) bool {
	passed := true
	b.WalkRules(func(r *benchmark.Rule) bool {
		oc, ok := outcomes[r.ID]
		if !ok || !oc.Scorable() {
			return true
		}
		if !oc.Passed() {
			passed = false
			return false
		}
		return true
	})
	return passed
}

// flat sums rule weights over the scorable result set. Group weights are
// ignored by design: a group's effective contribution is the sum of its
// scorable descendants.
func flat(b *benchmark.Benchmark, outcomes map[string]outcome.Outcome, unweighted bool) float64 {
	var passSum, totalSum float64
	b.WalkRules(func(r *benchmark.Rule) bool {
		oc, ok := outcomes[r.ID]
		if !ok || !oc.Scorable() {
			return true
		}
		w := r.ItemWeight()
		if unweighted {
			w = 1
		}
		totalSum += w
		if oc.Passed() {
			passSum += w
		}
		return true
	})
	if totalSum == 0 {
		return 0
	}
	return passSum / totalSum * MaxScore
}

// defaultScore recurses bottom-up through the item tree. Each node's score
// is the weighted mean of its scored children; rules score MaxScore when
// passed and 0 when failed. The boolean result reports whether any
// scorable rule contributed.
func defaultScore(items []benchmark.Item, outcomes map[string]outcome.Outcome) (float64, bool) {
	var weightedSum, weightSum float64
	contributed := false

	for _, it := range items {
		switch v := it.(type) {
		case *benchmark.Rule:
			oc, ok := outcomes[v.ID]
			if !ok || !oc.Scorable() {
				continue
			}
			s := 0.0
			if oc.Passed() {
				s = MaxScore
			}
			weightedSum += v.ItemWeight() * s
			weightSum += v.ItemWeight()
			contributed = true
		case *benchmark.Group:
			sub, ok := defaultScore(v.Children, outcomes)
			if !ok {
				continue
			}
			weightedSum += v.ItemWeight() * sub
			weightSum += v.ItemWeight()
			contributed = true
		}
	}

	if !contributed || weightSum == 0 {
		return 0, false
	}
	return weightedSum / weightSum, true
}
