package policy

import (
	"veritor-hq/veritor/pkg/benchmark"
	"veritor-hq/veritor/pkg/policy/checksys"
)

// resolveBindings builds the fresh value bindings for one rule dispatch:
// the union of the rule's check exports, each resolved through the policy's
// value overrides down to the value item defaults.
//
// Precedence per value: profile set-value literal, then the literal keyed
// by the profile's refine-value selector, then the value's default. The
// operator follows the refine-value override when present.
func (p *Policy) resolveBindings(rule *benchmark.Rule) []checksys.ValueBinding {
	var bindings []checksys.ValueBinding
	seen := make(map[string]bool)

	for _, check := range rule.Checks {
		for _, ex := range check.Exports {
			if seen[ex.ValueID] {
				continue
			}
			seen[ex.ValueID] = true

			val := p.model.benchmark.Value(ex.ValueID)
			if val == nil {
				// Validate rejects dangling exports up front; a graph
				// mutated after validation still must not crash dispatch.
				p.logger.Warn("check exports unknown value, skipping binding",
					"rule_id", rule.ID,
					"value_id", ex.ValueID,
				)
				continue
			}

			binding := checksys.ValueBinding{
				Name:     ex.ExternalName,
				Type:     val.Type,
				Operator: val.Operator,
				Value:    val.Default,
			}
			if binding.Name == "" {
				binding.Name = val.ID
			}

			if ov, ok := p.resolved.ValueOverride(val.ID); ok {
				if ov.Selector != "" {
					binding.Value = val.Literal(ov.Selector)
				}
				if ov.Operator != "" {
					binding.Operator = ov.Operator
				}
				if ov.SetValue != nil {
					binding.Value = *ov.SetValue
					binding.SetValue = *ov.SetValue
				}
			}

			bindings = append(bindings, binding)
		}
	}
	return bindings
}
