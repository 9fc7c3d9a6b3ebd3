package selection

import (
	"log/slog"

	"veritor-hq/veritor/pkg/benchmark"
)

// ValueOverride is the tailoring a profile chain applied to one value.
type ValueOverride struct {
	// Selector picks one of the value's selector-keyed literals.
	Selector string

	// Operator overrides the value's comparison operator when non-empty.
	Operator benchmark.Operator

	// SetValue replaces the literal outright when non-nil. It takes
	// precedence over Selector.
	SetValue *string
}

// Resolved is the outcome of applying a profile chain to a benchmark: the
// effective selection flag per addressed item and the effective value
// overrides. Items not addressed by any selector keep their defaults.
type Resolved struct {
	// ProfileID is the most specific profile of the resolved chain, or
	// empty for the defaults-only resolution.
	ProfileID string

	selected map[string]bool
	values   map[string]ValueOverride
}

// Resolve applies the profile chain ending at profileID to the benchmark.
// An empty profileID resolves defaults only. Unresolvable extends
// references, extends cycles and dangling directive references all return
// a *ConfigurationError.
func Resolve(b *benchmark.Benchmark, profileID string) (*Resolved, error) {
	res := &Resolved{
		ProfileID: profileID,
		selected:  make(map[string]bool),
		values:    make(map[string]ValueOverride),
	}
	if profileID == "" {
		return res, nil
	}

	chain, err := extendsChain(b, profileID)
	if err != nil {
		return nil, err
	}

	// Apply root ancestor first so the most specific profile wins.
	for _, p := range chain {
		if err := res.apply(b, p); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// extendsChain returns the profile chain ordered root ancestor first.
func extendsChain(b *benchmark.Benchmark, profileID string) ([]*benchmark.Profile, error) {
	var chain []*benchmark.Profile
	visited := make(map[string]bool)

	id := profileID
	for id != "" {
		if visited[id] {
			return nil, &ConfigurationError{
				ProfileID: profileID,
				Ref:       id,
				Message:   "extends cycle",
			}
		}
		visited[id] = true

		p := b.Profile(id)
		if p == nil {
			msg := "profile not found"
			if id != profileID {
				msg = "unresolvable extends reference"
			}
			return nil, &ConfigurationError{ProfileID: profileID, Ref: id, Message: msg}
		}

		// Prepend so the root ancestor ends up first.
		chain = append([]*benchmark.Profile{p}, chain...)
		id = p.Extends
	}
	return chain, nil
}

func (r *Resolved) apply(b *benchmark.Benchmark, p *benchmark.Profile) error {
	for _, sel := range p.Selectors {
		if b.Item(sel.ItemID) == nil {
			return &ConfigurationError{
				ProfileID: r.ProfileID,
				Ref:       sel.ItemID,
				Message:   "selector references unknown item",
			}
		}
		r.selected[sel.ItemID] = sel.Selected
	}

	for _, rv := range p.RefineValues {
		if b.Value(rv.ValueID) == nil {
			return &ConfigurationError{
				ProfileID: r.ProfileID,
				Ref:       rv.ValueID,
				Message:   "refine-value references unknown value",
			}
		}
		ov := r.values[rv.ValueID]
		ov.Selector = rv.Selector
		if rv.Operator != "" {
			ov.Operator = rv.Operator
		}
		r.values[rv.ValueID] = ov
	}

	for _, sv := range p.SetValues {
		if b.Value(sv.ValueID) == nil {
			return &ConfigurationError{
				ProfileID: r.ProfileID,
				Ref:       sv.ValueID,
				Message:   "set-value references unknown value",
			}
		}
		ov := r.values[sv.ValueID]
		lit := sv.Value
		ov.SetValue = &lit
		r.values[sv.ValueID] = ov
	}

	return nil
}

// IsSelected reports the effective selection of an item: the nearest
// profile selector when one addresses it, the item's selected-by-default
// flag otherwise.
func (r *Resolved) IsSelected(it benchmark.Item) bool {
	if sel, ok := r.selected[it.ItemID()]; ok {
		return sel
	}
	return it.DefaultSelected()
}

// ValueOverride returns the effective override for a value id, if any.
func (r *Resolved) ValueOverride(valueID string) (ValueOverride, bool) {
	ov, ok := r.values[valueID]
	return ov, ok
}

// SelectedRules returns the selected rules in benchmark document order.
// Groups are traversed regardless of their own selection flags.
func (r *Resolved) SelectedRules(b *benchmark.Benchmark) []*benchmark.Rule {
	var rules []*benchmark.Rule
	b.WalkRules(func(rule *benchmark.Rule) bool {
		if r.IsSelected(rule) {
			rules = append(rules, rule)
		}
		return true
	})
	return rules
}

// LogValue implements slog.LogValuer so resolutions log compactly.
func (r *Resolved) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("profile_id", r.ProfileID),
		slog.Int("selector_count", len(r.selected)),
		slog.Int("value_override_count", len(r.values)),
	)
}
