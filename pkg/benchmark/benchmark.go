package benchmark

import "fmt"

// Benchmark is the root of a policy document: an ordered tree of groups,
// rules and values, plus the profiles tailoring it.
type Benchmark struct {
	// ID identifies the benchmark document.
	ID string

	// Title is an optional human-readable title.
	Title string

	// Items is the ordered top-level item sequence.
	Items []Item

	// Profiles is the ordered profile list.
	Profiles []*Profile

	index    map[string]Item
	profiles map[string]*Profile
}

// New creates an empty benchmark with the given document identifier.
func New(id string) *Benchmark {
	return &Benchmark{ID: id}
}

// Append adds top-level items in order and returns the benchmark for
// chaining.
func (b *Benchmark) Append(items ...Item) *Benchmark {
	b.Items = append(b.Items, items...)
	b.index = nil
	return b
}

// AddProfile registers a profile and returns the benchmark for chaining.
func (b *Benchmark) AddProfile(p *Profile) *Benchmark {
	b.Profiles = append(b.Profiles, p)
	b.profiles = nil
	return b
}

// SetProfile registers a profile, replacing any existing profile with
// the same id while keeping its position in the profile order.
func (b *Benchmark) SetProfile(p *Profile) *Benchmark {
	for i, existing := range b.Profiles {
		if existing.ID == p.ID {
			b.Profiles[i] = p
			b.profiles = nil
			return b
		}
	}
	return b.AddProfile(p)
}

// Item looks up any item by identifier. It returns nil when the id does
// not resolve.
func (b *Benchmark) Item(id string) Item {
	b.ensureIndex()
	return b.index[id]
}

// Rule looks up a rule by identifier, returning nil for missing ids or
// non-rule items.
func (b *Benchmark) Rule(id string) *Rule {
	r, _ := b.Item(id).(*Rule)
	return r
}

// Value looks up a value by identifier, returning nil for missing ids or
// non-value items.
func (b *Benchmark) Value(id string) *Value {
	v, _ := b.Item(id).(*Value)
	return v
}

// Profile looks up a profile by identifier. It returns nil when the id
// does not resolve.
func (b *Benchmark) Profile(id string) *Profile {
	if b.profiles == nil {
		b.profiles = make(map[string]*Profile, len(b.Profiles))
		for _, p := range b.Profiles {
			b.profiles[p.ID] = p
		}
	}
	return b.profiles[id]
}

func (b *Benchmark) ensureIndex() {
	if b.index != nil {
		return
	}
	b.index = make(map[string]Item)
	WalkItems(b.Items, func(it Item) bool {
		b.index[it.ItemID()] = it
		return true
	})
}

// WalkItems visits items depth-first in document order. The visitor
// returns false to stop the walk early.
func WalkItems(items []Item, visit func(Item) bool) bool {
	for _, it := range items {
		if !visit(it) {
			return false
		}
		if g, ok := it.(*Group); ok {
			if !WalkItems(g.Children, visit) {
				return false
			}
		}
	}
	return true
}

// WalkRules visits every rule descendant in document order, recursing
// through groups regardless of their selection flags.
func (b *Benchmark) WalkRules(visit func(*Rule) bool) {
	WalkItems(b.Items, func(it Item) bool {
		if r, ok := it.(*Rule); ok {
			return visit(r)
		}
		return true
	})
}

// Rules returns every rule in document order.
func (b *Benchmark) Rules() []*Rule {
	var rules []*Rule
	b.WalkRules(func(r *Rule) bool {
		rules = append(rules, r)
		return true
	})
	return rules
}

// Validate checks the structural invariants of the graph: unique item
// ids, non-negative weights, valid check operators, and check exports
// referencing existing values.
func (b *Benchmark) Validate() error {
	seen := make(map[string]bool)
	var firstErr error
	WalkItems(b.Items, func(it Item) bool {
		id := it.ItemID()
		if id == "" {
			firstErr = fmt.Errorf("benchmark %s: item with empty id", b.ID)
			return false
		}
		if seen[id] {
			firstErr = fmt.Errorf("benchmark %s: duplicate item id %q", b.ID, id)
			return false
		}
		seen[id] = true
		if it.ItemWeight() < 0 {
			firstErr = fmt.Errorf("benchmark %s: item %q has negative weight %v", b.ID, id, it.ItemWeight())
			return false
		}
		return true
	})
	if firstErr != nil {
		return firstErr
	}

	for _, r := range b.Rules() {
		for _, c := range r.Checks {
			if c.System == "" {
				return fmt.Errorf("benchmark %s: rule %q has a check without a system URI", b.ID, r.ID)
			}
			for _, ex := range c.Exports {
				if !seen[ex.ValueID] {
					return fmt.Errorf("benchmark %s: rule %q exports unknown value %q", b.ID, r.ID, ex.ValueID)
				}
			}
		}
	}

	profileIDs := make(map[string]bool, len(b.Profiles))
	for _, p := range b.Profiles {
		if p.ID == "" {
			return fmt.Errorf("benchmark %s: profile with empty id", b.ID)
		}
		if profileIDs[p.ID] {
			return fmt.Errorf("benchmark %s: duplicate profile id %q", b.ID, p.ID)
		}
		profileIDs[p.ID] = true
	}

	return nil
}
