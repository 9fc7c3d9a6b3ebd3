package benchmark

// Kind discriminates the three item variants in a benchmark tree.
type Kind string

const (
	// KindGroup is an organizational node owning an ordered child sequence.
	KindGroup Kind = "group"

	// KindRule is a checkable node bound to one or more checks.
	KindRule Kind = "rule"

	// KindValue is a named tunable consumed by checks.
	KindValue Kind = "value"
)

// Item is a node of the benchmark tree. The concrete variants are *Group,
// *Rule and *Value, all of which embed Meta.
type Item interface {
	// ItemID returns the identifier, unique within the benchmark.
	ItemID() string

	// Kind returns the item variant.
	Kind() Kind

	// ItemWeight returns the scoring weight. Weights are only meaningful
	// on selected, scorable rules (and on groups under the default
	// scoring system).
	ItemWeight() float64

	// DefaultSelected reports whether the item is selected when no
	// profile selector addresses it.
	DefaultSelected() bool

	// Parent returns the owning group, or nil for top-level items. The
	// back-reference carries no ownership.
	Parent() *Group
}

// Meta carries the attributes shared by every item variant.
type Meta struct {
	// ID is the item identifier, unique within the benchmark.
	ID string

	// Title is an optional human-readable title.
	Title string

	// Weight is the scoring weight. Constructors default it to 1.
	Weight float64

	// Selected is the selected-by-default flag. Constructors default it
	// to true.
	Selected bool

	parent *Group
}

// ItemID returns the item identifier.
func (m *Meta) ItemID() string { return m.ID }

// ItemWeight returns the scoring weight.
func (m *Meta) ItemWeight() float64 { return m.Weight }

// DefaultSelected reports the selected-by-default flag.
func (m *Meta) DefaultSelected() bool { return m.Selected }

// Parent returns the owning group, or nil for top-level items.
func (m *Meta) Parent() *Group { return m.parent }
