package benchmark

// Selector marks an item as selected or deselected by a profile. The last
// applicable selector for an item in profile-application order wins.
type Selector struct {
	ItemID   string
	Selected bool
}

// RefineValue points a value at one of its selector-keyed literals and may
// override its comparison operator.
type RefineValue struct {
	ValueID  string
	Selector string

	// Operator overrides the value's comparison operator when non-empty.
	Operator Operator
}

// SetValue replaces a value's literal outright, taking precedence over any
// refine-value selector.
type SetValue struct {
	ValueID string
	Value   string
}

// Profile is a named tailoring of a benchmark: an ordered sequence of
// selectors and value directives, optionally extending another profile.
// Profiles are owned by the benchmark and referenced, never owned, by
// policies.
type Profile struct {
	// ID is the profile identifier, unique within the benchmark.
	ID string

	// Title is an optional human-readable title.
	Title string

	// Extends names the parent profile whose directives apply first, or
	// is empty for a root profile.
	Extends string

	// Selectors are applied in order after the extends chain.
	Selectors []Selector

	// RefineValues are value selector/operator overrides.
	RefineValues []RefineValue

	// SetValues are literal value overrides.
	SetValues []SetValue
}
