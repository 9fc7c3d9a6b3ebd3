package benchmark

// ContentRef points at check content addressable by a checking engine:
// an href naming the content document and an optional name selecting a
// single check inside it.
type ContentRef struct {
	Href string
	Name string
}

// Export maps a benchmark value onto the variable name a checking engine
// expects for it.
type Export struct {
	// ValueID references a Value item in the benchmark.
	ValueID string

	// ExternalName is the engine-side variable name.
	ExternalName string
}

// Check binds a rule to one evaluation by an external checking engine.
type Check struct {
	// System is the checking-system URI identifying which registered
	// engine interprets the content.
	System string

	// ID is an optional external check identifier.
	ID string

	// ContentRef locates the check content the engine should evaluate.
	ContentRef ContentRef

	// Negate inverts a Pass/Fail verdict after evaluation.
	Negate bool

	// Exports lists the value bindings handed to the engine.
	Exports []Export
}
