package benchmark

// ValueType is the declared type of a tunable value.
type ValueType string

const (
	// TypeString is a free-form string value.
	TypeString ValueType = "string"

	// TypeBoolean is a true/false value.
	TypeBoolean ValueType = "boolean"

	// TypeNumber is a numeric value.
	TypeNumber ValueType = "number"
)

// Operator is the comparison a checking engine applies between a bound
// value and the observed system state.
type Operator string

const (
	OperatorEquals       Operator = "equals"
	OperatorNotEqual     Operator = "not-equal"
	OperatorGreaterThan  Operator = "greater-than"
	OperatorLessThan     Operator = "less-than"
	OperatorPatternMatch Operator = "pattern-match"
)

// Valid reports whether the operator is one of the defined comparisons.
func (op Operator) Valid() bool {
	switch op {
	case OperatorEquals, OperatorNotEqual, OperatorGreaterThan, OperatorLessThan, OperatorPatternMatch:
		return true
	}
	return false
}

// Value is a named tunable consumed by checks. A value may carry several
// candidate literals keyed by selector; profiles pick one via refine-value
// or override the literal entirely via set-value.
type Value struct {
	Meta

	// Type is the declared value type.
	Type ValueType

	// Operator is the default comparison operator.
	Operator Operator

	// Default is the literal used when no selector applies.
	Default string

	// Selectors holds alternative literals keyed by selector name.
	Selectors map[string]string
}

// NewValue creates a string-typed value with the equals operator.
func NewValue(id, def string) *Value {
	return &Value{
		Meta:     Meta{ID: id, Weight: 1, Selected: true},
		Type:     TypeString,
		Operator: OperatorEquals,
		Default:  def,
	}
}

// Kind returns KindValue.
func (v *Value) Kind() Kind { return KindValue }

// WithSelector registers an alternative literal under the given selector
// name and returns the value for chaining.
func (v *Value) WithSelector(selector, literal string) *Value {
	if v.Selectors == nil {
		v.Selectors = make(map[string]string)
	}
	v.Selectors[selector] = literal
	return v
}

// Literal resolves the effective literal for a selector. An empty or
// unknown selector falls back to the default literal.
func (v *Value) Literal(selector string) string {
	if selector != "" {
		if lit, ok := v.Selectors[selector]; ok {
			return lit
		}
	}
	return v.Default
}
