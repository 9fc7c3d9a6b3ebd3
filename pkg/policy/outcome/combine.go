package outcome

// BoolOp is the operator a rule declares for combining the outcomes of its
// checks.
type BoolOp string

const (
	// OpAnd combines check outcomes with the AND truth table.
	OpAnd BoolOp = "AND"

	// OpOr combines check outcomes with the OR truth table.
	OpOr BoolOp = "OR"
)

// Valid reports whether the operator is AND or OR.
func (op BoolOp) Valid() bool {
	return op == OpAnd || op == OpOr
}

// tableIndex maps an outcome onto its row/column position in the truth
// tables. Fixed is folded into Pass before lookup, mirroring how a
// remediated rule contributes to combined verdicts.
var tableIndex = map[Outcome]int{
	Pass:          0,
	Fail:          1,
	Unknown:       2,
	Error:         3,
	NotApplicable: 4,
	NotChecked:    5,
	NotSelected:   6,
	Informational: 7,
}

// Shorthand aliases keep the table literals readable.
const (
	p = Pass
	f = Fail
	u = Unknown
	e = Error
	n = NotApplicable
	k = NotChecked
	s = NotSelected
	i = Informational
)

// andTable is NISTIR-7275r4 Table 12. Rows are the first operand, columns
// the second, both in tableIndex order (P F U E N K S I).
var andTable = [8][8]Outcome{
	{p, f, u, e, p, p, p, p},
	{f, f, f, f, f, f, f, f},
	{u, f, u, u, u, u, u, u},
	{e, f, u, e, e, e, e, e},
	{p, f, u, e, n, n, n, n},
	{p, f, u, e, n, k, k, k},
	{p, f, u, e, n, k, s, s},
	{p, f, u, e, n, k, s, i},
}

// orTable is NISTIR-7275r4 Table 13, laid out like andTable.
var orTable = [8][8]Outcome{
	{p, p, p, p, p, p, p, p},
	{p, f, u, e, f, f, f, f},
	{p, u, u, u, u, u, u, u},
	{p, e, u, e, e, e, e, e},
	{p, f, u, e, n, n, n, n},
	{p, f, u, e, n, k, k, k},
	{p, f, u, e, n, k, s, s},
	{p, f, u, e, n, k, s, i},
}

func lookupIndex(o Outcome) (int, bool) {
	if o == Fixed {
		o = Pass
	}
	idx, ok := tableIndex[o]
	return idx, ok
}

// And returns the combined verdict of a AND b per Table 12. Operands
// outside the defined outcome set degrade to Unknown.
func And(a, b Outcome) Outcome {
	ia, okA := lookupIndex(a)
	ib, okB := lookupIndex(b)
	if !okA || !okB {
		return Unknown
	}
	return andTable[ia][ib]
}

// Or returns the combined verdict of a OR b per Table 13. Operands outside
// the defined outcome set degrade to Unknown.
func Or(a, b Outcome) Outcome {
	ia, okA := lookupIndex(a)
	ib, okB := lookupIndex(b)
	if !okA || !okB {
		return Unknown
	}
	return orTable[ia][ib]
}

// Combine folds a sequence of check outcomes under the given operator.
// An empty sequence yields NotChecked: a rule whose checks all went
// undispatched has not been checked.
func Combine(op BoolOp, outcomes []Outcome) Outcome {
	if len(outcomes) == 0 {
		return NotChecked
	}
	acc := outcomes[0]
	for _, o := range outcomes[1:] {
		if op == OpOr {
			acc = Or(acc, o)
		} else {
			acc = And(acc, o)
		}
	}
	return acc
}
