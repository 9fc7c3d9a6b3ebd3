package outcome

import "testing"

// TestAnd_TableEntries verifies exact entries of the AND truth table rather
// than an assumed ordering. Pass is not an identity for AND in general.
func TestAnd_TableEntries(t *testing.T) {
	tests := []struct {
		name string
		a, b Outcome
		want Outcome
	}{
		{"pass and pass", Pass, Pass, Pass},
		{"pass and fail", Pass, Fail, Fail},
		{"pass and error", Pass, Error, Error},
		{"pass and unknown", Pass, Unknown, Unknown},
		{"pass and notapplicable", Pass, NotApplicable, Pass},
		{"pass and notchecked", Pass, NotChecked, Pass},
		{"pass and informational", Pass, Informational, Pass},
		{"fail dominates error", Error, Fail, Fail},
		{"fail dominates unknown", Unknown, Fail, Fail},
		{"error and unknown yields unknown", Error, Unknown, Unknown},
		{"unknown and error yields unknown", Unknown, Error, Unknown},
		{"error and notchecked", Error, NotChecked, Error},
		{"notapplicable and notapplicable", NotApplicable, NotApplicable, NotApplicable},
		{"notchecked and notselected", NotChecked, NotSelected, NotChecked},
		{"notselected and informational", NotSelected, Informational, NotSelected},
		{"fixed folds into pass", Fixed, Fail, Fail},
		{"fixed and notapplicable", Fixed, NotApplicable, Pass},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := And(tt.a, tt.b); got != tt.want {
				t.Errorf("And(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestOr_TableEntries(t *testing.T) {
	tests := []struct {
		name string
		a, b Outcome
		want Outcome
	}{
		{"pass or fail", Pass, Fail, Pass},
		{"pass or error", Pass, Error, Pass},
		{"fail or unknown", Fail, Unknown, Unknown},
		{"fail or error", Fail, Error, Error},
		{"error or unknown yields unknown", Error, Unknown, Unknown},
		{"unknown or error yields unknown", Unknown, Error, Unknown},
		{"fail or notchecked", Fail, NotChecked, Fail},
		{"notapplicable or notchecked", NotApplicable, NotChecked, NotApplicable},
		{"notselected or informational", NotSelected, Informational, NotSelected},
		{"fixed or fail", Fixed, Fail, Pass},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Or(tt.a, tt.b); got != tt.want {
				t.Errorf("Or(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

// TestCommutativity checks that both tables are symmetric over the defined
// outcome set.
func TestCommutativity(t *testing.T) {
	all := []Outcome{Pass, Fail, Error, Unknown, NotApplicable, NotChecked, NotSelected, Informational, Fixed}
	for _, a := range all {
		for _, b := range all {
			if And(a, b) != And(b, a) {
				t.Errorf("And not commutative for (%v, %v): %v vs %v", a, b, And(a, b), And(b, a))
			}
			if Or(a, b) != Or(b, a) {
				t.Errorf("Or not commutative for (%v, %v): %v vs %v", a, b, Or(a, b), Or(b, a))
			}
		}
	}
}

func TestCombine(t *testing.T) {
	tests := []struct {
		name     string
		op       BoolOp
		outcomes []Outcome
		want     Outcome
	}{
		{"empty yields notchecked", OpAnd, nil, NotChecked},
		{"single passthrough", OpAnd, []Outcome{Fail}, Fail},
		{"and pass fail", OpAnd, []Outcome{Pass, Fail}, Fail},
		{"and pass pass pass", OpAnd, []Outcome{Pass, Pass, Pass}, Pass},
		{"and pass error fail", OpAnd, []Outcome{Pass, Error, Fail}, Fail},
		{"or fail pass", OpOr, []Outcome{Fail, Pass}, Pass},
		{"or fail error", OpOr, []Outcome{Fail, Error}, Error},
		{"or notchecked notchecked", OpOr, []Outcome{NotChecked, NotChecked}, NotChecked},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Combine(tt.op, tt.outcomes); got != tt.want {
				t.Errorf("Combine(%v, %v) = %v, want %v", tt.op, tt.outcomes, got, tt.want)
			}
		})
	}
}

func TestParseRoundTrip(t *testing.T) {
	all := []Outcome{Pass, Fail, Error, Unknown, NotApplicable, NotChecked, NotSelected, Informational, Fixed}
	for _, o := range all {
		got, err := Parse(o.String())
		if err != nil {
			t.Fatalf("Parse(%q) error: %v", o.String(), err)
		}
		if got != o {
			t.Errorf("Parse(%q) = %v, want %v", o.String(), got, o)
		}
	}

	if _, err := Parse("bogus"); err == nil {
		t.Error("Parse(\"bogus\") expected error, got nil")
	}
}

func TestScorable(t *testing.T) {
	scorable := []Outcome{Pass, Fail, Fixed}
	excluded := []Outcome{Error, Unknown, NotApplicable, NotChecked, NotSelected, Informational}

	for _, o := range scorable {
		if !o.Scorable() {
			t.Errorf("%v should be scorable", o)
		}
	}
	for _, o := range excluded {
		if o.Scorable() {
			t.Errorf("%v should not be scorable", o)
		}
	}

	if !Fixed.Passed() {
		t.Error("Fixed should count as a passing verdict")
	}
	if Fail.Passed() {
		t.Error("Fail should not count as a passing verdict")
	}
}
