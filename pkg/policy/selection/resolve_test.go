package selection

import (
	"errors"
	"testing"

	"veritor-hq/veritor/pkg/benchmark"
)

func testBenchmark() *benchmark.Benchmark {
	r1 := benchmark.NewRule("r1").WithCheck(benchmark.Check{System: "urn:test:sys"})
	r2 := benchmark.NewRule("r2").WithCheck(benchmark.Check{System: "urn:test:sys"})
	r2.Selected = false
	v1 := benchmark.NewValue("v1", "22").WithSelector("strict", "2222")

	b := benchmark.New("bench").Append(
		benchmark.NewGroup("g1").Append(r1, v1),
		r2,
	)
	b.AddProfile(&benchmark.Profile{
		ID: "P0",
		Selectors: []benchmark.Selector{
			{ItemID: "r1", Selected: true},
			{ItemID: "r2", Selected: true},
		},
	})
	b.AddProfile(&benchmark.Profile{
		ID:      "P1",
		Extends: "P0",
		Selectors: []benchmark.Selector{
			{ItemID: "r1", Selected: false},
		},
		RefineValues: []benchmark.RefineValue{
			{ValueID: "v1", Selector: "strict", Operator: benchmark.OperatorGreaterThan},
		},
	})
	b.AddProfile(&benchmark.Profile{
		ID:      "P2",
		Extends: "P1",
		SetValues: []benchmark.SetValue{
			{ValueID: "v1", Value: "42"},
		},
	})
	return b
}

func TestResolve_DefaultsOnly(t *testing.T) {
	b := testBenchmark()

	res, err := Resolve(b, "")
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}

	rules := res.SelectedRules(b)
	if len(rules) != 1 || rules[0].ID != "r1" {
		t.Errorf("defaults-only selection = %v, want [r1]", ruleIDs(rules))
	}
}

func TestResolve_RootProfile(t *testing.T) {
	b := testBenchmark()

	res, err := Resolve(b, "P0")
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}

	rules := res.SelectedRules(b)
	if len(rules) != 2 {
		t.Errorf("P0 selection = %v, want [r1 r2]", ruleIDs(rules))
	}
}

// TestResolve_NearestWins covers the layered-profile scenario: P1 extends
// P0, P0 selects r1, P1 deselects it. The most specific profile governs.
func TestResolve_NearestWins(t *testing.T) {
	b := testBenchmark()

	res, err := Resolve(b, "P1")
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}

	if res.IsSelected(b.Rule("r1")) {
		t.Error("P1 deselects r1, but resolution reports it selected")
	}
	if !res.IsSelected(b.Rule("r2")) {
		t.Error("r2 selection inherited from P0 should survive")
	}

	rules := res.SelectedRules(b)
	if len(rules) != 1 || rules[0].ID != "r2" {
		t.Errorf("P1 selection = %v, want [r2]", ruleIDs(rules))
	}
}

func TestResolve_ValueDirectives(t *testing.T) {
	b := testBenchmark()

	res, err := Resolve(b, "P1")
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	ov, ok := res.ValueOverride("v1")
	if !ok {
		t.Fatal("expected a value override for v1")
	}
	if ov.Selector != "strict" {
		t.Errorf("Selector = %q, want strict", ov.Selector)
	}
	if ov.Operator != benchmark.OperatorGreaterThan {
		t.Errorf("Operator = %q, want greater-than", ov.Operator)
	}
	if ov.SetValue != nil {
		t.Errorf("SetValue = %v, want nil", *ov.SetValue)
	}

	// P2 layers a set-value on top; it must take precedence downstream
	// while keeping the inherited refine-value selector.
	res, err = Resolve(b, "P2")
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	ov, ok = res.ValueOverride("v1")
	if !ok {
		t.Fatal("expected a value override for v1")
	}
	if ov.SetValue == nil || *ov.SetValue != "42" {
		t.Errorf("SetValue = %v, want 42", ov.SetValue)
	}
	if ov.Selector != "strict" {
		t.Errorf("inherited Selector = %q, want strict", ov.Selector)
	}
}

// TestResolve_Idempotent re-resolves a profile with an empty extends chain
// and expects identical selection both times.
func TestResolve_Idempotent(t *testing.T) {
	b := testBenchmark()

	first, err := Resolve(b, "P0")
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	second, err := Resolve(b, "P0")
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}

	a, c := ruleIDs(first.SelectedRules(b)), ruleIDs(second.SelectedRules(b))
	if len(a) != len(c) {
		t.Fatalf("re-resolution changed selection: %v vs %v", a, c)
	}
	for i := range a {
		if a[i] != c[i] {
			t.Errorf("re-resolution changed selection: %v vs %v", a, c)
		}
	}
}

func TestResolve_ConfigurationErrors(t *testing.T) {
	b := testBenchmark()
	b.AddProfile(&benchmark.Profile{ID: "broken-extends", Extends: "ghost"})
	b.AddProfile(&benchmark.Profile{
		ID:        "dangling-selector",
		Selectors: []benchmark.Selector{{ItemID: "ghost", Selected: true}},
	})
	b.AddProfile(&benchmark.Profile{ID: "cycle-a", Extends: "cycle-b"})
	b.AddProfile(&benchmark.Profile{ID: "cycle-b", Extends: "cycle-a"})

	for _, profileID := range []string{"missing", "broken-extends", "dangling-selector", "cycle-a"} {
		t.Run(profileID, func(t *testing.T) {
			_, err := Resolve(b, profileID)
			var cfgErr *ConfigurationError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("Resolve(%q) error = %v, want *ConfigurationError", profileID, err)
			}
		})
	}
}

func ruleIDs(rules []*benchmark.Rule) []string {
	ids := make([]string, len(rules))
	for i, r := range rules {
		ids[i] = r.ID
	}
	return ids
}
