package tailoring

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"veritor-hq/veritor/pkg/benchmark"
)

// Document is a tailoring overlay: site-local profiles layered onto an
// existing benchmark without modifying the benchmark document itself.
type Document struct {
	// Benchmark optionally pins the overlay to one benchmark id.
	// Apply rejects a mismatch.
	Benchmark string `yaml:"benchmark"`

	// Profiles are the overlay profiles, applied in order.
	Profiles []ProfileOverlay `yaml:"profiles"`
}

// ProfileOverlay is the YAML form of one tailored profile.
type ProfileOverlay struct {
	ID      string `yaml:"id"`
	Title   string `yaml:"title"`
	Extends string `yaml:"extends"`

	Selections   []SelectionOverlay `yaml:"selections"`
	RefineValues []RefineOverlay    `yaml:"refine_values"`
	SetValues    []SetValueOverlay  `yaml:"set_values"`
}

// SelectionOverlay toggles one item's selection.
type SelectionOverlay struct {
	Item     string `yaml:"item"`
	Selected bool   `yaml:"selected"`
}

// RefineOverlay retargets a value's selector or comparison operator.
type RefineOverlay struct {
	Value    string `yaml:"value"`
	Selector string `yaml:"selector"`
	Operator string `yaml:"operator"`
}

// SetValueOverlay pins a value to a literal.
type SetValueOverlay struct {
	Value string `yaml:"value"`
	To    string `yaml:"to"`
}

// Parse decodes and validates an overlay document.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("tailoring: failed to parse overlay: %w", err)
	}
	if err := doc.validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Load reads and parses an overlay file.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("tailoring: failed to read overlay file %q: %w", path, err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("tailoring: %q: %w", path, err)
	}
	return doc, nil
}

func (d *Document) validate() error {
	seen := make(map[string]bool, len(d.Profiles))
	for i, p := range d.Profiles {
		if p.ID == "" {
			return fmt.Errorf("tailoring: profile %d has no id", i)
		}
		if seen[p.ID] {
			return fmt.Errorf("tailoring: duplicate profile id %q", p.ID)
		}
		seen[p.ID] = true
		for _, rv := range p.RefineValues {
			if rv.Value == "" {
				return fmt.Errorf("tailoring: profile %q has a refine-value without a value id", p.ID)
			}
			if rv.Operator != "" && !benchmark.Operator(rv.Operator).Valid() {
				return fmt.Errorf("tailoring: profile %q refines %q with unknown operator %q", p.ID, rv.Value, rv.Operator)
			}
		}
		for _, sv := range p.SetValues {
			if sv.Value == "" {
				return fmt.Errorf("tailoring: profile %q has a set-value without a value id", p.ID)
			}
		}
	}
	return nil
}

// Apply layers the overlay profiles onto a benchmark. An overlay profile
// whose id matches an existing profile replaces it; others are appended.
// Dangling item and value references surface later, during profile
// resolution.
func (d *Document) Apply(b *benchmark.Benchmark) error {
	if d.Benchmark != "" && d.Benchmark != b.ID {
		return fmt.Errorf("tailoring: overlay targets benchmark %q, got %q", d.Benchmark, b.ID)
	}

	for _, overlay := range d.Profiles {
		b.SetProfile(overlay.toProfile())
	}
	return nil
}

func (p *ProfileOverlay) toProfile() *benchmark.Profile {
	out := &benchmark.Profile{
		ID:      p.ID,
		Title:   p.Title,
		Extends: p.Extends,
	}
	for _, s := range p.Selections {
		out.Selectors = append(out.Selectors, benchmark.Selector{
			ItemID:   s.Item,
			Selected: s.Selected,
		})
	}
	for _, rv := range p.RefineValues {
		out.RefineValues = append(out.RefineValues, benchmark.RefineValue{
			ValueID:  rv.Value,
			Selector: rv.Selector,
			Operator: benchmark.Operator(rv.Operator),
		})
	}
	for _, sv := range p.SetValues {
		out.SetValues = append(out.SetValues, benchmark.SetValue{
			ValueID: sv.Value,
			Value:   sv.To,
		})
	}
	return out
}
