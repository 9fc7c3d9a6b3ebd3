package benchmark

// Group is an organizational node owning an ordered sequence of child
// items. Grouping is not gating: a group's own selection flag never
// suppresses its rule descendants.
type Group struct {
	Meta

	// Children is the ordered child sequence (rules, groups, values).
	Children []Item
}

// NewGroup creates a group with default weight 1 and selected-by-default.
func NewGroup(id string) *Group {
	return &Group{Meta: Meta{ID: id, Weight: 1, Selected: true}}
}

// Kind returns KindGroup.
func (g *Group) Kind() Kind { return KindGroup }

// Append adds child items in order and sets their parent back-reference.
// It returns the group for chaining.
func (g *Group) Append(items ...Item) *Group {
	for _, it := range items {
		switch v := it.(type) {
		case *Group:
			v.parent = g
		case *Rule:
			v.parent = g
		case *Value:
			v.parent = g
		}
		g.Children = append(g.Children, it)
	}
	return g
}
