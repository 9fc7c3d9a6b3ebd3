// Package selection merges a profile's selectors and value directives with
// benchmark defaults into the final selected-rule set and per-rule value
// tailoring.
//
// Resolution walks the profile's extends chain from the root ancestor to
// the most specific profile, so the nearest profile wins on conflict. A
// group's own selection flag never gates its rule descendants; only rule
// selectors (or item defaults) decide whether a rule is evaluated.
package selection
