// Package score computes weighted compliance scores from a policy's
// result batch under a named scoring system.
//
// Scorable rules are those whose outcome is Pass or Fail (Fixed counts as
// Pass). NotApplicable, NotChecked, NotSelected, Informational, Error and
// Unknown results carry no weight in any system. A batch with zero
// scorable rules scores 0 under every system; this is the documented
// sentinel, not an error.
package score
