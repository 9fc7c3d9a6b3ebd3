package selection

import "fmt"

// ConfigurationError indicates a profile that cannot be resolved against
// its benchmark: a broken extends chain or a directive referencing an item
// that does not exist. Resolution fails before any evaluation starts.
type ConfigurationError struct {
	// ProfileID is the profile being resolved.
	ProfileID string

	// Ref is the offending item or profile reference, when applicable.
	Ref string

	// Message describes the failure.
	Message string
}

// Error returns the error message.
func (e *ConfigurationError) Error() string {
	if e.Ref != "" {
		return fmt.Sprintf("profile %s: %s (ref %q)", e.ProfileID, e.Message, e.Ref)
	}
	return fmt.Sprintf("profile %s: %s", e.ProfileID, e.Message)
}
