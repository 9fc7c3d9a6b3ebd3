// Package logging builds the structured slog logger shared by the
// evaluation stack. Components receive a *slog.Logger and attach their
// own identifying attributes with With.
package logging
