// Package config defines the YAML configuration surface for embedding
// applications: telemetry, result history persistence, the re-evaluation
// scheduler, tailoring overlays and score system selection.
//
// Loading sequence:
//
//  1. Parse YAML from file
//  2. Apply default values
//  3. Apply VERITOR_* environment variable overrides (optional)
//  4. Validate the final configuration
package config
