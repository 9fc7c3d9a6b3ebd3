// Package tailoring layers site-local profile overlays onto a benchmark
// from YAML files, with optional hot reload via a filesystem watcher.
package tailoring
