// Package metrics exposes Prometheus instrumentation for policy
// evaluation. All collectors register against a caller-supplied registry
// so embedding applications control the metrics endpoint.
package metrics
