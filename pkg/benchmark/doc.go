// Package benchmark defines the in-memory policy document graph the
// evaluation engine operates on: a tree of groups, rules and tunable
// values, plus the profiles that tailor it.
//
// The package is a data contract, not a parser. Callers construct the
// graph programmatically (or via a converter from whatever serialized
// format they use) and hand it to pkg/policy read-only. The engine never
// mutates a benchmark during evaluation, so a single graph may be shared
// by any number of policies and goroutines.
package benchmark
