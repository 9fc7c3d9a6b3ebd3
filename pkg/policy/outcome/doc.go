// Package outcome defines the per-rule and per-check verdict type produced
// by checking engines, together with the boolean combination algebra used
// when a rule carries more than one check.
//
// The AND and OR operations are not derived from a priority ordering. They
// encode the full pairwise truth tables published in NISTIR-7275r4
// ("Table 12: Truth Table for AND" and "Table 13: Truth Table for OR")
// verbatim, because the published tables are not expressible as a total
// order over the outcome set (for example, AND(Error, Unknown) yields
// Unknown, not Error).
package outcome
