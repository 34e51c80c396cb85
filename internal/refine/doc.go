// Package refine holds the post-parse validators that need the whole
// metadata graph: cross-references between elements, conditional mandatory
// keys and per-kind completeness rules.
//
// Each Refiner owns one element kind, has no side effects and reports in
// ascending index order, then by property path. Run invokes the fixed set
// returned by All.
package refine
