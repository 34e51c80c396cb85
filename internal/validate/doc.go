// Package validate runs the full validation pipeline on mzTab-M files:
// parse, refine the metadata graph, optionally check CV mapping rules,
// then filter by reporting level. Files are validated concurrently and
// share no mutable state.
package validate
