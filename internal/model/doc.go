// Package model holds the in-memory form of an mzTab-M document: the
// metadata graph of indexed elements, CV parameters and the tabular
// sections with their headers and records.
//
// Elements are identified by kind and author-assigned index only. Every
// element type implements Indexed directly (index, stable hash, display
// string); Ref is the thin stand-in for code that knows nothing more than
// a kind and an index.
package model
