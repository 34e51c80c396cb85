// Package writer serializes a parsed mzTab-M document back to text in
// canonical form: metadata in a fixed key order with ascending indices,
// comments after the metadata block, then each table section.
package writer
