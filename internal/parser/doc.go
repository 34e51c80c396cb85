// Package parser reads mzTab-M text into a model.Document.
//
// Parsing is a single pass over the input driven by a small state machine
// (metadata, then SMH/SML, SFH/SMF and SEH/SME sections). Malformed lines,
// fields and cells are recorded as diagnostics and parsing continues; only
// the conditions below abort without a document:
//
//   - unreadable input or an unknown encoding (mztab.ErrUnreadableInput)
//   - an unparseable or unsupported mzTab-version (mztab.ErrUnsupportedVersion)
//   - no MTD or no SMH section (mztab.ErrMissingSection)
//   - more diagnostics than the configured maximum (mztab.ErrOverflow)
//
// Each call to Parse owns its Context; parses share no state and may run
// concurrently.
package parser
