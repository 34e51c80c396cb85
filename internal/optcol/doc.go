// Package optcol builds and recognizes optional column identifiers.
//
// An optional column is either document-wide or scoped to one indexed
// metadata element, and is named either by a free name or by a CV parameter:
//
//	opt_global_<name>
//	opt_global_cv_<accession>_<slug>
//	opt_<kind>[<index>]_<name>
//	opt_<kind>[<index>]_cv_<accession>_<slug>
//
// The same identifiers are produced when writing and accepted when reading.
package optcol
