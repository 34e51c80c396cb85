// Package checksum computes content checksums of mzTab-M files and derives
// a stable document identity from them.
//
// Two checksums are kept:
//
//   - Raw: SHA-256 of the exact bytes.
//   - Normalized: SHA-256 after dropping layout that carries no meaning
//     (byte order mark, CR line endings, COM lines, blank lines and
//     whitespace around tab-separated fields).
//
// DocumentID maps a normalized checksum to a UUID v5, so two files that
// differ only in layout get the same identity in reports.
//
//	calc := checksum.New()
//	sum := calc.CalculateNormalized(content)
//	id := checksum.DocumentID(sum)
//
// SHA256 is safe for concurrent use.
package checksum
