package mztab

// Logger receives progress and failure messages from parsing, validation and
// ontology lookups. Messages are printf-style. Implementations must be safe
// for concurrent use: files and term lookups are processed in parallel.
type Logger interface {
	// Verbose is for detail shown only with --verbose.
	Verbose(format string, args ...interface{})

	Info(format string, args ...interface{})

	Error(format string, args ...interface{})
}
