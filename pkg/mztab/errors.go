package mztab

import (
	"errors"
	"strings"
)

// Sentinel errors for common failure scenarios.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	res, err := parser.Parse(r, opts)
//	if errors.Is(err, mztab.ErrOverflow) {
//	    // Too many errors, no partial document
//	}
var (
	// ErrInvalidConfig indicates the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrInputNotFound indicates an input file does not exist or matched nothing.
	ErrInputNotFound = errors.New("input not found")

	// ErrUnreadableInput indicates the input could not be read or decoded.
	ErrUnreadableInput = errors.New("unreadable input")

	// ErrUnsupportedVersion indicates the declared mzTab-version is unparseable or unsupported.
	ErrUnsupportedVersion = errors.New("unsupported mzTab version")

	// ErrMissingSection indicates a mandatory section is absent from the document.
	ErrMissingSection = errors.New("missing mandatory section")

	// ErrOverflow indicates the accumulated error count exceeded the configured maximum.
	ErrOverflow = errors.New("error count overflow")

	// ErrInvalidLevel indicates an unrecognized severity level.
	ErrInvalidLevel = errors.New("invalid level")

	// ErrInvalidState indicates an operation was called in a state that forbids it.
	ErrInvalidState = errors.New("invalid state")

	// ErrInvalidArgument indicates an argument failed validation.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrUnsupportedOperation indicates the receiver does not support the operation.
	ErrUnsupportedOperation = errors.New("unsupported operation")

	// ErrLookupTimeout indicates the semantic validation pass ran out of time.
	ErrLookupTimeout = errors.New("term lookup timeout")

	// ErrLookupFailed indicates a single term lookup failed.
	ErrLookupFailed = errors.New("term lookup failed")

	// ErrTermNotFound indicates the ontology does not know a term.
	ErrTermNotFound = errors.New("term not found")

	// ErrValidationFailed indicates validation finished with Error-level messages.
	ErrValidationFailed = errors.New("validation failed")
)

// usagePatterns are cobra error prefixes that indicate command line misuse.
var usagePatterns = []string{
	"unknown flag",
	"unknown shorthand flag",
	"unknown command",
	"accepts ",
	"requires at least",
	"required flag",
	"invalid argument",
}

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrValidationFailed):
		return ExitValidationFailed
	case errors.Is(err, ErrInvalidConfig), errors.Is(err, ErrInvalidLevel):
		return ExitConfigError
	case errors.Is(err, ErrLookupTimeout):
		return ExitLookupTimeout
	case errors.Is(err, ErrOverflow):
		return ExitOverflow
	case errors.Is(err, ErrUnsupportedVersion),
		errors.Is(err, ErrMissingSection),
		errors.Is(err, ErrUnreadableInput):
		return ExitFatalDocument
	case errors.Is(err, ErrInputNotFound):
		return ExitInputMissing
	}

	msg := err.Error()
	for _, p := range usagePatterns {
		if strings.HasPrefix(msg, p) {
			return ExitUsageError
		}
	}

	return ExitGeneralError
}
