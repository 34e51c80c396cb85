package mztab

import "time"

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error / validation found errors
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess          = 0  // Validation completed without Error-level messages
	ExitGeneralError     = 1  // Unknown or unclassified error
	ExitValidationFailed = 1  // At least one Error-level message was reported
	ExitUsageError       = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic            = 3  // Internal panic (unexpected crash)
	ExitConfigError      = 10 // Invalid configuration or level
	ExitLookupTimeout    = 11 // Semantic validation timed out waiting for term lookups
	ExitOverflow         = 12 // Too many errors, processing aborted
	ExitFatalDocument    = 13 // Unreadable input, unsupported version or missing section
	ExitInputMissing     = 14 // Input file not found
)

const (
	// SupportedMajorVersion is the mzTab major version this module understands.
	SupportedMajorVersion = 2

	// VersionSuffix marks the metabolomics flavour of the format ("2.0.0-M").
	VersionSuffix = "-M"

	// SupportedVersion is the full version string written by this module.
	SupportedVersion = "2.0.0-M"

	// DefaultMaxErrorCount is the default bound on accumulated errors before overflow.
	DefaultMaxErrorCount = 300

	// DefaultLevel is the default reporting level.
	DefaultLevel = "info"

	// DefaultEncoding is the default input encoding.
	DefaultEncoding = "UTF-8"

	// DefaultTimeout bounds a whole validation pass including term lookups.
	DefaultTimeout = 2 * time.Minute

	// DefaultConcurrency bounds parallel files and parallel term lookups.
	DefaultConcurrency = 8

	// DefaultRetryInitialDelay is the default initial delay before the first lookup retry.
	DefaultRetryInitialDelay = 200 * time.Millisecond

	// DefaultRetryMaxDelay is the default maximum delay between lookup retries.
	DefaultRetryMaxDelay = 10 * time.Second

	// DefaultRetryMaxAttempts is the default maximum number of lookup retries.
	DefaultRetryMaxAttempts = 3

	// DefaultCacheTTL is how long cached ontology answers stay valid.
	DefaultCacheTTL = 24 * time.Hour

	// UnboundedDepth requests an ancestor walk until no parent remains.
	UnboundedDepth = -1
)
