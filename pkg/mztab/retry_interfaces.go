package mztab

import "time"

// ErrorClassifier separates transient lookup failures (timeouts, HTTP 429
// and 5xx, dropped database connections) from permanent ones.
type ErrorClassifier interface {
	IsTransient(err error) bool
}

// BackoffStrategy spaces out retries of a failed ontology lookup.
type BackoffStrategy interface {
	// NextDelay returns the wait before retry number attempt, counted from 0.
	NextDelay(attempt int) time.Duration

	// MaxAttempts bounds the retries after the first try. 0 disables
	// retrying; a negative value retries until the context ends.
	MaxAttempts() int
}
