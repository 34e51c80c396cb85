package retry

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"syscall"

	"github.com/jackc/pgx/v5/pgconn"
)

// Postgres SQLSTATE classes and codes worth retrying.
// See https://www.postgresql.org/docs/current/errcodes-appendix.html
var (
	pgTransientClasses = []string{"08", "53", "57"}
	pgTransientCodes   = map[string]bool{
		"40001": true, // serialization_failure
		"40P01": true, // deadlock_detected
		"55P03": true, // lock_not_available
	}
)

// Substrings of driver errors that surface without a typed cause.
var transientMessages = []string{
	"connection refused",
	"connection reset",
	"connection timeout",
	"network is unreachable",
	"i/o timeout",
	"broken pipe",
	"too many connections",
	"server closed the connection",
	"unexpected eof",
	"connection pool exhausted",
}

// PostgresClassifier recognizes transient errors of the Postgres term store.
type PostgresClassifier struct{}

func NewPostgresClassifier() *PostgresClassifier {
	return &PostgresClassifier{}
}

func (c *PostgresClassifier) IsTransient(err error) bool {
	if err == nil || isCancellation(err) {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgTransientCodes[pgErr.Code] {
			return true
		}
		for _, class := range pgTransientClasses {
			if strings.HasPrefix(pgErr.Code, class) {
				return true
			}
		}
		return false
	}
	return isNetworkError(err) || hasTransientMessage(err)
}

// StatusError reports an unexpected HTTP status from an ontology service.
type StatusError struct {
	Code int
	URL  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: unexpected status %d %s", e.URL, e.Code, http.StatusText(e.Code))
}

// HTTPClassifier recognizes transient errors of HTTP ontology services:
// network failures, 408, 429 and 5xx responses other than 501.
type HTTPClassifier struct{}

func NewHTTPClassifier() *HTTPClassifier {
	return &HTTPClassifier{}
}

func (c *HTTPClassifier) IsTransient(err error) bool {
	if err == nil || isCancellation(err) {
		return false
	}
	var status *StatusError
	if errors.As(err, &status) {
		switch {
		case status.Code == http.StatusRequestTimeout, status.Code == http.StatusTooManyRequests:
			return true
		case status.Code == http.StatusNotImplemented:
			return false
		default:
			return status.Code >= 500
		}
	}
	return isNetworkError(err) || hasTransientMessage(err)
}

func isCancellation(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

func isNetworkError(err error) bool {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return dnsErr.Temporary() || dnsErr.Timeout()
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		if opErr.Timeout() {
			return true
		}
		for _, errno := range []syscall.Errno{syscall.ECONNREFUSED, syscall.ECONNRESET, syscall.ENETUNREACH, syscall.EHOSTUNREACH} {
			if errors.Is(opErr.Err, errno) {
				return true
			}
		}
	}
	return false
}

func hasTransientMessage(err error) bool {
	msg := strings.ToLower(err.Error())
	for _, pattern := range transientMessages {
		if strings.Contains(msg, pattern) {
			return true
		}
	}
	return false
}
