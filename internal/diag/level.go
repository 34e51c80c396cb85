package diag

import (
	"fmt"
	"strings"

	"github.com/vvka-141/mztabm/pkg/mztab"
)

// Level is the severity of a diagnostic. Higher is more severe.
type Level int

const (
	Info Level = iota
	Warn
	Error
)

// String returns the string representation of the level
func (l Level) String() string {
	switch l {
	case Info:
		return "info"
	case Warn:
		return "warn"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// Valid reports whether l is one of the known levels.
func (l Level) Valid() bool {
	return l >= Info && l <= Error
}

// MarshalText implements encoding.TextMarshaler so levels render as names in JSON and YAML.
func (l Level) MarshalText() ([]byte, error) {
	if !l.Valid() {
		return nil, fmt.Errorf("%w: %d", mztab.ErrInvalidLevel, int(l))
	}
	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Level) UnmarshalText(text []byte) error {
	parsed, err := ParseLevel(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// ParseLevel converts a level name ("info", "warn", "warning", "error"),
// case-insensitively, into a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "info":
		return Info, nil
	case "warn", "warning":
		return Warn, nil
	case "error":
		return Error, nil
	}
	return Info, fmt.Errorf("%w: %q (expected info, warn or error)", mztab.ErrInvalidLevel, s)
}

// Category groups diagnostic types by the stage that produces them.
type Category string

const (
	CategoryFormat     Category = "format"
	CategoryLogical    Category = "logical"
	CategoryCrossCheck Category = "crosscheck"
	CategorySemantic   Category = "semantic"
	CategoryOverflow   Category = "overflow"
)
