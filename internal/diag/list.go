package diag

import (
	"fmt"

	"github.com/vvka-141/mztabm/pkg/mztab"
)

// OverflowError is returned by List.Add once the list is full.
type OverflowError struct {
	Max int
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf("more than %d errors", e.Max)
}

// Unwrap lets callers match with errors.Is(err, mztab.ErrOverflow).
func (e *OverflowError) Unwrap() error {
	return mztab.ErrOverflow
}

// Terminal returns the single diagnostic that describes the overflow.
func (e *OverflowError) Terminal() Diagnostic {
	return New(Overflow, NoLine, e.Max)
}

// List accumulates diagnostics up to a maximum size.
// A List is not safe for concurrent use; each parse owns its own.
type List struct {
	max      int
	items    []Diagnostic
	overflow *OverflowError
}

// NewList creates a list holding at most max diagnostics. The bound is on
// list size, so Info and Warn entries count toward it like errors do.
// A max of zero or less means unbounded.
func NewList(max int) *List {
	return &List{max: max}
}

// Add appends e unless the list is full. When full, the overflow is
// recorded, nothing is appended and an *OverflowError is returned; the
// caller must stop processing.
func (l *List) Add(e Diagnostic) error {
	if l.overflow != nil {
		return l.overflow
	}
	if l.max > 0 && len(l.items) >= l.max {
		l.overflow = &OverflowError{Max: l.max}
		return l.overflow
	}
	l.items = append(l.items, e)
	return nil
}

// AddAll appends each diagnostic in order, stopping at the first overflow.
func (l *List) AddAll(errs []Diagnostic) error {
	for _, e := range errs {
		if err := l.Add(e); err != nil {
			return err
		}
	}
	return nil
}

// Len returns the number of accumulated diagnostics.
func (l *List) Len() int {
	return len(l.items)
}

// Max returns the configured bound (0 when unbounded).
func (l *List) Max() int {
	return l.max
}

// Overflowed reports whether an Add has been refused.
func (l *List) Overflowed() bool {
	return l.overflow != nil
}

// Items returns a copy of the accumulated diagnostics in insertion order.
func (l *List) Items() []Diagnostic {
	out := make([]Diagnostic, len(l.items))
	copy(out, l.items)
	return out
}

// Filter returns the diagnostics at or above level, in insertion order.
func (l *List) Filter(level Level) ([]Diagnostic, error) {
	return Filter(l.items, level)
}

// HasErrors reports whether any Error-level diagnostic was accumulated.
func (l *List) HasErrors() bool {
	return Count(l.items, Error) > 0
}

// Filter returns the entries of errs at or above level. Requesting Info
// returns everything, requesting Error only errors. An unknown level fails
// with mztab.ErrInvalidLevel.
func Filter(errs []Diagnostic, level Level) ([]Diagnostic, error) {
	if !level.Valid() {
		return nil, fmt.Errorf("%w: %d", mztab.ErrInvalidLevel, int(level))
	}
	out := make([]Diagnostic, 0, len(errs))
	for _, e := range errs {
		if e.Level >= level {
			out = append(out, e)
		}
	}
	return out, nil
}

// Count returns how many entries of errs are exactly at level.
func Count(errs []Diagnostic, level Level) int {
	n := 0
	for _, e := range errs {
		if e.Level == level {
			n++
		}
	}
	return n
}
