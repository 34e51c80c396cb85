package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrRefSyntax reports an element reference that is not kind[index].
var ErrRefSyntax = errors.New("element reference must be kind[index]")

// ParseRef parses an element reference such as "ms_run[2]". When want is
// non-empty the reference must be of that kind.
func ParseRef(s string, want Kind) (Ref, error) {
	s = strings.TrimSpace(s)
	open := strings.IndexByte(s, '[')
	if open <= 0 || !strings.HasSuffix(s, "]") {
		return Ref{}, fmt.Errorf("%w: %q", ErrRefSyntax, s)
	}
	kind, ok := ParseKind(s[:open])
	if !ok || (want != "" && kind != want) {
		return Ref{}, fmt.Errorf("%w: %q", ErrRefSyntax, s)
	}
	idx, err := ParseIndex(s[open+1 : len(s)-1])
	if err != nil {
		return Ref{}, fmt.Errorf("%w: %q: %v", ErrRefSyntax, s, err)
	}
	return NewRef(kind, idx), nil
}

// ParseRefList parses a "|" separated list of references of one kind.
func ParseRefList(s string, want Kind) ([]int, error) {
	if IsNull(s) {
		return nil, nil
	}
	var (
		out  []int
		errs []error
	)
	for _, part := range strings.Split(s, "|") {
		r, err := ParseRef(part, want)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		out = append(out, r.Idx)
	}
	return out, errors.Join(errs...)
}

// FormatRefList renders indices as "kind[i]|kind[j]".
func FormatRefList(kind Kind, idx []int) string {
	if len(idx) == 0 {
		return Null
	}
	parts := make([]string, len(idx))
	for i, n := range idx {
		parts[i] = display(kind, n)
	}
	return strings.Join(parts, "|")
}

// SpectraRef is one ms_run[n]:<native id> entry of a spectra_ref cell.
type SpectraRef struct {
	MsRun    int
	NativeID string
}

// ParseSpectraRefs parses a "|" separated spectra_ref cell.
func ParseSpectraRefs(s string) ([]SpectraRef, error) {
	var out []SpectraRef
	for _, part := range strings.Split(s, "|") {
		part = strings.TrimSpace(part)
		colon := strings.IndexByte(part, ':')
		if colon < 0 || colon == len(part)-1 {
			return nil, fmt.Errorf("%w: %q", ErrRefSyntax, part)
		}
		r, err := ParseRef(part[:colon], KindMsRun)
		if err != nil {
			return nil, err
		}
		out = append(out, SpectraRef{MsRun: r.Idx, NativeID: part[colon+1:]})
	}
	return out, nil
}
