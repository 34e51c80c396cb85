package model

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vvka-141/mztabm/pkg/mztab"
)

// Null is the literal mzTab uses for an absent value.
const Null = "null"

// IsNull reports whether s denotes an absent value.
func IsNull(s string) bool {
	s = strings.TrimSpace(s)
	return s == "" || strings.EqualFold(s, Null)
}

// Parameter is a CV parameter: either a full CV term (label, accession and
// name set) or a user term (only name set), both with an optional value.
type Parameter struct {
	CVLabel   string `json:"cv_label,omitempty" yaml:"cv_label,omitempty"`
	Accession string `json:"accession,omitempty" yaml:"accession,omitempty"`
	Name      string `json:"name" yaml:"name"`
	Value     string `json:"value,omitempty" yaml:"value,omitempty"`
}

// Parameter syntax errors, wrapped with the offending text by ParseParameter.
var (
	ErrParamBrackets = errors.New("parameter must be enclosed in [ and ]")
	ErrParamFields   = errors.New("parameter must have four comma-separated fields: [label, accession, name, value]")
	ErrParamName     = errors.New("parameter name must not be empty")
	ErrParamCV       = errors.New("CV label and accession must both be set or both be empty")
)

// ParseParameter decodes "[label, accession, name, value]". Commas inside
// double quotes never split a field, and a quoted name or value is kept
// verbatim without its quotes. An unquoted name or value may still contain
// commas: when there are more than four fields, the last comma followed or
// preceded by whitespace separates name from value, so "2,4-dinitrophenol"
// and a value of "1,5" survive unchanged.
func ParseParameter(s string) (Parameter, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 || s[0] != '[' || s[len(s)-1] != ']' {
		return Parameter{}, fmt.Errorf("%w: %q", ErrParamBrackets, s)
	}
	inner := s[1 : len(s)-1]
	if strings.ContainsAny(inner, "[]") {
		return Parameter{}, fmt.Errorf("%w: %q", ErrParamBrackets, s)
	}
	fields, tight := splitFields(inner)
	if len(fields) < 4 {
		return Parameter{}, fmt.Errorf("%w: %q", ErrParamFields, s)
	}
	last := len(fields) - 2
	boundary := last
	for j := last; j >= 2; j-- {
		if !tight[j] {
			boundary = j
			break
		}
	}
	p := Parameter{
		CVLabel:   strings.TrimSpace(fields[0]),
		Accession: strings.TrimSpace(fields[1]),
		Name:      unquote(strings.Join(fields[2:boundary+1], ",")),
		Value:     unquote(strings.Join(fields[boundary+1:], ",")),
	}
	if err := p.Validate(); err != nil {
		return Parameter{}, err
	}
	return p, nil
}

// splitFields cuts inner at every comma outside double quotes, keeping the
// surrounding whitespace. tight[i] reports whether the comma after
// fields[i] has non-space text directly on both sides.
func splitFields(inner string) (fields []string, tight []bool) {
	quoted := false
	start := 0
	for i := 0; i < len(inner); i++ {
		switch inner[i] {
		case '"':
			quoted = !quoted
		case ',':
			if quoted {
				continue
			}
			fields = append(fields, inner[start:i])
			tight = append(tight, i > 0 && i+1 < len(inner) && !isSpace(inner[i-1]) && !isSpace(inner[i+1]))
			start = i + 1
		}
	}
	return append(fields, inner[start:]), tight
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t'
}

func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}

// ParseParameterList decodes a "|" separated list of parameters. Every
// element is attempted; the returned error joins all failures.
func ParseParameterList(s string) ([]Parameter, error) {
	if IsNull(s) {
		return nil, nil
	}
	var (
		out  []Parameter
		errs []error
	)
	for _, part := range strings.Split(s, "|") {
		p, err := ParseParameter(part)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		out = append(out, p)
	}
	return out, errors.Join(errs...)
}

// Validate checks the label/accession/name combination.
func (p Parameter) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrParamName
	}
	if (p.CVLabel == "") != (p.Accession == "") {
		return ErrParamCV
	}
	return nil
}

// IsUserParam reports whether p carries no CV label and accession.
func (p Parameter) IsUserParam() bool {
	return p.CVLabel == "" && p.Accession == ""
}

// Equal compares label, accession and name; the value is ignored.
func (p Parameter) Equal(o Parameter) bool {
	return p.CVLabel == o.CVLabel && p.Accession == o.Accession && p.Name == o.Name
}

// Term returns the ontology term of a CV parameter.
func (p Parameter) Term() mztab.Term {
	return mztab.Term{Label: p.CVLabel, Accession: p.Accession, Name: p.Name}
}

// String renders p in mzTab syntax. A name or value containing a comma is
// quoted.
func (p Parameter) String() string {
	return "[" + p.CVLabel + ", " + p.Accession + ", " + quoteComma(p.Name) + ", " + quoteComma(p.Value) + "]"
}

func quoteComma(s string) string {
	if strings.Contains(s, ",") {
		return `"` + s + `"`
	}
	return s
}

// FormatParameterList renders params joined by "|", or null when empty.
func FormatParameterList(params []Parameter) string {
	if len(params) == 0 {
		return Null
	}
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = p.String()
	}
	return strings.Join(parts, "|")
}

// FormatParameter renders p, or null when p is nil.
func FormatParameter(p *Parameter) string {
	if p == nil {
		return Null
	}
	return p.String()
}
