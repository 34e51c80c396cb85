package optcol

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/vvka-141/mztabm/internal/model"
	"github.com/vvka-141/mztabm/pkg/mztab"
)

const (
	prefix       = "opt_"
	globalPrefix = "opt_global_"
	cvMarker     = "cv_"
)

// Column is a built optional column: its header identifier and cell value.
type Column struct {
	Header  string
	Value   string
	Element *model.Ref
	Param   *model.Parameter
}

// Builder derives one optional column identifier. Exactly one of WithName
// and WithParameter may be used. Errors are kept and returned by Build.
type Builder struct {
	element *model.Ref
	name    string
	param   *model.Parameter
	err     error
}

// ForGlobal starts a document-wide column.
func ForGlobal() *Builder {
	return &Builder{}
}

// ForElement starts a column scoped to one indexed element.
func ForElement(e model.Element) *Builder {
	r := model.RefOf(e)
	return &Builder{element: &r}
}

// WithName names the column freely.
func (b *Builder) WithName(name string) *Builder {
	if b.err != nil {
		return b
	}
	if b.param != nil || b.name != "" {
		b.err = fmt.Errorf("%w: column is already named", mztab.ErrInvalidState)
		return b
	}
	if strings.TrimSpace(name) == "" {
		b.err = fmt.Errorf("%w: name is empty", mztab.ErrInvalidArgument)
		return b
	}
	if strings.ContainsAny(name, "\t\r\n") {
		b.err = fmt.Errorf("%w: name %q contains control characters", mztab.ErrInvalidArgument, name)
		return b
	}
	b.name = name
	return b
}

// WithParameter names the column after a CV parameter.
func (b *Builder) WithParameter(p model.Parameter) *Builder {
	if b.err != nil {
		return b
	}
	if b.param != nil || b.name != "" {
		b.err = fmt.Errorf("%w: column is already named", mztab.ErrInvalidState)
		return b
	}
	switch {
	case strings.TrimSpace(p.Accession) == "":
		b.err = fmt.Errorf("%w: parameter accession is empty", mztab.ErrInvalidArgument)
	case strings.TrimSpace(p.CVLabel) == "":
		b.err = fmt.Errorf("%w: parameter label is empty", mztab.ErrInvalidArgument)
	case strings.TrimSpace(p.Name) == "":
		b.err = fmt.Errorf("%w: parameter name is empty", mztab.ErrInvalidArgument)
	default:
		b.param = &p
	}
	return b
}

// Err returns the first error recorded by the builder.
func (b *Builder) Err() error {
	return b.err
}

// Build returns the column identifier with its value.
func (b *Builder) Build(value string) (Column, error) {
	if b.err != nil {
		return Column{}, b.err
	}
	if b.name == "" && b.param == nil {
		return Column{}, fmt.Errorf("%w: neither name nor parameter set", mztab.ErrInvalidState)
	}
	var h strings.Builder
	if b.element == nil {
		h.WriteString(globalPrefix)
	} else {
		h.WriteString(prefix)
		h.WriteString(string(b.element.Kind()))
		h.WriteByte('[')
		h.WriteString(strconv.Itoa(b.element.Index()))
		h.WriteString("]_")
	}
	if b.param != nil {
		h.WriteString(cvMarker)
		h.WriteString(b.param.Accession)
		h.WriteByte('_')
		h.WriteString(Slug(b.param.Name))
	} else {
		h.WriteString(b.name)
	}
	col := Column{Header: h.String(), Value: value, Element: b.element}
	if b.param != nil {
		p := *b.param
		col.Param = &p
	}
	return col, nil
}

// Slug lowercases s and replaces every run of non-alphanumeric characters
// with a single underscore.
func Slug(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	run := false
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToLower(r))
			run = false
			continue
		}
		if !run {
			b.WriteByte('_')
			run = true
		}
	}
	return b.String()
}
