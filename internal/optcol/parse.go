package optcol

import (
	"fmt"
	"strings"

	"github.com/vvka-141/mztabm/internal/model"
	"github.com/vvka-141/mztabm/pkg/mztab"
)

// Identifier is a recognized optional column header.
type Identifier struct {
	Header string
	// Element is nil for document-wide columns.
	Element *model.Ref
	// Name is the free name, or the slug of a CV-named column.
	Name string
	// Param is set for CV-named columns. Its name is the slug, since the
	// original term name cannot be recovered from the header.
	Param *model.Parameter
}

// Global reports whether the column is document-wide.
func (id Identifier) Global() bool {
	return id.Element == nil
}

// IsOptional reports whether header follows the optional column convention.
func IsOptional(header string) bool {
	return strings.HasPrefix(header, prefix)
}

// Parse recognizes an optional column header.
func Parse(header string) (Identifier, error) {
	if !IsOptional(header) {
		return Identifier{}, fmt.Errorf("%w: %q does not start with %q", mztab.ErrInvalidArgument, header, prefix)
	}
	id := Identifier{Header: header}
	var rest string
	if strings.HasPrefix(header, globalPrefix) {
		rest = header[len(globalPrefix):]
	} else {
		scope := header[len(prefix):]
		end := strings.Index(scope, "]_")
		if end < 0 {
			return Identifier{}, fmt.Errorf("%w: %q must be opt_global_<name> or opt_<kind>[<index>]_<name>", mztab.ErrInvalidArgument, header)
		}
		r, err := model.ParseRef(scope[:end+1], "")
		if err != nil {
			return Identifier{}, fmt.Errorf("%w: %q: %v", mztab.ErrInvalidArgument, header, err)
		}
		id.Element = &r
		rest = scope[end+2:]
	}
	if rest == "" {
		return Identifier{}, fmt.Errorf("%w: %q has an empty name", mztab.ErrInvalidArgument, header)
	}
	if strings.HasPrefix(rest, cvMarker) {
		cv := rest[len(cvMarker):]
		sep := strings.IndexByte(cv, '_')
		if sep > 0 && sep < len(cv)-1 {
			accession := cv[:sep]
			if colon := strings.IndexByte(accession, ':'); colon > 0 {
				id.Name = cv[sep+1:]
				id.Param = &model.Parameter{CVLabel: accession[:colon], Accession: accession, Name: id.Name}
				return id, nil
			}
		}
	}
	id.Name = rest
	return id, nil
}
