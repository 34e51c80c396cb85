package cvmapping

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/vvka-141/mztabm/internal/model"
)

// Value is one parameter selected by a rule path.
type Value struct {
	Path  string
	Line  int
	Param model.Parameter
}

// rootKeys maps root-level parameter properties to their metadata keys.
var rootKeys = map[string]string{
	"quantificationMethod":                   "quantification_method",
	"smallMoleculeQuantificationUnit":        "small_molecule-quantification_unit",
	"smallMoleculeFeatureQuantificationUnit": "small_molecule_feature-quantification_unit",
	"smallMoleculeIdentificationReliability": "small_molecule-identification_reliability",
}

// selector is a compiled rule path.
type selector struct {
	root     bool
	kind     model.Kind
	section  model.SectionKind
	column   *model.ColumnDef
	property string
}

// trailing path segments that address the parameter itself.
var paramSegments = map[string]bool{"accession": true, "cvParam": true, "cvParams": true, "param": true}

// compilePath accepts /mzTab/metadata/<property>,
// /mzTab/metadata/<elementKind>[/<property>] and
// /mzTab/<sectionBean>/<column>, where a trailing @accession or cvParam
// segment and "@" attribute markers are ignored.
func compilePath(path string) (selector, error) {
	var segs []string
	for _, s := range strings.Split(strings.Trim(path, "/ "), "/") {
		s = strings.TrimPrefix(s, "@")
		if s != "" {
			segs = append(segs, s)
		}
	}
	for len(segs) > 0 && paramSegments[segs[len(segs)-1]] {
		segs = segs[:len(segs)-1]
	}
	if len(segs) < 2 || segs[0] != "mzTab" {
		return selector{}, fmt.Errorf("path %q must start with /mzTab/", path)
	}

	if segs[1] == "metadata" {
		return compileMetadata(path, segs[2:])
	}
	for _, k := range model.Sections {
		if k.Bean() != segs[1] {
			continue
		}
		if len(segs) != 3 {
			return selector{}, fmt.Errorf("path %q must name one %s column", path, k.Bean())
		}
		for _, def := range model.FixedColumns(k) {
			if def.Property() == segs[2] || def.Name == segs[2] {
				if def.Type != model.CellParam {
					return selector{}, fmt.Errorf("path %q: column %s does not hold parameters", path, def.Name)
				}
				def := def
				return selector{section: k, column: &def}, nil
			}
		}
		return selector{}, fmt.Errorf("path %q: unknown %s column %q", path, k.Bean(), segs[2])
	}
	return selector{}, fmt.Errorf("path %q: unknown section %q", path, segs[1])
}

func compileMetadata(path string, segs []string) (selector, error) {
	switch len(segs) {
	case 1:
		if _, ok := rootKeys[segs[0]]; ok {
			return selector{root: true, property: segs[0]}, nil
		}
		if kind, ok := model.KindFromBean(segs[0]); ok && hasProperty(kind, "parameter") {
			return selector{kind: kind, property: "parameter"}, nil
		}
	case 2:
		kind, ok := model.KindFromBean(segs[0])
		if !ok {
			return selector{}, fmt.Errorf("path %q: unknown element kind %q", path, segs[0])
		}
		if hasProperty(kind, segs[1]) {
			return selector{kind: kind, property: segs[1]}, nil
		}
		return selector{}, fmt.Errorf("path %q: %s has no parameter property %q", path, segs[0], segs[1])
	}
	return selector{}, fmt.Errorf("path %q does not address a metadata parameter", path)
}

func hasProperty(kind model.Kind, property string) bool {
	for _, p := range model.ParamProperties(kind) {
		if p == property {
			return true
		}
	}
	return false
}

// Resolve returns the parameters doc holds at path, in element index order
// for metadata paths and row order for table paths.
func Resolve(doc *model.Document, path string) ([]Value, error) {
	sel, err := compilePath(path)
	if err != nil {
		return nil, err
	}
	return sel.resolve(doc), nil
}

func (s selector) resolve(doc *model.Document) []Value {
	meta := doc.Metadata
	var out []Value
	switch {
	case s.root:
		params, _ := meta.Params(s.property)
		line := meta.Lines[rootKeys[s.property]]
		for _, p := range params {
			out = append(out, Value{Path: "mzTab-" + s.property, Line: line, Param: p})
		}
	case s.kind != "":
		for _, e := range meta.Elements(s.kind) {
			src, ok := e.(model.ParamSource)
			if !ok {
				continue
			}
			params, err := src.Params(s.property)
			if err != nil {
				continue
			}
			line := lineOf(meta, e, s.property)
			for _, p := range params {
				out = append(out, Value{Path: model.Path(e, s.property), Line: line, Param: p})
			}
		}
	default:
		sec := doc.Section(s.section)
		if sec == nil {
			return nil
		}
		idCol := model.IDColumn(s.section)
		for _, row := range sec.Records {
			raw, ok := sec.Value(row, s.column.Name)
			if !ok || model.IsNull(raw) {
				continue
			}
			p, err := model.ParseParameter(raw)
			if err != nil {
				continue
			}
			id, _ := sec.Value(row, idCol)
			out = append(out, Value{
				Path:  s.section.Bean() + "[" + id + "]-" + s.column.Property(),
				Line:  row.Line,
				Param: p,
			})
		}
	}
	return out
}

// lineOf finds the first source line of an element property, including
// its indexed sub-keys such as ms_run[1]-scan_polarity[2].
func lineOf(meta *model.Metadata, e model.Element, property string) int {
	key := string(e.Kind()) + "[" + fmt.Sprint(e.Index()) + "]"
	if property != "parameter" {
		key += "-" + snake(property)
	}
	if line, ok := meta.Lines[key]; ok {
		return line
	}
	best := 0
	for k, line := range meta.Lines {
		if strings.HasPrefix(k, key+"[") && (best == 0 || line < best) {
			best = line
		}
	}
	return best
}

func snake(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsUpper(r) {
			b.WriteByte('_')
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}
