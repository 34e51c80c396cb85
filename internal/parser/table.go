package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vvka-141/mztabm/internal/diag"
	"github.com/vvka-141/mztabm/internal/model"
	"github.com/vvka-141/mztabm/internal/optcol"
	"github.com/vvka-141/mztabm/pkg/mztab"
)

func (p *parser) header(n int, section model.SectionKind, fields []string) {
	prefix := section.HeaderPrefix()
	if p.state == ExpectingMetadata {
		p.abort(fmt.Errorf("%w: %s header on line %d precedes the MTD section", mztab.ErrMissingSection, prefix, n))
		return
	}
	if prev, ok := p.headerLines[section]; ok {
		p.add(diag.New(diag.FormatDuplicateHeader, n, prefix, prev))
		return
	}
	if p.section != "" && section.Order() < p.section.Order() {
		p.add(diag.New(diag.FormatSectionOrder, n, prefix, p.section.HeaderPrefix()))
		return
	}
	p.state = InTableHeader
	p.section = section
	p.headerLines[section] = n

	h := &model.Header{Line: n}
	seen := make(map[string]bool, len(fields))
	for _, raw := range fields[1:] {
		name := strings.TrimSpace(raw)
		if seen[name] {
			if !p.add(diag.New(diag.FormatDuplicateColumn, n, prefix, name)) {
				return
			}
		}
		seen[name] = true
		h.Columns = append(h.Columns, p.column(n, section, name))
		if p.fatal != nil {
			return
		}
	}
	for _, def := range model.FixedColumns(section) {
		if !seen[def.Name] {
			if !p.add(diag.New(diag.FormatMissingColumn, n, prefix, def.Name)) {
				return
			}
		}
	}
	p.doc.Sections[section] = &model.Section{Kind: section, Header: h}
	p.ctx.setColumns(section, h.Names())
	p.ids[section] = map[string]int{}
	p.state = InTableRows
}

// column derives the definition of one header column.
func (p *parser) column(n int, section model.SectionKind, name string) model.Column {
	if def, ok := model.FixedColumn(section, name); ok {
		return model.Column{Name: name, Def: def}
	}
	if def, idx, ok, err := model.IndexedColumn(section, name); ok {
		if err != nil {
			raw := name[strings.IndexByte(name, '[')+1 : len(name)-1]
			p.add(diag.New(diag.FormatIndex, n, raw, name))
			return model.Column{Name: name, Def: def}
		}
		r := model.NewRef(def.IndexKind, idx)
		if _, ok := p.ctx.Resolve(r.Kind(), idx); !ok {
			p.add(diag.New(diag.CrossCheckUndeclaredColumn, n, name, r.String()))
		}
		return model.Column{Name: name, Def: def, Element: &r}
	}
	if optcol.IsOptional(name) {
		id, err := optcol.Parse(name)
		if err != nil {
			p.add(diag.New(diag.FormatOptionalColumn, n, name, err))
			return model.Column{Name: name, Optional: true}
		}
		if id.Element != nil {
			if _, ok := p.ctx.Resolve(id.Element.Kind(), id.Element.Index()); !ok {
				p.add(diag.New(diag.CrossCheckUndeclaredColumn, n, name, id.Element.String()))
			}
		}
		return model.Column{Name: name, Element: id.Element, Param: id.Param, Optional: true}
	}
	p.add(diag.New(diag.FormatUnknownColumn, n, section.HeaderPrefix(), name))
	return model.Column{Name: name}
}

func (p *parser) row(n int, section model.SectionKind, fields []string) {
	if p.state == ExpectingMetadata {
		p.abort(fmt.Errorf("%w: %s row on line %d precedes the MTD section", mztab.ErrMissingSection, section, n))
		return
	}
	sect := p.doc.Sections[section]
	if sect == nil {
		p.add(diag.New(diag.FormatRowBeforeHeader, n, string(section), section.HeaderPrefix()))
		return
	}
	if section != p.section {
		p.add(diag.New(diag.FormatSectionOrder, n, string(section), p.section.HeaderPrefix()))
		return
	}

	cols := sect.Header.Columns
	cells := fields[1:]
	if len(cells) != len(cols) {
		if !p.add(diag.New(diag.FormatColumnCount, n, string(section), len(cells), len(cols))) {
			return
		}
		if len(cells) > len(cols) {
			cells = cells[:len(cols)]
		}
	}
	rec := model.Record{Line: n, Cells: make([]string, len(cells))}
	for i, c := range cells {
		rec.Cells[i] = strings.TrimSpace(c)
		p.cell(n, cols[i], rec.Cells[i])
		if p.fatal != nil {
			return
		}
	}
	p.rowID(n, sect, rec)
	sect.Records = append(sect.Records, rec)
	p.ctx.addRow(section)
}

// cell checks one value against its column type.
func (p *parser) cell(n int, col model.Column, v string) {
	if col.Def == nil {
		return
	}
	name := col.Name
	if v == "" {
		p.add(diag.New(diag.FormatEmptyCell, n, name))
		return
	}
	if model.IsNull(v) {
		if col.Def.Mandatory {
			p.add(diag.New(diag.FormatNullCell, n, name))
		}
		return
	}
	switch col.Def.Type {
	case model.CellInteger:
		if !isInteger(v) {
			p.add(diag.New(diag.FormatInteger, n, name, v))
		}
	case model.CellIntegerList:
		for _, part := range strings.Split(v, "|") {
			if !isInteger(part) {
				p.add(diag.New(diag.FormatInteger, n, name, part))
				return
			}
		}
	case model.CellDouble:
		if !isDouble(v) {
			p.add(diag.New(diag.FormatDouble, n, name, v))
		}
	case model.CellDoubleList:
		for _, part := range strings.Split(v, "|") {
			if !model.IsNull(part) && !isDouble(part) {
				p.add(diag.New(diag.FormatDouble, n, name, part))
				return
			}
		}
	case model.CellParam:
		if _, err := model.ParseParameter(v); err != nil {
			p.add(diag.New(diag.FormatParam, n, v, name, err))
		}
	case model.CellSpectraRefList:
		refs, err := model.ParseSpectraRefs(v)
		if err != nil {
			p.add(diag.New(diag.FormatSpectraRef, n, name, v))
			return
		}
		for _, r := range refs {
			if _, ok := p.ctx.Resolve(model.KindMsRun, r.MsRun); !ok {
				ref := model.NewRef(model.KindMsRun, r.MsRun)
				if !p.add(diag.New(diag.CrossCheckSpectraRun, n, name, v, ref.String())) {
					return
				}
			}
		}
	}
}

func (p *parser) rowID(n int, sect *model.Section, rec model.Record) {
	v, ok := sect.Value(rec, model.IDColumn(sect.Kind))
	if !ok || model.IsNull(v) || !isInteger(v) {
		return
	}
	ids := p.ids[sect.Kind]
	if prev, dup := ids[v]; dup {
		p.add(diag.New(diag.CrossCheckDuplicateID, n, string(sect.Kind), v, prev))
		return
	}
	ids[v] = n
}

func isInteger(s string) bool {
	_, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	return err == nil
}

// isDouble accepts decimal and exponent notation plus NaN and INF.
func isDouble(s string) bool {
	_, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return err == nil
}
