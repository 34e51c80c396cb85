package refine

import (
	"net/mail"
	"regexp"
	"strconv"

	"github.com/vvka-141/mztabm/internal/diag"
	"github.com/vvka-141/mztabm/internal/model"
)

type sampleProcessingRefiner struct{}

func (sampleProcessingRefiner) Name() string { return "sampleProcessing" }

func (sampleProcessingRefiner) Refine(meta *model.Metadata, _ Lookup) []diag.Diagnostic {
	var out []diag.Diagnostic
	r := newReport(meta)
	each(meta.SampleProcessings, func(sp *model.SampleProcessing) {
		if len(sp.Steps) == 0 {
			r.add(sp, "", "", diag.LogicalEmptyList, model.Path(sp, ""))
		}
		out = append(out, r.flush()...)
	})
	return out
}

type instrumentRefiner struct{}

func (instrumentRefiner) Name() string { return "instrument" }

func (instrumentRefiner) Refine(meta *model.Metadata, _ Lookup) []diag.Diagnostic {
	var out []diag.Diagnostic
	r := newReport(meta)
	each(meta.Instruments, func(in *model.Instrument) {
		if in.Name == nil {
			r.add(in, "name", "", diag.LogicalMissingField, model.Path(in, "name"))
		}
		out = append(out, r.flush()...)
	})
	return out
}

type softwareRefiner struct{}

func (softwareRefiner) Name() string { return "software" }

func (softwareRefiner) Refine(meta *model.Metadata, _ Lookup) []diag.Diagnostic {
	var out []diag.Diagnostic
	r := newReport(meta)
	each(meta.Software, func(sw *model.Software) {
		if sw.Param == nil {
			r.add(sw, "parameter", "", diag.LogicalMissingField, model.Path(sw, "parameter"))
		}
		for _, i := range model.SortedKeys(sw.Settings) {
			if model.IsNull(sw.Settings[i]) {
				prop := "setting[" + strconv.Itoa(i) + "]"
				r.add(sw, prop, key(sw, prop), diag.LogicalMissingField, model.Path(sw, prop))
			}
		}
		out = append(out, r.flush()...)
	})
	return out
}

var publicationItem = regexp.MustCompile(`^(pubmed:\d+|doi:\S+)$`)

type publicationRefiner struct{}

func (publicationRefiner) Name() string { return "publication" }

func (publicationRefiner) Refine(meta *model.Metadata, _ Lookup) []diag.Diagnostic {
	var out []diag.Diagnostic
	r := newReport(meta)
	each(meta.Publications, func(p *model.Publication) {
		if len(p.Items) == 0 {
			r.add(p, "", "", diag.LogicalEmptyList, model.Path(p, ""))
		}
		for _, item := range p.Items {
			if !publicationItem.MatchString(item) {
				r.add(p, "", key(p, ""), diag.LogicalPublication, model.Path(p, ""), item)
			}
		}
		out = append(out, r.flush()...)
	})
	return out
}

type contactRefiner struct{}

func (contactRefiner) Name() string { return "contact" }

func (contactRefiner) Refine(meta *model.Metadata, _ Lookup) []diag.Diagnostic {
	var out []diag.Diagnostic
	r := newReport(meta)
	each(meta.Contacts, func(c *model.Contact) {
		if model.IsNull(c.Name) {
			r.add(c, "name", "", diag.LogicalMissingField, model.Path(c, "name"))
		}
		if !model.IsNull(c.Email) && !validEmail(c.Email) {
			r.add(c, "email", key(c, "email"), diag.LogicalEmail, model.Path(c, "email"), c.Email)
		}
		out = append(out, r.flush()...)
	})
	return out
}

// validEmail accepts a bare addr-spec, not a display-name form.
func validEmail(s string) bool {
	a, err := mail.ParseAddress(s)
	return err == nil && a.Address == s
}

type sampleRefiner struct{}

func (sampleRefiner) Name() string { return "sample" }

func (sampleRefiner) Refine(meta *model.Metadata, _ Lookup) []diag.Diagnostic {
	var out []diag.Diagnostic
	r := newReport(meta)
	each(meta.Samples, func(s *model.Sample) {
		for _, i := range model.SortedKeys(s.Species) {
			if p := s.Species[i]; p.IsUserParam() {
				prop := "species[" + strconv.Itoa(i) + "]"
				r.add(s, prop, key(s, prop), diag.LogicalUserParam, model.Path(s, prop), p.Name)
			}
		}
		out = append(out, r.flush()...)
	})
	return out
}

type idConfidenceMeasureRefiner struct{}

func (idConfidenceMeasureRefiner) Name() string { return "idConfidenceMeasure" }

func (idConfidenceMeasureRefiner) Refine(meta *model.Metadata, ctx Lookup) []diag.Diagnostic {
	var out []diag.Diagnostic
	r := newReport(meta)
	each(meta.IDConfidenceMeasures, func(m *model.ParamElement) {
		if m.Param == nil {
			r.add(m, "parameter", "", diag.LogicalMissingField, model.Path(m, "parameter"))
		}
		out = append(out, r.flush()...)
	})
	if n := ctx.RowCount(model.SectionEvidence); n > 0 && len(meta.IDConfidenceMeasures) == 0 {
		out = append(out, diag.New(diag.LogicalConditional, diag.NoLine, "id_confidence_measure[1]", model.SectionEvidence, n).
			WithPath(model.KindIDConfidenceMeasure.Bean()))
	}
	return out
}

type columnUnitRefiner struct{}

func (columnUnitRefiner) Name() string { return "colunit" }

func (columnUnitRefiner) Refine(meta *model.Metadata, ctx Lookup) []diag.Diagnostic {
	var out []diag.Diagnostic
	for _, u := range meta.ColumnUnits {
		if !contains(ctx.Columns(u.Section), u.Column) {
			path := "colunit-" + u.Section.Name()
			out = append(out, diag.New(diag.LogicalColumnUnit, diag.NoLine, path, u.Column, u.Section.HeaderPrefix()).WithPath(path))
		}
	}
	return out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
