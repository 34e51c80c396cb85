package writer

import (
	"bufio"
	"bytes"
	"io"
	"strconv"
	"strings"

	"github.com/vvka-141/mztabm/internal/model"
	"github.com/vvka-141/mztabm/pkg/mztab"
)

// lineWriter remembers the first write error so callers check once.
type lineWriter struct {
	w   *bufio.Writer
	err error
}

func (lw *lineWriter) line(fields ...string) {
	if lw.err != nil {
		return
	}
	if _, err := lw.w.WriteString(strings.Join(fields, "\t")); err != nil {
		lw.err = err
		return
	}
	lw.err = lw.w.WriteByte('\n')
}

func (lw *lineWriter) mtd(key, value string) {
	if value == "" {
		return
	}
	lw.line("MTD", key, value)
}

func (lw *lineWriter) param(key string, p *model.Parameter) {
	if p != nil {
		lw.mtd(key, p.String())
	}
}

func (lw *lineWriter) params(key string, m map[int]model.Parameter) {
	for _, i := range model.SortedKeys(m) {
		lw.mtd(key+"["+strconv.Itoa(i)+"]", m[i].String())
	}
}

func (lw *lineWriter) ref(key string, kind model.Kind, idx int) {
	if idx > 0 {
		lw.mtd(key, model.NewRef(kind, idx).String())
	}
}

// Write serializes doc to w.
func Write(w io.Writer, doc *model.Document) error {
	lw := &lineWriter{w: bufio.NewWriter(w)}
	writeMetadata(lw, doc.Metadata)
	if len(doc.Comments) > 0 {
		lw.line()
		for _, c := range doc.Comments {
			lw.line("COM", c.Text)
		}
	}
	for _, kind := range model.Sections {
		sect := doc.Section(kind)
		if sect == nil || sect.Header == nil {
			continue
		}
		lw.line()
		lw.line(append([]string{kind.HeaderPrefix()}, sect.Header.Names()...)...)
		for _, rec := range sect.Records {
			lw.line(append([]string{string(kind)}, rec.Cells...)...)
		}
	}
	if lw.err != nil {
		return lw.err
	}
	return lw.w.Flush()
}

// Bytes returns the canonical text of doc.
func Bytes(doc *model.Document) []byte {
	var buf bytes.Buffer
	_ = Write(&buf, doc)
	return buf.Bytes()
}

func writeMetadata(lw *lineWriter, m *model.Metadata) {
	version := m.Version
	if version == "" {
		version = mztab.SupportedVersion
	}
	lw.mtd("mzTab-version", version)
	lw.mtd("mzTab-ID", m.ID)
	lw.mtd("title", m.Title)
	lw.mtd("description", m.Description)

	for _, kind := range model.Kinds {
		for _, e := range m.Elements(kind) {
			writeElement(lw, e)
		}
		if kind == model.KindStudyVariable {
			lw.param("quantification_method", m.QuantificationMethod)
		}
	}
	lw.param("small_molecule-quantification_unit", m.SmallMoleculeQuantificationUnit)
	lw.param("small_molecule_feature-quantification_unit", m.SmallMoleculeFeatureQuantificationUnit)
	lw.param("small_molecule-identification_reliability", m.SmallMoleculeIdentificationReliability)
	for _, u := range m.ColumnUnits {
		lw.mtd("colunit-"+u.Section.Name(), u.Column+"="+u.Unit.String())
	}
}

func writeElement(lw *lineWriter, el model.Element) {
	key := el.String()
	sub := func(name string) string { return key + "-" + name }
	switch e := el.(type) {
	case *model.SampleProcessing:
		if len(e.Steps) > 0 {
			lw.mtd(key, model.FormatParameterList(e.Steps))
		}
	case *model.Instrument:
		lw.param(sub("name"), e.Name)
		lw.param(sub("source"), e.Source)
		lw.params(sub("analyzer"), e.Analyzers)
		lw.param(sub("detector"), e.Detector)
	case *model.Software:
		lw.param(key, e.Param)
		for _, i := range model.SortedKeys(e.Settings) {
			lw.mtd(sub("setting")+"["+strconv.Itoa(i)+"]", e.Settings[i])
		}
	case *model.Publication:
		lw.mtd(key, strings.Join(e.Items, "|"))
	case *model.Contact:
		lw.mtd(sub("name"), e.Name)
		lw.mtd(sub("affiliation"), e.Affiliation)
		lw.mtd(sub("email"), e.Email)
		lw.mtd(sub("orcid"), e.ORCID)
	case *model.URI:
		lw.mtd(key, e.Value)
	case *model.MsRun:
		lw.mtd(sub("location"), e.Location)
		lw.ref(sub("instrument_ref"), model.KindInstrument, e.InstrumentRef)
		lw.param(sub("format"), e.Format)
		lw.param(sub("id_format"), e.IDFormat)
		lw.params(sub("fragmentation_method"), e.FragmentationMethods)
		lw.params(sub("scan_polarity"), e.ScanPolarity)
		lw.mtd(sub("hash"), e.FileHash)
		lw.param(sub("hash_method"), e.HashMethod)
	case *model.Sample:
		lw.mtd(key, e.Name)
		lw.params(sub("species"), e.Species)
		lw.params(sub("tissue"), e.Tissue)
		lw.params(sub("cell_type"), e.CellType)
		lw.params(sub("disease"), e.Disease)
		lw.mtd(sub("description"), e.Description)
		lw.params(sub("custom"), e.Custom)
	case *model.Assay:
		lw.mtd(key, e.Name)
		lw.params(sub("custom"), e.Custom)
		lw.mtd(sub("external_uri"), e.ExternalURI)
		lw.ref(sub("sample_ref"), model.KindSample, e.SampleRef)
		if len(e.MsRunRefs) > 0 {
			lw.mtd(sub("ms_run_ref"), model.FormatRefList(model.KindMsRun, e.MsRunRefs))
		}
	case *model.StudyVariable:
		lw.mtd(key, e.Name)
		if len(e.AssayRefs) > 0 {
			lw.mtd(sub("assay_refs"), model.FormatRefList(model.KindAssay, e.AssayRefs))
		}
		lw.param(sub("average_function"), e.AverageFunction)
		lw.param(sub("variation_function"), e.VariationFunction)
		lw.mtd(sub("description"), e.Description)
		if len(e.Factors) > 0 {
			lw.mtd(sub("factors"), model.FormatParameterList(e.Factors))
		}
	case *model.CV:
		lw.mtd(sub("label"), e.Label)
		lw.mtd(sub("full_name"), e.FullName)
		lw.mtd(sub("version"), e.Version)
		lw.mtd(sub("uri"), e.URI)
	case *model.Database:
		lw.param(key, e.Param)
		lw.mtd(sub("prefix"), e.Prefix)
		lw.mtd(sub("version"), e.Version)
		lw.mtd(sub("uri"), e.URI)
	case *model.ParamElement:
		lw.param(key, e.Param)
	}
}
