package parser

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/vvka-141/mztabm/internal/diag"
	"github.com/vvka-141/mztabm/internal/model"
	"github.com/vvka-141/mztabm/pkg/mztab"
)

// keyPattern matches kind[index] with an optional -sub or -sub[index].
var keyPattern = regexp.MustCompile(`^([A-Za-z_]+)\[([^\]]*)\](?:-([A-Za-z_]+)(\[([^\]]*)\])?)?$`)

// properties lists the accepted sub-keys of each kind; the value tells
// whether the sub-key carries its own index. "" is the bare kind[n] key.
var properties = map[model.Kind]map[string]bool{
	model.KindSampleProcessing: {"": false},
	model.KindInstrument:       {"name": false, "source": false, "analyzer": true, "detector": false},
	model.KindSoftware:         {"": false, "setting": true},
	model.KindPublication:      {"": false},
	model.KindContact:          {"name": false, "affiliation": false, "email": false, "orcid": false},
	model.KindURI:              {"": false},
	model.KindExternalStudyURI: {"": false},
	model.KindMsRun: {
		"location": false, "instrument_ref": false, "format": false, "id_format": false,
		"fragmentation_method": true, "scan_polarity": true, "hash": false, "hash_method": false,
	},
	model.KindSample: {
		"": false, "species": true, "tissue": true, "cell_type": true, "disease": true,
		"description": false, "custom": true,
	},
	model.KindAssay: {"": false, "custom": true, "external_uri": false, "sample_ref": false, "ms_run_ref": false},
	model.KindStudyVariable: {
		"": false, "assay_refs": false, "average_function": false, "variation_function": false,
		"description": false, "factors": false,
	},
	model.KindCustom:              {"": false},
	model.KindCV:                  {"label": false, "full_name": false, "version": false, "uri": false},
	model.KindDatabase:            {"": false, "prefix": false, "version": false, "uri": false},
	model.KindDerivatizationAgent: {"": false},
	model.KindIDConfidenceMeasure: {"": false},
}

func (p *parser) metadata(n int, line string, fields []string) {
	switch p.state {
	case ExpectingMetadata:
		p.state = InMetadataOrHeader
	case InTableHeader, InTableRows:
		p.add(diag.New(diag.FormatSectionOrder, n, "MTD", p.section.HeaderPrefix()))
		return
	}
	p.mtdLines++
	if len(fields) < 3 || strings.TrimSpace(fields[1]) == "" {
		p.add(diag.New(diag.FormatMetadataLine, n, line))
		return
	}
	key := strings.TrimSpace(fields[1])
	value := strings.TrimSpace(strings.Join(fields[2:], "\t"))
	if value == "" {
		p.add(diag.New(diag.FormatEmptyValue, n, key))
		return
	}
	if strings.HasPrefix(key, "colunit-") {
		p.colunit(n, key, value)
		return
	}
	meta := p.doc.Metadata
	if prev, ok := meta.Lines[key]; ok {
		p.add(diag.New(diag.FormatDuplicateKey, n, key, prev))
		return
	}
	meta.Lines[key] = n
	p.directive(n, key, value)
}

func (p *parser) directive(n int, key, value string) {
	m := p.doc.Metadata
	switch key {
	case "mzTab-version":
		p.version(n, value)
	case "mzTab-ID":
		m.ID = value
	case "title":
		m.Title = value
	case "description":
		m.Description = value
	case "quantification_method":
		m.QuantificationMethod = p.param(n, key, value)
	case "small_molecule-quantification_unit":
		m.SmallMoleculeQuantificationUnit = p.param(n, key, value)
	case "small_molecule_feature-quantification_unit":
		m.SmallMoleculeFeatureQuantificationUnit = p.param(n, key, value)
	case "small_molecule-identification_reliability":
		m.SmallMoleculeIdentificationReliability = p.param(n, key, value)
	default:
		p.indexed(n, key, value)
	}
}

func (p *parser) version(n int, value string) {
	if p.mtdLines != 1 {
		if !p.add(diag.New(diag.FormatVersionPosition, n)) {
			return
		}
	}
	major, minor, _, err := ParseVersion(value)
	if err != nil {
		p.abort(fmt.Errorf("%w: %q: %v", mztab.ErrUnsupportedVersion, value, err))
		return
	}
	if major != mztab.SupportedMajorVersion {
		p.abort(fmt.Errorf("%w: %q: only major version %d is supported", mztab.ErrUnsupportedVersion, value, mztab.SupportedMajorVersion))
		return
	}
	if minor > 0 {
		p.add(diag.New(diag.FormatMinorVersion, n, value, mztab.SupportedVersion, mztab.SupportedVersion))
	}
	p.doc.Metadata.Version = value
}

// ParseVersion splits "major.minor.patch-M".
func ParseVersion(v string) (major, minor, patch int, err error) {
	if !strings.HasSuffix(v, mztab.VersionSuffix) {
		return 0, 0, 0, fmt.Errorf("missing %q suffix", mztab.VersionSuffix)
	}
	parts := strings.Split(strings.TrimSuffix(v, mztab.VersionSuffix), ".")
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("expected major.minor.patch")
	}
	nums := make([]int, 3)
	for i, s := range parts {
		x, err := strconv.Atoi(s)
		if err != nil || x < 0 {
			return 0, 0, 0, fmt.Errorf("component %q is not a non-negative integer", s)
		}
		nums[i] = x
	}
	return nums[0], nums[1], nums[2], nil
}

func (p *parser) colunit(n int, key, value string) {
	section, ok := model.SectionByName(strings.TrimPrefix(key, "colunit-"))
	if !ok {
		p.add(diag.New(diag.FormatMetadataKey, n, key))
		return
	}
	eq := strings.IndexByte(value, '=')
	if eq <= 0 {
		p.add(diag.New(diag.FormatParam, n, value, key, "expected <column>=<unit parameter>"))
		return
	}
	unit := p.param(n, key, strings.TrimSpace(value[eq+1:]))
	if unit == nil {
		return
	}
	p.doc.Metadata.ColumnUnits = append(p.doc.Metadata.ColumnUnits, model.ColumnUnit{
		Section: section,
		Column:  strings.TrimSpace(value[:eq]),
		Unit:    *unit,
	})
}

func (p *parser) indexed(n int, key, value string) {
	m := keyPattern.FindStringSubmatch(key)
	if m == nil {
		p.add(diag.New(diag.FormatMetadataKey, n, key))
		return
	}
	kind, ok := model.ParseKind(m[1])
	if !ok {
		p.add(diag.New(diag.FormatMetadataKey, n, key))
		return
	}
	idx, err := model.ParseIndex(m[2])
	if err != nil {
		p.add(diag.New(diag.FormatIndex, n, m[2], key))
		return
	}
	sub, hasSubIdx := m[3], m[4] != ""
	if takesIdx, ok := properties[kind][sub]; !ok || takesIdx != hasSubIdx {
		p.add(diag.New(diag.FormatMetadataKey, n, key))
		return
	}
	subIdx := 0
	if hasSubIdx {
		subIdx, err = model.ParseIndex(m[5])
		if err != nil {
			p.add(diag.New(diag.FormatIndex, n, m[5], key))
			return
		}
	}
	e, err := p.doc.Metadata.Element(kind, idx)
	if err != nil {
		p.add(diag.New(diag.FormatMetadataKey, n, key))
		return
	}
	p.assign(n, key, e, sub, subIdx, value)
	p.ctx.Register(kind, idx, e)
}

func (p *parser) assign(n int, key string, el model.Element, sub string, subIdx int, value string) {
	switch e := el.(type) {
	case *model.SampleProcessing:
		e.Steps = p.paramList(n, key, value)
	case *model.Instrument:
		switch sub {
		case "name":
			e.Name = p.param(n, key, value)
		case "source":
			e.Source = p.param(n, key, value)
		case "detector":
			e.Detector = p.param(n, key, value)
		case "analyzer":
			putParam(&e.Analyzers, subIdx, p.param(n, key, value))
		}
	case *model.Software:
		switch sub {
		case "":
			e.Param = p.param(n, key, value)
		case "setting":
			if e.Settings == nil {
				e.Settings = map[int]string{}
			}
			e.Settings[subIdx] = value
		}
	case *model.Publication:
		e.Items = splitList(value)
	case *model.Contact:
		switch sub {
		case "name":
			e.Name = value
		case "affiliation":
			e.Affiliation = value
		case "email":
			e.Email = value
		case "orcid":
			e.ORCID = value
		}
	case *model.URI:
		e.Value = p.uri(n, key, value)
	case *model.MsRun:
		p.assignMsRun(n, key, e, sub, subIdx, value)
	case *model.Sample:
		switch sub {
		case "":
			e.Name = value
		case "species":
			putParam(&e.Species, subIdx, p.param(n, key, value))
		case "tissue":
			putParam(&e.Tissue, subIdx, p.param(n, key, value))
		case "cell_type":
			putParam(&e.CellType, subIdx, p.param(n, key, value))
		case "disease":
			putParam(&e.Disease, subIdx, p.param(n, key, value))
		case "description":
			e.Description = value
		case "custom":
			putParam(&e.Custom, subIdx, p.param(n, key, value))
		}
	case *model.Assay:
		switch sub {
		case "":
			e.Name = value
		case "custom":
			putParam(&e.Custom, subIdx, p.param(n, key, value))
		case "external_uri":
			e.ExternalURI = p.uri(n, key, value)
		case "sample_ref":
			e.SampleRef = p.ref(n, key, value, model.KindSample)
		case "ms_run_ref":
			e.MsRunRefs = p.refList(n, key, value, model.KindMsRun)
		}
	case *model.StudyVariable:
		switch sub {
		case "":
			e.Name = value
		case "assay_refs":
			e.AssayRefs = p.refList(n, key, value, model.KindAssay)
		case "average_function":
			e.AverageFunction = p.param(n, key, value)
		case "variation_function":
			e.VariationFunction = p.param(n, key, value)
		case "description":
			e.Description = value
		case "factors":
			e.Factors = p.paramList(n, key, value)
		}
	case *model.CV:
		switch sub {
		case "label":
			e.Label = value
		case "full_name":
			e.FullName = value
		case "version":
			e.Version = value
		case "uri":
			e.URI = p.uri(n, key, value)
		}
	case *model.Database:
		switch sub {
		case "":
			e.Param = p.param(n, key, value)
		case "prefix":
			e.Prefix = value
		case "version":
			e.Version = value
		case "uri":
			e.URI = p.uri(n, key, value)
		}
	case *model.ParamElement:
		e.Param = p.param(n, key, value)
	}
}

func (p *parser) assignMsRun(n int, key string, e *model.MsRun, sub string, subIdx int, value string) {
	switch sub {
	case "location":
		e.Location = p.uri(n, key, value)
	case "instrument_ref":
		e.InstrumentRef = p.ref(n, key, value, model.KindInstrument)
	case "format":
		e.Format = p.param(n, key, value)
	case "id_format":
		e.IDFormat = p.param(n, key, value)
	case "fragmentation_method":
		putParam(&e.FragmentationMethods, subIdx, p.param(n, key, value))
	case "scan_polarity":
		putParam(&e.ScanPolarity, subIdx, p.param(n, key, value))
	case "hash":
		e.FileHash = value
	case "hash_method":
		e.HashMethod = p.param(n, key, value)
	}
}

func (p *parser) param(n int, key, value string) *model.Parameter {
	if model.IsNull(value) {
		return nil
	}
	v, err := model.ParseParameter(value)
	if err != nil {
		p.add(diag.New(diag.FormatParam, n, value, key, err))
		return nil
	}
	return &v
}

func (p *parser) paramList(n int, key, value string) []model.Parameter {
	ps, err := model.ParseParameterList(value)
	if err != nil {
		p.add(diag.New(diag.FormatParam, n, value, key, err))
	}
	return ps
}

func (p *parser) ref(n int, key, value string, kind model.Kind) int {
	if model.IsNull(value) {
		return 0
	}
	r, err := model.ParseRef(value, kind)
	if err != nil {
		p.add(diag.New(diag.FormatReference, n, key, value, string(kind)))
		return 0
	}
	return r.Idx
}

func (p *parser) refList(n int, key, value string, kind model.Kind) []int {
	refs, err := model.ParseRefList(value, kind)
	if err != nil {
		p.add(diag.New(diag.FormatReference, n, key, value, string(kind)))
	}
	return refs
}

// uri keeps value as written and reports it when it is not an absolute URI.
func (p *parser) uri(n int, key, value string) string {
	if model.IsNull(value) {
		return value
	}
	if u, err := url.Parse(value); err != nil || u.Scheme == "" {
		p.add(diag.New(diag.FormatURI, n, key, value))
	}
	return value
}

func putParam(m *map[int]model.Parameter, idx int, p *model.Parameter) {
	if p == nil {
		return
	}
	if *m == nil {
		*m = map[int]model.Parameter{}
	}
	(*m)[idx] = *p
}

func splitList(value string) []string {
	if model.IsNull(value) {
		return nil
	}
	parts := strings.Split(value, "|")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
