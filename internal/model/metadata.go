package model

import "fmt"

// ColumnUnit is one colunit-<section> directive: column=[unit parameter].
type ColumnUnit struct {
	Section SectionKind
	Column  string
	Unit    Parameter
}

// Metadata is the MTD block: scalar directives plus every indexed element
// collection keyed by its author-assigned index.
type Metadata struct {
	Version     string
	ID          string
	Title       string
	Description string

	QuantificationMethod                   *Parameter
	SmallMoleculeQuantificationUnit        *Parameter
	SmallMoleculeFeatureQuantificationUnit *Parameter
	SmallMoleculeIdentificationReliability *Parameter

	SampleProcessings    map[int]*SampleProcessing
	Instruments          map[int]*Instrument
	Software             map[int]*Software
	Publications         map[int]*Publication
	Contacts             map[int]*Contact
	URIs                 map[int]*URI
	ExternalStudyURIs    map[int]*URI
	MsRuns               map[int]*MsRun
	Samples              map[int]*Sample
	Assays               map[int]*Assay
	StudyVariables       map[int]*StudyVariable
	Customs              map[int]*ParamElement
	CVs                  map[int]*CV
	Databases            map[int]*Database
	DerivatizationAgents map[int]*ParamElement
	IDConfidenceMeasures map[int]*ParamElement

	ColumnUnits []ColumnUnit

	// Lines maps each metadata key as written (e.g. "ms_run[1]-format") to
	// its source line. It is informational and not part of the graph.
	Lines map[string]int
}

// NewMetadata returns an empty metadata graph.
func NewMetadata() *Metadata {
	return &Metadata{
		SampleProcessings:    map[int]*SampleProcessing{},
		Instruments:          map[int]*Instrument{},
		Software:             map[int]*Software{},
		Publications:         map[int]*Publication{},
		Contacts:             map[int]*Contact{},
		URIs:                 map[int]*URI{},
		ExternalStudyURIs:    map[int]*URI{},
		MsRuns:               map[int]*MsRun{},
		Samples:              map[int]*Sample{},
		Assays:               map[int]*Assay{},
		StudyVariables:       map[int]*StudyVariable{},
		Customs:              map[int]*ParamElement{},
		CVs:                  map[int]*CV{},
		Databases:            map[int]*Database{},
		DerivatizationAgents: map[int]*ParamElement{},
		IDConfidenceMeasures: map[int]*ParamElement{},
		Lines:                map[string]int{},
	}
}

func getOrCreate[T any](m map[int]*T, idx int, mk func() *T) *T {
	if e, ok := m[idx]; ok {
		return e
	}
	e := mk()
	m[idx] = e
	return e
}

// Element returns element kind[idx], creating it when absent.
func (m *Metadata) Element(kind Kind, idx int) (Element, error) {
	r := NewRef(kind, idx)
	switch kind {
	case KindSampleProcessing:
		return getOrCreate(m.SampleProcessings, idx, func() *SampleProcessing { return &SampleProcessing{Ref: r} }), nil
	case KindInstrument:
		return getOrCreate(m.Instruments, idx, func() *Instrument { return &Instrument{Ref: r} }), nil
	case KindSoftware:
		return getOrCreate(m.Software, idx, func() *Software { return &Software{Ref: r} }), nil
	case KindPublication:
		return getOrCreate(m.Publications, idx, func() *Publication { return &Publication{Ref: r} }), nil
	case KindContact:
		return getOrCreate(m.Contacts, idx, func() *Contact { return &Contact{Ref: r} }), nil
	case KindURI:
		return getOrCreate(m.URIs, idx, func() *URI { return &URI{Ref: r} }), nil
	case KindExternalStudyURI:
		return getOrCreate(m.ExternalStudyURIs, idx, func() *URI { return &URI{Ref: r} }), nil
	case KindMsRun:
		return getOrCreate(m.MsRuns, idx, func() *MsRun { return &MsRun{Ref: r} }), nil
	case KindSample:
		return getOrCreate(m.Samples, idx, func() *Sample { return &Sample{Ref: r} }), nil
	case KindAssay:
		return getOrCreate(m.Assays, idx, func() *Assay { return &Assay{Ref: r} }), nil
	case KindStudyVariable:
		return getOrCreate(m.StudyVariables, idx, func() *StudyVariable { return &StudyVariable{Ref: r} }), nil
	case KindCustom:
		return getOrCreate(m.Customs, idx, func() *ParamElement { return &ParamElement{Ref: r} }), nil
	case KindCV:
		return getOrCreate(m.CVs, idx, func() *CV { return &CV{Ref: r} }), nil
	case KindDatabase:
		return getOrCreate(m.Databases, idx, func() *Database { return &Database{Ref: r} }), nil
	case KindDerivatizationAgent:
		return getOrCreate(m.DerivatizationAgents, idx, func() *ParamElement { return &ParamElement{Ref: r} }), nil
	case KindIDConfidenceMeasure:
		return getOrCreate(m.IDConfidenceMeasures, idx, func() *ParamElement { return &ParamElement{Ref: r} }), nil
	}
	return nil, fmt.Errorf("unknown element kind %q", kind)
}

// Lookup returns element kind[idx] without creating it.
func (m *Metadata) Lookup(kind Kind, idx int) (Element, bool) {
	for _, e := range m.Elements(kind) {
		if e.Index() == idx {
			return e, true
		}
	}
	return nil, false
}

// Elements returns every element of kind in ascending index order.
func (m *Metadata) Elements(kind Kind) []Element {
	switch kind {
	case KindSampleProcessing:
		return elementsOf(m.SampleProcessings)
	case KindInstrument:
		return elementsOf(m.Instruments)
	case KindSoftware:
		return elementsOf(m.Software)
	case KindPublication:
		return elementsOf(m.Publications)
	case KindContact:
		return elementsOf(m.Contacts)
	case KindURI:
		return elementsOf(m.URIs)
	case KindExternalStudyURI:
		return elementsOf(m.ExternalStudyURIs)
	case KindMsRun:
		return elementsOf(m.MsRuns)
	case KindSample:
		return elementsOf(m.Samples)
	case KindAssay:
		return elementsOf(m.Assays)
	case KindStudyVariable:
		return elementsOf(m.StudyVariables)
	case KindCustom:
		return elementsOf(m.Customs)
	case KindCV:
		return elementsOf(m.CVs)
	case KindDatabase:
		return elementsOf(m.Databases)
	case KindDerivatizationAgent:
		return elementsOf(m.DerivatizationAgents)
	case KindIDConfidenceMeasure:
		return elementsOf(m.IDConfidenceMeasures)
	}
	return nil
}

func elementsOf[T any, P interface {
	*T
	Element
}](m map[int]*T) []Element {
	out := make([]Element, 0, len(m))
	for _, k := range SortedKeys(m) {
		out = append(out, P(m[k]))
	}
	return out
}

// Params exposes the root-level parameter properties by bean name.
func (m *Metadata) Params(property string) ([]Parameter, error) {
	switch property {
	case "quantificationMethod":
		return one(m.QuantificationMethod), nil
	case "smallMoleculeQuantificationUnit":
		return one(m.SmallMoleculeQuantificationUnit), nil
	case "smallMoleculeFeatureQuantificationUnit":
		return one(m.SmallMoleculeFeatureQuantificationUnit), nil
	case "smallMoleculeIdentificationReliability":
		return one(m.SmallMoleculeIdentificationReliability), nil
	}
	return nil, unknownProperty(Ref{K: "mzTab"}, property)
}

// AllParams returns every parameter stored anywhere in the graph together
// with its bean-style path, in canonical order.
func (m *Metadata) AllParams() []LocatedParam {
	var out []LocatedParam
	add := func(path string, ps ...Parameter) {
		for _, p := range ps {
			out = append(out, LocatedParam{Path: path, Param: p})
		}
	}
	for _, prop := range []string{"quantificationMethod", "smallMoleculeQuantificationUnit", "smallMoleculeFeatureQuantificationUnit", "smallMoleculeIdentificationReliability"} {
		ps, _ := m.Params(prop)
		add("mzTab-"+prop, ps...)
	}
	for _, kind := range Kinds {
		props := kindParamProperties[kind]
		for _, e := range m.Elements(kind) {
			src, ok := e.(ParamSource)
			if !ok {
				continue
			}
			for _, prop := range props {
				ps, err := src.Params(prop)
				if err != nil {
					continue
				}
				add(Path(e, prop), ps...)
			}
		}
	}
	for _, u := range m.ColumnUnits {
		add("colunit-"+u.Section.Name()+"-"+u.Column, u.Unit)
	}
	return out
}

// LocatedParam is a parameter together with its element path.
type LocatedParam struct {
	Path  string
	Param Parameter
}

// kindParamProperties lists the parameter-valued properties of each kind.
var kindParamProperties = map[Kind][]string{
	KindSampleProcessing:    {"parameter"},
	KindInstrument:          {"name", "source", "analyzer", "detector"},
	KindSoftware:            {"parameter"},
	KindMsRun:               {"format", "idFormat", "fragmentationMethod", "scanPolarity", "hashMethod"},
	KindSample:              {"species", "tissue", "cellType", "disease", "custom"},
	KindAssay:               {"custom"},
	KindStudyVariable:       {"averageFunction", "variationFunction", "factors"},
	KindCustom:              {"parameter"},
	KindDatabase:            {"parameter"},
	KindDerivatizationAgent: {"parameter"},
	KindIDConfidenceMeasure: {"parameter"},
}

// ParamProperties returns the parameter-valued property names of kind.
func ParamProperties(kind Kind) []string {
	return kindParamProperties[kind]
}
