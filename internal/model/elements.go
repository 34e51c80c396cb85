package model

import (
	"fmt"
	"sort"

	"github.com/vvka-141/mztabm/pkg/mztab"
)

// SampleProcessing is sample_processing[n]: an ordered list of processing steps.
type SampleProcessing struct {
	Ref
	Steps []Parameter
}

// Instrument is instrument[n].
type Instrument struct {
	Ref
	Name      *Parameter
	Source    *Parameter
	Analyzers map[int]Parameter
	Detector  *Parameter
}

// Software is software[n] with its numbered settings.
type Software struct {
	Ref
	Param    *Parameter
	Settings map[int]string
}

// Publication is publication[n]: a "|" list of pubmed:/doi: items.
type Publication struct {
	Ref
	Items []string
}

// Contact is contact[n].
type Contact struct {
	Ref
	Name        string
	Affiliation string
	Email       string
	ORCID       string
}

// URI is uri[n] or external_study_uri[n].
type URI struct {
	Ref
	Value string
}

// MsRun is ms_run[n].
type MsRun struct {
	Ref
	Location             string
	InstrumentRef        int
	Format               *Parameter
	IDFormat             *Parameter
	FragmentationMethods map[int]Parameter
	ScanPolarity         map[int]Parameter
	FileHash             string
	HashMethod           *Parameter
}

// Sample is sample[n].
type Sample struct {
	Ref
	Name        string
	Species     map[int]Parameter
	Tissue      map[int]Parameter
	CellType    map[int]Parameter
	Disease     map[int]Parameter
	Description string
	Custom      map[int]Parameter
}

// Assay is assay[n].
type Assay struct {
	Ref
	Name        string
	Custom      map[int]Parameter
	ExternalURI string
	SampleRef   int
	MsRunRefs   []int
}

// StudyVariable is study_variable[n].
type StudyVariable struct {
	Ref
	Name              string
	AssayRefs         []int
	AverageFunction   *Parameter
	VariationFunction *Parameter
	Description       string
	Factors           []Parameter
}

// CV is cv[n].
type CV struct {
	Ref
	Label    string
	FullName string
	Version  string
	URI      string
}

// Database is database[n].
type Database struct {
	Ref
	Param   *Parameter
	Prefix  string
	Version string
	URI     string
}

// ParamElement is an element whose only property is one parameter:
// custom[n], derivatization_agent[n] and id_confidence_measure[n].
type ParamElement struct {
	Ref
	Param *Parameter
}

func (e *SampleProcessing) Params(property string) ([]Parameter, error) {
	switch property {
	case "parameter", "sampleProcessing":
		return e.Steps, nil
	}
	return nil, unknownProperty(e.Ref, property)
}

func (e *Instrument) Params(property string) ([]Parameter, error) {
	switch property {
	case "name":
		return one(e.Name), nil
	case "source":
		return one(e.Source), nil
	case "analyzer":
		return Ordered(e.Analyzers), nil
	case "detector":
		return one(e.Detector), nil
	}
	return nil, unknownProperty(e.Ref, property)
}

func (e *Software) Params(property string) ([]Parameter, error) {
	if property == "parameter" {
		return one(e.Param), nil
	}
	return nil, unknownProperty(e.Ref, property)
}

func (e *Publication) Params(property string) ([]Parameter, error) {
	return nil, unknownProperty(e.Ref, property)
}

func (e *Contact) Params(property string) ([]Parameter, error) {
	return nil, unknownProperty(e.Ref, property)
}

func (e *URI) Params(property string) ([]Parameter, error) {
	return nil, unknownProperty(e.Ref, property)
}

func (e *MsRun) Params(property string) ([]Parameter, error) {
	switch property {
	case "format":
		return one(e.Format), nil
	case "idFormat":
		return one(e.IDFormat), nil
	case "fragmentationMethod":
		return Ordered(e.FragmentationMethods), nil
	case "scanPolarity":
		return Ordered(e.ScanPolarity), nil
	case "hashMethod":
		return one(e.HashMethod), nil
	}
	return nil, unknownProperty(e.Ref, property)
}

func (e *Sample) Params(property string) ([]Parameter, error) {
	switch property {
	case "species":
		return Ordered(e.Species), nil
	case "tissue":
		return Ordered(e.Tissue), nil
	case "cellType":
		return Ordered(e.CellType), nil
	case "disease":
		return Ordered(e.Disease), nil
	case "custom":
		return Ordered(e.Custom), nil
	}
	return nil, unknownProperty(e.Ref, property)
}

func (e *Assay) Params(property string) ([]Parameter, error) {
	if property == "custom" {
		return Ordered(e.Custom), nil
	}
	return nil, unknownProperty(e.Ref, property)
}

func (e *StudyVariable) Params(property string) ([]Parameter, error) {
	switch property {
	case "averageFunction":
		return one(e.AverageFunction), nil
	case "variationFunction":
		return one(e.VariationFunction), nil
	case "factors":
		return e.Factors, nil
	}
	return nil, unknownProperty(e.Ref, property)
}

func (e *CV) Params(property string) ([]Parameter, error) {
	return nil, unknownProperty(e.Ref, property)
}

func (e *Database) Params(property string) ([]Parameter, error) {
	if property == "parameter" {
		return one(e.Param), nil
	}
	return nil, unknownProperty(e.Ref, property)
}

func (e *ParamElement) Params(property string) ([]Parameter, error) {
	if property == "parameter" {
		return one(e.Param), nil
	}
	return nil, unknownProperty(e.Ref, property)
}

// IsNoDatabase reports whether d is the reserved "no database" entry.
func (d *Database) IsNoDatabase() bool {
	return d.Param != nil && d.Param.Name == "no database"
}

// Ordered returns the parameters of an indexed sub-property in ascending index order.
func Ordered(m map[int]Parameter) []Parameter {
	if len(m) == 0 {
		return nil
	}
	out := make([]Parameter, 0, len(m))
	for _, k := range SortedKeys(m) {
		out = append(out, m[k])
	}
	return out
}

// SortedKeys returns the keys of an index map in ascending order.
func SortedKeys[V any](m map[int]V) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

func one(p *Parameter) []Parameter {
	if p == nil {
		return nil
	}
	return []Parameter{*p}
}

func unknownProperty(r Ref, property string) error {
	return fmt.Errorf("%w: %s has no parameter property %q", mztab.ErrInvalidArgument, r, property)
}
