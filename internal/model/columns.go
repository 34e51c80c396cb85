package model

import (
	"strconv"
	"strings"
)

// CellType is the value type a column holds.
type CellType int

const (
	CellString CellType = iota
	CellStringList
	CellInteger
	CellIntegerList
	CellDouble
	CellDoubleList
	CellParam
	CellSpectraRefList
)

func (t CellType) String() string {
	switch t {
	case CellString:
		return "string"
	case CellStringList:
		return "string list"
	case CellInteger:
		return "integer"
	case CellIntegerList:
		return "integer list"
	case CellDouble:
		return "double"
	case CellDoubleList:
		return "double list"
	case CellParam:
		return "parameter"
	case CellSpectraRefList:
		return "spectra reference list"
	}
	return "unknown"
}

// ColumnDef describes a fixed or indexed column.
type ColumnDef struct {
	Name string
	Type CellType
	// Mandatory columns must not hold null.
	Mandatory bool
	// IndexKind is set for indexed columns such as abundance_assay[n].
	IndexKind Kind
}

// Property returns the bean name of the column used in CV mapping paths.
func (d *ColumnDef) Property() string {
	return Camel(strings.ToLower(d.Name))
}

var summaryColumns = []ColumnDef{
	{Name: "SML_ID", Type: CellInteger, Mandatory: true},
	{Name: "SMF_ID_REFS", Type: CellIntegerList},
	{Name: "database_identifier", Type: CellStringList},
	{Name: "chemical_formula", Type: CellStringList},
	{Name: "smiles", Type: CellStringList},
	{Name: "inchi", Type: CellStringList},
	{Name: "chemical_name", Type: CellStringList},
	{Name: "uri", Type: CellStringList},
	{Name: "theoretical_neutral_mass", Type: CellDoubleList},
	{Name: "adduct_ions", Type: CellStringList},
	{Name: "reliability", Type: CellString},
	{Name: "best_id_confidence_measure", Type: CellParam},
	{Name: "best_id_confidence_value", Type: CellDouble},
}

var featureColumns = []ColumnDef{
	{Name: "SMF_ID", Type: CellInteger, Mandatory: true},
	{Name: "SME_ID_REFS", Type: CellIntegerList},
	{Name: "SME_ID_REF_ambiguity_code", Type: CellInteger},
	{Name: "adduct_ion", Type: CellString},
	{Name: "isotopomer", Type: CellParam},
	{Name: "exp_mass_to_charge", Type: CellDouble, Mandatory: true},
	{Name: "charge", Type: CellInteger, Mandatory: true},
	{Name: "retention_time_in_seconds", Type: CellDouble},
	{Name: "retention_time_in_seconds_start", Type: CellDouble},
	{Name: "retention_time_in_seconds_end", Type: CellDouble},
}

var evidenceColumns = []ColumnDef{
	{Name: "SME_ID", Type: CellInteger, Mandatory: true},
	{Name: "evidence_input_id", Type: CellString, Mandatory: true},
	{Name: "database_identifier", Type: CellString, Mandatory: true},
	{Name: "chemical_formula", Type: CellString},
	{Name: "smiles", Type: CellString},
	{Name: "inchi", Type: CellString},
	{Name: "chemical_name", Type: CellString},
	{Name: "uri", Type: CellString},
	{Name: "derivatized_form", Type: CellParam},
	{Name: "adduct_ion", Type: CellString},
	{Name: "exp_mass_to_charge", Type: CellDouble, Mandatory: true},
	{Name: "charge", Type: CellInteger, Mandatory: true},
	{Name: "theoretical_mass_to_charge", Type: CellDouble, Mandatory: true},
	{Name: "spectra_ref", Type: CellSpectraRefList, Mandatory: true},
	{Name: "identification_method", Type: CellParam, Mandatory: true},
	{Name: "ms_level", Type: CellParam, Mandatory: true},
	{Name: "rank", Type: CellInteger, Mandatory: true},
}

var indexedColumns = map[SectionKind][]ColumnDef{
	SectionSummary: {
		{Name: "abundance_assay", Type: CellDouble, IndexKind: KindAssay},
		{Name: "abundance_study_variable", Type: CellDouble, IndexKind: KindStudyVariable},
		{Name: "abundance_variation_study_variable", Type: CellDouble, IndexKind: KindStudyVariable},
	},
	SectionFeature: {
		{Name: "abundance_assay", Type: CellDouble, IndexKind: KindAssay},
	},
	SectionEvidence: {
		{Name: "id_confidence_measure", Type: CellDouble, IndexKind: KindIDConfidenceMeasure},
	},
}

// FixedColumns returns the required columns of section k in canonical order.
func FixedColumns(k SectionKind) []ColumnDef {
	switch k {
	case SectionSummary:
		return summaryColumns
	case SectionFeature:
		return featureColumns
	case SectionEvidence:
		return evidenceColumns
	}
	return nil
}

// IDColumn returns the name of the row identifier column of section k.
func IDColumn(k SectionKind) string {
	return string(k) + "_ID"
}

// FixedColumn returns the definition of a fixed column by name.
func FixedColumn(k SectionKind, name string) (*ColumnDef, bool) {
	cols := FixedColumns(k)
	for i := range cols {
		if cols[i].Name == name {
			return &cols[i], true
		}
	}
	return nil, false
}

// IndexedColumn matches names such as "abundance_assay[3]" against the
// indexed columns of section k. ok is false when no prefix matches; err is
// set when a prefix matches but the index is malformed.
func IndexedColumn(k SectionKind, name string) (def *ColumnDef, idx int, ok bool, err error) {
	defs := indexedColumns[k]
	for i := range defs {
		prefix := defs[i].Name + "["
		if !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, "]") {
			continue
		}
		n, perr := ParseIndex(name[len(prefix) : len(name)-1])
		if perr != nil {
			return &defs[i], 0, true, perr
		}
		return &defs[i], n, true, nil
	}
	return nil, 0, false, nil
}

// IndexedColumnName renders prefix[idx].
func IndexedColumnName(def *ColumnDef, idx int) string {
	return def.Name + "[" + strconv.Itoa(idx) + "]"
}

// IndexedColumns returns the indexed column families of section k.
func IndexedColumns(k SectionKind) []ColumnDef {
	return indexedColumns[k]
}

// ParseIndex parses a 1-based element index. It rejects non-numeric, zero,
// negative and values beyond the 32-bit signed range.
func ParseIndex(s string) (int, error) {
	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, err
	}
	if n < 1 {
		return 0, strconv.ErrRange
	}
	return int(n), nil
}
