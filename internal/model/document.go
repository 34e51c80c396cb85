package model

// SectionKind identifies a tabular section by its row prefix.
type SectionKind string

const (
	SectionSummary  SectionKind = "SML"
	SectionFeature  SectionKind = "SMF"
	SectionEvidence SectionKind = "SME"
)

// Sections lists the table sections in the order they must appear.
var Sections = []SectionKind{SectionSummary, SectionFeature, SectionEvidence}

// HeaderPrefix returns the line prefix of the section's header line.
func (k SectionKind) HeaderPrefix() string {
	switch k {
	case SectionSummary:
		return "SMH"
	case SectionFeature:
		return "SFH"
	case SectionEvidence:
		return "SEH"
	}
	return ""
}

// Name returns the section name used by colunit directives.
func (k SectionKind) Name() string {
	switch k {
	case SectionSummary:
		return "small_molecule"
	case SectionFeature:
		return "small_molecule_feature"
	case SectionEvidence:
		return "small_molecule_evidence"
	}
	return string(k)
}

// Bean returns the section name used in CV mapping paths.
func (k SectionKind) Bean() string {
	switch k {
	case SectionSummary:
		return "smallMoleculeSummary"
	case SectionFeature:
		return "smallMoleculeFeature"
	case SectionEvidence:
		return "smallMoleculeEvidence"
	}
	return string(k)
}

// Order returns the position of k in Sections, or -1.
func (k SectionKind) Order() int {
	for i, s := range Sections {
		if s == k {
			return i
		}
	}
	return -1
}

// SectionByName maps a colunit section name back to its kind.
func SectionByName(name string) (SectionKind, bool) {
	for _, s := range Sections {
		if s.Name() == name {
			return s, true
		}
	}
	return "", false
}

// Comment is a COM line.
type Comment struct {
	Line int
	Text string
}

// Column is one header column.
type Column struct {
	Name string
	// Def is set for fixed and indexed columns; nil for optional columns.
	Def *ColumnDef
	// Element is the metadata element an indexed or element-scoped
	// optional column refers to.
	Element *Ref
	// Param is set for CV-named optional columns.
	Param    *Parameter
	Optional bool
}

// Header is the ordered column set of a section.
type Header struct {
	Line    int
	Columns []Column
}

// Index returns the position of the named column, or -1.
func (h *Header) Index(name string) int {
	if h == nil {
		return -1
	}
	for i, c := range h.Columns {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// Has reports whether the header declares the named column.
func (h *Header) Has(name string) bool {
	return h.Index(name) >= 0
}

// Names returns the column names in header order.
func (h *Header) Names() []string {
	if h == nil {
		return nil
	}
	out := make([]string, len(h.Columns))
	for i, c := range h.Columns {
		out[i] = c.Name
	}
	return out
}

// Record is one table row. Cells holds one raw value per header column that
// parsed; a short row holds fewer cells than the header has columns.
type Record struct {
	Line  int
	Cells []string
}

// Cell returns the raw value at column i, if the row has one.
func (r Record) Cell(i int) (string, bool) {
	if i < 0 || i >= len(r.Cells) {
		return "", false
	}
	return r.Cells[i], true
}

// Section is a header plus its rows.
type Section struct {
	Kind    SectionKind
	Header  *Header
	Records []Record
}

// Value returns the raw cell of the named column in row, if present.
func (s *Section) Value(row Record, column string) (string, bool) {
	return row.Cell(s.Header.Index(column))
}

// Document is the parsed form of one mzTab-M file.
type Document struct {
	Metadata *Metadata
	Comments []Comment
	Sections map[SectionKind]*Section
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	return &Document{
		Metadata: NewMetadata(),
		Sections: map[SectionKind]*Section{},
	}
}

// Section returns the section of kind k, or nil.
func (d *Document) Section(k SectionKind) *Section {
	if d == nil {
		return nil
	}
	return d.Sections[k]
}

// RowCount returns the number of rows in section k.
func (d *Document) RowCount(k SectionKind) int {
	if s := d.Section(k); s != nil {
		return len(s.Records)
	}
	return 0
}
