package parser

import "github.com/vvka-141/mztabm/internal/model"

// State is the position of the parser in the section sequence.
type State int

const (
	ExpectingMetadata State = iota
	InMetadataOrHeader
	InTableHeader
	InTableRows
	Done
	Failed
)

func (s State) String() string {
	switch s {
	case ExpectingMetadata:
		return "ExpectingMetadata"
	case InMetadataOrHeader:
		return "InMetadataOrHeader"
	case InTableHeader:
		return "InTableHeader"
	case InTableRows:
		return "InTableRows"
	case Done:
		return "Done"
	case Failed:
		return "Failed"
	}
	return "Unknown"
}

// lineKind classifies a line by its three-letter prefix.
type lineKind int

const (
	lineUnknown lineKind = iota
	lineMetadata
	lineComment
	lineHeader
	lineRow
)

func classify(prefix string) (lineKind, model.SectionKind) {
	switch prefix {
	case "MTD":
		return lineMetadata, ""
	case "COM":
		return lineComment, ""
	case "SMH":
		return lineHeader, model.SectionSummary
	case "SFH":
		return lineHeader, model.SectionFeature
	case "SEH":
		return lineHeader, model.SectionEvidence
	case "SML":
		return lineRow, model.SectionSummary
	case "SMF":
		return lineRow, model.SectionFeature
	case "SME":
		return lineRow, model.SectionEvidence
	}
	return lineUnknown, ""
}
