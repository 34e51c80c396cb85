package model

import "strings"

// Kind names a family of indexed metadata elements, spelled as in mzTab keys.
type Kind string

const (
	KindSampleProcessing    Kind = "sample_processing"
	KindInstrument          Kind = "instrument"
	KindSoftware            Kind = "software"
	KindPublication         Kind = "publication"
	KindContact             Kind = "contact"
	KindURI                 Kind = "uri"
	KindExternalStudyURI    Kind = "external_study_uri"
	KindMsRun               Kind = "ms_run"
	KindSample              Kind = "sample"
	KindAssay               Kind = "assay"
	KindStudyVariable       Kind = "study_variable"
	KindCustom              Kind = "custom"
	KindCV                  Kind = "cv"
	KindDatabase            Kind = "database"
	KindDerivatizationAgent Kind = "derivatization_agent"
	KindIDConfidenceMeasure Kind = "id_confidence_measure"
)

// Kinds lists every indexed element kind in canonical serialization order.
var Kinds = []Kind{
	KindSampleProcessing,
	KindInstrument,
	KindSoftware,
	KindPublication,
	KindContact,
	KindURI,
	KindExternalStudyURI,
	KindMsRun,
	KindSample,
	KindAssay,
	KindStudyVariable,
	KindCustom,
	KindCV,
	KindDatabase,
	KindDerivatizationAgent,
	KindIDConfidenceMeasure,
}

var knownKinds = func() map[Kind]bool {
	m := make(map[Kind]bool, len(Kinds))
	for _, k := range Kinds {
		m[k] = true
	}
	return m
}()

// ParseKind returns the kind spelled s, if known.
func ParseKind(s string) (Kind, bool) {
	k := Kind(s)
	return k, knownKinds[k]
}

// Bean returns the camel-case spelling used in element paths ("msRun").
func (k Kind) Bean() string {
	return camel(string(k))
}

// KindFromBean maps a camel-case spelling back to a kind.
func KindFromBean(s string) (Kind, bool) {
	for _, k := range Kinds {
		if k.Bean() == s {
			return k, true
		}
	}
	return "", false
}

// camel converts snake_case to lowerCamelCase.
func camel(s string) string {
	parts := strings.Split(s, "_")
	var b strings.Builder
	b.Grow(len(s))
	for i, p := range parts {
		if p == "" {
			continue
		}
		if i == 0 {
			b.WriteString(p)
			continue
		}
		b.WriteString(strings.ToUpper(p[:1]))
		b.WriteString(p[1:])
	}
	return b.String()
}

// Camel is the exported form of the snake-to-camel conversion used for property paths.
func Camel(s string) string {
	return camel(s)
}
