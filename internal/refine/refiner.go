package refine

import (
	"sort"
	"strconv"

	"github.com/vvka-141/mztabm/internal/diag"
	"github.com/vvka-141/mztabm/internal/model"
)

// Lookup is the read side of the parser context.
type Lookup interface {
	Resolve(kind model.Kind, index int) (model.Element, bool)
	AllOf(kind model.Kind) []model.Element
	RowCount(section model.SectionKind) int
	Columns(section model.SectionKind) []string
}

// Refiner checks one element kind against the finished metadata graph.
type Refiner interface {
	// Name is the bean name of the kind the refiner owns.
	Name() string
	Refine(meta *model.Metadata, ctx Lookup) []diag.Diagnostic
}

// All returns every refiner in registration order.
func All() []Refiner {
	return []Refiner{
		rootRefiner{},
		sampleProcessingRefiner{},
		instrumentRefiner{},
		softwareRefiner{},
		publicationRefiner{},
		contactRefiner{},
		msRunRefiner{},
		sampleRefiner{},
		assayRefiner{},
		studyVariableRefiner{},
		cvRefiner{},
		databaseRefiner{},
		idConfidenceMeasureRefiner{},
		columnUnitRefiner{},
	}
}

// Run applies every refiner and concatenates their output.
func Run(meta *model.Metadata, ctx Lookup) []diag.Diagnostic {
	var out []diag.Diagnostic
	for _, r := range All() {
		out = append(out, r.Refine(meta, ctx)...)
	}
	return out
}

// report collects the diagnostics of one element so they can be emitted
// ordered by property path.
type report struct {
	meta  *model.Metadata
	items []diag.Diagnostic
}

func newReport(meta *model.Metadata) *report {
	return &report{meta: meta}
}

// add records a diagnostic of type t for e's property. key is the metadata
// key as written, used to recover the source line; it may be empty.
func (r *report) add(e model.Element, property, key string, t diag.Type, args ...interface{}) {
	r.addPath(model.Path(e, property), key, t, args...)
}

func (r *report) addPath(path, key string, t diag.Type, args ...interface{}) {
	line := diag.NoLine
	if key != "" {
		if n, ok := r.meta.Lines[key]; ok {
			line = n
		}
	}
	r.items = append(r.items, diag.New(t, line, args...).WithPath(path))
}

// flush returns the collected diagnostics ordered by path and resets r.
func (r *report) flush() []diag.Diagnostic {
	out := r.items
	sort.SliceStable(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	r.items = nil
	return out
}

// key renders a metadata key such as "ms_run[1]-location".
func key(e model.Element, sub string) string {
	k := string(e.Kind()) + "[" + strconv.Itoa(e.Index()) + "]"
	if sub != "" {
		k += "-" + sub
	}
	return k
}

func each[T any](m map[int]*T, fn func(*T)) {
	for _, k := range model.SortedKeys(m) {
		fn(m[k])
	}
}
