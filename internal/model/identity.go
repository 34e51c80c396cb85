package model

import (
	"fmt"
	"strconv"

	"github.com/minio/highwayhash"

	"github.com/vvka-141/mztabm/pkg/mztab"
)

// hashKey is fixed so element hashes are stable across processes.
var hashKey = []byte("mztabm/element-identity/v1/key!!")

// Indexed is the identity capability of a numbered metadata element.
type Indexed interface {
	// Index returns the author-assigned, 1-based index.
	Index() int
	// Hash returns a stable hash consistent with kind and index.
	Hash() uint64
	// String returns the display form, e.g. "ms_run[1]".
	String() string
}

// Element is an indexed element that also knows its kind.
type Element interface {
	Indexed
	Kind() Kind
}

// ParamSource exposes the CV parameters stored under a property name.
type ParamSource interface {
	Params(property string) ([]Parameter, error)
}

// Ref is an element identity without properties.
type Ref struct {
	K   Kind
	Idx int
}

// NewRef returns the identity of element kind[index].
func NewRef(kind Kind, index int) Ref {
	return Ref{K: kind, Idx: index}
}

func (r Ref) Index() int   { return r.Idx }
func (r Ref) Kind() Kind   { return r.K }
func (r Ref) Hash() uint64 { return hashOf(r.K, r.Idx) }
func (r Ref) String() string {
	return display(r.K, r.Idx)
}

// Params is not available on a bare identity.
func (r Ref) Params(property string) ([]Parameter, error) {
	return nil, fmt.Errorf("%w: Params(%q) on %s", mztab.ErrUnsupportedOperation, property, r)
}

// RefOf returns the bare identity of any element.
func RefOf(e Element) Ref {
	return Ref{K: e.Kind(), Idx: e.Index()}
}

// Path renders the bean-style location of an element property,
// e.g. Path(run, "scanPolarity") == "msRun[1]-scanPolarity".
func Path(e Element, property string) string {
	p := e.Kind().Bean() + "[" + strconv.Itoa(e.Index()) + "]"
	if property == "" {
		return p
	}
	return p + "-" + property
}

func display(k Kind, idx int) string {
	return string(k) + "[" + strconv.Itoa(idx) + "]"
}

func hashOf(k Kind, idx int) uint64 {
	return highwayhash.Sum64([]byte(display(k, idx)), hashKey)
}
