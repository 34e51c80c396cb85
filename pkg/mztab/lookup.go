package mztab

import (
	"context"
	"strings"
)

// Term identifies one ontology term.
// Label is the ontology prefix ("MS"), Accession the full id ("MS:1000560").
type Term struct {
	Label     string `json:"label" yaml:"label"`
	Accession string `json:"accession" yaml:"accession"`
	Name      string `json:"name,omitempty" yaml:"name,omitempty"`
}

// NewTerm builds a Term from an accession, deriving the label from its prefix.
func NewTerm(accession string) Term {
	label, _, _ := strings.Cut(accession, ":")
	return Term{Label: label, Accession: accession}
}

// Same reports whether two terms denote the same ontology entry.
func (t Term) Same(o Term) bool {
	return strings.EqualFold(t.Label, o.Label) && t.Accession == o.Accession
}

func (t Term) String() string {
	if t.Name == "" {
		return t.Accession
	}
	return t.Accession + " (" + t.Name + ")"
}

// Relation is the outcome of comparing a reference term with a candidate.
type Relation int

const (
	// NotRelated means the candidate is neither the reference nor below it.
	NotRelated Relation = iota
	// Identical means both terms share label and accession.
	Identical
	// ChildOf means the candidate descends from the reference.
	ChildOf
)

func (r Relation) String() string {
	switch r {
	case Identical:
		return "IDENTICAL"
	case ChildOf:
		return "CHILD_OF"
	default:
		return "NOT_RELATED"
	}
}

// TermLookup is the ontology capability consumed by semantic validation.
// Implementations may be backed by a remote service, a database or a local
// file; all of them must be safe for concurrent use.
type TermLookup interface {
	// ResolveChildren returns the direct children of term.
	ResolveChildren(ctx context.Context, term Term) ([]Term, error)

	// ResolveParents returns the ancestors of term up to maxDepth levels.
	// A negative maxDepth walks until no parent remains.
	ResolveParents(ctx context.Context, term Term, maxDepth int) ([]Term, error)

	// Compare reports how candidate relates to reference, walking at most
	// maxDepth ancestor levels of candidate.
	Compare(ctx context.Context, reference, candidate Term, maxDepth int) (Relation, error)
}
