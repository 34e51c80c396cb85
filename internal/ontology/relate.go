package ontology

import (
	"context"

	"github.com/vvka-141/mztabm/pkg/mztab"
)

// ParentResolver is the part of mztab.TermLookup that Relate needs.
type ParentResolver interface {
	ResolveParents(ctx context.Context, term mztab.Term, maxDepth int) ([]mztab.Term, error)
}

// Relate reports Identical when both terms are the same entry, ChildOf when
// reference appears among the first maxDepth ancestor levels of candidate,
// and NotRelated otherwise. A failed ancestor lookup returns NotRelated
// together with the error.
func Relate(ctx context.Context, parents ParentResolver, reference, candidate mztab.Term, maxDepth int) (mztab.Relation, error) {
	if reference.Same(candidate) {
		return mztab.Identical, nil
	}
	ancestors, err := parents.ResolveParents(ctx, candidate, maxDepth)
	if err != nil {
		return mztab.NotRelated, err
	}
	for _, a := range ancestors {
		if a.Same(reference) {
			return mztab.ChildOf, nil
		}
	}
	return mztab.NotRelated, nil
}

// walkParents collects ancestors breadth first, one level per step, without
// duplicates and without the start term itself.
func walkParents(ctx context.Context, start mztab.Term, maxDepth int, parentsOf func(context.Context, mztab.Term) ([]mztab.Term, error)) ([]mztab.Term, error) {
	seen := map[string]bool{start.Accession: true}
	var out []mztab.Term
	level := []mztab.Term{start}
	for depth := 0; len(level) > 0 && (maxDepth < 0 || depth < maxDepth); depth++ {
		var next []mztab.Term
		for _, t := range level {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			parents, err := parentsOf(ctx, t)
			if err != nil {
				return nil, err
			}
			for _, p := range parents {
				if seen[p.Accession] {
					continue
				}
				seen[p.Accession] = true
				out = append(out, p)
				next = append(next, p)
			}
		}
		level = next
	}
	return out, nil
}
