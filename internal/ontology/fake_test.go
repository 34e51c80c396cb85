package ontology

import (
	"context"
	"sync"

	"github.com/vvka-141/mztabm/pkg/mztab"
)

// countingLookup records calls made to the wrapped lookup.
type countingLookup struct {
	next mztab.TermLookup

	mu       sync.Mutex
	parents  int
	children int
	compares int
}

func (c *countingLookup) ResolveChildren(ctx context.Context, term mztab.Term) ([]mztab.Term, error) {
	c.mu.Lock()
	c.children++
	c.mu.Unlock()
	return c.next.ResolveChildren(ctx, term)
}

func (c *countingLookup) ResolveParents(ctx context.Context, term mztab.Term, maxDepth int) ([]mztab.Term, error) {
	c.mu.Lock()
	c.parents++
	c.mu.Unlock()
	return c.next.ResolveParents(ctx, term, maxDepth)
}

func (c *countingLookup) Compare(ctx context.Context, reference, candidate mztab.Term, maxDepth int) (mztab.Relation, error) {
	c.mu.Lock()
	c.compares++
	c.mu.Unlock()
	return c.next.Compare(ctx, reference, candidate, maxDepth)
}

func (c *countingLookup) counts() (parents, children, compares int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.parents, c.children, c.compares
}
