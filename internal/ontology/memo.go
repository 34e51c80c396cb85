package ontology

import (
	"context"
	"strconv"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/vvka-141/mztabm/pkg/mztab"
)

type memoEntry struct {
	relation mztab.Relation
	err      error
}

// Memo remembers comparisons for the lifetime of one validation pass.
// Concurrent identical comparisons share a single lookup. Failed lookups are
// remembered too, so a failing term is reported once per pass.
type Memo struct {
	next    mztab.TermLookup
	group   singleflight.Group
	mu      sync.RWMutex
	results map[string]memoEntry
}

func NewMemo(next mztab.TermLookup) *Memo {
	return &Memo{next: next, results: make(map[string]memoEntry)}
}

func (m *Memo) ResolveChildren(ctx context.Context, term mztab.Term) ([]mztab.Term, error) {
	return m.next.ResolveChildren(ctx, term)
}

func (m *Memo) ResolveParents(ctx context.Context, term mztab.Term, maxDepth int) ([]mztab.Term, error) {
	return m.next.ResolveParents(ctx, term, maxDepth)
}

func (m *Memo) Compare(ctx context.Context, reference, candidate mztab.Term, maxDepth int) (mztab.Relation, error) {
	key := reference.Label + "\x00" + reference.Accession + "\x00" + candidate.Label + "\x00" + candidate.Accession + "\x00" + strconv.Itoa(maxDepth)

	m.mu.RLock()
	e, ok := m.results[key]
	m.mu.RUnlock()
	if ok {
		return e.relation, e.err
	}

	v, _, _ := m.group.Do(key, func() (any, error) {
		m.mu.RLock()
		e, ok := m.results[key]
		m.mu.RUnlock()
		if ok {
			return e, nil
		}
		rel, err := m.next.Compare(ctx, reference, candidate, maxDepth)
		e = memoEntry{relation: rel, err: err}
		if ctx.Err() == nil {
			m.mu.Lock()
			m.results[key] = e
			m.mu.Unlock()
		}
		return e, nil
	})
	e = v.(memoEntry)
	return e.relation, e.err
}

// Len returns the number of remembered comparisons.
func (m *Memo) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.results)
}
