package ontology

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/vvka-141/mztabm/pkg/mztab"
)

type graphEntry struct {
	term     mztab.Term
	parents  []string
	obsolete bool
}

// Graph is an in-memory ontology. It is safe for concurrent use.
type Graph struct {
	mu       sync.RWMutex
	entries  map[string]*graphEntry
	children map[string][]string
}

func NewGraph() *Graph {
	return &Graph{
		entries:  make(map[string]*graphEntry),
		children: make(map[string][]string),
	}
}

// Add inserts or replaces a term with the accessions of its direct parents.
func (g *Graph) Add(term mztab.Term, parents ...string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.add(&graphEntry{term: term, parents: parents})
}

func (g *Graph) add(e *graphEntry) {
	if e.term.Label == "" {
		e.term.Label = mztab.NewTerm(e.term.Accession).Label
	}
	if old, ok := g.entries[e.term.Accession]; ok {
		for _, p := range old.parents {
			g.children[p] = remove(g.children[p], e.term.Accession)
		}
	}
	g.entries[e.term.Accession] = e
	for _, p := range e.parents {
		g.children[p] = append(g.children[p], e.term.Accession)
	}
}

func remove(list []string, s string) []string {
	out := list[:0]
	for _, v := range list {
		if v != s {
			out = append(out, v)
		}
	}
	return out
}

func (g *Graph) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.entries)
}

// Term returns the stored term for accession.
func (g *Graph) Term(accession string) (mztab.Term, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	e, ok := g.entries[accession]
	if !ok {
		return mztab.Term{}, false
	}
	return e.term, true
}

// Obsolete reports whether accession is flagged is_obsolete.
func (g *Graph) Obsolete(accession string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	e, ok := g.entries[accession]
	return ok && e.obsolete
}

// Terms returns every term ordered by accession.
func (g *Graph) Terms() []mztab.Term {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]mztab.Term, 0, len(g.entries))
	for _, e := range g.entries {
		out = append(out, e.term)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Accession < out[j].Accession })
	return out
}

// Parents returns the direct parent accessions of accession.
func (g *Graph) Parents(accession string) []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if e, ok := g.entries[accession]; ok {
		return append([]string(nil), e.parents...)
	}
	return nil
}

func (g *Graph) lookup(accession string) (*graphEntry, error) {
	e, ok := g.entries[accession]
	if !ok {
		return nil, fmt.Errorf("%s: %w", accession, mztab.ErrTermNotFound)
	}
	return e, nil
}

func (g *Graph) resolve(accessions []string) []mztab.Term {
	out := make([]mztab.Term, 0, len(accessions))
	for _, a := range accessions {
		if e, ok := g.entries[a]; ok {
			out = append(out, e.term)
		} else {
			out = append(out, mztab.NewTerm(a))
		}
	}
	return out
}

func (g *Graph) ResolveChildren(ctx context.Context, term mztab.Term) ([]mztab.Term, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if _, err := g.lookup(term.Accession); err != nil {
		return nil, err
	}
	children := append([]string(nil), g.children[term.Accession]...)
	sort.Strings(children)
	return g.resolve(children), nil
}

func (g *Graph) ResolveParents(ctx context.Context, term mztab.Term, maxDepth int) ([]mztab.Term, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if _, err := g.lookup(term.Accession); err != nil {
		return nil, err
	}
	return walkParents(ctx, term, maxDepth, func(_ context.Context, t mztab.Term) ([]mztab.Term, error) {
		e, ok := g.entries[t.Accession]
		if !ok {
			return nil, nil
		}
		return g.resolve(e.parents), nil
	})
}

func (g *Graph) Compare(ctx context.Context, reference, candidate mztab.Term, maxDepth int) (mztab.Relation, error) {
	return Relate(ctx, g, reference, candidate, maxDepth)
}

// LoadOBOFile reads an OBO 1.2/1.4 file.
func LoadOBOFile(path string) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open ontology %s: %w", path, err)
	}
	defer f.Close()

	g, err := LoadOBO(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

// LoadOBO reads the [Term] stanzas of an OBO document. Only id, name,
// is_a, relationship: part_of and is_obsolete are interpreted.
func LoadOBO(r io.Reader) (*Graph, error) {
	g := NewGraph()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 4*1024*1024)

	var current *graphEntry
	inTerm := false
	flush := func() {
		if current != nil && current.term.Accession != "" {
			g.add(current)
		}
		current = nil
	}

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "!") {
			continue
		}
		if strings.HasPrefix(line, "[") {
			flush()
			inTerm = line == "[Term]"
			if inTerm {
				current = &graphEntry{}
			}
			continue
		}
		if !inTerm {
			continue
		}
		tag, value, ok := strings.Cut(line, ":")
		if !ok {
			return nil, fmt.Errorf("line %d: malformed tag-value pair %q", lineNo, line)
		}
		value = stripTrailing(strings.TrimSpace(value))
		switch tag {
		case "id":
			current.term = mztab.NewTerm(value)
		case "name":
			current.term.Name = value
		case "is_a":
			current.parents = append(current.parents, firstField(value))
		case "relationship":
			fields := strings.Fields(value)
			if len(fields) >= 2 && fields[0] == "part_of" {
				current.parents = append(current.parents, fields[1])
			}
		case "is_obsolete":
			current.obsolete = value == "true"
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read ontology: %w", err)
	}
	flush()
	return g, nil
}

// stripTrailing drops a trailing "! comment" and "{qualifiers}".
func stripTrailing(v string) string {
	if i := strings.Index(v, " !"); i >= 0 {
		v = v[:i]
	}
	if i := strings.Index(v, " {"); i >= 0 {
		v = v[:i]
	}
	return strings.TrimSpace(v)
}

func firstField(v string) string {
	if f := strings.Fields(v); len(f) > 0 {
		return f[0]
	}
	return v
}
