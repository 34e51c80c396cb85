package cvmapping

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/vvka-141/mztabm/internal/diag"
	"github.com/vvka-141/mztabm/internal/logging"
	"github.com/vvka-141/mztabm/internal/model"
	"github.com/vvka-141/mztabm/internal/ontology"
	"github.com/vvka-141/mztabm/pkg/mztab"
)

// Options tunes a Validator.
type Options struct {
	// Concurrency bounds in-flight term comparisons.
	Concurrency int
	Logger      mztab.Logger
}

// Validator applies a ruleset to documents. It holds no per-document state
// and may validate several documents concurrently.
type Validator struct {
	rules  *Ruleset
	lookup mztab.TermLookup
	opts   Options
}

func NewValidator(rules *Ruleset, lookup mztab.TermLookup, opts Options) *Validator {
	if opts.Concurrency <= 0 {
		opts.Concurrency = mztab.DefaultConcurrency
	}
	if opts.Logger == nil {
		opts.Logger = logging.NewNullLogger()
	}
	return &Validator{rules: rules, lookup: lookup, opts: opts}
}

// comparison is one (value, allowed term) pair of a rule.
type comparison struct {
	relation mztab.Relation
	err      error
}

// plan is the resolved input of one rule.
type plan struct {
	rule    Rule
	values  []Value
	results [][]comparison // [value][term]
}

// Validate returns the semantic diagnostics for doc in rule order. Lookup
// failures degrade to warnings. If ctx expires before every comparison
// finished, Validate returns an error wrapping mztab.ErrLookupTimeout and
// no diagnostics.
func (v *Validator) Validate(ctx context.Context, doc *model.Document) ([]diag.Diagnostic, error) {
	plans := make([]*plan, 0, len(v.rules.Rules))
	for _, rule := range v.rules.Rules {
		sel, err := compilePath(rule.Path)
		if err != nil {
			return nil, fmt.Errorf("%w: rule %s: %w", mztab.ErrInvalidConfig, rule.ID, err)
		}
		p := &plan{rule: rule, values: sel.resolve(doc)}
		p.results = make([][]comparison, len(p.values))
		for i := range p.results {
			p.results[i] = make([]comparison, len(rule.Terms))
		}
		plans = append(plans, p)
	}

	memo := ontology.NewMemo(v.lookup)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(v.opts.Concurrency)
	for _, p := range plans {
		for i, val := range p.values {
			if val.Param.IsUserParam() {
				continue
			}
			for j, term := range p.rule.Terms {
				p, i, j, candidate, ref := p, i, j, val.Param.Term(), term.Ref()
				g.Go(func() error {
					rel, err := memo.Compare(gctx, ref, candidate, p.rule.MaxDepth)
					if ctxErr := gctx.Err(); ctxErr != nil {
						return ctxErr
					}
					p.results[i][j] = comparison{relation: rel, err: err}
					return nil
				})
			}
		}
	}
	if err := g.Wait(); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %w", mztab.ErrLookupTimeout, err)
		}
		return nil, err
	}
	v.opts.Logger.Verbose("semantic validation: %d rules, %d distinct comparisons", len(plans), memo.Len())

	var out []diag.Diagnostic
	for _, p := range plans {
		out = append(out, p.verdict()...)
	}
	return out, nil
}

// verdict turns the comparisons of one rule into diagnostics.
func (p *plan) verdict() []diag.Diagnostic {
	r := p.rule
	level := r.Requirement.Level()
	allowed := r.termList()
	var out []diag.Diagnostic
	emit := func(d diag.Diagnostic, path string) {
		out = append(out, d.WithPath(path).WithLevel(level))
	}

	matchesPerTerm := make([]int, len(r.Terms))
	satisfied := 0
	var unmatched []diag.Diagnostic
	for i, val := range p.values {
		matched := false
		for j, term := range r.Terms {
			c := p.results[i][j]
			if c.err != nil {
				out = append(out, diag.New(diag.SemanticLookupFailed, val.Line, r.ID, term.Ref(), val.Param.Term(), c.err).WithPath(val.Path))
				continue
			}
			if term.Accepts(c.relation) {
				matched = true
				matchesPerTerm[j]++
			}
		}
		if matched {
			satisfied++
			continue
		}
		if r.Requirement == May {
			continue
		}
		unmatched = append(unmatched, diag.New(diag.SemanticUnmatched, val.Line, r.ID, val.Path, val.Param, allowed).WithPath(val.Path).WithLevel(level))
	}

	if satisfied == 0 && r.Requirement != May {
		emit(diag.New(diag.SemanticMissing, diag.NoLine, r.ID, r.Path, allowed), r.Path)
	}
	out = append(out, unmatched...)

	if satisfied > 0 {
		switch r.Combination {
		case And:
			var missing []string
			for j, n := range matchesPerTerm {
				if n == 0 {
					missing = append(missing, r.Terms[j].Ref().String())
				}
			}
			if len(missing) > 0 {
				emit(diag.New(diag.SemanticAnd, diag.NoLine, r.ID, r.Path, allowed, strings.Join(missing, ", ")), r.Path)
			}
		case Xor:
			found := 0
			for _, n := range matchesPerTerm {
				if n > 0 {
					found++
				}
			}
			if found != 1 {
				emit(diag.New(diag.SemanticXor, diag.NoLine, r.ID, r.Path, allowed, found), r.Path)
			}
		}
	}

	for j, term := range r.Terms {
		if !term.Repeatable && matchesPerTerm[j] > 1 {
			emit(diag.New(diag.SemanticNotRepeatable, diag.NoLine, r.ID, term.Ref(), r.Path, matchesPerTerm[j]), r.Path)
		}
	}
	return out
}
