package cvmapping

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vvka-141/mztabm/internal/diag"
	"github.com/vvka-141/mztabm/pkg/mztab"
)

// Requirement is how strongly a rule binds.
type Requirement string

const (
	Must   Requirement = "MUST"
	Should Requirement = "SHOULD"
	May    Requirement = "MAY"
)

// Level maps the requirement to the severity of its diagnostics.
func (r Requirement) Level() diag.Level {
	switch r {
	case Must:
		return diag.Error
	case Should:
		return diag.Warn
	default:
		return diag.Info
	}
}

func parseRequirement(s string) (Requirement, error) {
	switch r := Requirement(strings.ToUpper(strings.TrimSpace(s))); r {
	case Must, Should, May:
		return r, nil
	case "":
		return May, nil
	}
	return "", fmt.Errorf("unknown requirement level %q", s)
}

// Combination is the logic joining a rule's terms.
type Combination string

const (
	Or  Combination = "OR"
	And Combination = "AND"
	Xor Combination = "XOR"
)

func parseCombination(s string) (Combination, error) {
	switch c := Combination(strings.ToUpper(strings.TrimSpace(s))); c {
	case Or, And, Xor:
		return c, nil
	case "":
		return Or, nil
	}
	return "", fmt.Errorf("unknown terms combination logic %q", s)
}

// Term is one allowed ontology term of a rule.
type Term struct {
	Accession string `yaml:"accession"`
	Name      string `yaml:"name,omitempty"`
	Label     string `yaml:"label,omitempty"`
	// AllowChildren accepts descendants of the term.
	AllowChildren bool `yaml:"allowChildren"`
	// UseTerm accepts the term itself.
	UseTerm bool `yaml:"useTerm"`
	// Repeatable allows more than one value to match this term.
	Repeatable bool `yaml:"repeatable"`
}

// Ref converts the rule term to a lookup term.
func (t Term) Ref() mztab.Term {
	ref := mztab.NewTerm(t.Accession)
	if t.Label != "" {
		ref.Label = t.Label
	}
	ref.Name = t.Name
	return ref
}

// Accepts reports whether relation satisfies the term.
func (t Term) Accepts(r mztab.Relation) bool {
	return (r == mztab.Identical && t.UseTerm) || (r == mztab.ChildOf && t.AllowChildren)
}

// Rule selects values by Path and constrains them to Terms.
type Rule struct {
	ID          string
	Name        string
	Path        string
	Requirement Requirement
	Combination Combination
	Terms       []Term
	// MaxDepth bounds the ancestor walk; negative means unbounded.
	MaxDepth int
}

func (r Rule) validate() error {
	var errs []error
	if r.ID == "" {
		errs = append(errs, errors.New("rule without id"))
	}
	if _, err := compilePath(r.Path); err != nil {
		errs = append(errs, fmt.Errorf("rule %s: %w", r.ID, err))
	}
	if len(r.Terms) == 0 {
		errs = append(errs, fmt.Errorf("rule %s: no terms", r.ID))
	}
	for _, t := range r.Terms {
		if !strings.Contains(t.Accession, ":") {
			errs = append(errs, fmt.Errorf("rule %s: term accession %q has no ontology prefix", r.ID, t.Accession))
		}
		if !t.UseTerm && !t.AllowChildren {
			errs = append(errs, fmt.Errorf("rule %s: term %s accepts neither itself nor its children", r.ID, t.Accession))
		}
	}
	return errors.Join(errs...)
}

func (r Rule) termList() string {
	parts := make([]string, len(r.Terms))
	for i, t := range r.Terms {
		parts[i] = t.Ref().String()
	}
	return strings.Join(parts, ", ")
}

// Ruleset is an ordered list of rules.
type Ruleset struct {
	Name    string
	Version string
	Rules   []Rule
}

// Validate reports every malformed rule and duplicate rule id, wrapped in
// mztab.ErrInvalidConfig.
func (rs *Ruleset) Validate() error {
	var errs []error
	seen := make(map[string]bool, len(rs.Rules))
	for _, r := range rs.Rules {
		if err := r.validate(); err != nil {
			errs = append(errs, err)
		}
		if r.ID != "" && seen[r.ID] {
			errs = append(errs, fmt.Errorf("duplicate rule id %s", r.ID))
		}
		seen[r.ID] = true
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: mapping ruleset %s: %w", mztab.ErrInvalidConfig, rs.Name, errors.Join(errs...))
	}
	return nil
}
