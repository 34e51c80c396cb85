package cvmapping

import (
	"bytes"
	_ "embed"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vvka-141/mztabm/pkg/mztab"
)

//go:embed rules/mztab-m.yaml
var defaultRules []byte

// Default returns the built-in mzTab-M 2.0 ruleset.
func Default() *Ruleset {
	rs, err := LoadYAML(bytes.NewReader(defaultRules))
	if err != nil {
		panic(fmt.Sprintf("cvmapping: built-in ruleset is invalid: %v", err))
	}
	return rs
}

// LoadFile reads a ruleset, choosing the format by extension: .xml for PSI
// CvMapping, .yaml or .yml for YAML.
func LoadFile(path string) (*Ruleset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open mapping file: %w", mztab.ErrInvalidConfig, err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xml":
		return LoadXML(f)
	case ".yaml", ".yml":
		return LoadYAML(f)
	}
	return nil, fmt.Errorf("%w: mapping file %s: unsupported extension", mztab.ErrInvalidConfig, path)
}

type xmlMapping struct {
	XMLName      xml.Name       `xml:"CvMapping"`
	ModelName    string         `xml:"modelName,attr"`
	ModelVersion string         `xml:"modelVersion,attr"`
	References   []xmlReference `xml:"CvReferenceList>CvReference"`
	Rules        []xmlRule      `xml:"CvMappingRuleList>CvMappingRule"`
}

type xmlReference struct {
	Name       string `xml:"cvName,attr"`
	Identifier string `xml:"cvIdentifier,attr"`
}

type xmlRule struct {
	ID          string    `xml:"id,attr"`
	Name        string    `xml:"name,attr"`
	ElementPath string    `xml:"cvElementPath,attr"`
	Requirement string    `xml:"requirementLevel,attr"`
	Combination string    `xml:"cvTermsCombinationLogic,attr"`
	MaxDepth    string    `xml:"maxDepth,attr"`
	Terms       []xmlTerm `xml:"CvTerm"`
}

type xmlTerm struct {
	Accession     string `xml:"termAccession,attr"`
	Name          string `xml:"termName,attr"`
	CVRef         string `xml:"cvIdentifierRef,attr"`
	UseTerm       bool   `xml:"useTerm,attr"`
	AllowChildren bool   `xml:"allowChildren,attr"`
	Repeatable    bool   `xml:"isRepeatable,attr"`
}

// LoadXML reads a PSI CvMapping document.
func LoadXML(r io.Reader) (*Ruleset, error) {
	var doc xmlMapping
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: decode mapping XML: %w", mztab.ErrInvalidConfig, err)
	}

	labels := make(map[string]bool, len(doc.References))
	for _, ref := range doc.References {
		labels[ref.Identifier] = true
	}

	rs := &Ruleset{Name: doc.ModelName, Version: doc.ModelVersion}
	for _, x := range doc.Rules {
		rule, err := newRule(x.ID, x.Name, x.ElementPath, x.Requirement, x.Combination)
		if err != nil {
			return nil, err
		}
		if x.MaxDepth != "" {
			depth, err := strconv.Atoi(x.MaxDepth)
			if err != nil {
				return nil, fmt.Errorf("%w: rule %s: maxDepth %q: %w", mztab.ErrInvalidConfig, x.ID, x.MaxDepth, err)
			}
			rule.MaxDepth = depth
		}
		for _, t := range x.Terms {
			label := ""
			if labels[t.CVRef] {
				label = t.CVRef
			}
			rule.Terms = append(rule.Terms, Term{
				Accession:     t.Accession,
				Name:          t.Name,
				Label:         label,
				AllowChildren: t.AllowChildren,
				UseTerm:       t.UseTerm,
				Repeatable:    t.Repeatable,
			})
		}
		rs.Rules = append(rs.Rules, rule)
	}
	if err := rs.Validate(); err != nil {
		return nil, err
	}
	return rs, nil
}

type yamlRuleset struct {
	Name    string     `yaml:"name"`
	Version string     `yaml:"version"`
	Rules   []yamlRule `yaml:"rules"`
}

type yamlRule struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Path        string `yaml:"path"`
	Requirement string `yaml:"requirement"`
	Combination string `yaml:"combination"`
	MaxDepth    *int   `yaml:"maxDepth"`
	Terms       []Term `yaml:"terms"`
}

// LoadYAML reads the YAML ruleset form.
func LoadYAML(r io.Reader) (*Ruleset, error) {
	var doc yamlRuleset
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: decode mapping YAML: %w", mztab.ErrInvalidConfig, err)
	}

	rs := &Ruleset{Name: doc.Name, Version: doc.Version}
	for _, y := range doc.Rules {
		rule, err := newRule(y.ID, y.Name, y.Path, y.Requirement, y.Combination)
		if err != nil {
			return nil, err
		}
		if y.MaxDepth != nil {
			rule.MaxDepth = *y.MaxDepth
		}
		rule.Terms = y.Terms
		rs.Rules = append(rs.Rules, rule)
	}
	if err := rs.Validate(); err != nil {
		return nil, err
	}
	return rs, nil
}

func newRule(id, name, path, requirement, combination string) (Rule, error) {
	req, err := parseRequirement(requirement)
	if err != nil {
		return Rule{}, fmt.Errorf("%w: rule %s: %w", mztab.ErrInvalidConfig, id, err)
	}
	comb, err := parseCombination(combination)
	if err != nil {
		return Rule{}, fmt.Errorf("%w: rule %s: %w", mztab.ErrInvalidConfig, id, err)
	}
	return Rule{
		ID:          id,
		Name:        name,
		Path:        path,
		Requirement: req,
		Combination: comb,
		MaxDepth:    mztab.UnboundedDepth,
	}, nil
}
