// Package cvmapping checks that controlled-vocabulary parameters of a parsed
// document use the ontology terms a mapping ruleset allows.
//
// A Ruleset is an ordered list of rules loaded from PSI CvMapping XML or
// from YAML. Each rule selects parameters by path, for example
// /mzTab/metadata/msRun/format or /mzTab/smallMoleculeEvidence/msLevel, and
// names the terms those parameters must be, or descend from. The Validator
// resolves the paths, asks an mztab.TermLookup how every value relates to
// every allowed term, and turns the answers into semantic diagnostics.
package cvmapping
