package mztab_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/vvka-141/mztabm/pkg/mztab"
)

func TestExitCodeForError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil error", nil, mztab.ExitSuccess},
		{"unknown flag", errors.New("unknown flag: --foo"), mztab.ExitUsageError},
		{"unknown shorthand flag", errors.New("unknown shorthand flag: 'x' in -x"), mztab.ExitUsageError},
		{"accepts args", errors.New("accepts 1 arg(s), received 0"), mztab.ExitUsageError},
		{"requires at least", errors.New("requires at least 1 arg(s), only received 0"), mztab.ExitUsageError},
		{"general error", errors.New("something went wrong"), mztab.ExitGeneralError},
		{"validation failed", fmt.Errorf("file.mztab: %w", mztab.ErrValidationFailed), mztab.ExitValidationFailed},
		{"config", fmt.Errorf("level: %w", mztab.ErrInvalidConfig), mztab.ExitConfigError},
		{"invalid level", mztab.ErrInvalidLevel, mztab.ExitConfigError},
		{"timeout", fmt.Errorf("rule r1: %w", mztab.ErrLookupTimeout), mztab.ExitLookupTimeout},
		{"overflow", mztab.ErrOverflow, mztab.ExitOverflow},
		{"unsupported version", mztab.ErrUnsupportedVersion, mztab.ExitFatalDocument},
		{"missing section", mztab.ErrMissingSection, mztab.ExitFatalDocument},
		{"unreadable", mztab.ErrUnreadableInput, mztab.ExitFatalDocument},
		{"missing input", mztab.ErrInputNotFound, mztab.ExitInputMissing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mztab.ExitCodeForError(tt.err); got != tt.want {
				t.Errorf("ExitCodeForError(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestNewTerm_DerivesLabel(t *testing.T) {
	term := mztab.NewTerm("MS:1000560")
	if term.Label != "MS" {
		t.Errorf("Label = %q, want MS", term.Label)
	}
	if !term.Same(mztab.Term{Label: "ms", Accession: "MS:1000560"}) {
		t.Error("expected label comparison to ignore case")
	}
	if term.Same(mztab.NewTerm("MS:1000564")) {
		t.Error("different accessions must not be the same term")
	}
}

func TestRelation_String(t *testing.T) {
	if mztab.Identical.String() != "IDENTICAL" || mztab.ChildOf.String() != "CHILD_OF" || mztab.NotRelated.String() != "NOT_RELATED" {
		t.Error("unexpected relation names")
	}
}
