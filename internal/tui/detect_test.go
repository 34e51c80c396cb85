package tui

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectMode_EnvironmentOverrides(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"explicit opt out", map[string]string{"MZTABM_NON_INTERACTIVE": "1"}},
		{"ci", map[string]string{"CI": "true"}},
		{"no color", map[string]string{"NO_COLOR": "1"}},
		{"no terminal", map[string]string{}},
		{"opt out needs exactly 1", map[string]string{"MZTABM_NON_INTERACTIVE": "true"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, k := range []string{"MZTABM_NON_INTERACTIVE", "CI", "NO_COLOR"} {
				t.Setenv(k, tt.env[k])
			}

			assert.Equal(t, ModeNonInteractive, DetectMode())
			assert.False(t, IsInteractive())
		})
	}
}

func TestIsTerminal(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "out")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	assert.False(t, IsTerminal(f))
	assert.False(t, IsTerminal(nil))
}
