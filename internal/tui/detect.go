package tui

import (
	"os"

	"golang.org/x/term"
)

// Mode is the interaction mode of a run.
type Mode int

const (
	// ModeNonInteractive covers CI, pipes and redirected output.
	ModeNonInteractive Mode = iota
	// ModeInteractive is used when a human watches the terminal.
	ModeInteractive
)

// DetectMode decides whether to show progress and colours.
//
// Returns ModeNonInteractive if:
//   - MZTABM_NON_INTERACTIVE=1 is set
//   - CI is set
//   - NO_COLOR is set
//   - stdout or stderr is not a terminal
func DetectMode() Mode {
	if os.Getenv("MZTABM_NON_INTERACTIVE") == "1" {
		return ModeNonInteractive
	}
	if os.Getenv("CI") != "" {
		return ModeNonInteractive
	}
	if os.Getenv("NO_COLOR") != "" {
		return ModeNonInteractive
	}
	if !IsTerminal(os.Stdout) || !IsTerminal(os.Stderr) {
		return ModeNonInteractive
	}
	return ModeInteractive
}

// IsInteractive reports DetectMode() == ModeInteractive.
func IsInteractive() bool {
	return DetectMode() == ModeInteractive
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return f != nil && term.IsTerminal(int(f.Fd()))
}
