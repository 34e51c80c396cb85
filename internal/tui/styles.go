package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/vvka-141/mztabm/internal/diag"
)

// Color palette - keeping it minimal and accessible.
var (
	ColorPrimary   = lipgloss.Color("39")  // Blue
	ColorSecondary = lipgloss.Color("245") // Gray
	ColorSuccess   = lipgloss.Color("34")  // Green
	ColorWarning   = lipgloss.Color("214") // Orange
	ColorError     = lipgloss.Color("196") // Red
	ColorMuted     = lipgloss.Color("240") // Dark gray
)

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)

	InfoStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary)

	SpinnerStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary)
)

// Symbols for visual feedback.
const (
	SymbolCheck   = "✓"
	SymbolCross   = "✗"
	SymbolWarning = "!"
	SymbolBullet  = "•"
)

// LevelStyle returns the style messages of level l are rendered with.
func LevelStyle(l diag.Level) lipgloss.Style {
	switch l {
	case diag.Error:
		return ErrorStyle
	case diag.Warn:
		return WarningStyle
	default:
		return InfoStyle
	}
}

// LevelSymbol returns the marker printed before a message of level l.
func LevelSymbol(l diag.Level) string {
	switch l {
	case diag.Error:
		return SymbolCross
	case diag.Warn:
		return SymbolWarning
	default:
		return SymbolBullet
	}
}
