package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vvka-141/mztabm/internal/tui"
)

// WriteJSON writes reports as one indented JSON array.
func WriteJSON(w io.Writer, reports []Report) error {
	if reports == nil {
		reports = []Report{}
	}
	data, err := json.MarshalIndent(reports, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// TextOptions controls WriteText.
type TextOptions struct {
	// Styled enables lipgloss colours; leave false for pipes and files.
	Styled bool
}

// WriteText writes a human-readable listing of reports.
func WriteText(w io.Writer, reports []Report, opts TextOptions) error {
	render := func(s lipgloss.Style, text string) string {
		if !opts.Styled {
			return text
		}
		return s.Render(text)
	}

	var b strings.Builder
	for i, r := range reports {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(render(tui.TitleStyle, r.File))
		if r.DocumentID != "" {
			b.WriteString(" " + render(tui.MutedStyle, "("+r.DocumentID+")"))
		}
		b.WriteByte('\n')

		if r.Error != "" {
			fmt.Fprintf(&b, "  %s\n", render(tui.ErrorStyle, tui.SymbolCross+" aborted: "+r.Error))
			continue
		}
		for _, m := range r.Messages {
			style := tui.LevelStyle(m.Level)
			tag := fmt.Sprintf("%s %s %d", tui.LevelSymbol(m.Level), m.Level, m.Code)
			fmt.Fprintf(&b, "  %s %s\n", render(style, tag), location(m)+m.Text)
		}

		counts := fmt.Sprintf("%d %s, %d %s, %d %s",
			r.Summary.Errors, plural(r.Summary.Errors, "error"),
			r.Summary.Warnings, plural(r.Summary.Warnings, "warning"),
			r.Summary.Infos, plural(r.Summary.Infos, "info"))
		if r.Passed {
			fmt.Fprintf(&b, "  %s\n", render(tui.SuccessStyle, tui.SymbolCheck+" passed: "+counts))
		} else {
			fmt.Fprintf(&b, "  %s\n", render(tui.ErrorStyle, tui.SymbolCross+" failed: "+counts))
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func location(m Message) string {
	var parts []string
	if m.Line > 0 {
		parts = append(parts, fmt.Sprintf("line %d", m.Line))
	}
	if m.Path != "" {
		parts = append(parts, m.Path)
	}
	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, " ") + ": "
}

func plural(n int, word string) string {
	if n == 1 || word == "info" {
		return word
	}
	return word + "s"
}
