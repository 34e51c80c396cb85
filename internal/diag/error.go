package diag

import (
	"fmt"
	"strings"
)

// NoLine marks a diagnostic that is not tied to a source line.
const NoLine = -1

// Diagnostic is one error, warning or info record.
type Diagnostic struct {
	Type    Type   `json:"type"`
	Level   Level  `json:"level"`
	Line    int    `json:"line"`
	Path    string `json:"path,omitempty"`
	Message string `json:"message"`
}

// New builds a diagnostic of type t at line from positional arguments.
// It never panics: argument mismatches show up in the message text.
func New(t Type, line int, args ...interface{}) Diagnostic {
	if line < 1 {
		line = NoLine
	}
	return Diagnostic{
		Type:    t,
		Level:   t.Level,
		Line:    line,
		Message: fmt.Sprintf(t.Template, args...),
	}
}

// WithPath returns a copy of e tied to an element path such as "msRun[1]-location".
func (e Diagnostic) WithPath(path string) Diagnostic {
	e.Path = path
	return e
}

// WithLevel returns a copy of e with its severity overridden.
func (e Diagnostic) WithLevel(l Level) Diagnostic {
	e.Level = l
	return e
}

// Error implements the error interface.
func (e Diagnostic) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s-%d]", e.Level, e.Type.Code)
	if e.Line > 0 {
		fmt.Fprintf(&b, " line %d:", e.Line)
	}
	if e.Path != "" {
		fmt.Fprintf(&b, " %s:", e.Path)
	}
	b.WriteByte(' ')
	b.WriteString(e.Message)
	return b.String()
}

// Is matches diagnostics by type code so errors.Is works against a template:
//
//	errors.Is(err, diag.Diagnostic{Type: diag.FormatLinePrefix})
func (e Diagnostic) Is(target error) bool {
	t, ok := target.(Diagnostic)
	if !ok {
		return false
	}
	return t.Type.Code == e.Type.Code
}
