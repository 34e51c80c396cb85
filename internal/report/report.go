package report

import (
	"github.com/vvka-141/mztabm/internal/diag"
	"github.com/vvka-141/mztabm/internal/validate"
)

// Message is one reported diagnostic.
type Message struct {
	Level    diag.Level    `json:"level"`
	Code     int           `json:"code"`
	Category diag.Category `json:"category"`
	Name     string        `json:"name"`
	Line     int           `json:"line,omitempty"`
	Path     string        `json:"path,omitempty"`
	Text     string        `json:"text"`
}

// Summary counts messages per level.
type Summary struct {
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
	Infos    int `json:"infos"`
}

// Report is the outcome of one file.
type Report struct {
	File       string     `json:"file"`
	DocumentID string     `json:"document_id,omitempty"`
	Checksum   string     `json:"checksum,omitempty"`
	Level      diag.Level `json:"level"`
	Passed     bool       `json:"passed"`
	Summary    Summary    `json:"summary"`
	Messages   []Message  `json:"messages"`
	// Error is set when validation aborted before producing messages.
	Error string `json:"error,omitempty"`
}

// New builds the report of res at the level the validator filtered with.
// Messages are ordered by line; messages without a line follow in
// emission order.
func New(res *validate.Result, level diag.Level) Report {
	r := Report{
		File:     res.File,
		Checksum: res.Checksum,
		Level:    level,
		Messages: []Message{},
	}
	if res.Checksum != "" {
		r.DocumentID = res.DocumentID.String()
	}
	if res.Err != nil {
		r.Error = res.Err.Error()
		return r
	}

	ds := make([]diag.Diagnostic, len(res.Diagnostics))
	copy(ds, res.Diagnostics)
	diag.Sort(ds)
	for _, d := range ds {
		r.Messages = append(r.Messages, fromDiagnostic(d))
		switch d.Level {
		case diag.Error:
			r.Summary.Errors++
		case diag.Warn:
			r.Summary.Warnings++
		default:
			r.Summary.Infos++
		}
	}
	r.Passed = !res.Failed
	return r
}

func fromDiagnostic(d diag.Diagnostic) Message {
	line := d.Line
	if line == diag.NoLine {
		line = 0
	}
	return Message{
		Level:    d.Level,
		Code:     d.Type.Code,
		Category: d.Type.Category,
		Name:     d.Type.Name,
		Line:     line,
		Path:     d.Path,
		Text:     d.Message,
	}
}
