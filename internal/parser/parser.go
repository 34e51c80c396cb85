package parser

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/transform"

	"github.com/vvka-141/mztabm/internal/diag"
	"github.com/vvka-141/mztabm/internal/model"
	"github.com/vvka-141/mztabm/pkg/mztab"
)

// maxLineBytes bounds a single input line.
const maxLineBytes = 16 << 20

// Result is the outcome of a parse that did not abort.
type Result struct {
	Document *model.Document
	Errors   *diag.List
	Context  *Context
}

// Diagnostics returns every diagnostic recorded during the parse.
func (r *Result) Diagnostics() []diag.Diagnostic {
	return r.Errors.Items()
}

type parser struct {
	opts Options
	doc  *model.Document
	ctx  *Context
	errs *diag.List

	state       State
	section     model.SectionKind
	mtdLines    int
	headerLines map[model.SectionKind]int
	ids         map[model.SectionKind]map[string]int
	fatal       error
}

// ParseFile opens path and parses it.
func ParseFile(path string, opts Options) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", mztab.ErrInputNotFound, path)
		}
		return nil, fmt.Errorf("%w: %v", mztab.ErrUnreadableInput, err)
	}
	defer f.Close()
	return Parse(f, opts)
}

// Parse reads one mzTab-M document from r. On success the result holds a
// best-effort document and every structural diagnostic. A non-nil error
// means the parse aborted and no document is available; it wraps one of
// mztab.ErrUnreadableInput, mztab.ErrUnsupportedVersion,
// mztab.ErrMissingSection or mztab.ErrOverflow.
func Parse(r io.Reader, opts Options) (*Result, error) {
	opts = opts.withDefaults()
	dec, err := decoder(opts.Encoding)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", mztab.ErrUnreadableInput, err)
	}

	p := &parser{
		opts:        opts,
		doc:         model.NewDocument(),
		ctx:         NewContext(),
		errs:        diag.NewList(opts.MaxErrors),
		state:       ExpectingMetadata,
		headerLines: map[model.SectionKind]int{},
		ids:         map[model.SectionKind]map[string]int{},
	}

	sc := bufio.NewScanner(transform.NewReader(r, dec))
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	n := 0
	for sc.Scan() {
		n++
		line := strings.TrimRight(sc.Text(), "\r")
		if n == 1 {
			line = strings.TrimPrefix(line, "\ufeff")
		}
		p.line(n, line)
		if p.fatal != nil {
			break
		}
	}
	if p.fatal == nil {
		if err := sc.Err(); err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", mztab.ErrUnreadableInput, n+1, err)
		}
		p.finish()
	}
	if p.fatal != nil {
		p.state = Failed
		opts.Logger.Verbose("parse aborted: %v", p.fatal)
		return nil, p.fatal
	}
	p.state = Done
	opts.Logger.Verbose("parsed %d lines: %d metadata, %d SML, %d SMF, %d SME rows, %d diagnostics",
		n, p.mtdLines, p.ctx.RowCount(model.SectionSummary), p.ctx.RowCount(model.SectionFeature),
		p.ctx.RowCount(model.SectionEvidence), p.errs.Len())
	return &Result{Document: p.doc, Errors: p.errs, Context: p.ctx}, nil
}

func decoder(name string) (*encoding.Decoder, error) {
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return nil, fmt.Errorf("encoding %q: %w", name, err)
	}
	if enc == nil {
		return nil, fmt.Errorf("encoding %q is not supported", name)
	}
	return enc.NewDecoder(), nil
}

// add records d. It returns false once the list overflowed.
func (p *parser) add(d diag.Diagnostic) bool {
	if p.fatal != nil {
		return false
	}
	if err := p.errs.Add(d); err != nil {
		p.fatal = err
		return false
	}
	return true
}

func (p *parser) abort(err error) {
	if p.fatal == nil {
		p.fatal = err
	}
}

func (p *parser) line(n int, line string) {
	if strings.TrimSpace(line) == "" {
		return
	}
	if strings.ContainsRune(line, utf8.RuneError) {
		if !p.add(diag.New(diag.FormatEncoding, n, p.opts.Encoding)) {
			return
		}
	}
	fields := strings.Split(line, "\t")
	kind, section := classify(strings.TrimSpace(fields[0]))
	switch kind {
	case lineComment:
		text := ""
		if len(fields) > 1 {
			text = strings.Join(fields[1:], "\t")
		}
		p.doc.Comments = append(p.doc.Comments, model.Comment{Line: n, Text: text})
	case lineMetadata:
		p.metadata(n, line, fields)
	case lineHeader:
		p.header(n, section, fields)
	case lineRow:
		p.row(n, section, fields)
	default:
		p.add(diag.New(diag.FormatLinePrefix, n, fields[0]))
	}
}

func (p *parser) finish() {
	if p.mtdLines == 0 {
		p.abort(fmt.Errorf("%w: no MTD section", mztab.ErrMissingSection))
		return
	}
	if p.doc.Sections[model.SectionSummary] == nil {
		p.abort(fmt.Errorf("%w: no SMH/SML section", mztab.ErrMissingSection))
		return
	}
	p.crossCheckRows(model.SectionSummary, "SMF_ID_REFS", model.SectionFeature)
	p.crossCheckRows(model.SectionFeature, "SME_ID_REFS", model.SectionEvidence)
}

// crossCheckRows checks that every id in column of section from names a
// row of section to.
func (p *parser) crossCheckRows(from model.SectionKind, column string, to model.SectionKind) {
	sect := p.doc.Sections[from]
	if sect == nil {
		return
	}
	i := sect.Header.Index(column)
	if i < 0 {
		return
	}
	for _, rec := range sect.Records {
		v, ok := rec.Cell(i)
		if !ok || model.IsNull(v) {
			continue
		}
		for _, id := range strings.Split(v, "|") {
			id = strings.TrimSpace(id)
			if _, ok := p.ids[to][id]; ok {
				continue
			}
			if !p.add(diag.New(diag.CrossCheckRowRef, rec.Line, column, string(to), id, string(to))) {
				return
			}
		}
	}
}
