package validate

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/vvka-141/mztabm/internal/checksum"
	"github.com/vvka-141/mztabm/internal/cvmapping"
	"github.com/vvka-141/mztabm/internal/diag"
	"github.com/vvka-141/mztabm/internal/logging"
	"github.com/vvka-141/mztabm/internal/model"
	"github.com/vvka-141/mztabm/internal/parser"
	"github.com/vvka-141/mztabm/internal/refine"
	"github.com/vvka-141/mztabm/pkg/mztab"
)

// Options configures a Validator. Zero values take the documented defaults.
type Options struct {
	Level       diag.Level
	MaxErrors   int
	Encoding    string
	Timeout     time.Duration
	Concurrency int

	// Rules and Lookup enable semantic validation when both are set.
	Rules  *cvmapping.Ruleset
	Lookup mztab.TermLookup

	// OnResult, when set, is called once per finished file by
	// ValidateFiles. It may be called concurrently.
	OnResult func(*Result)

	Logger mztab.Logger
}

// Result is the outcome of validating one file.
type Result struct {
	File       string
	Checksum   string
	DocumentID uuid.UUID
	Document   *model.Document

	// Diagnostics holds the messages at or above the configured level in
	// emission order: structural, then refining, then semantic.
	Diagnostics []diag.Diagnostic

	// Failed is true when any Error-level message was emitted, whether or
	// not it survived the level filter.
	Failed bool

	// Err is set when validation of this file aborted.
	Err error
}

// Validator is safe for concurrent use.
type Validator struct {
	opts     Options
	semantic *cvmapping.Validator
}

func New(opts Options) *Validator {
	if opts.Encoding == "" {
		opts.Encoding = mztab.DefaultEncoding
	}
	if opts.Timeout <= 0 {
		opts.Timeout = mztab.DefaultTimeout
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = mztab.DefaultConcurrency
	}
	if opts.Logger == nil {
		opts.Logger = logging.NewNullLogger()
	}
	v := &Validator{opts: opts}
	if opts.Rules != nil && opts.Lookup != nil {
		v.semantic = cvmapping.NewValidator(opts.Rules, opts.Lookup, cvmapping.Options{
			Concurrency: opts.Concurrency,
			Logger:      opts.Logger,
		})
	}
	return v
}

// Validate reads one document from r. name labels the result. A non-nil
// error means validation aborted; it wraps one of the mztab sentinels and is
// also stored in Result.Err.
func (v *Validator) Validate(ctx context.Context, name string, r io.Reader) (*Result, error) {
	res := &Result{File: name}
	fail := func(err error) (*Result, error) {
		res.Err = err
		return res, err
	}

	content, err := io.ReadAll(r)
	if err != nil {
		return fail(fmt.Errorf("%w: %s: %v", mztab.ErrUnreadableInput, name, err))
	}
	calc := checksum.New()
	res.Checksum = calc.CalculateNormalized(content)
	res.DocumentID = checksum.DocumentID(res.Checksum)

	parsed, err := parser.Parse(bytes.NewReader(content), parser.Options{
		MaxErrors: v.opts.MaxErrors,
		Encoding:  v.opts.Encoding,
		Logger:    v.opts.Logger,
	})
	if err != nil {
		return fail(fmt.Errorf("%s: %w", name, err))
	}
	res.Document = parsed.Document
	list := parsed.Errors

	refined := refine.Run(parsed.Document.Metadata, parsed.Context)
	v.opts.Logger.Verbose("%s: %d structural, %d refining diagnostics", name, list.Len(), len(refined))
	if err := list.AddAll(refined); err != nil {
		return fail(fmt.Errorf("%s: %w", name, err))
	}

	if v.semantic != nil {
		sctx, cancel := context.WithTimeout(ctx, v.opts.Timeout)
		semantic, err := v.semantic.Validate(sctx, parsed.Document)
		cancel()
		if err != nil {
			return fail(fmt.Errorf("%s: %w", name, err))
		}
		v.opts.Logger.Verbose("%s: %d semantic diagnostics", name, len(semantic))
		if err := list.AddAll(semantic); err != nil {
			return fail(fmt.Errorf("%s: %w", name, err))
		}
	}

	res.Failed = list.HasErrors()
	filtered, err := list.Filter(v.opts.Level)
	if err != nil {
		return fail(err)
	}
	res.Diagnostics = filtered
	return res, nil
}

// ValidateFile validates the file at path.
func (v *Validator) ValidateFile(ctx context.Context, path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		res := &Result{File: path}
		if errors.Is(err, fs.ErrNotExist) {
			res.Err = fmt.Errorf("%w: %s", mztab.ErrInputNotFound, path)
		} else {
			res.Err = fmt.Errorf("%w: %v", mztab.ErrUnreadableInput, err)
		}
		return res, res.Err
	}
	defer f.Close()
	return v.Validate(ctx, path, f)
}

// ValidateFiles validates paths concurrently and returns one result per
// path in argument order. Per-file failures are reported in Result.Err;
// the returned error is non-nil only when ctx was cancelled.
func (v *Validator) ValidateFiles(ctx context.Context, paths []string) ([]*Result, error) {
	results := make([]*Result, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(v.opts.Concurrency)
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i], _ = v.ValidateFile(gctx, path)
			if v.opts.OnResult != nil {
				v.opts.OnResult(results[i])
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Err summarizes results: the first per-file abort in argument order, else
// mztab.ErrValidationFailed when any file failed, else nil.
func Err(results []*Result) error {
	var failed int
	var aborted []error
	for _, r := range results {
		switch {
		case r.Err != nil:
			aborted = append(aborted, r.Err)
		case r.Failed:
			failed++
		}
	}
	if len(aborted) > 0 {
		return aborted[0]
	}
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d files", mztab.ErrValidationFailed, failed, len(results))
	}
	return nil
}
