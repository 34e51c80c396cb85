package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"github.com/vvka-141/mztabm/internal/config"
	"github.com/vvka-141/mztabm/internal/cvmapping"
	"github.com/vvka-141/mztabm/internal/logging"
	"github.com/vvka-141/mztabm/internal/report"
	"github.com/vvka-141/mztabm/internal/tui"
	"github.com/vvka-141/mztabm/internal/validate"
	"github.com/vvka-141/mztabm/pkg/mztab"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file|glob>...",
	Short: "Validate mzTab-M files",
	Long: `Validate parses each file, checks structure, cross references and optional
columns, and, when an ontology back-end is configured, checks controlled
vocabulary usage against a CV mapping ruleset.

Files are validated concurrently; reports are printed in argument order.
Glob patterns support ** (quote them to keep the shell from expanding).

Ontology back-ends:
  none      - skip semantic validation (default)
  obo       - local OBO file (--obo psi-ms.obo)
  ols       - Ontology Lookup Service REST API (--ols-url)
  postgres  - terms imported with 'mztabm ontology import' (--dsn)

Answers of any back-end can be cached in Redis with --redis.

Examples:
  # Validate one file, report warnings and errors
  mztabm validate study.mzTab --level warn

  # Validate a tree of files against OLS, JSON output for CI
  mztabm validate 'results/**/*.mzTab' --ontology ols --json

  # Use a local ontology and a custom mapping
  mztabm validate study.mzTab --ontology obo --obo psi-ms.obo --mapping rules.xml`,
	Args: cobra.MinimumNArgs(1),
	RunE: runValidate,
}

type validateFlagValues struct {
	level       string
	maxErrors   int
	encoding    string
	mapping     string
	ontology    string
	obo         string
	olsURL      string
	dsn         string
	redis       string
	timeout     time.Duration
	concurrency int
	json        bool
}

var validateFlags validateFlagValues

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVarP(&validateFlags.level, "level", "l", mztab.DefaultLevel,
		"Lowest level to report: info, warn or error")
	validateCmd.Flags().IntVar(&validateFlags.maxErrors, "max-errors", mztab.DefaultMaxErrorCount,
		"Abort a file after this many errors (0 = unbounded)")
	validateCmd.Flags().StringVar(&validateFlags.encoding, "encoding", mztab.DefaultEncoding,
		"Input character set (IANA name)")
	validateCmd.Flags().StringVar(&validateFlags.mapping, "mapping", "",
		"CV mapping ruleset (.xml or .yaml); built-in mzTab-M 2.0 rules when empty")

	validateCmd.Flags().StringVar(&validateFlags.ontology, "ontology", config.BackendNone,
		"Ontology back-end: none, obo, ols or postgres")
	validateCmd.Flags().StringVar(&validateFlags.obo, "obo", "", "OBO file for the obo back-end")
	validateCmd.Flags().StringVar(&validateFlags.olsURL, "ols-url", "", "Base URL of the OLS service")
	validateCmd.Flags().StringVar(&validateFlags.dsn, "dsn", "", "Postgres DSN of the ontology term store")
	validateCmd.Flags().StringVar(&validateFlags.redis, "redis", "",
		"Cache ontology answers in Redis (host:port or redis:// URL)")

	validateCmd.Flags().DurationVar(&validateFlags.timeout, "timeout", mztab.DefaultTimeout,
		"Bound for one file's validation including ontology lookups\n"+
			"Examples: 30s, 5m")
	validateCmd.Flags().IntVar(&validateFlags.concurrency, "concurrency", mztab.DefaultConcurrency,
		"Files and term lookups processed in parallel")
	validateCmd.Flags().BoolVar(&validateFlags.json, "json", false, "Output reports as JSON")
}

// applyValidateFlags lets explicitly set flags override the loaded config.
func applyValidateFlags(cmd *cobra.Command, cfg *config.Config) {
	changed := cmd.Flags().Changed
	if changed("level") {
		cfg.Level = validateFlags.level
	}
	if changed("max-errors") {
		cfg.MaxErrors = validateFlags.maxErrors
	}
	if changed("encoding") {
		cfg.Encoding = validateFlags.encoding
	}
	if changed("mapping") {
		cfg.Mapping = validateFlags.mapping
	}
	if changed("ontology") {
		cfg.Ontology.Backend = validateFlags.ontology
	}
	if changed("obo") {
		cfg.Ontology.OBO = validateFlags.obo
	}
	if changed("ols-url") {
		cfg.Ontology.OLSURL = validateFlags.olsURL
	}
	if changed("dsn") {
		cfg.Ontology.DSN = validateFlags.dsn
	}
	if changed("redis") {
		cfg.Ontology.Redis = validateFlags.redis
	}
	if changed("timeout") {
		cfg.Timeout = validateFlags.timeout
	}
	if changed("concurrency") {
		cfg.Concurrency = validateFlags.concurrency
	}
	if changed("json") {
		cfg.JSON = validateFlags.json
	}
}

// expandInputs resolves each argument to existing files. Arguments naming an
// existing path are kept verbatim; others are treated as doublestar patterns.
// Duplicates are dropped, first occurrence wins.
func expandInputs(args []string) ([]string, error) {
	var paths []string
	seen := make(map[string]bool)
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			paths = append(paths, p)
		}
	}

	for _, arg := range args {
		if info, err := os.Stat(arg); err == nil {
			if info.IsDir() {
				return nil, fmt.Errorf("%w: %s is a directory (use a pattern such as '%s/**/*.mzTab')",
					mztab.ErrInputNotFound, arg, arg)
			}
			add(arg)
			continue
		}
		matches, err := doublestar.FilepathGlob(arg, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("%w: bad pattern %q: %v", mztab.ErrInvalidArgument, arg, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("%w: %s", mztab.ErrInputNotFound, arg)
		}
		for _, m := range matches {
			add(m)
		}
	}
	return paths, nil
}

func loadRules(path string) (*cvmapping.Ruleset, error) {
	if path == "" {
		return cvmapping.Default(), nil
	}
	return cvmapping.LoadFile(path)
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	applyValidateFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	paths, err := expandInputs(args)
	if err != nil {
		return err
	}

	logger := logging.NewConsoleLogger(cfg.Verbose)
	defer func() { _ = logger.Sync() }()
	logger.Verbose("Validating %d file(s) at level %s", len(paths), cfg.Level)

	rules, err := loadRules(cfg.Mapping)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	lookup, closeLookup, err := openLookup(ctx, cfg.Ontology, logger)
	defer closeLookup()
	if err != nil {
		return err
	}
	if lookup == nil {
		logger.Verbose("No ontology back-end configured, semantic validation skipped")
	}

	level := cfg.ParsedLevel()
	opts := validate.Options{
		Level:       level,
		MaxErrors:   cfg.MaxErrors,
		Encoding:    cfg.Encoding,
		Timeout:     cfg.Timeout,
		Concurrency: cfg.Concurrency,
		Rules:       rules,
		Lookup:      lookup,
		Logger:      logger,
	}

	var results []*validate.Result
	if tui.IsInteractive() && !cfg.JSON && len(paths) > 1 {
		err = tui.RunWithProgress(os.Stderr, "validating", len(paths), func(step func(string)) error {
			opts.OnResult = func(r *validate.Result) { step(r.File) }
			var runErr error
			results, runErr = validate.New(opts).ValidateFiles(ctx, paths)
			return runErr
		})
	} else {
		results, err = validate.New(opts).ValidateFiles(ctx, paths)
	}
	if err != nil {
		return fmt.Errorf("validation interrupted: %w", err)
	}

	reports := make([]report.Report, len(results))
	for i, res := range results {
		reports[i] = report.New(res, level)
	}

	out := cmd.OutOrStdout()
	if cfg.JSON {
		err = report.WriteJSON(out, reports)
	} else {
		err = report.WriteText(out, reports, report.TextOptions{Styled: tui.IsInteractive()})
	}
	if err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	return validate.Err(results)
}
