package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vvka-141/mztabm/internal/config"
	"github.com/vvka-141/mztabm/internal/logging"
	"github.com/vvka-141/mztabm/internal/ontology"
	"github.com/vvka-141/mztabm/pkg/mztab"
)

var ontologyCmd = &cobra.Command{
	Use:   "ontology",
	Short: "Query and manage ontology back-ends",
}

var ontologyCompareCmd = &cobra.Command{
	Use:   "compare <reference> <candidate>",
	Short: "Report how a candidate term relates to a reference term",
	Long: `Compare prints IDENTICAL, CHILD_OF or NOT_RELATED for two accessions,
walking at most --depth ancestor levels of the candidate (-1 = unbounded).

The back-end is chosen like for 'mztabm validate'; when no back-end is
configured, --obo implies the obo back-end.

Examples:
  mztabm ontology compare MS:1000560 MS:1000564 --obo psi-ms.obo
  mztabm ontology compare MS:1000031 MS:1000121 --ontology ols --depth 3 --json`,
	Args: cobra.ExactArgs(2),
	RunE: runOntologyCompare,
}

var ontologyImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Import an OBO ontology into the Postgres term store",
	Long: `Import creates the term store tables when missing and upserts every term
and is_a edge of an OBO file. Re-importing the same file is idempotent.

Example:
  mztabm ontology import --obo psi-ms.obo --dsn postgres://localhost/ontology`,
	Args: cobra.NoArgs,
	RunE: runOntologyImport,
}

type ontologyFlagValues struct {
	backend string
	obo     string
	olsURL  string
	dsn     string
	redis   string
	depth   int
	json    bool
}

var ontologyFlags ontologyFlagValues

func init() {
	rootCmd.AddCommand(ontologyCmd)
	ontologyCmd.AddCommand(ontologyCompareCmd)
	ontologyCmd.AddCommand(ontologyImportCmd)

	ontologyCmd.PersistentFlags().StringVar(&ontologyFlags.obo, "obo", "", "OBO ontology file")
	ontologyCmd.PersistentFlags().StringVar(&ontologyFlags.dsn, "dsn", "", "Postgres DSN of the ontology term store")

	ontologyCompareCmd.Flags().StringVar(&ontologyFlags.backend, "ontology", "",
		"Ontology back-end: obo, ols or postgres")
	ontologyCompareCmd.Flags().StringVar(&ontologyFlags.olsURL, "ols-url", "", "Base URL of the OLS service")
	ontologyCompareCmd.Flags().StringVar(&ontologyFlags.redis, "redis", "",
		"Cache ontology answers in Redis (host:port or redis:// URL)")
	ontologyCompareCmd.Flags().IntVar(&ontologyFlags.depth, "depth", mztab.UnboundedDepth,
		"Ancestor levels to walk (-1 = unbounded)")
	ontologyCompareCmd.Flags().BoolVar(&ontologyFlags.json, "json", false, "Output as JSON")
}

// comparison is the --json shape of 'ontology compare'.
type comparison struct {
	Reference string `json:"reference"`
	Candidate string `json:"candidate"`
	Depth     int    `json:"depth"`
	Relation  string `json:"relation"`
}

func ontologyConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	o := &cfg.Ontology
	if ontologyFlags.obo != "" {
		o.OBO = ontologyFlags.obo
	}
	if ontologyFlags.dsn != "" {
		o.DSN = ontologyFlags.dsn
	}
	if ontologyFlags.olsURL != "" {
		o.OLSURL = ontologyFlags.olsURL
	}
	if ontologyFlags.redis != "" {
		o.Redis = ontologyFlags.redis
	}
	if ontologyFlags.backend != "" {
		o.Backend = ontologyFlags.backend
	} else if o.Backend == config.BackendNone && o.OBO != "" {
		o.Backend = config.BackendOBO
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runOntologyCompare(cmd *cobra.Command, args []string) error {
	cfg, err := ontologyConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.Ontology.Backend == config.BackendNone {
		return fmt.Errorf("%w: no ontology back-end configured (use --ontology or --obo)", mztab.ErrInvalidConfig)
	}

	logger := logging.NewConsoleLogger(cfg.Verbose)
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	lookup, closeLookup, err := openLookup(ctx, cfg.Ontology, logger)
	defer closeLookup()
	if err != nil {
		return err
	}

	reference, candidate := mztab.NewTerm(args[0]), mztab.NewTerm(args[1])
	rel, err := lookup.Compare(ctx, reference, candidate, ontologyFlags.depth)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return fmt.Errorf("%w: %w", mztab.ErrLookupTimeout, err)
		}
		return fmt.Errorf("compare %s with %s: %w", reference, candidate, err)
	}

	out := cmd.OutOrStdout()
	if ontologyFlags.json {
		data, err := json.MarshalIndent(comparison{
			Reference: reference.Accession,
			Candidate: candidate.Accession,
			Depth:     ontologyFlags.depth,
			Relation:  rel.String(),
		}, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		_, err = fmt.Fprintln(out, string(data))
		return err
	}
	_, err = fmt.Fprintln(out, rel)
	return err
}

func runOntologyImport(cmd *cobra.Command, args []string) error {
	cfg, err := ontologyConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.Ontology.OBO == "" {
		return fmt.Errorf("%w: --obo is required", mztab.ErrInvalidConfig)
	}
	if cfg.Ontology.DSN == "" {
		return fmt.Errorf("%w: --dsn is required", mztab.ErrInvalidConfig)
	}

	logger := logging.NewConsoleLogger(cfg.Verbose)
	defer func() { _ = logger.Sync() }()

	g, err := ontology.LoadOBOFile(cfg.Ontology.OBO)
	if err != nil {
		return fmt.Errorf("%w: %w", mztab.ErrInvalidConfig, err)
	}
	logger.Verbose("Parsed %d terms from %s", g.Len(), cfg.Ontology.OBO)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	store, err := ontology.OpenPGStore(ctx, cfg.Ontology.DSN)
	if err != nil {
		return fmt.Errorf("open ontology store: %w", err)
	}
	defer store.Close()

	if err := store.Migrate(ctx); err != nil {
		return fmt.Errorf("migrate ontology store: %w", err)
	}
	n, err := store.Import(ctx, g)
	if err != nil {
		return fmt.Errorf("import %s: %w", cfg.Ontology.OBO, err)
	}
	logger.Info("Imported %d terms into the ontology store", n)
	return nil
}
