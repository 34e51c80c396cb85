package cli

import (
	"context"
	"fmt"

	"github.com/vvka-141/mztabm/internal/config"
	"github.com/vvka-141/mztabm/internal/ontology"
	"github.com/vvka-141/mztabm/internal/retry"
	"github.com/vvka-141/mztabm/pkg/mztab"
)

// openLookup builds the term lookup named by cfg.Backend. The returned
// cleanup must be called even when lookup is nil. BackendNone yields a nil
// lookup and no error.
func openLookup(ctx context.Context, cfg config.OntologyConfig, logger mztab.Logger) (mztab.TermLookup, func(), error) {
	var (
		lookup  mztab.TermLookup
		closers []func()
	)
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	switch cfg.Backend {
	case config.BackendNone, "":
		return nil, cleanup, nil
	case config.BackendOBO:
		g, err := ontology.LoadOBOFile(cfg.OBO)
		if err != nil {
			return nil, cleanup, fmt.Errorf("%w: %w", mztab.ErrInvalidConfig, err)
		}
		logger.Verbose("Loaded %d ontology terms from %s", g.Len(), cfg.OBO)
		lookup = g
	case config.BackendOLS:
		backoff := retry.NewExponentialBackoff(cfg.Retry.MaxAttempts,
			retry.WithInitialDelay(cfg.Retry.InitialDelay),
			retry.WithMaxDelay(cfg.Retry.MaxDelay),
		)
		exec := retry.NewExecutor(retry.NewHTTPClassifier(), backoff)
		logger.Verbose("Using OLS at %s", cfg.OLSURL)
		lookup = ontology.NewOLSClient(cfg.OLSURL, ontology.WithRetry(exec), ontology.WithLogger(logger))
	case config.BackendPostgres:
		store, err := ontology.OpenPGStore(ctx, cfg.DSN)
		if err != nil {
			return nil, cleanup, fmt.Errorf("open ontology store: %w", err)
		}
		closers = append(closers, store.Close)
		lookup = store
	default:
		return nil, cleanup, fmt.Errorf("%w: unknown ontology backend %q", mztab.ErrInvalidConfig, cfg.Backend)
	}

	if cfg.Redis != "" {
		client, err := ontology.DialRedis(ctx, cfg.Redis)
		if err != nil {
			cleanup()
			return nil, func() {}, err
		}
		closers = append(closers, func() { _ = client.Close() })
		logger.Verbose("Caching ontology answers in redis %s for %s", cfg.Redis, cfg.CacheTTL)
		lookup = ontology.NewRedisCache(lookup, client,
			ontology.WithTTL(cfg.CacheTTL),
			ontology.WithCacheLogger(logger),
		)
	}
	return lookup, cleanup, nil
}
