// Package retry re-runs operations that fail with transient errors.
//
// An Executor combines an mztab.ErrorClassifier with an
// mztab.BackoffStrategy. Two classifiers ship with the package: one for the
// Postgres ontology store and one for HTTP ontology services.
//
//	exec := retry.NewExecutor(retry.NewHTTPClassifier(), retry.NewExponentialBackoff(3))
//	err := exec.Execute(ctx, func(ctx context.Context) error {
//	    return fetchParents(ctx)
//	})
package retry
