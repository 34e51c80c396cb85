package ontology

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vvka-141/mztabm/internal/retry"
	"github.com/vvka-141/mztabm/pkg/mztab"
)

const (
	pgMaxConns        = 8
	pgMinConns        = 1
	pgMaxConnIdleTime = 30 * time.Minute
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS cv_term (
    accession text PRIMARY KEY,
    label     text NOT NULL,
    name      text NOT NULL DEFAULT '',
    obsolete  boolean NOT NULL DEFAULT false
);
CREATE TABLE IF NOT EXISTS cv_term_parent (
    accession text NOT NULL REFERENCES cv_term (accession) ON DELETE CASCADE,
    parent    text NOT NULL,
    PRIMARY KEY (accession, parent)
);
CREATE INDEX IF NOT EXISTS cv_term_parent_parent_idx ON cv_term_parent (parent);
`

const existsSQL = `SELECT EXISTS (SELECT 1 FROM cv_term WHERE accession = $1)`

const childrenSQL = `
SELECT p.accession, t.label, t.name
FROM cv_term_parent p
JOIN cv_term t ON t.accession = p.accession
WHERE p.parent = $1
ORDER BY p.accession`

// ancestorsSQL walks cv_term_parent upwards; $2 < 0 means no depth bound.
const ancestorsSQL = `
WITH RECURSIVE up (accession, depth) AS (
    SELECT parent, 1 FROM cv_term_parent WHERE accession = $1
    UNION ALL
    SELECT p.parent, up.depth + 1
    FROM cv_term_parent p
    JOIN up ON p.accession = up.accession
    WHERE $2 < 0 OR up.depth < $2
) CYCLE accession SET is_cycle USING walk
SELECT u.accession, coalesce(t.label, ''), coalesce(t.name, ''), min(u.depth) AS depth
FROM up u
LEFT JOIN cv_term t ON t.accession = u.accession
WHERE u.accession <> $1
GROUP BY u.accession, t.label, t.name
ORDER BY depth, u.accession`

// PGStore serves term lookups from terms imported into Postgres.
type PGStore struct {
	pool *pgxpool.Pool
	exec *retry.Executor
}

// OpenPGStore connects to dsn, retrying transient connection failures.
func OpenPGStore(ctx context.Context, dsn string) (*PGStore, error) {
	exec := newPGExecutor()
	var pool *pgxpool.Pool
	err := exec.Execute(ctx, func(ctx context.Context) error {
		cfg, err := pgxpool.ParseConfig(dsn)
		if err != nil {
			return fmt.Errorf("parse ontology store DSN: %w", err)
		}
		cfg.MaxConns = pgMaxConns
		cfg.MinConns = pgMinConns
		cfg.MaxConnIdleTime = pgMaxConnIdleTime

		p, err := pgxpool.NewWithConfig(ctx, cfg)
		if err != nil {
			return fmt.Errorf("connect ontology store: %w", err)
		}
		if err := p.Ping(ctx); err != nil {
			p.Close()
			return fmt.Errorf("ping ontology store: %w", err)
		}
		pool = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &PGStore{pool: pool, exec: exec}, nil
}

// NewPGStore wraps an existing pool. The caller keeps ownership of pool.
func NewPGStore(pool *pgxpool.Pool) *PGStore {
	return &PGStore{pool: pool, exec: newPGExecutor()}
}

func newPGExecutor() *retry.Executor {
	return retry.NewExecutor(retry.NewPostgresClassifier(), retry.NewExponentialBackoff(
		mztab.DefaultRetryMaxAttempts,
		retry.WithInitialDelay(mztab.DefaultRetryInitialDelay),
		retry.WithMaxDelay(mztab.DefaultRetryMaxDelay),
	))
}

func (s *PGStore) Close() {
	s.pool.Close()
}

// Migrate creates the term tables when missing.
func (s *PGStore) Migrate(ctx context.Context) error {
	return s.exec.Execute(ctx, func(ctx context.Context) error {
		if _, err := s.pool.Exec(ctx, schemaSQL); err != nil {
			return fmt.Errorf("migrate ontology store: %w", err)
		}
		return nil
	})
}

// Import upserts every term of g and replaces their parent links in one
// transaction. It returns the number of terms written.
func (s *PGStore) Import(ctx context.Context, g *Graph) (int, error) {
	terms := g.Terms()
	accessions := make([]string, len(terms))
	var links [][]any
	for i, t := range terms {
		accessions[i] = t.Accession
		for _, p := range g.Parents(t.Accession) {
			links = append(links, []any{t.Accession, p})
		}
	}

	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		batch := &pgx.Batch{}
		for _, t := range terms {
			batch.Queue(`
INSERT INTO cv_term (accession, label, name, obsolete) VALUES ($1, $2, $3, $4)
ON CONFLICT (accession) DO UPDATE SET label = excluded.label, name = excluded.name, obsolete = excluded.obsolete`,
				t.Accession, t.Label, t.Name, g.Obsolete(t.Accession))
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("upsert terms: %w", err)
		}
		if _, err := tx.Exec(ctx, `DELETE FROM cv_term_parent WHERE accession = ANY($1)`, accessions); err != nil {
			return fmt.Errorf("clear parent links: %w", err)
		}
		if _, err := tx.CopyFrom(ctx, pgx.Identifier{"cv_term_parent"}, []string{"accession", "parent"}, pgx.CopyFromRows(links)); err != nil {
			return fmt.Errorf("copy parent links: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("import ontology: %w", err)
	}
	return len(terms), nil
}

func (s *PGStore) requireTerm(ctx context.Context, term mztab.Term) error {
	var exists bool
	err := s.exec.Execute(ctx, func(ctx context.Context) error {
		return s.pool.QueryRow(ctx, existsSQL, term.Accession).Scan(&exists)
	})
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%s: %w", term.Accession, mztab.ErrTermNotFound)
	}
	return nil
}

func (s *PGStore) ResolveChildren(ctx context.Context, term mztab.Term) ([]mztab.Term, error) {
	if err := s.requireTerm(ctx, term); err != nil {
		return nil, err
	}
	return s.query(ctx, childrenSQL, term.Accession)
}

func (s *PGStore) ResolveParents(ctx context.Context, term mztab.Term, maxDepth int) ([]mztab.Term, error) {
	if err := s.requireTerm(ctx, term); err != nil {
		return nil, err
	}
	if maxDepth == 0 {
		return nil, nil
	}
	return s.query(ctx, ancestorsSQL, term.Accession, maxDepth)
}

func (s *PGStore) Compare(ctx context.Context, reference, candidate mztab.Term, maxDepth int) (mztab.Relation, error) {
	return Relate(ctx, s, reference, candidate, maxDepth)
}

func (s *PGStore) query(ctx context.Context, sql string, args ...any) ([]mztab.Term, error) {
	var out []mztab.Term
	err := s.exec.Execute(ctx, func(ctx context.Context) error {
		rows, err := s.pool.Query(ctx, sql, args...)
		if err != nil {
			return err
		}
		out, err = pgx.CollectRows(rows, scanTerm)
		return err
	})
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("query ontology store: %w", err)
	}
	return out, nil
}

func scanTerm(row pgx.CollectableRow) (mztab.Term, error) {
	var t mztab.Term
	var depth int
	var err error
	if len(row.FieldDescriptions()) == 4 {
		err = row.Scan(&t.Accession, &t.Label, &t.Name, &depth)
	} else {
		err = row.Scan(&t.Accession, &t.Label, &t.Name)
	}
	if t.Label == "" {
		t.Label = mztab.NewTerm(t.Accession).Label
	}
	return t, err
}
