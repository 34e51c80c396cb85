package ontology

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	mztabtesting "github.com/vvka-141/mztabm/internal/testing"
	"github.com/vvka-141/mztabm/pkg/mztab"
)

func setupPGStore(t *testing.T) *PGStore {
	t.Helper()
	dsn := mztabtesting.RequireDatabase(t)
	store := NewPGStore(mztabtesting.NewTestPool(t, dsn))

	ctx := context.Background()
	require.NoError(t, store.Migrate(ctx))
	n, err := store.Import(ctx, loadTestGraph(t))
	require.NoError(t, err)
	require.Equal(t, 42, n)
	return store
}

func TestPGStore_Compare(t *testing.T) {
	store := setupPGStore(t)
	ctx := context.Background()

	tests := []struct {
		name      string
		reference string
		candidate string
		depth     int
		want      mztab.Relation
	}{
		{"direct child", "MS:1000560", "MS:1000564", mztab.UnboundedDepth, mztab.ChildOf},
		{"identical", "MS:1000564", "MS:1000564", mztab.UnboundedDepth, mztab.Identical},
		{"unrelated", "MS:1000465", "MS:1000564", mztab.UnboundedDepth, mztab.NotRelated},
		{"within depth", "MS:1001459", "MS:1000564", 2, mztab.ChildOf},
		{"beyond depth", "MS:1001459", "MS:1000564", 1, mztab.NotRelated},
		{"via part_of", "MS:1000463", "MS:1000449", mztab.UnboundedDepth, mztab.ChildOf},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := store.Compare(ctx, mztab.NewTerm(tt.reference), mztab.NewTerm(tt.candidate), tt.depth)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPGStore_ResolveParents(t *testing.T) {
	store := setupPGStore(t)

	parents, err := store.ResolveParents(context.Background(), mztab.NewTerm("MS:1000564"), mztab.UnboundedDepth)

	require.NoError(t, err)
	assert.Equal(t, []string{"MS:1000560", "MS:1001459", "MS:0000000"}, accessions(parents))
	assert.Equal(t, "mass spectrometer file format", parents[0].Name)
	assert.Equal(t, "MS", parents[0].Label)
}

func TestPGStore_ResolveChildren(t *testing.T) {
	store := setupPGStore(t)

	children, err := store.ResolveChildren(context.Background(), mztab.NewTerm("MS:1000465"))

	require.NoError(t, err)
	assert.Equal(t, []string{"MS:1000129", "MS:1000130"}, accessions(children))
}

func TestPGStore_UnknownTerm(t *testing.T) {
	store := setupPGStore(t)

	_, err := store.ResolveParents(context.Background(), mztab.NewTerm("MS:9999999"), 1)

	assert.ErrorIs(t, err, mztab.ErrTermNotFound)
}

func TestPGStore_ReimportReplacesLinks(t *testing.T) {
	store := setupPGStore(t)
	ctx := context.Background()

	g := NewGraph()
	g.Add(mztab.Term{Accession: "MS:1000564", Name: "PSI mzData format"}, "MS:1000465")
	_, err := store.Import(ctx, g)
	require.NoError(t, err)

	rel, err := store.Compare(ctx, mztab.NewTerm("MS:1000465"), mztab.NewTerm("MS:1000564"), 1)
	require.NoError(t, err)
	assert.Equal(t, mztab.ChildOf, rel)
	rel, err = store.Compare(ctx, mztab.NewTerm("MS:1000560"), mztab.NewTerm("MS:1000564"), 1)
	require.NoError(t, err)
	assert.Equal(t, mztab.NotRelated, rel)
}
