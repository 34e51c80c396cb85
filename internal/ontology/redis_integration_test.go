package ontology

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mztabtesting "github.com/vvka-141/mztabm/internal/testing"
	"github.com/vvka-141/mztabm/pkg/mztab"
)

func TestRedisCache_RealServer(t *testing.T) {
	addr := mztabtesting.RequireRedis(t)
	ctx := context.Background()

	client, err := DialRedis(ctx, addr)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	inner := &countingLookup{next: loadTestGraph(t)}
	cache := NewRedisCache(inner, client, WithPrefix("mztabm-test:"+uuid.NewString()+":"))
	t.Cleanup(func() { _ = cache.Invalidate(context.Background()) })

	for range 3 {
		rel, err := cache.Compare(ctx, mztab.NewTerm("MS:1000560"), mztab.NewTerm("MS:1000564"), mztab.UnboundedDepth)
		require.NoError(t, err)
		assert.Equal(t, mztab.ChildOf, rel)
	}

	parents, _, _ := inner.counts()
	assert.Equal(t, 1, parents)

	require.NoError(t, cache.Invalidate(ctx))
	_, err = cache.ResolveParents(ctx, mztab.NewTerm("MS:1000564"), mztab.UnboundedDepth)
	require.NoError(t, err)
	parents, _, _ = inner.counts()
	assert.Equal(t, 2, parents)
}
