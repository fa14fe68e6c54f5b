package incremental

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCacheLookupMissing(t *testing.T) {
	c, err := Open(":memory:")
	require.NoError(t, err)
	defer c.Close()

	_, ok, err := c.Lookup(context.Background(), "post:/blog/hello")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestCacheStoreAndLookup(t *testing.T) {
	c, err := Open(":memory:")
	require.NoError(t, err)
	defer c.Close()

	ctx := context.Background()
	require.NoError(t, c.Store(ctx, "post:/blog/hello", "abc123"))

	hash, ok, err := c.Lookup(ctx, "post:/blog/hello")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "abc123", hash)
}

func TestCacheStoreOverwrites(t *testing.T) {
	c, err := Open(":memory:")
	require.NoError(t, err)
	defer c.Close()

	ctx := context.Background()
	require.NoError(t, c.Store(ctx, "post:/blog/hello", "abc123"))
	require.NoError(t, c.Store(ctx, "post:/blog/hello", "def456"))

	hash, ok, err := c.Lookup(ctx, "post:/blog/hello")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "def456", hash)

	n, err := c.Len(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

func TestCachePruneExcept(t *testing.T) {
	c, err := Open(":memory:")
	require.NoError(t, err)
	defer c.Close()

	ctx := context.Background()
	require.NoError(t, c.Store(ctx, "post:/blog/a", "h1"))
	require.NoError(t, c.Store(ctx, "post:/blog/b", "h2"))
	require.NoError(t, c.Store(ctx, "post:/blog/c", "h3"))

	keep := map[string]bool{"post:/blog/a": true, "post:/blog/c": true}
	require.NoError(t, c.PruneExcept(ctx, keep))

	_, ok, err := c.Lookup(ctx, "post:/blog/b")
	require.NoError(t, err)
	require.False(t, ok)

	_, ok, err = c.Lookup(ctx, "post:/blog/a")
	require.NoError(t, err)
	require.True(t, ok)
}

func TestCachePruneAll(t *testing.T) {
	c, err := Open(":memory:")
	require.NoError(t, err)
	defer c.Close()

	ctx := context.Background()
	require.NoError(t, c.Store(ctx, "post:/blog/a", "h1"))
	require.NoError(t, c.PruneExcept(ctx, nil))

	n, err := c.Len(ctx)
	require.NoError(t, err)
	require.Equal(t, 0, n)
}

func TestCachePersistsAcrossOpens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")

	c, err := Open(path)
	require.NoError(t, err)
	ctx := context.Background()
	require.NoError(t, c.Store(ctx, "post:/blog/a", "h1"))
	require.NoError(t, c.Close())

	c2, err := Open(path)
	require.NoError(t, err)
	defer c2.Close()

	hash, ok, err := c2.Lookup(ctx, "post:/blog/a")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "h1", hash)
}
