package store_test

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/kezhuw/hgmanifest/internal/mpath"
	"github.com/kezhuw/hgmanifest/internal/nodehash"
	"github.com/kezhuw/hgmanifest/internal/store"
)

type countingStore struct {
	store.Store
	fetches   atomic.Int32
	histories atomic.Int32
}

func (s *countingStore) FetchNode(ctx context.Context, id nodehash.NodeHash) (*store.Node, error) {
	s.fetches.Add(1)
	return s.Store.FetchNode(ctx, id)
}

func (s *countingStore) ResolveHistory(ctx context.Context, path mpath.RepoPath, id nodehash.NodeHash) (*store.Node, error) {
	s.histories.Add(1)
	return s.Store.ResolveHistory(ctx, path, id)
}

func TestCache(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemoryStore()
	path := mpath.FilePath(mpath.MustNew("f"))
	id1, _ := mem.PutNode(ctx, path, nodehash.NoParents(), []byte("one"))
	id2, _ := mem.PutNode(ctx, path, nodehash.NoParents(), []byte("two"))
	id3, _ := mem.PutNode(ctx, path, nodehash.NoParents(), []byte("three"))

	counting := &countingStore{Store: mem}
	metrics := store.NewMetrics(prometheus.NewPedanticRegistry())
	cached := store.NewCache(counting, 2, metrics)

	for i := 0; i < 3; i++ {
		_, err := cached.FetchNode(ctx, id1)
		require.NoError(t, err)
	}
	require.EqualValues(t, 1, counting.fetches.Load())

	_, err := cached.FetchNode(ctx, id2)
	require.NoError(t, err)
	_, err = cached.FetchNode(ctx, id3)
	require.NoError(t, err)
	_, err = cached.FetchNode(ctx, id1)
	require.NoError(t, err)
	require.EqualValues(t, 4, counting.fetches.Load())

	for i := 0; i < 2; i++ {
		_, err = cached.ResolveHistory(ctx, path, id1)
		require.NoError(t, err)
	}
	require.EqualValues(t, 1, counting.histories.Load())

	require.EqualValues(t, 3, testutil.ToFloat64(metrics.Hits()))
	require.EqualValues(t, 5, testutil.ToFloat64(metrics.Misses()))
	require.EqualValues(t, 2, testutil.ToFloat64(metrics.Evictions()))
}

func TestCacheSkipsFailures(t *testing.T) {
	counting := &countingStore{Store: store.NewMemoryStore()}
	cached := store.NewCache(counting, 8, nil)
	for i := 0; i < 2; i++ {
		_, err := cached.FetchNode(context.Background(), hashA)
		require.Error(t, err)
	}
	require.EqualValues(t, 2, counting.fetches.Load())
}

func TestCacheDisabled(t *testing.T) {
	mem := store.NewMemoryStore()
	require.Same(t, mem, store.NewCache(mem, 0, nil))
	require.Same(t, mem, store.NewCache(mem, -1, nil))
}
