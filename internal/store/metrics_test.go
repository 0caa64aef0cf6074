package store_test

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/kezhuw/hgmanifest/internal/mpath"
	"github.com/kezhuw/hgmanifest/internal/nodehash"
	"github.com/kezhuw/hgmanifest/internal/store"
)

func TestInstrument(t *testing.T) {
	ctx := context.Background()
	reg := prometheus.NewPedanticRegistry()
	metrics := store.NewMetrics(reg)
	mem := store.NewMemoryStore()
	id, err := mem.PutNode(ctx, mpath.RootPath(), nodehash.NoParents(), []byte("x"))
	require.NoError(t, err)

	st := store.Instrument(mem, metrics)
	_, err = st.FetchNode(ctx, id)
	require.NoError(t, err)
	_, err = st.FetchNode(ctx, hashA)
	require.Error(t, err)
	_, err = st.ResolveHistory(ctx, mpath.RootPath(), id)
	require.NoError(t, err)

	require.EqualValues(t, 1, testutil.ToFloat64(metrics.Requests().WithLabelValues("fetch_node", "ok")))
	require.EqualValues(t, 1, testutil.ToFloat64(metrics.Requests().WithLabelValues("fetch_node", "not_found")))
	require.EqualValues(t, 1, testutil.ToFloat64(metrics.Requests().WithLabelValues("resolve_history", "ok")))
	require.Equal(t, 3, testutil.CollectAndCount(metrics.Requests()))
}

func TestInstrumentNilMetrics(t *testing.T) {
	mem := store.NewMemoryStore()
	require.Same(t, mem, store.Instrument(mem, nil))
}
