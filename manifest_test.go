package hgmanifest_test

import (
	"bytes"
	"context"
	_ "embed"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/kezhuw/hgmanifest"
)

//go:embed testdata/flatmanifest.bin
var flatManifest []byte

var (
	fixtureP1 = mustHash("a4e6d3e1e2e3e4e5e6e7e8e9eaebecedeeeff0f1")
	fixtureP2 = mustHash("0123456789abcdef0123456789abcdef01234567")
)

func mustHash(s string) hgmanifest.NodeHash {
	h, err := hgmanifest.ParseHash(s)
	if err != nil {
		panic(err)
	}
	return h
}

func TestParseFixture(t *testing.T) {
	parents := hgmanifest.NewParents(&fixtureP1, &fixtureP2)
	m, err := hgmanifest.Parse(parents, flatManifest)
	require.NoError(t, err)

	p1, ok := m.Parents().Get(0)
	require.True(t, ok)
	require.Equal(t, fixtureP1, p1)
	p2, ok := m.Parents().Get(1)
	require.True(t, ok)
	require.Equal(t, fixtureP2, p2)
	require.Equal(t, 20, m.Len())

	var buf bytes.Buffer
	require.NoError(t, m.Generate(&buf))
	require.Equal(t, flatManifest, buf.Bytes())
	require.Equal(t, flatManifest, m.Bytes())

	again, err := hgmanifest.ParseStrict(parents, m.Bytes())
	require.NoError(t, err)
	require.True(t, m.Equal(again))
	require.False(t, m.Equal(nil))
	require.True(t, (*hgmanifest.Manifest)(nil).Equal(nil))

	d, ok := m.Lookup(mustPath("tests/data"))
	require.True(t, ok)
	require.Equal(t, hgmanifest.Tree, d.Type)
	d, ok = m.Lookup(mustPath("docs/link"))
	require.True(t, ok)
	require.Equal(t, hgmanifest.Symlink, d.Type)
}

func TestParseBoundaries(t *testing.T) {
	tests := []struct {
		data string
		err  error
	}{
		{"hello123", hgmanifest.ErrMissingSeparator},
		{"hello123\x00", hgmanifest.ErrHashTooShort},
		{"hello123\x00abc123", hgmanifest.ErrHashTooShort},
		{"hello123\x00da39a3ee5e6b4b0d3255bfef95601890afd80709xltZZZ\n", hgmanifest.ErrTooManyFlags},
		{"hello123\x00da39a3ee5e6b4b0d3255bfef95601890afd80709q\n", hgmanifest.ErrUnknownFlag},
		{"\x00da39a3ee5e6b4b0d3255bfef95601890afd80709\n", hgmanifest.ErrInvalidPath},
	}
	for i, tt := range tests {
		_, err := hgmanifest.Parse(hgmanifest.Parents{}, []byte(tt.data))
		if !hgmanifest.IsCorrupt(err) {
			t.Fatalf("test=%d got=%v want corruption", i, err)
		}
		require.ErrorIs(t, err, tt.err, "test=%d", i)
	}

	m, err := hgmanifest.Parse(hgmanifest.Parents{}, nil)
	require.NoError(t, err)
	require.Zero(t, m.Len())

	m, err = hgmanifest.Parse(hgmanifest.Parents{}, []byte("hello123\x00da39a3ee5e6b4b0d3255bfef95601890afd80709\n"))
	require.NoError(t, err)
	d, ok := m.Lookup(mustPath("hello123"))
	require.True(t, ok)
	require.Equal(t, hgmanifest.File, d.Type)
}

func TestDirStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, err := hgmanifest.OpenDirStore(t.TempDir(), nil)
	require.NoError(t, err)
	defer s.Close()

	parents := hgmanifest.NewParents(&fixtureP1, &fixtureP2)
	id, err := s.PutNode(ctx, hgmanifest.RootPath(), parents, flatManifest)
	require.NoError(t, err)
	require.Equal(t, hgmanifest.ComputeHash(parents, flatManifest), id)

	repo := hgmanifest.New(s, nil)
	m, err := repo.Manifest(ctx, id)
	require.NoError(t, err)
	require.Equal(t, parents, m.Parents())
	require.Equal(t, flatManifest, m.Bytes())

	got, err := repo.RootEntry(id).Parents(ctx)
	require.NoError(t, err)
	require.Equal(t, parents, got)
}

func TestMetrics(t *testing.T) {
	ctx := context.Background()
	reg := prometheus.NewPedanticRegistry()
	repo := hgmanifest.New(newFixtureStore(), &hgmanifest.Options{Registerer: reg})

	for i := 0; i < 3; i++ {
		_, err := repo.Manifest(ctx, rootID)
		require.NoError(t, err)
	}
	_, err := repo.Manifest(ctx, hash('f'))
	require.Error(t, err)

	expected := `
# HELP hgmanifest_store_cache_hits_total Number of store requests served from cache.
# TYPE hgmanifest_store_cache_hits_total counter
hgmanifest_store_cache_hits_total 2
# HELP hgmanifest_store_cache_misses_total Number of store requests that were not served from cache.
# TYPE hgmanifest_store_cache_misses_total counter
hgmanifest_store_cache_misses_total 2
# HELP hgmanifest_store_requests_total Number of store requests, by operation and result.
# TYPE hgmanifest_store_requests_total counter
hgmanifest_store_requests_total{op="fetch_node",result="not_found"} 1
hgmanifest_store_requests_total{op="fetch_node",result="ok"} 1
`
	err = testutil.GatherAndCompare(reg, strings.NewReader(expected),
		"hgmanifest_store_cache_hits_total",
		"hgmanifest_store_cache_misses_total",
		"hgmanifest_store_requests_total",
	)
	require.NoError(t, err)
}

func TestCacheDisabled(t *testing.T) {
	ctx := context.Background()
	reg := prometheus.NewPedanticRegistry()
	repo := hgmanifest.New(newFixtureStore(), &hgmanifest.Options{Registerer: reg, CacheCapacity: -1})
	for i := 0; i < 2; i++ {
		_, err := repo.Manifest(ctx, rootID)
		require.NoError(t, err)
	}
	n, err := testutil.GatherAndCount(reg, "hgmanifest_store_cache_hits_total")
	require.NoError(t, err)
	require.Equal(t, 1, n)
	n, err = testutil.GatherAndCount(reg, "hgmanifest_store_requests_total")
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

func TestRange(t *testing.T) {
	m, err := hgmanifest.Parse(hgmanifest.Parents{}, flatManifest)
	require.NoError(t, err)

	var paths []string
	m.Range(func(path hgmanifest.Path, d hgmanifest.Details) bool {
		paths = append(paths, path.String())
		return len(paths) < 12
	})
	require.Len(t, paths, 12)
	require.Equal(t, []string{"lib/a-b.c", "lib/a.c", "lib/a/b.c"}, paths[9:12])
}
