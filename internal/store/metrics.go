package store

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/kezhuw/hgmanifest/internal/errors"
	"github.com/kezhuw/hgmanifest/internal/mpath"
	"github.com/kezhuw/hgmanifest/internal/nodehash"
)

const (
	opFetch   = "fetch_node"
	opHistory = "resolve_history"
)

// Metrics are the prometheus collectors of store wrappers. A nil *Metrics
// records nothing.
type Metrics struct {
	requests  *prometheus.CounterVec
	seconds   *prometheus.HistogramVec
	hits      prometheus.Counter
	misses    prometheus.Counter
	evictions prometheus.Counter
}

// NewMetrics registers store collectors with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hgmanifest",
			Subsystem: "store",
			Name:      "requests_total",
			Help:      "Number of store requests, by operation and result.",
		}, []string{"op", "result"}),
		seconds: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "hgmanifest",
			Subsystem: "store",
			Name:      "request_seconds",
			Help:      "Distribution of time spent in store requests, by operation.",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}, []string{"op"}),
		hits: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "hgmanifest",
			Subsystem: "store_cache",
			Name:      "hits_total",
			Help:      "Number of store requests served from cache.",
		}),
		misses: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "hgmanifest",
			Subsystem: "store_cache",
			Name:      "misses_total",
			Help:      "Number of store requests that were not served from cache.",
		}),
		evictions: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "hgmanifest",
			Subsystem: "store_cache",
			Name:      "evictions_total",
			Help:      "Number of entries evicted from cache.",
		}),
	}
}

func (m *Metrics) Requests() *prometheus.CounterVec { return m.requests }
func (m *Metrics) Hits() prometheus.Counter           { return m.hits }
func (m *Metrics) Misses() prometheus.Counter         { return m.misses }
func (m *Metrics) Evictions() prometheus.Counter      { return m.evictions }

func (m *Metrics) hit() {
	if m != nil {
		m.hits.Inc()
	}
}

func (m *Metrics) miss() {
	if m != nil {
		m.misses.Inc()
	}
}

func (m *Metrics) evicted() {
	if m != nil {
		m.evictions.Inc()
	}
}

func (m *Metrics) observe(op string, start time.Time, err error) {
	result := "ok"
	switch {
	case err == nil:
	case errors.Is(err, errors.ErrNodeNotFound), errors.Is(err, errors.ErrHistoryNotFound):
		result = "not_found"
	default:
		result = "error"
	}
	m.requests.WithLabelValues(op, result).Inc()
	m.seconds.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

type instrumentedStore struct {
	Store
	metrics *Metrics
}

// Instrument wraps s to count and time its requests. A nil m returns s.
func Instrument(s Store, m *Metrics) Store {
	if m == nil {
		return s
	}
	return &instrumentedStore{Store: s, metrics: m}
}

func (s *instrumentedStore) FetchNode(ctx context.Context, id nodehash.NodeHash) (*Node, error) {
	start := time.Now()
	node, err := s.Store.FetchNode(ctx, id)
	s.metrics.observe(opFetch, start, err)
	return node, err
}

func (s *instrumentedStore) ResolveHistory(ctx context.Context, path mpath.RepoPath, id nodehash.NodeHash) (*Node, error) {
	start := time.Now()
	node, err := s.Store.ResolveHistory(ctx, path, id)
	s.metrics.observe(opHistory, start, err)
	return node, err
}
