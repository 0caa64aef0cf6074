package store

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/kezhuw/hgmanifest/internal/mpath"
	"github.com/kezhuw/hgmanifest/internal/nodehash"
)

type cacheStore struct {
	Store
	nodes   *lru.Cache[nodehash.NodeHash, *Node]
	history *lru.Cache[HistoryKey, *Node]
	metrics *Metrics
}

// NewCache wraps s with LRU caches holding up to capacity nodes and
// capacity history entries. Failures are never cached. A capacity below
// one returns s unchanged. m may be nil.
func NewCache(s Store, capacity int, m *Metrics) Store {
	if capacity < 1 {
		return s
	}
	c := &cacheStore{Store: s, metrics: m}
	// lru.NewWithEvict only errors for size < 1
	c.nodes, _ = lru.NewWithEvict(capacity, func(nodehash.NodeHash, *Node) { c.metrics.evicted() })
	c.history, _ = lru.NewWithEvict(capacity, func(HistoryKey, *Node) { c.metrics.evicted() })
	return c
}

func (c *cacheStore) FetchNode(ctx context.Context, id nodehash.NodeHash) (*Node, error) {
	if node, ok := c.nodes.Get(id); ok {
		c.metrics.hit()
		return node, nil
	}
	c.metrics.miss()
	node, err := c.Store.FetchNode(ctx, id)
	if err != nil {
		return nil, err
	}
	c.nodes.Add(id, node)
	return node, nil
}

func (c *cacheStore) ResolveHistory(ctx context.Context, path mpath.RepoPath, id nodehash.NodeHash) (*Node, error) {
	key := HistoryKey{Path: path, Node: id}
	if node, ok := c.history.Get(key); ok {
		c.metrics.hit()
		return node, nil
	}
	c.metrics.miss()
	node, err := c.Store.ResolveHistory(ctx, path, id)
	if err != nil {
		return nil, err
	}
	c.history.Add(key, node)
	return node, nil
}
