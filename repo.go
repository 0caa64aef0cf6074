package hgmanifest

import (
	"context"
	"fmt"

	"github.com/kezhuw/hgmanifest/internal/errors"
	"github.com/kezhuw/hgmanifest/internal/logger"
	"github.com/kezhuw/hgmanifest/internal/manifest"
	"github.com/kezhuw/hgmanifest/internal/mpath"
	"github.com/kezhuw/hgmanifest/internal/nodehash"
	"github.com/kezhuw/hgmanifest/internal/store"
)

// Repo resolves manifests and their entries against a Store. It is safe
// for concurrent use.
type Repo struct {
	store       store.Store
	logger      logger.Logger
	concurrency int
	strict      bool
}

// New returns a Repo reading from s. With default options, s is wrapped
// in a node cache.
func New(s Store, opts *Options) *Repo {
	log := logger.With(opts.getLogger(), "store", fmt.Sprintf("%T", s))
	var metrics *store.Metrics
	if reg := opts.getRegisterer(); reg != nil {
		metrics = store.NewMetrics(reg)
	}
	s = store.Instrument(s, metrics)
	s = store.NewCache(s, opts.getCacheCapacity(), metrics)
	return &Repo{
		store:       s,
		logger:      log,
		concurrency: opts.getFetchConcurrency(),
		strict:      opts.getStrictParse(),
	}
}

func (r *Repo) fetchNode(ctx context.Context, id nodehash.NodeHash) (*Node, error) {
	r.logger.Debugf("hgmanifest: fetch node %s", id)
	return r.store.FetchNode(ctx, id)
}

func (r *Repo) resolveHistory(ctx context.Context, path mpath.RepoPath, id nodehash.NodeHash) (*Node, error) {
	r.logger.Debugf("hgmanifest: resolve history of %s node %s", path, id)
	return r.store.ResolveHistory(ctx, path, id)
}

func (r *Repo) parseBody(data []byte, prefix mpath.Path) (*manifest.Body, error) {
	if r != nil && r.strict {
		return manifest.ParseStrict(data, prefix)
	}
	return manifest.Parse(data, prefix)
}

// Manifest fetches the root manifest stored under id.
func (r *Repo) Manifest(ctx context.Context, id NodeHash) (*Manifest, error) {
	node, err := r.fetchNode(ctx, id)
	if err != nil {
		return nil, errors.Wrapf(err, "fetch manifest %s", id)
	}
	return FromNode(r, node)
}

// RootEntry returns the tree entry of the root manifest id. It has no
// name, and its content parses without a path prefix.
func (r *Repo) RootEntry(id NodeHash) *Entry {
	return &Entry{
		repo:    r,
		path:    mpath.RootPath(),
		details: manifest.NewDetails(nodehash.EntryID(id), manifest.Tree),
	}
}
