package hgmanifest

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/kezhuw/hgmanifest/internal/errors"
)

// SkipDir is returned by a WalkFunc to not descend into a tree entry. For
// other entries it skips the remaining entries of the same manifest.
var SkipDir = errors.New("hgmanifest: skip this directory")

// WalkFunc is called for every entry visited by Walk.
type WalkFunc func(entry *Entry) error

// Walk visits entries of m depth first in path order, descending into
// tree entries. Subtrees of one manifest are prefetched concurrently, at
// most FetchConcurrency at a time, while fn sees that manifest's entries.
// A failure to resolve a subtree is returned only when the walk descends
// into it, so skipped trees never fail the walk. An error from fn stops
// the walk.
func (m *Manifest) Walk(ctx context.Context, fn WalkFunc) error {
	if m.repo == nil {
		return errors.ErrNoRepo
	}
	return m.walk(ctx, fn)
}

// subtree is the pending resolution of one tree entry.
type subtree struct {
	entry   *Entry
	content *Content
	err     error
	done    chan struct{}
}

func (t *subtree) resolve(ctx context.Context) {
	defer close(t.done)
	t.content, t.err = t.entry.Content(ctx)
}

func (t *subtree) wait(ctx context.Context) (*Manifest, error) {
	select {
	case <-t.done:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	if t.err != nil {
		return nil, t.err
	}
	tree, _ := t.content.Tree()
	return tree, nil
}

// prefetch resolves trees in the background. The returned function
// cancels outstanding resolutions and waits for them to exit.
func (m *Manifest) prefetch(ctx context.Context, trees []*subtree) func() {
	ctx, cancel := context.WithCancel(ctx)
	var g errgroup.Group
	if limit := m.repo.concurrency; limit > 0 {
		g.SetLimit(limit)
	}
	scheduled := make(chan struct{})
	go func() {
		defer close(scheduled)
		for _, t := range trees {
			t := t
			g.Go(func() error {
				t.resolve(ctx)
				return nil
			})
		}
	}()
	return func() {
		cancel()
		<-scheduled
		g.Wait()
	}
}

func (m *Manifest) walk(ctx context.Context, fn WalkFunc) error {
	var entries []*Entry
	var trees []*subtree
	pending := make(map[*Entry]*subtree)
	listing := m.List()
	for listing.Next() {
		entry := listing.Item()
		entries = append(entries, entry)
		if entry.details.IsTree() {
			t := &subtree{entry: entry, done: make(chan struct{})}
			trees = append(trees, t)
			pending[entry] = t
		}
	}
	if err := listing.Close(); err != nil {
		return err
	}

	stop := m.prefetch(ctx, trees)
	defer stop()

	for _, entry := range entries {
		err := fn(entry)
		t, isTree := pending[entry]
		switch {
		case err == SkipDir && isTree:
			continue
		case err == SkipDir:
			return nil
		case err != nil:
			return err
		case !isTree:
			continue
		}
		tree, err := t.wait(ctx)
		if err != nil {
			return err
		}
		if err := tree.walk(ctx, fn); err != nil {
			return err
		}
	}
	return nil
}

// ResolveContents resolves entries concurrently, running at most limit
// requests at a time; limit < 1 means no limit. The first failure cancels
// outstanding requests and is returned.
func ResolveContents(ctx context.Context, entries []*Entry, limit int) ([]*Content, error) {
	contents := make([]*Content, len(entries))
	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, entry := range entries {
		i, entry := i, entry
		g.Go(func() error {
			content, err := entry.Content(ctx)
			if err != nil {
				return err
			}
			contents[i] = content
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return contents, nil
}
