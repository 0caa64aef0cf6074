package hgmanifest

import (
	"github.com/kezhuw/hgmanifest/internal/iterator"
	"github.com/kezhuw/hgmanifest/internal/manifest"
)

// Listing yields the entries of one manifest in path order. Building an
// entry does no I/O. A Listing is not safe for concurrent use, but
// listings of one manifest are independent of each other.
type Listing = iterator.Iterator[*Entry]

type listing struct {
	repo   *Repo
	it     *manifest.Iterator
	entry  *Entry
	status iterator.Status
}

func (l *listing) Next() bool {
	switch l.status {
	case iterator.Exhausted, iterator.Closed:
		return false
	}
	if !l.it.Next() {
		l.entry, l.status = nil, iterator.Exhausted
		return false
	}
	item := l.it.Item()
	l.entry, l.status = newEntry(l.repo, item.Path, item.Details), iterator.Valid
	return true
}

func (l *listing) Item() *Entry {
	if l.status != iterator.Valid {
		panic("hgmanifest: listing is " + l.status.String())
	}
	return l.entry
}

func (l *listing) Err() error {
	return nil
}

func (l *listing) Close() error {
	l.entry, l.status = nil, iterator.Closed
	return nil
}
