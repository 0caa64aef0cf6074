package hgmanifest

import (
	"io"

	"github.com/kezhuw/hgmanifest/internal/errors"
	"github.com/kezhuw/hgmanifest/internal/iterator"
	"github.com/kezhuw/hgmanifest/internal/manifest"
	"github.com/kezhuw/hgmanifest/internal/mpath"
)

// Manifest is one revision of a directory: an ordered mapping from paths
// to entry details plus the revision's parents. Manifests are immutable
// and safe for concurrent use. Manifests built by Parse have no repo, so
// entries can be looked up but not resolved.
type Manifest struct {
	repo    *Repo
	parents Parents
	body    *manifest.Body
}

// Parse parses a manifest from flat bytes without a backing repo.
func Parse(parents Parents, data []byte) (*Manifest, error) {
	body, err := manifest.Parse(data, mpath.Path{})
	if err != nil {
		return nil, err
	}
	return &Manifest{parents: parents, body: body}, nil
}

// ParseStrict is like Parse but rejects lines out of strictly increasing
// path order.
func ParseStrict(parents Parents, data []byte) (*Manifest, error) {
	body, err := manifest.ParseStrict(data, mpath.Path{})
	if err != nil {
		return nil, err
	}
	return &Manifest{parents: parents, body: body}, nil
}

// FromNode parses node's payload as a root manifest backed by repo, which
// may be nil.
func FromNode(repo *Repo, node *Node) (*Manifest, error) {
	data, ok := node.Blob.Bytes()
	if !ok {
		return nil, errors.ErrMissingBlobData
	}
	body, err := repo.parseBody(data, mpath.Path{})
	if err != nil {
		return nil, err
	}
	return &Manifest{repo: repo, parents: node.Parents, body: body}, nil
}

func (m *Manifest) Parents() Parents {
	return m.parents
}

func (m *Manifest) Len() int {
	return m.body.Len()
}

// Lookup returns details recorded for path. Paths in nested manifests
// carry their directory prefix.
func (m *Manifest) Lookup(path Path) (Details, bool) {
	return m.body.Lookup(path)
}

// Entry returns the entry at path, false if there is none.
func (m *Manifest) Entry(path Path) (*Entry, bool, error) {
	if m.repo == nil {
		return nil, false, errors.ErrNoRepo
	}
	details, ok := m.body.Lookup(path)
	if !ok {
		return nil, false, nil
	}
	return newEntry(m.repo, path, details), true, nil
}

// List returns entries in path order. Each call returns an independent
// listing.
func (m *Manifest) List() Listing {
	if m.repo == nil {
		return iterator.Error[*Entry](errors.ErrNoRepo)
	}
	if m.body.Len() == 0 {
		return iterator.Empty[*Entry]()
	}
	return &listing{repo: m.repo, it: m.body.Iterator()}
}

// Range calls fn for each path and its details in path order until fn
// returns false. Unlike List it needs no repo.
func (m *Manifest) Range(fn func(path Path, details Details) bool) {
	it := m.body.Iterator()
	for it.Next() {
		item := it.Item()
		if !fn(item.Path, item.Details) {
			return
		}
	}
}

// Generate writes the flat encoding of m. Generating a manifest parsed from
// well-formed bytes reproduces them up to the terminating empty line.
func (m *Manifest) Generate(w io.Writer) error {
	return m.body.Generate(w)
}

func (m *Manifest) Bytes() []byte {
	return m.body.AppendTo(nil)
}

// Equal reports whether m and other have equal parents and entries. A nil
// manifest equals only another nil manifest.
func (m *Manifest) Equal(other *Manifest) bool {
	if m == nil || other == nil {
		return m == other
	}
	return m.parents == other.parents && m.body.Equal(other.body)
}
