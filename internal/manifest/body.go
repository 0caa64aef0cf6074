package manifest

import (
	"bytes"
	"io"

	"github.com/google/btree"

	"github.com/kezhuw/hgmanifest/internal/errors"
	"github.com/kezhuw/hgmanifest/internal/mpath"
)

const btreeDegree = 32

// Item is one manifest line: a path and its details.
type Item struct {
	Path    mpath.Path
	Details Details
}

func itemLess(a, b Item) bool {
	return a.Path.Compare(b.Path) < 0
}

// Body is an immutable mapping from paths to details ordered by raw path
// bytes. Concurrent reads are safe.
type Body struct {
	tree *btree.BTreeG[Item]
}

var emptyBody = &Body{tree: btree.NewG(btreeDegree, itemLess)}

// Empty returns a body with no entries.
func Empty() *Body {
	return emptyBody
}

// NewBody builds a body from items which must be in strictly increasing
// path order.
func NewBody(items ...Item) (*Body, error) {
	tree := btree.NewG(btreeDegree, itemLess)
	for i, item := range items {
		if item.Path.IsEmpty() {
			return nil, errors.Wrapf(errors.ErrInvalidPath, "item %d has empty path", i)
		}
		if i > 0 && items[i-1].Path.Compare(item.Path) >= 0 {
			return nil, errors.Wrapf(errors.ErrUnsortedEntries, "%q after %q", item.Path, items[i-1].Path)
		}
		tree.ReplaceOrInsert(item)
	}
	return &Body{tree: tree}, nil
}

// Parse parses a flat manifest:
//
//	<path>\0<40 hex hash>[<flag>]\n
//
// Parsing stops at the first empty line. If prefix is not empty, it is
// joined in front of every path. Lines are assumed to come in strictly
// increasing order from a trusted producer; a repeated path replaces
// the earlier one and unordered lines are sorted silently. Use ParseStrict
// to reject such input.
func Parse(data []byte, prefix mpath.Path) (*Body, error) {
	return parse(data, prefix, false)
}

// ParseStrict is like Parse but fails with ErrUnsortedEntries if a line
// does not sort strictly after its predecessor.
func ParseStrict(data []byte, prefix mpath.Path) (*Body, error) {
	return parse(data, prefix, true)
}

func parse(data []byte, prefix mpath.Path, strict bool) (*Body, error) {
	tree := btree.NewG(btreeDegree, itemLess)
	var last mpath.Path
	for i, line := range bytes.Split(data, []byte{'\n'}) {
		if len(line) == 0 {
			break
		}
		item, err := parseLine(line, prefix)
		if err != nil {
			return nil, errors.NewParseError(i+1, err)
		}
		if strict && i > 0 && last.Compare(item.Path) >= 0 {
			return nil, errors.NewParseError(i+1, errors.Wrapf(errors.ErrUnsortedEntries, "%q after %q", item.Path, last))
		}
		last = item.Path
		tree.ReplaceOrInsert(item)
	}
	return &Body{tree: tree}, nil
}

func parseLine(line []byte, prefix mpath.Path) (Item, error) {
	nul := bytes.IndexByte(line, 0)
	if nul < 0 {
		return Item{}, errors.ErrMissingSeparator
	}
	path, err := mpath.New(line[:nul])
	if err != nil {
		return Item{}, err
	}
	details, err := DecodeDetails(line[nul+1:])
	if err != nil {
		return Item{}, err
	}
	return Item{Path: prefix.Join(path), Details: details}, nil
}

// AppendTo appends the flat encoding of b to dst.
func (b *Body) AppendTo(dst []byte) []byte {
	b.tree.Ascend(func(item Item) bool {
		dst = item.Path.AppendTo(dst)
		dst = append(dst, 0)
		dst = item.Details.AppendTo(dst)
		dst = append(dst, '\n')
		return true
	})
	return dst
}

// Generate writes the flat encoding of b to w.
func (b *Body) Generate(w io.Writer) error {
	var err error
	var buf []byte
	b.tree.Ascend(func(item Item) bool {
		buf = item.Path.AppendTo(buf[:0])
		buf = append(buf, 0)
		buf = item.Details.AppendTo(buf)
		buf = append(buf, '\n')
		_, err = w.Write(buf)
		return err == nil
	})
	return err
}

// Lookup returns details of an exact path.
func (b *Body) Lookup(path mpath.Path) (Details, bool) {
	item, ok := b.tree.Get(Item{Path: path})
	return item.Details, ok
}

func (b *Body) Len() int {
	return b.tree.Len()
}

// Items returns all entries in path order.
func (b *Body) Items() []Item {
	items := make([]Item, 0, b.tree.Len())
	b.tree.Ascend(func(item Item) bool {
		items = append(items, item)
		return true
	})
	return items
}

// Equal reports whether b and other hold the same entries. A nil body
// equals only another nil body.
func (b *Body) Equal(other *Body) bool {
	if b == nil || other == nil {
		return b == other
	}
	if b.Len() != other.Len() {
		return false
	}
	equal := true
	it := other.Iterator()
	b.tree.Ascend(func(item Item) bool {
		equal = it.Next() && it.Item() == item
		return equal
	})
	return equal
}

// Iterator returns a fresh cursor positioned before the first entry.
func (b *Body) Iterator() *Iterator {
	return &Iterator{tree: b.tree}
}
