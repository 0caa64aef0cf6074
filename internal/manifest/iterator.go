package manifest

import "github.com/google/btree"

// Iterator walks a Body in path order. Each Next costs one O(log n)
// descent; nothing is materialized up front. An Iterator is not safe for
// concurrent use, but independent iterators over one Body are.
type Iterator struct {
	tree    *btree.BTreeG[Item]
	item    Item
	started bool
	valid   bool
}

// Next moves to next entry. It returns whether such entry exists.
func (it *Iterator) Next() bool {
	if it.started && !it.valid {
		return false
	}
	found := false
	visit := func(item Item) bool {
		if it.started && item.Path.Equal(it.item.Path) {
			return true
		}
		it.item, found = item, true
		return false
	}
	if it.started {
		it.tree.AscendGreaterOrEqual(it.item, visit)
	} else {
		it.tree.Ascend(visit)
	}
	it.started, it.valid = true, found
	return found
}

// Valid returns whether the iterator points to an entry.
func (it *Iterator) Valid() bool {
	return it.valid
}

// Item returns current entry. The behaviour is undefined if the iterator
// is not valid.
func (it *Iterator) Item() Item {
	return it.item
}
