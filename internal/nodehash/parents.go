package nodehash

import "fmt"

// Parents holds zero, one or two predecessor hashes. It is comparable.
type Parents struct {
	n int
	p [2]NodeHash
}

func NoParents() Parents {
	return Parents{}
}

func OneParent(p NodeHash) Parents {
	return Parents{n: 1, p: [2]NodeHash{p}}
}

func TwoParents(p1, p2 NodeHash) Parents {
	return Parents{n: 2, p: [2]NodeHash{p1, p2}}
}

// NewParents builds Parents from optional hashes. Nil and null hashes are
// treated as absent; a lone second parent becomes the first.
func NewParents(p1, p2 *NodeHash) Parents {
	if p1 != nil && p1.IsNull() {
		p1 = nil
	}
	if p2 != nil && p2.IsNull() {
		p2 = nil
	}
	switch {
	case p1 != nil && p2 != nil:
		return TwoParents(*p1, *p2)
	case p1 != nil:
		return OneParent(*p1)
	case p2 != nil:
		return OneParent(*p2)
	}
	return NoParents()
}

func (ps Parents) Len() int {
	return ps.n
}

// Get returns the i-th parent, false if absent.
func (ps Parents) Get(i int) (NodeHash, bool) {
	if i < 0 || i >= ps.n {
		return Null, false
	}
	return ps.p[i], true
}

// Pair returns both parents with null hashes for absent ones.
func (ps Parents) Pair() (NodeHash, NodeHash) {
	return ps.p[0], ps.p[1]
}

func (ps Parents) Slice() []NodeHash {
	return append([]NodeHash(nil), ps.p[:ps.n]...)
}

func (ps Parents) String() string {
	switch ps.n {
	case 0:
		return "none"
	case 1:
		return fmt.Sprintf("one(%s)", ps.p[0])
	}
	return fmt.Sprintf("two(%s, %s)", ps.p[0], ps.p[1])
}
