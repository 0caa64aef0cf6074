// Package blob implements revision payloads as returned by a store.
package blob

import (
	"fmt"

	"github.com/kezhuw/hgmanifest/internal/nodehash"
)

// Kind tells how a Blob was obtained.
type Kind int

const (
	// Extern blobs are known by hash only and carry no payload.
	Extern Kind = iota
	// Dirty blobs are payloads as stored, possibly with a filelog
	// metadata header.
	Dirty
	// Clean blobs are payloads with a known hash and no metadata header.
	Clean
)

func (k Kind) String() string {
	switch k {
	case Extern:
		return "extern"
	case Dirty:
		return "dirty"
	case Clean:
		return "clean"
	}
	return fmt.Sprintf("unknown blob kind: %d", int(k))
}

// Blob is an immutable revision payload. Callers must not modify the
// slice returned by Bytes.
type Blob struct {
	kind Kind
	data []byte
	hash nodehash.NodeHash
}

func NewDirty(data []byte) Blob {
	return Blob{kind: Dirty, data: data}
}

func NewClean(data []byte, hash nodehash.NodeHash) Blob {
	return Blob{kind: Clean, data: data, hash: hash}
}

func NewExtern(hash nodehash.NodeHash) Blob {
	return Blob{kind: Extern, hash: hash}
}

func (b Blob) Kind() Kind {
	return b.kind
}

func (b Blob) IsDirty() bool {
	return b.kind == Dirty
}

// Bytes returns the payload, false if b carries none.
func (b Blob) Bytes() ([]byte, bool) {
	if b.kind == Extern {
		return nil, false
	}
	return b.data, true
}

// Size returns payload length, false if b carries none.
func (b Blob) Size() (int, bool) {
	if b.kind == Extern {
		return 0, false
	}
	return len(b.data), true
}

// Hash returns the recorded hash of clean and extern blobs.
func (b Blob) Hash() (nodehash.NodeHash, bool) {
	if b.kind == Dirty {
		return nodehash.Null, false
	}
	return b.hash, true
}

// StripMetadata returns b with a leading filelog metadata header removed.
// Only dirty blobs may carry such header, others are returned unchanged.
func (b Blob) StripMetadata() Blob {
	if b.kind != Dirty {
		return b
	}
	_, off := ExtractMeta(b.data)
	return NewDirty(b.data[off:])
}
