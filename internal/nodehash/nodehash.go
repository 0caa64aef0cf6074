// Package nodehash implements 20-byte content hashes identifying manifest,
// file and changeset revisions.
package nodehash

import (
	"bytes"
	"crypto/sha1"
	"database/sql/driver"
	"encoding/hex"
	"fmt"

	"github.com/kezhuw/hgmanifest/internal/errors"
)

const (
	Size    = 20
	HexSize = 2 * Size
)

// NodeHash is a sha1 digest. The zero value is the null hash.
type NodeHash [Size]byte

var Null NodeHash

// FromBytes copies a raw 20-byte digest.
func FromBytes(b []byte) (NodeHash, error) {
	var h NodeHash
	if len(b) != Size {
		return h, errors.Wrapf(errors.ErrMalformedHash, "%d bytes, want %d", len(b), Size)
	}
	copy(h[:], b)
	return h, nil
}

// Parse decodes the 40 hex character text form.
func Parse(s string) (NodeHash, error) {
	return ParseBytes([]byte(s))
}

func ParseBytes(b []byte) (NodeHash, error) {
	var h NodeHash
	if len(b) != HexSize {
		return h, errors.Wrapf(errors.ErrMalformedHash, "%q has %d characters, want %d", b, len(b), HexSize)
	}
	if _, err := hex.Decode(h[:], b); err != nil {
		return h, errors.Wrapf(errors.ErrMalformedHash, "%q: %s", b, err)
	}
	return h, nil
}

func MustParse(s string) NodeHash {
	h, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return h
}

func (h NodeHash) IsNull() bool {
	return h == Null
}

// AppendHex appends the 40 character text form of h to dst.
func (h NodeHash) AppendHex(dst []byte) []byte {
	n := len(dst)
	dst = append(dst, make([]byte, HexSize)...)
	hex.Encode(dst[n:], h[:])
	return dst
}

func (h NodeHash) String() string {
	return hex.EncodeToString(h[:])
}

// Compare orders hashes by raw bytes.
func (h NodeHash) Compare(other NodeHash) int {
	return bytes.Compare(h[:], other[:])
}

// Value implements driver.Valuer, storing h as a 20 byte binary column.
func (h NodeHash) Value() (driver.Value, error) {
	return h[:], nil
}

// Scan implements sql.Scanner for binary columns.
func (h *NodeHash) Scan(src interface{}) error {
	b, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("hgmanifest: can't scan %T into NodeHash", src)
	}
	v, err := FromBytes(b)
	if err != nil {
		return err
	}
	*h = v
	return nil
}

// Compute returns the revision hash of data stored with given parents:
// sha1(min(p1, p2) || max(p1, p2) || data), absent parents being null.
func Compute(parents Parents, data []byte) NodeHash {
	p1, p2 := parents.Pair()
	if p1.Compare(p2) > 0 {
		p1, p2 = p2, p1
	}
	d := sha1.New()
	d.Write(p1[:])
	d.Write(p2[:])
	d.Write(data)
	var h NodeHash
	d.Sum(h[:0])
	return h
}

// EntryID identifies the content a manifest entry points to, either file
// bytes or a nested manifest.
type EntryID NodeHash

func (id EntryID) NodeHash() NodeHash {
	return NodeHash(id)
}

func (id EntryID) String() string {
	return NodeHash(id).String()
}
