// Package mpath implements repository paths as they appear in manifests.
package mpath

import (
	"bytes"
	"strings"

	"github.com/kezhuw/hgmanifest/internal/errors"
)

const separator = '/'

// Element is a single path component. It is never empty and contains
// neither '/' nor NUL.
type Element string

// Path is a non-empty sequence of elements kept in canonical joined
// form. The zero Path is the empty path, which stands for the repository
// root and is never a valid manifest key.
type Path struct {
	s string
}

// New parses p into a Path. Empty components are dropped, so "a//b" and
// "/a/b" both parse as "a/b". It fails if p contains NUL or has no
// components.
func New(p []byte) (Path, error) {
	if bytes.IndexByte(p, 0) >= 0 {
		return Path{}, errors.Wrapf(errors.ErrInvalidPath, "%q contains NUL", p)
	}
	var b strings.Builder
	b.Grow(len(p))
	for _, c := range bytes.Split(p, []byte{separator}) {
		if len(c) == 0 {
			continue
		}
		if b.Len() != 0 {
			b.WriteByte(separator)
		}
		b.Write(c)
	}
	if b.Len() == 0 {
		return Path{}, errors.Wrapf(errors.ErrInvalidPath, "%q has no components", p)
	}
	return Path{b.String()}, nil
}

// MustNew is like New but panics on error.
func MustNew(p string) Path {
	path, err := New([]byte(p))
	if err != nil {
		panic(err)
	}
	return path
}

// FromElements builds a path from already validated elements.
func FromElements(elems ...Element) Path {
	parts := make([]string, len(elems))
	for i, e := range elems {
		parts[i] = string(e)
	}
	return Path{strings.Join(parts, string(separator))}
}

// IsEmpty reports whether p is the empty path.
func (p Path) IsEmpty() bool {
	return p.s == ""
}

// Join returns p followed by other.
func (p Path) Join(other Path) Path {
	switch {
	case p.s == "":
		return other
	case other.s == "":
		return p
	}
	return Path{p.s + string(separator) + other.s}
}

// Append returns p followed by a single element.
func (p Path) Append(e Element) Path {
	return p.Join(Path{string(e)})
}

// Components returns elements of p in order.
func (p Path) Components() []Element {
	if p.s == "" {
		return nil
	}
	parts := strings.Split(p.s, string(separator))
	elems := make([]Element, len(parts))
	for i, s := range parts {
		elems[i] = Element(s)
	}
	return elems
}

// Len returns number of elements in p.
func (p Path) Len() int {
	if p.s == "" {
		return 0
	}
	return strings.Count(p.s, string(separator)) + 1
}

// Basename returns the last element of p, false for the empty path.
func (p Path) Basename() (Element, bool) {
	if p.s == "" {
		return "", false
	}
	i := strings.LastIndexByte(p.s, separator)
	return Element(p.s[i+1:]), true
}

// HasPrefix reports whether prefix is an element-wise prefix of p.
func (p Path) HasPrefix(prefix Path) bool {
	switch {
	case prefix.s == "":
		return true
	case p.s == prefix.s:
		return true
	}
	return strings.HasPrefix(p.s, prefix.s) && p.s[len(prefix.s)] == separator
}

// Compare orders paths by their raw canonical bytes.
func (p Path) Compare(other Path) int {
	return strings.Compare(p.s, other.s)
}

func (p Path) Equal(other Path) bool {
	return p.s == other.s
}

// Bytes returns the canonical encoding of p.
func (p Path) Bytes() []byte {
	return []byte(p.s)
}

// AppendTo appends the canonical encoding of p to dst.
func (p Path) AppendTo(dst []byte) []byte {
	return append(dst, p.s...)
}

func (p Path) String() string {
	return p.s
}
