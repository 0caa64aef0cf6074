// Package compress encodes node payloads stored by the directory store.
package compress

import (
	"github.com/golang/snappy"

	"github.com/kezhuw/hgmanifest/internal/errors"
)

type Type int

const (
	NoCompression     Type = 0
	SnappyCompression Type = 1
)

var ErrUnsupportedCompression = errors.New("hgmanifest: unsupported compression")

func (t Type) String() string {
	switch t {
	case NoCompression:
		return "none"
	case SnappyCompression:
		return "snappy"
	default:
		return "unknown"
	}
}

// ParseType parses the name produced by Type.String.
func ParseType(name string) (Type, error) {
	switch name {
	case "none", "":
		return NoCompression, nil
	case "snappy":
		return SnappyCompression, nil
	default:
		return 0, errors.Wrapf(ErrUnsupportedCompression, "compression %q", name)
	}
}

// Decode decodes src. With NoCompression, src is returned as is.
func Decode(typ Type, dst, src []byte) ([]byte, error) {
	switch typ {
	case NoCompression:
		return src, nil
	case SnappyCompression:
		return snappy.Decode(dst, src)
	default:
		return nil, ErrUnsupportedCompression
	}
}

// Encode encodes src. With NoCompression, src is returned as is.
func Encode(typ Type, dst, src []byte) ([]byte, error) {
	switch typ {
	case NoCompression:
		return src, nil
	case SnappyCompression:
		return snappy.Encode(dst, src), nil
	default:
		return nil, ErrUnsupportedCompression
	}
}
