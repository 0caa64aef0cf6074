package manifest

import (
	"io"

	"github.com/kezhuw/hgmanifest/internal/errors"
	"github.com/kezhuw/hgmanifest/internal/nodehash"
)

// Details is the record half of a manifest line: content hash and type.
type Details struct {
	ID   nodehash.EntryID
	Type EntryType
}

func NewDetails(id nodehash.EntryID, typ EntryType) Details {
	return Details{ID: id, Type: typ}
}

// DecodeDetails decodes bytes following the NUL of a manifest line, up to
// but excluding its line terminator.
func DecodeDetails(data []byte) (Details, error) {
	if len(data) < nodehash.HexSize {
		return Details{}, errors.Wrapf(errors.ErrHashTooShort, "%q", data)
	}
	hash, flags := data[:nodehash.HexSize], data[nodehash.HexSize:]
	h, err := nodehash.ParseBytes(hash)
	if err != nil {
		return Details{}, err
	}
	if len(flags) > 1 {
		return Details{}, errors.Wrapf(errors.ErrTooManyFlags, "%q", flags)
	}
	typ := File
	if len(flags) == 1 {
		var ok bool
		if typ, ok = typeFromFlag(flags[0]); !ok {
			return Details{}, &errors.UnknownFlagError{Flag: flags[0]}
		}
	}
	return Details{ID: nodehash.EntryID(h), Type: typ}, nil
}

// AppendTo appends the encoded form of d to dst.
func (d Details) AppendTo(dst []byte) []byte {
	dst = d.ID.NodeHash().AppendHex(dst)
	return append(dst, d.Type.Flag()...)
}

func (d Details) Encode(w io.Writer) error {
	var buf [nodehash.HexSize + 1]byte
	_, err := w.Write(d.AppendTo(buf[:0]))
	return err
}

func (d Details) IsFile() bool       { return d.Type == File }
func (d Details) IsExecutable() bool { return d.Type == Executable }
func (d Details) IsSymlink() bool    { return d.Type == Symlink }
func (d Details) IsTree() bool       { return d.Type == Tree }
