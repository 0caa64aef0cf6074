package store

import (
	"encoding/binary"

	"github.com/kezhuw/hgmanifest/internal/blob"
	"github.com/kezhuw/hgmanifest/internal/compress"
	"github.com/kezhuw/hgmanifest/internal/crc"
	"github.com/kezhuw/hgmanifest/internal/errors"
	"github.com/kezhuw/hgmanifest/internal/nodehash"
)

// Record layout:
//
//	checksum    uint32, little endian, masked crc32c of all following bytes
//	compression uint8
//	flags       uint8
//	p1          [20]byte, present if flagP1
//	p2          [20]byte, present if flagP2
//	payload     compressed bytes, present if flagPayload
const recordHeaderSize = 4 + 1 + 1

const (
	flagP1 = 1 << iota
	flagP2
	flagPayload
)

func encodeRecord(dst []byte, typ compress.Type, node *Node) ([]byte, error) {
	var flags byte
	p1, p2 := node.Parents.Pair()
	switch node.Parents.Len() {
	case 2:
		flags |= flagP2
		fallthrough
	case 1:
		flags |= flagP1
	}
	data, ok := node.Blob.Bytes()
	if ok {
		flags |= flagPayload
	} else {
		typ = compress.NoCompression
	}

	dst = append(dst[:0], 0, 0, 0, 0, byte(typ), flags)
	if flags&flagP1 != 0 {
		dst = append(dst, p1[:]...)
	}
	if flags&flagP2 != 0 {
		dst = append(dst, p2[:]...)
	}
	if ok {
		compressed, err := compress.Encode(typ, nil, data)
		if err != nil {
			return nil, err
		}
		dst = append(dst, compressed...)
	}
	binary.LittleEndian.PutUint32(dst, crc.New(dst[4:]).Value())
	return dst, nil
}

// decodeRecord decodes a record stored for id. Payloads decode to dirty
// blobs, as they may carry filelog metadata; records without payload
// decode to extern blobs.
func decodeRecord(id nodehash.NodeHash, b []byte) (*Node, error) {
	if len(b) < recordHeaderSize {
		return nil, errors.Wrapf(errors.ErrCorruptNode, "node %s: short record", id)
	}
	if !crc.Verify(binary.LittleEndian.Uint32(b), b[4:]) {
		return nil, errors.Wrapf(errors.ErrCorruptNode, "node %s: checksum mismatch", id)
	}
	typ, flags := compress.Type(b[4]), b[5]
	b = b[recordHeaderSize:]

	var p1, p2 *nodehash.NodeHash
	for _, f := range []struct {
		flag byte
		p    **nodehash.NodeHash
	}{{flagP1, &p1}, {flagP2, &p2}} {
		if flags&f.flag == 0 {
			continue
		}
		if len(b) < nodehash.Size {
			return nil, errors.Wrapf(errors.ErrCorruptNode, "node %s: truncated parents", id)
		}
		h, _ := nodehash.FromBytes(b[:nodehash.Size])
		*f.p = &h
		b = b[nodehash.Size:]
	}
	node := &Node{Parents: nodehash.NewParents(p1, p2)}

	if flags&flagPayload == 0 {
		if len(b) != 0 {
			return nil, errors.Wrapf(errors.ErrCorruptNode, "node %s: trailing bytes", id)
		}
		node.Blob = blob.NewExtern(id)
		return node, nil
	}
	data, err := compress.Decode(typ, nil, b)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCorruptNode, "node %s: %s", id, err)
	}
	node.Blob = blob.NewDirty(data)
	return node, nil
}
