// Package crc computes masked CRC-32 checksum using Castagnoli's polynomial.
package crc

import (
	"hash/crc32"
	"strconv"
)

var table = crc32.MakeTable(crc32.Castagnoli)

// CRC is a CRC-32 checksum computed using Castagnoli's polynomial.
type CRC struct {
	// Saved as a field to avoid accidentally cast.
	checksum uint32
}

// New computes checksum over all given byte slices in order.
func New(bs ...[]byte) CRC {
	var c CRC
	for _, b := range bs {
		c = Update(c, b)
	}
	return c
}

// Update updates checksum using given bytes.
func Update(c CRC, b []byte) CRC {
	return CRC{crc32.Update(c.checksum, table, b)}
}

// Value returns a masked checksum value. Masking keeps the checksum of
// data that embeds checksums from degenerating.
func (c CRC) Value() uint32 {
	return (c.checksum>>15 | c.checksum<<17) + 0xa282ead8
}

// Verify reports whether masked equals the masked checksum of bs.
func Verify(masked uint32, bs ...[]byte) bool {
	return New(bs...).Value() == masked
}

// String implements fmt.Stringer.
func (c CRC) String() string {
	return strconv.FormatUint(uint64(c.Value()), 10)
}
