// Package header implements the 4-byte Smile preamble: magic bytes
// `0x3A 0x29 0x0A` followed by a flags byte (spec v1.0.0 §4.4).
//
// Grounded on section/numeric_header.go and section/numeric_flag.go: both
// pack a fixed header into a byte slice with Bytes(), parse one back with
// Parse(), and validate via a sentinel error on size/shape mismatch. Smile's
// header is far smaller (4 bytes, no offsets table) but keeps the same
// Bytes()/Parse() pair and the same "reject up front, do not partially
// accept" posture.
package header

import "github.com/arloliu/smile/errs"

// Size is the total size, in bytes, of the Smile header.
const Size = 4

var magic = [3]byte{0x3A, 0x29, 0x0A}

// Flags holds the three header-bit booleans (spec §3, §4.4, §6).
type Flags struct {
	SharedNames  bool
	SharedValues bool
	RawBinary    bool
}

const (
	bitSharedNames  byte = 1 << 0
	bitSharedValues byte = 1 << 1
	bitRawBinary    byte = 1 << 2
)

// Byte packs Flags into the header's fourth byte. The high nibble (version)
// is always 0 for v1.0.0; this core does not emit any other version.
func (f Flags) Byte() byte {
	var b byte
	if f.SharedNames {
		b |= bitSharedNames
	}
	if f.SharedValues {
		b |= bitSharedValues
	}
	if f.RawBinary {
		b |= bitRawBinary
	}

	return b
}

// FlagsFromByte unpacks the low 3 bits of b into Flags, ignoring the
// version nibble (any non-zero version is accepted, per spec §4.4).
func FlagsFromByte(b byte) Flags {
	return Flags{
		SharedNames:  b&bitSharedNames != 0,
		SharedValues: b&bitSharedValues != 0,
		RawBinary:    b&bitRawBinary != 0,
	}
}

// Bytes serializes the 4-byte header for the given flags.
func Bytes(f Flags) [Size]byte {
	return [Size]byte{magic[0], magic[1], magic[2], f.Byte()}
}

// Parse reads the header from the front of data.
//
// Returns the parsed Flags and the number of bytes consumed (always Size on
// success). Returns errs.ErrInvalidHeader if data is shorter than Size
// (including a nil or empty slice) or its first three bytes are not the
// Smile magic.
func Parse(data []byte) (Flags, int, error) {
	if len(data) < Size {
		return Flags{}, 0, errs.ErrInvalidHeader
	}

	if data[0] != magic[0] || data[1] != magic[1] || data[2] != magic[2] {
		return Flags{}, 0, errs.ErrInvalidHeader
	}

	return FlagsFromByte(data[3]), Size, nil
}
