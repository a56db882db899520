// Package vint implements the Smile long-string length prefix: a
// little-endian 7-bit variable-length unsigned integer where the high bit of
// each byte signals "more bytes follow" (spec v1.0.0 §4.2).
//
// This is the same continuation-bit convention the standard library's
// encoding/binary uses for LEB128-style varints, so this package is a
// thin, Smile-named wrapper over it rather than a hand-rolled
// bit-twiddler.
package vint

import (
	"encoding/binary"

	"github.com/arloliu/smile/errs"
)

// MaxLen is the maximum number of bytes a VInt-encoded uint64 can occupy.
const MaxLen = binary.MaxVarintLen64

// Append encodes v as a VInt and appends it to dst, returning the extended slice.
func Append(dst []byte, v uint64) []byte {
	var tmp [MaxLen]byte
	n := binary.PutUvarint(tmp[:], v)
	return append(dst, tmp[:n]...)
}

// Read decodes a VInt from the front of src.
//
// Returns the decoded value, the number of bytes consumed, and
// errs.ErrIncompleteVInt if src ends before the continuation bit clears.
func Read(src []byte) (uint64, int, error) {
	v, n := binary.Uvarint(src)
	if n <= 0 {
		return 0, 0, errs.ErrIncompleteVInt
	}

	return v, n, nil
}
