// Package endian provides the single byte-order engine the Smile wire
// format mandates.
//
// Smile has no configurable byte order: every fixed-width integer and
// float token (spec v1.0.0 §4.1, tokens 0x24/0x25/0x28/0x29) is
// big-endian, full stop. This package exists so the codec packages write
// endian.BigEndian.AppendUint32(...) rather than reaching for
// encoding/binary.BigEndian ad hoc in a dozen places.
package endian

import "encoding/binary"

// Engine combines ByteOrder and AppendByteOrder.
type Engine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// BigEndian is the byte-order engine used for every fixed-width numeric
// token in the Smile wire format.
var BigEndian Engine = binary.BigEndian
