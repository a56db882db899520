// Package format holds the named byte values and bit masks from the Smile
// v1.0.0 binary interchange specification. It has no behavior of its own;
// the encoder and decoder packages dispatch on these constants.
package format

// HeaderMagic is the fixed 3-byte preamble every Smile document begins with.
var HeaderMagic = [3]byte{0x3A, 0x29, 0x0A}

// HeaderSize is the total size, in bytes, of the header (magic + flags).
const HeaderSize = 4

// Header flag bits, packed into the fourth header byte's low nibble.
const (
	FlagSharedNames  byte = 1 << 0
	FlagSharedValues byte = 1 << 1
	FlagRawBinary    byte = 1 << 2
)

// Value-context tokens and ranges (spec v1.0.0, §4.1).
const (
	TokenEmptyString byte = 0x20
	TokenNull        byte = 0x21
	TokenFalse       byte = 0x22
	TokenTrue        byte = 0x23
	TokenInt32       byte = 0x24
	TokenInt64       byte = 0x25
	TokenFloat32     byte = 0x28
	TokenFloat64     byte = 0x29

	TokenLongASCII          byte = 0xE0
	TokenLongUnicode        byte = 0xE4
	TokenLongValueRef       byte = 0xEC
	TokenStartArray         byte = 0xF8
	TokenEndArray           byte = 0xF9
	TokenStartObject        byte = 0xFA
	TokenEndObject          byte = 0xFB
	TokenStringTerminator   byte = 0xFC

	// ShortValueRefMin/Max bound the one-byte shared-value reference range
	// (index = byte-1, in [0,30]).
	ShortValueRefMin byte = 0x01
	ShortValueRefMax byte = 0x1F

	// TinyASCIIBase/SmallASCIIBase/TinyUnicodeBase/ShortUnicodeBase are the
	// low ends of the four string-length token ranges (§4.1).
	TinyASCIIBase    byte = 0x40 // length = low5 + 1,  in [1,32]
	SmallASCIIBase   byte = 0x60 // length = low5 + 33, in [33,64]
	TinyUnicodeBase  byte = 0x80 // length = low5 + 2,  in [2,33]
	ShortUnicodeBase byte = 0xA0 // length = low5 + 34, in [34,64]

	// SmallIntBase is the low end of the small signed-integer token range;
	// the low 5 bits are sign-extended to yield a value in [-16, 15].
	SmallIntBase byte = 0xC0

	// LongValueRefOffset is the amount added to the trailing byte of a
	// TokenLongValueRef to recover the table index (index in [31, 286]).
	LongValueRefOffset = 31
)

// Masks used to classify a value-context dispatch byte by range.
const (
	RangeMask     byte = 0xE0
	SmallIntRange byte = 0xC0
)

// Field-name-context tokens and ranges (§4.1, key table).
const (
	TokenEmptyFieldName byte = 0x20
	TokenLongNameRef     byte = 0x30
	TokenLongFieldName   byte = 0x34

	// ShortNameRefBase/ShortNameRefMask select the one-byte shared-name
	// reference range (index = low6, in [0,63]).
	ShortNameRefBase byte = 0x40
	ShortNameRefMask byte = 0xC0

	// ShortASCIIFieldNameBase/ShortUnicodeFieldNameBase are the low ends of
	// the two fixed-width field-name token ranges (length = low6 + 1, in
	// [1,64]).
	ShortASCIIFieldNameBase   byte = 0x80
	ShortUnicodeFieldNameBase byte = 0xC0
)

// Table capacity shared by the name table and the value table (§3 Invariant 1).
const MaxSharedTableEntries = 1024

// MaxShortValueLen is the inclusive upper bound, in UTF-8 bytes, on strings
// eligible for the shared-value table (§3 Invariant 4).
const MaxShortValueLen = 64

// MaxShortFieldNameLen is the inclusive upper bound, in bytes, for the
// fixed-width field-name token range (§4.5).
const MaxShortFieldNameLen = 64
