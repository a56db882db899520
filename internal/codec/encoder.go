// Package codec implements the Smile token-level Encoder and Decoder (spec
// v1.0.0 §4.6, §4.7): the part of the system where a bit-packing or
// classification mistake produces wire-incompatible output.
//
// The overall shape (a struct holding a pooled output buffer and
// returning errs.Err* sentinels) follows the rest of this codebase's
// codecs, but the algorithm itself is a recursive value-tree walk rather
// than a columnar start/add/end builder. A JSON-shaped value tree has no
// columnar layout to build.
package codec

import (
	"math"

	"github.com/arloliu/smile/endian"
	"github.com/arloliu/smile/errs"
	"github.com/arloliu/smile/format"
	"github.com/arloliu/smile/internal/header"
	"github.com/arloliu/smile/internal/pool"
	"github.com/arloliu/smile/internal/reftable"
	"github.com/arloliu/smile/internal/strclass"
	"github.com/arloliu/smile/internal/vint"
	"github.com/arloliu/smile/internal/zigzag"
	"github.com/arloliu/smile/value"
)

// maxLongValueRefIndex is the highest table index the one-byte long
// shared-value reference payload (0xEC + one byte) can address: spec §4.8
// gives the payload byte as (index-31) ranging over the full byte range, so
// the highest expressible index is 31+255 = 286. Spec §4.1/§4.8 both flag
// that indices above this are "not expressible and must not be generated",
// even though the table itself is capped at format.MaxSharedTableEntries
// (1024). A match beyond this index is treated as a miss below, so the
// string is re-emitted as a literal and reinserted, keeping the decoder's
// unconditional insert-on-literal rule in lockstep.
const maxLongValueRefIndex = 286

// Encoder walks a value.Value and emits the Smile token stream for it,
// maintaining the shared-name and shared-value back-reference tables as it
// goes (spec §3, §4.6).
type Encoder struct {
	buf         *pool.ByteBuffer
	nameTable   *reftable.Table
	valueTable  *reftable.Table
	flags       header.Flags
	jacksonVInt bool
}

// NewEncoder creates an Encoder for a single Encode call. Encoder is not
// reusable across calls (spec §3 "Lifecycles": tables are created on entry
// and destroyed on return).
func NewEncoder(flags header.Flags, jacksonVInt bool) *Encoder {
	return &Encoder{
		buf:         pool.GetEncoderBuffer(),
		nameTable:   reftable.New(format.MaxSharedTableEntries),
		valueTable:  reftable.New(format.MaxSharedTableEntries),
		flags:       flags,
		jacksonVInt: jacksonVInt,
	}
}

// Encode serializes v (and the 4-byte header for e's flags) and returns the
// complete Smile document. The Encoder must not be reused after this call.
func (e *Encoder) Encode(v value.Value) ([]byte, error) {
	h := header.Bytes(e.flags)
	e.buf.MustWrite(h[:])

	if err := e.encodeValue(v); err != nil {
		pool.PutEncoderBuffer(e.buf)
		return nil, err
	}

	out := make([]byte, e.buf.Len())
	copy(out, e.buf.Bytes())
	pool.PutEncoderBuffer(e.buf)

	return out, nil
}

func (e *Encoder) encodeValue(v value.Value) error {
	switch v.Kind() {
	case value.KindNull:
		e.buf.MustWriteByte(format.TokenNull)
	case value.KindBool:
		if v.AsBool() {
			e.buf.MustWriteByte(format.TokenTrue)
		} else {
			e.buf.MustWriteByte(format.TokenFalse)
		}
	case value.KindInt:
		e.encodeInt(v.AsInt())
	case value.KindFloat:
		e.encodeFloat(v.AsFloat())
	case value.KindString:
		e.encodeStringValue(v.AsString())
	case value.KindArray:
		e.buf.MustWriteByte(format.TokenStartArray)
		for _, item := range v.AsArray() {
			if err := e.encodeValue(item); err != nil {
				return err
			}
		}
		e.buf.MustWriteByte(format.TokenEndArray)
	case value.KindObject:
		e.buf.MustWriteByte(format.TokenStartObject)
		var rangeErr error
		v.AsObject().Range(func(key string, val value.Value) bool {
			e.encodeFieldName(key)
			if err := e.encodeValue(val); err != nil {
				rangeErr = err
				return false
			}

			return true
		})
		if rangeErr != nil {
			return rangeErr
		}
		e.buf.MustWriteByte(format.TokenEndObject)
	default:
		return errs.ErrUnsupportedType
	}

	return nil
}

func (e *Encoder) encodeInt(v int64) {
	switch {
	case v >= -16 && v <= 15:
		e.buf.MustWriteByte(format.SmallIntBase | (byte(v) & 0x1F))
	case v >= math.MinInt32 && v <= math.MaxInt32:
		e.buf.MustWriteByte(format.TokenInt32)
		z := zigzag.Encode32(int32(v))
		if e.jacksonVInt {
			e.buf.B = vint.Append(e.buf.B, uint64(z))
		} else {
			e.buf.Grow(4)
			e.buf.B = endian.BigEndian.AppendUint32(e.buf.B, z)
		}
	default:
		e.buf.MustWriteByte(format.TokenInt64)
		z := zigzag.Encode64(v)
		if e.jacksonVInt {
			e.buf.B = vint.Append(e.buf.B, z)
		} else {
			e.buf.Grow(8)
			e.buf.B = endian.BigEndian.AppendUint64(e.buf.B, z)
		}
	}
}

func (e *Encoder) encodeFloat(f float64) {
	e.buf.MustWriteByte(format.TokenFloat64)
	e.buf.Grow(8)
	e.buf.B = endian.BigEndian.AppendUint64(e.buf.B, math.Float64bits(f))
}

// encodeStringValue implements spec §4.6's Str-in-value-context rule and
// §3 Invariant 4's table-eligibility test.
func (e *Encoder) encodeStringValue(s string) {
	if e.flags.SharedValues && len(s) <= format.MaxShortValueLen {
		if idx, ok := e.valueTable.Lookup(s); ok && idx <= maxLongValueRefIndex {
			e.emitValueRef(idx)
			return
		}

		e.emitStringLiteral(s)
		if s != "" && !e.valueTable.Full() {
			e.valueTable.Insert(s)
		}

		return
	}

	e.emitStringLiteral(s)
}

func (e *Encoder) emitStringLiteral(s string) {
	ascii := strclass.IsASCII([]byte(s))
	switch strclass.Classify(len(s), ascii) {
	case strclass.ClassEmpty:
		e.buf.MustWriteByte(format.TokenEmptyString)
	case strclass.ClassTinyASCII:
		e.buf.MustWriteByte(format.TinyASCIIBase + byte(len(s)-1))
		e.buf.MustWrite([]byte(s))
	case strclass.ClassSmallASCII:
		e.buf.MustWriteByte(format.SmallASCIIBase + byte(len(s)-33))
		e.buf.MustWrite([]byte(s))
	case strclass.ClassTinyUnicode:
		e.buf.MustWriteByte(format.TinyUnicodeBase + byte(len(s)-2))
		e.buf.MustWrite([]byte(s))
	case strclass.ClassShortUnicode:
		e.buf.MustWriteByte(format.ShortUnicodeBase + byte(len(s)-34))
		e.buf.MustWrite([]byte(s))
	case strclass.ClassLongASCII:
		e.buf.MustWriteByte(format.TokenLongASCII)
		e.buf.B = vint.Append(e.buf.B, uint64(len(s)))
		e.buf.MustWrite([]byte(s))
		e.buf.MustWriteByte(format.TokenStringTerminator)
	case strclass.ClassLongUnicode:
		e.buf.MustWriteByte(format.TokenLongUnicode)
		e.buf.B = vint.Append(e.buf.B, uint64(len(s)))
		e.buf.MustWrite([]byte(s))
		e.buf.MustWriteByte(format.TokenStringTerminator)
	}
}

func (e *Encoder) emitValueRef(idx int) {
	if idx <= 30 {
		e.buf.MustWriteByte(byte(idx + 1))
		return
	}

	e.buf.MustWriteByte(format.TokenLongValueRef)
	e.buf.MustWriteByte(byte(idx - format.LongValueRefOffset))
}

// encodeFieldName implements spec §4.7 field name emission.
func (e *Encoder) encodeFieldName(name string) {
	if e.flags.SharedNames {
		if idx, ok := e.nameTable.Lookup(name); ok {
			e.emitNameRef(idx)
			return
		}
	}

	e.emitFieldNameLiteral(name)

	if e.flags.SharedNames && name != "" && !e.nameTable.Full() {
		e.nameTable.Insert(name)
	}
}

func (e *Encoder) emitFieldNameLiteral(name string) {
	if name == "" {
		e.buf.MustWriteByte(format.TokenEmptyFieldName)
		return
	}

	ascii := strclass.IsASCII([]byte(name))
	switch strclass.ClassifyField(len(name), ascii) {
	case strclass.FieldClassShortASCII:
		e.buf.MustWriteByte(format.ShortASCIIFieldNameBase + byte(len(name)-1))
		e.buf.MustWrite([]byte(name))
	case strclass.FieldClassShortUnicode:
		e.buf.MustWriteByte(format.ShortUnicodeFieldNameBase + byte(len(name)-1))
		e.buf.MustWrite([]byte(name))
	case strclass.FieldClassLong:
		e.buf.MustWriteByte(format.TokenLongFieldName)
		e.buf.B = vint.Append(e.buf.B, uint64(len(name)))
		e.buf.MustWrite([]byte(name))
		e.buf.MustWriteByte(format.TokenStringTerminator)
	}
}

func (e *Encoder) emitNameRef(idx int) {
	if idx <= 63 {
		e.buf.MustWriteByte(format.ShortNameRefBase + byte(idx))
		return
	}

	e.buf.MustWriteByte(format.TokenLongNameRef)
	e.buf.Grow(2)
	e.buf.B = endian.BigEndian.AppendUint16(e.buf.B, uint16(idx))
}
