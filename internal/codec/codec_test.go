package codec

import (
	"bytes"
	"testing"

	"github.com/arloliu/smile/errs"
	"github.com/arloliu/smile/format"
	"github.com/arloliu/smile/internal/header"
	"github.com/arloliu/smile/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sharedFlags = header.Flags{SharedNames: true, SharedValues: true}

func encodeDecode(t *testing.T, v value.Value, flags header.Flags, jacksonVInt bool) value.Value {
	t.Helper()

	enc := NewEncoder(flags, jacksonVInt)
	data, err := enc.Encode(v)
	require.NoError(t, err)

	dec, err := NewDecoder(data, jacksonVInt)
	require.NoError(t, err)

	got, err := dec.Decode()
	require.NoError(t, err)

	return got
}

func TestRoundTripScalars(t *testing.T) {
	tests := []value.Value{
		value.Null(),
		value.Bool(true),
		value.Bool(false),
		value.Int(0),
		value.Int(15),
		value.Int(-16),
		value.Int(16),
		value.Int(-17),
		value.Int(1 << 20),
		value.Int(-(1 << 20)),
		value.Int(1 << 40),
		value.Int(-(1 << 40)),
		value.Float(3.14159),
		value.Float(0),
		value.Float(-1.5),
		value.Str(""),
		value.Str("hello"),
		value.Str("a string longer than thirty two bytes for sure"),
		value.Str("héllo wörld"),
	}

	for _, v := range tests {
		got := encodeDecode(t, v, sharedFlags, false)
		assert.True(t, value.Equal(v, got), "round-trip mismatch for %v -> %v", v, got)
	}
}

func TestRoundTripJacksonVInt(t *testing.T) {
	tests := []value.Value{
		value.Int(1 << 20),
		value.Int(-(1 << 20)),
		value.Int(1 << 40),
		value.Int(-(1 << 40)),
	}
	for _, v := range tests {
		got := encodeDecode(t, v, sharedFlags, true)
		assert.True(t, value.Equal(v, got))
	}
}

func TestRoundTripArrayAndObject(t *testing.T) {
	obj := value.NewObject()
	obj.Set("a", value.Int(1))
	obj.Set("b", value.Str("x"))
	obj.Set("c", value.Array(value.Int(1), value.Int(2), value.Null()))

	v := value.Obj(obj)
	got := encodeDecode(t, v, sharedFlags, false)
	assert.True(t, value.Equal(v, got))
}

func TestSmallIntBoundary(t *testing.T) {
	enc := NewEncoder(sharedFlags, false)
	data, err := enc.Encode(value.Int(5))
	require.NoError(t, err)
	assert.Len(t, data, header.Size+1)
	assert.Equal(t, byte(0xC5), data[header.Size])

	for _, v := range []int64{-16, 15} {
		data, err := NewEncoder(sharedFlags, false).Encode(value.Int(v))
		require.NoError(t, err)
		assert.Len(t, data, header.Size+1, "value %d", v)
	}
	for _, v := range []int64{-17, 16} {
		data, err := NewEncoder(sharedFlags, false).Encode(value.Int(v))
		require.NoError(t, err)
		assert.Greater(t, len(data), header.Size+1, "value %d", v)
	}
}

func TestHeaderInvariant(t *testing.T) {
	enc := NewEncoder(sharedFlags, false)
	data, err := enc.Encode(value.Null())
	require.NoError(t, err)
	assert.Equal(t, []byte{0x3A, 0x29, 0x0A}, data[:3])
	assert.Equal(t, byte(0x03), data[3]&0x07)
}

func TestSharedNameReuse(t *testing.T) {
	// {"k":1,"k2":2} then a nested {"k":3}: second "k" must be a 1-byte
	// short-name reference to index 0 (spec §8 concrete scenario).
	inner := value.NewObject()
	inner.Set("k", value.Int(3))

	outer := value.NewObject()
	outer.Set("k", value.Int(1))
	outer.Set("k2", value.Int(2))
	outer.Set("nested", value.Obj(inner))

	enc := NewEncoder(sharedFlags, false)
	data, err := enc.Encode(value.Obj(outer))
	require.NoError(t, err)

	dec, err := NewDecoder(data, false)
	require.NoError(t, err)
	got, err := dec.Decode()
	require.NoError(t, err)
	assert.True(t, value.Equal(value.Obj(outer), got))

	// Find the byte 0x40 (short-name ref to index 0) somewhere after the
	// first "k" field name token was written.
	foundRef := false
	for _, b := range data {
		if b == 0x40 {
			foundRef = true
			break
		}
	}
	assert.True(t, foundRef, "expected a short-name reference byte 0x40 in output")
}

func TestSharedValueReuse(t *testing.T) {
	v := value.Array(value.Str("dup"), value.Str("dup"), value.Str("dup"))
	enc := NewEncoder(sharedFlags, false)
	data, err := enc.Encode(v)
	require.NoError(t, err)

	// "dup" is 3 bytes ASCII -> token 0x42 on first sight; a one-byte
	// value-reference 0x01 (index 0 + 1) on reuse.
	assert.Contains(t, string(data), string([]byte{0x42, 'd', 'u', 'p'}))

	refCount := 0
	for _, b := range data {
		if b == 0x01 {
			refCount++
		}
	}
	assert.Equal(t, 2, refCount)

	dec, err := NewDecoder(data, false)
	require.NoError(t, err)
	got, err := dec.Decode()
	require.NoError(t, err)
	assert.True(t, value.Equal(v, got))
}

func TestSizeMonotonicity(t *testing.T) {
	obj := value.NewObject()
	obj.Set("repeated", value.Int(1))
	obj.Set("also_repeated", value.Int(2))
	arr := value.Array(value.Obj(obj), value.Obj(obj), value.Obj(obj))

	sharedOn := NewEncoder(header.Flags{SharedNames: true, SharedValues: true}, false)
	dataOn, err := sharedOn.Encode(arr)
	require.NoError(t, err)

	sharedOff := NewEncoder(header.Flags{}, false)
	dataOff, err := sharedOff.Encode(arr)
	require.NoError(t, err)

	assert.LessOrEqual(t, len(dataOn), len(dataOff))
}

func TestDecodeRejectsBadHeader(t *testing.T) {
	_, err := NewDecoder([]byte{0x00, 0x00, 0x00, 0x00}, false)
	assert.ErrorIs(t, err, errs.ErrInvalidHeader)
}

func TestDecodeRejectsUnknownToken(t *testing.T) {
	data := append([]byte{0x3A, 0x29, 0x0A, 0x03}, 0x00)
	dec, err := NewDecoder(data, false)
	require.NoError(t, err)
	_, err = dec.Decode()
	assert.ErrorIs(t, err, errs.ErrUnknownToken)
}

func TestDecodeRejectsTruncatedInt64(t *testing.T) {
	data := append([]byte{0x3A, 0x29, 0x0A, 0x03}, 0x25, 0x01, 0x02)
	dec, err := NewDecoder(data, false)
	require.NoError(t, err)
	_, err = dec.Decode()
	assert.ErrorIs(t, err, errs.ErrIncompleteInt64)
}

func TestDecodeRejectsMissingStringTerminator(t *testing.T) {
	long := make([]byte, 0, 70)
	for i := 0; i < 70; i++ {
		long = append(long, 'a')
	}
	data := []byte{0x3A, 0x29, 0x0A, 0x03, 0xE0, 70}
	data = append(data, long...) // no 0xFC terminator
	dec, err := NewDecoder(data, false)
	require.NoError(t, err)
	_, err = dec.Decode()
	assert.ErrorIs(t, err, errs.ErrMissingStringTerminator)
}

func TestDecodeRejectsInvalidSharedReference(t *testing.T) {
	// A short value reference to index 0 when the value table is empty.
	data := []byte{0x3A, 0x29, 0x0A, 0x03, 0x01}
	dec, err := NewDecoder(data, false)
	require.NoError(t, err)
	_, err = dec.Decode()
	assert.ErrorIs(t, err, errs.ErrInvalidSharedReference)
}

func TestDecodeAcceptsFloat32ButNeverEmitsIt(t *testing.T) {
	data := []byte{0x3A, 0x29, 0x0A, 0x03, 0x28, 0x3F, 0x80, 0x00, 0x00} // 1.0f
	dec, err := NewDecoder(data, false)
	require.NoError(t, err)
	v, err := dec.Decode()
	require.NoError(t, err)
	assert.Equal(t, value.KindFloat, v.Kind())
	assert.Equal(t, float64(1), v.AsFloat())
}

func TestEncoderNeverEmitsFloat32Token(t *testing.T) {
	enc := NewEncoder(sharedFlags, false)
	data, err := enc.Encode(value.Float(1.0))
	require.NoError(t, err)
	assert.NotContains(t, data, byte(0x28))
	assert.Contains(t, data, byte(0x29))
}

func TestValueTableFullFallsBackToInline(t *testing.T) {
	// Force the value table to its cap with distinct short strings, then
	// confirm a new string first seen after the cap is emitted inline on
	// every occurrence (it was never inserted, so there is nothing to
	// reference), while a repeat of a string inserted before the cap is
	// still referenced (spec §3 Invariant 1, §9 "Table-full silent-skip
	// ambiguity").
	items := make([]value.Value, 0, 1027)
	for i := 0; i < 1024; i++ {
		items = append(items, value.Str(shortUniqueString(i)))
	}
	late := shortUniqueString(1024)
	items = append(items, value.Str(late), value.Str(late))
	items = append(items, value.Str(shortUniqueString(0)))
	arr := value.Array(items...)

	enc := NewEncoder(sharedFlags, false)
	data, err := enc.Encode(arr)
	require.NoError(t, err)

	lateLiteral := append([]byte{format.TinyASCIIBase + byte(len(late)-1)}, late...)
	assert.Equal(t, 2, bytes.Count(data, lateLiteral))
	assert.Equal(t, []byte{0x01, format.TokenEndArray}, data[len(data)-2:])

	dec, err := NewDecoder(data, false)
	require.NoError(t, err)
	got, err := dec.Decode()
	require.NoError(t, err)
	assert.True(t, value.Equal(arr, got))
}

func shortUniqueString(i int) string {
	const letters = "abcdefghijklmnopqrstuvwxyz"
	b := []byte{letters[i%26], letters[(i/26)%26], letters[(i/676)%26]}
	return string(b)
}

func TestLongValueRefEncoding(t *testing.T) {
	// 40 distinct strings puts the 36th one (index 35) well past the
	// 30-index short-ref boundary; referencing it again must take the
	// 0xEC long shared-value reference path (spec §4.8).
	items := make([]value.Value, 0, 41)
	for i := 0; i < 40; i++ {
		items = append(items, value.Str(shortUniqueString(i)))
	}
	items = append(items, value.Str(shortUniqueString(35)))
	arr := value.Array(items...)

	enc := NewEncoder(sharedFlags, false)
	data, err := enc.Encode(arr)
	require.NoError(t, err)
	assert.Contains(t, data, format.TokenLongValueRef)

	dec, err := NewDecoder(data, false)
	require.NoError(t, err)
	got, err := dec.Decode()
	require.NoError(t, err)
	assert.True(t, value.Equal(arr, got))
}

func TestValueRefBeyondMaxIndexFallsBackToLiteral(t *testing.T) {
	// maxLongValueRefIndex caps the one-byte-payload long reference at 286;
	// a string first seen at index 287 can never be referenced and must be
	// re-emitted as a literal on every later occurrence, reinserted each
	// time to stay in lockstep with the decoder's unconditional insert.
	items := make([]value.Value, 0, 290)
	for i := 0; i <= 287; i++ {
		items = append(items, value.Str(shortUniqueString(i)))
	}
	items = append(items, value.Str(shortUniqueString(287)))
	items = append(items, value.Str(shortUniqueString(287)))
	// An early, referenceable index must still resolve correctly after the
	// unreferenceable string's repeated literal reinsertion.
	items = append(items, value.Str(shortUniqueString(0)))
	arr := value.Array(items...)

	enc := NewEncoder(sharedFlags, false)
	data, err := enc.Encode(arr)
	require.NoError(t, err)

	dec, err := NewDecoder(data, false)
	require.NoError(t, err)
	got, err := dec.Decode()
	require.NoError(t, err)
	assert.True(t, value.Equal(arr, got))
}

func TestLongNameRefEncoding(t *testing.T) {
	// 70 distinct field names puts the 66th one (index 65) past the
	// 63-index short-name-ref boundary; referencing it again must take the
	// 0x30 long shared-name reference path (a two-byte big-endian index,
	// spec §4.7).
	outer := value.NewObject()
	for i := 0; i < 70; i++ {
		outer.Set(shortUniqueString(i), value.Int(int64(i)))
	}

	inner := value.NewObject()
	inner.Set(shortUniqueString(65), value.Int(-1))
	outer.Set("nested", value.Obj(inner))

	v := value.Obj(outer)

	enc := NewEncoder(sharedFlags, false)
	data, err := enc.Encode(v)
	require.NoError(t, err)
	assert.Contains(t, data, format.TokenLongNameRef)

	dec, err := NewDecoder(data, false)
	require.NoError(t, err)
	got, err := dec.Decode()
	require.NoError(t, err)
	assert.True(t, value.Equal(v, got))
}
