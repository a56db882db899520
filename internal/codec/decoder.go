package codec

import (
	"fmt"
	"math"

	"github.com/arloliu/smile/endian"
	"github.com/arloliu/smile/errs"
	"github.com/arloliu/smile/format"
	"github.com/arloliu/smile/internal/header"
	"github.com/arloliu/smile/internal/reftable"
	"github.com/arloliu/smile/internal/vint"
	"github.com/arloliu/smile/internal/zigzag"
	"github.com/arloliu/smile/value"
)

// errWithIndex wraps a sentinel error with the offending table index.
func errWithIndex(sentinel error, idx int) error {
	return fmt.Errorf("%w: index %d", sentinel, idx)
}

// Decoder parses a Smile byte stream previously produced by any conforming
// encoder, rebuilding the shared-name and shared-value tables in lockstep
// with the encoder's insertion rules (spec §4.7).
type Decoder struct {
	data        []byte
	pos         int
	nameTable   *reftable.Table
	valueTable  *reftable.Table
	flags       header.Flags
	jacksonVInt bool
}

// NewDecoder parses the 4-byte header from data and returns a Decoder ready
// to read the value that follows.
func NewDecoder(data []byte, jacksonVInt bool) (*Decoder, error) {
	flags, n, err := header.Parse(data)
	if err != nil {
		return nil, err
	}

	return &Decoder{
		data:        data,
		pos:         n,
		nameTable:   reftable.New(format.MaxSharedTableEntries),
		valueTable:  reftable.New(format.MaxSharedTableEntries),
		flags:       flags,
		jacksonVInt: jacksonVInt,
	}, nil
}

// Flags returns the header flags this Decoder parsed.
func (d *Decoder) Flags() header.Flags { return d.flags }

// Decode reads one complete value from the remaining input.
func (d *Decoder) Decode() (value.Value, error) {
	return d.decodeValue()
}

func (d *Decoder) nextByte() (byte, error) {
	if d.pos >= len(d.data) {
		return 0, errs.ErrUnexpectedEndOfInput
	}
	b := d.data[d.pos]
	d.pos++

	return b, nil
}

func (d *Decoder) decodeValue() (value.Value, error) {
	tok, err := d.nextByte()
	if err != nil {
		return value.Value{}, err
	}

	switch {
	case tok == format.TokenNull:
		return value.Null(), nil
	case tok == format.TokenFalse:
		return value.Bool(false), nil
	case tok == format.TokenTrue:
		return value.Bool(true), nil
	case tok == format.TokenEmptyString:
		return value.Str(""), nil
	case tok == format.TokenStartArray:
		return d.decodeArray()
	case tok == format.TokenStartObject:
		return d.decodeObject()
	case tok&format.RangeMask == format.SmallIntRange:
		low5 := tok & 0x1F
		return value.Int(int64(int8(low5<<3) >> 3)), nil
	case tok == format.TokenInt32:
		return d.decodeInt32()
	case tok == format.TokenInt64:
		return d.decodeInt64()
	case tok == format.TokenFloat32:
		return d.decodeFloat32()
	case tok == format.TokenFloat64:
		return d.decodeFloat64()
	case tok&format.RangeMask == format.TinyASCIIBase:
		return d.decodeFixedString(int(tok&0x1F) + 1)
	case tok&format.RangeMask == format.SmallASCIIBase:
		return d.decodeFixedString(int(tok&0x1F) + 33)
	case tok&format.RangeMask == format.TinyUnicodeBase:
		return d.decodeFixedString(int(tok&0x1F) + 2)
	case tok&format.RangeMask == format.ShortUnicodeBase:
		return d.decodeFixedString(int(tok&0x1F) + 34)
	case tok == format.TokenLongASCII, tok == format.TokenLongUnicode:
		return d.decodeLongString()
	case tok >= format.ShortValueRefMin && tok <= format.ShortValueRefMax:
		return d.resolveValueRef(int(tok - 1))
	case tok == format.TokenLongValueRef:
		b, err := d.nextByte()
		if err != nil {
			return value.Value{}, errs.ErrIncompleteSharedReference
		}

		return d.resolveValueRef(int(b) + format.LongValueRefOffset)
	default:
		return value.Value{}, errs.ErrUnknownToken
	}
}

// decodeInt32 reads the 0x24 payload per the Decoder's configured packing.
func (d *Decoder) decodeInt32() (value.Value, error) {
	if d.jacksonVInt {
		u, n, err := vint.Read(d.data[d.pos:])
		if err != nil {
			return value.Value{}, err
		}
		d.pos += n

		return value.Int(int64(zigzag.Decode32(uint32(u)))), nil
	}

	if len(d.data)-d.pos < 4 {
		return value.Value{}, errs.ErrIncompleteInt32
	}
	u := endian.BigEndian.Uint32(d.data[d.pos : d.pos+4])
	d.pos += 4

	return value.Int(int64(zigzag.Decode32(u))), nil
}

func (d *Decoder) decodeInt64() (value.Value, error) {
	if d.jacksonVInt {
		u, n, err := vint.Read(d.data[d.pos:])
		if err != nil {
			return value.Value{}, err
		}
		d.pos += n

		return value.Int(zigzag.Decode64(u)), nil
	}

	if len(d.data)-d.pos < 8 {
		return value.Value{}, errs.ErrIncompleteInt64
	}
	u := endian.BigEndian.Uint64(d.data[d.pos : d.pos+8])
	d.pos += 8

	return value.Int(zigzag.Decode64(u)), nil
}

func (d *Decoder) decodeFloat32() (value.Value, error) {
	if len(d.data)-d.pos < 4 {
		return value.Value{}, errs.ErrIncompleteFloat32
	}
	bits := endian.BigEndian.Uint32(d.data[d.pos : d.pos+4])
	d.pos += 4

	return value.Float(float64(math.Float32frombits(bits))), nil
}

func (d *Decoder) decodeFloat64() (value.Value, error) {
	if len(d.data)-d.pos < 8 {
		return value.Value{}, errs.ErrIncompleteFloat64
	}
	bits := endian.BigEndian.Uint64(d.data[d.pos : d.pos+8])
	d.pos += 8

	return value.Float(math.Float64frombits(bits)), nil
}

func (d *Decoder) decodeFixedString(length int) (value.Value, error) {
	if len(d.data)-d.pos < length {
		return value.Value{}, errs.ErrIncompleteString
	}
	s := string(d.data[d.pos : d.pos+length])
	d.pos += length

	d.trackValueString(s)

	return value.Str(s), nil
}

func (d *Decoder) decodeLongString() (value.Value, error) {
	length, n, err := vint.Read(d.data[d.pos:])
	if err != nil {
		return value.Value{}, err
	}
	d.pos += n

	end := d.pos + int(length)
	if end > len(d.data) {
		return value.Value{}, errs.ErrIncompleteString
	}
	s := string(d.data[d.pos:end])
	d.pos = end

	term, err := d.nextByte()
	if err != nil || term != format.TokenStringTerminator {
		return value.Value{}, errs.ErrMissingStringTerminator
	}

	d.trackValueString(s)

	return value.Str(s), nil
}

// trackValueString implements the decoder side of spec §3 Invariant 4. A
// decoded string literal is appended to the value table unconditionally
// whenever shared_values is set, it is short enough, and the table is not
// full, even if an equal string is already present.
func (d *Decoder) trackValueString(s string) {
	if d.flags.SharedValues && len(s) <= format.MaxShortValueLen && !d.valueTable.Full() {
		d.valueTable.Insert(s)
	}
}

func (d *Decoder) resolveValueRef(idx int) (value.Value, error) {
	s, ok := d.valueTable.At(idx)
	if !ok {
		return value.Value{}, errWithIndex(errs.ErrInvalidSharedReference, idx)
	}

	return value.Str(s), nil
}

func (d *Decoder) decodeArray() (value.Value, error) {
	items := make([]value.Value, 0, 4)
	for {
		if d.pos >= len(d.data) {
			return value.Value{}, errs.ErrUnexpectedEndOfInput
		}
		if d.data[d.pos] == format.TokenEndArray {
			d.pos++
			return value.Array(items...), nil
		}

		item, err := d.decodeValue()
		if err != nil {
			return value.Value{}, err
		}
		items = append(items, item)
	}
}

func (d *Decoder) decodeObject() (value.Value, error) {
	obj := value.NewObject()
	for {
		if d.pos >= len(d.data) {
			return value.Value{}, errs.ErrUnexpectedEndOfInput
		}
		if d.data[d.pos] == format.TokenEndObject {
			d.pos++
			return value.Obj(obj), nil
		}

		key, err := d.decodeFieldName()
		if err != nil {
			return value.Value{}, err
		}

		val, err := d.decodeValue()
		if err != nil {
			return value.Value{}, err
		}

		obj.Set(key, val)
	}
}

func (d *Decoder) decodeFieldName() (string, error) {
	tok, err := d.nextByte()
	if err != nil {
		return "", err
	}

	switch {
	case tok == format.TokenEmptyFieldName:
		return "", nil
	case tok&format.ShortNameRefMask == format.ShortNameRefBase:
		idx := int(tok & 0x3F)
		name, ok := d.nameTable.At(idx)
		if !ok {
			return "", errWithIndex(errs.ErrInvalidSharedReference, idx)
		}

		return name, nil
	case tok == format.TokenLongNameRef:
		if len(d.data)-d.pos < 2 {
			return "", errs.ErrIncompleteSharedNameReference
		}
		idx := int(endian.BigEndian.Uint16(d.data[d.pos : d.pos+2]))
		d.pos += 2
		name, ok := d.nameTable.At(idx)
		if !ok {
			return "", errWithIndex(errs.ErrInvalidSharedReference, idx)
		}

		return name, nil
	case tok&format.ShortNameRefMask == format.ShortASCIIFieldNameBase:
		return d.decodeFixedFieldName(int(tok&0x3F) + 1)
	case tok&format.ShortNameRefMask == format.ShortUnicodeFieldNameBase:
		return d.decodeFixedFieldName(int(tok&0x3F) + 1)
	case tok == format.TokenLongFieldName:
		return d.decodeLongFieldName()
	default:
		return "", errs.ErrUnknownKeyToken
	}
}

func (d *Decoder) decodeFixedFieldName(length int) (string, error) {
	if len(d.data)-d.pos < length {
		return "", errs.ErrIncompleteString
	}
	name := string(d.data[d.pos : d.pos+length])
	d.pos += length

	d.trackFieldName(name)

	return name, nil
}

func (d *Decoder) decodeLongFieldName() (string, error) {
	length, n, err := vint.Read(d.data[d.pos:])
	if err != nil {
		return "", err
	}
	d.pos += n

	end := d.pos + int(length)
	if end > len(d.data) {
		return "", errs.ErrIncompleteString
	}
	name := string(d.data[d.pos:end])
	d.pos = end

	term, err := d.nextByte()
	if err != nil || term != format.TokenStringTerminator {
		return "", errs.ErrMissingFieldNameTerminator
	}

	d.trackFieldName(name)

	return name, nil
}

func (d *Decoder) trackFieldName(name string) {
	if d.flags.SharedNames && !d.nameTable.Full() {
		d.nameTable.Insert(name)
	}
}
