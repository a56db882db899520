// Package smile implements the FasterXML Smile binary interchange format
// (v1.0.0): a binary serialization of the JSON data model designed to be
// more compact and faster to process than textual JSON.
//
// # Core Features
//
//   - Token-level encoder and decoder with exact round-trip preservation
//     for the JSON-compatible type set (null, bool, int64, float64, string,
//     array, object)
//   - Optional field-name and short-string-value back-reference sharing,
//     each capped at 1024 insertion-ordered entries
//   - Deterministic output: identical input and Options always produce
//     byte-identical bytes
//
// # Basic Usage
//
//	obj := value.NewObject()
//	obj.Set("name", value.Str("gopher"))
//	obj.Set("count", value.Int(3))
//
//	data, err := smile.Encode(value.Obj(obj))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	decoded, err := smile.Decode(data)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Package Structure
//
// This package is a thin convenience wrapper around internal/codec: the
// token taxonomy, the VInt/ZigZag codecs, the string classifier, and the
// shared-reference tables that do the real work live in internal
// subpackages and are not part of the public surface.
package smile

import (
	"fmt"

	"github.com/arloliu/smile/internal/codec"
	"github.com/arloliu/smile/value"
)

// Diagnostics reports non-fatal observations made while decoding.
type Diagnostics struct {
	// RawBinarySet is true if the decoded header's raw_binary bit was set.
	// This core never produces or consumes a raw-binary token regardless;
	// a caller that cares can log a warning when this is true.
	RawBinarySet bool
}

// Encode serializes v to its Smile byte representation under opts.
//
// Returns errs.ErrUnsupportedType if v (or any value nested inside it)
// falls outside the enumerated Value variant set. errs.ErrIntegerOutOfRange
// belongs to the closed error taxonomy (spec §7), but Encode never returns
// it: every Int value already holds a signed 64-bit integer.
func Encode(v value.Value, opts ...Option) ([]byte, error) {
	o := buildOptions(opts)
	enc := codec.NewEncoder(o.flags, o.jacksonVInt)

	return enc.Encode(v)
}

// MustEncode is the throwing variant of Encode: it panics carrying the same
// error Encode would have returned (spec §7 "both a fallible and a throwing
// entry point are exposed").
func MustEncode(v value.Value, opts ...Option) []byte {
	data, err := Encode(v, opts...)
	if err != nil {
		panic(fmt.Errorf("smile: MustEncode: %w", err))
	}

	return data
}

// Decode parses data into a Value.
//
// Decode accepts either integer-token packing (spec §9's fixed-width form
// or the Jackson VInt form) if the caller passes a matching
// WithJacksonVInt option; only the options bearing on decoding
// (WithJacksonVInt) have any effect, since shared_names/shared_values/
// raw_binary are read from the header itself, not from opts.
func Decode(data []byte, opts ...Option) (value.Value, error) {
	v, _, err := DecodeWithDiagnostics(data, opts...)
	return v, err
}

// DecodeWithDiagnostics is Decode plus the Diagnostics supplement described
// above.
func DecodeWithDiagnostics(data []byte, opts ...Option) (value.Value, Diagnostics, error) {
	o := buildOptions(opts)
	dec, err := codec.NewDecoder(data, o.jacksonVInt)
	if err != nil {
		return value.Value{}, Diagnostics{}, err
	}

	v, err := dec.Decode()
	if err != nil {
		return value.Value{}, Diagnostics{}, err
	}

	return v, Diagnostics{RawBinarySet: dec.Flags().RawBinary}, nil
}

// MustDecode is the throwing variant of Decode.
func MustDecode(data []byte, opts ...Option) value.Value {
	v, err := Decode(data, opts...)
	if err != nil {
		panic(fmt.Errorf("smile: MustDecode: %w", err))
	}

	return v
}
