// Package value defines the JSON-compatible data model the Smile codec
// encodes and decodes (spec v1.0.0 §3). It is the narrow external interface
// described in spec §6: the codec core treats it as an abstract type and
// never reaches past this package's accessors into a host-specific
// representation.
package value

import "math"

// Kind discriminates the seven cases of Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindArray
	KindObject
)

// String returns a human-readable name for k, used in error messages.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Value is a tagged variant over the JSON data model: null, bool, signed
// 64-bit integer, IEEE-754 binary64 float, UTF-8 string, ordered array of
// Value, or an Object (an insertion-ordered string-to-Value mapping).
//
// The zero Value is Null.
type Value struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	s    string
	arr  []Value
	obj  *Object
}

// Null returns the Null value.
func Null() Value { return Value{kind: KindNull} }

// Bool returns a Bool value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Int returns an Int value.
func Int(i int64) Value { return Value{kind: KindInt, i: i} }

// Float returns a Float value.
func Float(f float64) Value { return Value{kind: KindFloat, f: f} }

// Str returns a Str value. s must be valid UTF-8 (spec §3).
func Str(s string) Value { return Value{kind: KindString, s: s} }

// Array returns an Array value wrapping items in order.
func Array(items ...Value) Value {
	return Value{kind: KindArray, arr: items}
}

// Obj returns an Object value wrapping o. A nil o is treated as empty.
func Obj(o *Object) Value {
	if o == nil {
		o = NewObject()
	}

	return Value{kind: KindObject, obj: o}
}

// Kind reports which variant v holds.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is the Null variant.
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsBool returns v's bool payload. Only meaningful when Kind() == KindBool.
func (v Value) AsBool() bool { return v.b }

// AsInt returns v's int64 payload. Only meaningful when Kind() == KindInt.
func (v Value) AsInt() int64 { return v.i }

// AsFloat returns v's float64 payload. Only meaningful when Kind() == KindFloat.
func (v Value) AsFloat() float64 { return v.f }

// AsString returns v's string payload. Only meaningful when Kind() == KindString.
func (v Value) AsString() string { return v.s }

// AsArray returns v's element slice. Only meaningful when Kind() == KindArray.
func (v Value) AsArray() []Value { return v.arr }

// AsObject returns v's Object. Only meaningful when Kind() == KindObject.
func (v Value) AsObject() *Object { return v.obj }

// Object is an insertion-ordered mapping from string keys to Values (spec §3,
// §3 Invariant 6, §9 "Encoder ordered mapping").
type Object struct {
	keys []string
	vals []Value
	idx  map[string]int
}

// NewObject creates an empty Object.
func NewObject() *Object {
	return &Object{idx: make(map[string]int)}
}

// Set inserts or updates key. New keys are appended to the end of the
// iteration order; updating an existing key leaves its position unchanged.
func (o *Object) Set(key string, v Value) {
	if i, ok := o.idx[key]; ok {
		o.vals[i] = v
		return
	}

	o.idx[key] = len(o.keys)
	o.keys = append(o.keys, key)
	o.vals = append(o.vals, v)
}

// Get returns the value for key and whether it was present.
func (o *Object) Get(key string) (Value, bool) {
	i, ok := o.idx[key]
	if !ok {
		return Value{}, false
	}

	return o.vals[i], true
}

// Len returns the number of entries.
func (o *Object) Len() int {
	return len(o.keys)
}

// Keys returns the keys in insertion order. The caller must not mutate the
// returned slice.
func (o *Object) Keys() []string {
	return o.keys
}

// Range calls fn for each (key, value) pair in insertion order, stopping
// early if fn returns false.
func (o *Object) Range(fn func(key string, v Value) bool) {
	for i, k := range o.keys {
		if !fn(k, o.vals[i]) {
			return
		}
	}
}

// Equal reports whether a and b represent the same value, comparing floats
// within 1 ULP (spec §8, property 1) and requiring identical Object key
// order (spec §3 Invariant 6).
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}

	switch a.kind {
	case KindNull:
		return true
	case KindBool:
		return a.b == b.b
	case KindInt:
		return a.i == b.i
	case KindFloat:
		return floatsWithinULP(a.f, b.f, 1)
	case KindString:
		return a.s == b.s
	case KindArray:
		if len(a.arr) != len(b.arr) {
			return false
		}
		for i := range a.arr {
			if !Equal(a.arr[i], b.arr[i]) {
				return false
			}
		}

		return true
	case KindObject:
		if a.obj.Len() != b.obj.Len() {
			return false
		}
		for i, k := range a.obj.keys {
			bv, ok := b.obj.Get(k)
			if !ok || b.obj.keys[i] != k || !Equal(a.obj.vals[i], bv) {
				return false
			}
		}

		return true
	default:
		return false
	}
}

// floatsWithinULP reports whether x and y are within n representable
// float64 steps of each other, treating equal values as trivially within
// range. Any two NaNs count as within range, whatever their payload bits.
func floatsWithinULP(x, y float64, n uint64) bool {
	if x == y {
		return true
	}
	if math.IsNaN(x) && math.IsNaN(y) {
		return true
	}
	if math.IsNaN(x) || math.IsNaN(y) {
		return false
	}

	bx := math.Float64bits(x)
	by := math.Float64bits(y)
	if bx > by {
		bx, by = by, bx
	}

	return by-bx <= n
}
