package value

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObjectPreservesInsertionOrder(t *testing.T) {
	o := NewObject()
	o.Set("z", Int(1))
	o.Set("a", Int(2))
	o.Set("m", Int(3))

	assert.Equal(t, []string{"z", "a", "m"}, o.Keys())
}

func TestObjectSetUpdatesInPlace(t *testing.T) {
	o := NewObject()
	o.Set("k", Int(1))
	o.Set("k", Int(2))

	assert.Equal(t, []string{"k"}, o.Keys())
	v, ok := o.Get("k")
	assert.True(t, ok)
	assert.Equal(t, int64(2), v.AsInt())
}

func TestEqualScalars(t *testing.T) {
	assert.True(t, Equal(Null(), Null()))
	assert.True(t, Equal(Bool(true), Bool(true)))
	assert.False(t, Equal(Bool(true), Bool(false)))
	assert.True(t, Equal(Int(5), Int(5)))
	assert.True(t, Equal(Str("hi"), Str("hi")))
	assert.False(t, Equal(Int(5), Float(5)))
}

func TestEqualFloatToleratesOneULP(t *testing.T) {
	x := 1.0
	next := nextFloat(x)
	assert.True(t, Equal(Float(x), Float(next)))
}

func nextFloat(f float64) float64 {
	return math.Float64frombits(math.Float64bits(f) + 1)
}

func TestEqualArrayAndObject(t *testing.T) {
	a := Array(Int(1), Str("x"), Null())
	b := Array(Int(1), Str("x"), Null())
	assert.True(t, Equal(a, b))

	oa := NewObject()
	oa.Set("a", Int(1))
	ob := NewObject()
	ob.Set("a", Int(1))
	assert.True(t, Equal(Obj(oa), Obj(ob)))

	ob2 := NewObject()
	ob2.Set("b", Int(1))
	assert.False(t, Equal(Obj(oa), Obj(ob2)))
}

func TestEqualObjectOrderMatters(t *testing.T) {
	oa := NewObject()
	oa.Set("a", Int(1))
	oa.Set("b", Int(2))

	ob := NewObject()
	ob.Set("b", Int(2))
	ob.Set("a", Int(1))

	assert.False(t, Equal(Obj(oa), Obj(ob)))
}
