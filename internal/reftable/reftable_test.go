package reftable

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInsertLookupAt(t *testing.T) {
	tbl := New(4)

	idx := tbl.Insert("a")
	assert.Equal(t, 0, idx)

	idx = tbl.Insert("b")
	assert.Equal(t, 1, idx)

	got, ok := tbl.Lookup("a")
	assert.True(t, ok)
	assert.Equal(t, 0, got)

	_, ok = tbl.Lookup("missing")
	assert.False(t, ok)

	s, ok := tbl.At(1)
	assert.True(t, ok)
	assert.Equal(t, "b", s)

	_, ok = tbl.At(99)
	assert.False(t, ok)
}

func TestFull(t *testing.T) {
	tbl := New(2)
	assert.False(t, tbl.Full())
	tbl.Insert("a")
	assert.False(t, tbl.Full())
	tbl.Insert("b")
	assert.True(t, tbl.Full())
}

func TestLenTracksInsertions(t *testing.T) {
	tbl := New(100)
	for i := 0; i < 10; i++ {
		tbl.Insert(fmt.Sprintf("s%d", i))
	}
	assert.Equal(t, 10, tbl.Len())
}
