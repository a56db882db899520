// Package reftable implements the insertion-ordered, capacity-capped
// back-reference tables shared by the Smile encoder and decoder: the
// shared-name table (field names) and the shared-value table (short string
// values), each capped at format.MaxSharedTableEntries entries (spec v1.0.0
// §3 Invariants 1-5).
//
// Grounded on internal/collision/tracker.go: that tracker maps a metric
// name's xxHash64 to the name it tracked, appends to an ordered list for
// payload encoding, and falls back to an explicit string comparison to tell
// a genuine hash collision from a repeat insertion. Table reuses the same
// shape for O(1) "have I already inserted this exact string" lookups: hash
// first with internal/hash's xxHash64, then verify the candidate strings at
// that hash bucket byte-for-byte before reporting a hit. Unlike the
// collision tracker, a 64-bit hash collision here is not a correctness
// hazard (Table falls back to linear verification within the bucket rather
// than assuming hash uniqueness), only a rare extra byte comparison.
package reftable

import "github.com/arloliu/smile/internal/hash"

// Table is an append-only, order-preserving string table capped at maxSize
// entries. The encoder and decoder each keep two: one for field names, one
// for short string values.
type Table struct {
	maxSize int
	entries []string       // insertion order; entries[i] is the string at index i
	byHash  map[uint64][]int // xxHash64(entry) -> indices sharing that hash
}

// New creates an empty Table capped at maxSize entries.
func New(maxSize int) *Table {
	return &Table{
		maxSize: maxSize,
		byHash:  make(map[uint64][]int),
	}
}

// Len returns the number of entries currently in the table.
func (t *Table) Len() int {
	return len(t.entries)
}

// Full reports whether the table has reached its capacity.
func (t *Table) Full() bool {
	return len(t.entries) >= t.maxSize
}

// Lookup returns the index of s in the table and true if present.
func (t *Table) Lookup(s string) (int, bool) {
	h := hash.ID(s)
	for _, idx := range t.byHash[h] {
		if t.entries[idx] == s {
			return idx, true
		}
	}

	return 0, false
}

// Insert appends s as the next entry and returns its index. The caller must
// first check Full(); Insert does not itself enforce the capacity limit so
// that the "table full: emit inline, do not insert" rule of spec §3
// Invariant 1 is the caller's explicit decision, not a silent table policy.
func (t *Table) Insert(s string) int {
	idx := len(t.entries)
	t.entries = append(t.entries, s)

	h := hash.ID(s)
	t.byHash[h] = append(t.byHash[h], idx)

	return idx
}

// At returns the entry at index i. ok is false if i is out of range, which
// the decoder treats as errs.ErrInvalidSharedReference.
func (t *Table) At(i int) (string, bool) {
	if i < 0 || i >= len(t.entries) {
		return "", false
	}

	return t.entries[i], true
}
