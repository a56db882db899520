// Package hash computes the xxHash64 used to key entries in the shared-name
// and shared-value back-reference tables (internal/reftable).
package hash

import "github.com/cespare/xxhash/v2"

// ID computes the xxHash64 of the given string.
func ID(data string) uint64 {
	return xxhash.Sum64String(data)
}
