// Package zigzag implements the ZigZag signed/unsigned integer mapping used
// by the Smile numeric tokens (spec v1.0.0 §4.3): non-negative v maps to 2v,
// negative v maps to -2v-1.
//
// Grounded on encoding/ts_delta.go's delta-of-delta timestamp codec, which
// computes the identical `(v<<1) ^ (v>>63)` / `(u>>1) ^ -(u&1)` pair inline
// for int64 deltas; this package generalizes that pair to both 32- and
// 64-bit widths so the numeric token encoder/decoder can share it.
package zigzag

// Encode32 maps a signed 32-bit integer to its ZigZag-encoded unsigned form.
func Encode32(v int32) uint32 {
	return uint32((v << 1) ^ (v >> 31))
}

// Decode32 inverts Encode32.
func Decode32(u uint32) int32 {
	return int32(u>>1) ^ -int32(u&1)
}

// Encode64 maps a signed 64-bit integer to its ZigZag-encoded unsigned form.
func Encode64(v int64) uint64 {
	return uint64((v << 1) ^ (v >> 63))
}

// Decode64 inverts Encode64.
func Decode64(u uint64) int64 {
	return int64(u>>1) ^ -int64(u&1)
}
