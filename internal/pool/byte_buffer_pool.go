// Package pool provides a sync.Pool-backed byte buffer used to accumulate
// encoder output without per-call allocation.
package pool

import "sync"

// EncoderBufferDefaultSize is the default capacity of a ByteBuffer drawn
// from the encoder pool.
const (
	EncoderBufferDefaultSize  = 1024 * 2  // 2KiB
	EncoderBufferMaxThreshold = 1024 * 64 // 64KiB
)

// ByteBuffer is a growable byte slice wrapper sized for reuse via sync.Pool.
type ByteBuffer struct {
	B []byte
}

// NewByteBuffer creates a new ByteBuffer with the given starting capacity.
func NewByteBuffer(defaultSize int) *ByteBuffer {
	return &ByteBuffer{B: make([]byte, 0, defaultSize)}
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Len returns the length of the buffer.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// Reset empties the buffer but keeps the allocated backing array for reuse.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Grow ensures the buffer can accept requiredBytes more bytes without
// reallocating.
func (bb *ByteBuffer) Grow(requiredBytes int) {
	available := cap(bb.B) - len(bb.B)
	if available >= requiredBytes {
		return
	}

	growBy := EncoderBufferDefaultSize
	if cap(bb.B) > 4*EncoderBufferDefaultSize {
		growBy = cap(bb.B) / 4
	}
	if growBy < requiredBytes {
		growBy = requiredBytes
	}

	newBuf := make([]byte, len(bb.B), len(bb.B)+growBy)
	copy(newBuf, bb.B)
	bb.B = newBuf
}

// MustWrite appends data to the buffer, growing it first if needed.
func (bb *ByteBuffer) MustWrite(data []byte) {
	bb.Grow(len(data))
	bb.B = append(bb.B, data...)
}

// MustWriteByte appends a single byte to the buffer, growing it first if needed.
func (bb *ByteBuffer) MustWriteByte(b byte) {
	bb.Grow(1)
	bb.B = append(bb.B, b)
}

// byteBufferPool pools ByteBuffers capped at EncoderBufferMaxThreshold to
// avoid retaining an oversized buffer after one unusually large document.
type byteBufferPool struct {
	pool         sync.Pool
	maxThreshold int
}

func newByteBufferPool(defaultSize, maxThreshold int) *byteBufferPool {
	return &byteBufferPool{
		pool: sync.Pool{
			New: func() any { return NewByteBuffer(defaultSize) },
		},
		maxThreshold: maxThreshold,
	}
}

func (p *byteBufferPool) Get() *ByteBuffer {
	bb, _ := p.pool.Get().(*ByteBuffer)
	return bb
}

func (p *byteBufferPool) Put(bb *ByteBuffer) {
	if bb == nil {
		return
	}
	if cap(bb.B) > p.maxThreshold {
		return
	}
	bb.Reset()
	p.pool.Put(bb)
}

var encoderPool = newByteBufferPool(EncoderBufferDefaultSize, EncoderBufferMaxThreshold)

// GetEncoderBuffer retrieves a ByteBuffer from the default encoder pool.
func GetEncoderBuffer() *ByteBuffer {
	return encoderPool.Get()
}

// PutEncoderBuffer returns a ByteBuffer to the default encoder pool.
func PutEncoderBuffer(bb *ByteBuffer) {
	encoderPool.Put(bb)
}
