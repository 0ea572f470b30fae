package encoder

import "github.com/arloliu/v210/internal/pool"

// Allocator provides output buffers for Encode.
type Allocator interface {
	// Allocate returns a buffer of exactly size bytes. Its contents need not
	// be zeroed; the encoder writes every byte.
	Allocate(size int) ([]byte, error)
}

// Releaser is implemented by allocators that take buffers back through
// Packet.Release.
type Releaser interface {
	Release(buf []byte)
}

// HeapAllocator allocates a fresh slice per frame.
type HeapAllocator struct{}

var _ Allocator = HeapAllocator{}

// Allocate implements Allocator.
func (HeapAllocator) Allocate(size int) ([]byte, error) {
	return make([]byte, size), nil
}

// PoolAllocator recycles frame buffers returned through Packet.Release.
type PoolAllocator struct {
	pool *pool.ByteBufferPool
}

var (
	_ Allocator = (*PoolAllocator)(nil)
	_ Releaser  = (*PoolAllocator)(nil)
)

// NewPoolAllocator creates an allocator for frames of frameSize bytes.
// Buffers larger than twice frameSize are not retained.
func NewPoolAllocator(frameSize int) *PoolAllocator {
	return &PoolAllocator{pool: pool.NewByteBufferPool(frameSize, 2*frameSize)}
}

// Allocate implements Allocator.
func (a *PoolAllocator) Allocate(size int) ([]byte, error) {
	bb := a.pool.Get()
	bb.Resize(size)

	return bb.Bytes(), nil
}

// Release returns buf to the pool. The caller must not use buf afterwards.
func (a *PoolAllocator) Release(buf []byte) {
	if buf == nil {
		return
	}
	a.pool.Put(&pool.ByteBuffer{B: buf})
}
