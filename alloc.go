package nametab

// Allocator hands out and reclaims the raw pages that back name arenas. It
// is only ever asked for whole-arena-sized buffers, never per entry, and
// each buffer is passed to Deallocate exactly once when the Table is closed.
type Allocator interface {
	Allocate(size int) ([]byte, error)
	Deallocate(buf []byte) error
}

// HeapAllocator serves pages from the Go heap.
type HeapAllocator struct{}

// Allocate returns a zeroed page of the requested size.
func (HeapAllocator) Allocate(size int) ([]byte, error) {
	return make([]byte, size), nil
}

// Deallocate is a no-op; the garbage collector reclaims the page once the
// Table drops it.
func (HeapAllocator) Deallocate([]byte) error { return nil }
