package nametab

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// MmapAllocator serves pages from anonymous memory mappings. Name storage
// held this way lives off the Go heap, so the garbage collector never scans
// it, which matters when the table holds a lot of long-lived content.
type MmapAllocator struct{}

// Allocate maps a fresh anonymous page of the requested size.
func (MmapAllocator) Allocate(size int) ([]byte, error) {
	buf, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, fmt.Errorf("failed to map %d bytes: %w", size, err)
	}
	return buf, nil
}

// Deallocate unmaps a page previously returned by Allocate.
func (MmapAllocator) Deallocate(buf []byte) error {
	if err := unix.Munmap(buf); err != nil {
		return fmt.Errorf("failed to unmap page: %w", err)
	}
	return nil
}
