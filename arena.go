package nametab

import (
	"fmt"
	"log/slog"
	"sync/atomic"
)

const (
	// DefaultArenaSize is the capacity of a single arena page.
	DefaultArenaSize = 2 << 20

	// DefaultMaxArenas bounds total name storage at
	// DefaultMaxArenas * DefaultArenaSize.
	DefaultMaxArenas = 32

	// arenaPad reserves the first bytes of every arena so that no entry
	// ever sits at offset 0 of arena 0, which would make its handle
	// bit-identical to the zero sentinel.
	arenaPad = 8
)

// arenaSet bump-allocates entry storage within fixed-size pages obtained
// from an Allocator. Pages fill monotonically; the unused tail of a page is
// abandoned on rollover, and pages are returned to the provider only in bulk
// when the set is released.
//
// The pages slice is allocated once at full length and never reallocated, so
// lock-free readers can index it by the arena number carried in a published
// Name. All mutation happens under the owning Table's lock.
type arenaSet struct {
	alloc Allocator
	size  int
	log   *slog.Logger

	pages  [][]byte
	opened atomic.Int32
	fill   int // bytes used in the newest page
}

func newArenaSet(alloc Allocator, size, maxArenas int, log *slog.Logger) *arenaSet {
	return &arenaSet{
		alloc: alloc,
		size:  size,
		log:   log,
		pages: make([][]byte, maxArenas),
	}
}

// grow opens a fresh arena and points the fill cursor at it.
func (a *arenaSet) grow() error {
	idx := int(a.opened.Load())
	if idx >= len(a.pages) {
		return fmt.Errorf("%w: %d arenas of %d bytes in use", ErrExhausted, idx, a.size)
	}
	buf, err := a.alloc.Allocate(a.size)
	if err != nil {
		return fmt.Errorf("allocating arena %d: %w", idx, err)
	}
	if len(buf) < a.size {
		return fmt.Errorf("allocating arena %d: %w: provider returned %d of %d bytes",
			idx, ErrExhausted, len(buf), a.size)
	}
	clear(buf)
	a.pages[idx] = buf
	a.opened.Store(int32(idx + 1))
	a.fill = arenaPad
	a.log.Debug("opened arena", "index", idx, "size", a.size)
	return nil
}

// place reserves size bytes in the newest arena, opening a new one when the
// remainder is too small. Entries are tiny relative to the arena capacity,
// so a fresh arena always fits one.
func (a *arenaSet) place(size int) (arena, offset int, buf []byte, err error) {
	if a.opened.Load() == 0 || a.fill+size > a.size {
		if err := a.grow(); err != nil {
			return 0, 0, nil, err
		}
	}
	arena = int(a.opened.Load()) - 1
	offset = a.fill
	a.fill += size
	return arena, offset, a.pages[arena][offset : offset+size], nil
}

// page returns arena i, or nil if no such arena has been opened. Safe to
// call without the lock: the slot is written before any Name naming it is
// published.
func (a *arenaSet) page(i int) []byte {
	if i < 0 || i >= int(a.opened.Load()) {
		return nil
	}
	return a.pages[i]
}

// release returns every page to the provider exactly once. The set must not
// be used afterwards.
func (a *arenaSet) release() error {
	var first error
	for i := 0; i < int(a.opened.Load()); i++ {
		if err := a.alloc.Deallocate(a.pages[i]); err != nil && first == nil {
			first = err
		}
		a.pages[i] = nil
	}
	a.opened.Store(0)
	a.fill = 0
	return first
}
