package nametab

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discard() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func TestArenaSetRollover(t *testing.T) {
	a := newArenaSet(HeapAllocator{}, 64, 4, discard())

	// First placement opens arena 0 past the pad.
	arena, offset, buf, err := a.place(30)
	require.NoError(t, err)
	assert.Equal(t, 0, arena)
	assert.Equal(t, arenaPad, offset)
	assert.Len(t, buf, 30)

	// 30 more bytes still fit (8 + 30 + 30 <= 64).
	arena, offset, _, err = a.place(26)
	require.NoError(t, err)
	assert.Equal(t, 0, arena)
	assert.Equal(t, arenaPad+30, offset)

	// The next entry doesn't fit; the tail is abandoned and a new arena opens.
	arena, offset, _, err = a.place(30)
	require.NoError(t, err)
	assert.Equal(t, 1, arena)
	assert.Equal(t, arenaPad, offset)
	assert.Equal(t, 2, int(a.opened.Load()))
}

func TestArenaSetExhaustion(t *testing.T) {
	a := newArenaSet(HeapAllocator{}, 64, 2, discard())

	for i := 0; i < 2; i++ {
		_, _, _, err := a.place(40)
		require.NoError(t, err)
	}
	_, _, _, err := a.place(40)
	require.ErrorIs(t, err, ErrExhausted)
	assert.Equal(t, 2, int(a.opened.Load()))
}

func TestArenaSetRelease(t *testing.T) {
	alloc := &countingAllocator{}
	a := newArenaSet(alloc, 64, 4, discard())

	for i := 0; i < 3; i++ {
		_, _, _, err := a.place(40)
		require.NoError(t, err)
	}
	require.NoError(t, a.release())
	assert.Equal(t, 3, alloc.allocated)
	assert.Equal(t, 3, alloc.freed)
}

func TestEntryRoundTrip(t *testing.T) {
	const s = "sfx/charge/heavy_footstep"
	next := makeName(3, 1234)
	hash := hashFold(s)

	buf := make([]byte, entrySize(len(s)))
	putEntry(buf, next, hash, 3, s)

	e := readEntry(buf)
	assert.Equal(t, next, e.next)
	assert.Equal(t, hash, e.hash)
	assert.Equal(t, len(s), e.length)
	assert.Equal(t, 3, e.arena)
	assert.Equal(t, uint8(0), e.flags)
	assert.Equal(t, s, string(e.content))
	assert.Equal(t, byte(0), buf[entryHeaderSize+len(s)])
}

// countingAllocator tracks page traffic so tests can assert each page is
// returned exactly once.
type countingAllocator struct {
	allocated int
	freed     int
}

func (c *countingAllocator) Allocate(size int) ([]byte, error) {
	c.allocated++
	return make([]byte, size), nil
}

func (c *countingAllocator) Deallocate([]byte) error {
	c.freed++
	return nil
}
