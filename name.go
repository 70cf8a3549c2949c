package nametab

// Name is a compact handle to an interned, case-insensitive ASCII string.
// It is 8 bytes wide and as cheap to copy and compare as a uint64: two Names
// issued by the same Table are equal exactly when their case-folded contents
// are equal, so == replaces byte-wise string comparison.
//
// The zero Name is an empty sentinel that names nothing and must not be
// dereferenced. A Name is only meaningful to the Table that issued it, and
// only while that Table is open. Name is comparable and can be used directly
// as a map or set key.
type Name uint64

// Low 56 bits hold the byte offset into the owning arena, high 8 bits hold
// the arena index.
const (
	nameOffsetBits = 56
	nameOffsetMask = 1<<nameOffsetBits - 1
)

func makeName(arena, offset int) Name {
	return Name(uint64(arena)<<nameOffsetBits | uint64(offset)&nameOffsetMask)
}

func (n Name) arena() int  { return int(uint64(n) >> nameOffsetBits) }
func (n Name) offset() int { return int(uint64(n) & nameOffsetMask) }

// IsZero reports whether n is the empty sentinel.
func (n Name) IsZero() bool { return n == 0 }
