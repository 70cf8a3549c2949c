package nametab

import "encoding/binary"

// Entry layout within an arena, little-endian:
//
//	next    8 bytes   packed Name of the next entry in the bucket chain (0 = end)
//	hash    4 bytes   uncompressed case-folded hash
//	meta    4 bytes   length (9 bits) | arena index (16 bits) | flags (7 bits)
//	content           ASCII bytes followed by a NUL
//
// Entries are written once, before publication, and never rewritten.
const (
	entryNextOff    = 0
	entryHashOff    = 8
	entryMetaOff    = 12
	entryHeaderSize = 16

	metaLengthBits = 9
	metaArenaBits  = 16
	metaLengthMask = 1<<metaLengthBits - 1
	metaArenaMask  = 1<<metaArenaBits - 1
)

func entrySize(length int) int { return entryHeaderSize + length + 1 }

func packMeta(length, arena int, flags uint8) uint32 {
	return uint32(length&metaLengthMask) |
		uint32(arena&metaArenaMask)<<metaLengthBits |
		uint32(flags)<<(metaLengthBits+metaArenaBits)
}

// putEntry encodes a complete entry into buf, which must be exactly
// entrySize(len(s)) bytes inside the owning arena.
func putEntry(buf []byte, next Name, hash uint32, arena int, s string) {
	binary.LittleEndian.PutUint64(buf[entryNextOff:], uint64(next))
	binary.LittleEndian.PutUint32(buf[entryHashOff:], hash)
	binary.LittleEndian.PutUint32(buf[entryMetaOff:], packMeta(len(s), arena, 0))
	copy(buf[entryHeaderSize:], s)
	buf[entryHeaderSize+len(s)] = 0
}

// entryView decodes an entry in place. content aliases the arena and must be
// treated as read-only.
type entryView struct {
	next    Name
	hash    uint32
	length  int
	arena   int
	flags   uint8
	content []byte
}

func readEntry(buf []byte) entryView {
	meta := binary.LittleEndian.Uint32(buf[entryMetaOff:])
	length := int(meta & metaLengthMask)
	return entryView{
		next:    Name(binary.LittleEndian.Uint64(buf[entryNextOff:])),
		hash:    binary.LittleEndian.Uint32(buf[entryHashOff:]),
		length:  length,
		arena:   int(meta >> metaLengthBits & metaArenaMask),
		flags:   uint8(meta >> (metaLengthBits + metaArenaBits)),
		content: buf[entryHeaderSize : entryHeaderSize+length],
	}
}
