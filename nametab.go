// Package nametab provides compact, case-insensitive interned name handles.
// A Name is 8 bytes and compares with a single integer comparison, which
// makes it cheap to store and pass around in hot paths that handle the same
// identifiers over and over (asset names, joint names, tags).
//
// Storage is kind to the GC: contents live in a small fixed set of arena
// pages obtained from an Allocator rather than in per-string allocations,
// and every distinct case-folded string is stored exactly once.
//
// Register names with Table.FindOrAdd. If you are certain a name does - or
// doesn't - exist yet, the stricter Find and Add enforce that.
package nametab

import (
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"unsafe"
)

const (
	// MaxLength is the exclusive upper bound on name length. Names must be
	// strictly shorter.
	MaxLength = 512

	// DefaultBucketCount is the number of hash chains. The bucket count is
	// fixed for the lifetime of a Table.
	DefaultBucketCount = 1 << 16
)

// Table is the intern table: a fixed bucket array of hash chains over
// entries stored in arenas. Allocate it via New and tear it down with Close.
//
// Add, Find and FindOrAdd may be called concurrently. Lookups never take the
// lock; mutation is serialised by a single mutex. Construction and Close are
// not safe to run concurrently with operations.
type Table struct {
	buckets []atomic.Uint64 // chain heads, each a packed Name (0 = empty)
	arenas  *arenaSet
	log     *slog.Logger

	// mu guards all mutation: entry writes, chain publication and arena
	// growth. Readers rely only on the release/acquire pairing on bucket
	// heads.
	mu    sync.Mutex
	count atomic.Int64
}

type options struct {
	alloc       Allocator
	arenaSize   int
	maxArenas   int
	bucketCount int
	log         *slog.Logger
}

// Option configures a Table at construction. All settings are fixed once
// New returns.
type Option func(*options)

// WithAllocator sets the page provider backing the arenas. The default is
// HeapAllocator.
func WithAllocator(a Allocator) Option {
	return func(o *options) { o.alloc = a }
}

// WithArenaSize sets the capacity of each arena page.
func WithArenaSize(size int) Option {
	return func(o *options) { o.arenaSize = size }
}

// WithMaxArenas bounds how many arenas the table may open. The arena index
// must fit the 8 bits reserved for it in a Name, so the limit is 256.
func WithMaxArenas(n int) Option {
	return func(o *options) { o.maxArenas = n }
}

// WithBucketCount sets the number of hash chains.
func WithBucketCount(n int) Option {
	return func(o *options) { o.bucketCount = n }
}

// WithLogger sets the logger for lifecycle diagnostics. The default
// discards everything.
func WithLogger(log *slog.Logger) Option {
	return func(o *options) { o.log = log }
}

// New creates an empty Table. Misconfiguration (an arena too small to hold a
// maximum-length entry, an arena count a Name can't encode) panics, since no
// table could honour its contract from there.
func New(opts ...Option) *Table {
	o := options{
		alloc:       HeapAllocator{},
		arenaSize:   DefaultArenaSize,
		maxArenas:   DefaultMaxArenas,
		bucketCount: DefaultBucketCount,
		log:         slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(&o)
	}

	if o.arenaSize < arenaPad+entrySize(MaxLength-1) {
		panic(fmt.Sprintf("nametab: arena size %d cannot hold a maximum-length entry", o.arenaSize))
	}
	if o.maxArenas < 1 || o.maxArenas > 1<<(64-nameOffsetBits) {
		panic(fmt.Sprintf("nametab: max arenas %d outside 1..256", o.maxArenas))
	}
	if o.bucketCount < 1 {
		panic(fmt.Sprintf("nametab: bucket count %d must be positive", o.bucketCount))
	}

	return &Table{
		buckets: make([]atomic.Uint64, o.bucketCount),
		arenas:  newArenaSet(o.alloc, o.arenaSize, o.maxArenas, o.log),
		log:     o.log,
	}
}

// Close returns every arena page to the Allocator. Handles issued by the
// table are dead afterwards. Close must not run concurrently with other
// operations.
func (t *Table) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i := range t.buckets {
		t.buckets[i].Store(0)
	}
	t.count.Store(0)
	return t.arenas.release()
}

// Count returns the number of distinct names registered.
func (t *Table) Count() int {
	return int(t.count.Load())
}

// ArenaCount returns the number of arena pages in use.
func (t *Table) ArenaCount() int {
	return int(t.arenas.opened.Load())
}

// Add registers a new name and returns its handle. Registering content that
// is already present (under case folding) is a contract violation and fails
// with ErrDuplicate. Use FindOrAdd when prior registration is unknown.
func (t *Table) Add(s string) (Name, error) {
	hash, bucket, err := t.prepare(s)
	if err != nil {
		return 0, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if n := t.walk(bucket, hash, s); !n.IsZero() {
		return 0, fmt.Errorf("%w: %q", ErrDuplicate, s)
	}
	return t.insertLocked(bucket, hash, s)
}

// Find returns the handle of previously registered content, under any
// casing. Looking up content that was never registered is a contract
// violation and fails with ErrNotFound. Find never takes the lock.
func (t *Table) Find(s string) (Name, error) {
	hash, bucket, err := t.prepare(s)
	if err != nil {
		return 0, err
	}
	if n := t.walk(bucket, hash, s); !n.IsZero() {
		return n, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrNotFound, s)
}

// FindOrAdd returns the handle for s, registering it first if needed. This
// is the only operation that is safe to call without knowing whether the
// content already exists. The fast path is a lock-free probe; only a miss
// takes the lock, and the chain is re-walked there to catch a concurrent
// winner, so at most one entry is ever allocated per distinct content.
func (t *Table) FindOrAdd(s string) (Name, error) {
	hash, bucket, err := t.prepare(s)
	if err != nil {
		return 0, err
	}

	if n := t.walk(bucket, hash, s); !n.IsZero() {
		return n, nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if n := t.walk(bucket, hash, s); !n.IsZero() {
		return n, nil
	}
	return t.insertLocked(bucket, hash, s)
}

// Str returns the content a handle names. The string aliases arena storage;
// entries are immutable, so this is safe for the lifetime of the table.
func (t *Table) Str(n Name) string {
	e := t.entry(n)
	if e.length == 0 {
		return ""
	}
	return unsafe.String(&e.content[0], e.length)
}

// Bytes returns the raw content bytes. The slice aliases arena storage and
// must not be modified.
func (t *Table) Bytes(n Name) []byte {
	return t.entry(n).content
}

// Len returns the content length in bytes.
func (t *Table) Len(n Name) int {
	return t.entry(n).length
}

// Hash returns the stored case-folded hash of the content.
func (t *Table) Hash(n Name) uint32 {
	return t.entry(n).hash
}

// Flags returns the entry's flag bits. Currently always zero.
func (t *Table) Flags(n Name) uint8 {
	return t.entry(n).flags
}

// prepare validates the operation preconditions and picks the bucket.
func (t *Table) prepare(s string) (hash uint32, bucket int, err error) {
	if !validASCII(s) {
		return 0, 0, fmt.Errorf("%w: content is not ASCII", ErrInvalidInput)
	}
	if len(s) >= MaxLength {
		return 0, 0, fmt.Errorf("%w: length %d, limit %d", ErrInvalidInput, len(s), MaxLength-1)
	}
	hash = hashFold(s)
	return hash, int(hash % uint32(len(t.buckets))), nil
}

// walk traverses a bucket chain looking for s. It is safe without the lock:
// chain heads are published with release stores after the entry is fully
// written, and entries are immutable once reachable. The stored hash is the
// fast reject; a case-folded compare confirms the match, so distinct
// contents colliding on hash coexist in one chain.
func (t *Table) walk(bucket int, hash uint32, s string) Name {
	for n := Name(t.buckets[bucket].Load()); !n.IsZero(); {
		e := t.entry(n)
		if e.hash == hash && foldEqual(s, e.content) {
			return n
		}
		n = e.next
	}
	return 0
}

// insertLocked writes a new entry and publishes it at the chain head. The
// caller holds t.mu and has established that s is absent.
func (t *Table) insertLocked(bucket int, hash uint32, s string) (Name, error) {
	head := Name(t.buckets[bucket].Load())

	arena, offset, buf, err := t.arenas.place(entrySize(len(s)))
	if err != nil {
		return 0, err
	}
	putEntry(buf, head, hash, arena, s)

	n := makeName(arena, offset)
	// Release store: everything reachable from n is written by now.
	t.buckets[bucket].Store(uint64(n))
	t.count.Add(1)
	return n, nil
}

// entry resolves a handle to its record. Resolving the zero sentinel or a
// handle that doesn't point into written storage is a programmer error and
// panics, as handles only arise from this table's own operations.
func (t *Table) entry(n Name) entryView {
	if n.IsZero() {
		panic("nametab: dereference of zero Name")
	}
	buf := t.arenas.page(n.arena())
	off := n.offset()
	if buf == nil || off < arenaPad || off+entryHeaderSize > len(buf) {
		panic(fmt.Sprintf("nametab: Name %#x does not resolve within this table", uint64(n)))
	}
	return readEntry(buf[off:])
}
