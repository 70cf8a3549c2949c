package nametab

import (
	"strings"
	"sync"
)

// Naive is a map-based interner with the same case-folding semantics as
// Table. Really just intended to compare against.
type Naive struct {
	mu sync.RWMutex
	m  map[string]string
}

// NewNaive creates a new, basic implementation of the interning function.
func NewNaive(cap int) *Naive {
	return &Naive{m: make(map[string]string, cap)}
}

// Intern returns the canonical stored copy for s, storing s if no
// case-insensitively equal content is known yet.
func (n *Naive) Intern(s string) string {
	key := strings.ToLower(s)

	n.mu.RLock()
	c, ok := n.m[key]
	n.mu.RUnlock()
	if ok {
		return c
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	// Double-check: another goroutine may have stored it since the probe.
	if c, ok := n.m[key]; ok {
		return c
	}
	n.m[key] = s
	return s
}

// Len returns the number of distinct case-folded strings stored.
func (n *Naive) Len() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.m)
}
