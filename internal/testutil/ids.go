// Package testutil provides deterministic helpers for tests.
package testutil

import (
	"fmt"
	"sync"
)

// SequenceGenerator hands out UUID-shaped ids from a counter, so saved
// query ids are predictable and sort in the order they were issued.
//
// The first call to Generate returns 00000000-0000-7000-8000-000000000001.
//
// Thread-safety: all methods are safe for concurrent use.
type SequenceGenerator struct {
	mu  sync.Mutex
	seq int64
}

// NewSequenceGenerator creates a generator starting at 0.
func NewSequenceGenerator() *SequenceGenerator {
	return &SequenceGenerator{}
}

// Generate increments the counter and returns the matching id.
func (g *SequenceGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.seq++
	return SequenceID(g.seq)
}

// Current returns the number of ids issued so far.
func (g *SequenceGenerator) Current() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.seq
}

// Reset restarts the sequence so a scenario can be replayed with the same
// ids.
func (g *SequenceGenerator) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.seq = 0
}

// SequenceID formats the n-th id issued by a SequenceGenerator.
func SequenceID(n int64) string {
	return fmt.Sprintf("00000000-0000-7000-8000-%012d", n)
}
