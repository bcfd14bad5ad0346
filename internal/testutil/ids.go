package testutil

import (
	"fmt"
	"sync"
)

// FixedIDs returns predetermined entity ids in order.
//
// Example:
//
//	ids := NewFixedIDs("user-1", "place-1")
//	ids.NewID() // "user-1"
//	ids.NewID() // "place-1"
//	ids.NewID() // panic: all ids consumed
//
// Thread-safety: FixedIDs is safe for concurrent use via internal mutex.
type FixedIDs struct {
	mu  sync.Mutex
	ids []string
	idx int
}

// NewFixedIDs creates a generator that returns ids in order.
func NewFixedIDs(ids ...string) *FixedIDs {
	return &FixedIDs{ids: ids}
}

// NewID returns the next predetermined id.
//
// Panics when every id has been consumed; a test that creates more
// entities than it planned for should fail loudly.
func (g *FixedIDs) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.idx >= len(g.ids) {
		panic(fmt.Sprintf("testutil.FixedIDs: all %d ids consumed", len(g.ids)))
	}
	id := g.ids[g.idx]
	g.idx++
	return id
}

// Remaining returns how many ids are left.
func (g *FixedIDs) Remaining() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.ids) - g.idx
}

// SequentialIDs returns "<prefix>-1", "<prefix>-2", ... without limit.
type SequentialIDs struct {
	mu     sync.Mutex
	prefix string
	n      int
}

// NewSequentialIDs creates a generator of numbered ids.
func NewSequentialIDs(prefix string) *SequentialIDs {
	return &SequentialIDs{prefix: prefix}
}

// NewID returns the next numbered id.
func (g *SequentialIDs) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("%s-%d", g.prefix, g.n)
}
