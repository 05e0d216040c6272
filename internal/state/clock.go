package state

import (
	"sync/atomic"

	"github.com/google/uuid"
)

// Clock hands out board revisions. Every mutation of the square collection
// takes a new tick, so peers can tell a newer snapshot from a stale one.
type Clock struct {
	n atomic.Uint64
}

func (c *Clock) Tick() uint64 {
	return c.n.Add(1)
}

func (c *Clock) Now() uint64 {
	return c.n.Load()
}

// Observe moves the clock forward to at least rev.
func (c *Clock) Observe(rev uint64) {
	for {
		cur := c.n.Load()
		if rev <= cur || c.n.CompareAndSwap(cur, rev) {
			return
		}
	}
}

// NewID is the default identifier source for new squares.
func NewID() string {
	return uuid.NewString()
}
