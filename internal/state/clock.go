package state

import (
	"sync"

	"github.com/google/uuid"
)

// Clock is a Lamport clock stamping ops from one site.
type Clock struct {
	site    string
	counter uint64
	mu      sync.Mutex
}

func NewClock() *Clock {
	return &Clock{site: uuid.NewString()}
}

func (c *Clock) Site() string {
	return c.site
}

// Tick advances the clock for a local event and returns the new time.
func (c *Clock) Tick() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counter++
	return c.counter
}

// Witness moves the clock past a timestamp seen on a remote op.
func (c *Clock) Witness(t uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if t > c.counter {
		c.counter = t
	}
}

func (c *Clock) stamp(op Op) Op {
	op.Lamport = c.Tick()
	op.Site = c.site
	return op
}
