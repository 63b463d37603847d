package greenthreads

import (
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/ygrebnov/errorc"
)

// inflight counts tasks that were spawned and have not finished yet.
//
// The value is only ever changed with atomic adds, so spawning never takes a lock.
// Parked waiters use idle: it is closed on every transition to zero and replaced by a fresh
// channel, which lets a waiter tell "zero now" from "was zero before I started waiting".
type inflight struct {
	n atomic.Int64

	mu   sync.Mutex
	idle chan struct{}
}

func newInflight() *inflight {
	return &inflight{idle: make(chan struct{})}
}

func (c *inflight) inc() { c.n.Add(1) }

// dec releases one slot. A negative result means increments and decrements are not paired,
// which is a bug in the scheduler, so it panics.
func (c *inflight) dec() {
	v := c.n.Add(-1)
	switch {
	case v < 0:
		panic(errorc.With(ErrCounterUnderflow, errorc.String("value", strconv.FormatInt(v, 10))))
	case v == 0:
		c.mu.Lock()
		close(c.idle)
		c.idle = make(chan struct{})
		c.mu.Unlock()
	}
}

func (c *inflight) load() int64 { return c.n.Load() }

// idleSignal returns the channel closed by the next transition to zero.
// Callers must re-check load() after taking it.
func (c *inflight) idleSignal() <-chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.idle
}
