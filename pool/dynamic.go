package pool

import (
	"runtime"
	"sync"
)

// Dynamic runs every submitted function on its own goroutine and leaves the distribution
// over OS threads to the Go runtime scheduler.
type Dynamic struct {
	closeMu sync.RWMutex
	closed  bool
	wg      sync.WaitGroup
	onPanic func(any)
}

func NewDynamic(opts ...Option) *Dynamic {
	o := buildOptions(opts)
	return &Dynamic{onPanic: o.onPanic}
}

func (p *Dynamic) Submit(fn func()) error {
	p.closeMu.RLock()
	defer p.closeMu.RUnlock()
	if p.closed {
		return ErrClosed
	}
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		execute(fn, p.onPanic)
	}()
	return nil
}

// Size reports GOMAXPROCS, the number of threads that execute goroutines simultaneously.
func (p *Dynamic) Size() int { return runtime.GOMAXPROCS(0) }

// Close rejects further submissions and waits for running functions to return.
func (p *Dynamic) Close() {
	p.closeMu.Lock()
	p.closed = true
	p.closeMu.Unlock()
	p.wg.Wait()
}
