package pool

import (
	"sync"
	"sync/atomic"
)

// Fixed is a work-stealing pool with a fixed number of worker goroutines.
//
// Every worker owns a local queue. Submissions are spread round-robin over the local queues;
// a worker drains its own queue from the front and, once it is empty, steals from the back
// of its peers' queues. Workers with nothing to do park until the next submission.
type Fixed struct {
	workers []*localWorker
	next    atomic.Uint64

	// wake holds at most one token per worker; a token makes a parked worker rescan the queues.
	wake chan struct{}
	done chan struct{}

	closeMu   sync.RWMutex
	closed    bool
	closeOnce sync.Once
	wg        sync.WaitGroup

	onPanic func(any)
}

type localWorker struct {
	id       int
	queue    *deque
	executed atomic.Uint64
	stolen   atomic.Uint64
}

// WorkerStats is a point-in-time view of a single worker.
type WorkerStats struct {
	ID       int
	Executed uint64
	Stolen   uint64
	Queued   int
}

// NewFixed starts size workers and returns the pool.
func NewFixed(size int, opts ...Option) (*Fixed, error) {
	if size < 1 {
		return nil, ErrInvalidSize
	}
	o := buildOptions(opts)

	p := &Fixed{
		workers: make([]*localWorker, size),
		wake:    make(chan struct{}, size),
		done:    make(chan struct{}),
		onPanic: o.onPanic,
	}
	for i := range p.workers {
		p.workers[i] = &localWorker{id: i, queue: newDeque(o.queueCapacity)}
	}

	p.wg.Add(size)
	for _, w := range p.workers {
		go func(w *localWorker) {
			defer p.wg.Done()
			p.run(w)
		}(w)
	}
	return p, nil
}

// Submit places fn on a worker's local queue. It does not wait for a worker to become free.
func (p *Fixed) Submit(fn func()) error {
	p.closeMu.RLock()
	defer p.closeMu.RUnlock()
	if p.closed {
		return ErrClosed
	}

	idx := p.next.Add(1) % uint64(len(p.workers))
	p.workers[idx].queue.pushBack(fn)

	select {
	case p.wake <- struct{}{}:
	default:
		// every worker already has a pending token
	}
	return nil
}

// Size returns the number of workers.
func (p *Fixed) Size() int { return len(p.workers) }

// Queued returns the number of functions waiting in local queues.
func (p *Fixed) Queued() int {
	n := 0
	for _, w := range p.workers {
		n += w.queue.len()
	}
	return n
}

// Stats returns per-worker counters.
func (p *Fixed) Stats() []WorkerStats {
	stats := make([]WorkerStats, len(p.workers))
	for i, w := range p.workers {
		stats[i] = WorkerStats{
			ID:       w.id,
			Executed: w.executed.Load(),
			Stolen:   w.stolen.Load(),
			Queued:   w.queue.len(),
		}
	}
	return stats
}

// Close rejects further submissions, lets the workers run what is already queued and waits for them to exit.
// Safe for concurrent use; only the first call has an effect, every call waits.
func (p *Fixed) Close() {
	p.closeOnce.Do(func() {
		p.closeMu.Lock()
		p.closed = true
		p.closeMu.Unlock()
		close(p.done)
	})
	p.wg.Wait()
}

func (p *Fixed) run(w *localWorker) {
	for {
		if fn, ok := p.find(w); ok {
			execute(fn, p.onPanic)
			w.executed.Add(1)
			continue
		}

		select {
		case <-p.wake:
		case <-p.done:
			// Submit is rejected once done is closed, so an empty scan here is final.
			if fn, ok := p.find(w); ok {
				execute(fn, p.onPanic)
				w.executed.Add(1)
				continue
			}
			return
		}
	}
}

// find returns the next function for w: its own queue first, then a steal from a peer.
func (p *Fixed) find(w *localWorker) (func(), bool) {
	if fn, ok := w.queue.popFront(); ok {
		return fn, true
	}
	n := len(p.workers)
	for i := 1; i < n; i++ {
		victim := p.workers[(w.id+i)%n]
		if fn, ok := victim.queue.popBack(); ok {
			w.stolen.Add(1)
			return fn, true
		}
	}
	return nil, false
}
