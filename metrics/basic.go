package metrics

import (
	"sort"
	"sync"
	"sync/atomic"
)

// Basic is an in-memory Provider. It is safe for concurrent use and is meant for tests,
// examples and command-line tools that print a summary at exit.
type Basic struct {
	counters   *registry[*BasicCounter]
	updowns    *registry[*BasicUpDownCounter]
	histograms *registry[*BasicHistogram]
}

// NewBasic constructs an empty Basic provider.
func NewBasic() *Basic {
	return &Basic{
		counters:   newRegistry(func() *BasicCounter { return &BasicCounter{} }),
		updowns:    newRegistry(func() *BasicUpDownCounter { return &BasicUpDownCounter{} }),
		histograms: newRegistry(func() *BasicHistogram { return &BasicHistogram{} }),
	}
}

// Counter returns the counter registered under name. Instrument options are ignored.
func (p *Basic) Counter(name string, _ ...InstrumentOption) Counter {
	return p.counters.get(name)
}

func (p *Basic) UpDownCounter(name string, _ ...InstrumentOption) UpDownCounter {
	return p.updowns.get(name)
}

func (p *Basic) Histogram(name string, _ ...InstrumentOption) Histogram {
	return p.histograms.get(name)
}

// Snapshot is a point-in-time copy of every instrument held by a Basic provider.
type Snapshot struct {
	Counters   map[string]int64
	UpDowns    map[string]int64
	Histograms map[string]HistSnapshot
}

// Names returns all instrument names in the snapshot, sorted.
func (s Snapshot) Names() []string {
	names := make([]string, 0, len(s.Counters)+len(s.UpDowns)+len(s.Histograms))
	for n := range s.Counters {
		names = append(names, n)
	}
	for n := range s.UpDowns {
		names = append(names, n)
	}
	for n := range s.Histograms {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Snapshot copies the current value of every instrument.
func (p *Basic) Snapshot() Snapshot {
	s := Snapshot{
		Counters:   map[string]int64{},
		UpDowns:    map[string]int64{},
		Histograms: map[string]HistSnapshot{},
	}
	p.counters.each(func(name string, c *BasicCounter) { s.Counters[name] = c.Snapshot() })
	p.updowns.each(func(name string, u *BasicUpDownCounter) { s.UpDowns[name] = u.Snapshot() })
	p.histograms.each(func(name string, h *BasicHistogram) { s.Histograms[name] = h.Snapshot() })
	return s
}

// registry creates instruments of one kind on demand and reuses them by name.
type registry[T any] struct {
	mu    sync.RWMutex
	items map[string]T
	newFn func() T
}

func newRegistry[T any](newFn func() T) *registry[T] {
	return &registry[T]{items: map[string]T{}, newFn: newFn}
}

func (r *registry[T]) get(name string) T {
	r.mu.RLock()
	it, ok := r.items[name]
	r.mu.RUnlock()
	if ok {
		return it
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if it, ok = r.items[name]; ok {
		return it
	}
	it = r.newFn()
	r.items[name] = it
	return it
}

func (r *registry[T]) each(fn func(string, T)) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for name, it := range r.items {
		fn(name, it)
	}
}

// BasicCounter is a concurrency-safe monotonic counter.
type BasicCounter struct{ val atomic.Int64 }

func (c *BasicCounter) Add(n int64)     { c.val.Add(n) }
func (c *BasicCounter) Snapshot() int64 { return c.val.Load() }

// BasicUpDownCounter is a concurrency-safe up/down counter.
type BasicUpDownCounter struct{ val atomic.Int64 }

func (u *BasicUpDownCounter) Add(n int64)     { u.val.Add(n) }
func (u *BasicUpDownCounter) Snapshot() int64 { return u.val.Load() }

// BasicHistogram tracks count, sum, min and max. It keeps no buckets.
type BasicHistogram struct {
	mu    sync.Mutex
	count int64
	sum   float64
	min   float64
	max   float64
}

func (h *BasicHistogram) Record(v float64) {
	h.mu.Lock()
	if h.count == 0 || v < h.min {
		h.min = v
	}
	if h.count == 0 || v > h.max {
		h.max = v
	}
	h.count++
	h.sum += v
	h.mu.Unlock()
}

// HistSnapshot is an immutable copy of a BasicHistogram.
type HistSnapshot struct {
	Count int64
	Sum   float64
	Min   float64
	Max   float64
	Mean  float64
}

func (h *BasicHistogram) Snapshot() HistSnapshot {
	h.mu.Lock()
	s := HistSnapshot{Count: h.count, Sum: h.sum, Min: h.min, Max: h.max}
	h.mu.Unlock()
	if s.Count > 0 {
		s.Mean = s.Sum / float64(s.Count)
	}
	return s
}
