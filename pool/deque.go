package pool

import "sync"

const minDequeCapacity = 16

// deque is a growable ring buffer of functions guarded by a mutex.
// The owning worker takes from the front, thieves take from the back.
type deque struct {
	mu   sync.Mutex
	buf  []func()
	head int
	n    int
}

func newDeque(capacity int) *deque {
	if capacity < minDequeCapacity {
		capacity = minDequeCapacity
	}
	return &deque{buf: make([]func(), capacity)}
}

func (d *deque) pushBack(fn func()) {
	d.mu.Lock()
	if d.n == len(d.buf) {
		d.grow()
	}
	d.buf[(d.head+d.n)%len(d.buf)] = fn
	d.n++
	d.mu.Unlock()
}

func (d *deque) popFront() (func(), bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.n == 0 {
		return nil, false
	}
	fn := d.buf[d.head]
	d.buf[d.head] = nil
	d.head = (d.head + 1) % len(d.buf)
	d.n--
	return fn, true
}

func (d *deque) popBack() (func(), bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.n == 0 {
		return nil, false
	}
	i := (d.head + d.n - 1) % len(d.buf)
	fn := d.buf[i]
	d.buf[i] = nil
	d.n--
	return fn, true
}

func (d *deque) len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.n
}

// clear drops all queued functions so their captured state can be collected.
func (d *deque) clear() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	dropped := d.n
	for i := range d.buf {
		d.buf[i] = nil
	}
	d.head, d.n = 0, 0
	return dropped
}

// grow doubles the buffer. Must be called with mu held.
func (d *deque) grow() {
	buf := make([]func(), len(d.buf)*2)
	for i := 0; i < d.n; i++ {
		buf[i] = d.buf[(d.head+i)%len(d.buf)]
	}
	d.buf = buf
	d.head = 0
}
