package pool

import "testing"

func TestDeque_FrontBackAndGrow(t *testing.T) {
	d := newDeque(0)
	if c := len(d.buf); c != minDequeCapacity {
		t.Fatalf("initial capacity = %d, want %d", c, minDequeCapacity)
	}

	var order []int
	const n = minDequeCapacity*2 + 3
	for i := 0; i < n; i++ {
		d.pushBack(func() { order = append(order, i) })
	}
	if d.len() != n {
		t.Fatalf("len = %d, want %d", d.len(), n)
	}

	fn, ok := d.popFront()
	if !ok {
		t.Fatalf("popFront on non-empty deque returned false")
	}
	fn()
	fn, ok = d.popBack()
	if !ok {
		t.Fatalf("popBack on non-empty deque returned false")
	}
	fn()
	if len(order) != 2 || order[0] != 0 || order[1] != n-1 {
		t.Fatalf("order = %v, want [0 %d]", order, n-1)
	}

	if dropped := d.clear(); dropped != n-2 {
		t.Fatalf("clear dropped %d, want %d", dropped, n-2)
	}
	if _, ok := d.popFront(); ok {
		t.Fatalf("popFront on cleared deque returned true")
	}
	if _, ok := d.popBack(); ok {
		t.Fatalf("popBack on cleared deque returned true")
	}
}

func TestDeque_WrapAround(t *testing.T) {
	d := newDeque(minDequeCapacity)
	got := 0
	// Interleave pushes and pops so head walks around the ring several times.
	for round := 0; round < 5*minDequeCapacity; round++ {
		d.pushBack(func() { got++ })
		d.pushBack(func() { got++ })
		fn, _ := d.popFront()
		fn()
	}
	for {
		fn, ok := d.popFront()
		if !ok {
			break
		}
		fn()
	}
	if want := 10 * minDequeCapacity; got != want {
		t.Fatalf("executed %d, want %d", got, want)
	}
}
