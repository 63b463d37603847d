package pool

import "errors"

var (
	ErrClosed      = errors.New("pool: closed")
	ErrInvalidSize = errors.New("pool: size must be > 0")
)

// Pool is an interface that defines methods on a pool of goroutines executing submitted functions.
type Pool interface {
	// Submit hands fn over for asynchronous execution. It never waits for a free worker.
	Submit(fn func()) error

	// Size returns the number of goroutines executing functions in parallel.
	Size() int

	// Close rejects further submissions and waits for the functions already handed over to return.
	Close()
}
