package greenthreads

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Future is the result slot of a function run through Go.
type Future[R any] struct {
	id   uuid.UUID
	done chan struct{}
	res  R
	err  error
}

// Go spawns fn on s and returns a Future receiving its result.
//
// Errors returned by fn, a panic inside fn (as ErrTaskPanicked) and a failure to spawn are all
// delivered through the Future and carry its ID (see ExtractTaskID). A panic converted here does
// not reach the scheduler's PanicHandler.
func Go[R any](s *Scheduler, fn func() (R, error)) *Future[R] {
	f := &Future[R]{id: uuid.New(), done: make(chan struct{})}
	if fn == nil {
		f.fail(ErrNilTask)
		return f
	}

	err := s.Spawn(func() {
		defer close(f.done)
		defer func() {
			if r := recover(); r != nil {
				f.err = newTaskTaggedError(fmt.Errorf("%w: %v", ErrTaskPanicked, r), f.id)
			}
		}()
		res, err := fn()
		f.res, f.err = res, newTaskTaggedError(err, f.id)
	})
	if err != nil {
		f.fail(err)
	}
	return f
}

func (f *Future[R]) fail(err error) {
	f.err = newTaskTaggedError(err, f.id)
	close(f.done)
}

// ID identifies the future in tagged errors.
func (f *Future[R]) ID() uuid.UUID { return f.id }

// Done is closed once the result is available.
func (f *Future[R]) Done() <-chan struct{} { return f.done }

// Wait blocks until the result is available or ctx is done.
func (f *Future[R]) Wait(ctx context.Context) (R, error) {
	select {
	case <-f.done:
		return f.res, f.err
	case <-ctx.Done():
		var zero R
		return zero, ctx.Err()
	}
}
