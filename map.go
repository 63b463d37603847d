package greenthreads

import (
	"context"
	"errors"
)

// Map runs fn for every item on s and returns the results in input order.
//
// Semantics:
// - Every item becomes one task; all of them are spawned before Map starts waiting.
// - The returned error is errors.Join of all item errors (nil if none failed). A failed item leaves
//   the zero value of R at its index.
// - If ctx is done before all items finish, Map returns what it has joined with ctx.Err().
//   Tasks cannot be cancelled; fn may watch ctx itself to stop early.
func Map[T, R any](
	ctx context.Context,
	s *Scheduler,
	items []T,
	fn func(context.Context, T) (R, error),
) ([]R, error) {
	if len(items) == 0 {
		return nil, nil
	}

	futures := make([]*Future[R], len(items))
	for i := range items {
		item := items[i]
		futures[i] = Go(s, func() (R, error) { return fn(ctx, item) })
	}

	results := make([]R, len(items))
	errs := make([]error, 0, len(items))
	for i, f := range futures {
		r, err := f.Wait(ctx)
		if err != nil {
			errs = append(errs, err)
			if ctx.Err() != nil {
				break
			}
			continue
		}
		results[i] = r
	}
	return results, errors.Join(errs...)
}
