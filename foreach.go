package greenthreads

import "context"

// ForEach applies fn to each item concurrently on s and returns the joined errors, or nil when all succeed.
// It is Map without results.
func ForEach[T any](ctx context.Context, s *Scheduler, items []T, fn func(context.Context, T) error) error {
	_, err := Map(ctx, s, items, func(c context.Context, item T) (struct{}, error) {
		return struct{}{}, fn(c, item)
	})
	return err
}
