package pool

type options struct {
	queueCapacity int
	onPanic       func(any)
}

// Option configures a pool.
type Option func(*options)

// WithQueueCapacity sets the initial capacity of each worker's local queue.
// Queues grow on demand; this only avoids early reallocations. Ignored by the dynamic pool.
func WithQueueCapacity(n int) Option {
	return func(o *options) { o.queueCapacity = n }
}

// WithPanicHandler makes workers recover panics escaping a submitted function and report them to fn.
// Without a handler a panic crashes the process, as it would on any goroutine.
func WithPanicHandler(fn func(any)) Option {
	return func(o *options) { o.onPanic = fn }
}

func buildOptions(opts []Option) options {
	o := options{queueCapacity: minDequeCapacity}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

func execute(fn func(), onPanic func(any)) {
	if onPanic != nil {
		defer func() {
			if r := recover(); r != nil {
				onPanic(r)
			}
		}()
	}
	fn()
}
