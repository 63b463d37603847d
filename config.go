package greenthreads

import (
	"runtime"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/ygrebnov/errorc"

	"github.com/ygrebnov/greenthreads/metrics"
)

// config holds Scheduler configuration.
type config struct {
	// Workers defines the size of the work-stealing pool.
	// Default: runtime.GOMAXPROCS(0), the hardware parallelism available to the process.
	Workers uint

	// Dynamic replaces the work-stealing pool with a goroutine per task.
	// Default: false
	Dynamic bool

	// Wait selects how AwaitAll waits for the in-flight counter to reach zero.
	// Default: WaitAdaptive
	Wait WaitStrategy

	// SpinLimit is the number of polls WaitAdaptive performs before parking.
	// Default: 128
	SpinLimit uint

	// QueueCapacity is the initial capacity of each worker's local queue. Queues grow on demand.
	// Default: 256
	QueueCapacity uint

	// Logger receives pool lifecycle and recovered panic events.
	// Default: zerolog.Nop()
	Logger zerolog.Logger

	// Metrics receives scheduler instruments.
	// Default: metrics.Noop{}
	Metrics metrics.Provider

	// PanicHandler is called with the recovered value of a panicking task.
	// Default: nil
	PanicHandler func(any)

	poolSelected poolType
}

type poolType int

const (
	poolUnspecified poolType = iota
	poolFixed
	poolDynamic
)

// defaultConfig centralizes default values for config.
func defaultConfig() config {
	return config{
		Workers:       uint(runtime.GOMAXPROCS(0)),
		Dynamic:       false,
		Wait:          WaitAdaptive,
		SpinLimit:     128,
		QueueCapacity: 256,
		Logger:        zerolog.Nop(),
		Metrics:       metrics.Noop{},
	}
}

// validateConfig checks invariants options cannot enforce one by one.
func validateConfig(cfg *config) error {
	if !cfg.Dynamic && cfg.Workers == 0 {
		return errorc.With(ErrInvalidConfig, errorc.String("workers", "0"))
	}
	if !cfg.Wait.valid() {
		return errorc.With(ErrUnknownWaitStrategy, errorc.String("wait", strconv.Itoa(int(cfg.Wait))))
	}
	if cfg.Metrics == nil {
		return errorc.With(ErrInvalidConfig, errorc.String("metrics", "nil provider"))
	}
	return nil
}

// Option configures a Scheduler. Use New(opts...) or Init(opts...) to apply options.
type Option func(*config) error

// WithFixedPool selects the work-stealing pool with n workers (must be > 0).
func WithFixedPool(n uint) Option {
	return func(cfg *config) error {
		if cfg.poolSelected == poolDynamic {
			return errorc.With(ErrInvalidConfig, errorc.String("", "WithFixedPool conflicts with WithDynamicPool"))
		}
		if n == 0 {
			return errorc.With(ErrInvalidConfig, errorc.String("", "WithFixedPool requires n > 0"))
		}
		cfg.poolSelected = poolFixed
		cfg.Workers = n
		cfg.Dynamic = false
		return nil
	}
}

// WithDynamicPool runs every task on its own goroutine instead of the work-stealing pool.
func WithDynamicPool() Option {
	return func(cfg *config) error {
		if cfg.poolSelected == poolFixed {
			return errorc.With(ErrInvalidConfig, errorc.String("", "WithDynamicPool conflicts with WithFixedPool"))
		}
		cfg.poolSelected = poolDynamic
		cfg.Dynamic = true
		return nil
	}
}

// WithWaitStrategy selects how AwaitAll waits.
func WithWaitStrategy(s WaitStrategy) Option {
	return func(cfg *config) error {
		if !s.valid() {
			return errorc.With(ErrUnknownWaitStrategy, errorc.String("wait", strconv.Itoa(int(s))))
		}
		cfg.Wait = s
		return nil
	}
}

// WithSpinLimit sets how many polls WaitAdaptive performs before parking (default 128).
// Zero parks immediately.
func WithSpinLimit(n uint) Option {
	return func(cfg *config) error { cfg.SpinLimit = n; return nil }
}

// WithQueueCapacity sets the initial capacity of each worker's local queue (default 256).
func WithQueueCapacity(n uint) Option {
	return func(cfg *config) error { cfg.QueueCapacity = n; return nil }
}

// WithLogger sets the logger for pool lifecycle and recovered panic events.
func WithLogger(l zerolog.Logger) Option {
	return func(cfg *config) error { cfg.Logger = l; return nil }
}

// WithMetrics sets the metrics provider.
func WithMetrics(p metrics.Provider) Option {
	return func(cfg *config) error {
		if p == nil {
			return errorc.With(ErrInvalidConfig, errorc.String("", "WithMetrics requires a non-nil provider"))
		}
		cfg.Metrics = p
		return nil
	}
}

// WithPanicHandler registers fn to be called with the value recovered from a panicking task.
// fn runs on the worker that executed the task, before the task is counted as finished.
func WithPanicHandler(fn func(any)) Option {
	return func(cfg *config) error { cfg.PanicHandler = fn; return nil }
}
