package greenthreads

import (
	"os"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/ygrebnov/errorc"
)

// EnvWorkers overrides the worker count of the default scheduler.
const EnvWorkers = "GREENTHREADS_WORKERS"

var (
	defaultMu        sync.Mutex
	defaultScheduler atomic.Pointer[Scheduler]
)

// Init creates the process-wide default scheduler with opts.
// It must run before the first use of Default or of the package-level helpers, otherwise it
// returns ErrAlreadyInitialized. EnvWorkers is applied before opts.
func Init(opts ...Option) error {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	if defaultScheduler.Load() != nil {
		return ErrAlreadyInitialized
	}
	s, err := New(append([]Option{workersFromEnv()}, opts...)...)
	if err != nil {
		return err
	}
	defaultScheduler.Store(s)
	return nil
}

// Default returns the process-wide scheduler, creating it with defaults on first use.
// The default scheduler lives as long as the process and is never closed.
// It panics if the scheduler cannot be created: no task could ever run without it.
func Default() *Scheduler {
	if s := defaultScheduler.Load(); s != nil {
		return s
	}

	defaultMu.Lock()
	defer defaultMu.Unlock()
	if s := defaultScheduler.Load(); s != nil {
		return s
	}
	s, err := New(workersFromEnv())
	if err != nil {
		panic(err)
	}
	defaultScheduler.Store(s)
	return s
}

// Spawn submits t to the default scheduler. See Scheduler.Spawn.
func Spawn(t Task) error { return Default().Spawn(t) }

// AwaitAll blocks until every task spawned on the default scheduler has finished. See Scheduler.AwaitAll.
func AwaitAll() { Default().AwaitAll() }

// WorkerCount returns the worker count of the default scheduler.
func WorkerCount() int { return Default().WorkerCount() }

// workersFromEnv returns an option applying EnvWorkers, or a no-op when it is unset.
func workersFromEnv() Option {
	v, ok := os.LookupEnv(EnvWorkers)
	if !ok || v == "" {
		return nil
	}
	return func(cfg *config) error {
		n, err := strconv.ParseUint(v, 10, 0)
		if err != nil || n == 0 {
			return errorc.With(ErrInvalidConfig, errorc.String(EnvWorkers, v))
		}
		cfg.Workers = uint(n)
		return nil
	}
}
