package greenthreads

import (
	"context"
	"errors"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"github.com/ygrebnov/errorc"

	"github.com/ygrebnov/greenthreads/pool"
)

// Scheduler submits tasks to a worker pool and tracks how many of them are still running.
// Methods are safe for concurrent use. A Scheduler must not be copied; share the pointer.
type Scheduler struct {
	// noCopy prevents accidental copying of the scheduler.
	//go:nocopy
	nc noCopy

	cfg     config
	pool    pool.Pool
	counter *inflight
	logger  zerolog.Logger
	inst    instruments

	closed    atomic.Bool
	lifecycle *lifecycleCoordinator
}

// noCopy is a vet-recognized marker to discourage copying types with this field embedded.
// It works with the "-copylocks" analyzer via the presence of Lock/Unlock methods.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// New creates a Scheduler and starts its workers.
// It fails with ErrInvalidConfig on bad options and with ErrPoolInit when the pool cannot be built.
func New(opts ...Option) (*Scheduler, error) {
	cfg, err := buildConfig(opts)
	if err != nil {
		return nil, err
	}

	p, err := newPool(&cfg)
	if err != nil {
		return nil, errorc.With(
			ErrPoolInit,
			errorc.String("workers", strconv.FormatUint(uint64(cfg.Workers), 10)),
			errorc.String("cause", err.Error()),
		)
	}

	s := &Scheduler{
		cfg:     cfg,
		pool:    p,
		counter: newInflight(),
		logger:  cfg.Logger.With().Str("component", Namespace).Logger(),
		inst:    newInstruments(cfg.Metrics),
	}
	s.lifecycle = newLifecycleCoordinator(
		func() { s.closed.Store(true) },
		s.AwaitAll,
		s.pool.Close,
		s.logClosed,
	)

	s.logger.Debug().
		Int("workers", p.Size()).
		Bool("dynamic", cfg.Dynamic).
		Stringer("wait", cfg.Wait).
		Msg("scheduler started")
	return s, nil
}

func buildConfig(opts []Option) (config, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return config{}, err
		}
	}
	if err := validateConfig(&cfg); err != nil {
		return config{}, err
	}
	return cfg, nil
}

func newPool(cfg *config) (pool.Pool, error) {
	if cfg.Dynamic {
		return pool.NewDynamic(), nil
	}
	return pool.NewFixed(int(cfg.Workers), pool.WithQueueCapacity(int(cfg.QueueCapacity)))
}

// Spawn hands t to the pool and returns without waiting for it to start.
//
// The in-flight counter is incremented before Spawn returns and decremented after t returns
// or panics. A panic is recovered and reported only to the configured PanicHandler, logger and metrics.
//
// Spawn fails with ErrNilTask for a nil t and with ErrSchedulerClosed after Close;
// in both cases the counter is left unchanged.
func (s *Scheduler) Spawn(t Task) error {
	if t == nil {
		return ErrNilTask
	}
	if s.closed.Load() {
		return ErrSchedulerClosed
	}

	s.counter.inc()
	s.inst.inflight.Add(1)
	if err := s.pool.Submit(func() { s.execute(t) }); err != nil {
		s.inst.inflight.Add(-1)
		s.counter.dec()
		if errors.Is(err, pool.ErrClosed) {
			return ErrSchedulerClosed
		}
		return err
	}
	s.inst.spawned.Add(1)
	return nil
}

// AwaitAll blocks until no spawned task is running or queued.
//
// It waits for the counter to be zero at the moment it looks, not for the tasks that existed when it
// was called: tasks spawned by other goroutines during the wait extend it. Concurrent callers unblock
// independently. The counter is not reset.
func (s *Scheduler) AwaitAll() {
	_ = s.AwaitAllContext(context.Background())
}

// AwaitAllContext is AwaitAll bounded by ctx. It returns ctx.Err() if ctx is done while tasks are still
// in flight; the tasks keep running.
func (s *Scheduler) AwaitAllContext(ctx context.Context) error {
	start := time.Now()
	err := awaitZero(ctx, s.counter, s.cfg.Wait, s.cfg.SpinLimit)
	s.inst.await.Record(time.Since(start).Seconds())
	return err
}

// AwaitAllTimeout is AwaitAll bounded by d. It returns context.DeadlineExceeded on timeout.
func (s *Scheduler) AwaitAllTimeout(d time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), d)
	defer cancel()
	return s.AwaitAllContext(ctx)
}

// WorkerCount returns the number of workers executing tasks in parallel. It is constant for
// the lifetime of the scheduler.
func (s *Scheduler) WorkerCount() int { return s.pool.Size() }

// InFlight returns the number of tasks spawned and not finished yet.
func (s *Scheduler) InFlight() int64 { return s.counter.load() }

func (s *Scheduler) logClosed() {
	ev := s.logger.Debug()
	if f, ok := s.pool.(*pool.Fixed); ok {
		var executed, stolen uint64
		for _, st := range f.Stats() {
			executed += st.Executed
			stolen += st.Stolen
		}
		ev = ev.Uint64("executed", executed).Uint64("stolen", stolen)
	}
	ev.Msg("scheduler closed")
}

// Close rejects new tasks, waits for the in-flight ones to finish and stops the workers.
// Idempotent and safe for concurrent use. Tasks that spawn further tasks during Close get ErrSchedulerClosed.
func (s *Scheduler) Close() {
	s.lifecycle.Close()
}
