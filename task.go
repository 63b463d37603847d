package greenthreads

import (
	"runtime/debug"
	"time"

	"github.com/ygrebnov/greenthreads/metrics"
)

// Task is a unit of work executed once on an arbitrary worker.
// It takes no arguments and returns nothing; results, if any, travel through the task's own side effects.
// Everything a Task captures is owned by the executing worker until the Task returns.
type Task func()

type instruments struct {
	spawned   metrics.Counter
	completed metrics.Counter
	panicked  metrics.Counter
	inflight  metrics.UpDownCounter
	duration  metrics.Histogram
	await     metrics.Histogram
}

func newInstruments(p metrics.Provider) instruments {
	return instruments{
		spawned:   p.Counter(metrics.TasksSpawned, metrics.WithDescription("Tasks handed to the pool.")),
		completed: p.Counter(metrics.TasksComplete, metrics.WithDescription("Tasks that returned or panicked.")),
		panicked:  p.Counter(metrics.TasksPanicked, metrics.WithDescription("Tasks that panicked.")),
		inflight: p.UpDownCounter(metrics.TasksInFlight,
			metrics.WithDescription("Tasks spawned and not finished yet.")),
		duration: p.Histogram(metrics.TaskDuration,
			metrics.WithDescription("Task execution time."), metrics.WithUnit("seconds")),
		await: p.Histogram(metrics.AwaitDuration,
			metrics.WithDescription("Time spent in AwaitAll."), metrics.WithUnit("seconds")),
	}
}

// execute runs t on the current worker and releases its in-flight slot however t ends.
func (s *Scheduler) execute(t Task) {
	defer s.counter.dec()

	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			s.recovered(r)
		}
		s.inst.duration.Record(time.Since(start).Seconds())
		s.inst.completed.Add(1)
		s.inst.inflight.Add(-1)
	}()

	t()
}

// recovered reports a task panic through the optional side channels. Submitters never see it.
func (s *Scheduler) recovered(r any) {
	s.inst.panicked.Add(1)
	s.logger.Error().
		Interface("panic", r).
		Str("stack", string(debug.Stack())).
		Msg("task panicked")
	if s.cfg.PanicHandler != nil {
		s.cfg.PanicHandler(r)
	}
}
