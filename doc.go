// Package greenthreads runs short-lived functions ("green threads") on a shared pool of worker
// goroutines and lets callers block until all outstanding work has drained.
//
// Green threads here are plain closures dispatched onto a pool, not coroutines: there is no
// yielding, no cancellation of in-flight work, and no ordering between tasks.
//
// Scheduler
//   - Spawn(task): increments the in-flight counter and hands the task to the pool. Never waits
//     for a free worker.
//   - AwaitAll(): blocks until the in-flight counter reads zero. Tasks spawned by other goroutines
//     while it waits extend the wait.
//   - WorkerCount(): number of workers, fixed for the scheduler's lifetime.
//
// Construct a Scheduler with New and share the pointer, or use the process-wide scheduler through
// Default and the package-level Spawn, AwaitAll and WorkerCount. Init configures the process-wide
// scheduler explicitly and must run before its first use.
//
// Defaults
// Unless overridden, the following defaults apply:
//   - Pool: work-stealing, runtime.GOMAXPROCS(0) workers (GREENTHREADS_WORKERS for the default scheduler)
//   - Wait strategy: WaitAdaptive, spinning for 128 polls before parking
//   - Local queue capacity: 256, growing on demand
//   - Logger: zerolog.Nop()
//   - Metrics: metrics.Noop{}
//
// Pools
//   - Fixed (default): one local queue per worker; idle workers steal from their peers.
//   - Dynamic: a goroutine per task, distribution left to the Go runtime.
//
// Failures
// A panicking task is recovered so that its in-flight slot is always released. The panic is not
// returned to anyone; it is passed to the PanicHandler, logged at error level and counted.
// Tasks that need to report results or errors can be run through Go, which returns a Future.
package greenthreads
