package metrics

// Instrument names recorded by the scheduler.
const (
	TasksSpawned  = "greenthreads_tasks_spawned_total"
	TasksComplete = "greenthreads_tasks_completed_total"
	TasksPanicked = "greenthreads_tasks_panicked_total"
	TasksInFlight = "greenthreads_tasks_inflight"
	TaskDuration  = "greenthreads_task_duration_seconds"
	AwaitDuration = "greenthreads_await_duration_seconds"
)

// Provider constructs instruments used to record metrics.
// Implementations must be safe for concurrent use and return the same instrument for the same name.
type Provider interface {
	Counter(name string, opts ...InstrumentOption) Counter
	UpDownCounter(name string, opts ...InstrumentOption) UpDownCounter
	Histogram(name string, opts ...InstrumentOption) Histogram
}

// Counter records monotonic counts.
type Counter interface {
	Add(n int64)
}

// UpDownCounter records a value that moves both ways, such as tasks in flight.
type UpDownCounter interface {
	Add(n int64)
}

// Histogram records a distribution of float64 measurements, durations in seconds by convention.
type Histogram interface {
	Record(v float64)
}

// InstrumentConfig carries advisory instrument metadata.
type InstrumentConfig struct {
	Description string
	Unit        string
}

// InstrumentOption mutates InstrumentConfig.
type InstrumentOption func(*InstrumentConfig)

// WithDescription sets the help text of the instrument.
func WithDescription(desc string) InstrumentOption {
	return func(c *InstrumentConfig) { c.Description = desc }
}

// WithUnit sets the unit of the instrument, e.g. "1" or "seconds".
func WithUnit(unit string) InstrumentOption {
	return func(c *InstrumentConfig) { c.Unit = unit }
}

// ApplyOptions folds opts into an InstrumentConfig. Nil options are skipped.
func ApplyOptions(opts []InstrumentOption) InstrumentConfig {
	var cfg InstrumentConfig
	for _, o := range opts {
		if o != nil {
			o(&cfg)
		}
	}
	return cfg
}
