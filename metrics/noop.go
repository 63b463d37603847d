package metrics

// Noop discards all measurements. It is the scheduler's default provider.
type Noop struct{}

func (Noop) Counter(string, ...InstrumentOption) Counter             { return noopInstrument{} }
func (Noop) UpDownCounter(string, ...InstrumentOption) UpDownCounter { return noopInstrument{} }
func (Noop) Histogram(string, ...InstrumentOption) Histogram         { return noopInstrument{} }

type noopInstrument struct{}

func (noopInstrument) Add(int64)      {}
func (noopInstrument) Record(float64) {}
