package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"github.com/ygrebnov/errorc"

	"github.com/ygrebnov/greenthreads"
	"github.com/ygrebnov/greenthreads/internal/logx"
	"github.com/ygrebnov/greenthreads/internal/sequence"
	promprovider "github.com/ygrebnov/greenthreads/metrics/prometheus"
)

const (
	defaultTasks = 10_000
	defaultTerms = 1000
)

// ErrInvalidSettings is returned for settings greenbench cannot run with.
var ErrInvalidSettings = errors.New("greenbench: invalid settings")

// Settings configures one benchmark run.
type Settings struct {
	Tasks    int
	Terms    int
	Workers  uint
	Wait     greenthreads.WaitStrategy
	LogLevel string
	Metrics  bool
}

// Report summarizes one benchmark run.
type Report struct {
	Workers    int
	Spawned    int
	Parallel   time.Duration
	Sequential time.Duration
	// Samples holds the gathered prometheus samples by metric name, when metrics were enabled.
	Samples map[string]float64
}

func settingsFrom(v *viper.Viper) (Settings, error) {
	s := Settings{
		Tasks:    v.GetInt("tasks"),
		Terms:    v.GetInt("terms"),
		Workers:  v.GetUint("workers"),
		LogLevel: v.GetString("log.level"),
		Metrics:  v.GetBool("metrics"),
	}
	wait, err := greenthreads.ParseWaitStrategy(v.GetString("wait"))
	if err != nil {
		return Settings{}, err
	}
	s.Wait = wait
	return s, s.validate()
}

func (s Settings) validate() error {
	if s.Tasks < 0 {
		return errorc.With(ErrInvalidSettings, errorc.String("tasks", fmt.Sprint(s.Tasks)))
	}
	if s.Terms < 1 {
		return errorc.With(ErrInvalidSettings, errorc.String("terms", fmt.Sprint(s.Terms)))
	}
	if _, ok := logx.ParseLevel(s.LogLevel); !ok {
		return errorc.With(ErrInvalidSettings, errorc.String("log.level", s.LogLevel))
	}
	return nil
}

// Run spawns s.Tasks tasks computing s.Terms terms of the doubling sequence, waits for them,
// then repeats the work sequentially. Progress is logged to out.
func Run(ctx context.Context, s Settings, out io.Writer) (Report, error) {
	if err := s.validate(); err != nil {
		return Report{}, err
	}
	if ctx == nil {
		ctx = context.Background()
	}
	log := logx.NewConsole(out, s.LogLevel)

	opts := []greenthreads.Option{
		greenthreads.WithLogger(log),
		greenthreads.WithWaitStrategy(s.Wait),
	}
	if s.Workers > 0 {
		opts = append(opts, greenthreads.WithFixedPool(s.Workers))
	}

	var (
		reg      *prom.Registry
		provider *promprovider.Provider
	)
	if s.Metrics {
		reg = prom.NewRegistry()
		provider = promprovider.NewProvider(greenthreads.Namespace, reg)
		opts = append(opts, greenthreads.WithMetrics(provider))
	}

	sched, err := greenthreads.New(opts...)
	if err != nil {
		return Report{}, err
	}
	defer sched.Close()

	rep := Report{Workers: sched.WorkerCount()}

	start := time.Now()
	for i := 0; i < s.Tasks; i++ {
		if err := sched.Spawn(func() { _ = sequence.Doubling(s.Terms) }); err != nil {
			return rep, err
		}
		rep.Spawned++
	}
	if err := sched.AwaitAllContext(ctx); err != nil {
		return rep, err
	}
	rep.Parallel = time.Since(start)
	log.Info().
		Dur("elapsed", rep.Parallel).
		Int("workers", rep.Workers).
		Int("spawned", rep.Spawned).
		Msg("[Green Threads] took")

	start = time.Now()
	for i := 0; i < s.Tasks; i++ {
		if err := ctx.Err(); err != nil {
			return rep, err
		}
		_ = sequence.Doubling(s.Terms)
	}
	rep.Sequential = time.Since(start)
	log.Info().Dur("elapsed", rep.Sequential).Msg("[Normal] took")

	if s.Metrics {
		if err := provider.Err(); err != nil {
			return rep, err
		}
		rep.Samples, err = gather(reg)
		if err != nil {
			return rep, err
		}
		logSamples(log, rep.Samples)
	}
	return rep, nil
}

// gather flattens unlabeled samples: counters and gauges by value, histograms by sample count.
func gather(g prom.Gatherer) (map[string]float64, error) {
	families, err := g.Gather()
	if err != nil {
		return nil, err
	}
	samples := make(map[string]float64, len(families))
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			samples[mf.GetName()] = sampleValue(mf.GetType(), m)
		}
	}
	return samples, nil
}

func sampleValue(t dto.MetricType, m *dto.Metric) float64 {
	switch t {
	case dto.MetricType_COUNTER:
		return m.GetCounter().GetValue()
	case dto.MetricType_GAUGE:
		return m.GetGauge().GetValue()
	case dto.MetricType_HISTOGRAM:
		return float64(m.GetHistogram().GetSampleCount())
	default:
		return m.GetUntyped().GetValue()
	}
}

func logSamples(log zerolog.Logger, samples map[string]float64) {
	names := make([]string, 0, len(samples))
	for name := range samples {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		log.Info().Str("metric", name).Float64("value", samples[name]).Msg("sample")
	}
}
