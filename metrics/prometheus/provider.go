// Package prometheus exposes scheduler metrics through Prometheus collectors.
package prometheus

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	prom "github.com/prometheus/client_golang/prometheus"

	"github.com/ygrebnov/greenthreads/metrics"
)

// Provider implements metrics.Provider on top of a prometheus.Registerer.
// Counters map to prometheus counters, up/down counters to gauges, histograms to histograms.
type Provider struct {
	namespace string
	reg       prom.Registerer
	buckets   []float64

	mu         sync.Mutex
	counters   map[string]prom.Counter
	gauges     map[string]prom.Gauge
	histograms map[string]prom.Histogram
	err        error
}

var _ metrics.Provider = (*Provider)(nil)

// Option configures a Provider.
type Option func(*Provider)

// WithBuckets overrides the histogram buckets (prometheus.DefBuckets by default).
func WithBuckets(buckets []float64) Option {
	return func(p *Provider) { p.buckets = buckets }
}

// NewProvider returns a Provider registering its collectors on reg (prometheus.DefaultRegisterer when nil).
// Instrument names are prefixed with namespace when it is not empty and the name does not already carry it.
func NewProvider(namespace string, reg prom.Registerer, opts ...Option) *Provider {
	if reg == nil {
		reg = prom.DefaultRegisterer
	}
	p := &Provider{
		namespace:  namespace,
		reg:        reg,
		buckets:    prom.DefBuckets,
		counters:   map[string]prom.Counter{},
		gauges:     map[string]prom.Gauge{},
		histograms: map[string]prom.Histogram{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	return p
}

// Err returns the first registration error met, if any. Instruments that failed to register
// still record values; they are just not exported.
func (p *Provider) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}

func (p *Provider) Counter(name string, opts ...metrics.InstrumentOption) metrics.Counter {
	p.mu.Lock()
	defer p.mu.Unlock()
	if c, ok := p.counters[name]; ok {
		return counter{c}
	}
	cfg := metrics.ApplyOptions(opts)
	c := register(p, prom.NewCounter(prom.CounterOpts{
		Name: p.fqName(name),
		Help: help(name, cfg),
	}))
	p.counters[name] = c
	return counter{c}
}

func (p *Provider) UpDownCounter(name string, opts ...metrics.InstrumentOption) metrics.UpDownCounter {
	p.mu.Lock()
	defer p.mu.Unlock()
	if g, ok := p.gauges[name]; ok {
		return gauge{g}
	}
	cfg := metrics.ApplyOptions(opts)
	g := register(p, prom.NewGauge(prom.GaugeOpts{
		Name: p.fqName(name),
		Help: help(name, cfg),
	}))
	p.gauges[name] = g
	return gauge{g}
}

func (p *Provider) Histogram(name string, opts ...metrics.InstrumentOption) metrics.Histogram {
	p.mu.Lock()
	defer p.mu.Unlock()
	if h, ok := p.histograms[name]; ok {
		return histogram{h}
	}
	cfg := metrics.ApplyOptions(opts)
	h := register(p, prom.NewHistogram(prom.HistogramOpts{
		Name:    p.fqName(name),
		Help:    help(name, cfg),
		Buckets: p.buckets,
	}))
	p.histograms[name] = h
	return histogram{h}
}

func (p *Provider) fqName(name string) string {
	if p.namespace == "" || strings.HasPrefix(name, p.namespace+"_") {
		return name
	}
	return p.namespace + "_" + name
}

func help(name string, cfg metrics.InstrumentConfig) string {
	if cfg.Description != "" {
		return cfg.Description
	}
	return strings.ReplaceAll(name, "_", " ")
}

// register registers collector, reusing an identical collector registered earlier.
// Must be called with p.mu held.
func register[T prom.Collector](p *Provider, collector T) T {
	err := p.reg.Register(collector)
	if err == nil {
		return collector
	}

	var are prom.AlreadyRegisteredError
	if errors.As(err, &are) {
		if existing, ok := are.ExistingCollector.(T); ok {
			return existing
		}
		err = fmt.Errorf("collector type mismatch for %T", collector)
	}
	if p.err == nil {
		p.err = err
	}
	return collector
}

type counter struct{ c prom.Counter }

// Add ignores negative increments, which prometheus counters reject with a panic.
func (c counter) Add(n int64) {
	if n > 0 {
		c.c.Add(float64(n))
	}
}

type gauge struct{ g prom.Gauge }

func (g gauge) Add(n int64) { g.g.Add(float64(n)) }

type histogram struct{ h prom.Histogram }

func (h histogram) Record(v float64) { h.h.Observe(v) }
