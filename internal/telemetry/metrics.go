// Package telemetry counts interpreter work with Prometheus collectors held
// in a private registry, so tests and CLI runs never touch the global one.
package telemetry

import (
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// Outcome labels for finished runs.
const (
	OutcomeHalted    = "halted"
	OutcomeTruncated = "truncated"
	OutcomeCancelled = "cancelled"
	OutcomeFailed    = "failed"
)

// Metrics bundles the collectors recorded by the runner.
type Metrics struct {
	registry *prometheus.Registry
	ticks    *prometheus.CounterVec
	runs     *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// New registers a fresh set of collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		ticks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "markov_ticks_total",
				Help: "Successful interpreter ticks.",
			},
			[]string{"preset"},
		),
		runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "markov_runs_total",
				Help: "Finished runs by outcome.",
			},
			[]string{"preset", "outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "markov_run_duration_seconds",
				Help:    "Wall time of finished runs.",
				Buckets: prometheus.ExponentialBuckets(0.001, 4, 8),
			},
			[]string{"preset"},
		),
	}
	m.registry.MustRegister(m.ticks, m.runs, m.duration)
	return m
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveTick counts one successful tick. A nil receiver is a no-op.
func (m *Metrics) ObserveTick(preset string) {
	if m == nil {
		return
	}
	m.ticks.WithLabelValues(preset).Inc()
}

// ObserveRun records a finished run.
func (m *Metrics) ObserveRun(preset, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.runs.WithLabelValues(preset, outcome).Inc()
	m.duration.WithLabelValues(preset).Observe(elapsed.Seconds())
}

// WriteText dumps every gathered family in the Prometheus text format.
func (m *Metrics) WriteText(w io.Writer) error {
	families, err := m.registry.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
