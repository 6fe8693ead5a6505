package telemetry

import (
	"bytes"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveTick(t *testing.T) {
	m := New()
	m.ObserveTick("river")
	m.ObserveTick("river")
	m.ObserveTick("flood")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ticks.WithLabelValues("river")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ticks.WithLabelValues("flood")))
}

func TestObserveRun(t *testing.T) {
	m := New()
	m.ObserveRun("growth", OutcomeHalted, 5*time.Millisecond)
	m.ObserveRun("growth", OutcomeTruncated, time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.runs.WithLabelValues("growth", OutcomeHalted)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.runs.WithLabelValues("growth", OutcomeTruncated)))
	assert.Equal(t, 1, testutil.CollectAndCount(m.duration))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveTick("x")
		m.ObserveRun("x", OutcomeFailed, time.Second)
	})
}

func TestWriteText(t *testing.T) {
	m := New()
	m.ObserveTick("backtracker")
	m.ObserveRun("backtracker", OutcomeHalted, time.Millisecond)

	var buf bytes.Buffer
	require.NoError(t, m.WriteText(&buf))

	out := buf.String()
	assert.Contains(t, out, `markov_ticks_total{preset="backtracker"} 1`)
	assert.Contains(t, out, `markov_runs_total{outcome="halted",preset="backtracker"} 1`)
	assert.Contains(t, out, "# TYPE markov_run_duration_seconds histogram")
}
