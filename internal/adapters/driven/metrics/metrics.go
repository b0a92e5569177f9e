// Package metrics records pipeline metrics with Prometheus collectors and
// exports them in the node_exporter textfile format at the end of a run.
package metrics

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/custodia-labs/dvf-ingest/internal/core/ports/driven"
)

const namespace = "dvf_ingest"

// Ensure Metrics implements the interface.
var _ driven.PipelineMetrics = (*Metrics)(nil)

// Metrics holds the pipeline collectors.
type Metrics struct {
	// Counters
	StageRuns *prometheus.CounterVec
	Bytes     *prometheus.CounterVec

	// Gauges
	Rows        prometheus.Gauge
	Columns     prometheus.Gauge
	LastSuccess prometheus.Gauge

	// Histograms
	StageDuration *prometheus.HistogramVec

	registry *prometheus.Registry
	textfile string
	mu       sync.Mutex
}

// New creates a metrics instance. When textfile is empty Flush is a no-op.
func New(textfile string) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		textfile: textfile,
	}

	m.StageRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stage_runs_total",
			Help:      "Pipeline stage executions by outcome",
		},
		[]string{"stage", "status"}, // status: "success", "error"
	)

	m.Bytes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bytes_total",
			Help:      "Bytes transferred or written by stage",
		},
		[]string{"stage"},
	)

	m.Rows = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "rows",
			Help:      "Rows in the last exported table",
		},
	)

	m.Columns = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "columns",
			Help:      "Columns in the last exported table",
		},
	)

	m.LastSuccess = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last successful stage",
		},
	)

	m.StageDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Duration of pipeline stages",
			Buckets:   []float64{0.1, 0.5, 1, 5, 15, 30, 60, 120, 300, 600},
		},
		[]string{"stage"},
	)

	m.registry.MustRegister(
		m.StageRuns,
		m.Bytes,
		m.Rows,
		m.Columns,
		m.LastSuccess,
		m.StageDuration,
	)

	return m
}

// ObserveStage records the duration and outcome of one stage.
func (m *Metrics) ObserveStage(stage string, d time.Duration, err error) {
	m.StageDuration.WithLabelValues(stage).Observe(d.Seconds())
	if err != nil {
		m.StageRuns.WithLabelValues(stage, "error").Inc()
		return
	}
	m.StageRuns.WithLabelValues(stage, "success").Inc()
	m.LastSuccess.SetToCurrentTime()
}

// SetRows records the shape of the exported table.
func (m *Metrics) SetRows(rows, columns int) {
	m.Rows.Set(float64(rows))
	m.Columns.Set(float64(columns))
}

// AddBytes adds n bytes to the stage counter.
func (m *Metrics) AddBytes(stage string, n int64) {
	if n <= 0 {
		return
	}
	m.Bytes.WithLabelValues(stage).Add(float64(n))
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Flush writes all collectors to the textfile, atomically replacing it.
func (m *Metrics) Flush() error {
	if m.textfile == "" {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(m.textfile), 0o755); err != nil {
		return fmt.Errorf("creating metrics directory: %w", err)
	}
	if err := prometheus.WriteToTextfile(m.textfile, m.registry); err != nil {
		return fmt.Errorf("writing metrics textfile: %w", err)
	}
	return nil
}
