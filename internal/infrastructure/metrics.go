package infrastructure

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "hdi_report"

// RunMetrics collects per-run counters and gauges on a private registry.
// They are written once at the end of a run in the node_exporter textfile format.
type RunMetrics struct {
	registry *prometheus.Registry

	rowsLoaded       prometheus.Gauge
	stageDuration    *prometheus.GaugeVec
	outputsWritten   *prometheus.CounterVec
	exportFailures   *prometheus.CounterVec
	insufficientData prometheus.Counter
	lastSuccess      prometheus.Gauge
}

// NewRunMetrics creates and registers the run collectors
func NewRunMetrics() *RunMetrics {
	m := &RunMetrics{
		registry: prometheus.NewRegistry(),
		rowsLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "rows_loaded",
			Help:      "Rows read from the input table.",
		}),
		stageDuration: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "stage_duration_seconds",
			Help:      "Wall time of each pipeline stage.",
		}, []string{"stage"}),
		outputsWritten: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "outputs_written_total",
			Help:      "Outputs written, by sink.",
		}, []string{"sink"}),
		exportFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "export_failures_total",
			Help:      "Outputs that failed to write, by sink.",
		}, []string{"sink"}),
		insufficientData: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "insufficient_data_total",
			Help:      "Statistics omitted for lack of data.",
		}),
		lastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last run that produced a bundle.",
		}),
	}

	m.registry.MustRegister(
		m.rowsLoaded,
		m.stageDuration,
		m.outputsWritten,
		m.exportFailures,
		m.insufficientData,
		m.lastSuccess,
	)
	return m
}

// Registry exposes the underlying registry
func (m *RunMetrics) Registry() *prometheus.Registry {
	return m.registry
}

// SetRowsLoaded records the input size
func (m *RunMetrics) SetRowsLoaded(n int) {
	m.rowsLoaded.Set(float64(n))
}

// ObserveStage records how long a stage took
func (m *RunMetrics) ObserveStage(stage string, d time.Duration) {
	m.stageDuration.WithLabelValues(stage).Set(d.Seconds())
}

// OutputWritten counts a successful output for sink
func (m *RunMetrics) OutputWritten(sink string) {
	m.outputsWritten.WithLabelValues(sink).Inc()
}

// ExportFailed counts a failed output for sink
func (m *RunMetrics) ExportFailed(sink string) {
	m.exportFailures.WithLabelValues(sink).Inc()
}

// AddInsufficientData counts omitted statistics
func (m *RunMetrics) AddInsufficientData(n int) {
	m.insufficientData.Add(float64(n))
}

// MarkSuccess stamps the time of a successful run
func (m *RunMetrics) MarkSuccess(t time.Time) {
	m.lastSuccess.Set(float64(t.Unix()))
}

// WriteTextfile writes all collected metrics to path
func (m *RunMetrics) WriteTextfile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create metrics directory: %w", err)
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}
