// Package metrics defines the metrics surface of the scan orchestrator.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ScannerMetrics defines metrics operations needed by the scan orchestrator.
type ScannerMetrics interface {
	// Discovery metrics.
	AddFilesDiscovered(n int)

	// Per-file outcome metrics.
	IncFilesFlagged()
	IncExtractionFailures()
	AddFilesAbandoned(n int)

	// TrackScanTask runs f and records its duration and in-flight state.
	TrackScanTask(f func() error) error
}

// Metrics implements ScannerMetrics on prometheus collectors.
type Metrics struct {
	FilesDiscovered    prometheus.Counter
	FilesFlagged       prometheus.Counter
	ExtractionFailures prometheus.Counter
	FilesAbandoned     prometheus.Counter
	ActiveTasks        prometheus.Gauge
	TaskProcessTime    prometheus.Histogram
}

var _ ScannerMetrics = (*Metrics)(nil)

func (m *Metrics) AddFilesDiscovered(n int) { m.FilesDiscovered.Add(float64(n)) }

func (m *Metrics) IncFilesFlagged() { m.FilesFlagged.Inc() }

func (m *Metrics) IncExtractionFailures() { m.ExtractionFailures.Inc() }

func (m *Metrics) AddFilesAbandoned(n int) { m.FilesAbandoned.Add(float64(n)) }

// TrackScanTask tracks the duration of one file task and updates the metrics.
func (m *Metrics) TrackScanTask(f func() error) error {
	m.ActiveTasks.Inc()
	defer m.ActiveTasks.Dec()

	start := time.Now()
	err := f()
	m.TaskProcessTime.Observe(time.Since(start).Seconds())
	return err
}

// New creates a new Metrics instance with registered metrics.
func New(namespace string) *Metrics {
	return &Metrics{
		FilesDiscovered: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "files_discovered_total",
			Help:      "Total number of files discovered by the directory walker",
		}),
		FilesFlagged: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "files_flagged_total",
			Help:      "Total number of files flagged for containing PII",
		}),
		ExtractionFailures: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "extraction_failures_total",
			Help:      "Total number of files whose content extraction failed",
		}),
		FilesAbandoned: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "files_abandoned_total",
			Help:      "Total number of files abandoned by the global scan deadline",
		}),
		ActiveTasks: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_tasks",
			Help:      "Number of file tasks currently being processed",
		}),
		TaskProcessTime: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "task_process_duration_seconds",
			Help:      "Time taken to extract and detect over each file",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 16),
		}),
	}
}

// StartServer starts the metrics HTTP server.
func StartServer(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return http.ListenAndServe(addr, mux)
}
