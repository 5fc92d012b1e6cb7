// Package metrics records seeding run statistics in a private Prometheus
// registry and writes them in the node-exporter textfile format.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	OutcomeSuccess     = "success"
	OutcomeTableExists = "table_exists"
	OutcomeError       = "error"
)

type Recorder struct {
	registry *prometheus.Registry

	rowsInserted prometheus.Counter
	runs         *prometheus.CounterVec
	duration     prometheus.Histogram
	lastSuccess  prometheus.Gauge
}

func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		rowsInserted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "busseed",
			Subsystem: "seed",
			Name:      "rows_inserted_total",
			Help:      "Total bus records inserted",
		}),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "busseed",
			Subsystem: "seed",
			Name:      "runs_total",
			Help:      "Seeding runs by outcome",
		}, []string{"provider", "outcome"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "busseed",
			Subsystem: "seed",
			Name:      "duration_seconds",
			Help:      "Duration of a seeding run",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
		lastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "busseed",
			Subsystem: "seed",
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last successful seeding run",
		}),
	}

	r.registry.MustRegister(r.rowsInserted, r.runs, r.duration, r.lastSuccess)
	return r
}

// ObserveRun records the outcome of one seeding run. Rows only count
// towards the total on success.
func (r *Recorder) ObserveRun(provider, outcome string, rows int, elapsed time.Duration) {
	r.runs.WithLabelValues(provider, outcome).Inc()
	r.duration.Observe(elapsed.Seconds())
	if outcome == OutcomeSuccess {
		r.rowsInserted.Add(float64(rows))
		r.lastSuccess.SetToCurrentTime()
	}
}

func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// WriteTextfile atomically writes all collected metrics to path.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}
