// Package metrics exposes Prometheus collectors for sync and rank jobs.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/riskibarqy/nfl-insights/internal/usecase"
)

// Recorder implements both the job and the provider fetch observers.
type Recorder struct {
	fetchTotal       *prometheus.CounterVec
	fetchDuration    *prometheus.HistogramVec
	recordsTotal     *prometheus.CounterVec
	runsTotal        *prometheus.CounterVec
	runDuration      *prometheus.HistogramVec
	lastSuccessfulAt *prometheus.GaugeVec
}

// New registers the collectors on reg. Passing a fresh registry keeps
// tests isolated from the global one.
func New(reg prometheus.Registerer) *Recorder {
	factory := promauto.With(reg)
	return &Recorder{
		fetchTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "nflsync_fetch_total",
				Help: "Provider fetches, labeled by source and outcome.",
			},
			[]string{"source", "outcome"},
		),
		fetchDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "nflsync_fetch_duration_seconds",
				Help:    "Provider fetch latency, labeled by source.",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 20},
			},
			[]string{"source"},
		),
		recordsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "nflsync_records_total",
				Help: "Transformed records, labeled by source and outcome.",
			},
			[]string{"source", "outcome"},
		),
		runsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "nflsync_runs_total",
				Help: "Job runs, labeled by job and status.",
			},
			[]string{"job", "status"},
		),
		runDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "nflsync_run_duration_seconds",
				Help:    "Job wall time, labeled by job.",
				Buckets: []float64{1, 5, 15, 30, 60, 120, 300, 600},
			},
			[]string{"job"},
		),
		lastSuccessfulAt: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "nflsync_last_success_timestamp_seconds",
				Help: "Unix time of the last successful run, labeled by job.",
			},
			[]string{"job"},
		),
	}
}

func (r *Recorder) ObserveFetch(source, outcome string, elapsed time.Duration) {
	r.fetchTotal.WithLabelValues(source, outcome).Inc()
	r.fetchDuration.WithLabelValues(source).Observe(elapsed.Seconds())
}

func (r *Recorder) ObserveBatch(result usecase.BatchResult) {
	add := func(outcome string, n int) {
		if n > 0 {
			r.recordsTotal.WithLabelValues(result.Source, outcome).Add(float64(n))
		}
	}
	add("created", result.Created)
	add("updated", result.Updated)
	add("skipped", result.Skipped)
	add("fetch_failed", result.FetchFailed)
}

func (r *Recorder) ObserveRun(job string, elapsed time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	r.runsTotal.WithLabelValues(job, status).Inc()
	r.runDuration.WithLabelValues(job).Observe(elapsed.Seconds())
	if err == nil {
		r.lastSuccessfulAt.WithLabelValues(job).SetToCurrentTime()
	}
}

// Handler exposes the collectors gathered by g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
