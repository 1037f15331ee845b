package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initAnalysisMetrics() {
	r.AnalysisRunsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "tracecraft_analysis_runs_total",
			Help: "Total number of analysis runs by terminal status",
		},
		[]string{"status"}, // succeeded, failed, no_artifact, spawn_error
	)

	r.AnalysisRunDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "tracecraft_analysis_run_duration_seconds",
			Help:    "Wall-clock duration of external analysis runs in seconds",
			Buckets: []float64{0.1, 0.5, 1, 5, 15, 60, 300},
		},
	)

	r.ArtifactLoadsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "tracecraft_artifact_loads_total",
			Help: "Total number of artifact loads by outcome",
		},
		[]string{"outcome"}, // loaded, empty, io_error
	)

	r.ParseDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "tracecraft_artifact_parse_duration_seconds",
			Help:    "Artifact parse and layout duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)
}
