package metrics

import (
	"time"
)

// RecordAnalysisRun records a completed analysis run with its terminal status
func (r *Registry) RecordAnalysisRun(status string, duration time.Duration) {
	r.AnalysisRunsTotal.WithLabelValues(status).Inc()
	r.AnalysisRunDuration.Observe(duration.Seconds())
}

// RecordArtifactLoad records an artifact load attempt
func (r *Registry) RecordArtifactLoad(outcome string, duration time.Duration) {
	r.ArtifactLoadsTotal.WithLabelValues(outcome).Inc()
	r.ParseDuration.Observe(duration.Seconds())
}

// UpdateGraphSize updates the displayed-graph gauges
func (r *Registry) UpdateGraphSize(nodes, edges int) {
	r.GraphNodes.Set(float64(nodes))
	r.GraphEdges.Set(float64(edges))
}
