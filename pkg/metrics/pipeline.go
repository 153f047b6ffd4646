package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PipelineMetrics records counters and timings for the decision pipeline.
type PipelineMetrics struct {
	stageDuration *prometheus.HistogramVec
	searches      *prometheus.CounterVec
	fallbacks     *prometheus.CounterVec
	dedupDropped  prometheus.Counter
	substitutions *prometheus.CounterVec
}

// NewPipelineMetrics registers the pipeline metrics on the provided registerer.
func NewPipelineMetrics(reg prometheus.Registerer) *PipelineMetrics {
	if reg == nil {
		return &PipelineMetrics{}
	}
	stageDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pipeline_stage_duration_seconds",
		Help:    "Duration of pipeline stages in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"stage"})
	searches := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pipeline_searches_total",
		Help: "Candidate searches by outcome (live, cached, fallback).",
	}, []string{"outcome"})
	fallbacks := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pipeline_stage_fallbacks_total",
		Help: "Degraded-path activations by stage.",
	}, []string{"stage"})
	dedupDropped := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pipeline_dedup_dropped_total",
		Help: "Candidate listings dropped as near-duplicates.",
	})
	substitutions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pipeline_substitutions_total",
		Help: "Cart substitutions recommended by type.",
	}, []string{"type"})
	reg.MustRegister(stageDuration, searches, fallbacks, dedupDropped, substitutions)
	return &PipelineMetrics{
		stageDuration: stageDuration,
		searches:      searches,
		fallbacks:     fallbacks,
		dedupDropped:  dedupDropped,
		substitutions: substitutions,
	}
}

// ObserveStageDuration records how long the named stage ran.
func (m *PipelineMetrics) ObserveStageDuration(stage string, duration time.Duration) {
	if m == nil || m.stageDuration == nil {
		return
	}
	m.stageDuration.WithLabelValues(normalizeLabel(stage)).Observe(duration.Seconds())
}

// IncSearch increments the search counter for the given outcome.
func (m *PipelineMetrics) IncSearch(outcome string) {
	if m == nil || m.searches == nil {
		return
	}
	m.searches.WithLabelValues(normalizeLabel(outcome)).Inc()
}

// IncFallback increments the degraded-path counter for the named stage.
func (m *PipelineMetrics) IncFallback(stage string) {
	if m == nil || m.fallbacks == nil {
		return
	}
	m.fallbacks.WithLabelValues(normalizeLabel(stage)).Inc()
}

// AddDedupDropped counts listings removed as near-duplicates.
func (m *PipelineMetrics) AddDedupDropped(n int) {
	if m == nil || m.dedupDropped == nil || n <= 0 {
		return
	}
	m.dedupDropped.Add(float64(n))
}

// IncSubstitution counts a recommended substitution by type.
func (m *PipelineMetrics) IncSubstitution(substitutionType string) {
	if m == nil || m.substitutions == nil {
		return
	}
	m.substitutions.WithLabelValues(normalizeLabel(substitutionType)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
