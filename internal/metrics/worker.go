package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type WorkerMetrics struct {
	registry *prometheus.Registry

	resumesTotal    *prometheus.CounterVec
	resumeDuration  *prometheus.HistogramVec
	sessionsTotal   *prometheus.CounterVec
	resumesInFlight prometheus.Gauge
	categoryTotal   *prometheus.CounterVec
}

func NewWorkerMetrics() *WorkerMetrics {
	registry := prometheus.NewRegistry()

	resumesTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "resumeworker",
			Subsystem: "worker",
			Name:      "resumes_total",
			Help:      "Analyzed resumes by file format and outcome.",
		},
		[]string{"format", "outcome"},
	)
	resumeDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "resumeworker",
			Subsystem: "worker",
			Name:      "resume_duration_seconds",
			Help:      "Time to download, extract and analyze one resume.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30, 60},
		},
		[]string{"format"},
	)
	sessionsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "resumeworker",
			Subsystem: "worker",
			Name:      "sessions_total",
			Help:      "Processed sessions by final status.",
		},
		[]string{"status"},
	)
	resumesInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "resumeworker",
			Subsystem: "worker",
			Name:      "resumes_in_flight",
			Help:      "Resumes currently being processed.",
		},
	)
	categoryTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "resumeworker",
			Subsystem: "analysis",
			Name:      "category_total",
			Help:      "Predicted job categories.",
		},
		[]string{"category"},
	)

	registry.MustRegister(resumesTotal, resumeDuration, sessionsTotal, resumesInFlight, categoryTotal)

	return &WorkerMetrics{
		registry:        registry,
		resumesTotal:    resumesTotal,
		resumeDuration:  resumeDuration,
		sessionsTotal:   sessionsTotal,
		resumesInFlight: resumesInFlight,
		categoryTotal:   categoryTotal,
	}
}

func (m *WorkerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *WorkerMetrics) StartResume() {
	m.resumesInFlight.Inc()
}

// FinishResume records one resume. outcome is the extraction status, or
// "download_error" when the file never arrived.
func (m *WorkerMetrics) FinishResume(format, outcome string, duration time.Duration) {
	m.resumesInFlight.Dec()
	m.resumesTotal.WithLabelValues(format, outcome).Inc()
	m.resumeDuration.WithLabelValues(format).Observe(duration.Seconds())
}

func (m *WorkerMetrics) ObserveCategory(category string) {
	m.categoryTotal.WithLabelValues(category).Inc()
}

func (m *WorkerMetrics) FinishSession(status string) {
	m.sessionsTotal.WithLabelValues(status).Inc()
}
