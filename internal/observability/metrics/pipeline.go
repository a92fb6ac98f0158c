package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/manifoldfrs/doc-classifier/internal/core/domain"
)

// PipelineMetrics tracks classification work. It satisfies the use case
// layer's Observer interface.
type PipelineMetrics struct {
	registry *prometheus.Registry
	service  string

	documentsTotal    *prometheus.CounterVec
	documentDuration  *prometheus.HistogramVec
	stageDuration     *prometheus.HistogramVec
	stageResultsTotal *prometheus.CounterVec
	earlyExitTotal    *prometheus.CounterVec
	batchSize         *prometheus.HistogramVec
	jobsInFlight      prometheus.Gauge
}

func NewPipelineMetrics(service string) *PipelineMetrics {
	registry := prometheus.NewRegistry()

	documentsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "docclass",
			Subsystem: "pipeline",
			Name:      "documents_total",
			Help:      "Total classified documents by final status.",
		},
		[]string{"service", "status"},
	)
	documentDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "docclass",
			Subsystem: "pipeline",
			Name:      "document_duration_seconds",
			Help:      "End-to-end document classification duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "status"},
	)
	stageDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "docclass",
			Subsystem: "pipeline",
			Name:      "stage_duration_seconds",
			Help:      "Per-stage execution duration in seconds.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10},
		},
		[]string{"service", "stage"},
	)
	stageResultsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "docclass",
			Subsystem: "pipeline",
			Name:      "stage_results_total",
			Help:      "Total stage executions by outcome.",
		},
		[]string{"service", "stage", "outcome"},
	)
	earlyExitTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "docclass",
			Subsystem: "pipeline",
			Name:      "early_exit_total",
			Help:      "Total pipeline runs that stopped early, by deciding stage.",
		},
		[]string{"service", "stage"},
	)
	batchSize := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "docclass",
			Subsystem: "batch",
			Name:      "size",
			Help:      "Distribution of accepted batch sizes by mode.",
			Buckets:   []float64{1, 2, 5, 10, 20, 30, 50},
		},
		[]string{"service", "mode"},
	)
	jobsInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "docclass",
			Subsystem: "batch",
			Name:      "jobs_in_flight",
			Help:      "Number of asynchronous jobs currently running.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)

	registry.MustRegister(
		documentsTotal,
		documentDuration,
		stageDuration,
		stageResultsTotal,
		earlyExitTotal,
		batchSize,
		jobsInFlight,
	)

	return &PipelineMetrics{
		registry:          registry,
		service:           service,
		documentsTotal:    documentsTotal,
		documentDuration:  documentDuration,
		stageDuration:     stageDuration,
		stageResultsTotal: stageResultsTotal,
		earlyExitTotal:    earlyExitTotal,
		batchSize:         batchSize,
		jobsInFlight:      jobsInFlight,
	}
}

func (m *PipelineMetrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

func (m *PipelineMetrics) DocumentObserved(status string, seconds float64) {
	m.documentsTotal.WithLabelValues(m.service, status).Inc()
	m.documentDuration.WithLabelValues(m.service, status).Observe(seconds)
}

func (m *PipelineMetrics) StageObserved(stage domain.StageName, outcome string, seconds float64) {
	m.stageDuration.WithLabelValues(m.service, string(stage)).Observe(seconds)
	m.stageResultsTotal.WithLabelValues(m.service, string(stage), outcome).Inc()
}

func (m *PipelineMetrics) EarlyExit(stage domain.StageName) {
	m.earlyExitTotal.WithLabelValues(m.service, string(stage)).Inc()
}

func (m *PipelineMetrics) BatchObserved(mode string, size int) {
	m.batchSize.WithLabelValues(m.service, mode).Observe(float64(size))
}

func (m *PipelineMetrics) JobStarted() {
	m.jobsInFlight.Inc()
}

func (m *PipelineMetrics) JobFinished() {
	m.jobsInFlight.Dec()
}

// Handler exposes every gatherer on a single scrape endpoint.
func Handler(gatherers ...prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(prometheus.Gatherers(gatherers), promhttp.HandlerOpts{})
}
