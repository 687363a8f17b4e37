package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type WorkerMetrics struct {
	registry *prometheus.Registry

	processTotal    *prometheus.CounterVec
	processDuration *prometheus.HistogramVec
	processInFlight prometheus.Gauge
	extractionTotal *prometheus.CounterVec
	queueLagSeconds prometheus.Histogram
}

func NewWorkerMetrics(service string) *WorkerMetrics {
	registry := prometheus.NewRegistry()

	processTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "toe",
			Subsystem: "worker",
			Name:      "document_process_total",
			Help:      "Total documents processed by the extraction worker.",
		},
		[]string{"service", "status"},
	)
	processDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "toe",
			Subsystem: "worker",
			Name:      "document_process_duration_seconds",
			Help:      "Document processing duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service"},
	)
	processInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "toe",
			Subsystem: "worker",
			Name:      "document_process_in_flight",
			Help:      "Documents currently being processed.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	extractionTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "toe",
			Subsystem: "worker",
			Name:      "extraction_total",
			Help:      "Extraction outcomes by detected document format.",
		},
		[]string{"service", "format", "status"},
	)
	queueLagSeconds := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "toe",
			Subsystem: "worker",
			Name:      "queue_lag_seconds",
			Help:      "Delay between document upload and processing start.",
			Buckets:   []float64{0.1, 0.5, 1, 5, 15, 60, 300, 900},
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)

	registry.MustRegister(
		processTotal,
		processDuration,
		processInFlight,
		extractionTotal,
		queueLagSeconds,
	)

	return &WorkerMetrics{
		registry:        registry,
		processTotal:    processTotal,
		processDuration: processDuration,
		processInFlight: processInFlight,
		extractionTotal: extractionTotal,
		queueLagSeconds: queueLagSeconds,
	}
}

func (m *WorkerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *WorkerMetrics) StartDocument() {
	m.processInFlight.Inc()
}

func (m *WorkerMetrics) FinishDocument(service string, duration time.Duration, err error) {
	m.processInFlight.Dec()

	status := "ok"
	if err != nil {
		status = "error"
	}
	m.processTotal.WithLabelValues(service, status).Inc()
	m.processDuration.WithLabelValues(service).Observe(duration.Seconds())
}

func (m *WorkerMetrics) RecordExtraction(service, format string, err error) {
	if format == "" {
		format = "unknown"
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.extractionTotal.WithLabelValues(service, format, status).Inc()
}

func (m *WorkerMetrics) ObserveQueueLag(receivedAt time.Time) {
	if receivedAt.IsZero() {
		return
	}
	lag := time.Since(receivedAt)
	if lag < 0 {
		lag = 0
	}
	m.queueLagSeconds.Observe(lag.Seconds())
}
