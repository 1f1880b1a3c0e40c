package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Exporter exposes service metrics in Prometheus format. A nil *Exporter is
// a valid no-op recorder, so metrics stay optional in wiring and tests.
type Exporter struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpLatency  *prometheus.HistogramVec

	documentsProcessed *prometheus.CounterVec
	questionsAnswered  *prometheus.CounterVec
	questionLatency    *prometheus.HistogramVec
	comparisonsRun     *prometheus.CounterVec
	reportsGenerated   prometheus.Counter

	llmLatency *prometheus.HistogramVec
	llmTokens  *prometheus.CounterVec

	activeSessions prometheus.Gauge
}

// Config configures the exporter.
type Config struct {
	// Registry to use (if nil, creates a new one)
	Registry *prometheus.Registry

	// Buckets for latency histograms (in seconds)
	LatencyBuckets []float64
}

// DefaultConfig returns the default exporter configuration.
func DefaultConfig() Config {
	return Config{
		LatencyBuckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10, 30, 60},
	}
}

// NewExporter creates an exporter with all service metrics registered.
func NewExporter(cfg Config) *Exporter {
	if len(cfg.LatencyBuckets) == 0 {
		cfg.LatencyBuckets = DefaultConfig().LatencyBuckets
	}

	registry := cfg.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	e := &Exporter{registry: registry}

	e.httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "docqa",
			Subsystem: "server",
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	e.httpLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "docqa",
			Subsystem: "server",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency in seconds",
			Buckets:   cfg.LatencyBuckets,
		},
		[]string{"method", "path"},
	)

	e.documentsProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "docqa",
			Subsystem: "server",
			Name:      "documents_processed_total",
			Help:      "Total number of processed document uploads",
		},
		[]string{"status"},
	)

	e.questionsAnswered = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "docqa",
			Subsystem: "server",
			Name:      "questions_total",
			Help:      "Total number of answered questions",
		},
		[]string{"mode", "status"},
	)

	e.questionLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "docqa",
			Subsystem: "server",
			Name:      "question_duration_seconds",
			Help:      "Question answering latency in seconds",
			Buckets:   cfg.LatencyBuckets,
		},
		[]string{"mode"},
	)

	e.comparisonsRun = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "docqa",
			Subsystem: "server",
			Name:      "comparisons_total",
			Help:      "Total number of comparison operations",
		},
		[]string{"operation"},
	)

	e.reportsGenerated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "docqa",
			Subsystem: "server",
			Name:      "reports_generated_total",
			Help:      "Total number of generated PDF reports",
		},
	)

	e.llmLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "docqa",
			Subsystem: "server",
			Name:      "llm_request_duration_seconds",
			Help:      "Outbound model call latency in seconds",
			Buckets:   cfg.LatencyBuckets,
		},
		[]string{"method"},
	)

	e.llmTokens = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "docqa",
			Subsystem: "server",
			Name:      "llm_tokens_total",
			Help:      "Total number of model tokens consumed",
		},
		[]string{"type"},
	)

	e.activeSessions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "docqa",
			Subsystem: "server",
			Name:      "sessions_active",
			Help:      "Number of active chat sessions",
		},
	)

	registry.MustRegister(
		e.httpRequests,
		e.httpLatency,
		e.documentsProcessed,
		e.questionsAnswered,
		e.questionLatency,
		e.comparisonsRun,
		e.reportsGenerated,
		e.llmLatency,
		e.llmTokens,
		e.activeSessions,
	)

	return e
}

// RecordRequest records one handled HTTP request.
func (e *Exporter) RecordRequest(method, path string, status int, latency time.Duration) {
	if e == nil {
		return
	}

	e.httpRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	e.httpLatency.WithLabelValues(method, path).Observe(latency.Seconds())
}

// RecordDocumentProcessed records one document upload outcome.
func (e *Exporter) RecordDocumentProcessed(success bool) {
	if e == nil {
		return
	}

	e.documentsProcessed.WithLabelValues(statusLabel(success)).Inc()
}

// RecordQuestion records one answered question and its latency.
func (e *Exporter) RecordQuestion(mode string, success bool, latency time.Duration) {
	if e == nil {
		return
	}

	e.questionsAnswered.WithLabelValues(mode, statusLabel(success)).Inc()
	e.questionLatency.WithLabelValues(mode).Observe(latency.Seconds())
}

// RecordComparison records one comparison operation.
func (e *Exporter) RecordComparison(operation string) {
	if e == nil {
		return
	}

	e.comparisonsRun.WithLabelValues(operation).Inc()
}

// RecordReport records one generated PDF report.
func (e *Exporter) RecordReport() {
	if e == nil {
		return
	}

	e.reportsGenerated.Inc()
}

// RecordLLMCall records one outbound model call with its token usage.
func (e *Exporter) RecordLLMCall(method string, latency time.Duration, promptTokens, completionTokens int) {
	if e == nil {
		return
	}

	e.llmLatency.WithLabelValues(method).Observe(latency.Seconds())
	e.llmTokens.WithLabelValues("prompt").Add(float64(promptTokens))
	e.llmTokens.WithLabelValues("completion").Add(float64(completionTokens))
}

// SetActiveSessions sets the number of active chat sessions.
func (e *Exporter) SetActiveSessions(count int) {
	if e == nil {
		return
	}

	e.activeSessions.Set(float64(count))
}

// Handler returns the HTTP handler for the metrics endpoint.
func (e *Exporter) Handler() http.Handler {
	return promhttp.HandlerFor(e.registry, promhttp.HandlerOpts{})
}

// ServeHTTP implements http.Handler for the metrics endpoint.
func (e *Exporter) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	e.Handler().ServeHTTP(w, r)
}

func statusLabel(success bool) string {
	if success {
		return "success"
	}

	return "error"
}
