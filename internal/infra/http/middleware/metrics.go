package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	activeConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_active_connections",
			Help: "Number of active HTTP connections",
		},
	)

	leadsCaptured = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leads_captured_total",
			Help: "Total number of leads created",
		},
		[]string{"program"},
	)

	applicationsSubmitted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "applications_submitted_total",
			Help: "Total number of program applications created",
		},
	)

	chatStreams = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chat_streams_total",
			Help: "Total number of advisor chat streams started",
		},
	)

	chatStreamErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chat_stream_errors_total",
			Help: "Total number of advisor chat streams that failed",
		},
	)
)

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Flush keeps the wrapped writer usable for SSE responses.
func (rw *responseWriter) Flush() {
	if f, ok := rw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		activeConnections.Inc()
		defer activeConnections.Dec()

		rw := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(rw.statusCode)

		httpRequestsTotal.WithLabelValues(r.Method, r.URL.Path, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, r.URL.Path).Observe(duration)
	})
}

func RecordLeadCaptured(program string) {
	leadsCaptured.WithLabelValues(program).Inc()
}

func RecordApplicationSubmitted() {
	applicationsSubmitted.Inc()
}

func RecordChatStream() {
	chatStreams.Inc()
}

func RecordChatStreamError() {
	chatStreamErrors.Inc()
}
