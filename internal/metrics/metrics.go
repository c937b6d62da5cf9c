package metrics

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HTTP-метрики
var (
	httpInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "http_in_flight_requests",
		Help: "In-flight HTTP requests.",
	})

	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latencies in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)

// Метрики вложений
var (
	attachmentsStored = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "attachments_stored_total",
			Help: "Attachments stored, by disk.",
		},
		[]string{"disk"},
	)

	storageErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "attachment_storage_errors_total",
			Help: "Blob store failures, by operation.",
		},
		[]string{"op"},
	)

	cascadeFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "attachment_cascade_failures_total",
		Help: "Owner deletions aborted because attachment files could not be staged.",
	})
)

var registerOnce sync.Once

// Init регистрирует метрики в default-регистре; повторный вызов безопасен.
func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			httpInFlight, httpRequestsTotal, httpRequestDuration,
			attachmentsStored, storageErrors, cascadeFailures,
		)
	})
}

func Handler() http.Handler {
	return promhttp.Handler()
}

// GinMiddleware - RPS/latency/в полёте. Путь берём из шаблона роута.
func GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		httpInFlight.Inc()
		start := time.Now()

		c.Next()

		status := strconv.Itoa(c.Writer.Status())
		httpRequestDuration.WithLabelValues(c.Request.Method, path, status).Observe(time.Since(start).Seconds())
		httpRequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		httpInFlight.Dec()
	}
}

func AttachmentStored(disk string) {
	attachmentsStored.WithLabelValues(disk).Inc()
}

// StorageError: op - put, delete, move, restore, purge
func StorageError(op string) {
	storageErrors.WithLabelValues(op).Inc()
}

func CascadeFailure() {
	cascadeFailures.Inc()
}
