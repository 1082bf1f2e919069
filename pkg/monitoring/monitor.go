package monitoring

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)

	WorksheetsProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worksheets_processed_total",
			Help: "Worksheet images run through OCR extraction",
		},
		[]string{"result"},
	)

	AnswersExtracted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "answers_extracted_total",
			Help: "Candidate answers produced by extraction",
		},
	)

	AnswersFlagged = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "answers_flagged_total",
			Help: "Extracted answers routed to manual review",
		},
	)

	GradingRuns = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "grading_runs_total",
			Help: "Session grading runs",
		},
	)
)

func Init() {
	prometheus.MustRegister(RequestCounter)
	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(WorksheetsProcessed)
	prometheus.MustRegister(AnswersExtracted)
	prometheus.MustRegister(AnswersFlagged)
	prometheus.MustRegister(GradingRuns)
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start).Seconds()
		status := c.Writer.Status()

		RequestCounter.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			strconv.Itoa(status),
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
		).Observe(duration)
	}
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
