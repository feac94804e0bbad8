package monitoring

import (
	"strconv"
	"sync"
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

	IntegrityReports = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "integrity_reports_total",
			Help: "Integrity reports computed, by score band",
		},
		[]string{"band"},
	)

	IntegrityAnalysisDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "integrity_analysis_duration_seconds",
			Help:    "Time spent loading and analysing one attempt",
			Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
	)

	IntegrityCacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "integrity_cache_lookups_total",
			Help: "Integrity report cache lookups, by result",
		},
		[]string{"result"},
	)
)

var registerOnce sync.Once

func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(RequestCounter)
		prometheus.MustRegister(RequestDuration)
		prometheus.MustRegister(IntegrityReports)
		prometheus.MustRegister(IntegrityAnalysisDuration)
		prometheus.MustRegister(IntegrityCacheLookups)
	})
}

func ObserveReport(band string, elapsed time.Duration) {
	IntegrityReports.WithLabelValues(band).Inc()
	IntegrityAnalysisDuration.Observe(elapsed.Seconds())
}

func ObserveCacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	IntegrityCacheLookups.WithLabelValues(result).Inc()
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
