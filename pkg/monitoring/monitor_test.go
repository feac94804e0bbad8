package monitoring

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveReport(t *testing.T) {
	before := testutil.ToFloat64(IntegrityReports.WithLabelValues("HIGH"))

	ObserveReport("HIGH", 20*time.Millisecond)

	assert.Equal(t, before+1, testutil.ToFloat64(IntegrityReports.WithLabelValues("HIGH")))
}

func TestObserveCacheLookup(t *testing.T) {
	hits := testutil.ToFloat64(IntegrityCacheLookups.WithLabelValues("hit"))
	misses := testutil.ToFloat64(IntegrityCacheLookups.WithLabelValues("miss"))

	ObserveCacheLookup(true)
	ObserveCacheLookup(false)
	ObserveCacheLookup(false)

	assert.Equal(t, hits+1, testutil.ToFloat64(IntegrityCacheLookups.WithLabelValues("hit")))
	assert.Equal(t, misses+2, testutil.ToFloat64(IntegrityCacheLookups.WithLabelValues("miss")))
}

func TestMetricsMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	Init()
	Init()

	r := gin.New()
	r.Use(MetricsMiddleware())
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	r.GET("/metrics", PrometheusHandler())

	before := testutil.ToFloat64(RequestCounter.WithLabelValues("GET", "/ping", "204"))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, before+1, testutil.ToFloat64(RequestCounter.WithLabelValues("GET", "/ping", "204")))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "http_requests_total")
}
