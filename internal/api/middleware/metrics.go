package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ActiveRequests = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "bountyboard",
		Subsystem: "api",
		Name:      "active_requests",
		Help:      "Number of requests currently being served",
	}, []string{"endpoint"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "bountyboard",
		Subsystem: "api",
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests by method, endpoint and status code",
	}, []string{"method", "endpoint", "status_code"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "bountyboard",
		Subsystem: "api",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request duration in seconds",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "endpoint"})

	PanicRecoveriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "bountyboard",
		Subsystem: "api",
		Name:      "panic_recoveries_total",
		Help:      "Total number of recovered handler panics by endpoint",
	}, []string{"endpoint"})

	RequestTimeoutsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "bountyboard",
		Subsystem: "api",
		Name:      "request_timeouts_total",
		Help:      "Total number of requests that ran past their deadline by endpoint",
	}, []string{"endpoint"})

	RateLimitedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "bountyboard",
		Subsystem: "api",
		Name:      "rate_limited_total",
		Help:      "Total number of requests rejected by the rate limiter by endpoint",
	}, []string{"endpoint"})
)

// MetricsMiddleware tracks HTTP metrics for all requests
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()
		path := endpoint(c)
		method := c.Request.Method

		ActiveRequests.WithLabelValues(path).Inc()
		defer ActiveRequests.WithLabelValues(path).Dec()

		c.Next()

		HTTPRequestDuration.WithLabelValues(method, path).Observe(time.Since(startTime).Seconds())
		HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(c.Writer.Status())).Inc()
	}
}
