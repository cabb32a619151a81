// Package metrics exposes Prometheus instrumentation for the HTTP layer
// and the circulation lifecycle.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "library_http_requests_total",
		Help: "HTTP requests by method, route and status.",
	}, []string{"method", "route", "status"})

	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "library_http_request_duration_seconds",
		Help:    "HTTP request latency by route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})

	IssuesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "library_issues_total",
		Help: "Books issued.",
	})

	ReturnsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "library_returns_total",
		Help: "Books returned.",
	})

	FinesAssessed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "library_fines_assessed_total",
		Help: "Total fine amount finalized at return time.",
	})
)

// Handler serves /metrics.
func Handler() gin.HandlerFunc { return gin.WrapH(promhttp.Handler()) }

// Middleware records request counts and latency per route template.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		httpRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		httpDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}
