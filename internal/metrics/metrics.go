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
	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "path", "status"},
	)

	reportCompileDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "project_report_compile_duration_seconds",
			Help:    "Time spent compiling a project report, cache misses only",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
		},
	)

	reportCacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "project_report_cache_total",
			Help: "Project report cache lookups by outcome",
		},
		[]string{"outcome"}, // hit, miss
	)

	taskDayToggles = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "task_day_toggles_total",
			Help: "Total task calendar cell status advances",
		},
	)
)

// ObserveReportCompile records one cache-missing report compilation.
func ObserveReportCompile(d time.Duration) {
	reportCompileDuration.Observe(d.Seconds())
}

// CountReportCache records a cache lookup outcome ("hit" or "miss").
func CountReportCache(outcome string) {
	reportCacheHits.WithLabelValues(outcome).Inc()
}

// CountTaskDayToggle records one calendar click.
func CountTaskDayToggle() {
	taskDayToggles.Inc()
}

// GinMiddleware times every request by route template.
func GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		httpRequestDuration.
			WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}

// Register mounts the Prometheus scrape endpoint.
func Register(r gin.IRouter) {
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}
