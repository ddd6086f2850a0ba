// Package metrics exposes Prometheus collectors for the redirect service.
package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	redirectDecisionsTotal     *prometheus.CounterVec
	metadataLookupsTotal       *prometheus.CounterVec
	httpRequestDurationSeconds *prometheus.HistogramVec

	once sync.Once
)

// Init registers the collectors. Safe to call multiple times.
func Init() {
	once.Do(func() {
		redirectDecisionsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "applink_redirect_decisions_total",
				Help: "Total resolved redirect decisions, labeled by kind and device.",
			},
			[]string{"kind", "device"},
		)

		metadataLookupsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "applink_metadata_lookups_total",
				Help: "Total oEmbed metadata lookups, labeled by outcome.",
			},
			[]string{"outcome"},
		)

		httpRequestDurationSeconds = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "applink_http_request_duration_seconds",
				Help:    "Histogram of request latencies, labeled by method and code.",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
			},
			[]string{"method", "code"},
		)
	})
}

// RecordDecision counts a resolved decision.
func RecordDecision(kind, device string) {
	if redirectDecisionsTotal == nil {
		return
	}
	redirectDecisionsTotal.WithLabelValues(kind, device).Inc()
}

// RecordMetadataLookup counts a metadata lookup outcome
// ("ok", "hit", "fallback").
func RecordMetadataLookup(outcome string) {
	if metadataLookupsTotal == nil {
		return
	}
	metadataLookupsTotal.WithLabelValues(outcome).Inc()
}

// Middleware observes request latency per method and status code.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		if httpRequestDurationSeconds == nil {
			return
		}
		httpRequestDurationSeconds.
			WithLabelValues(c.Request.Method, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}

// Handler serves the Prometheus scrape endpoint.
func Handler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
