// internal/server/metrics.go
package server

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics are registered on a private registry so several servers can
// coexist in one process (tests).
type Metrics struct {
	Registry  *prometheus.Registry
	Requests  *prometheus.CounterVec
	Sequences *prometheus.CounterVec
	Engine    prometheus.Histogram
}

func newMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		Requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "abtools",
				Name:      "http_requests_total",
				Help:      "HTTP requests by endpoint and status code.",
			},
			[]string{"endpoint", "code"},
		),
		Sequences: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "abtools",
				Name:      "sequences_total",
				Help:      "Sequences handled by outcome.",
			},
			[]string{"outcome"},
		),
		Engine: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "abtools",
				Name:      "engine_seconds",
				Help:      "Numbering engine latency per call.",
				Buckets:   prometheus.ExponentialBuckets(0.05, 2, 10),
			},
		),
	}
	m.Registry.MustRegister(m.Requests, m.Sequences, m.Engine)
	return m
}

// cacheStats is implemented by caching engines.
type cacheStats interface {
	Stats() (hits, misses int64, items int)
}

// watchCache exports the counters of a caching engine.
func (m *Metrics) watchCache(c cacheStats) {
	m.Registry.MustRegister(
		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Namespace: "abtools", Name: "cache_hits_total", Help: "Numbering cache hits.",
		}, func() float64 { h, _, _ := c.Stats(); return float64(h) }),
		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Namespace: "abtools", Name: "cache_misses_total", Help: "Numbering cache misses.",
		}, func() float64 { _, mi, _ := c.Stats(); return float64(mi) }),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: "abtools", Name: "cache_items", Help: "Live numbering cache entries.",
		}, func() float64 { _, _, n := c.Stats(); return float64(n) }),
	)
}
