// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package explorer

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/pdiddy/cord-explorer/internal/cache"
)

// metrics are registered on a registry private to one Server so tests and
// multiple servers in one process do not collide.
type metrics struct {
	registry    *prometheus.Registry
	requests    *prometheus.CounterVec
	loadSeconds prometheus.Histogram
	cacheEvents *prometheus.CounterVec
	records     prometheus.Gauge
}

func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "explorer",
			Name:      "requests_total",
			Help:      "HTTP requests by route pattern and status code.",
		}, []string{"route", "code"}),
		loadSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "explorer",
			Name:      "table_load_seconds",
			Help:      "Time spent loading and cleaning the dataset.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10, 30, 60},
		}),
		cacheEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "explorer",
			Name:      "table_cache_total",
			Help:      "Table cache lookups by result (hit, miss, error).",
		}, []string{"result"}),
		records: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "explorer",
			Name:      "table_records",
			Help:      "Cleaned records in the most recently loaded table.",
		}),
	}
	m.registry.MustRegister(m.requests, m.loadSeconds, m.cacheEvents, m.records)
	return m
}

func (m *metrics) observeRequest(route string, code int) {
	m.requests.WithLabelValues(route, strconv.Itoa(code)).Inc()
}

// cacheObserver feeds cache events into the counters.
func (m *metrics) cacheObserver() cache.Observer {
	return cache.Observer{
		Hit:  func(string) { m.cacheEvents.WithLabelValues("hit").Inc() },
		Miss: func(string) { m.cacheEvents.WithLabelValues("miss").Inc() },
		Load: func(_ string, took time.Duration, err error) {
			if err != nil {
				m.cacheEvents.WithLabelValues("error").Inc()
				return
			}
			m.loadSeconds.Observe(took.Seconds())
		},
	}
}
