package restserver

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/chrissnell/astrotime/pkg/panchang"
)

const metricsNamespace = "astrotime"

// Metrics holds the controller's prometheus collectors on a private registry
type Metrics struct {
	registry *prometheus.Registry

	requests      *prometheus.CounterVec
	latency       *prometheus.HistogramVec
	computeTime   prometheus.Histogram
	streamClients prometheus.Gauge
}

// NewMetrics registers the request, computation and cache collectors. The
// cache counters read straight from cache.Stats.
func NewMetrics(cache *panchang.Cache) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status code.",
		}, []string{"route", "method", "code"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		computeTime: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "snapshot_compute_seconds",
			Help:      "Time spent computing a full panchang snapshot.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 10),
		}),
		streamClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "stream_clients",
			Help:      "Connected websocket stream clients.",
		}),
	}

	cacheHits := prometheus.NewCounterFunc(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "snapshot_cache_hits_total",
		Help:      "Snapshots served from the per-resolution cache.",
	}, func() float64 {
		hits, _ := cache.Stats()
		return float64(hits)
	})
	cacheMisses := prometheus.NewCounterFunc(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "snapshot_cache_misses_total",
		Help:      "Snapshots computed because the cache had no entry.",
	}, func() float64 {
		_, misses := cache.Stats()
		return float64(misses)
	})

	m.registry.MustRegister(
		m.requests,
		m.latency,
		m.computeTime,
		m.streamClients,
		cacheHits,
		cacheMisses,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry in the prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveRequest records one finished HTTP request
func (m *Metrics) ObserveRequest(route, method string, code int, elapsed time.Duration) {
	m.requests.WithLabelValues(route, method, strconv.Itoa(code)).Inc()
	m.latency.WithLabelValues(route).Observe(elapsed.Seconds())
}

// ObserveCompute records the time taken by one snapshot computation
func (m *Metrics) ObserveCompute(elapsed time.Duration) {
	m.computeTime.Observe(elapsed.Seconds())
}
