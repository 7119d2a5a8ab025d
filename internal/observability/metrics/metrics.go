// Package metrics exposes Prometheus instrumentation for the analytics
// engine. All recording methods are nil-safe so components can run
// uninstrumented.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "hydrolens"

// Metrics owns the engine's Prometheus collectors.
type Metrics struct {
	registry *prometheus.Registry

	forecastsTotal      *prometheus.CounterVec
	forecastDuration    prometheus.Histogram
	cacheHitsTotal      prometheus.Counter
	cacheMissesTotal    prometheus.Counter
	cacheEntries        prometheus.Gauge
	batchSummariesTotal prometheus.Counter
}

// New creates and registers the engine metrics on the given registry; a nil
// registry gets a fresh one.
func New(registry *prometheus.Registry) (*Metrics, error) {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	m := &Metrics{
		registry: registry,
		forecastsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "forecasts_total",
			Help:      "Forecast runs by region and outcome",
		}, []string{"region", "success"}),
		forecastDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "forecast_duration_seconds",
			Help:      "Time spent generating a forecast",
			Buckets:   prometheus.DefBuckets,
		}),
		cacheHitsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "forecast_cache_hits_total",
			Help:      "Forecast cache hits",
		}),
		cacheMissesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "forecast_cache_misses_total",
			Help:      "Forecast cache misses, including expiries",
		}),
		cacheEntries: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "forecast_cache_entries",
			Help:      "Live forecast cache entries",
		}),
		batchSummariesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "batch_summaries_total",
			Help:      "Batch summary buckets emitted",
		}),
	}

	collectors := []prometheus.Collector{
		m.forecastsTotal,
		m.forecastDuration,
		m.cacheHitsTotal,
		m.cacheMissesTotal,
		m.cacheEntries,
		m.batchSummariesTotal,
	}
	for _, c := range collectors {
		if err := registry.Register(c); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// Registry returns the backing registry for exposition by the host process.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// ObserveForecast records one forecast run.
func (m *Metrics) ObserveForecast(region string, success bool, duration time.Duration) {
	if m == nil {
		return
	}
	outcome := "false"
	if success {
		outcome = "true"
	}
	if region == "" {
		region = "overall"
	}
	m.forecastsTotal.WithLabelValues(region, outcome).Inc()
	m.forecastDuration.Observe(duration.Seconds())
}

// CacheHit records a forecast cache hit.
func (m *Metrics) CacheHit() {
	if m == nil {
		return
	}
	m.cacheHitsTotal.Inc()
}

// CacheMiss records a forecast cache miss or expiry.
func (m *Metrics) CacheMiss() {
	if m == nil {
		return
	}
	m.cacheMissesTotal.Inc()
}

// SetCacheEntries records the current live entry count.
func (m *Metrics) SetCacheEntries(n int) {
	if m == nil {
		return
	}
	m.cacheEntries.Set(float64(n))
}

// AddBatchSummaries records emitted batch summary buckets.
func (m *Metrics) AddBatchSummaries(n int) {
	if m == nil {
		return
	}
	m.batchSummariesTotal.Add(float64(n))
}
