package service

import (
	"fmt"
	"net/http"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/noah-isme/spendtrails-site/internal/models"
)

// MetricsService encapsulates Prometheus instrumentation and provides lightweight snapshots for API consumption.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	cacheLatency    prometheus.Observer
	cacheWrite      prometheus.Observer
	cacheHitRatio   prometheus.Gauge
	cacheHits       prometheus.Counter
	cacheMisses     prometheus.Counter
	contentFetches  *prometheus.CounterVec
	liveFailures    *prometheus.CounterVec
	substitutions   *prometheus.CounterVec
	liveDuration    prometheus.Observer
	contentMode     prometheus.Gauge

	mode                 atomic.Value
	cacheHitCount        uint64
	cacheMissCount       uint64
	requestCount         uint64
	requestDurationTotal uint64
	liveFetchCount       uint64
	fallbackServeCount   uint64
	liveFailureCount     uint64
	substitutionCount    uint64
}

// NewMetricsService registers core Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	cacheLatency := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "cache_latency_seconds",
		Help:    "Latency for cache operations",
		Buckets: prometheus.DefBuckets,
	})

	cacheWrite := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "cache_write_seconds",
		Help:    "Latency for cache set operations",
		Buckets: prometheus.DefBuckets,
	})

	cacheHitRatio := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "cache_hit_ratio",
		Help: "Ratio of cache hits to total cache lookups",
	})

	cacheHits := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cache_hits_total",
		Help: "Total cache hits",
	})

	cacheMisses := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cache_misses_total",
		Help: "Total cache misses",
	})

	contentFetches := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "content_fetch_total",
		Help: "Content payloads served, by source and content type",
	}, []string{"source", "content_type"})

	liveFailures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "content_live_failures_total",
		Help: "Live CMS fetches that failed and were served from fallback data",
	}, []string{"content_type"})

	substitutions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "content_facade_substitutions_total",
		Help: "Documents replaced with fallback records by the content facade",
	}, []string{"content_type", "reason"})

	liveDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "content_live_fetch_seconds",
		Help:    "Latency of live CMS queries",
		Buckets: prometheus.DefBuckets,
	})

	contentMode := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "content_mode_live",
		Help: "1 when the content client serves live CMS content, 0 in fallback mode",
	})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, cacheLatency, cacheWrite, cacheHitRatio, cacheHits, cacheMisses,
		contentFetches, liveFailures, substitutions, liveDuration, contentMode, goroutines)

	handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	m := &MetricsService{
		registry:        registry,
		handler:         handler,
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		cacheLatency:    cacheLatency,
		cacheWrite:      cacheWrite,
		cacheHitRatio:   cacheHitRatio,
		cacheHits:       cacheHits,
		cacheMisses:     cacheMisses,
		contentFetches:  contentFetches,
		liveFailures:    liveFailures,
		substitutions:   substitutions,
		liveDuration:    liveDuration,
		contentMode:     contentMode,
	}
	m.mode.Store(models.ModeFallback)
	return m
}

// Registry exposes the underlying registry for tests and additional collectors.
func (m *MetricsService) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records request metrics and aggregates simple stats for snapshots.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
	atomic.AddUint64(&m.requestCount, 1)
	atomic.AddUint64(&m.requestDurationTotal, uint64(duration.Nanoseconds()))
}

// RecordCacheOperation records cache hit/miss metrics and updates hit ratio.
func (m *MetricsService) RecordCacheOperation(hit bool, duration time.Duration) {
	if m == nil {
		return
	}
	if m.cacheLatency != nil {
		m.cacheLatency.Observe(duration.Seconds())
	}
	if hit {
		m.cacheHits.Inc()
		atomic.AddUint64(&m.cacheHitCount, 1)
	} else {
		m.cacheMisses.Inc()
		atomic.AddUint64(&m.cacheMissCount, 1)
	}
	hits := atomic.LoadUint64(&m.cacheHitCount)
	misses := atomic.LoadUint64(&m.cacheMissCount)
	total := hits + misses
	if total > 0 {
		m.cacheHitRatio.Set(float64(hits) / float64(total))
	}
}

// ObserveCacheWrite tracks the duration for cache write operations.
func (m *MetricsService) ObserveCacheWrite(duration time.Duration) {
	if m == nil || m.cacheWrite == nil {
		return
	}
	m.cacheWrite.Observe(duration.Seconds())
}

// SetContentMode publishes the content client's operating mode.
func (m *MetricsService) SetContentMode(mode models.ConfigurationMode) {
	if m == nil {
		return
	}
	m.mode.Store(mode)
	if mode.IsLive() {
		m.contentMode.Set(1)
		return
	}
	m.contentMode.Set(0)
}

// RecordContentFetch counts a payload served from the given source.
func (m *MetricsService) RecordContentFetch(contentType models.ContentType, source models.FetchSource) {
	if m == nil {
		return
	}
	m.contentFetches.WithLabelValues(string(source), contentTypeLabel(contentType)).Inc()
	switch source {
	case models.SourceFallback:
		atomic.AddUint64(&m.fallbackServeCount, 1)
	case models.SourceLive:
		atomic.AddUint64(&m.liveFetchCount, 1)
	}
}

// ObserveLiveFetch records the latency of a live backend query.
func (m *MetricsService) ObserveLiveFetch(duration time.Duration) {
	if m == nil {
		return
	}
	m.liveDuration.Observe(duration.Seconds())
}

// RecordLiveFailure counts a live fetch that degraded to fallback data.
func (m *MetricsService) RecordLiveFailure(contentType models.ContentType) {
	if m == nil {
		return
	}
	m.liveFailures.WithLabelValues(contentTypeLabel(contentType)).Inc()
	atomic.AddUint64(&m.liveFailureCount, 1)
}

// RecordSubstitution counts a facade substitution with its reason.
func (m *MetricsService) RecordSubstitution(contentType models.ContentType, reason string) {
	if m == nil {
		return
	}
	m.substitutions.WithLabelValues(contentTypeLabel(contentType), reason).Inc()
	atomic.AddUint64(&m.substitutionCount, 1)
}

func contentTypeLabel(contentType models.ContentType) string {
	if contentType == models.ContentTypeUnknown {
		return "unknown"
	}
	return string(contentType)
}

// Snapshot returns aggregated metrics suitable for the status endpoint.
func (m *MetricsService) Snapshot() models.ContentMetricsSnapshot {
	if m == nil {
		return models.ContentMetricsSnapshot{}
	}
	hits := atomic.LoadUint64(&m.cacheHitCount)
	misses := atomic.LoadUint64(&m.cacheMissCount)
	requests := atomic.LoadUint64(&m.requestCount)
	reqDuration := atomic.LoadUint64(&m.requestDurationTotal)

	var cacheRatio float64
	totalLookups := hits + misses
	if totalLookups > 0 {
		cacheRatio = float64(hits) / float64(totalLookups)
	}

	var avgRequestMs float64
	if requests > 0 {
		avgRequestMs = float64(reqDuration) / float64(requests) / float64(time.Millisecond)
	}

	mode, _ := m.mode.Load().(models.ConfigurationMode)

	return models.ContentMetricsSnapshot{
		Mode:                     mode,
		RequestsTotal:            requests,
		AverageRequestDurationMs: avgRequestMs,
		CacheHitRatio:            cacheRatio,
		CacheHits:                hits,
		CacheMisses:              misses,
		LiveFetches:              atomic.LoadUint64(&m.liveFetchCount),
		FallbackServes:           atomic.LoadUint64(&m.fallbackServeCount),
		LiveFailures:             atomic.LoadUint64(&m.liveFailureCount),
		Substitutions:            atomic.LoadUint64(&m.substitutionCount),
		Goroutines:               runtime.NumGoroutine(),
		GeneratedAt:              time.Now().UTC(),
	}
}
