package models

import "time"

// ContentMetricsSnapshot aggregates service counters for the status endpoint.
type ContentMetricsSnapshot struct {
	Mode                     ConfigurationMode `json:"mode"`
	RequestsTotal            uint64            `json:"requests_total"`
	AverageRequestDurationMs float64           `json:"average_request_duration_ms"`
	CacheHitRatio            float64           `json:"cache_hit_ratio"`
	CacheHits                uint64            `json:"cache_hits"`
	CacheMisses              uint64            `json:"cache_misses"`
	LiveFetches              uint64            `json:"live_fetches"`
	FallbackServes           uint64            `json:"fallback_serves"`
	LiveFailures             uint64            `json:"live_failures"`
	Substitutions            uint64            `json:"substitutions"`
	Goroutines               int               `json:"goroutines"`
	GeneratedAt              time.Time         `json:"generated_at"`
}
