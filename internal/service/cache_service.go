package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"

	appErrors "github.com/noah-isme/spendtrails-site/pkg/errors"
)

// CacheRepository persists raw CMS payloads.
type CacheRepository interface {
	Get(ctx context.Context, key string) (json.RawMessage, error)
	Set(ctx context.Context, key string, payload json.RawMessage, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

// CacheService caches successful live CMS responses. Every failure degrades to a miss so the
// cache can never break content delivery. Keys are scoped by an optional namespace.
type CacheService struct {
	repo       CacheRepository
	metrics    *MetricsService
	defaultTTL time.Duration
	logger     *zap.Logger
	enabled    bool
	namespace  string
}

// NewCacheService constructs a cache service. A non-positive TTL defaults to five minutes.
func NewCacheService(repo CacheRepository, metrics *MetricsService, defaultTTL time.Duration, logger *zap.Logger, enabled bool) *CacheService {
	if defaultTTL <= 0 {
		defaultTTL = 5 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CacheService{repo: repo, metrics: metrics, defaultTTL: defaultTTL, logger: logger, enabled: enabled}
}

// WithNamespace returns a view of the cache whose keys live under namespace. The view shares the
// repository and metrics with the receiver.
func (s *CacheService) WithNamespace(namespace string) *CacheService {
	if s == nil {
		return nil
	}
	scoped := *s
	scoped.namespace = namespace
	return &scoped
}

// Namespace returns the key namespace of this view.
func (s *CacheService) Namespace() string {
	if s == nil {
		return ""
	}
	return s.namespace
}

// Enabled indicates whether caching is active.
func (s *CacheService) Enabled() bool {
	return s != nil && s.enabled && s.repo != nil
}

func (s *CacheService) key(key string) string {
	if s.namespace == "" {
		return key
	}
	return s.namespace + ":" + key
}

// Get returns the cached payload and true on a hit. Backend errors are reported as misses.
func (s *CacheService) Get(ctx context.Context, key string) (json.RawMessage, bool) {
	if !s.Enabled() {
		return nil, false
	}
	start := time.Now()
	payload, err := s.repo.Get(ctx, s.key(key))
	s.metrics.RecordCacheOperation(err == nil, time.Since(start))
	if err != nil {
		if !errors.Is(err, appErrors.ErrCacheMiss) {
			s.logger.Warn("content cache read failed", zap.String("key", s.key(key)), zap.Error(err))
		}
		return nil, false
	}
	return payload, true
}

// Set stores the payload. A non-positive ttl uses the default.
func (s *CacheService) Set(ctx context.Context, key string, payload json.RawMessage, ttl time.Duration) error {
	if !s.Enabled() {
		return nil
	}
	if ttl <= 0 {
		ttl = s.defaultTTL
	}
	start := time.Now()
	err := s.repo.Set(ctx, s.key(key), payload, ttl)
	s.metrics.ObserveCacheWrite(time.Since(start))
	if err != nil {
		s.logger.Warn("content cache write failed", zap.String("key", s.key(key)), zap.Error(err))
	}
	return err
}

// Invalidate removes the entries of this namespace that match pattern.
func (s *CacheService) Invalidate(ctx context.Context, pattern string) error {
	if !s.Enabled() {
		return nil
	}
	if err := s.repo.DeleteByPattern(ctx, s.key(pattern)); err != nil {
		s.logger.Warn("content cache invalidation failed", zap.String("pattern", s.key(pattern)), zap.Error(err))
		return err
	}
	return nil
}

// Purge removes every entry of this namespace.
func (s *CacheService) Purge(ctx context.Context) error {
	return s.Invalidate(ctx, "*")
}
