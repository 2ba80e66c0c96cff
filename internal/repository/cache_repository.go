package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	appErrors "github.com/noah-isme/spendtrails-site/pkg/errors"
)

const (
	contentKeyPrefix = "content:"
	scanBatchSize    = 100
)

// CacheRepository stores raw CMS payloads in Redis under the "content:" prefix.
type CacheRepository struct {
	client *redis.Client
	logger *zap.Logger
}

// NewCacheRepository constructs a cache repository. A nil client turns every lookup into a miss.
func NewCacheRepository(client *redis.Client, logger *zap.Logger) *CacheRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CacheRepository{client: client, logger: logger}
}

// Get returns the cached payload for key or appErrors.ErrCacheMiss. Entries that are not valid
// JSON are treated as corrupt and removed.
func (r *CacheRepository) Get(ctx context.Context, key string) (json.RawMessage, error) {
	if r.client == nil {
		return nil, appErrors.ErrCacheMiss
	}

	raw, err := r.client.Get(ctx, contentKeyPrefix+key).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		return nil, appErrors.ErrCacheMiss
	case err != nil:
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}

	if len(raw) == 0 || !json.Valid(raw) {
		if delErr := r.client.Unlink(ctx, contentKeyPrefix+key).Err(); delErr != nil {
			r.logger.Debug("failed to drop corrupt cache entry", zap.String("key", key), zap.Error(delErr))
		}
		return nil, appErrors.ErrCacheMiss
	}

	return json.RawMessage(raw), nil
}

// Set stores the payload with the given TTL.
func (r *CacheRepository) Set(ctx context.Context, key string, payload json.RawMessage, ttl time.Duration) error {
	if r.client == nil {
		return nil
	}
	if !json.Valid(payload) {
		return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("refusing to cache invalid JSON for %s", key))
	}

	if err := r.client.Set(ctx, contentKeyPrefix+key, []byte(payload), ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// DeleteByPattern removes entries matching a glob pattern. Keys are collected with SCAN and
// removed in batches with UNLINK so large purges do not block Redis.
func (r *CacheRepository) DeleteByPattern(ctx context.Context, pattern string) error {
	if r.client == nil {
		return nil
	}

	iter := r.client.Scan(ctx, 0, contentKeyPrefix+pattern, scanBatchSize).Iterator()
	batch := make([]string, 0, scanBatchSize)
	removed := 0
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := r.client.Unlink(ctx, batch...).Err(); err != nil {
			return fmt.Errorf("redis unlink %d keys: %w", len(batch), err)
		}
		removed += len(batch)
		batch = batch[:0]
		return nil
	}

	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == scanBatchSize {
			if err := flush(); err != nil {
				return err
			}
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("redis scan pattern %s: %w", pattern, err)
	}
	if err := flush(); err != nil {
		return err
	}

	r.logger.Debug("content cache entries removed", zap.String("pattern", pattern), zap.Int("count", removed))
	return nil
}

// Ping checks that Redis answers. A repository without a client reports ErrBackendUnavailable.
func (r *CacheRepository) Ping(ctx context.Context) error {
	if r.client == nil {
		return appErrors.Clone(appErrors.ErrBackendUnavailable, "content cache not configured")
	}
	return r.client.Ping(ctx).Err()
}

// Close releases the underlying Redis connection if present.
func (r *CacheRepository) Close() error {
	if r.client == nil {
		return nil
	}
	return r.client.Close()
}
