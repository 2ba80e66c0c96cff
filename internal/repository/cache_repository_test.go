package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/spendtrails-site/pkg/errors"
)

func TestCacheRepositoryWithoutClient(t *testing.T) {
	repo := NewCacheRepository(nil, nil)
	ctx := context.Background()

	_, err := repo.Get(ctx, "homepage")
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrCacheMiss))

	assert.NoError(t, repo.Set(ctx, "homepage", []byte(`{}`), time.Minute))
	assert.NoError(t, repo.DeleteByPattern(ctx, "*"))
	assert.ErrorIs(t, repo.Ping(ctx), appErrors.ErrBackendUnavailable)
	assert.NoError(t, repo.Close())
}

func TestCacheRepositoryUnreachableRedis(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 100 * time.Millisecond, MaxRetries: -1})
	repo := NewCacheRepository(client, nil)
	t.Cleanup(func() { _ = repo.Close() })
	ctx := context.Background()

	_, err := repo.Get(ctx, "homepage")
	require.Error(t, err)
	assert.False(t, errors.Is(err, appErrors.ErrCacheMiss))
	assert.Contains(t, err.Error(), "redis get homepage")

	assert.Error(t, repo.Set(ctx, "homepage", []byte(`{}`), time.Minute))
	assert.Error(t, repo.DeleteByPattern(ctx, "*"))
	assert.Error(t, repo.Ping(ctx))
}

func TestCacheRepositoryRejectsInvalidPayload(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 100 * time.Millisecond, MaxRetries: -1})
	repo := NewCacheRepository(client, nil)
	t.Cleanup(func() { _ = repo.Close() })

	err := repo.Set(context.Background(), "homepage", []byte(`{not json`), time.Minute)
	assert.ErrorIs(t, err, appErrors.ErrValidation)
}
