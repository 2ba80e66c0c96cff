package service

import (
	"context"
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/noah-isme/spendtrails-site/internal/models"
	"github.com/noah-isme/spendtrails-site/internal/repository"
	"github.com/noah-isme/spendtrails-site/pkg/config"
	appErrors "github.com/noah-isme/spendtrails-site/pkg/errors"
	"github.com/noah-isme/spendtrails-site/pkg/logger"
)

// ContentBackend executes GROQ queries against the CMS.
type ContentBackend interface {
	Fetch(ctx context.Context, query string, params models.QueryParams) (json.RawMessage, error)
	Config() models.SanityConfig
}

// BackendFactory builds a backend handle for a configuration.
type BackendFactory func(cfg models.SanityConfig) (ContentBackend, error)

// FallbackLookup resolves static content for a content type.
type FallbackLookup interface {
	Lookup(contentType models.ContentType, slug string) interface{}
}

// ContentClientConfig carries the dependencies of a ContentClient.
type ContentClientConfig struct {
	Env        config.SanityEnvConfig
	NewBackend BackendFactory
	Fallback   FallbackLookup
	Cache      *CacheService
	CacheTTL   time.Duration
	Metrics    *MetricsService
	Logger     *zap.Logger
}

// SanityBackendFactory returns a factory producing HTTP backends with the given timeout.
func SanityBackendFactory(timeout time.Duration, opts ...repository.SanityRepositoryOption) BackendFactory {
	return func(cfg models.SanityConfig) (ContentBackend, error) {
		repo, err := repository.NewSanityRepository(cfg, timeout, opts...)
		if err != nil {
			return nil, err
		}
		return repo, nil
	}
}

// ContentClient routes content queries to the live CMS or to static fallback data. The mode is
// decided once at construction and never changes afterwards.
type ContentClient struct {
	mode       models.ConfigurationMode
	validation models.ConfigValidationResult
	startup    models.StartupValidationResult

	live    ContentBackend
	preview ContentBackend

	newBackend BackendFactory
	compatOnce sync.Once
	compat     ContentBackend

	fallback FallbackLookup
	cache    *CacheService
	cacheTTL time.Duration
	timeout  time.Duration
	metrics  *MetricsService
	logger   *zap.Logger
	group    singleflight.Group

	mu    sync.RWMutex
	state models.ClientState
}

// NewContentClient validates the environment and initialises the client. It never fails: any
// problem leaves the client in fallback mode.
func NewContentClient(cfg ContentClientConfig) *ContentClient {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	newBackend := cfg.NewBackend
	if newBackend == nil {
		newBackend = SanityBackendFactory(cfg.Env.HTTPTimeout)
	}
	fallback := cfg.Fallback
	if fallback == nil {
		fallback = repository.NewFallbackRepository()
	}

	startup := PerformStartupValidation(cfg.Env, logger)
	validation := ValidateEnvironmentConfig(cfg.Env)

	c := &ContentClient{
		mode:       startup.Mode,
		validation: validation,
		startup:    startup,
		newBackend: newBackend,
		fallback:   fallback,
		cache:      cfg.Cache,
		cacheTTL:   cfg.CacheTTL,
		timeout:    liveFetchTimeout(cfg.Env.HTTPTimeout),
		metrics:    cfg.Metrics,
		logger:     logger,
		state: models.ClientState{
			Mode:         startup.Mode,
			ConfigIssues: append([]string{}, validation.Issues...),
		},
	}

	if c.mode.IsLive() {
		if err := c.initLive(cfg.Env); err != nil {
			c.mode = models.ModeFallback
			c.live = nil
			c.preview = nil
			c.state.Mode = models.ModeFallback
			c.state.LastError = err.Error()
			c.state.ConfigIssues = append(c.state.ConfigIssues, "Initialization error: "+err.Error())
			logger.Error("failed to initialise live content backend, serving static content", zap.Error(err))
		} else {
			c.cache = c.cache.WithNamespace(cacheNamespace(c.live.Config()))
			logger.Info("content client initialised in live mode",
				zap.String("project_id", c.live.Config().ProjectID),
				zap.String("dataset", c.live.Config().Dataset),
				zap.Bool("preview", c.preview != nil))
		}
	}

	if !c.mode.IsLive() {
		logger.Info("content client initialised in fallback mode, serving static content")
	}

	c.state.IsInitialized = true
	c.metrics.SetContentMode(c.mode)

	return c
}

func (c *ContentClient) initLive(env config.SanityEnvConfig) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("backend construction panicked: %v", r)
		}
	}()

	cfg := GetSafeEnvironmentConfig(env)
	live, err := c.newBackend(cfg)
	if err != nil {
		return err
	}

	var preview ContentBackend
	if cfg.HasToken() {
		previewCfg := cfg
		previewCfg.UseCDN = false
		previewCfg.Perspective = PreviewPerspective
		if preview, err = c.newBackend(previewCfg); err != nil {
			return err
		}
	}

	c.live = live
	c.preview = preview
	return nil
}

// Fetch resolves a query. It never returns an error: live failures degrade to fallback data for
// this call only, and unrecognised fallback queries yield an empty array.
func (c *ContentClient) Fetch(ctx context.Context, query models.Query, params models.QueryParams) (json.RawMessage, error) {
	if query.Type == models.ContentTypeUnknown {
		query.Type = InferContentType(query.GROQ)
	}

	if c.mode.IsLive() && c.live != nil {
		payload, source, err := c.fetchLive(ctx, query, params)
		if err == nil {
			c.metrics.RecordContentFetch(query.Type, source)
			return payload, nil
		}
		if ctx.Err() != nil {
			logger.WithContext(ctx, c.logger).Debug("content request cancelled, serving fallback content",
				zap.String("content_type", string(query.Type)),
				zap.Error(err))
			return c.fetchFallback(query, params), nil
		}
		logger.WithContext(ctx, c.logger).Warn("live content fetch failed, serving fallback content",
			zap.String("content_type", string(query.Type)),
			zap.Error(err))
		c.recordError(err)
		c.metrics.RecordLiveFailure(query.Type)
	}

	return c.fetchFallback(query, params), nil
}

// Prime runs a query against the live backend and caches the result. Unlike Fetch it surfaces
// live errors, and it refuses to run in fallback mode.
func (c *ContentClient) Prime(ctx context.Context, query models.Query, params models.QueryParams) error {
	if !c.mode.IsLive() || c.live == nil {
		return appErrors.Clone(appErrors.ErrInvalidBackendConfig, "content client is in fallback mode")
	}
	if query.Type == models.ContentTypeUnknown {
		query.Type = InferContentType(query.GROQ)
	}
	_, source, err := c.fetchLive(ctx, query, params)
	if err != nil {
		return err
	}
	c.metrics.RecordContentFetch(query.Type, source)
	return nil
}

// PurgeCache drops the cached live responses of the configured project, dataset and
// perspective. It is a no-op in fallback mode.
func (c *ContentClient) PurgeCache(ctx context.Context) error {
	if !c.mode.IsLive() {
		return nil
	}
	return c.cache.Purge(ctx)
}

func (c *ContentClient) fetchLive(ctx context.Context, query models.Query, params models.QueryParams) (json.RawMessage, models.FetchSource, error) {
	key := cacheKey(query, params)
	if payload, ok := c.cache.Get(ctx, key); ok {
		return payload, models.SourceCache, nil
	}

	// The shared flight outlives any single caller; each caller waits on its own context.
	flight := c.group.DoChan(key, func() (interface{}, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.timeout)
		defer cancel()

		start := time.Now()
		payload, err := c.live.Fetch(fetchCtx, query.GROQ, params)
		c.metrics.ObserveLiveFetch(time.Since(start))
		if err != nil {
			return nil, err
		}
		if len(payload) == 0 {
			payload = models.NullJSON
		}
		_ = c.cache.Set(fetchCtx, key, payload, c.cacheTTL)
		return payload, nil
	})

	select {
	case <-ctx.Done():
		return nil, models.SourceLive, ctx.Err()
	case res := <-flight:
		if res.Err != nil {
			return nil, models.SourceLive, res.Err
		}
		payload, _ := res.Val.(json.RawMessage)
		return payload, models.SourceLive, nil
	}
}

func liveFetchTimeout(timeout time.Duration) time.Duration {
	if timeout <= 0 {
		return 10 * time.Second
	}
	return timeout
}

func (c *ContentClient) fetchFallback(query models.Query, params models.QueryParams) (payload json.RawMessage) {
	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("fallback lookup panicked: %v", r)
			c.logger.Error("fallback content dispatch failed", zap.String("content_type", string(query.Type)), zap.Error(err))
			c.recordError(err)
			payload = models.NullJSON
		}
	}()

	slug := params.Slug()
	if slug == "" && query.Type == models.ContentTypePage {
		slug = ExtractSlugFromQuery(query.GROQ)
	}

	encoded, err := json.Marshal(c.fallback.Lookup(query.Type, slug))
	if err != nil {
		c.logger.Error("fallback content encoding failed", zap.String("content_type", string(query.Type)), zap.Error(err))
		c.recordError(err)
		return models.NullJSON
	}

	c.metrics.RecordContentFetch(query.Type, models.SourceFallback)
	return encoded
}

func (c *ContentClient) recordError(err error) {
	c.mu.Lock()
	c.state.LastError = err.Error()
	c.mu.Unlock()
}

// Mode returns the operating mode decided at construction.
func (c *ContentClient) Mode() models.ConfigurationMode {
	return c.mode
}

// IsConfigured reports whether the client is live and the environment validated cleanly.
func (c *ContentClient) IsConfigured() bool {
	return c.mode.IsLive() && c.validation.IsValid
}

// State returns a copy of the client state.
func (c *ContentClient) State() models.ClientState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state.Clone()
}

// StartupValidation returns the startup validation recorded at construction.
func (c *ContentClient) StartupValidation() models.StartupValidationResult {
	result := c.startup
	result.EnvironmentIssues = append([]models.EnvironmentIssue{}, c.startup.EnvironmentIssues...)
	result.Recommendations = append([]string{}, c.startup.Recommendations...)
	return result
}

// Backend returns the preview backend when preview is requested and available, otherwise the
// live backend handle.
func (c *ContentClient) Backend(preview bool) ContentBackend {
	if preview && c.preview != nil {
		return c.preview
	}
	return c.LiveBackend()
}

// LiveBackend returns a usable backend handle in every mode. In fallback mode it is built from
// SafeDefaultConfig and is never used for content routing.
func (c *ContentClient) LiveBackend() ContentBackend {
	if c.live != nil {
		return c.live
	}
	c.compatOnce.Do(func() {
		backend, err := c.buildCompatBackend()
		if err != nil {
			c.logger.Debug("using offline backend handle", zap.Error(err))
			backend = offlineBackend{cfg: SafeDefaultConfig()}
		}
		c.compat = backend
	})
	return c.compat
}

func (c *ContentClient) buildCompatBackend() (backend ContentBackend, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("backend construction panicked: %v", r)
		}
	}()
	return c.newBackend(SafeDefaultConfig())
}

// offlineBackend stands in for a backend that could not be constructed.
type offlineBackend struct {
	cfg models.SanityConfig
}

func (b offlineBackend) Fetch(context.Context, string, models.QueryParams) (json.RawMessage, error) {
	return nil, appErrors.ErrBackendUnavailable
}

func (b offlineBackend) Config() models.SanityConfig {
	return b.cfg
}

func cacheNamespace(cfg models.SanityConfig) string {
	return fmt.Sprintf("%s:%s:%s", cfg.ProjectID, cfg.Dataset, cfg.Perspective)
}

func cacheKey(query models.Query, params models.QueryParams) string {
	label := string(query.Type)
	if label == "" {
		label = "query"
	}
	encodedParams, _ := json.Marshal(params)
	sum := sha1.Sum(append([]byte(query.GROQ), encodedParams...))
	return fmt.Sprintf("%s:%x", label, sum[:8])
}
