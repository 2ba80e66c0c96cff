package service

import (
	"context"
	"encoding/json"
	"errors"
	"path"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/spendtrails-site/internal/models"
	"github.com/noah-isme/spendtrails-site/pkg/config"
	appErrors "github.com/noah-isme/spendtrails-site/pkg/errors"
)

type stubBackend struct {
	cfg     models.SanityConfig
	payload json.RawMessage
	err     error
	calls   int32
}

func (b *stubBackend) Fetch(ctx context.Context, query string, params models.QueryParams) (json.RawMessage, error) {
	atomic.AddInt32(&b.calls, 1)
	if b.err != nil {
		return nil, b.err
	}
	return b.payload, nil
}

func (b *stubBackend) Config() models.SanityConfig {
	return b.cfg
}

type backendRecorder struct {
	mu      sync.Mutex
	configs []models.SanityConfig
	backend *stubBackend
	err     error
}

func (r *backendRecorder) factory(cfg models.SanityConfig) (ContentBackend, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.configs = append(r.configs, cfg)
	if r.err != nil {
		return nil, r.err
	}
	backend := *r.backend
	backend.cfg = cfg
	if len(r.configs) == 1 {
		r.backend = &backend
		return r.backend, nil
	}
	return &backend, nil
}

type memoryCacheRepo struct {
	mu    sync.Mutex
	items map[string]json.RawMessage
}

func newMemoryCacheRepo() *memoryCacheRepo {
	return &memoryCacheRepo{items: map[string]json.RawMessage{}}
}

func (m *memoryCacheRepo) Get(ctx context.Context, key string) (json.RawMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	payload, ok := m.items[key]
	if !ok {
		return nil, appErrors.ErrCacheMiss
	}
	return payload, nil
}

func (m *memoryCacheRepo) Set(ctx context.Context, key string, payload json.RawMessage, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = payload
	return nil
}

func (m *memoryCacheRepo) DeleteByPattern(ctx context.Context, pattern string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for key := range m.items {
		if matched, _ := path.Match(pattern, key); matched {
			delete(m.items, key)
		}
	}
	return nil
}

type panickingFallback struct{}

func (panickingFallback) Lookup(models.ContentType, string) interface{} {
	panic("store corrupted")
}

func decodeType(t *testing.T, payload json.RawMessage) string {
	t.Helper()
	var doc struct {
		Type string `json:"_type"`
	}
	require.NoError(t, json.Unmarshal(payload, &doc))
	return doc.Type
}

func decodeID(t *testing.T, payload json.RawMessage) string {
	t.Helper()
	var doc struct {
		ID string `json:"_id"`
	}
	require.NoError(t, json.Unmarshal(payload, &doc))
	return doc.ID
}

func newFallbackClient(t *testing.T) *ContentClient {
	t.Helper()
	return NewContentClient(ContentClientConfig{Env: config.SanityEnvConfig{AppEnv: config.EnvDevelopment}})
}

func TestContentClientFallbackConstruction(t *testing.T) {
	client := newFallbackClient(t)

	assert.Equal(t, models.ModeFallback, client.Mode())
	assert.False(t, client.IsConfigured())

	state := client.State()
	assert.True(t, state.IsInitialized)
	assert.Equal(t, models.ModeFallback, state.Mode)
	assert.Contains(t, state.ConfigIssues, "Project ID is missing")
	assert.Empty(t, state.LastError)

	assert.Equal(t, models.ConfigStatusMissing, client.StartupValidation().ConfigStatus)
}

func TestContentClientStateIsCopy(t *testing.T) {
	client := newFallbackClient(t)

	state := client.State()
	state.ConfigIssues[0] = "tampered"
	state.LastError = "tampered"

	fresh := client.State()
	assert.NotEqual(t, "tampered", fresh.ConfigIssues[0])
	assert.Empty(t, fresh.LastError)
}

func TestContentClientFallbackDispatch(t *testing.T) {
	client := newFallbackClient(t)
	ctx := context.Background()

	for _, ct := range []models.ContentType{
		models.ContentTypeHomepage,
		models.ContentTypeSiteSettings,
		models.ContentTypeFeaturesPage,
		models.ContentTypePricingPage,
	} {
		query, ok := QueryFor(ct)
		require.True(t, ok)
		payload, err := client.Fetch(ctx, query, nil)
		require.NoError(t, err)
		assert.Equal(t, string(ct), decodeType(t, payload))
	}

	payload, err := client.Fetch(ctx, PageQuery, models.QueryParams{"slug": "about"})
	require.NoError(t, err)
	var page models.Page
	require.NoError(t, json.Unmarshal(payload, &page))
	assert.Equal(t, "about", page.Slug.Current)

	payload, err = client.Fetch(ctx, PageQuery, models.QueryParams{"slug": "does-not-exist"})
	require.NoError(t, err)
	assert.JSONEq(t, "null", string(payload))
}

func TestContentClientFallbackUntaggedQueries(t *testing.T) {
	client := newFallbackClient(t)
	ctx := context.Background()

	payload, err := client.Fetch(ctx, models.Query{GROQ: `*[_type == "homepage"][0]`}, nil)
	require.NoError(t, err)
	assert.Equal(t, "homepage", decodeType(t, payload))

	payload, err = client.Fetch(ctx, models.Query{GROQ: `*[_type == "page" && slug.current == "privacy"][0]`}, nil)
	require.NoError(t, err)
	var page models.Page
	require.NoError(t, json.Unmarshal(payload, &page))
	assert.Equal(t, "privacy", page.Slug.Current)

	for _, groq := range []string{"", `*[_type == "blogPost"]`, "anything at all"} {
		payload, err = client.Fetch(ctx, models.Query{GROQ: groq}, nil)
		require.NoError(t, err)
		assert.JSONEq(t, "[]", string(payload), groq)
	}
}

func TestContentClientFallbackDispatchPanicReturnsNull(t *testing.T) {
	client := NewContentClient(ContentClientConfig{Fallback: panickingFallback{}})

	payload, err := client.Fetch(context.Background(), HomepageQuery, nil)

	require.NoError(t, err)
	assert.JSONEq(t, "null", string(payload))
	assert.Contains(t, client.State().LastError, "store corrupted")
}

func TestContentClientLiveFetch(t *testing.T) {
	recorder := &backendRecorder{backend: &stubBackend{payload: json.RawMessage(`{"_type":"homepage","_id":"cms"}`)}}
	client := NewContentClient(ContentClientConfig{Env: validSanityEnv(), NewBackend: recorder.factory})

	assert.Equal(t, models.ModeLive, client.Mode())
	assert.True(t, client.IsConfigured())
	require.Len(t, recorder.configs, 1)
	assert.Equal(t, "abc12345", recorder.configs[0].ProjectID)
	assert.Equal(t, DefaultPerspective, recorder.configs[0].Perspective)

	payload, err := client.Fetch(context.Background(), HomepageQuery, nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{"_type":"homepage","_id":"cms"}`, string(payload))
	assert.Same(t, recorder.backend, client.LiveBackend())
	assert.Same(t, recorder.backend, client.Backend(true))
}

type gatedBackend struct {
	cfg     models.SanityConfig
	payload json.RawMessage
	started chan struct{}
	release chan struct{}
	once    sync.Once
	calls   int32
}

func newGatedBackend(payload string) *gatedBackend {
	return &gatedBackend{payload: json.RawMessage(payload), started: make(chan struct{}), release: make(chan struct{})}
}

func (b *gatedBackend) Fetch(ctx context.Context, query string, params models.QueryParams) (json.RawMessage, error) {
	atomic.AddInt32(&b.calls, 1)
	b.once.Do(func() { close(b.started) })
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-b.release:
		return b.payload, nil
	}
}

func (b *gatedBackend) Config() models.SanityConfig {
	return b.cfg
}

func TestContentClientSharedFetchSurvivesCallerCancellation(t *testing.T) {
	backend := newGatedBackend(`{"_type":"homepage","_id":"cms"}`)
	metrics := NewMetricsService()
	client := NewContentClient(ContentClientConfig{
		Env:     validSanityEnv(),
		Metrics: metrics,
		NewBackend: func(cfg models.SanityConfig) (ContentBackend, error) {
			backend.cfg = cfg
			return backend, nil
		},
	})
	require.Equal(t, models.ModeLive, client.Mode())

	first, cancelFirst := context.WithCancel(context.Background())
	defer cancelFirst()
	firstResult := make(chan json.RawMessage, 1)
	go func() {
		payload, _ := client.Fetch(first, HomepageQuery, nil)
		firstResult <- payload
	}()
	<-backend.started

	secondResult := make(chan json.RawMessage, 1)
	go func() {
		payload, _ := client.Fetch(context.Background(), HomepageQuery, nil)
		secondResult <- payload
	}()
	time.Sleep(20 * time.Millisecond)

	cancelFirst()
	select {
	case payload := <-firstResult:
		assert.Equal(t, "fallback-homepage", decodeID(t, payload))
	case <-time.After(2 * time.Second):
		t.Fatal("cancelled caller did not return")
	}

	close(backend.release)
	select {
	case payload := <-secondResult:
		assert.JSONEq(t, `{"_type":"homepage","_id":"cms"}`, string(payload))
	case <-time.After(2 * time.Second):
		t.Fatal("second caller did not return")
	}

	assert.Empty(t, client.State().LastError)
	assert.Equal(t, uint64(0), metrics.Snapshot().LiveFailures)
}

func TestContentClientBuildsPreviewBackendWithToken(t *testing.T) {
	env := validSanityEnv()
	env.ReadToken = "sk-real-token"
	recorder := &backendRecorder{backend: &stubBackend{payload: models.NullJSON}}

	client := NewContentClient(ContentClientConfig{Env: env, NewBackend: recorder.factory})

	require.Len(t, recorder.configs, 2)
	preview := recorder.configs[1]
	assert.Equal(t, PreviewPerspective, preview.Perspective)
	assert.False(t, preview.UseCDN)
	assert.Equal(t, "sk-real-token", preview.Token)

	assert.Equal(t, PreviewPerspective, client.Backend(true).Config().Perspective)
	assert.Equal(t, DefaultPerspective, client.Backend(false).Config().Perspective)
}

func TestContentClientLiveFailureServesFallbackForThatCall(t *testing.T) {
	recorder := &backendRecorder{backend: &stubBackend{err: errors.New("connection refused")}}
	metrics := NewMetricsService()
	client := NewContentClient(ContentClientConfig{Env: validSanityEnv(), NewBackend: recorder.factory, Metrics: metrics})

	payload, err := client.Fetch(context.Background(), PricingPageQuery, nil)

	require.NoError(t, err)
	assert.Equal(t, "pricingPage", decodeType(t, payload))
	assert.Equal(t, models.ModeLive, client.Mode())
	assert.Equal(t, "connection refused", client.State().LastError)
	assert.Equal(t, uint64(1), metrics.Snapshot().LiveFailures)
	assert.Equal(t, uint64(1), metrics.Snapshot().FallbackServes)

	recorder.backend.err = nil
	recorder.backend.payload = json.RawMessage(`{"_type":"pricingPage"}`)
	payload, err = client.Fetch(context.Background(), PricingPageQuery, nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{"_type":"pricingPage"}`, string(payload))
}

func TestContentClientConstructionErrorForcesFallback(t *testing.T) {
	recorder := &backendRecorder{err: errors.New("boom")}

	client := NewContentClient(ContentClientConfig{Env: validSanityEnv(), NewBackend: recorder.factory})

	assert.Equal(t, models.ModeFallback, client.Mode())
	assert.False(t, client.IsConfigured())
	state := client.State()
	assert.True(t, state.IsInitialized)
	assert.Equal(t, models.ModeFallback, state.Mode)
	assert.Contains(t, state.ConfigIssues, "Initialization error: boom")

	payload, err := client.Fetch(context.Background(), HomepageQuery, nil)
	require.NoError(t, err)
	assert.Equal(t, "homepage", decodeType(t, payload))
}

func TestContentClientConstructionPanicForcesFallback(t *testing.T) {
	factory := func(models.SanityConfig) (ContentBackend, error) {
		panic("sdk exploded")
	}

	var client *ContentClient
	require.NotPanics(t, func() {
		client = NewContentClient(ContentClientConfig{Env: validSanityEnv(), NewBackend: factory})
	})

	assert.Equal(t, models.ModeFallback, client.Mode())
	assert.Contains(t, client.State().LastError, "sdk exploded")

	backend := client.LiveBackend()
	require.NotNil(t, backend)
	assert.Equal(t, "fallback", backend.Config().ProjectID)
	_, err := backend.Fetch(context.Background(), "*", nil)
	assert.ErrorIs(t, err, appErrors.ErrBackendUnavailable)
}

func TestContentClientLiveBackendInFallbackMode(t *testing.T) {
	client := newFallbackClient(t)

	backend := client.LiveBackend()

	require.NotNil(t, backend)
	assert.Equal(t, SafeDefaultConfig(), backend.Config())
	assert.Same(t, backend, client.LiveBackend())
	assert.Same(t, backend, client.Backend(true))
}

func TestContentClientServesRepeatedQueriesFromCache(t *testing.T) {
	recorder := &backendRecorder{backend: &stubBackend{payload: json.RawMessage(`{"_type":"siteSettings"}`)}}
	metrics := NewMetricsService()
	cache := NewCacheService(newMemoryCacheRepo(), metrics, time.Minute, nil, true)
	client := NewContentClient(ContentClientConfig{Env: validSanityEnv(), NewBackend: recorder.factory, Cache: cache, Metrics: metrics})

	for i := 0; i < 3; i++ {
		payload, err := client.Fetch(context.Background(), SiteSettingsQuery, nil)
		require.NoError(t, err)
		assert.JSONEq(t, `{"_type":"siteSettings"}`, string(payload))
	}

	assert.Equal(t, int32(1), atomic.LoadInt32(&recorder.backend.calls))
	snapshot := metrics.Snapshot()
	assert.Equal(t, uint64(2), snapshot.CacheHits)
	assert.Equal(t, uint64(1), snapshot.CacheMisses)
	assert.Equal(t, models.ModeLive, snapshot.Mode)
}

func TestContentClientConcurrentFailuresNeverError(t *testing.T) {
	recorder := &backendRecorder{backend: &stubBackend{err: errors.New("timeout")}}
	client := NewContentClient(ContentClientConfig{Env: validSanityEnv(), NewBackend: recorder.factory})

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			payload, err := client.Fetch(context.Background(), FeaturesPageQuery, nil)
			assert.NoError(t, err)
			assert.NotEmpty(t, payload)
			_ = client.State()
		}()
	}
	wg.Wait()

	assert.Equal(t, "timeout", client.State().LastError)
	assert.Equal(t, models.ModeLive, client.Mode())
}

func TestContentClientPrimeSurfacesLiveErrors(t *testing.T) {
	recorder := &backendRecorder{backend: &stubBackend{err: errors.New("dial tcp: timeout")}}
	client := NewContentClient(ContentClientConfig{Env: validSanityEnv(), NewBackend: recorder.factory})

	err := client.Prime(context.Background(), HomepageQuery, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dial tcp")
	assert.Equal(t, models.ModeLive, client.Mode())
}

func TestContentClientPrimeFillsCache(t *testing.T) {
	recorder := &backendRecorder{backend: &stubBackend{payload: json.RawMessage(`{"_type":"homepage"}`)}}
	cache := NewCacheService(newMemoryCacheRepo(), nil, time.Minute, nil, true)
	client := NewContentClient(ContentClientConfig{Env: validSanityEnv(), NewBackend: recorder.factory, Cache: cache})

	require.NoError(t, client.Prime(context.Background(), HomepageQuery, nil))
	payload, err := client.Fetch(context.Background(), HomepageQuery, nil)
	require.NoError(t, err)
	assert.Equal(t, "homepage", decodeType(t, payload))
	assert.Equal(t, int32(1), atomic.LoadInt32(&recorder.backend.calls))
}

func TestContentClientPrimeRefusesFallbackMode(t *testing.T) {
	err := newFallbackClient(t).Prime(context.Background(), HomepageQuery, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, appErrors.ErrInvalidBackendConfig)
	assert.False(t, appErrors.IsRetryable(err))
}

func TestInferContentType(t *testing.T) {
	tests := []struct {
		groq string
		want models.ContentType
	}{
		{`*[_type == "homepage"][0]`, models.ContentTypeHomepage},
		{`*[_type == "siteSettings"][0]`, models.ContentTypeSiteSettings},
		{`*[_type == "featuresPage"][0]`, models.ContentTypeFeaturesPage},
		{`*[_type == "pricingPage"][0]`, models.ContentTypePricingPage},
		{`*[_type == "page"][0]`, models.ContentTypePage},
		{`*[slug.current == $slug][0]`, models.ContentTypePage},
		{`*[_type == "homepage" || _type == "pricingPage"]`, models.ContentTypeHomepage},
		{`*[_type == "author"]`, models.ContentTypeUnknown},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, InferContentType(tt.groq), tt.groq)
	}
}

func TestExtractSlugFromQuery(t *testing.T) {
	assert.Equal(t, "about", ExtractSlugFromQuery(`*[slug.current == "about"][0]`))
	assert.Equal(t, "terms", ExtractSlugFromQuery(`*[slug.current=='terms'][0]`))
	assert.Equal(t, "", ExtractSlugFromQuery(`*[slug.current == $slug][0]`))
	assert.Equal(t, "", ExtractSlugFromQuery(`*[_type == "homepage"]`))
}
