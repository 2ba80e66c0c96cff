package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/gregjones/httpcache"
	lru "github.com/hashicorp/golang-lru"

	"github.com/noah-isme/spendtrails-site/internal/models"
	appErrors "github.com/noah-isme/spendtrails-site/pkg/errors"
)

var (
	backendProjectIDPattern  = regexp.MustCompile(`^[a-z0-9-]+$`)
	backendAPIVersionPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

const (
	maxErrorBodyBytes    = 4 << 10
	// ResponseCacheEntries bounds the upstream responses kept by the HTTP cache.
	ResponseCacheEntries = 512
)

// responseCache is an httpcache.Cache that evicts the least recently used response.
type responseCache struct {
	entries *lru.Cache
}

func newResponseCache(size int) (*responseCache, error) {
	entries, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &responseCache{entries: entries}, nil
}

func (c *responseCache) Get(key string) ([]byte, bool) {
	value, ok := c.entries.Get(key)
	if !ok {
		return nil, false
	}
	body, ok := value.([]byte)
	return body, ok
}

func (c *responseCache) Set(key string, body []byte) {
	c.entries.Add(key, body)
}

func (c *responseCache) Delete(key string) {
	c.entries.Remove(key)
}

// Len reports the number of cached responses.
func (c *responseCache) Len() int {
	return c.entries.Len()
}

// SanityRepository queries a Sanity dataset over the HTTP query API.
type SanityRepository struct {
	cfg     models.SanityConfig
	client  *http.Client
	baseURL string
}

// SanityRepositoryOption customises a SanityRepository.
type SanityRepositoryOption func(*SanityRepository)

// WithHTTPClient replaces the caching HTTP client.
func WithHTTPClient(client *http.Client) SanityRepositoryOption {
	return func(r *SanityRepository) {
		if client != nil {
			r.client = client
		}
	}
}

// WithBaseURL points the repository at a different API host.
func WithBaseURL(base string) SanityRepositoryOption {
	return func(r *SanityRepository) {
		if base != "" {
			r.baseURL = strings.TrimRight(base, "/")
		}
	}
}

type sanityQueryResponse struct {
	Result json.RawMessage `json:"result"`
	Ms     int             `json:"ms"`
}

type sanityErrorResponse struct {
	Error struct {
		Description string `json:"description"`
		Type        string `json:"type"`
	} `json:"error"`
	Message string `json:"message"`
}

// NewSanityRepository validates the connection settings and builds a repository whose HTTP
// client honours upstream cache headers.
func NewSanityRepository(cfg models.SanityConfig, timeout time.Duration, opts ...SanityRepositoryOption) (*SanityRepository, error) {
	if !backendProjectIDPattern.MatchString(cfg.ProjectID) {
		return nil, appErrors.Clone(appErrors.ErrInvalidBackendConfig, fmt.Sprintf("invalid project id %q", cfg.ProjectID))
	}
	if strings.TrimSpace(cfg.Dataset) == "" {
		return nil, appErrors.Clone(appErrors.ErrInvalidBackendConfig, "dataset is required")
	}
	if !backendAPIVersionPattern.MatchString(cfg.APIVersion) {
		return nil, appErrors.Clone(appErrors.ErrInvalidBackendConfig, fmt.Sprintf("invalid api version %q", cfg.APIVersion))
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	responses, err := newResponseCache(ResponseCacheEntries)
	if err != nil {
		return nil, err
	}
	transport := &httpcache.Transport{
		Cache:               responses,
		MarkCachedResponses: true,
		Transport:           http.DefaultTransport,
	}
	client := transport.Client()
	client.Timeout = timeout

	host := "api.sanity.io"
	if cfg.UseCDN && !cfg.HasToken() {
		host = "apicdn.sanity.io"
	}

	repo := &SanityRepository{
		cfg:     cfg,
		client:  client,
		baseURL: fmt.Sprintf("https://%s.%s", cfg.ProjectID, host),
	}
	for _, opt := range opts {
		opt(repo)
	}
	return repo, nil
}

// Config returns the connection settings the repository was built with.
func (r *SanityRepository) Config() models.SanityConfig {
	return r.cfg
}

// Fetch runs a GROQ query and returns the raw "result" member. A missing document yields JSON null.
func (r *SanityRepository) Fetch(ctx context.Context, query string, params models.QueryParams) (json.RawMessage, error) {
	endpoint, err := r.queryURL(query, params)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build sanity request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if r.cfg.HasToken() {
		req.Header.Set("Authorization", "Bearer "+r.cfg.Token)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sanity query: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		return nil, decodeSanityError(resp)
	}

	// Reading to EOF lets the HTTP cache store the response.
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read sanity response: %w", err)
	}
	var payload sanityQueryResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode sanity response: %w", err)
	}
	if len(payload.Result) == 0 {
		return models.NullJSON, nil
	}
	return payload.Result, nil
}

func (r *SanityRepository) queryURL(query string, params models.QueryParams) (string, error) {
	values := url.Values{}
	values.Set("query", query)
	if r.cfg.Perspective != "" {
		values.Set("perspective", r.cfg.Perspective)
	}

	keys := make([]string, 0, len(params))
	for key := range params {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		encoded, err := json.Marshal(params[key])
		if err != nil {
			return "", fmt.Errorf("encode query param %s: %w", key, err)
		}
		values.Set("$"+key, string(encoded))
	}

	return fmt.Sprintf("%s/v%s/data/query/%s?%s", r.baseURL, r.cfg.APIVersion, url.PathEscape(r.cfg.Dataset), values.Encode()), nil
}

func decodeSanityError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
	var payload sanityErrorResponse
	message := strings.TrimSpace(string(body))
	if err := json.Unmarshal(body, &payload); err == nil {
		switch {
		case payload.Error.Description != "":
			message = payload.Error.Description
		case payload.Message != "":
			message = payload.Message
		}
	}
	if message == "" {
		message = http.StatusText(resp.StatusCode)
	}
	cause := fmt.Errorf("status %d: %s", resp.StatusCode, message)
	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError {
		return appErrors.Wrap(cause, appErrors.ErrBackendUnavailable.Code, appErrors.ErrBackendUnavailable.Status, "sanity query failed")
	}
	return appErrors.Wrap(cause, appErrors.ErrBackendRejected.Code, appErrors.ErrBackendRejected.Status, "sanity rejected the query")
}
