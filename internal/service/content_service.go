package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/goliatone/go-slug"
	"go.uber.org/zap"

	"github.com/noah-isme/spendtrails-site/internal/models"
	appErrors "github.com/noah-isme/spendtrails-site/pkg/errors"
	"github.com/noah-isme/spendtrails-site/pkg/logger"
)

// Substitution reasons reported to metrics.
const (
	reasonFetchError   = "fetch_error"
	reasonEmpty        = "empty"
	reasonNotAnObject  = "not_object"
	reasonDecodeError  = "decode_error"
	reasonInvalidShape = "invalid_shape"
)

type contentClient interface {
	Fetch(ctx context.Context, query models.Query, params models.QueryParams) (json.RawMessage, error)
	Mode() models.ConfigurationMode
	IsConfigured() bool
	State() models.ClientState
}

type fallbackStore interface {
	GetHomepage() *models.Homepage
	GetSiteSettings() *models.SiteSettings
	GetFeaturesPage() *models.FeaturesPage
	GetPricingPage() *models.PricingPage
	GetPage(slug string) *models.Page
}

// ContentService exposes typed content accessors that always return schema-valid documents.
type ContentService struct {
	client    contentClient
	fallback  fallbackStore
	validator *validator.Validate
	metrics   *MetricsService
	logger    *zap.Logger
}

// NewContentService constructs the content facade.
func NewContentService(client contentClient, fallback fallbackStore, validate *validator.Validate, metrics *MetricsService, logger *zap.Logger) *ContentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ContentService{client: client, fallback: fallback, validator: validate, metrics: metrics, logger: logger}
}

// GetHomepageData returns the homepage document.
func (s *ContentService) GetHomepageData(ctx context.Context) *models.Homepage {
	var doc models.Homepage
	if s.load(ctx, HomepageQuery, nil, &doc) {
		return &doc
	}
	return s.fallback.GetHomepage()
}

// GetSiteSettings returns the site settings document.
func (s *ContentService) GetSiteSettings(ctx context.Context) *models.SiteSettings {
	var doc models.SiteSettings
	if s.load(ctx, SiteSettingsQuery, nil, &doc) {
		return &doc
	}
	return s.fallback.GetSiteSettings()
}

// GetFeaturesPageData returns the features page document.
func (s *ContentService) GetFeaturesPageData(ctx context.Context) *models.FeaturesPage {
	var doc models.FeaturesPage
	if s.load(ctx, FeaturesPageQuery, nil, &doc) {
		return &doc
	}
	return s.fallback.GetFeaturesPage()
}

// GetPricingPageData returns the pricing page document.
func (s *ContentService) GetPricingPageData(ctx context.Context) *models.PricingPage {
	var doc models.PricingPage
	if s.load(ctx, PricingPageQuery, nil, &doc) {
		return &doc
	}
	return s.fallback.GetPricingPage()
}

// GetPageData returns the page addressed by slug, or nil when no such page exists.
func (s *ContentService) GetPageData(ctx context.Context, rawSlug string) *models.Page {
	pageSlug := NormalizePageSlug(rawSlug)
	if pageSlug == "" {
		return nil
	}

	if !slug.IsValid(pageSlug) {
		return s.fallback.GetPage(pageSlug)
	}

	var doc models.Page
	if s.load(ctx, PageQuery, models.QueryParams{"slug": pageSlug}, &doc) {
		return &doc
	}
	return s.fallback.GetPage(pageSlug)
}

// SafeContentFetch dispatches by content type tag. Only an unknown tag produces an error.
func (s *ContentService) SafeContentFetch(ctx context.Context, contentType string, params models.QueryParams) (interface{}, error) {
	ct, ok := models.ParseContentType(contentType)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrUnknownContentType, fmt.Sprintf("unknown content type: %s", contentType))
	}

	switch ct {
	case models.ContentTypeHomepage:
		return s.GetHomepageData(ctx), nil
	case models.ContentTypeSiteSettings:
		return s.GetSiteSettings(ctx), nil
	case models.ContentTypeFeaturesPage:
		return s.GetFeaturesPageData(ctx), nil
	case models.ContentTypePricingPage:
		return s.GetPricingPageData(ctx), nil
	default:
		if page := s.GetPageData(ctx, params.Slug()); page != nil {
			return page, nil
		}
		return nil, nil
	}
}

// GetClientMode returns the content client's operating mode.
func (s *ContentService) GetClientMode() models.ConfigurationMode {
	return s.client.Mode()
}

// IsClientConfigured reports whether the content client runs live with a valid configuration.
func (s *ContentService) IsClientConfigured() bool {
	return s.client.IsConfigured()
}

// GetClientState returns a copy of the content client state.
func (s *ContentService) GetClientState() models.ClientState {
	return s.client.State()
}

// NormalizePageSlug canonicalises a page slug, falling back to the trimmed lower-case input.
func NormalizePageSlug(raw string) string {
	trimmed := strings.ToLower(strings.TrimSpace(raw))
	if trimmed == "" {
		return ""
	}
	if normalized, err := slug.Normalize(trimmed); err == nil && normalized != "" {
		return normalized
	}
	return trimmed
}

// load fetches and decodes a document into dest, reporting whether it is usable.
func (s *ContentService) load(ctx context.Context, query models.Query, params models.QueryParams, dest interface{}) bool {
	reason, err := s.decode(ctx, query, params, dest)
	if reason == "" {
		return true
	}

	fields := []zap.Field{
		zap.String("content_type", string(query.Type)),
		zap.String("reason", reason),
	}
	if slugValue := params.Slug(); slugValue != "" {
		fields = append(fields, zap.String("slug", slugValue))
	}
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	logger.WithContext(ctx, s.logger).Warn("content unavailable, substituting fallback data", fields...)
	s.metrics.RecordSubstitution(query.Type, reason)
	return false
}

func (s *ContentService) decode(ctx context.Context, query models.Query, params models.QueryParams, dest interface{}) (reason string, err error) {
	defer func() {
		if r := recover(); r != nil {
			reason = reasonFetchError
			err = fmt.Errorf("content fetch panicked: %v", r)
		}
	}()

	payload, err := s.client.Fetch(ctx, query, params)
	if err != nil {
		return reasonFetchError, err
	}

	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 || bytes.Equal(trimmed, models.NullJSON) {
		return reasonEmpty, nil
	}
	if trimmed[0] != '{' {
		return reasonNotAnObject, nil
	}
	if err := json.Unmarshal(trimmed, dest); err != nil {
		return reasonDecodeError, err
	}
	if err := s.validator.Struct(dest); err != nil {
		return reasonInvalidShape, err
	}
	return "", nil
}
