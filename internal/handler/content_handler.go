package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/spendtrails-site/internal/middleware"
	"github.com/noah-isme/spendtrails-site/internal/models"
	appErrors "github.com/noah-isme/spendtrails-site/pkg/errors"
	"github.com/noah-isme/spendtrails-site/pkg/response"
)

// contentMaxAge is the shared-cache lifetime, in seconds, of content responses.
const contentMaxAge = 60

type contentService interface {
	GetHomepageData(ctx context.Context) *models.Homepage
	GetSiteSettings(ctx context.Context) *models.SiteSettings
	GetFeaturesPageData(ctx context.Context) *models.FeaturesPage
	GetPricingPageData(ctx context.Context) *models.PricingPage
	GetPageData(ctx context.Context, slug string) *models.Page
	SafeContentFetch(ctx context.Context, contentType string, params models.QueryParams) (interface{}, error)
	GetClientMode() models.ConfigurationMode
}

// ContentHandler serves CMS documents to the site frontend.
type ContentHandler struct {
	service contentService
}

// NewContentHandler constructs a ContentHandler.
func NewContentHandler(service contentService) *ContentHandler {
	return &ContentHandler{service: service}
}

// Homepage godoc
// @Summary Homepage content
// @Tags Content
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /content/homepage [get]
func (h *ContentHandler) Homepage(c *gin.Context) {
	h.respond(c, h.service.GetHomepageData(c.Request.Context()))
}

// SiteSettings godoc
// @Summary Site settings
// @Tags Content
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /content/site-settings [get]
func (h *ContentHandler) SiteSettings(c *gin.Context) {
	h.respond(c, h.service.GetSiteSettings(c.Request.Context()))
}

// FeaturesPage godoc
// @Summary Features page content
// @Tags Content
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /content/features [get]
func (h *ContentHandler) FeaturesPage(c *gin.Context) {
	h.respond(c, h.service.GetFeaturesPageData(c.Request.Context()))
}

// PricingPage godoc
// @Summary Pricing page content
// @Tags Content
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /content/pricing [get]
func (h *ContentHandler) PricingPage(c *gin.Context) {
	h.respond(c, h.service.GetPricingPageData(c.Request.Context()))
}

// Page godoc
// @Summary Generic page by slug
// @Tags Content
// @Produce json
// @Param slug path string true "Page slug"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /content/pages/{slug} [get]
func (h *ContentHandler) Page(c *gin.Context) {
	slug := c.Param("slug")
	page := h.service.GetPageData(c.Request.Context(), slug)
	if page == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "page not found: "+slug))
		return
	}
	h.respond(c, page)
}

// ByType godoc
// @Summary Content by type tag
// @Tags Content
// @Produce json
// @Param type path string true "Content type (homepage, siteSettings, featuresPage, pricingPage, page)"
// @Param slug query string false "Page slug when type is page"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /content/by-type/{type} [get]
func (h *ContentHandler) ByType(c *gin.Context) {
	var params models.QueryParams
	if slug := c.Query("slug"); slug != "" {
		params = models.QueryParams{"slug": slug}
	}

	doc, err := h.service.SafeContentFetch(c.Request.Context(), c.Param("type"), params)
	if err != nil {
		response.Error(c, err)
		return
	}
	if doc == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "content not found"))
		return
	}
	h.respond(c, doc)
}

func (h *ContentHandler) respond(c *gin.Context, doc interface{}) {
	middleware.SetMeta(c, "mode", h.service.GetClientMode())
	response.JSON(c, http.StatusOK, doc, contentMaxAge, middleware.ExtractMeta(c))
}
