package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/spendtrails-site/internal/middleware"
	"github.com/noah-isme/spendtrails-site/internal/repository"
	"github.com/noah-isme/spendtrails-site/internal/service"
	"github.com/noah-isme/spendtrails-site/pkg/config"
)

type envelope struct {
	Data  json.RawMessage        `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Meta map[string]interface{} `json:"meta"`
}

func newFallbackRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	fallback := repository.NewFallbackRepository()
	client := service.NewContentClient(service.ContentClientConfig{Env: config.SanityEnvConfig{}, Fallback: fallback})
	content := service.NewContentService(client, fallback, validator.New(), nil, nil)
	handler := NewContentHandler(content)

	router := gin.New()
	router.Use(middleware.WithResponseMeta(), middleware.ContentMode(client))
	group := router.Group("/api/v1/content")
	group.GET("/homepage", handler.Homepage)
	group.GET("/site-settings", handler.SiteSettings)
	group.GET("/features", handler.FeaturesPage)
	group.GET("/pricing", handler.PricingPage)
	group.GET("/pages/:slug", handler.Page)
	group.GET("/by-type/:type", handler.ByType)
	return router
}

func doGet(router *gin.Engine, path string) (*httptest.ResponseRecorder, envelope) {
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, path, nil))
	var body envelope
	_ = json.Unmarshal(recorder.Body.Bytes(), &body)
	return recorder, body
}

func documentType(t *testing.T, raw json.RawMessage) string {
	t.Helper()
	var doc struct {
		Type string `json:"_type"`
	}
	require.NoError(t, json.Unmarshal(raw, &doc))
	return doc.Type
}

func TestContentHandlerSingletonDocuments(t *testing.T) {
	router := newFallbackRouter(t)

	tests := map[string]string{
		"/api/v1/content/homepage":      "homepage",
		"/api/v1/content/site-settings": "siteSettings",
		"/api/v1/content/features":      "featuresPage",
		"/api/v1/content/pricing":       "pricingPage",
	}
	for path, want := range tests {
		recorder, body := doGet(router, path)
		require.Equal(t, http.StatusOK, recorder.Code, path)
		assert.Equal(t, want, documentType(t, body.Data), path)
		assert.Equal(t, "fallback", recorder.Header().Get(middleware.ContentModeHeader))
		assert.Equal(t, "public, max-age=60", recorder.Header().Get("Cache-Control"))
		assert.Equal(t, "fallback", body.Meta["mode"])
	}
}

func TestContentHandlerPage(t *testing.T) {
	router := newFallbackRouter(t)

	recorder, body := doGet(router, "/api/v1/content/pages/how-it-works")
	require.Equal(t, http.StatusOK, recorder.Code)
	var page struct {
		Slug struct {
			Current string `json:"current"`
		} `json:"slug"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &page))
	assert.Equal(t, "how-it-works", page.Slug.Current)

	recorder, body = doGet(router, "/api/v1/content/pages/does-not-exist")
	assert.Equal(t, http.StatusNotFound, recorder.Code)
	require.NotNil(t, body.Error)
	assert.Equal(t, "NOT_FOUND", body.Error.Code)
	assert.Equal(t, "no-store", recorder.Header().Get("Cache-Control"))
}

func TestContentHandlerByType(t *testing.T) {
	router := newFallbackRouter(t)

	recorder, body := doGet(router, "/api/v1/content/by-type/pricingPage")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "pricingPage", documentType(t, body.Data))

	recorder, body = doGet(router, "/api/v1/content/by-type/page?slug=contact")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "page", documentType(t, body.Data))

	recorder, _ = doGet(router, "/api/v1/content/by-type/page?slug=unknown")
	assert.Equal(t, http.StatusNotFound, recorder.Code)

	recorder, body = doGet(router, "/api/v1/content/by-type/bogus")
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	require.NotNil(t, body.Error)
	assert.Equal(t, "UNKNOWN_CONTENT_TYPE", body.Error.Code)
	assert.Contains(t, body.Error.Message, "bogus")
}
