package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/spendtrails-site/internal/models"
	"github.com/noah-isme/spendtrails-site/internal/service"
)

type fixedMode models.ConfigurationMode

func (m fixedMode) Mode() models.ConfigurationMode { return models.ConfigurationMode(m) }

func TestContentModeMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(ContentMode(fixedMode(models.ModeFallback)))

	var seen models.ConfigurationMode
	router.GET("/", func(c *gin.Context) {
		seen = ContentModeFromContext(c)
		c.Status(http.StatusNoContent)
	})

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusNoContent, recorder.Code)
	assert.Equal(t, "fallback", recorder.Header().Get(ContentModeHeader))
	assert.Equal(t, models.ModeFallback, seen)
}

func TestContentModeMiddlewareWithoutSource(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(ContentMode(nil))
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Empty(t, recorder.Header().Get(ContentModeHeader))
}

func TestMetricsMiddlewareSkipsProbes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	metrics := service.NewMetricsService()
	router := gin.New()
	router.Use(Metrics(metrics, "/health"))
	router.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/content/:slug", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, path := range []string{"/health", "/content/about", "/content/terms"} {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, uint64(2), metrics.Snapshot().RequestsTotal)

	scrape := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(scrape, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, scrape.Code)
	assert.True(t, strings.Contains(scrape.Body.String(), `path="/content/:slug"`))
}

func TestResponseMeta(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(WithResponseMeta())

	var meta map[string]interface{}
	router.GET("/", func(c *gin.Context) {
		SetMeta(c, "mode", "live")
		meta = ExtractMeta(c)
		c.Status(http.StatusOK)
	})

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	require.NotNil(t, meta)
	assert.Equal(t, "live", meta["mode"])
	assert.Contains(t, meta, "processing_time_ms")
}
