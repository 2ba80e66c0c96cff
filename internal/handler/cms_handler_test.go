package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/spendtrails-site/internal/dto"
	"github.com/noah-isme/spendtrails-site/internal/service"
	"github.com/noah-isme/spendtrails-site/pkg/config"
)

func newCMSRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	client := service.NewContentClient(service.ContentClientConfig{Env: config.SanityEnvConfig{}})
	handler := NewCMSHandler(
		service.NewStatusService(client, service.NewMetricsService(), true, nil),
		service.NewImageService(client),
		nil,
	)

	router := gin.New()
	router.GET("/cms/status", handler.Status)
	router.GET("/cms/image", handler.Image)
	return router
}

func TestCMSHandlerStatus(t *testing.T) {
	router := newCMSRouter(t)

	recorder, body := doGet(router, "/cms/status")

	require.Equal(t, http.StatusOK, recorder.Code)
	var status dto.CMSStatusResponse
	require.NoError(t, json.Unmarshal(body.Data, &status))
	assert.Equal(t, "Sanity: Fallback Mode (2 issues)", status.Banner)
	assert.True(t, status.ShowHelp)
	assert.Len(t, status.EnvironmentIssues, 2)
	assert.True(t, status.Client.IsInitialized)
	require.NotNil(t, status.Metrics)
	assert.Equal(t, "no-store", recorder.Header().Get("Cache-Control"))
}

func TestCMSHandlerImage(t *testing.T) {
	router := newCMSRouter(t)

	recorder, body := doGet(router, "/cms/image?ref=image-abc123-800x600-png&w=400&fm=webp")

	require.Equal(t, http.StatusOK, recorder.Code)
	var image dto.ImageURLResponse
	require.NoError(t, json.Unmarshal(body.Data, &image))
	assert.Equal(t, "https://cdn.sanity.io/images/fallback/production/abc123-800x600.png?fm=webp&w=400", image.URL)
	assert.Equal(t, 800, image.Dimensions.Width)
	assert.Equal(t, 600, image.Dimensions.Height)
	assert.Contains(t, image.BlurDataURL, "blur=10")
}

func TestCMSHandlerImageValidation(t *testing.T) {
	router := newCMSRouter(t)

	for _, path := range []string{
		"/cms/image",
		"/cms/image?ref=image-abc123-800x600-png&fm=gif",
		"/cms/image?ref=image-abc123-800x600-png&w=abc",
		"/cms/image?ref=not-an-image",
	} {
		recorder, body := doGet(router, path)
		assert.Equal(t, http.StatusBadRequest, recorder.Code, path)
		require.NotNil(t, body.Error, path)
		assert.Equal(t, "VALIDATION_ERROR", body.Error.Code, path)
	}
}
