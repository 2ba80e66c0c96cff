package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/spendtrails-site/internal/models"
)

type staticBackends struct {
	backend ContentBackend
}

func (s staticBackends) LiveBackend() ContentBackend { return s.backend }

func newTestImageService() *ImageService {
	backend := &stubBackend{cfg: models.SanityConfig{ProjectID: "abc12345", Dataset: "production"}}
	return NewImageService(staticBackends{backend: backend})
}

func TestParseImageRef(t *testing.T) {
	asset, ok := ParseImageRef("image-Tb9Ew8CXIwaY6R1kjMvI0uRR-2000x3000-jpg")
	require.True(t, ok)
	assert.Equal(t, "Tb9Ew8CXIwaY6R1kjMvI0uRR", asset.ID)
	assert.Equal(t, models.ImageDimensions{Width: 2000, Height: 3000}, asset.Dimensions)
	assert.Equal(t, "jpg", asset.Format)

	for _, ref := range []string{"", "image", "file-abc-10x10-pdf", "image-abc-10-png", "image-abc-axb-png", "image-abc-0x10-png"} {
		_, ok := ParseImageRef(ref)
		assert.False(t, ok, ref)
	}
}

func TestImageServiceURL(t *testing.T) {
	svc := newTestImageService()

	u, err := svc.URL("image-abc123-800x600-png", models.ImageOptions{})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.sanity.io/images/abc12345/production/abc123-800x600.png", u)

	u, err = svc.URL("image-abc123-800x600-png", models.ImageOptions{Width: 400, Quality: 80, Fit: "crop"})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.sanity.io/images/abc12345/production/abc123-800x600.png?fit=crop&q=80&w=400", u)

	_, err = svc.URL("not-a-ref", models.ImageOptions{})
	assert.Error(t, err)
}

func TestImageServiceDimensionsAndBlur(t *testing.T) {
	svc := newTestImageService()

	assert.Equal(t, models.ImageDimensions{Width: 800, Height: 600}, svc.Dimensions("image-abc123-800x600-png"))
	assert.Equal(t, models.ImageDimensions{}, svc.Dimensions("bogus"))

	assert.Equal(t,
		"https://cdn.sanity.io/images/abc12345/production/abc123-800x600.png?blur=10&fm=webp&h=20&w=20",
		svc.BlurDataURL("image-abc123-800x600-png"))
	assert.Empty(t, svc.BlurDataURL("bogus"))
}

func TestImageServiceInFallbackMode(t *testing.T) {
	client := newFallbackClient(t)
	svc := NewImageService(client)

	u, err := svc.URL("image-abc123-800x600-png", models.ImageOptions{})

	require.NoError(t, err)
	assert.Equal(t, "https://cdn.sanity.io/images/fallback/production/abc123-800x600.png", u)
}
