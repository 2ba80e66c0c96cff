package service

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/noah-isme/spendtrails-site/internal/models"
	appErrors "github.com/noah-isme/spendtrails-site/pkg/errors"
)

const imageCDNBase = "https://cdn.sanity.io/images"

type backendProvider interface {
	LiveBackend() ContentBackend
}

// ImageService builds CDN URLs for CMS image assets. It works in both modes because the
// compatibility backend handle always carries a project and dataset.
type ImageService struct {
	backends backendProvider
	baseURL  string
}

// NewImageService constructs an ImageService.
func NewImageService(backends backendProvider) *ImageService {
	return &ImageService{backends: backends, baseURL: imageCDNBase}
}

// ParseImageRef splits an asset reference into its id, dimensions and format.
func ParseImageRef(ref string) (models.ImageAsset, bool) {
	parts := strings.Split(ref, "-")
	if len(parts) != 4 || parts[0] != "image" || parts[1] == "" || parts[3] == "" {
		return models.ImageAsset{}, false
	}
	dims := strings.Split(parts[2], "x")
	if len(dims) != 2 {
		return models.ImageAsset{}, false
	}
	width, err := strconv.Atoi(dims[0])
	if err != nil || width <= 0 {
		return models.ImageAsset{}, false
	}
	height, err := strconv.Atoi(dims[1])
	if err != nil || height <= 0 {
		return models.ImageAsset{}, false
	}
	return models.ImageAsset{
		ID:         parts[1],
		Dimensions: models.ImageDimensions{Width: width, Height: height},
		Format:     parts[3],
	}, true
}

// URL returns the CDN URL for ref with the requested transformations.
func (s *ImageService) URL(ref string, opts models.ImageOptions) (string, error) {
	asset, ok := ParseImageRef(ref)
	if !ok {
		return "", appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("invalid image reference %q", ref))
	}

	cfg := s.backends.LiveBackend().Config()
	u := fmt.Sprintf("%s/%s/%s/%s-%dx%d.%s", s.baseURL,
		url.PathEscape(cfg.ProjectID), url.PathEscape(cfg.Dataset),
		asset.ID, asset.Dimensions.Width, asset.Dimensions.Height, asset.Format)

	params := url.Values{}
	if opts.Width > 0 {
		params.Set("w", strconv.Itoa(opts.Width))
	}
	if opts.Height > 0 {
		params.Set("h", strconv.Itoa(opts.Height))
	}
	if opts.Blur > 0 {
		params.Set("blur", strconv.Itoa(opts.Blur))
	}
	if opts.Quality > 0 {
		params.Set("q", strconv.Itoa(opts.Quality))
	}
	if opts.Format != "" {
		params.Set("fm", opts.Format)
	}
	if opts.Fit != "" {
		params.Set("fit", opts.Fit)
	}
	if len(params) == 0 {
		return u, nil
	}
	return u + "?" + params.Encode(), nil
}

// Dimensions returns the original size of the asset, or zero values for an invalid reference.
func (s *ImageService) Dimensions(ref string) models.ImageDimensions {
	asset, ok := ParseImageRef(ref)
	if !ok {
		return models.ImageDimensions{}
	}
	return asset.Dimensions
}

// BlurDataURL returns a tiny blurred webp rendition for placeholders, or "" for an invalid reference.
func (s *ImageService) BlurDataURL(ref string) string {
	u, err := s.URL(ref, models.ImageOptions{Width: 20, Height: 20, Blur: 10, Format: "webp"})
	if err != nil {
		return ""
	}
	return u
}
