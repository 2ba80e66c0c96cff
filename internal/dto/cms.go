package dto

import "github.com/noah-isme/spendtrails-site/internal/models"

// CMSStatusResponse is the payload of the CMS status endpoint.
type CMSStatusResponse struct {
	Status            models.ConfigurationStatus     `json:"status"`
	Summary           models.ConfigurationSummary    `json:"summary"`
	Banner            string                         `json:"banner"`
	ShowHelp          bool                           `json:"showHelp"`
	Help              []string                       `json:"help,omitempty"`
	Client            models.ClientState             `json:"client"`
	EnvironmentIssues []models.EnvironmentIssue      `json:"environmentIssues"`
	Recommendations   []string                       `json:"recommendations"`
	Metrics           *models.ContentMetricsSnapshot `json:"metrics,omitempty"`
}

// ImageURLRequest describes the query string of the image endpoint.
type ImageURLRequest struct {
	Ref     string `form:"ref" validate:"required"`
	Width   int    `form:"w" validate:"omitempty,min=1,max=5000"`
	Height  int    `form:"h" validate:"omitempty,min=1,max=5000"`
	Blur    int    `form:"blur" validate:"omitempty,min=1,max=2000"`
	Quality int    `form:"q" validate:"omitempty,min=0,max=100"`
	Format  string `form:"fm" validate:"omitempty,oneof=jpg png webp"`
	Fit     string `form:"fit" validate:"omitempty,oneof=clip crop fill fillmax max scale min"`
}

// ImageURLResponse is the payload of the image endpoint.
type ImageURLResponse struct {
	URL         string                 `json:"url"`
	Dimensions  models.ImageDimensions `json:"dimensions"`
	BlurDataURL string                 `json:"blurDataUrl"`
}
