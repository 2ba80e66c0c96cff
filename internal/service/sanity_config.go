package service

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/noah-isme/spendtrails-site/internal/models"
	"github.com/noah-isme/spendtrails-site/pkg/config"
)

// Safe defaults substituted for placeholder or absent values.
const (
	DefaultDataset         = "production"
	DefaultAPIVersion      = "2024-01-01"
	DefaultPerspective     = "published"
	PreviewPerspective     = "previewDrafts"
	FallbackProjectID      = "fallback-project"
	placeholderProjectID   = "fallback"
	datasetAllowListFormat = "production, development, staging, test"
)

var placeholderExact = map[string]struct{}{
	"your_project_id_here":     {},
	"your_read_token_here":     {},
	"your_preview_secret_here": {},
	"placeholder_project_id":   {},
	"placeholder":              {},
	"example":                  {},
	"test":                     {},
	"demo":                     {},
	"xxx":                      {},
	"yyy":                      {},
	"zzz":                      {},
}

var placeholderFragments = []string{
	"your_",
	"placeholder_",
	"example_",
	"test_",
	"demo_",
	"change_me",
	"replace_me",
	"todo",
	"fixme",
}

var (
	fillerPattern     = regexp.MustCompile(`^(x{3,}|y{3,}|z{3,})$`)
	templatePattern   = regexp.MustCompile(`\{\{.*\}\}|<.*>`)
	projectIDPattern  = regexp.MustCompile(`^[a-z0-9]{8}$`)
	datasetPattern    = regexp.MustCompile(`^[a-z][a-z0-9_-]*$`)
	apiVersionPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

var commonDatasets = map[string]struct{}{
	"production":  {},
	"development": {},
	"staging":     {},
	"test":        {},
}

// IsPlaceholderValue reports whether a configuration value is empty or a known dummy token.
func IsPlaceholderValue(value string) bool {
	normalized := strings.ToLower(strings.TrimSpace(value))
	if normalized == "" {
		return true
	}
	if _, ok := placeholderExact[normalized]; ok {
		return true
	}
	for _, fragment := range placeholderFragments {
		if strings.Contains(normalized, fragment) {
			return true
		}
	}
	return fillerPattern.MatchString(normalized) || templatePattern.MatchString(normalized)
}

// IsValidProjectID accepts 8-character lower-case alphanumeric project ids.
func IsValidProjectID(projectID string) bool {
	if IsPlaceholderValue(projectID) {
		return false
	}
	return projectIDPattern.MatchString(projectID)
}

// IsValidDataset accepts the common dataset names or any lower-case identifier.
func IsValidDataset(dataset string) bool {
	if IsPlaceholderValue(dataset) {
		return false
	}
	return datasetMatches(dataset)
}

func datasetMatches(dataset string) bool {
	if _, ok := commonDatasets[strings.ToLower(dataset)]; ok {
		return true
	}
	return datasetPattern.MatchString(dataset)
}

// IsValidAPIVersion accepts strict YYYY-MM-DD versions.
func IsValidAPIVersion(apiVersion string) bool {
	return apiVersionPattern.MatchString(apiVersion)
}

// ValidateSanityConfig checks the three connection fields and derives the operating mode.
// A placeholder token is reported but never invalidates the configuration.
func ValidateSanityConfig(cfg models.SanityConfig) models.ConfigValidationResult {
	issues := make([]string, 0, 4)
	valid := true

	switch {
	case cfg.ProjectID == "":
		issues = append(issues, "Project ID is missing")
		valid = false
	case IsPlaceholderValue(cfg.ProjectID):
		issues = append(issues, fmt.Sprintf("Project ID appears to be a placeholder: %q", cfg.ProjectID))
		valid = false
	case !IsValidProjectID(cfg.ProjectID):
		issues = append(issues, fmt.Sprintf("Project ID format is invalid: %q. Expected 8-character alphanumeric string.", cfg.ProjectID))
		valid = false
	}

	switch {
	case cfg.Dataset == "":
		issues = append(issues, "Dataset is missing")
		valid = false
	case IsPlaceholderValue(cfg.Dataset):
		issues = append(issues, fmt.Sprintf("Dataset appears to be a placeholder: %q", cfg.Dataset))
		valid = false
	case !IsValidDataset(cfg.Dataset):
		issues = append(issues, fmt.Sprintf("Dataset name is invalid: %q", cfg.Dataset))
		valid = false
	}

	switch {
	case cfg.APIVersion == "":
		issues = append(issues, "API version is missing")
		valid = false
	case !IsValidAPIVersion(cfg.APIVersion):
		issues = append(issues, fmt.Sprintf("API version format is invalid: %q. Expected YYYY-MM-DD format.", cfg.APIVersion))
		valid = false
	}

	if cfg.Token != "" && IsPlaceholderValue(cfg.Token) {
		issues = append(issues, "API token appears to be a placeholder")
	}

	return models.ConfigValidationResult{
		IsValid: valid,
		Mode:    models.ModeFor(valid),
		Issues:  issues,
	}
}

// CreateConfigFromEnv builds a SanityConfig from the raw environment, replacing placeholders with
// safe defaults. An unusable project id becomes empty so validation still reports it.
func CreateConfigFromEnv(env config.SanityEnvConfig) models.SanityConfig {
	cfg := models.SanityConfig{
		ProjectID:   env.ProjectID,
		Dataset:     env.Dataset,
		APIVersion:  env.APIVersion,
		UseCDN:      env.AppEnv != config.EnvDevelopment,
		Perspective: DefaultPerspective,
	}
	if IsPlaceholderValue(cfg.ProjectID) {
		cfg.ProjectID = ""
	}
	if IsPlaceholderValue(cfg.Dataset) {
		cfg.Dataset = DefaultDataset
	}
	if IsPlaceholderValue(cfg.APIVersion) {
		cfg.APIVersion = DefaultAPIVersion
	}
	if !IsPlaceholderValue(env.ReadToken) {
		cfg.Token = env.ReadToken
	}
	return cfg
}

// ValidateEnvironmentConfig validates the laundered environment configuration.
func ValidateEnvironmentConfig(env config.SanityEnvConfig) models.ConfigValidationResult {
	return ValidateSanityConfig(CreateConfigFromEnv(env))
}

// SafeDefaultConfig is the configuration behind the compatibility backend handle in fallback mode.
func SafeDefaultConfig() models.SanityConfig {
	return models.SanityConfig{
		ProjectID:   placeholderProjectID,
		Dataset:     DefaultDataset,
		APIVersion:  DefaultAPIVersion,
		UseCDN:      false,
		Perspective: DefaultPerspective,
	}
}
