package service

import (
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/spendtrails-site/internal/models"
	"github.com/noah-isme/spendtrails-site/pkg/config"
)

// Remediation hints attached to a failed startup validation.
const (
	RecommendCopyEnvExample = "Copy .env.example to .env and update the placeholder values"
	RecommendCreateProject  = "Create a new Sanity project at https://sanity.io/manage"
	RecommendRunInit        = "Run `npx sanity@latest init` to set up your Sanity project"
	RecommendSetupDocs      = "See SANITY_SETUP.md for detailed configuration instructions"
)

// envVariable describes one recognised environment variable.
type envVariable struct {
	Name           string
	Required       bool
	Description    string
	ExpectedFormat string
	// Check validates a present, non-placeholder value. Nil accepts anything.
	Check     func(value string) bool
	Sensitive bool
}

var envVariables = []envVariable{
	{
		Name:           config.EnvSanityProjectID,
		Required:       true,
		Description:    "Sanity project ID (8-character alphanumeric string)",
		ExpectedFormat: projectIDPattern.String(),
		Check:          projectIDPattern.MatchString,
	},
	{
		Name:           config.EnvSanityDataset,
		Required:       true,
		Description:    "Sanity dataset name",
		ExpectedFormat: "One of: " + datasetAllowListFormat + " or " + datasetPattern.String(),
		Check:          datasetMatches,
	},
	{
		Name:           config.EnvSanityAPIVersion,
		Description:    "Sanity API version (YYYY-MM-DD format)",
		ExpectedFormat: apiVersionPattern.String(),
		Check:          IsValidAPIVersion,
	},
	{
		Name:        config.EnvSanityReadToken,
		Description: "Sanity API read token (for private content)",
		Sensitive:   true,
	},
	{
		Name:        config.EnvSanityPreviewSecret,
		Description: "Secret for preview mode",
		Sensitive:   true,
	},
}

func lookupEnvVariable(name string) (envVariable, bool) {
	for _, def := range envVariables {
		if def.Name == name {
			return def, true
		}
	}
	return envVariable{}, false
}

// redactValue hides sensitive values before they reach an issue or a log line.
func redactValue(def envVariable, value string) string {
	if def.Sensitive && value != "" {
		return models.RedactedValue
	}
	return value
}

func expectedFormat(def envVariable) string {
	if def.ExpectedFormat != "" {
		return def.ExpectedFormat
	}
	return def.Description
}

// ValidateStartupEnvironment validates every recognised CMS environment variable.
func ValidateStartupEnvironment(env config.SanityEnvConfig) models.StartupValidationResult {
	issues := make([]models.EnvironmentIssue, 0, len(envVariables))
	missingRequired := false

	for _, def := range envVariables {
		value := env.Lookup(def.Name)

		// Only the blank test trims; the format check sees the value the backend receives.
		var kind models.IssueKind
		switch {
		case strings.TrimSpace(value) == "":
			if !def.Required {
				continue
			}
			kind = models.IssueMissing
			missingRequired = true
		case IsPlaceholderValue(value):
			kind = models.IssuePlaceholder
		case def.Check != nil && !def.Check(value):
			kind = models.IssueInvalidFormat
		default:
			continue
		}

		issues = append(issues, models.EnvironmentIssue{
			Variable:       def.Name,
			Issue:          kind,
			CurrentValue:   redactValue(def, value),
			ExpectedFormat: expectedFormat(def),
		})
	}

	result := models.StartupValidationResult{
		ConfigStatus:      models.ConfigStatusValid,
		EnvironmentIssues: issues,
		Recommendations:   recommendationsFor(issues),
	}
	switch {
	case len(issues) == 0:
		result.ConfigStatus = models.ConfigStatusValid
	case missingRequired:
		result.ConfigStatus = models.ConfigStatusMissing
	default:
		result.ConfigStatus = models.ConfigStatusInvalid
	}
	result.Mode = models.ModeFor(result.ConfigStatus == models.ConfigStatusValid)

	return result
}

func recommendationsFor(issues []models.EnvironmentIssue) []string {
	recommendations := make([]string, 0, 4)
	if len(issues) == 0 {
		return recommendations
	}

	recommendations = append(recommendations, RecommendCopyEnvExample)
	for _, issue := range issues {
		if issue.Variable == config.EnvSanityProjectID {
			recommendations = append(recommendations, RecommendCreateProject, RecommendRunInit)
			break
		}
	}
	return append(recommendations, RecommendSetupDocs)
}

// LogStartupValidation writes the validation outcome. It tolerates a nil logger and any result.
func LogStartupValidation(logger *zap.Logger, result models.StartupValidationResult) {
	if logger == nil {
		logger = zap.NewNop()
	}

	if result.ConfigStatus == models.ConfigStatusValid {
		logger.Info("sanity configuration is valid, content will be served live",
			zap.String("mode", string(models.ModeLive)))
		return
	}

	logger.Warn("sanity configuration has issues",
		zap.String("config_status", string(result.ConfigStatus)),
		zap.Int("issue_count", len(result.EnvironmentIssues)))

	for _, issue := range result.EnvironmentIssues {
		current := issue.CurrentValue
		if def, ok := lookupEnvVariable(issue.Variable); ok {
			current = redactValue(def, current)
		}
		logger.Warn("environment variable issue",
			zap.String("variable", issue.Variable),
			zap.String("issue", issue.Issue.Label()),
			zap.String("current", current),
			zap.String("expected", issue.ExpectedFormat))
	}

	for _, recommendation := range result.Recommendations {
		logger.Info("configuration recommendation", zap.String("recommendation", recommendation))
	}

	logger.Info("falling back to static content until the configuration is fixed and the process restarted",
		zap.String("mode", string(models.ModeFallback)))
}

// PerformStartupValidation validates the environment and logs the outcome.
func PerformStartupValidation(env config.SanityEnvConfig, logger *zap.Logger) models.StartupValidationResult {
	result := ValidateStartupEnvironment(env)
	LogStartupValidation(logger, result)
	return result
}

// GetSafeEnvironmentConfig launders the environment like CreateConfigFromEnv but never leaves a
// field empty, so the result can always be handed to a backend constructor.
func GetSafeEnvironmentConfig(env config.SanityEnvConfig) models.SanityConfig {
	cfg := CreateConfigFromEnv(env)
	if cfg.ProjectID == "" {
		cfg.ProjectID = FallbackProjectID
	}
	if cfg.Dataset == "" {
		cfg.Dataset = DefaultDataset
	}
	if cfg.APIVersion == "" {
		cfg.APIVersion = DefaultAPIVersion
	}
	if cfg.Perspective == "" {
		cfg.Perspective = DefaultPerspective
	}
	return cfg
}
