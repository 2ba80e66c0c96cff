package service

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/noah-isme/spendtrails-site/internal/dto"
	"github.com/noah-isme/spendtrails-site/internal/models"
)

const configurationHelpFooter = "For detailed setup instructions, see SANITY_SETUP.md"

var configStatusMessages = map[models.ConfigStatus]string{
	models.ConfigStatusValid:   "Sanity is properly configured and connected",
	models.ConfigStatusInvalid: "Sanity configuration has issues",
	models.ConfigStatusMissing: "Sanity configuration is missing",
}

type statusSource interface {
	Mode() models.ConfigurationMode
	IsConfigured() bool
	State() models.ClientState
	StartupValidation() models.StartupValidationResult
}

// StatusService reports the CMS configuration state to developers.
type StatusService struct {
	client      statusSource
	metrics     *MetricsService
	development bool
	logger      *zap.Logger
}

// NewStatusService constructs a StatusService. Help output is only offered in development.
func NewStatusService(client statusSource, metrics *MetricsService, development bool, logger *zap.Logger) *StatusService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StatusService{client: client, metrics: metrics, development: development, logger: logger}
}

// ConfigurationStatus describes the startup validation outcome.
func (s *StatusService) ConfigurationStatus() models.ConfigurationStatus {
	result := s.client.StartupValidation()

	details := make([]string, 0, 2)
	if n := len(result.EnvironmentIssues); n > 0 {
		details = append(details, fmt.Sprintf("%d environment variable issue(s)", n))
	}
	if len(result.Recommendations) > 0 {
		details = append(details, "Configuration recommendations available")
	}

	return models.ConfigurationStatus{
		Mode:    s.client.Mode(),
		Status:  configStatusMessages[result.ConfigStatus],
		Details: details,
	}
}

// Summary condenses the configuration state.
func (s *StatusService) Summary() models.ConfigurationSummary {
	result := s.client.StartupValidation()
	mode := s.client.Mode()

	summary := models.ConfigurationSummary{
		Mode:                mode,
		IsConfigured:        s.client.IsConfigured(),
		IssueCount:          len(result.EnvironmentIssues),
		RecommendationCount: len(result.Recommendations),
	}
	if mode.IsLive() {
		summary.Summary = "Sanity is configured and working"
	} else {
		summary.Summary = fmt.Sprintf("Using fallback mode (%d issues)", summary.IssueCount)
	}
	return summary
}

// Banner returns a one-line status banner.
func (s *StatusService) Banner() string {
	summary := s.Summary()
	if summary.Mode.IsLive() {
		return "Sanity: Live Mode"
	}
	return fmt.Sprintf("Sanity: Fallback Mode (%d issues)", summary.IssueCount)
}

// ShouldShowHelp reports whether setup help is useful: development only, unconfigured, with issues.
func (s *StatusService) ShouldShowHelp() bool {
	if !s.development {
		return false
	}
	summary := s.Summary()
	return !summary.IsConfigured && summary.IssueCount > 0
}

// Help returns setup instructions for developers.
func (s *StatusService) Help() []string {
	result := s.client.StartupValidation()

	help := []string{
		"Sanity Configuration Help",
		"",
		"Your Sanity CMS is not configured. The app is running with static content.",
		"",
	}
	if len(result.Recommendations) > 0 {
		help = append(help, "Quick Setup:")
		for _, rec := range result.Recommendations {
			help = append(help, "  - "+rec)
		}
		help = append(help, "")
	}
	return append(help, configurationHelpFooter)
}

// Report assembles the status endpoint payload.
func (s *StatusService) Report() dto.CMSStatusResponse {
	result := s.client.StartupValidation()
	resp := dto.CMSStatusResponse{
		Status:            s.ConfigurationStatus(),
		Summary:           s.Summary(),
		Banner:            s.Banner(),
		ShowHelp:          s.ShouldShowHelp(),
		Client:            s.client.State(),
		EnvironmentIssues: result.EnvironmentIssues,
		Recommendations:   result.Recommendations,
	}
	if resp.ShowHelp {
		resp.Help = s.Help()
	}
	if s.metrics != nil {
		snapshot := s.metrics.Snapshot()
		resp.Metrics = &snapshot
	}
	return resp
}

// LogDevelopmentStatus logs the configuration state once at startup. It is silent outside development.
func (s *StatusService) LogDevelopmentStatus() {
	if !s.development {
		return
	}

	status := s.ConfigurationStatus()
	result := s.client.StartupValidation()

	s.logger.Info("sanity configuration status",
		zap.String("mode", string(status.Mode)),
		zap.String("status", status.Status),
		zap.Strings("details", status.Details),
		zap.String("banner", s.Banner()))

	for _, issue := range result.EnvironmentIssues {
		s.logger.Info("sanity environment issue",
			zap.String("variable", issue.Variable),
			zap.String("issue", string(issue.Issue)))
	}
	for _, rec := range result.Recommendations {
		s.logger.Info("sanity recommendation", zap.String("recommendation", rec))
	}

	if s.ShouldShowHelp() {
		for _, line := range s.Help() {
			if line == "" {
				continue
			}
			s.logger.Info(line)
		}
	}
}
