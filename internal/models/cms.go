package models

// ConfigurationMode selects where content is read from.
type ConfigurationMode string

const (
	// ModeLive reads content from the remote CMS.
	ModeLive ConfigurationMode = "live"
	// ModeFallback serves the statically embedded records.
	ModeFallback ConfigurationMode = "fallback"
)

// IsLive reports whether the mode routes to the CMS backend.
func (m ConfigurationMode) IsLive() bool {
	return m == ModeLive
}

// ModeFor derives the operating mode from a validity flag.
func ModeFor(valid bool) ConfigurationMode {
	if valid {
		return ModeLive
	}
	return ModeFallback
}

// ConfigStatus summarises startup validation of the CMS environment.
type ConfigStatus string

const (
	ConfigStatusValid   ConfigStatus = "valid"
	ConfigStatusInvalid ConfigStatus = "invalid"
	ConfigStatusMissing ConfigStatus = "missing"
)

// IssueKind classifies an environment variable problem.
type IssueKind string

const (
	IssueMissing       IssueKind = "missing"
	IssuePlaceholder   IssueKind = "placeholder"
	IssueInvalidFormat IssueKind = "invalid_format"
)

// Label returns the human readable form used in log lines.
func (k IssueKind) Label() string {
	switch k {
	case IssueMissing:
		return "Missing"
	case IssuePlaceholder:
		return "Placeholder value"
	case IssueInvalidFormat:
		return "Invalid format"
	default:
		return string(k)
	}
}

// RedactedValue replaces sensitive values in issues and logs.
const RedactedValue = "[REDACTED]"

// SanityConfig is the connection configuration handed to a CMS backend.
type SanityConfig struct {
	ProjectID   string `json:"projectId"`
	Dataset     string `json:"dataset"`
	APIVersion  string `json:"apiVersion"`
	Token       string `json:"-"`
	UseCDN      bool   `json:"useCdn"`
	Perspective string `json:"perspective"`
}

// HasToken reports whether a privileged read token is configured.
func (c SanityConfig) HasToken() bool {
	return c.Token != ""
}

// EnvironmentIssue describes one incorrectly configured environment variable. CurrentValue is
// already redacted for sensitive variables.
type EnvironmentIssue struct {
	Variable       string    `json:"variable"`
	Issue          IssueKind `json:"issue"`
	CurrentValue   string    `json:"currentValue,omitempty"`
	ExpectedFormat string    `json:"expectedFormat,omitempty"`
}

// ConfigValidationResult is the outcome of validating a SanityConfig.
type ConfigValidationResult struct {
	IsValid bool              `json:"isValid"`
	Mode    ConfigurationMode `json:"mode"`
	Issues  []string          `json:"issues"`
}

// StartupValidationResult is the outcome of validating every recognised environment variable.
type StartupValidationResult struct {
	ConfigStatus      ConfigStatus       `json:"configStatus"`
	Mode              ConfigurationMode  `json:"mode"`
	EnvironmentIssues []EnvironmentIssue `json:"environmentIssues"`
	Recommendations   []string           `json:"recommendations"`
}

// HasIssueFor reports whether any issue was recorded for the named variable.
func (r StartupValidationResult) HasIssueFor(variable string) bool {
	for _, issue := range r.EnvironmentIssues {
		if issue.Variable == variable {
			return true
		}
	}
	return false
}

// ClientState is the observable state of the content client.
type ClientState struct {
	Mode          ConfigurationMode `json:"mode"`
	IsInitialized bool              `json:"isInitialized"`
	LastError     string            `json:"lastError,omitempty"`
	ConfigIssues  []string          `json:"configIssues"`
}

// Clone returns a copy that shares no slices with the receiver.
func (s ClientState) Clone() ClientState {
	clone := s
	clone.ConfigIssues = append([]string(nil), s.ConfigIssues...)
	return clone
}

// ConfigurationStatus is the human readable configuration state shown to developers.
type ConfigurationStatus struct {
	Mode    ConfigurationMode `json:"mode"`
	Status  string            `json:"status"`
	Details []string          `json:"details"`
}

// ConfigurationSummary condenses the configuration state for banners and dashboards.
type ConfigurationSummary struct {
	Mode                ConfigurationMode `json:"mode"`
	IsConfigured        bool              `json:"isConfigured"`
	IssueCount          int               `json:"issueCount"`
	RecommendationCount int               `json:"recommendationCount"`
	Summary             string            `json:"summary"`
}
