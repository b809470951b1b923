package summarizer

import "context"

// Priority levels assigned to a summarized email.
const (
	PriorityHigh   = "High"
	PriorityMedium = "Medium"
	PriorityLow    = "Low"
)

// EmailSummary is the structured summary of a single email, produced either
// by a provider response or by the fallback synthesizer.
type EmailSummary struct {
	Subject     string   `yaml:"subject"`
	Sender      string   `yaml:"sender"`
	Date        string   `yaml:"date"`
	Summary     string   `yaml:"summary"`
	KeyPoints   []string `yaml:"key_points"`
	ActionItems []string `yaml:"action_items"`
	Priority    string   `yaml:"priority"`
}

// CompletionRequest is a provider-agnostic text completion request.
type CompletionRequest struct {
	System      string
	Prompt      string
	MaxTokens   int
	Temperature float64
}

// Provider is an interface over an external AI text-completion backend.
type Provider interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
	Name() string
}
