package summarizer

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/hmiyata/mailbrief/internal/config"
	"github.com/hmiyata/mailbrief/internal/normalizer"
	"github.com/hmiyata/mailbrief/internal/retry"
)

// ErrUnsupportedProvider is returned when an unsupported provider type is
// specified.
var ErrUnsupportedProvider = errors.New("unsupported provider type")

// NewProvider creates a provider adapter based on the configuration.
func NewProvider(cfg *config.Config) (Provider, error) {
	switch cfg.Provider.Type {
	case "anthropic":
		return NewAnthropicProvider(cfg.Provider.APIKey, cfg.Provider.Model, cfg.Provider.CallTimeout()), nil
	case "openai":
		return NewOpenAIProvider(cfg.Provider.APIKey, cfg.Provider.Model, cfg.Provider.CallTimeout()), nil
	default:
		return nil, fmt.Errorf("summarizer: %w: %q", ErrUnsupportedProvider, cfg.Provider.Type)
	}
}

// Summarizer turns normalized emails into summary records: prompt
// construction, provider call with retries, response parsing, and fallback
// synthesis when the provider cannot produce usable output.
type Summarizer struct {
	provider    Provider
	retryCfg    retry.Config
	maxTokens   int
	temperature float64
	bodyBudget  int
	log         zerolog.Logger
}

// New wires a Summarizer from configuration.
func New(cfg *config.Config, log zerolog.Logger) (*Summarizer, error) {
	provider, err := NewProvider(cfg)
	if err != nil {
		return nil, err
	}
	return NewWithProvider(provider, cfg, log), nil
}

// NewWithProvider wires a Summarizer around an existing provider adapter.
func NewWithProvider(provider Provider, cfg *config.Config, log zerolog.Logger) *Summarizer {
	return &Summarizer{
		provider: provider,
		retryCfg: retry.Config{
			MaxRetries: cfg.Retry.MaxRetries,
			BaseDelay:  cfg.Retry.BaseDelayDuration(),
			MaxDelay:   cfg.Retry.MaxDelayDuration(),
		},
		maxTokens:   cfg.Provider.MaxTokens,
		temperature: cfg.Provider.Temperature,
		bodyBudget:  cfg.BodyBudget,
		log:         log,
	}
}

// Summarize produces a summary record for one email. The provider path is
// tried first; on retry exhaustion, a fatal call error, or an unparseable
// response the deterministic fallback takes over, so a usable record is
// always returned. The second return value reports whether the fallback was
// used.
func (s *Summarizer) Summarize(ctx context.Context, email normalizer.Email) (EmailSummary, bool) {
	raw, err := s.Complete(ctx, SystemPrompt, BuildSummaryPrompt(email, s.bodyBudget))
	if err != nil {
		s.log.Warn().Err(err).Str("message_id", email.MessageID).
			Msg("provider call failed, using fallback summary")
		return FallbackSummary(email), true
	}

	parsed, err := ParseResponse(raw)
	if err != nil {
		s.log.Warn().Err(err).Str("message_id", email.MessageID).
			Msg("unusable provider response, using fallback summary")
		return FallbackSummary(email), true
	}

	record := FallbackSummary(email)
	record.Summary = parsed.Summary
	record.Priority = parsed.Priority
	// Keep lists non-nil so empty sections persist as empty lists.
	if len(parsed.KeyPoints) > 0 {
		record.KeyPoints = parsed.KeyPoints
	}
	if len(parsed.ActionItems) > 0 {
		record.ActionItems = parsed.ActionItems
	}
	return record, false
}

// Complete issues a completion request against the provider with retry and
// exponential backoff. Transient failures are retried; fatal ones surface
// immediately.
func (s *Summarizer) Complete(ctx context.Context, system, prompt string) (string, error) {
	var raw string
	err := retry.WithBackoff(ctx, s.retryCfg, func(ctx context.Context) error {
		var callErr error
		raw, callErr = s.provider.Complete(ctx, CompletionRequest{
			System:      system,
			Prompt:      prompt,
			MaxTokens:   s.maxTokens,
			Temperature: s.temperature,
		})
		return callErr
	})
	if err != nil {
		return "", fmt.Errorf("summarizer: %s call failed: %w", s.provider.Name(), err)
	}
	return raw, nil
}
