package transcript

import (
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/hmiyata/mailbrief/internal/config"
	"github.com/hmiyata/mailbrief/internal/store"
	"github.com/hmiyata/mailbrief/internal/summarizer"
)

func sampleDocument() *store.Document {
	return &store.Document{
		Date:       "2024-01-17",
		EmailCount: 2,
		Emails: []summarizer.EmailSummary{
			{
				Subject:     "Project Update Required",
				Sender:      "Dana Reyes <manager@company.com>",
				Date:        "2024-01-17T09:00:00Z",
				Summary:     "The Q1 deliverables need review before Friday.",
				KeyPoints:   []string{"Initial draft due Friday"},
				ActionItems: []string{"Submit initial draft by Friday"},
				Priority:    summarizer.PriorityHigh,
			},
			{
				Subject:     "Team lunch",
				Sender:      "events@company.com",
				Date:        "2024-01-17T11:00:00Z",
				Summary:     "Team lunch is scheduled for Thursday at noon.",
				KeyPoints:   []string{},
				ActionItems: []string{},
				Priority:    summarizer.PriorityLow,
			},
		},
	}
}

func emptyDocument() *store.Document {
	return &store.Document{
		Date:       "2024-01-17",
		EmailCount: 0,
		Emails:     []summarizer.EmailSummary{},
	}
}

func TestGenerate_EmptyDayFixedNarrative(t *testing.T) {
	g := NewGenerator(nil, zerolog.Nop())

	content := g.Generate(context.Background(), emptyDocument())

	if content == "" {
		t.Fatal("Empty day transcript must not be an empty string")
	}
	if !strings.Contains(content, "no important messages today") {
		t.Errorf("Expected fixed empty-day narrative, got %q", content)
	}
	if !strings.Contains(content, "January 17, 2024") {
		t.Errorf("Expected spoken date, got %q", content)
	}
}

func TestFallbackTranscript_Structure(t *testing.T) {
	content := FallbackTranscript(sampleDocument())

	for _, want := range []string{
		"Good morning",
		"January 17, 2024",
		"Dana Reyes",
		"Project Update Required",
		"The Q1 deliverables need review before Friday.",
		"Team lunch",
		"Submit initial draft by Friday",
		"Have a wonderful day",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("Expected transcript to contain %q", want)
		}
	}

	// The address part of the sender should not be spoken.
	if strings.Contains(content, "manager@company.com") {
		t.Errorf("Raw address leaked into transcript: %q", content)
	}
}

func TestFallbackTranscript_SingleEmail(t *testing.T) {
	doc := sampleDocument()
	doc.Emails = doc.Emails[:1]
	doc.EmailCount = 1

	content := FallbackTranscript(doc)
	if !strings.Contains(content, "one important email") {
		t.Errorf("Expected single-email opening, got %q", content)
	}
	if !strings.Contains(content, "one action item") {
		t.Errorf("Expected single action item phrasing, got %q", content)
	}
}

type fakeGenProvider struct {
	response string
	err      error
}

func (f *fakeGenProvider) Name() string { return "fake" }

func (f *fakeGenProvider) Complete(ctx context.Context, req summarizer.CompletionRequest) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func genTestConfig() *config.Config {
	return &config.Config{
		Provider: config.ProviderConfig{MaxTokens: 512, Temperature: 0.3},
		Retry:    config.RetryConfig{MaxRetries: 1, BaseDelay: 1, MaxDelay: 5},
	}
}

func TestGenerate_UsesProviderScript(t *testing.T) {
	provider := &fakeGenProvider{response: "**Good morning!** Your briefing is ready."}
	summ := summarizer.NewWithProvider(provider, genTestConfig(), zerolog.Nop())
	g := NewGenerator(summ, zerolog.Nop())

	content := g.Generate(context.Background(), sampleDocument())

	if content != "Good morning! Your briefing is ready." {
		t.Errorf("Expected formatted provider script, got %q", content)
	}
}

func TestGenerate_ProviderFailureFallsBack(t *testing.T) {
	provider := &fakeGenProvider{err: &summarizer.ProviderError{Kind: summarizer.KindFatal, Provider: "fake", Message: "rejected"}}
	summ := summarizer.NewWithProvider(provider, genTestConfig(), zerolog.Nop())
	g := NewGenerator(summ, zerolog.Nop())

	content := g.Generate(context.Background(), sampleDocument())

	if !strings.Contains(content, "Project Update Required") {
		t.Errorf("Expected fallback transcript, got %q", content)
	}
}

func TestFormatForSpeech(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"**bold** and *italic* and `code`", "bold and italic and code"},
		{"  spaced   out\n\ntext  ", "spaced out text"},
	}
	for _, tt := range tests {
		if got := formatForSpeech(tt.in); got != tt.want {
			t.Errorf("formatForSpeech(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSenderName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Dana Reyes <manager@company.com>", "Dana Reyes"},
		{"events@company.com", "events@company.com"},
		{"<noreply@company.com>", "an unknown sender"},
		{"", "an unknown sender"},
	}
	for _, tt := range tests {
		if got := senderName(tt.in); got != tt.want {
			t.Errorf("senderName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
