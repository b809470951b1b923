package summarizer

import (
	"strings"
	"testing"
	"time"

	"github.com/hmiyata/mailbrief/internal/normalizer"
)

func TestBuildSummaryPrompt_ContainsLabels(t *testing.T) {
	email := normalizer.Email{
		Subject: "Project Update Required",
		Sender:  "manager@company.com",
		Date:    time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC),
		Body:    "The Q1 deliverables are due Friday.",
	}

	prompt := BuildSummaryPrompt(email, 0)

	for _, want := range []string{
		"SUMMARY:",
		"KEY_POINTS:",
		"ACTION_ITEMS:",
		"PRIORITY:",
		"Subject: Project Update Required",
		"From: manager@company.com",
		"The Q1 deliverables are due Friday.",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("Expected prompt to contain %q", want)
		}
	}
}

func TestBuildSummaryPrompt_TruncatesBody(t *testing.T) {
	long := strings.Repeat("word ", 500)
	email := normalizer.Email{Subject: "s", Sender: "a@b.c", Body: long}

	prompt := BuildSummaryPrompt(email, 100)

	if strings.Contains(prompt, long) {
		t.Error("Expected body to be truncated in prompt")
	}
	if !strings.Contains(prompt, "word word") {
		t.Error("Expected leading body content to be preserved")
	}
}

func TestTruncateAtWord(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		budget int
		want   string
	}{
		{"under budget", "short text", 100, "short text"},
		{"exact budget", "12345", 5, "12345"},
		{"cut at boundary", "alpha beta gamma", 10, "alpha beta"},
		{"cut mid-word backs up", "alpha beta gamma", 12, "alpha beta"},
		{"no whitespace keeps hard cut", "abcdefghij", 4, "abcd"},
		{"zero budget returns input", "anything", 0, "anything"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TruncateAtWord(tt.in, tt.budget)
			if got != tt.want {
				t.Errorf("TruncateAtWord(%q, %d) = %q, want %q", tt.in, tt.budget, got, tt.want)
			}
			if tt.budget > 0 && len(got) > tt.budget {
				t.Errorf("Result %q exceeds budget %d", got, tt.budget)
			}
		})
	}
}
