package summarizer

import (
	"strings"
	"testing"
	"time"

	"github.com/hmiyata/mailbrief/internal/normalizer"
)

func sampleEmail(body string) normalizer.Email {
	return normalizer.Email{
		MessageID: "msg-1",
		Subject:   "Weekly Update",
		Sender:    "alice@example.com",
		Date:      time.Date(2024, 1, 17, 8, 30, 0, 0, time.UTC),
		Body:      body,
	}
}

func TestFallbackSummary_LeadingSentences(t *testing.T) {
	record := FallbackSummary(sampleEmail("The deploy finished last night. All services are healthy. More details in the dashboard."))

	if record.Summary != "The deploy finished last night. All services are healthy." {
		t.Errorf("Unexpected summary: %q", record.Summary)
	}
	if record.Priority != PriorityMedium {
		t.Errorf("Priority = %q, want Medium", record.Priority)
	}
	if len(record.KeyPoints) != 0 || len(record.ActionItems) != 0 {
		t.Errorf("Expected empty lists, got %v / %v", record.KeyPoints, record.ActionItems)
	}
	if record.KeyPoints == nil || record.ActionItems == nil {
		t.Error("Expected non-nil empty lists")
	}
	if record.Date != "2024-01-17T08:30:00Z" {
		t.Errorf("Date = %q", record.Date)
	}
}

func TestFallbackSummary_EmptyBody(t *testing.T) {
	record := FallbackSummary(sampleEmail(""))

	want := "Email from alice@example.com regarding: Weekly Update"
	if record.Summary != want {
		t.Errorf("Summary = %q, want %q", record.Summary, want)
	}
}

func TestFallbackSummary_LongBodyCapped(t *testing.T) {
	body := strings.Repeat("a very long sentence without an ending ", 30)
	record := FallbackSummary(sampleEmail(body))

	if len(record.Summary) > fallbackCharBudget {
		t.Errorf("Summary length %d exceeds budget %d", len(record.Summary), fallbackCharBudget)
	}
	if record.Summary == "" {
		t.Error("Expected non-empty summary")
	}
}

func TestLeadingSentences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		n    int
		want string
	}{
		{"two of three", "One. Two! Three?", 2, "One. Two!"},
		{"single sentence", "Only one here.", 2, "Only one here."},
		{"no terminator", "no punctuation at all", 2, "no punctuation at all"},
		{"question mark", "Are you coming? Reply soon. Thanks.", 1, "Are you coming?"},
		{"decimal not a boundary", "Budget is 1.5 million. Approved.", 1, "Budget is 1.5 million."},
		{"empty", "", 2, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := leadingSentences(tt.in, tt.n, 300); got != tt.want {
				t.Errorf("leadingSentences(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
			}
		})
	}
}
