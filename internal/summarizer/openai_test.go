package summarizer

import (
	"errors"
	"testing"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

func TestOpenAIWrapError(t *testing.T) {
	p := NewOpenAIProvider("test-key", "gpt-4o-mini", time.Second)

	tests := []struct {
		name     string
		err      error
		wantKind ErrorKind
	}{
		{
			name:     "rate limit is transient",
			err:      &openai.APIError{HTTPStatusCode: 429, Message: "rate limited"},
			wantKind: KindTransient,
		},
		{
			name:     "server error is transient",
			err:      &openai.APIError{HTTPStatusCode: 500, Message: "internal error"},
			wantKind: KindTransient,
		},
		{
			name:     "auth failure is fatal",
			err:      &openai.APIError{HTTPStatusCode: 401, Message: "invalid key"},
			wantKind: KindFatal,
		},
		{
			name:     "bad request is fatal",
			err:      &openai.APIError{HTTPStatusCode: 400, Message: "bad request"},
			wantKind: KindFatal,
		},
		{
			name:     "transport error is transient",
			err:      errors.New("connection reset by peer"),
			wantKind: KindTransient,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := p.wrapError(tt.err)

			var provErr *ProviderError
			if !errors.As(wrapped, &provErr) {
				t.Fatalf("Expected ProviderError, got %T", wrapped)
			}
			if provErr.Kind != tt.wantKind {
				t.Errorf("Expected kind %v, got %v", tt.wantKind, provErr.Kind)
			}
			if provErr.Provider != "openai" {
				t.Errorf("Expected provider openai, got %q", provErr.Provider)
			}
			if !errors.Is(wrapped, tt.err) {
				t.Error("Expected wrapped error to unwrap to the original")
			}
		})
	}
}
