package summarizer

import (
	"fmt"
	"strings"
	"time"

	"github.com/hmiyata/mailbrief/internal/normalizer"
)

// fallbackCharBudget caps the length of a synthesized summary.
const fallbackCharBudget = 300

// FallbackSummary produces a usable summary record purely from the
// normalized text, without any AI call. It is the terminal fallback and
// never fails for well-formed input: the summary is the first sentence or
// two of the body, lists are empty and priority is the safe default.
func FallbackSummary(email normalizer.Email) EmailSummary {
	summary := leadingSentences(email.Body, 2, fallbackCharBudget)
	if summary == "" {
		summary = fmt.Sprintf("Email from %s regarding: %s", email.Sender, email.Subject)
	}

	return EmailSummary{
		Subject:     email.Subject,
		Sender:      email.Sender,
		Date:        email.Date.Format(time.RFC3339),
		Summary:     summary,
		KeyPoints:   []string{},
		ActionItems: []string{},
		Priority:    PriorityMedium,
	}
}

// leadingSentences takes up to n leading sentences of text, bounded by a
// character budget. Sentence boundaries are ". ", "! " and "? ".
func leadingSentences(text string, n, budget int) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}

	var sb strings.Builder
	remaining := text
	for i := 0; i < n && remaining != ""; i++ {
		idx := sentenceEnd(remaining)
		var sentence string
		if idx < 0 {
			sentence = remaining
			remaining = ""
		} else {
			sentence = remaining[:idx+1]
			remaining = strings.TrimSpace(remaining[idx+1:])
		}
		if sb.Len() > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(strings.TrimSpace(sentence))
	}

	return TruncateAtWord(sb.String(), budget)
}

// sentenceEnd returns the index of the first sentence-ending punctuation
// mark that is followed by whitespace or ends the text, or -1.
func sentenceEnd(s string) int {
	for i, r := range s {
		if r != '.' && r != '!' && r != '?' {
			continue
		}
		if i+1 >= len(s) || s[i+1] == ' ' || s[i+1] == '\n' {
			return i
		}
	}
	return -1
}
