package summarizer

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/hmiyata/mailbrief/internal/normalizer"
)

// Section labels the provider is instructed to emit. The parser depends on
// these exact spellings (matched case-insensitively).
const (
	LabelSummary     = "SUMMARY"
	LabelKeyPoints   = "KEY_POINTS"
	LabelActionItems = "ACTION_ITEMS"
	LabelPriority    = "PRIORITY"
)

// SystemPrompt is the instruction role sent with every summarization call.
const SystemPrompt = "You are an expert email assistant that creates concise, structured summaries of emails."

// DefaultBodyBudget bounds how many characters of email body are embedded
// in a prompt.
const DefaultBodyBudget = 6000

// BuildSummaryPrompt renders a normalized email into a provider-agnostic
// instruction requesting the four labeled sections. The body is truncated
// to bodyBudget characters from the end, preserving the start of the
// content.
func BuildSummaryPrompt(email normalizer.Email, bodyBudget int) string {
	if bodyBudget <= 0 {
		bodyBudget = DefaultBodyBudget
	}
	body := TruncateAtWord(email.Body, bodyBudget)

	var sb strings.Builder
	sb.WriteString("Analyze this email and provide a structured summary in the following format:\n\n")
	fmt.Fprintf(&sb, "Subject: %s\nFrom: %s\nContent: %s\n\n", email.Subject, email.Sender, body)
	sb.WriteString(`Please respond with the following structure:

SUMMARY: [Provide a concise 2-3 sentence summary of the email's main purpose and content]

KEY_POINTS:
- [List the main points, decisions, or information from the email]
- [Each point should be clear and actionable]
- [Include important details like dates, names, amounts, etc.]

ACTION_ITEMS:
- [List specific actions that need to be taken]
- [Include deadlines if mentioned]
- [Be specific about who needs to do what]

PRIORITY: [Assess as High, Medium, or Low based on urgency indicators, deadlines, or sender importance]

Guidelines:
- Keep the summary concise but informative
- Focus on actionable information
- Preserve important details like dates, names, and numbers
- If no action items are present, write "None identified"
- Base priority on urgency words, deadlines, sender authority, and content importance
`)
	return sb.String()
}

// TruncateAtWord cuts s to at most budget characters, from the end. When the
// cut would land mid-word and the kept prefix contains whitespace to break
// on, the cut moves back to the last word boundary.
func TruncateAtWord(s string, budget int) string {
	if budget <= 0 || len(s) <= budget {
		return s
	}

	cut := s[:budget]

	// The cut is clean if it ends on whitespace or the next rune starts
	// a new word anyway.
	if isSpaceAt(s, budget) || isSpaceAt(cut, budget-1) {
		return strings.TrimRight(cut, " \t\n")
	}

	if idx := strings.LastIndexFunc(cut, unicode.IsSpace); idx > 0 {
		return strings.TrimRight(cut[:idx], " \t\n")
	}

	// No whitespace to break on: keep the hard cut.
	return cut
}

func isSpaceAt(s string, i int) bool {
	if i < 0 || i >= len(s) {
		return false
	}
	return unicode.IsSpace(rune(s[i]))
}
