// Package transcript turns a day's summary document into a narrated-style
// script suitable for being read aloud.
package transcript

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/hmiyata/mailbrief/internal/store"
	"github.com/hmiyata/mailbrief/internal/summarizer"
)

// systemPrompt frames the transcript generation call.
const systemPrompt = "You are a professional briefing host who writes natural, conversational scripts for audio delivery."

// Generator produces transcripts from daily documents, preferring the AI
// path and falling back to a deterministic template.
type Generator struct {
	summ *summarizer.Summarizer
	log  zerolog.Logger
}

func NewGenerator(summ *summarizer.Summarizer, log zerolog.Logger) *Generator {
	return &Generator{summ: summ, log: log}
}

// Generate builds the narrative for a day's document. A day with no
// emails always yields the fixed empty-day narrative. Provider failures
// degrade to the template fallback, so a usable transcript is always
// returned.
func (g *Generator) Generate(ctx context.Context, doc *store.Document) string {
	if doc.EmailCount == 0 {
		return EmptyNarrative(doc.Date)
	}

	if g.summ != nil {
		raw, err := g.summ.Complete(ctx, systemPrompt, buildPrompt(doc))
		if err == nil {
			if formatted := formatForSpeech(raw); formatted != "" {
				return formatted
			}
			g.log.Warn().Str("date", doc.Date).Msg("empty transcript from provider, using fallback")
		} else {
			g.log.Warn().Err(err).Str("date", doc.Date).Msg("transcript generation failed, using fallback")
		}
	}

	return FallbackTranscript(doc)
}

// buildPrompt renders the day's summary records into an instruction
// requesting a bounded, narrated briefing script.
func buildPrompt(doc *store.Document) string {
	var sb strings.Builder
	for i, email := range doc.Emails {
		fmt.Fprintf(&sb, "Email %d:\n", i+1)
		fmt.Fprintf(&sb, "Subject: %s\n", email.Subject)
		fmt.Fprintf(&sb, "From: %s\n", email.Sender)
		fmt.Fprintf(&sb, "Summary: %s\n", email.Summary)
		fmt.Fprintf(&sb, "Key Points: %s\n", strings.Join(email.KeyPoints, ", "))
		fmt.Fprintf(&sb, "Action Items: %s\n", strings.Join(email.ActionItems, ", "))
		fmt.Fprintf(&sb, "Priority: %s\n\n", email.Priority)
	}

	return fmt.Sprintf(`Create a conversational transcript for an AI host to read aloud as a daily email briefing for %s.

Email Summaries:
%s
Guidelines:
- Use natural, conversational language suitable for audio presentation
- Create smooth transitions between different emails using phrases like "Let me tell you about...", "Moving on to...", "Next up..."
- Maintain a professional but friendly tone throughout
- Include a brief opening greeting and closing
- Consolidate action items at the end in a clear summary
- Keep the total length suitable for a 2-3 minute audio briefing
- Use present tense and direct address ("you have", "you need to")
- Make it sound natural when read aloud, avoiding awkward phrasing

Format as a complete script that flows naturally when read by an AI voice assistant. Start with a greeting and end with a closing statement.`, spokenDate(doc.Date), sb.String())
}

// EmptyNarrative is the fixed transcript for a day with no qualifying
// emails. Never an empty string.
func EmptyNarrative(date string) string {
	return fmt.Sprintf("Good morning! Here's your email briefing for %s. "+
		"There were no important messages today that required your attention. "+
		"Enjoy the quiet inbox, and have a great day!", spokenDate(date))
}

// FallbackTranscript renders the deterministic template: opening, one
// passage per email, consolidated action items, and a closing line.
func FallbackTranscript(doc *store.Document) string {
	if doc.EmailCount == 0 {
		return EmptyNarrative(doc.Date)
	}

	var parts []string
	parts = append(parts, fmt.Sprintf("Good morning! Here's your email briefing for %s.", spokenDate(doc.Date)))
	if doc.EmailCount == 1 {
		parts = append(parts, "I found one important email that needs your attention today.")
	} else {
		parts = append(parts, fmt.Sprintf("I processed %d important emails for you today.", doc.EmailCount))
	}

	for i, email := range doc.Emails {
		intro := "Next,"
		switch {
		case i == 0:
			intro = "First up,"
		case i == doc.EmailCount-1:
			intro = "Finally,"
		}
		summary := strings.TrimSpace(strings.ReplaceAll(email.Summary, "\n", " "))
		if summary != "" && !strings.HasSuffix(summary, ".") {
			summary += "."
		}
		parts = append(parts, fmt.Sprintf("%s you have an email from %s about %s. %s",
			intro, senderName(email.Sender), email.Subject, summary))
	}

	var actions []string
	for _, email := range doc.Emails {
		actions = append(actions, email.ActionItems...)
	}
	if len(actions) == 1 {
		parts = append(parts, "Before you go, there's one action item that needs your attention: "+actions[0])
	} else if len(actions) > 1 {
		parts = append(parts, "To wrap up, here are the main action items for your attention:")
		for _, item := range actions {
			parts = append(parts, "- "+item)
		}
	}

	parts = append(parts, "That concludes your email briefing. Have a wonderful day!")

	return formatForSpeech(strings.Join(parts, " "))
}

var (
	boldRe   = regexp.MustCompile(`\*\*(.*?)\*\*`)
	italicRe = regexp.MustCompile(`\*(.*?)\*`)
	codeRe   = regexp.MustCompile("`(.*?)`")
	spacesRe = regexp.MustCompile(`\s+`)
	angleRe  = regexp.MustCompile(`\s*<[^>]*>`)
)

// formatForSpeech strips markdown that would interfere with speech
// synthesis and normalizes whitespace.
func formatForSpeech(s string) string {
	s = strings.TrimSpace(s)
	s = boldRe.ReplaceAllString(s, "$1")
	s = italicRe.ReplaceAllString(s, "$1")
	s = codeRe.ReplaceAllString(s, "$1")
	s = spacesRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// senderName drops the address part of "Display Name <addr@host>".
func senderName(sender string) string {
	name := strings.TrimSpace(angleRe.ReplaceAllString(sender, ""))
	if name == "" {
		return "an unknown sender"
	}
	return name
}

// spokenDate renders YYYY-MM-DD as "January 2, 2006" for speech; an
// unparseable date is used as-is.
func spokenDate(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return t.Format("January 2, 2006")
}
