package normalizer

import (
	"net/mail"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/hmiyata/mailbrief/internal/fetcher"
)

// Email is the cleaned, plain-text representation of a fetched message.
// The body is never raw HTML. Immutable once created.
type Email struct {
	MessageID string
	Subject   string
	Sender    string
	Date      time.Time
	Body      string
}

var (
	whitespaceRe = regexp.MustCompile(`[ \t]+`)
	blankLinesRe = regexp.MustCompile(`\n\s*\n\s*\n+`)

	// Common trailing artifacts: signature delimiters, mobile footers.
	artifactRes = []*regexp.Regexp{
		regexp.MustCompile(`(?ms)^--\s*$.*\z`),
		regexp.MustCompile(`(?ms)^Sent from my \w.*\z`),
		regexp.MustCompile(`(?ms)^Get Outlook for \w.*\z`),
		regexp.MustCompile(`(?ms)^This email was sent from.*\z`),
	}
)

// Normalize converts a raw message into its cleaned form. It never fails:
// unparseable HTML degrades to best-effort text, an unparseable date falls
// back to the current time, and absent bodies yield an empty string.
func Normalize(msg fetcher.Message) Email {
	return normalizeAt(msg, time.Now())
}

func normalizeAt(msg fetcher.Message, now time.Time) Email {
	var body string
	switch {
	case strings.TrimSpace(msg.PlainBody) != "":
		body = CleanText(msg.PlainBody)
	case msg.HTMLBody != "":
		body = CleanHTML(msg.HTMLBody)
	}

	return Email{
		MessageID: msg.ID,
		Subject:   msg.Subject,
		Sender:    msg.Sender,
		Date:      parseDate(msg.Date, now),
		Body:      body,
	}
}

// CleanHTML strips tags, scripts and styles from HTML and collapses the
// remaining text. Parse failures degrade to cleaning the raw input.
func CleanHTML(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return CleanText(html)
	}

	doc.Find("script, style").Remove()

	var sb strings.Builder
	// Walk block-level nodes so that element boundaries become line breaks
	// instead of running words together.
	doc.Find("body").Each(func(_ int, sel *goquery.Selection) {
		sb.WriteString(sel.Text())
	})
	text := sb.String()
	if text == "" {
		text = doc.Text()
	}

	return CleanText(text)
}

// CleanText collapses whitespace runs, trims blank-line stacks and removes
// trailing signature blocks.
func CleanText(text string) string {
	if text == "" {
		return ""
	}

	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = whitespaceRe.ReplaceAllString(text, " ")
	text = blankLinesRe.ReplaceAllString(text, "\n\n")
	text = strings.TrimSpace(text)

	for _, re := range artifactRes {
		text = re.ReplaceAllString(text, "")
	}

	return strings.TrimSpace(text)
}

// parseDate parses an RFC 2822 Date header, falling back to the retrieval
// time when the header is absent or malformed.
func parseDate(raw string, now time.Time) time.Time {
	if raw == "" {
		return now
	}
	t, err := mail.ParseDate(raw)
	if err != nil {
		return now
	}
	return t
}
