package summarizer

import (
	"strings"
)

// ParsedResponse holds the sections extracted from a provider response,
// along with the set of labels that were actually recognized so callers can
// tell "no sections at all" apart from "sections present but empty".
type ParsedResponse struct {
	Summary     string
	KeyPoints   []string
	ActionItems []string
	Priority    string
	Found       map[string]bool
}

var labels = []string{LabelSummary, LabelKeyPoints, LabelActionItems, LabelPriority}

// ParseResponse extracts the four labeled sections from raw provider text
// using tolerant, case-insensitive line-prefix matching. Each section's
// content runs until the next recognized label or end of text.
//
// Returns ErrNoSections when no label is recognized at all, and ErrNoSummary
// when the response is labeled but carries no usable SUMMARY content. In
// both cases the caller is expected to fall back rather than store the
// result.
func ParseResponse(raw string) (*ParsedResponse, error) {
	res := &ParsedResponse{
		Priority: PriorityMedium,
		Found:    make(map[string]bool),
	}

	sections := make(map[string][]string)
	current := ""

	for _, line := range strings.Split(raw, "\n") {
		if label, rest, ok := matchLabel(line); ok {
			res.Found[label] = true
			current = label
			if rest != "" {
				sections[label] = append(sections[label], rest)
			}
			continue
		}
		if current != "" {
			sections[current] = append(sections[current], line)
		}
	}

	if len(res.Found) == 0 {
		return nil, ErrNoSections
	}

	res.Summary = strings.TrimSpace(strings.Join(sections[LabelSummary], " "))
	res.KeyPoints = extractListItems(sections[LabelKeyPoints])
	res.ActionItems = extractListItems(sections[LabelActionItems])
	res.Priority = NormalizePriority(strings.Join(sections[LabelPriority], " "))

	if res.Summary == "" {
		return res, ErrNoSummary
	}

	return res, nil
}

// matchLabel reports whether line begins with one of the recognized section
// labels followed by a colon. Markdown emphasis around the label is
// tolerated.
func matchLabel(line string) (label, rest string, ok bool) {
	trimmed := strings.TrimSpace(line)
	trimmed = strings.TrimLeft(trimmed, "#")
	trimmed = strings.ReplaceAll(trimmed, "**", "")
	trimmed = strings.TrimSpace(trimmed)

	upper := strings.ToUpper(trimmed)
	for _, l := range labels {
		if !strings.HasPrefix(upper, l) {
			continue
		}
		after := strings.TrimSpace(trimmed[len(l):])
		if after == "" {
			return l, "", true
		}
		if strings.HasPrefix(after, ":") {
			return l, strings.TrimSpace(after[1:]), true
		}
	}
	return "", "", false
}

// extractListItems splits section lines into list items, stripping leading
// bullet markers and dropping blanks. A section consisting only of a "none"
// marker yields an empty list.
func extractListItems(lines []string) []string {
	var items []string
	for _, line := range lines {
		item := strings.TrimSpace(line)
		item = strings.TrimLeft(item, "-*•")
		item = trimNumberPrefix(item)
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		switch strings.ToLower(item) {
		case "none", "none identified", "none identified.", "n/a":
			continue
		}
		items = append(items, item)
	}
	return items
}

// trimNumberPrefix strips a leading "1." or "2)" style marker.
func trimNumberPrefix(s string) string {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 || i >= len(s) {
		return s
	}
	if s[i] == '.' || s[i] == ')' {
		return s[i+1:]
	}
	return s
}

// NormalizePriority maps free-form priority text onto exactly one of High,
// Medium or Low. The first recognized keyword wins; anything unrecognized
// defaults to Medium.
func NormalizePriority(s string) string {
	for _, word := range strings.Fields(strings.ToLower(s)) {
		word = strings.Trim(word, ".,:;!()[]\"'")
		switch word {
		case "high":
			return PriorityHigh
		case "medium":
			return PriorityMedium
		case "low":
			return PriorityLow
		}
	}
	return PriorityMedium
}
