// Package aitext turns loosely structured AI output into clean bullet
// lists. Upstream suggestion and summary responses arrive as real lists,
// stringified list literals, or free narrative text with embedded
// numbering and leaked record identifiers; Reformat absorbs all of them.
package aitext

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// Placeholder is emitted when the input carries nothing displayable.
const Placeholder = "No data available."

var (
	// bracketed ids like [6f2afd46-2db7-4a11-9f1a-000000000000] leak from
	// upstream records into suggestion text.
	bracketedID = regexp.MustCompile(`\[[^\[\]]*\]`)
	rolePrefix  = regexp.MustCompile(`(?i)^bot\b[\s:\-]*`)
	spaceRuns   = regexp.MustCompile(`\s+`)
)

// Reformat converts an AI-generated value of arbitrary shape into an
// ordered bullet list. It never panics; unusable input degrades to a
// single placeholder bullet.
func Reformat(input any) []string {
	switch v := input.(type) {
	case nil:
		return []string{Placeholder}
	case []string:
		items := make([]any, len(v))
		for i, s := range v {
			items[i] = s
		}
		return fromList(items)
	case []any:
		return fromList(v)
	case string:
		return fromString(v)
	default:
		return fromString(fmt.Sprint(v))
	}
}

// fromList treats each element as one bullet verbatim, after cleaning.
func fromList(items []any) []string {
	bullets := make([]string, 0, len(items))
	for _, item := range items {
		if frag := cleanFragment(fmt.Sprint(item)); frag != "" {
			bullets = append(bullets, frag)
		}
	}
	if len(bullets) == 0 {
		return []string{Placeholder}
	}
	return bullets
}

func fromString(s string) []string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return []string{Placeholder}
	}

	// Encoded list literal; a parse failure falls through to the
	// narrative branch.
	if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
		var items []any
		if err := json.Unmarshal([]byte(trimmed), &items); err == nil {
			return fromList(items)
		}
	}

	return fromNarrative(trimmed)
}

// fromNarrative segments free text into steps: numeric markers first,
// sentence boundaries second, the whole cleaned string last.
func fromNarrative(text string) []string {
	clean := normalizeWhitespace(text)
	clean = rolePrefix.ReplaceAllString(clean, "")
	clean = strings.TrimSpace(clean)

	segments := segmentNumbered(clean)
	if len(segments) == 0 {
		segments = splitSentences(clean)
	}

	bullets := make([]string, 0, len(segments))
	for _, seg := range segments {
		if frag := cleanFragment(seg); frag != "" {
			bullets = append(bullets, frag)
		}
	}
	if len(bullets) == 0 {
		if frag := cleanFragment(clean); frag != "" {
			return []string{frag}
		}
		return []string{Placeholder}
	}
	return bullets
}

// segmentNumbered runs a small marker/accumulate/flush tokenizer over the
// text. A marker is a digit run at a word boundary, optionally followed
// by '.', '-' or ')'. Returns nil when no marker was seen so the caller
// can fall back to sentence splitting.
func segmentNumbered(text string) []string {
	runes := []rune(text)
	var segments []string
	var current strings.Builder
	found := false

	flush := func() {
		if frag := strings.TrimSpace(current.String()); frag != "" {
			segments = append(segments, frag)
		}
		current.Reset()
	}

	for i := 0; i < len(runes); {
		if unicode.IsDigit(runes[i]) && (i == 0 || runes[i-1] == ' ') {
			j := i
			for j < len(runes) && unicode.IsDigit(runes[j]) {
				j++
			}
			if j < len(runes) && (runes[j] == '.' || runes[j] == '-' || runes[j] == ')') {
				j++
			}
			found = true
			flush()
			i = j
			continue
		}
		current.WriteRune(runes[i])
		i++
	}
	flush()

	if !found {
		return nil
	}
	return segments
}

func splitSentences(text string) []string {
	parts := strings.Split(text, ". ")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// cleanFragment strips leaked bracketed identifiers and surrounding
// whitespace from a bullet candidate.
func cleanFragment(s string) string {
	s = bracketedID.ReplaceAllString(s, "")
	s = spaceRuns.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

func normalizeWhitespace(s string) string {
	s = strings.NewReplacer("\r", " ", "\n", " ", "•", "").Replace(s)
	return spaceRuns.ReplaceAllString(s, " ")
}
