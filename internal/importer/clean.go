package importer

import (
	"regexp"
	"strings"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// cleanText collapses whitespace runs into single spaces and trims.
// Embedded line breaks become spaces first, so a break between words
// never merges them.
func cleanText(text string) string {
	if text == "" {
		return ""
	}
	text = strings.ReplaceAll(text, "\n", " ")
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))
}

// Coarse look-alike patterns for first-slide subtitle selection. These
// are intentionally loose; a miss degrades to "treat as subtitle", it
// never aborts the slide.
var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(?:January|February|March|April|May|June|July|August|September|October|November|December)\s+\d{1,2},?\s*\d{4}\b`),
	regexp.MustCompile(`\b\d{1,2}/\d{1,2}/\d{2,4}\b`),
	regexp.MustCompile(`(?i)\b(?:Spring|Summer|Fall|Winter)\s+\d{4}\b`),
}

var namePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bDr\.\b`),
	regexp.MustCompile(`(?i)\bPh\.?D\.?\b`),
	regexp.MustCompile(`(?i)\bD\.?E\.?D\.?\b`),
	regexp.MustCompile(`(?i)\bM\.?D\.?\b`),
}

func looksLikeDate(text string) bool {
	for _, p := range datePatterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}

// looksLikeName checks for credential markers (Dr., Ph.D., ...). A name
// without a title slips through; that imprecision is accepted.
func looksLikeName(text string) bool {
	for _, p := range namePatterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}

var nonAlnumRe = regexp.MustCompile(`[^a-z0-9]+`)

// slugify derives a stable anchor id from a heading: lowercased,
// non-alphanumeric runs collapsed to "-", trimmed, capped at 30 bytes.
// Collisions between headings are acceptable.
func slugify(heading string) string {
	id := nonAlnumRe.ReplaceAllString(strings.ToLower(heading), "-")
	id = strings.Trim(id, "-")
	if len(id) > 30 {
		id = id[:30]
	}
	return id
}

// truncate caps s at n runes.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

var tagRe = regexp.MustCompile(`<[^>]+>`)

// stripTags deletes anything between < and >. It is a literal tag
// removal, not a rich-text renderer; entities are left as-is.
func stripTags(s string) string {
	return strings.TrimSpace(tagRe.ReplaceAllString(s, ""))
}
