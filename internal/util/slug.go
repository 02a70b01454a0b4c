package util

import (
	"regexp"
	"strings"
)

var (
	whitespaceRuns = regexp.MustCompile(`\s+`)
	nonSlugChars   = regexp.MustCompile(`[^\w-]`)
)

// Slugify derives a URL-safe identifier from free text.
// The derivation is deterministic: trim surrounding whitespace, lower-case,
// replace each whitespace run with a single hyphen, then drop every character
// that is not a word character or a hyphen. The same input always yields the
// same slug, so slugs are stable across updates that do not touch the source
// field.
func Slugify(text string) string {
	slug := strings.ToLower(strings.TrimSpace(text))
	slug = whitespaceRuns.ReplaceAllString(slug, "-")
	return nonSlugChars.ReplaceAllString(slug, "")
}
