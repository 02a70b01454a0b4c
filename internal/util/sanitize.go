package util

import (
	"regexp"
	"strings"
)

var (
	scriptBlocks = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	styleBlocks  = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	htmlTags     = regexp.MustCompile(`<[^>]*>`)
)

// SanitizeText strips active HTML content from free text so the stored value
// is safe to render. Script and style elements are removed together with
// their contents, any remaining tags are dropped, and non-printable control
// characters are eliminated. Tabs and line breaks survive; surrounding
// whitespace is trimmed.
func SanitizeText(text string) string {
	clean := scriptBlocks.ReplaceAllString(text, "")
	clean = styleBlocks.ReplaceAllString(clean, "")
	clean = htmlTags.ReplaceAllString(clean, "")
	clean = strings.Map(func(r rune) rune {
		switch r {
		case '\t', '\n', '\r':
			return r
		}
		if r < 32 || r == 127 {
			return -1
		}
		return r
	}, clean)
	return strings.TrimSpace(clean)
}
