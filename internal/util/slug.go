package util

import (
	"strings"
	"unicode"
)

// Slugify converts a title into a URL-safe slug: lower-cased, runs of
// non-alphanumeric characters collapsed to single hyphens, leading and
// trailing hyphens trimmed.
func Slugify(title string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastHyphen = false
		} else if !lastHyphen {
			b.WriteRune('-')
			lastHyphen = true
		}
	}
	return strings.Trim(b.String(), "-")
}
