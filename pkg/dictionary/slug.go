package dictionary

import (
	"regexp"
	"strings"
)

var whitespaceOrDot = regexp.MustCompile(`[\s.]`)

// Slugify derives a URL slug from free text. The substitution table and its
// order are load-bearing: existing slugs in seeded data were produced by
// exactly this sequence, so any change breaks cross-references.
func Slugify(text string) string {
	slug := strings.ToLower(strings.TrimSpace(text))
	if slug == "" {
		return slug
	}
	if slug[0] == '\'' || slug[0] == '-' {
		slug = slug[1:]
	}
	slug = whitespaceOrDot.ReplaceAllString(slug, "-")
	slug = strings.ReplaceAll(slug, ":", "")
	slug = strings.ReplaceAll(slug, "/", "")
	slug = strings.ReplaceAll(slug, "$", "s")
	slug = strings.ReplaceAll(slug, "*", "")
	slug = strings.ReplaceAll(slug, "#", "number")
	slug = strings.ReplaceAll(slug, "%", "percent")
	// "&amp;" before "&": source text sometimes arrives HTML-escaped.
	slug = strings.ReplaceAll(slug, "&amp;", "and")
	slug = strings.ReplaceAll(slug, "&", "and")
	slug = strings.ReplaceAll(slug, "+", "and")

	slug = strings.ReplaceAll(slug, "é", "e")
	slug = strings.ReplaceAll(slug, "ó", "o")
	slug = strings.ReplaceAll(slug, "á", "a")
	slug = strings.ReplaceAll(slug, "@", "at")
	slug = strings.ReplaceAll(slug, "½", "half")
	slug = strings.ReplaceAll(slug, "ō", "o")

	slug = strings.ReplaceAll(slug, "'", "")
	slug = strings.ReplaceAll(slug, ",", "")
	slug = strings.TrimSuffix(slug, "-")
	slug = strings.ReplaceAll(slug, "?", "")
	slug = strings.ReplaceAll(slug, "(", "")
	slug = strings.ReplaceAll(slug, ")", "")
	return slug
}
