// Package textnorm canonicalizes raw job-posting text before any
// downstream stage looks at it. Normalize is total and idempotent:
// it never fails, and normalizing twice is a no-op.
package textnorm

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
)

var markupHint = regexp.MustCompile(`<[a-zA-Z!/]`)

// Normalize lower-cases, strips HTML/markup residue and control
// characters, collapses whitespace runs and trims. Empty input
// normalizes to the empty string.
func Normalize(raw string) string {
	s := raw
	if markupHint.MatchString(s) {
		s = stripMarkup(s)
	}
	s = strings.ToLower(s)
	s = strings.Map(func(r rune) rune {
		if r == '\u00a0' || unicode.IsControl(r) {
			return ' '
		}
		return r
	}, s)
	return CleanText(s)
}

// CleanText collapses whitespace runs to single spaces and trims.
func CleanText(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimSpace(s)
}

// stripMarkup extracts the text content of HTML-ish input. Tags are
// padded first so adjacent elements don't glue their words together.
func stripMarkup(s string) string {
	padded := strings.ReplaceAll(s, "<", " <")
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(padded))
	if err != nil {
		// Not parseable as markup; fall back to dropping tag-like runs.
		return tagRun.ReplaceAllString(s, " ")
	}
	doc.Find("script,style").Remove()
	return doc.Text()
}

var tagRun = regexp.MustCompile(`<[^>]*>`)
