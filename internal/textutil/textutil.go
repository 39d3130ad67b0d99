// Package textutil holds the text normalization shared by ingestion and
// enrichment.
package textutil

import (
	"html"
	"regexp"
	"strings"
)

var tagPattern = regexp.MustCompile(`<[^>]+>`)

// Normalize strips HTML tags, decodes entities, collapses whitespace runs
// and trims. It always returns a string, possibly empty.
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	s = tagPattern.ReplaceAllString(s, " ")
	s = html.UnescapeString(s)
	return strings.Join(strings.Fields(s), " ")
}
