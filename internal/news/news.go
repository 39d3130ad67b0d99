// Package news holds the domain types shared by the ingestion pipeline.
package news

import (
	"strings"
	"time"
)

// MediaBundle is the media reference set extracted from an article's
// origin page. Order is meaningful: images[0] is the lead image.
type MediaBundle struct {
	Images []string `json:"images"`
	Videos []string `json:"videos"`
}

// Article is one persisted news item. The URL is the identity: the
// pipeline never writes two articles with the same URL.
type Article struct {
	ID             int64
	Title          string
	Content        string
	Summary        string // raw source description
	AISummary      string // empty when enrichment failed
	ShortAISummary string // at most 40 runes
	URL            string
	OriginURL      string
	Media          MediaBundle
	Source         string // publisher label, may be empty
	Category       string // the keyword that produced the article
	PubDate        time.Time
	CreatedAt      time.Time
}

// ParsePubDate parses the search API's RFC 2822 style timestamps
// ("Mon, 02 Jan 2006 15:04:05 +0900") with an ISO 8601 fallback. When
// both fail the ingestion time is used.
func ParsePubDate(s string, now time.Time) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return now
	}
	for _, layout := range []string{time.RFC1123Z, time.RFC1123, time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return now
}

// SourceFromTitle pulls the publisher label some feeds append to the raw
// title, e.g. "제목... - 조선일보". Empty when there is no such suffix.
func SourceFromTitle(title string) string {
	if idx := strings.LastIndex(title, " - "); idx >= 0 {
		return strings.TrimSpace(title[idx+len(" - "):])
	}
	return ""
}
