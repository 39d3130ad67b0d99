// Package media extracts image and video references from article origin
// pages via their Open Graph / Twitter metadata.
package media

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/deusflow/newsboard/internal/cache"
	"github.com/deusflow/newsboard/internal/config"
	"github.com/deusflow/newsboard/internal/news"
)

const (
	userAgent = "NewsBoard/1.0 (+https://example.local)"
	maxImages = 5
)

type Extractor struct {
	httpClient *http.Client
	cache      *cache.Cache
	cacheTTL   time.Duration
	// Hit/Miss are bumped on every lookup; the collector snapshots them
	// into run metrics.
	onHit  func()
	onMiss func()
}

func NewExtractor(cfg *config.Config) *Extractor {
	return &Extractor{
		httpClient: &http.Client{Timeout: cfg.MediaTimeout},
		cache:      cache.New(cfg.MediaCacheSize),
		cacheTTL:   cfg.MediaCacheTTL,
	}
}

// SetCacheCounters wires optional cache hit/miss callbacks.
func (e *Extractor) SetCacheCounters(onHit, onMiss func()) {
	e.onHit = onHit
	e.onMiss = onMiss
}

// Extract returns the media bundle for the page at url: up to five
// images (og:image, twitter:image, then absolute-URL body <img> tags,
// deduplicated) and the first matching video reference. Every failure
// mode yields an empty bundle; this never errors out to the caller.
// Results are cached by the exact URL string for the configured TTL.
func (e *Extractor) Extract(ctx context.Context, url string) news.MediaBundle {
	if url == "" {
		return news.MediaBundle{}
	}

	if cached, ok := e.cache.Get(url); ok {
		if e.onHit != nil {
			e.onHit()
		}
		return cached.(news.MediaBundle)
	}
	if e.onMiss != nil {
		e.onMiss()
	}

	bundle := e.fetch(ctx, url)
	e.cache.Set(url, bundle, e.cacheTTL)
	return bundle
}

// ExtractOne is the single-result variant used by live requests: the
// lead image and the first video, either possibly empty.
func (e *Extractor) ExtractOne(ctx context.Context, url string) (imageURL, videoURL string) {
	bundle := e.Extract(ctx, url)
	if len(bundle.Images) > 0 {
		imageURL = bundle.Images[0]
	}
	if len(bundle.Videos) > 0 {
		videoURL = bundle.Videos[0]
	}
	return imageURL, videoURL
}

func (e *Extractor) fetch(ctx context.Context, url string) news.MediaBundle {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		slog.Debug("media: bad url", "url", url, "error", err)
		return news.MediaBundle{}
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := e.httpClient.Do(req)
	if err != nil {
		slog.Debug("media: fetch failed", "url", url, "error", err)
		return news.MediaBundle{}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		slog.Debug("media: non-200 response", "url", url, "status", resp.StatusCode)
		return news.MediaBundle{}
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		slog.Debug("media: parse failed", "url", url, "error", err)
		return news.MediaBundle{}
	}

	return extractFromDoc(doc)
}

func extractFromDoc(doc *goquery.Document) news.MediaBundle {
	var bundle news.MediaBundle
	seen := map[string]bool{}

	addImage := func(u string) {
		u = strings.TrimSpace(u)
		if u == "" || seen[u] || len(bundle.Images) >= maxImages {
			return
		}
		seen[u] = true
		bundle.Images = append(bundle.Images, u)
	}

	if u := metaContent(doc, `meta[property="og:image"]`); u != "" {
		addImage(u)
	}
	if u := metaContent(doc, `meta[name="twitter:image"]`); u != "" {
		addImage(u)
	}

	doc.Find("img[src]").EachWithBreak(func(i int, s *goquery.Selection) bool {
		src, _ := s.Attr("src")
		if strings.HasPrefix(src, "http") {
			addImage(src)
		}
		return len(bundle.Images) < maxImages
	})

	// First non-empty wins for video.
	for _, sel := range []string{
		`meta[property="og:video"]`,
		`meta[name="twitter:player"]`,
		`meta[name="twitter:player:stream"]`,
	} {
		if u := metaContent(doc, sel); u != "" {
			bundle.Videos = append(bundle.Videos, u)
			break
		}
	}

	return bundle
}

func metaContent(doc *goquery.Document, selector string) string {
	content, _ := doc.Find(selector).First().Attr("content")
	return strings.TrimSpace(content)
}
