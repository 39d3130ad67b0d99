// Package collector drives one batch ingestion run: keywords in order,
// paged search per keyword, dedup + enrichment + persistence per item.
// No failure below run level is fatal; everything is absorbed into logs
// and counts.
package collector

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"github.com/deusflow/newsboard/internal/config"
	"github.com/deusflow/newsboard/internal/metrics"
	"github.com/deusflow/newsboard/internal/naver"
	"github.com/deusflow/newsboard/internal/news"
	"github.com/deusflow/newsboard/internal/storage"
	"github.com/deusflow/newsboard/internal/summarize"
	"github.com/deusflow/newsboard/internal/textutil"
)

// Pager walks one keyword's result pages.
type Pager interface {
	Next(ctx context.Context) ([]naver.Item, error)
}

// Searcher starts a paged fetch for one keyword.
type Searcher interface {
	Paginate(query string, target int) Pager
}

type MediaExtractor interface {
	Extract(ctx context.Context, url string) news.MediaBundle
}

type Summarizer interface {
	Enrich(ctx context.Context, title, content string) (summarize.Result, string)
}

type Store interface {
	Exists(ctx context.Context, url string) (bool, error)
	SaveArticle(ctx context.Context, a *news.Article, keywords []string) (int64, error)
}

// NaverSearcher adapts the concrete client to the Searcher interface.
type NaverSearcher struct {
	Client *naver.Client
}

func (s NaverSearcher) Paginate(query string, target int) Pager {
	return s.Client.Paginate(query, target)
}

// Stats is the aggregate outcome of one run.
type Stats struct {
	TotalCollected int
	TotalNew       int
}

type Collector struct {
	searcher   Searcher
	media      MediaExtractor
	summarizer Summarizer
	store      Store
	limiter    *rate.Limiter
	now        func() time.Time
}

func New(cfg *config.Config, searcher Searcher, media MediaExtractor, summarizer Summarizer, store Store) *Collector {
	every := rate.Inf
	if cfg.KeywordDelay > 0 {
		every = rate.Every(cfg.KeywordDelay)
	}
	return &Collector{
		searcher:   searcher,
		media:      media,
		summarizer: summarizer,
		store:      store,
		limiter:    rate.NewLimiter(every, 1),
		now:        time.Now,
	}
}

// Run processes the keywords strictly in the given order. It never
// returns an error: keyword and article failures are logged, counted
// and skipped.
func (c *Collector) Run(ctx context.Context, keywords []string, maxPerKeyword int) Stats {
	start := c.now()
	defer func() {
		metrics.Global.RecordRun(time.Since(start))
	}()

	slog.Info("ingestion run starting", "keywords", len(keywords), "max_per_keyword", maxPerKeyword)

	var stats Stats
	for _, keyword := range keywords {
		// The wait between keywords is also the run's stop point.
		if err := c.limiter.Wait(ctx); err != nil {
			slog.Warn("ingestion run stopped", "error", err)
			break
		}

		collected, newCount, err := c.collectKeyword(ctx, keyword, maxPerKeyword)
		stats.TotalCollected += collected
		stats.TotalNew += newCount
		if err != nil {
			metrics.Global.IncrementKeywordFailures()
			metrics.Global.SetError(err.Error())
			slog.Error("keyword aborted", "keyword", keyword, "error", err)
			continue
		}
		slog.Info("keyword done", "keyword", keyword, "collected", collected, "new", newCount)
	}

	slog.Info("ingestion run finished", "total_collected", stats.TotalCollected, "total_new", stats.TotalNew)
	return stats
}

// collectKeyword pages through one keyword's results. A transport error
// ends this keyword but keeps the counts gathered so far.
func (c *Collector) collectKeyword(ctx context.Context, keyword string, target int) (collected, newCount int, err error) {
	pager := c.searcher.Paginate(keyword, target)

	for {
		items, err := pager.Next(ctx)
		if err != nil {
			return collected, newCount, err
		}
		if len(items) == 0 {
			return collected, newCount, nil
		}

		for _, item := range items {
			isNew, err := c.processItem(ctx, item, keyword)
			if err != nil {
				metrics.Global.IncrementArticleFailures()
				slog.Error("article failed", "keyword", keyword, "link", item.Link, "error", err)
				continue
			}
			collected++
			metrics.Global.AddCollected(1)
			if isNew {
				newCount++
			}
		}
	}
}

// processItem handles one raw result: dedup by canonical URL, then
// media extraction, enrichment and the transactional write.
func (c *Collector) processItem(ctx context.Context, item naver.Item, category string) (bool, error) {
	url := item.Link
	if url == "" {
		return false, nil
	}

	exists, err := c.store.Exists(ctx, url)
	if err != nil {
		return false, fmt.Errorf("dedup check: %w", err)
	}
	if exists {
		metrics.Global.IncrementDuplicates()
		return false, nil
	}

	mediaURL := item.OriginalLink
	if mediaURL == "" {
		mediaURL = url
	}
	bundle := c.media.Extract(ctx, mediaURL)

	result, shortSummary := c.summarizer.Enrich(ctx, item.Title, item.Description)
	var aiSummary string
	var keywords []string
	if result.Success {
		aiSummary = result.Summary
		keywords = result.Keywords
	} else {
		// Persist anyway; the AI fields stay null and no keywords link.
		metrics.Global.IncrementSummaryFallbacks()
		slog.Debug("enrichment degraded", "link", url, "error", result.Err)
	}

	summary := textutil.Normalize(item.Description)
	article := &news.Article{
		Title:          textutil.Normalize(item.Title),
		Content:        summary,
		Summary:        summary,
		AISummary:      aiSummary,
		ShortAISummary: shortSummary,
		URL:            url,
		OriginURL:      item.OriginalLink,
		Media:          bundle,
		Source:         news.SourceFromTitle(item.Title),
		Category:       category,
		PubDate:        news.ParsePubDate(item.PubDate, c.now()),
	}

	if _, err := c.store.SaveArticle(ctx, article, keywords); err != nil {
		if errors.Is(err, storage.ErrConflict) {
			// A racing duplicate slipped past the existence check.
			metrics.Global.IncrementDuplicates()
			return false, nil
		}
		return false, fmt.Errorf("persisting article: %w", err)
	}

	metrics.Global.IncrementNew()
	return true, nil
}
