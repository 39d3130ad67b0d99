package metrics

import (
	"sync"
	"time"
)

// Metrics tracks one process's ingestion counters. Global is shared by
// the collector and the monitoring endpoints.
type Metrics struct {
	mu sync.RWMutex

	// Counters
	ArticlesCollected int64
	ArticlesNew       int64
	DuplicatesSkipped int64
	ArticleFailures   int64
	KeywordFailures   int64
	SummaryFallbacks  int64
	MediaCacheHits    int64
	MediaCacheMisses  int64

	// Timings
	LastRunDuration  time.Duration
	TotalRunDuration time.Duration
	RunCount         int64

	// Status
	LastRunTime   time.Time
	LastErrorTime time.Time
	LastError     string
	IsHealthy     bool
}

var Global = &Metrics{IsHealthy: true}

func (m *Metrics) AddCollected(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ArticlesCollected += int64(n)
}

func (m *Metrics) IncrementNew() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ArticlesNew++
}

func (m *Metrics) IncrementDuplicates() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DuplicatesSkipped++
}

func (m *Metrics) IncrementArticleFailures() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ArticleFailures++
}

func (m *Metrics) IncrementKeywordFailures() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.KeywordFailures++
}

func (m *Metrics) IncrementSummaryFallbacks() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SummaryFallbacks++
}

func (m *Metrics) IncrementMediaCacheHits() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.MediaCacheHits++
}

func (m *Metrics) IncrementMediaCacheMisses() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.MediaCacheMisses++
}

func (m *Metrics) RecordRun(duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.LastRunDuration = duration
	m.TotalRunDuration += duration
	m.RunCount++
	m.LastRunTime = time.Now()
	m.IsHealthy = true
}

func (m *Metrics) SetError(err string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastError = err
	m.LastErrorTime = time.Now()
	m.IsHealthy = false
}

func (m *Metrics) GetStats() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]interface{}{
		"articles_collected":   m.ArticlesCollected,
		"articles_new":         m.ArticlesNew,
		"duplicates_skipped":   m.DuplicatesSkipped,
		"article_failures":     m.ArticleFailures,
		"keyword_failures":     m.KeywordFailures,
		"summary_fallbacks":    m.SummaryFallbacks,
		"media_cache_hits":     m.MediaCacheHits,
		"media_cache_misses":   m.MediaCacheMisses,
		"last_run_duration_ms": m.LastRunDuration.Milliseconds(),
		"run_count":            m.RunCount,
		"last_run_time":        m.LastRunTime.Format(time.RFC3339),
		"last_error_time":      m.LastErrorTime.Format(time.RFC3339),
		"last_error":           m.LastError,
		"is_healthy":           m.IsHealthy,
	}
}
