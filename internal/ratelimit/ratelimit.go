// Package ratelimit caps how many AI requests one ingestion run may
// spend. An exhausted budget degrades summarization the same way a model
// failure does; it never stops the run.
package ratelimit

import (
	"log/slog"
	"sync"
)

type Budget struct {
	mu    sync.Mutex
	max   int // 0 = unlimited
	count int
}

func NewBudget(max int) *Budget {
	return &Budget{max: max}
}

// Use reserves one request from the budget. It reports false when the
// budget is spent.
func (b *Budget) Use() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.max > 0 && b.count >= b.max {
		slog.Warn("AI request budget exhausted", "used", b.count, "max", b.max)
		return false
	}
	b.count++
	return true
}

// Used returns how many requests this run has spent.
func (b *Budget) Used() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.count
}
