package naver

import (
	"context"
	"log/slog"
)

const (
	maxDisplay = 100  // API page size ceiling
	maxStart   = 1000 // API start offset ceiling (1-indexed)
)

// Paginator walks one keyword's results page by page. It is lazy, finite
// and not restartable: once exhausted, Next keeps returning no items.
type Paginator struct {
	client    *Client
	query     string
	target    int
	collected int
	page      int // 1-indexed, advanced after each fetched page
	done      bool
}

// Paginate prepares a paged fetch aiming for target items.
func (c *Client) Paginate(query string, target int) *Paginator {
	return &Paginator{
		client: c,
		query:  query,
		target: target,
		page:   1,
	}
}

// Next fetches the next page. It returns no items and a nil error when
// the sequence is exhausted: the API window is used up, a page came back
// empty or short, or the target count was reached. A transport error
// terminates the paginator and is returned to the caller.
func (p *Paginator) Next(ctx context.Context) ([]Item, error) {
	if p.done || p.collected >= p.target {
		return nil, nil
	}

	display := p.target - p.collected
	if display > maxDisplay {
		display = maxDisplay
	}
	start := (p.page-1)*display + 1

	if start > maxStart {
		// API window exhausted; not an error.
		slog.Debug("search window exhausted", "query", p.query, "start", start)
		p.done = true
		return nil, nil
	}

	resp, err := p.client.search(ctx, p.query, start, display)
	if err != nil {
		p.done = true
		return nil, err
	}

	items := resp.Items
	if len(items) == 0 {
		p.done = true
		return nil, nil
	}
	if len(items) < display {
		// Last page: hand it out, then stop.
		p.done = true
	}

	p.collected += len(items)
	p.page++
	return items, nil
}
