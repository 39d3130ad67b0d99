// Package naver wraps the Naver News keyword-search API.
package naver

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/deusflow/newsboard/internal/config"
	"github.com/deusflow/newsboard/internal/retry"
)

// Item is one raw search result. Title and Description may carry HTML
// markup and entities; Link is the canonical (dedup) URL and
// OriginalLink the publisher's page.
type Item struct {
	Title        string `json:"title"`
	OriginalLink string `json:"originallink"`
	Link         string `json:"link"`
	Description  string `json:"description"`
	PubDate      string `json:"pubDate"`
}

type searchResponse struct {
	LastBuildDate string `json:"lastBuildDate"`
	Total         int    `json:"total"`
	Start         int    `json:"start"`
	Display       int    `json:"display"`
	Items         []Item `json:"items"`
}

type Client struct {
	httpClient   *http.Client
	apiURL       string
	clientID     string
	clientSecret string
	retryCfg     retry.Config
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		httpClient:   &http.Client{Timeout: cfg.RequestTimeout},
		apiURL:       cfg.NaverAPIURL,
		clientID:     cfg.NaverClientID,
		clientSecret: cfg.NaverClientSecret,
		retryCfg: retry.Config{
			MaxAttempts: cfg.RetryAttempts,
			Delay:       cfg.RetryDelay,
			Backoff:     true,
		},
	}
}

func (c *Client) search(ctx context.Context, query string, start, display int) (*searchResponse, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("display", strconv.Itoa(display))
	params.Set("start", strconv.Itoa(start))
	params.Set("sort", "date")

	var result *searchResponse
	err := retry.WithRetry(ctx, c.retryCfg, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL+"?"+params.Encode(), nil)
		if err != nil {
			return err
		}
		req.Header.Set("X-Naver-Client-Id", c.clientID)
		req.Header.Set("X-Naver-Client-Secret", c.clientSecret)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			return fmt.Errorf("search api status %d: %s", resp.StatusCode, body)
		}

		var sr searchResponse
		if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
			return fmt.Errorf("decoding search response: %w", err)
		}
		result = &sr
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("naver search %q start=%d: %w", query, start, err)
	}
	return result, nil
}
