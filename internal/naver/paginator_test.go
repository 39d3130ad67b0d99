package naver

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/deusflow/newsboard/internal/config"
	"github.com/deusflow/newsboard/internal/retry"
)

func testClient(apiURL string) *Client {
	cfg := &config.Config{
		NaverAPIURL:       apiURL,
		NaverClientID:     "id",
		NaverClientSecret: "secret",
		RequestTimeout:    5 * time.Second,
		RetryAttempts:     1,
		RetryDelay:        time.Millisecond,
	}
	c := NewClient(cfg)
	c.retryCfg = retry.Config{MaxAttempts: 1, Delay: time.Millisecond}
	return c
}

type capturedRequest struct {
	start   int
	display int
}

// fakeSearchAPI serves `total` synthetic items and records every request.
func fakeSearchAPI(t *testing.T, total int, requests *[]capturedRequest) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Naver-Client-Id") == "" {
			t.Error("missing X-Naver-Client-Id header")
		}
		start, _ := strconv.Atoi(r.URL.Query().Get("start"))
		display, _ := strconv.Atoi(r.URL.Query().Get("display"))
		*requests = append(*requests, capturedRequest{start: start, display: display})

		var items []Item
		for i := start; i < start+display && i <= total; i++ {
			items = append(items, Item{
				Title:   fmt.Sprintf("기사 %d", i),
				Link:    fmt.Sprintf("https://n.news.example/%d", i),
				PubDate: "Thu, 14 Sep 2023 14:30:00 +0900",
			})
		}
		json.NewEncoder(w).Encode(searchResponse{
			Total: total, Start: start, Display: display, Items: items,
		})
	}))
}

func TestPaginator_Target250(t *testing.T) {
	var requests []capturedRequest
	srv := fakeSearchAPI(t, 10000, &requests)
	defer srv.Close()

	p := testClient(srv.URL).Paginate("경제", 250)

	var got int
	for {
		items, err := p.Next(context.Background())
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		if len(items) == 0 {
			break
		}
		got += len(items)
	}

	if got != 250 {
		t.Errorf("collected %d items, want 250", got)
	}
	if len(requests) > 3 {
		t.Errorf("issued %d requests, want at most ceil(250/100)=3", len(requests))
	}
	for _, r := range requests {
		if r.start > maxStart {
			t.Errorf("request start %d exceeds ceiling %d", r.start, maxStart)
		}
		if r.display > maxDisplay {
			t.Errorf("request display %d exceeds ceiling %d", r.display, maxDisplay)
		}
	}
}

func TestPaginator_StopsOnShortPage(t *testing.T) {
	var requests []capturedRequest
	srv := fakeSearchAPI(t, 30, &requests)
	defer srv.Close()

	p := testClient(srv.URL).Paginate("정치", 100)

	items, err := p.Next(context.Background())
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if len(items) != 30 {
		t.Fatalf("first page = %d items, want 30", len(items))
	}

	// Short page means the sequence ends without another request.
	items, err = p.Next(context.Background())
	if err != nil || len(items) != 0 {
		t.Fatalf("after short page: items=%d err=%v, want exhausted", len(items), err)
	}
	if len(requests) != 1 {
		t.Errorf("issued %d requests, want 1", len(requests))
	}
}

func TestPaginator_StopsOnEmptyPage(t *testing.T) {
	var requests []capturedRequest
	srv := fakeSearchAPI(t, 0, &requests)
	defer srv.Close()

	p := testClient(srv.URL).Paginate("없는검색어", 50)
	items, err := p.Next(context.Background())
	if err != nil || len(items) != 0 {
		t.Fatalf("items=%d err=%v, want empty and nil", len(items), err)
	}
}

func TestPaginator_StartCeilingStopsSilently(t *testing.T) {
	var requests []capturedRequest
	srv := fakeSearchAPI(t, 100000, &requests)
	defer srv.Close()

	// Huge target: the start offset crosses 1000 long before the target.
	p := testClient(srv.URL).Paginate("스포츠", 100000)
	for {
		items, err := p.Next(context.Background())
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		if len(items) == 0 {
			break
		}
	}
	for _, r := range requests {
		if r.start > maxStart {
			t.Fatalf("request with start %d issued past ceiling", r.start)
		}
	}
	if len(requests) != 10 {
		t.Errorf("issued %d requests, want 10 full pages before the ceiling", len(requests))
	}
}

func TestPaginator_TransportErrorTerminates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	p := testClient(srv.URL).Paginate("경제", 50)
	if _, err := p.Next(context.Background()); err == nil {
		t.Fatal("expected transport error")
	}
	// The paginator is spent after a failure.
	items, err := p.Next(context.Background())
	if err != nil || len(items) != 0 {
		t.Fatalf("after error: items=%d err=%v, want exhausted", len(items), err)
	}
}
