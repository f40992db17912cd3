package scraper

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

type stubFetcher struct {
	mu    sync.Mutex
	calls int
	fail  map[string]bool
}

func (s *stubFetcher) Fetch(_ context.Context, url string) (string, time.Duration, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()

	if s.fail[url] {
		return "", 0, errors.New("navigation timeout")
	}
	page := `<html><body>
		<h1>Doc Page</h1>
		<div class="article-body"><p>hello world</p></div>
	</body></html>`
	return page, time.Millisecond, nil
}

func TestProcessArticles(t *testing.T) {
	urls := []string{
		"https://help.moengage.com/hc/en-us/articles/1-a",
		"https://help.moengage.com/hc/en-us/articles/2-b",
		"https://help.moengage.com/hc/en-us/articles/3-c",
		"https://help.moengage.com/hc/en-us/articles/4-d",
		"https://help.moengage.com/hc/en-us/articles/5-e",
	}
	fetcher := &stubFetcher{fail: map[string]bool{
		urls[1]: true,
		urls[3]: true,
	}}

	p := NewPipeline(fetcher, nil, BatchOptions{BatchSize: 2})
	results := p.ProcessArticles(context.Background(), urls)

	if len(results) != len(urls) {
		t.Fatalf("Expected %d results, got %d", len(urls), len(results))
	}
	if fetcher.calls != len(urls) {
		t.Errorf("Expected %d fetches, got %d", len(urls), fetcher.calls)
	}

	for i, r := range results {
		if r.URL != urls[i] {
			t.Errorf("Result %d out of order: got %q want %q", i, r.URL, urls[i])
		}
	}

	for _, i := range []int{0, 2, 4} {
		r := results[i]
		if !r.Success {
			t.Errorf("Result %d should succeed: %+v", i, r)
			continue
		}
		if r.Title != "Doc Page" || r.WordCount != 2 {
			t.Errorf("Result %d content mismatch: %+v", i, r)
		}
		if r.LoadTime == 0 {
			t.Errorf("Result %d missing load time", i)
		}
	}

	for _, i := range []int{1, 3} {
		r := results[i]
		if r.Success {
			t.Errorf("Result %d should fail", i)
		}
		if r.Error == "" || r.ExtractedAt == "" {
			t.Errorf("Failure record %d incomplete: %+v", i, r)
		}
	}
}

func TestProcessArticlesCancelled(t *testing.T) {
	urls := []string{
		"https://help.moengage.com/hc/en-us/articles/1-a",
		"https://help.moengage.com/hc/en-us/articles/2-b",
		"https://help.moengage.com/hc/en-us/articles/3-c",
	}
	fetcher := &stubFetcher{}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Delay between chunks gives the cancelled context a select arm.
	p := NewPipeline(fetcher, nil, BatchOptions{BatchSize: 1, Delay: time.Minute})
	results := p.ProcessArticles(ctx, urls)

	if len(results) != len(urls) {
		t.Fatalf("Expected %d results, got %d", len(urls), len(results))
	}
	// First chunk ran; the rest are failure records for the cancellation.
	for i := 1; i < len(results); i++ {
		if results[i].Success {
			t.Errorf("Result %d should be marked failed after cancellation", i)
		}
		if results[i].URL != urls[i] {
			t.Errorf("Result %d URL mismatch: %q", i, results[i].URL)
		}
	}
}
