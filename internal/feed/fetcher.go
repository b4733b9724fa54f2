package feed

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"
	"github.com/sony/gobreaker"
)

const userAgent = "Mozilla/5.0 (compatible; newsforge/1.0)"

// Entry is one raw feed entry before deduplication and scoring.
type Entry struct {
	Title     string
	Link      string
	Summary   string
	Content   string
	Published string
}

// Fetcher retrieves raw feed entries and page text. Both calls may fail;
// the Collector treats failures as empty results for that source.
type Fetcher interface {
	FetchFeed(ctx context.Context, url string) ([]Entry, error)
	FetchPageText(ctx context.Context, url string) (string, error)
}

// HTTPFetcher is the production Fetcher. Feed retrieval goes through gofeed;
// full-page fetches run behind a circuit breaker so a flaky site cannot slow
// down a whole collection pass.
type HTTPFetcher struct {
	parser  *gofeed.Parser
	client  *http.Client
	breaker *gobreaker.CircuitBreaker
}

// NewHTTPFetcher creates a fetcher with the given request timeout.
func NewHTTPFetcher(timeout time.Duration) *HTTPFetcher {
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	client := &http.Client{Timeout: timeout}

	parser := gofeed.NewParser()
	parser.UserAgent = userAgent
	// Without an explicit client gofeed falls back to http.DefaultClient,
	// which has no timeout; a hung feed server would stall the whole run.
	parser.Client = client

	return &HTTPFetcher{
		parser: parser,
		client: client,
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    "page-fetch",
			Timeout: 60 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
		}),
	}
}

// FetchFeed retrieves and parses a feed, returning its entries in feed order.
func (f *HTTPFetcher) FetchFeed(ctx context.Context, url string) ([]Entry, error) {
	parsed, err := f.parser.ParseURLWithContext(url, ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed %s: %w", url, err)
	}

	entries := make([]Entry, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		if item == nil {
			continue
		}
		entry := Entry{
			Title:   item.Title,
			Link:    item.Link,
			Summary: item.Description,
			Content: item.Content,
		}
		if item.Published != "" {
			entry.Published = item.Published
		} else {
			entry.Published = item.Updated
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// FetchPageText downloads a page and extracts its readable text, stripping
// chrome elements and preferring the main article container.
func (f *HTTPFetcher) FetchPageText(ctx context.Context, url string) (string, error) {
	result, err := f.breaker.Execute(func() (interface{}, error) {
		return f.fetchDocument(ctx, url)
	})
	if err != nil {
		return "", fmt.Errorf("failed to fetch page %s: %w", url, err)
	}

	doc := result.(*goquery.Document)
	doc.Find("script, style, nav, footer, header, aside").Remove()

	for _, selector := range []string{"article", "main", "div.content"} {
		if sel := doc.Find(selector); sel.Length() > 0 {
			return normalizeText(sel.First().Text()), nil
		}
	}

	return normalizeText(doc.Find("body").Text()), nil
}

func (f *HTTPFetcher) fetchDocument(ctx context.Context, url string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	return goquery.NewDocumentFromReader(resp.Body)
}

// normalizeText collapses each line and drops empty ones, giving a compact
// plain-text rendition of extracted page content.
func normalizeText(text string) string {
	lines := strings.Split(text, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			cleaned = append(cleaned, line)
		}
	}
	return strings.Join(cleaned, "\n")
}
