package feed

import (
	"context"
	"fmt"
	"os"
	"sort"
	"time"

	"codeberg.org/snonux/newsforge/internal/config"
	"codeberg.org/snonux/newsforge/internal/ledger"
	"codeberg.org/snonux/newsforge/internal/score"
)

// Collector gathers new candidate items from the configured sources. Every
// kept item is recorded in the ledger the moment it is selected, so a crash
// later in the pipeline never causes the same item to be emitted again
// (at-most-once collection).
type Collector struct {
	sources []config.Source
	fetcher Fetcher
	ledger  *ledger.Ledger
	scorer  *score.Scorer

	maxPerSource int
	minContent   int
	cutoff       float64
	summaryLimit int
	contentLimit int

	now func() time.Time
}

// NewCollector wires a collector from the run configuration.
func NewCollector(cfg *config.Config, fetcher Fetcher, led *ledger.Ledger, scorer *score.Scorer) *Collector {
	return &Collector{
		sources:      cfg.Sources,
		fetcher:      fetcher,
		ledger:       led,
		scorer:       scorer,
		maxPerSource: cfg.MaxPerSource,
		minContent:   cfg.MinContentLength,
		cutoff:       cfg.RelevanceCutoff,
		summaryLimit: cfg.SummaryLimit,
		contentLimit: cfg.ContentLimit,
		now:          time.Now,
	}
}

// CollectAll gathers new items from every source and returns them ranked by
// composite score, best first. A single source failing is logged and does
// not abort the batch.
func (c *Collector) CollectAll(ctx context.Context) []Item {
	var all []Item

	for _, src := range c.sources {
		items, err := c.collectSource(ctx, src)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: collection failed for %s: %v\n", src.Name, err)
			continue
		}
		fmt.Printf("Collected %d new items from %s\n", len(items), src.Name)
		all = append(all, items...)
	}

	// Rank by composite score, best first. Ties keep input order.
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Composite > all[j].Composite
	})

	fmt.Printf("Collected %d new items in total\n", len(all))
	return all
}

func (c *Collector) collectSource(ctx context.Context, src config.Source) ([]Item, error) {
	entries, err := c.fetcher.FetchFeed(ctx, src.URL)
	if err != nil {
		return nil, err
	}

	if len(entries) > c.maxPerSource {
		entries = entries[:c.maxPerSource]
	}

	var items []Item
	for _, entry := range entries {
		id := ItemID(entry.Link, entry.Title)
		if c.ledger.Seen(id) {
			continue
		}

		content := c.resolveContent(ctx, entry)
		if len(content) < c.minContent {
			continue
		}

		relevance := c.scorer.Relevance(entry.Title, entry.Summary)
		if relevance < c.cutoff {
			continue
		}
		quality := c.scorer.Quality(entry.Title, entry.Summary, entry.Published, src.QualityTier)

		item := Item{
			ID:          id,
			Title:       entry.Title,
			URL:         entry.Link,
			Source:      src.Name,
			Category:    src.Category,
			Published:   entry.Published,
			Summary:     truncate(entry.Summary, c.summaryLimit),
			Content:     truncate(content, c.contentLimit),
			CollectedAt: c.now(),
			Priority:    src.Priority,
			Relevance:   relevance,
			Quality:     quality,
			Composite:   c.scorer.Composite(relevance, quality),
		}

		// Mark before the item leaves the collector: a later crash must not
		// re-emit it on the next run.
		if err := c.ledger.MarkSeen(id); err != nil {
			return nil, fmt.Errorf("failed to mark item seen: %w", err)
		}

		items = append(items, item)
	}

	return items, nil
}

// resolveContent finds the best available body text for an entry, falling
// back through content, summary, and a full page fetch in that order.
func (c *Collector) resolveContent(ctx context.Context, entry Entry) string {
	if len(entry.Content) >= c.minContent {
		return entry.Content
	}
	if len(entry.Summary) >= c.minContent {
		return entry.Summary
	}

	text, err := c.fetcher.FetchPageText(ctx, entry.Link)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: page fetch failed for %s: %v\n", entry.Link, err)
		// Fall through to whatever the entry carried.
	}
	if len(text) >= c.minContent {
		return text
	}

	if entry.Content != "" {
		return entry.Content
	}
	return entry.Summary
}

// truncate caps s at limit characters without splitting a rune.
func truncate(s string, limit int) string {
	if limit <= 0 || len(s) <= limit {
		return s
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
