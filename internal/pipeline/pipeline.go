// Package pipeline wires collection, transformation, localization and
// publishing into one run.
package pipeline

import (
	"context"
	"fmt"
	"os"

	"codeberg.org/snonux/newsforge/internal/batch"
	"codeberg.org/snonux/newsforge/internal/feed"
	"codeberg.org/snonux/newsforge/internal/localize"
	"codeberg.org/snonux/newsforge/internal/publish"
	"codeberg.org/snonux/newsforge/internal/transform"
)

// Stats tracks per-run counters for the summary.
type Stats struct {
	Collected  int
	Processed  int
	Translated int
	Published  int
	Errors     int
}

// Pipeline runs the full collect-transform-localize-publish sequence.
type Pipeline struct {
	collector   *feed.Collector
	transformer *transform.Transformer
	localizer   *localize.Localizer
	publisher   *publish.Publisher
}

// New assembles a pipeline from already-constructed stages.
func New(collector *feed.Collector, transformer *transform.Transformer, localizer *localize.Localizer, publisher *publish.Publisher) *Pipeline {
	return &Pipeline{
		collector:   collector,
		transformer: transformer,
		localizer:   localizer,
		publisher:   publisher,
	}
}

// Run collects new articles and carries at most maxArticles of them through
// transformation, localization and publishing. Individual article failures
// are counted and skipped; the run continues with the next article.
func (p *Pipeline) Run(ctx context.Context, maxArticles int, withAudio bool) (*Stats, error) {
	fmt.Println("Collecting articles from configured sources...")
	items := p.collector.CollectAll(ctx)

	stats := &Stats{Collected: len(items)}
	if len(items) == 0 {
		fmt.Println("No new articles found.")
		return stats, nil
	}
	fmt.Printf("Collected %d new article(s)\n", len(items))

	if maxArticles > 0 && len(items) > maxArticles {
		items = items[:maxArticles]
		fmt.Printf("Limiting this run to the top %d article(s)\n", maxArticles)
	}

	p.processItems(ctx, items, withAudio, stats)
	p.printSummary(stats)
	return stats, nil
}

// CollectOnly collects new articles and writes them to a pending batch file
// for later processing. Returns the number of collected articles.
func (p *Pipeline) CollectOnly(ctx context.Context, pendingFile string) (int, error) {
	fmt.Println("Collecting articles from configured sources...")
	items := p.collector.CollectAll(ctx)

	if len(items) == 0 {
		fmt.Println("No new articles found.")
		return 0, nil
	}

	if err := batch.WritePending(pendingFile, items); err != nil {
		return 0, fmt.Errorf("failed to save pending articles: %w", err)
	}
	fmt.Printf("Saved %d pending article(s) to %s\n", len(items), pendingFile)
	return len(items), nil
}

// ProcessFile reads a previously collected pending batch file and carries
// its articles through transformation, localization and publishing.
func (p *Pipeline) ProcessFile(ctx context.Context, pendingFile string, maxArticles int, withAudio bool) (*Stats, error) {
	items, err := batch.ReadPending(pendingFile)
	if err != nil {
		return nil, err
	}

	stats := &Stats{Collected: len(items)}
	if len(items) == 0 {
		fmt.Println("No pending articles to process.")
		return stats, nil
	}
	fmt.Printf("Loaded %d pending article(s) from %s\n", len(items), pendingFile)

	if maxArticles > 0 && len(items) > maxArticles {
		items = items[:maxArticles]
		fmt.Printf("Limiting this run to the top %d article(s)\n", maxArticles)
	}

	p.processItems(ctx, items, withAudio, stats)
	p.printSummary(stats)
	return stats, nil
}

func (p *Pipeline) processItems(ctx context.Context, items []feed.Item, withAudio bool, stats *Stats) {
	for i, item := range items {
		fmt.Printf("\nProcessing %d/%d: %s\n", i+1, len(items), item.Title)

		article, err := p.transformer.Process(ctx, item)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error transforming '%s': %v\n", item.Title, err)
			stats.Errors++
			continue
		}
		stats.Processed++

		slug := publish.Slugify(article.Title)

		fmt.Printf("  Localizing...\n")
		bundle := p.localizer.Localize(ctx, article, slug, withAudio)
		stats.Translated += len(bundle.Translations)

		fmt.Printf("  Publishing...\n")
		if _, err := p.publisher.Publish(article, bundle); err != nil {
			fmt.Fprintf(os.Stderr, "Error publishing '%s': %v\n", article.Title, err)
			stats.Errors++
			continue
		}
		stats.Published++
	}
}

func (p *Pipeline) printSummary(stats *Stats) {
	fmt.Printf("\n=== Pipeline Summary ===\n")
	fmt.Printf("Collected: %d\n", stats.Collected)
	fmt.Printf("Processed: %d\n", stats.Processed)
	fmt.Printf("Translations: %d\n", stats.Translated)
	fmt.Printf("Published: %d\n", stats.Published)
	if stats.Errors > 0 {
		fmt.Printf("Errors: %d\n", stats.Errors)
	}
	fmt.Printf("========================\n")
}
