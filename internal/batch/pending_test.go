package batch

import (
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"codeberg.org/snonux/newsforge/internal/feed"
)

func TestWriteAndReadPending(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "pending.json")

	items := []feed.Item{
		{
			ID:          feed.ItemID("https://example.com/a", "First"),
			Title:       "First",
			URL:         "https://example.com/a",
			Source:      "Example",
			Category:    "AI",
			Summary:     "summary",
			Content:     "content",
			CollectedAt: time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC),
			Priority:    1,
			Relevance:   42,
			Quality:     50,
			Composite:   45.2,
		},
		{
			ID:    feed.ItemID("https://example.com/b", "Second"),
			Title: "Second",
			URL:   "https://example.com/b",
		},
	}

	if err := WritePending(path, items); err != nil {
		t.Fatalf("WritePending failed: %v", err)
	}

	got, err := ReadPending(path)
	if err != nil {
		t.Fatalf("ReadPending failed: %v", err)
	}

	if !reflect.DeepEqual(got, items) {
		t.Errorf("Round trip mismatch:\ngot:  %+v\nwant: %+v", got, items)
	}
}

func TestReadPending_MissingFile(t *testing.T) {
	_, err := ReadPending("/nonexistent/pending.json")
	if err == nil {
		t.Error("Expected error for missing batch file")
	}
}

func TestReadPending_EmptyBatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pending.json")
	if err := WritePending(path, []feed.Item{}); err != nil {
		t.Fatalf("WritePending failed: %v", err)
	}

	items, err := ReadPending(path)
	if err != nil {
		t.Fatalf("ReadPending failed: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("Expected empty batch, got %d items", len(items))
	}
}
