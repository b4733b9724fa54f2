// Package batch stores collected items as a pending batch file, so a
// collect-only run can hand its output to a later process-only run.
package batch

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"codeberg.org/snonux/newsforge/internal/feed"
)

// DefaultPendingFile is the batch file name used when none is given.
const DefaultPendingFile = "pending_articles.json"

// WritePending saves items as a JSON batch file, creating parent directories
// as needed.
func WritePending(filename string, items []feed.Item) error {
	dir := filepath.Dir(filename)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create batch directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode batch: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write batch file: %w", err)
	}

	return nil
}

// ReadPending loads items from a JSON batch file.
func ReadPending(filename string) ([]feed.Item, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}

	var items []feed.Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to parse batch file: %w", err)
	}

	return items, nil
}
