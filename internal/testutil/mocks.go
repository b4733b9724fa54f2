package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"codeberg.org/snonux/newsforge/internal/feed"
)

// MockFetcher implements feed.Fetcher for testing. Feeds and pages are
// served from maps; missing URLs return errors.
type MockFetcher struct {
	Feeds      map[string][]feed.Entry
	Pages      map[string]string
	FeedErrors map[string]error
	PageErrors map[string]error
	Calls      []string
}

// FetchFeed returns the configured entries for a feed URL.
func (m *MockFetcher) FetchFeed(ctx context.Context, url string) ([]feed.Entry, error) {
	m.Calls = append(m.Calls, fmt.Sprintf("feed %s", url))

	if err, ok := m.FeedErrors[url]; ok {
		return nil, err
	}
	if entries, ok := m.Feeds[url]; ok {
		return entries, nil
	}
	return nil, fmt.Errorf("no feed configured for %s", url)
}

// FetchPageText returns the configured page text for a URL.
func (m *MockFetcher) FetchPageText(ctx context.Context, url string) (string, error) {
	m.Calls = append(m.Calls, fmt.Sprintf("page %s", url))

	if err, ok := m.PageErrors[url]; ok {
		return "", err
	}
	if text, ok := m.Pages[url]; ok {
		return text, nil
	}
	return "", fmt.Errorf("no page configured for %s", url)
}

// MockSpeechProvider implements audio.Provider for testing. It writes a tiny
// placeholder file instead of calling a TTS backend. Safe for concurrent
// use, since the localizer dispatches one synthesis task per language.
type MockSpeechProvider struct {
	Err   error
	Calls []string

	mu sync.Mutex
}

// GenerateAudio records the call and writes placeholder bytes to outputFile.
func (m *MockSpeechProvider) GenerateAudio(ctx context.Context, text, lang, outputFile string) error {
	m.mu.Lock()
	m.Calls = append(m.Calls, fmt.Sprintf("%s -> %s", lang, outputFile))
	m.mu.Unlock()

	if m.Err != nil {
		return m.Err
	}

	if dir := filepath.Dir(outputFile); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(outputFile, []byte("audio"), 0644)
}

// Name returns the provider name.
func (m *MockSpeechProvider) Name() string {
	return "mock"
}

// IsAvailable always reports the mock as ready.
func (m *MockSpeechProvider) IsAvailable() error {
	return nil
}
