package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if len(cfg.Sources) != 8 {
		t.Errorf("Expected 8 built-in sources, got %d", len(cfg.Sources))
	}

	if cfg.SourceLang != "en" {
		t.Errorf("Expected source language 'en', got '%s'", cfg.SourceLang)
	}

	if len(cfg.TargetLangs) != 2 {
		t.Errorf("Expected 2 target languages, got %d", len(cfg.TargetLangs))
	}

	if cfg.RelevanceCutoff != 10 {
		t.Errorf("Expected relevance cutoff 10, got %f", cfg.RelevanceCutoff)
	}

	if cfg.MinContentLength != 200 {
		t.Errorf("Expected min content length 200, got %d", cfg.MinContentLength)
	}
}

func TestLoadSources(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "sources.yaml")

	content := `sources:
  - name: Example Feed
    url: https://example.com/feed
    category: AI
    priority: 2
    quality_tier: 7
  - name: Minimal Feed
    url: https://example.org/rss
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write sources file: %v", err)
	}

	sources, err := LoadSources(path)
	if err != nil {
		t.Fatalf("LoadSources failed: %v", err)
	}

	if len(sources) != 2 {
		t.Fatalf("Expected 2 sources, got %d", len(sources))
	}

	if sources[0].Name != "Example Feed" || sources[0].QualityTier != 7 {
		t.Errorf("First source not parsed correctly: %+v", sources[0])
	}

	// Defaults applied to omitted fields
	if sources[1].QualityTier != 5 {
		t.Errorf("Expected default quality tier 5, got %d", sources[1].QualityTier)
	}
	if sources[1].Priority != 1 {
		t.Errorf("Expected default priority 1, got %d", sources[1].Priority)
	}
}

func TestLoadSources_MissingFile(t *testing.T) {
	_, err := LoadSources("/nonexistent/sources.yaml")
	if err == nil {
		t.Error("Expected error for missing sources file")
	}
}

func TestLoadSources_Empty(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "sources.yaml")
	if err := os.WriteFile(path, []byte("sources: []\n"), 0644); err != nil {
		t.Fatalf("Failed to write sources file: %v", err)
	}

	_, err := LoadSources(path)
	if err == nil {
		t.Error("Expected error for empty source list")
	}
}
