package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Source describes a single syndicated feed to collect from.
type Source struct {
	Name        string `yaml:"name"`
	URL         string `yaml:"url"`
	Category    string `yaml:"category"`
	Priority    int    `yaml:"priority"`
	QualityTier int    `yaml:"quality_tier"`
}

// Config holds all settings for one pipeline run. It is assembled once in
// main from flags, the viper config file and the optional sources file, and
// passed into every component constructor.
type Config struct {
	Sources []Source

	// Storage locations
	LedgerPath string
	BlogDir    string
	I18nDir    string
	AudioDir   string

	// Languages
	SourceLang  string
	TargetLangs []string

	// LLM settings
	OpenAIKey   string
	Model       string
	Temperature float32
	MaxTokens   int

	// TTS settings
	TTSModel string
	TTSVoice string // overrides the per-language default when set

	// Collection thresholds
	MaxPerSource     int
	MinContentLength int
	RelevanceCutoff  float64
	MaxArticles      int

	// Length caps
	SummaryLimit     int
	ContentLimit     int
	LLMInputLimit    int
	MockSummaryLimit int
	MockContentLimit int
}

// Default returns a Config with the built-in source list and the thresholds
// the pipeline was tuned with.
func Default() *Config {
	return &Config{
		Sources:     DefaultSources(),
		LedgerPath:  "data/ledger.db",
		BlogDir:     "blog",
		I18nDir:     "i18n",
		AudioDir:    "static/audio",
		SourceLang:  "en",
		TargetLangs: []string{"zh", "ja"},
		Model:       "gpt-4o-mini",
		Temperature: 0.7,
		MaxTokens:   2000,
		TTSModel:    "gpt-4o-mini-tts",

		MaxPerSource:     10,
		MinContentLength: 200,
		RelevanceCutoff:  10,
		MaxArticles:      3,

		SummaryLimit:     500,
		ContentLimit:     10000,
		LLMInputLimit:    6000,
		MockSummaryLimit: 200,
		MockContentLimit: 2000,
	}
}

// DefaultSources returns the built-in feed list used when no sources file
// is configured.
func DefaultSources() []Source {
	return []Source{
		{Name: "MIT Technology Review AI", URL: "https://www.technologyreview.com/feed/", Category: "AI", Priority: 1, QualityTier: 10},
		{Name: "AI Weekly", URL: "https://aiweekly.co/feed", Category: "AI", Priority: 1, QualityTier: 9},
		{Name: "The Gradient", URL: "https://thegradient.pub/rss/", Category: "AI", Priority: 2, QualityTier: 8},
		{Name: "OpenAI Blog", URL: "https://openai.com/blog/rss.xml", Category: "AI", Priority: 1, QualityTier: 10},
		{Name: "Google AI Blog", URL: "https://blog.google/technology/ai/rss/", Category: "AI", Priority: 1, QualityTier: 10},
		{Name: "DeepMind Blog", URL: "https://deepmind.com/blog/rss.xml", Category: "AI", Priority: 1, QualityTier: 9},
		{Name: "VentureBeat AI", URL: "https://venturebeat.com/category/artificial-intelligence/feed/", Category: "AI", Priority: 2, QualityTier: 8},
		{Name: "Synced AI", URL: "https://syncedreview.com/feed/", Category: "AI", Priority: 2, QualityTier: 8},
	}
}

// LoadSources reads a YAML source list. Each entry mirrors the Source
// struct; quality_tier defaults to 5 when omitted.
func LoadSources(path string) ([]Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sources file: %w", err)
	}

	var raw struct {
		Sources []Source `yaml:"sources"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse sources file: %w", err)
	}
	if len(raw.Sources) == 0 {
		return nil, fmt.Errorf("sources file %s contains no sources", path)
	}

	for i := range raw.Sources {
		if raw.Sources[i].QualityTier == 0 {
			raw.Sources[i].QualityTier = 5
		}
		if raw.Sources[i].Priority == 0 {
			raw.Sources[i].Priority = 1
		}
	}

	return raw.Sources, nil
}
