package audio

import (
	"context"
	"fmt"
)

// Provider defines the interface for text-to-speech providers.
type Provider interface {
	// GenerateAudio synthesizes speech for text in the given language and
	// saves it to the specified file.
	GenerateAudio(ctx context.Context, text, lang, outputFile string) error

	// Name returns the provider name
	Name() string

	// IsAvailable checks if the provider is properly configured and available
	IsAvailable() error
}

// Config holds common configuration for audio providers
type Config struct {
	Provider     string // Provider name: "openai"
	OutputFormat string // Output format: "mp3" or "wav"

	// OpenAI-specific settings
	OpenAIKey   string
	OpenAIModel string            // "tts-1", "tts-1-hd", or "gpt-4o-mini-tts"
	Voices      map[string]string // per-language voice selection
	Speed       float64           // 0.25 to 4.0
	InputLimit  int               // characters of text sent per synthesis call

	// Caching
	EnableCache bool
	CacheDir    string
}

// DefaultProviderConfig returns default configuration
func DefaultProviderConfig() *Config {
	return &Config{
		Provider:     "openai",
		OutputFormat: "mp3",
		OpenAIModel:  "gpt-4o-mini-tts",
		Voices:       DefaultVoices(),
		Speed:        1.0,
		InputLimit:   4096,
	}
}

// DefaultVoices maps each supported language to its default voice.
func DefaultVoices() map[string]string {
	return map[string]string{
		"en": "alloy",
		"zh": "nova",
		"ja": "shimmer",
	}
}

// NewProvider creates the appropriate audio provider based on configuration
func NewProvider(config *Config) (Provider, error) {
	if config == nil {
		config = DefaultProviderConfig()
	}

	switch config.Provider {
	case "openai":
		if config.OpenAIKey == "" {
			return nil, fmt.Errorf("OpenAI API key is required")
		}
		return NewOpenAIProvider(config)

	default:
		return nil, fmt.Errorf("unknown audio provider: %s", config.Provider)
	}
}
