package transform

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"

	"codeberg.org/snonux/newsforge/internal/config"
	"codeberg.org/snonux/newsforge/internal/feed"
)

// Transformer rewrites candidate items into polished articles. With an API
// key configured it calls the generative backend; without one it runs a
// deterministic local transformation so the pipeline stays fully exercisable
// offline.
type Transformer struct {
	client      *openai.Client
	model       string
	temperature float32
	maxTokens   int

	inputLimit   int
	summaryLimit int
	contentLimit int
}

// NewTransformer creates a transformer from the run configuration. An empty
// API key selects degraded local mode.
func NewTransformer(cfg *config.Config) *Transformer {
	t := &Transformer{
		model:        cfg.Model,
		temperature:  cfg.Temperature,
		maxTokens:    cfg.MaxTokens,
		inputLimit:   cfg.LLMInputLimit,
		summaryLimit: cfg.MockSummaryLimit,
		contentLimit: cfg.MockContentLimit,
	}
	if cfg.OpenAIKey != "" {
		t.client = openai.NewClient(cfg.OpenAIKey)
	}
	return t
}

// Generative reports whether the transformer will call the external backend.
func (t *Transformer) Generative() bool {
	return t.client != nil
}

// Process turns one candidate item into an article. In degraded mode it
// never fails. In generative mode a backend error drops the item: the error
// is returned and the caller continues with the rest of the batch.
func (t *Transformer) Process(ctx context.Context, item feed.Item) (*Article, error) {
	if t.client == nil {
		return t.localArticle(item), nil
	}

	prompt := buildPrompt(item.Title, item.Source, truncate(item.Content, t.inputLimit))

	resp, err := t.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: t.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: t.temperature,
		MaxTokens:   t.maxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("transformation failed for %q: %w", item.Title, err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("transformation failed for %q: empty response", item.Title)
	}

	result := ParseResponse(resp.Choices[0].Message.Content, item.Title)

	return &Article{
		OriginalTitle: item.Title,
		Title:         result.Title,
		Summary:       result.Summary,
		Content:       result.Content,
		Keywords:      result.Keywords,
		// Provenance comes from the item, never from generated text.
		Category:   item.Category,
		SourceURL:  item.URL,
		SourceName: item.Source,
	}, nil
}

// localArticle is the deterministic no-network transformation.
func (t *Transformer) localArticle(item feed.Item) *Article {
	return &Article{
		OriginalTitle: item.Title,
		Title:         "[Analysis] " + item.Title,
		Summary:       truncate(item.Summary, t.summaryLimit),
		Content:       truncate(item.Content, t.contentLimit),
		Keywords:      []string{"AI", "Technology"},
		Category:      item.Category,
		SourceURL:     item.URL,
		SourceName:    item.Source,
	}
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
