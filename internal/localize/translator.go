package localize

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// TextTranslator translates a text into a target language.
type TextTranslator interface {
	Translate(ctx context.Context, text, targetLang string) (string, error)
}

// Translator is the production TextTranslator, backed by a chat completion
// call. Without an API key it produces clearly-tagged placeholder strings so
// downstream stages keep a valid shape during offline runs and tests.
type Translator struct {
	apiKey string
	client *openai.Client
	model  string
}

// NewTranslator creates a new translator instance.
func NewTranslator(apiKey, model string) *Translator {
	t := &Translator{apiKey: apiKey, model: model}
	if apiKey != "" {
		t.client = openai.NewClient(apiKey)
	}
	return t
}

// Translate translates text from English into the target language. A backend
// failure is returned to the caller, which degrades that one field to the
// original text.
func (t *Translator) Translate(ctx context.Context, text, targetLang string) (string, error) {
	if text == "" {
		return "", nil
	}
	if t.client == nil {
		return placeholder(text, targetLang), nil
	}

	req := openai.ChatCompletionRequest{
		Model: t.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				Content: fmt.Sprintf("Translate the following text from English to %s. Preserve markdown formatting. Respond with only the translation, nothing else.\n\n%s",
					languageName(targetLang), text),
			},
		},
		Temperature: 0.3,
	}

	resp, err := t.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("translation API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no translation returned")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// placeholder builds the degraded-mode stand-in for a translation. The
// excerpt is cut at a rune boundary so multi-byte source text stays valid.
func placeholder(text, targetLang string) string {
	excerpt := []rune(text)
	if len(excerpt) > 100 {
		excerpt = excerpt[:100]
	}
	return fmt.Sprintf("[%s translation] %s...", targetLang, string(excerpt))
}

func languageName(code string) string {
	switch code {
	case "zh":
		return "Simplified Chinese"
	case "ja":
		return "Japanese"
	case "de":
		return "German"
	case "fr":
		return "French"
	case "es":
		return "Spanish"
	default:
		return code
	}
}
