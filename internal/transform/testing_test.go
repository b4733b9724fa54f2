package transform

import (
	"os"
	"testing"
)

// apiKeyFromEnv returns the OpenAI API key or skips the test.
func apiKeyFromEnv(t *testing.T) string {
	t.Helper()

	key := os.Getenv("OPENAI_API_KEY")
	if key == "" {
		t.Skip("Skipping integration test: OPENAI_API_KEY not set")
	}
	return key
}
