package transform

import (
	"encoding/json"
	"regexp"
	"strings"
)

// FieldOrigin records how a parsed field was obtained, so callers and tests
// can tell full successes apart from degraded output.
type FieldOrigin int

const (
	// OriginParsed means the field came from a strict JSON parse.
	OriginParsed FieldOrigin = iota
	// OriginRecovered means strict parsing failed and the field was pulled
	// out by pattern extraction.
	OriginRecovered
	// OriginDefaulted means the field could not be recovered and a default
	// was substituted.
	OriginDefaulted
)

// ParseResult holds the fields extracted from a generative-text response
// together with each field's origin.
type ParseResult struct {
	Title    string
	Summary  string
	Content  string
	Keywords []string
	Origins  map[string]FieldOrigin
}

var (
	titleRe    = regexp.MustCompile(`(?s)"title"\s*:\s*"([^"]*)"`)
	summaryRe  = regexp.MustCompile(`(?s)"summary"\s*:\s*"([^"]*)"`)
	contentRe  = regexp.MustCompile(`(?s)"content"\s*:\s*"(.+?)"\s*,\s*"keywords"`)
	keywordsRe = regexp.MustCompile(`(?s)"keywords"\s*:\s*\[(.*?)\]`)
)

// StripCodeFence removes a surrounding markdown code fence from a response,
// if present. Models routinely wrap JSON output in fences despite being told
// not to.
func StripCodeFence(s string) string {
	if idx := strings.Index(s, "```json"); idx >= 0 {
		s = s[idx+len("```json"):]
		if end := strings.Index(s, "```"); end >= 0 {
			s = s[:end]
		}
	} else if idx := strings.Index(s, "```"); idx >= 0 {
		s = s[idx+len("```"):]
		if end := strings.Index(s, "```"); end >= 0 {
			s = s[:end]
		}
	}
	return strings.TrimSpace(s)
}

// ParseResponse parses a generative-text response. It first attempts a
// strict JSON parse; on failure it falls back to per-field pattern
// extraction, and any field that still cannot be recovered is defaulted
// (title falls back to fallbackTitle, keywords to a single default tag).
func ParseResponse(raw, fallbackTitle string) ParseResult {
	text := StripCodeFence(raw)

	var parsed struct {
		Title    string   `json:"title"`
		Summary  string   `json:"summary"`
		Content  string   `json:"content"`
		Keywords []string `json:"keywords"`
	}
	if err := json.Unmarshal([]byte(text), &parsed); err == nil {
		return ParseResult{
			Title:    parsed.Title,
			Summary:  parsed.Summary,
			Content:  parsed.Content,
			Keywords: parsed.Keywords,
			Origins: map[string]FieldOrigin{
				"title":    OriginParsed,
				"summary":  OriginParsed,
				"content":  OriginParsed,
				"keywords": OriginParsed,
			},
		}
	}

	return recoverFields(text, fallbackTitle)
}

func recoverFields(text, fallbackTitle string) ParseResult {
	result := ParseResult{Origins: make(map[string]FieldOrigin)}

	if m := titleRe.FindStringSubmatch(text); m != nil {
		result.Title = m[1]
		result.Origins["title"] = OriginRecovered
	} else {
		result.Title = fallbackTitle
		result.Origins["title"] = OriginDefaulted
	}

	if m := summaryRe.FindStringSubmatch(text); m != nil {
		result.Summary = m[1]
		result.Origins["summary"] = OriginRecovered
	} else {
		result.Summary = ""
		result.Origins["summary"] = OriginDefaulted
	}

	if m := contentRe.FindStringSubmatch(text); m != nil {
		result.Content = m[1]
		result.Origins["content"] = OriginRecovered
	} else {
		// Without a recoverable content field the whole response body is the
		// best remaining approximation.
		result.Content = text
		result.Origins["content"] = OriginDefaulted
	}

	if m := keywordsRe.FindStringSubmatch(text); m != nil {
		result.Keywords = splitKeywords(m[1])
		result.Origins["keywords"] = OriginRecovered
	}
	if len(result.Keywords) == 0 {
		result.Keywords = []string{"AI"}
		result.Origins["keywords"] = OriginDefaulted
	}

	return result
}

func splitKeywords(list string) []string {
	var keywords []string
	for _, part := range strings.Split(list, ",") {
		part = strings.TrimSpace(strings.ReplaceAll(part, `"`, ""))
		if part != "" {
			keywords = append(keywords, part)
		}
	}
	return keywords
}
