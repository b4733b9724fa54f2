package score

import (
	"fmt"
	"strings"
	"time"
)

// Keywords holds the three weighted keyword tiers used for relevance scoring.
type Keywords struct {
	High   []string // +15 per occurrence
	Medium []string // +8 per occurrence
	Low    []string // +3 per occurrence
}

// DefaultKeywords returns the productivity-oriented keyword tiers.
func DefaultKeywords() Keywords {
	return Keywords{
		High: []string{
			"ChatGPT", "Claude", "Gemini", "Midjourney", "Notion AI",
			"automation", "workflow", "productivity", "efficiency",
			"save time", "template", "tutorial", "how to", "guide",
			"feature", "update", "new release", "integration", "API",
		},
		Medium: []string{
			"content creation", "writing", "marketing", "design",
			"customer service", "data analysis", "coding", "SEO",
			"AI tool", "AI assistant", "chatbot", "generator",
		},
		Low: []string{"AI", "ML", "automation", "tool", "tips"},
	}
}

// DefaultExclusions returns terms that mark an item as off-topic. Any match
// forces the relevance score to zero.
func DefaultExclusions() []string {
	return []string{
		"arXiv", "paper", "research", "algorithm", "model architecture",
		"neural network", "training", "benchmark", "dataset",
		"quantum", "protein", "molecular", "physics", "biology",
	}
}

// Scorer computes relevance and quality scores for candidate items. It is
// pure apart from the clock, which only feeds the recency bonus.
type Scorer struct {
	keywords   Keywords
	exclusions []string
	now        func() time.Time
}

// NewScorer creates a scorer with the default vocabulary.
func NewScorer() *Scorer {
	return New(DefaultKeywords(), DefaultExclusions())
}

// New creates a scorer with a custom vocabulary.
func New(keywords Keywords, exclusions []string) *Scorer {
	return &Scorer{
		keywords:   keywords,
		exclusions: exclusions,
		now:        time.Now,
	}
}

// Relevance scores how on-topic an item is, in [0, 100]. Exclusion terms
// dominate: a single match yields zero regardless of other signals.
func (s *Scorer) Relevance(title, summary string) float64 {
	text := strings.ToLower(title + " " + summary)

	for _, term := range s.exclusions {
		if strings.Contains(text, strings.ToLower(term)) {
			return 0
		}
	}

	var score float64
	score += float64(countMatches(text, s.keywords.High)) * 15
	score += float64(countMatches(text, s.keywords.Medium)) * 8
	score += float64(countMatches(text, s.keywords.Low)) * 3

	return clamp(score)
}

// Quality scores structural signals of an item, in [0, 100]. The source
// quality tier provides the base score; title and summary lengths and a
// recency bonus adjust it.
func (s *Scorer) Quality(title, summary, published string, sourceTier int) float64 {
	score := float64(sourceTier * 5)

	titleLen := len(title)
	switch {
	case titleLen >= 30 && titleLen <= 100:
		score += 10
	case titleLen < 20:
		score -= 5
	}

	if len(summary) >= 200 {
		score += 10
	}

	if s.isRecent(published) {
		score += 15
	}

	return clamp(score)
}

// Composite blends relevance and quality for ranking.
func (s *Scorer) Composite(relevance, quality float64) float64 {
	return relevance*0.6 + quality*0.4
}

// isRecent checks whether the published string carries a current-year or
// previous-year token. Feed timestamps arrive in too many formats to parse
// reliably, so this is a plain substring test.
func (s *Scorer) isRecent(published string) bool {
	if published == "" {
		return false
	}
	year := s.now().Year()
	return strings.Contains(published, fmt.Sprintf("%d", year)) ||
		strings.Contains(published, fmt.Sprintf("%d", year-1))
}

// countMatches counts every occurrence of every keyword in text. Repeated
// occurrences of the same keyword each count.
func countMatches(text string, keywords []string) int {
	total := 0
	for _, kw := range keywords {
		total += strings.Count(text, strings.ToLower(kw))
	}
	return total
}

func clamp(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
