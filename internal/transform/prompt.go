package transform

import "fmt"

const systemPrompt = "You are a professional AI technology analyst. Always respond with valid JSON."

const promptTemplate = `You are an expert AI technology analyst writing for a professional tech blog.

Transform the following raw article content into a professional, in-depth analysis article.

## Requirements:
1. **Title**: Create a compelling, professional title (not clickbait)
2. **Summary**: Write a concise 2-3 sentence summary highlighting the key insights
3. **Content**: Rewrite as a professional analysis article with:
   - Clear introduction explaining the context and significance
   - Detailed analysis of the technology/topic
   - Implications for the industry and future developments
   - Professional tone suitable for tech professionals
   - Well-structured paragraphs with logical flow
   - Target length: 1000-2000 words
4. **Keywords**: Extract 3-5 relevant keywords/tags

## Raw Article:
Title: %s
Source: %s
Content:
%s

## Output Format (JSON):
{
    "title": "Your professional title here",
    "summary": "Your 2-3 sentence summary here",
    "content": "Your full article content here (use markdown format)",
    "keywords": ["keyword1", "keyword2", "keyword3"]
}
`

// buildPrompt renders the rewrite instruction for one item. The raw content
// is expected to already be truncated to the input limit.
func buildPrompt(title, sourceName, rawContent string) string {
	return fmt.Sprintf(promptTemplate, title, sourceName, rawContent)
}
