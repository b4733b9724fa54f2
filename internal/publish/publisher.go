// Package publish maps transformed and localized articles onto the static
// content tree, one file per locale, addressed by date and slug.
package publish

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"codeberg.org/snonux/newsforge/internal/localize"
	"codeberg.org/snonux/newsforge/internal/transform"
)

const (
	slugMaxLen        = 50
	descriptionMaxLen = 160

	// localeBlogDir mirrors the site generator's per-locale blog layout.
	localeBlogDir = "docusaurus-plugin-content-blog"
)

var (
	slugStripRe    = regexp.MustCompile(`[^a-z0-9\s-]`)
	slugCollapseRe = regexp.MustCompile(`\s+`)
)

// Slugify derives a URL-safe identifier from a title: lower-case, stripped
// to [a-z0-9-], whitespace collapsed to single hyphens, trimmed, capped at
// 50 characters.
func Slugify(title string) string {
	slug := strings.ToLower(title)
	slug = slugStripRe.ReplaceAllString(slug, "")
	slug = slugCollapseRe.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")
	if len(slug) > slugMaxLen {
		slug = slug[:slugMaxLen]
	}
	return slug
}

// Options configures a Publisher.
type Options struct {
	BlogDir    string
	I18nDir    string
	SourceLang string // defaults to "en"
	DryRun     bool
	Now        func() time.Time // defaults to time.Now
}

// Result records where one article was published.
type Result struct {
	Slug         string            `json:"slug"`
	Date         string            `json:"date"`
	SourceFile   string            `json:"source_file"`
	Translations map[string]string `json:"translations"`
	AudioPaths   map[string]string `json:"audio_paths,omitempty"`

	// LocaleErrors records per-locale write failures; the other locales are
	// still written.
	LocaleErrors map[string]string `json:"locale_errors,omitempty"`
}

// Publisher writes article files into the content tree. Re-publishing the
// same title on the same date overwrites in place.
type Publisher struct {
	blogDir    string
	i18nDir    string
	sourceLang string
	dryRun     bool
	now        func() time.Time
}

// NewPublisher creates a publisher for the given content tree locations.
func NewPublisher(opts *Options) *Publisher {
	p := &Publisher{
		blogDir:    opts.BlogDir,
		i18nDir:    opts.I18nDir,
		sourceLang: opts.SourceLang,
		dryRun:     opts.DryRun,
		now:        opts.Now,
	}
	if p.sourceLang == "" {
		p.sourceLang = "en"
	}
	if p.now == nil {
		p.now = time.Now
	}
	return p
}

// Publish writes one file per locale for the article. Locale writes are
// independent: a failure for one locale is recorded in the result and the
// remaining locales are still written. The returned error aggregates
// per-locale failures; a non-nil error still comes with a usable Result.
func (p *Publisher) Publish(article *transform.Article, bundle *localize.Bundle) (*Result, error) {
	date := p.now().Format("2006-01-02")
	slug := Slugify(article.Title)

	result := &Result{
		Slug:         slug,
		Date:         date,
		Translations: make(map[string]string),
		LocaleErrors: make(map[string]string),
	}
	if bundle != nil {
		result.AudioPaths = bundle.AudioPaths
	}

	var failures []string

	// Source-language file under the primary tree.
	sourceFile := filepath.Join(p.blogDir, fmt.Sprintf("%s-%s", date, slug), "index.md")
	content := p.render(article.Title, article.Summary, article.Content, article, slug, p.sourceLang, bundle)
	if err := p.writeFile(sourceFile, content); err != nil {
		result.LocaleErrors[p.sourceLang] = err.Error()
		failures = append(failures, fmt.Sprintf("%s: %v", p.sourceLang, err))
	} else {
		result.SourceFile = sourceFile
		fmt.Printf("Published source version: %s\n", sourceFile)
	}

	// One file per translated locale.
	if bundle != nil {
		for lang, trans := range bundle.Translations {
			langFile := filepath.Join(p.i18nDir, lang, localeBlogDir, fmt.Sprintf("%s-%s", date, slug), "index.md")
			content := p.render(trans.Title, trans.Summary, trans.Content, article, slug, lang, bundle)
			if err := p.writeFile(langFile, content); err != nil {
				result.LocaleErrors[lang] = err.Error()
				failures = append(failures, fmt.Sprintf("%s: %v", lang, err))
				continue
			}
			result.Translations[lang] = langFile
			fmt.Printf("Published %s version: %s\n", lang, langFile)
		}
	}

	if len(result.LocaleErrors) == 0 {
		result.LocaleErrors = nil
	}
	if len(failures) > 0 {
		return result, fmt.Errorf("failed to publish %d locale(s): %s", len(failures), strings.Join(failures, "; "))
	}
	return result, nil
}

// render produces the full file content for one locale: frontmatter, title
// heading, optional audio embed, body, and the excerpt marker.
func (p *Publisher) render(title, summary, body string, article *transform.Article, slug, lang string, bundle *localize.Bundle) string {
	var sb strings.Builder

	sb.WriteString(p.frontmatter(title, summary, article, slug))
	sb.WriteString(fmt.Sprintf("# %s\n\n", title))

	if bundle != nil {
		if _, ok := bundle.AudioPaths[lang]; ok {
			sb.WriteString(fmt.Sprintf("<audio controls src=\"/audio/%s/%s.mp3\"></audio>\n\n", slug, lang))
		}
	}

	sb.WriteString(body)
	sb.WriteString("\n\n<!-- truncate -->\n")

	return sb.String()
}

func (p *Publisher) frontmatter(title, summary string, article *transform.Article, slug string) string {
	tags := make([]string, 0, len(article.Keywords))
	for _, kw := range article.Keywords {
		tags = append(tags, fmt.Sprintf("%q", kw))
	}

	// The cap counts characters, not bytes: translated summaries are mostly
	// multi-byte and a byte slice would split a rune.
	description := summary
	if runes := []rune(description); len(runes) > descriptionMaxLen {
		description = string(runes[:descriptionMaxLen])
	}

	return fmt.Sprintf(`---
slug: %s
title: %q
authors: [ai-editor]
tags: [%s]
description: %q
source_url: %s
source_name: %s
---

`, slug, title, strings.Join(tags, ", "), description, article.SourceURL, article.SourceName)
}

// writeFile creates parent directories and writes content in one open-write-
// close scope, overwriting any existing file.
func (p *Publisher) writeFile(path, content string) error {
	if p.dryRun {
		fmt.Printf("Dry run: would write %s (%d bytes)\n", path, len(content))
		return nil
	}

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create article directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write article file: %w", err)
	}
	return nil
}
