package localize

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"codeberg.org/snonux/newsforge/internal/audio"
	"codeberg.org/snonux/newsforge/internal/transform"
)

// Translation holds the translated fields for one target language.
type Translation struct {
	Title   string
	Summary string
	Content string
}

// Bundle is the localization result for one article. Translations are keyed
// by language code. AudioPaths covers the source language as well; a
// language present in Translations may have no audio entry, since
// translation and synthesis fail independently.
type Bundle struct {
	Translations map[string]Translation
	AudioPaths   map[string]string
}

// Localizer fans one article out into the configured target languages and,
// optionally, synthesized speech tracks. The contract is best-effort per
// language: one language failing never aborts the bundle.
type Localizer struct {
	translator TextTranslator
	speech     audio.Provider // nil when no synthesis backend is configured
	audioDir   string
	sourceLang string
	targets    []string
}

// NewLocalizer wires a localizer. speech may be nil to disable synthesis.
func NewLocalizer(translator TextTranslator, speech audio.Provider, audioDir, sourceLang string, targets []string) *Localizer {
	return &Localizer{
		translator: translator,
		speech:     speech,
		audioDir:   audioDir,
		sourceLang: sourceLang,
		targets:    targets,
	}
}

// Localize produces one bundle for an article. Translation runs per field
// and per language; a failed call degrades that field to the original text.
// When withAudio is set and a synthesis backend is available, one synthesis
// task is dispatched per language and joined before the bundle is returned.
func (l *Localizer) Localize(ctx context.Context, article *transform.Article, slug string, withAudio bool) *Bundle {
	bundle := &Bundle{
		Translations: make(map[string]Translation),
		AudioPaths:   make(map[string]string),
	}

	for _, lang := range l.targets {
		bundle.Translations[lang] = Translation{
			Title:   l.translateField(ctx, article.Title, lang),
			Summary: l.translateField(ctx, article.Summary, lang),
			Content: l.translateField(ctx, article.Content, lang),
		}
	}

	if withAudio && l.speech != nil {
		l.generateAudio(ctx, article, bundle, slug)
	}

	return bundle
}

// translateField translates one field, falling back to the original text on
// failure. Failure is local to the field.
func (l *Localizer) translateField(ctx context.Context, text, lang string) string {
	translated, err := l.translator.Translate(ctx, text, lang)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: translation to %s failed: %v\n", lang, err)
		return text
	}
	return translated
}

// generateAudio runs one synthesis task per language and waits for all of
// them. A failed language simply has no audio path in the bundle.
func (l *Localizer) generateAudio(ctx context.Context, article *transform.Article, bundle *Bundle, slug string) {
	type track struct {
		lang string
		text string
	}

	tracks := []track{{lang: l.sourceLang, text: article.Content}}
	for _, lang := range l.targets {
		tracks = append(tracks, track{lang: lang, text: bundle.Translations[lang].Content})
	}

	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	for _, tr := range tracks {
		wg.Add(1)
		go func(tr track) {
			defer wg.Done()

			outputFile := filepath.Join(l.audioDir, slug, tr.lang+".mp3")
			if err := l.speech.GenerateAudio(ctx, tr.text, tr.lang, outputFile); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: audio generation failed for %s: %v\n", tr.lang, err)
				return
			}

			mu.Lock()
			bundle.AudioPaths[tr.lang] = outputFile
			mu.Unlock()
		}(tr)
	}
	wg.Wait()
}
