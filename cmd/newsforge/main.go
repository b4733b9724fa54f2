package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"codeberg.org/snonux/newsforge/internal/audio"
	"codeberg.org/snonux/newsforge/internal/cli"
	"codeberg.org/snonux/newsforge/internal/feed"
	"codeberg.org/snonux/newsforge/internal/ledger"
	"codeberg.org/snonux/newsforge/internal/localize"
	"codeberg.org/snonux/newsforge/internal/models"
	"codeberg.org/snonux/newsforge/internal/pipeline"
	"codeberg.org/snonux/newsforge/internal/publish"
	"codeberg.org/snonux/newsforge/internal/score"
	"codeberg.org/snonux/newsforge/internal/transform"
)

func main() {
	// Create flags instance
	flags := cli.NewFlags()

	// Create root command
	rootCmd := cli.CreateRootCommand(flags)

	// Set up command initialization
	cobra.OnInitialize(func() {
		cli.InitConfig(flags.CfgFile)
	})

	// Set the run function
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runCommand(cmd, flags)
	}

	// Execute command
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runCommand(cmd *cobra.Command, flags *cli.Flags) error {
	// Handle --list-models flag
	if flags.ListModels {
		lister := models.NewLister(cli.GetOpenAIKey())
		return lister.ListAvailableModels()
	}

	cfg, err := cli.BuildConfig(flags)
	if err != nil {
		return err
	}

	if cfg.OpenAIKey == "" {
		fmt.Fprintln(os.Stderr, "Warning: OPENAI_API_KEY not set, running in degraded mode without LLM rewriting")
	}

	led, err := ledger.Open(cfg.LedgerPath)
	if err != nil {
		return fmt.Errorf("failed to open ledger: %w", err)
	}
	defer led.Close()

	fetcher := feed.NewHTTPFetcher(30 * time.Second)
	collector := feed.NewCollector(cfg, fetcher, led, score.NewScorer())
	transformer := transform.NewTransformer(cfg)

	var speech audio.Provider
	if !flags.SkipAudio && cfg.OpenAIKey != "" {
		providerConfig := audio.DefaultProviderConfig()
		providerConfig.OpenAIKey = cfg.OpenAIKey
		providerConfig.OpenAIModel = cfg.TTSModel
		if cfg.TTSVoice != "" {
			for lang := range providerConfig.Voices {
				providerConfig.Voices[lang] = cfg.TTSVoice
			}
		}
		speech, err = audio.NewProvider(providerConfig)
		if err != nil {
			return fmt.Errorf("failed to create audio provider: %w", err)
		}
	}

	translator := localize.NewTranslator(cfg.OpenAIKey, cfg.Model)
	localizer := localize.NewLocalizer(translator, speech, cfg.AudioDir, cfg.SourceLang, cfg.TargetLangs)
	publisher := publish.NewPublisher(&publish.Options{
		BlogDir:    cfg.BlogDir,
		I18nDir:    cfg.I18nDir,
		SourceLang: cfg.SourceLang,
		DryRun:     flags.DryRun,
	})

	pipe := pipeline.New(collector, transformer, localizer, publisher)
	ctx := context.Background()
	withAudio := !flags.SkipAudio && speech != nil

	// Handle collect-only and process-file modes
	if flags.CollectOnly {
		if _, err := pipe.CollectOnly(ctx, flags.PendingFile); err != nil {
			return err
		}
		return nil
	}
	if flags.ProcessFile != "" {
		if _, err := pipe.ProcessFile(ctx, flags.ProcessFile, cfg.MaxArticles, withAudio); err != nil {
			return err
		}
		return nil
	}

	// Full pipeline run
	if _, err := pipe.Run(ctx, cfg.MaxArticles, withAudio); err != nil {
		return err
	}

	fmt.Printf("\nDone! Articles published to: %s\n", cfg.BlogDir)
	return nil
}
