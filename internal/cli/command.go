package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeberg.org/snonux/newsforge/internal"
	"codeberg.org/snonux/newsforge/internal/config"
)

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "newsforge",
		Short: "AI News Curation and Publishing Pipeline",
		Long: `newsforge collects articles from configured feeds, rewrites them with
an LLM, translates them into the configured target languages and publishes
them into a static blog content tree.

Examples:
  newsforge                               # Run the full pipeline
  newsforge --collect                     # Only collect, save pending batch
  newsforge --process pending.json       # Process a saved pending batch
  newsforge --max-articles 5 --skip-audio # Larger run without narration`,
		Args:    cobra.NoArgs,
		Version: internal.Version,
	}

	setupFlags(rootCmd, flags)

	return rootCmd
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	// Global flags
	cmd.PersistentFlags().StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.newsforge.yaml)")

	// Local flags
	cmd.Flags().StringVar(&flags.SourcesFile, "sources", "", "YAML file with feed sources (default: built-in list)")
	cmd.Flags().StringVar(&flags.LedgerPath, "ledger", flags.LedgerPath, "Path to the dedup ledger database")
	cmd.Flags().StringVar(&flags.BlogDir, "blog-dir", flags.BlogDir, "Output directory for source-language articles")
	cmd.Flags().StringVar(&flags.I18nDir, "i18n-dir", flags.I18nDir, "Output directory for translated articles")
	cmd.Flags().StringVar(&flags.AudioDir, "audio-dir", flags.AudioDir, "Output directory for narration audio files")
	cmd.Flags().BoolVar(&flags.CollectOnly, "collect", false, "Only collect new articles and save them as a pending batch")
	cmd.Flags().StringVar(&flags.ProcessFile, "process", "", "Process a previously saved pending batch file")
	cmd.Flags().StringVar(&flags.PendingFile, "pending-file", flags.PendingFile, "Pending batch file written by --collect")
	cmd.Flags().IntVarP(&flags.MaxArticles, "max-articles", "n", flags.MaxArticles, "Maximum articles to publish per run (0 = no limit)")
	cmd.Flags().BoolVar(&flags.SkipAudio, "skip-audio", false, "Skip audio narration generation")
	cmd.Flags().BoolVar(&flags.DryRun, "dry-run", false, "Show what would be published without writing files")
	cmd.Flags().BoolVar(&flags.ListModels, "list-models", false, "List available OpenAI models for the current API key")

	// Language flags
	cmd.Flags().StringVar(&flags.SourceLang, "source-lang", flags.SourceLang, "Source language of collected articles")
	cmd.Flags().StringSliceVar(&flags.TargetLangs, "target-langs", flags.TargetLangs, "Target languages for translation")

	// OpenAI flags
	cmd.Flags().StringVar(&flags.Model, "model", flags.Model, "OpenAI chat model for rewriting and translation")
	cmd.Flags().Float32Var(&flags.Temperature, "temperature", flags.Temperature, "Sampling temperature for article rewriting")
	cmd.Flags().IntVar(&flags.MaxTokens, "max-tokens", flags.MaxTokens, "Token limit for article rewriting responses")
	cmd.Flags().StringVar(&flags.TTSModel, "tts-model", flags.TTSModel, "OpenAI TTS model: tts-1, tts-1-hd, gpt-4o-mini-tts")
	cmd.Flags().StringVar(&flags.TTSVoice, "tts-voice", "", "OpenAI voice override (default: per-language voice)")

	// Bind flags to viper
	bindFlagsToViper(cmd)
}

func bindFlagsToViper(cmd *cobra.Command) {
	viper.BindPFlag("sources_file", cmd.Flags().Lookup("sources"))
	viper.BindPFlag("ledger.path", cmd.Flags().Lookup("ledger"))
	viper.BindPFlag("output.blog_dir", cmd.Flags().Lookup("blog-dir"))
	viper.BindPFlag("output.i18n_dir", cmd.Flags().Lookup("i18n-dir"))
	viper.BindPFlag("output.audio_dir", cmd.Flags().Lookup("audio-dir"))
	viper.BindPFlag("pipeline.max_articles", cmd.Flags().Lookup("max-articles"))
	viper.BindPFlag("languages.source", cmd.Flags().Lookup("source-lang"))
	viper.BindPFlag("languages.targets", cmd.Flags().Lookup("target-langs"))
	viper.BindPFlag("openai.model", cmd.Flags().Lookup("model"))
	viper.BindPFlag("openai.temperature", cmd.Flags().Lookup("temperature"))
	viper.BindPFlag("openai.max_tokens", cmd.Flags().Lookup("max-tokens"))
	viper.BindPFlag("audio.openai_model", cmd.Flags().Lookup("tts-model"))
	viper.BindPFlag("audio.openai_voice", cmd.Flags().Lookup("tts-voice"))
}

// InitConfig initializes viper configuration
func InitConfig(cfgFile string) {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting home directory: %v\n", err)
			return
		}

		// Search config in home directory with name ".newsforge" (without extension)
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".newsforge")
	}

	// Environment variables
	viper.SetEnvPrefix("NEWSFORGE")
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// GetOpenAIKey retrieves the OpenAI API key from environment or config
func GetOpenAIKey() string {
	// First check environment variable
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return key
	}

	// Then check config file
	return viper.GetString("openai.api_key")
}

// BuildConfig assembles the run configuration from flag values, the viper
// config file and the optional sources file. Flags win over the config
// file, which wins over the built-in defaults. For keys bound in
// bindFlagsToViper that precedence comes from reading the bound key back
// through viper; unbound keys (e.g. in tests without a command) fall back
// to the flag value directly.
func BuildConfig(flags *Flags) (*config.Config, error) {
	cfg := config.Default()

	cfg.LedgerPath = stringSetting("ledger.path", flags.LedgerPath)
	cfg.BlogDir = stringSetting("output.blog_dir", flags.BlogDir)
	cfg.I18nDir = stringSetting("output.i18n_dir", flags.I18nDir)
	cfg.AudioDir = stringSetting("output.audio_dir", flags.AudioDir)
	cfg.SourceLang = stringSetting("languages.source", flags.SourceLang)
	cfg.Model = stringSetting("openai.model", flags.Model)
	cfg.TTSModel = stringSetting("audio.openai_model", flags.TTSModel)
	cfg.TTSVoice = stringSetting("audio.openai_voice", flags.TTSVoice)
	cfg.OpenAIKey = GetOpenAIKey()

	cfg.TargetLangs = flags.TargetLangs
	if viper.IsSet("languages.targets") {
		cfg.TargetLangs = viper.GetStringSlice("languages.targets")
	}
	cfg.Temperature = flags.Temperature
	if viper.IsSet("openai.temperature") {
		cfg.Temperature = float32(viper.GetFloat64("openai.temperature"))
	}
	cfg.MaxTokens = flags.MaxTokens
	if viper.IsSet("openai.max_tokens") {
		cfg.MaxTokens = viper.GetInt("openai.max_tokens")
	}
	cfg.MaxArticles = flags.MaxArticles
	if viper.IsSet("pipeline.max_articles") {
		cfg.MaxArticles = viper.GetInt("pipeline.max_articles")
	}

	// Config file values fill in where flags kept their defaults
	if viper.IsSet("pipeline.max_per_source") {
		cfg.MaxPerSource = viper.GetInt("pipeline.max_per_source")
	}
	if viper.IsSet("pipeline.min_content_length") {
		cfg.MinContentLength = viper.GetInt("pipeline.min_content_length")
	}
	if viper.IsSet("pipeline.relevance_cutoff") {
		cfg.RelevanceCutoff = viper.GetFloat64("pipeline.relevance_cutoff")
	}

	sourcesFile := flags.SourcesFile
	if sourcesFile == "" && viper.IsSet("sources_file") {
		sourcesFile = viper.GetString("sources_file")
	}
	if sourcesFile != "" {
		sources, err := config.LoadSources(sourcesFile)
		if err != nil {
			return nil, err
		}
		cfg.Sources = sources
	}

	return cfg, nil
}

// stringSetting reads a bound viper key, falling back to the flag value
// when the key is not set anywhere.
func stringSetting(key, flagValue string) string {
	if viper.IsSet(key) {
		if v := viper.GetString(key); v != "" {
			return v
		}
	}
	return flagValue
}
