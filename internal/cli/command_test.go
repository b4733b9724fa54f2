package cli

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

func TestCreateRootCommand(t *testing.T) {
	flags := NewFlags()
	cmd := CreateRootCommand(flags)

	// Test basic command properties
	if cmd.Use != "newsforge" {
		t.Errorf("Expected Use to be 'newsforge', got %s", cmd.Use)
	}

	if !strings.Contains(cmd.Short, "AI News Curation and Publishing Pipeline") {
		t.Errorf("Expected Short description to contain 'AI News Curation and Publishing Pipeline'")
	}

	// Test that flags are set up
	flagTests := []struct {
		name     string
		expected bool
	}{
		{"config", true},
		{"sources", true},
		{"ledger", true},
		{"blog-dir", true},
		{"i18n-dir", true},
		{"audio-dir", true},
		{"collect", true},
		{"process", true},
		{"pending-file", true},
		{"max-articles", true},
		{"skip-audio", true},
		{"dry-run", true},
		{"list-models", true},
		{"source-lang", true},
		{"target-langs", true},
		{"model", true},
		{"temperature", true},
		{"max-tokens", true},
		{"tts-model", true},
		{"tts-voice", true},
	}

	for _, tt := range flagTests {
		t.Run("flag_"+tt.name, func(t *testing.T) {
			var flag *pflag.Flag
			if tt.name == "config" {
				flag = cmd.PersistentFlags().Lookup(tt.name)
			} else {
				flag = cmd.Flags().Lookup(tt.name)
			}
			if flag == nil && tt.expected {
				t.Errorf("Expected flag %s to exist", tt.name)
			}
		})
	}
}

func TestSetupFlags(t *testing.T) {
	cmd := &cobra.Command{}
	flags := NewFlags()

	setupFlags(cmd, flags)

	// Test default values
	ledgerFlag := cmd.Flags().Lookup("ledger")
	if ledgerFlag == nil {
		t.Fatal("ledger flag not found")
	}
	if ledgerFlag.DefValue != "data/ledger.db" {
		t.Errorf("Expected default ledger path to be data/ledger.db, got %s", ledgerFlag.DefValue)
	}

	maxFlag := cmd.Flags().Lookup("max-articles")
	if maxFlag == nil {
		t.Fatal("max-articles flag not found")
	}
	if maxFlag.DefValue != "3" {
		t.Errorf("Expected default max-articles to be 3, got %s", maxFlag.DefValue)
	}
}

func TestInitConfig(t *testing.T) {
	// Save original viper state
	originalConfig := viper.New()
	*originalConfig = *viper.GetViper()
	defer func() {
		*viper.GetViper() = *originalConfig
	}()

	tests := []struct {
		name      string
		cfgFile   string
		setupFunc func(t *testing.T) string
	}{
		{
			name:    "with config file",
			cfgFile: "test-config.yaml",
			setupFunc: func(t *testing.T) string {
				tmpDir := t.TempDir()
				cfgPath := filepath.Join(tmpDir, "test-config.yaml")
				content := `openai:
  api_key: test-key
output:
  blog_dir: /test/blog`
				err := os.WriteFile(cfgPath, []byte(content), 0644)
				if err != nil {
					t.Fatalf("Failed to create test config: %v", err)
				}
				return cfgPath
			},
		},
		{
			name:    "without config file",
			cfgFile: "",
			setupFunc: func(t *testing.T) string {
				return ""
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Reset viper for each test
			viper.Reset()

			cfgPath := tt.setupFunc(t)
			if tt.cfgFile != "" && cfgPath != "" {
				tt.cfgFile = cfgPath
			}

			InitConfig(tt.cfgFile)

			// Test environment variable prefix
			os.Setenv("NEWSFORGE_TEST_VAR", "test-value")
			defer os.Unsetenv("NEWSFORGE_TEST_VAR")

			if viper.GetString("test_var") != "test-value" {
				t.Error("Environment variable not properly loaded")
			}
		})
	}
}

func TestGetOpenAIKey(t *testing.T) {
	// Save original viper state
	originalConfig := viper.New()
	*originalConfig = *viper.GetViper()
	defer func() {
		*viper.GetViper() = *originalConfig
	}()

	tests := []struct {
		name      string
		envKey    string
		configKey string
		expected  string
	}{
		{
			name:      "from environment",
			envKey:    "env-test-key",
			configKey: "config-test-key",
			expected:  "env-test-key",
		},
		{
			name:      "from config when no env",
			envKey:    "",
			configKey: "config-test-key",
			expected:  "config-test-key",
		},
		{
			name:      "empty when neither set",
			envKey:    "",
			configKey: "",
			expected:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Reset viper
			viper.Reset()

			// Set up environment
			if tt.envKey != "" {
				os.Setenv("OPENAI_API_KEY", tt.envKey)
				defer os.Unsetenv("OPENAI_API_KEY")
			} else {
				os.Unsetenv("OPENAI_API_KEY")
			}

			// Set up config
			if tt.configKey != "" {
				viper.Set("openai.api_key", tt.configKey)
			}

			got := GetOpenAIKey()
			if got != tt.expected {
				t.Errorf("GetOpenAIKey() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestBuildConfig(t *testing.T) {
	// Save original viper state
	originalConfig := viper.New()
	*originalConfig = *viper.GetViper()
	defer func() {
		*viper.GetViper() = *originalConfig
	}()
	viper.Reset()
	os.Unsetenv("OPENAI_API_KEY")

	flags := NewFlags()
	flags.BlogDir = "/custom/blog"
	flags.MaxArticles = 7
	flags.TargetLangs = []string{"de"}

	cfg, err := BuildConfig(flags)
	if err != nil {
		t.Fatalf("BuildConfig failed: %v", err)
	}

	if cfg.BlogDir != "/custom/blog" {
		t.Errorf("BlogDir = %s, want /custom/blog", cfg.BlogDir)
	}
	if cfg.MaxArticles != 7 {
		t.Errorf("MaxArticles = %d, want 7", cfg.MaxArticles)
	}
	if len(cfg.TargetLangs) != 1 || cfg.TargetLangs[0] != "de" {
		t.Errorf("TargetLangs = %v, want [de]", cfg.TargetLangs)
	}

	// Built-in source list applies when no sources file is given
	if len(cfg.Sources) == 0 {
		t.Error("expected built-in sources when no sources file is configured")
	}
}

func TestBuildConfigReadsConfigFileValues(t *testing.T) {
	originalConfig := viper.New()
	*originalConfig = *viper.GetViper()
	defer func() {
		*viper.GetViper() = *originalConfig
	}()
	viper.Reset()
	os.Unsetenv("OPENAI_API_KEY")

	// Values a .newsforge.yaml would set for flag-bound keys.
	viper.Set("output.blog_dir", "config-blog")
	viper.Set("openai.model", "gpt-4.1")
	viper.Set("languages.targets", []string{"de", "fr"})
	viper.Set("openai.max_tokens", 1500)

	cfg, err := BuildConfig(NewFlags())
	if err != nil {
		t.Fatalf("BuildConfig failed: %v", err)
	}

	if cfg.BlogDir != "config-blog" {
		t.Errorf("BlogDir = %s, want config-blog from config file", cfg.BlogDir)
	}
	if cfg.Model != "gpt-4.1" {
		t.Errorf("Model = %s, want gpt-4.1 from config file", cfg.Model)
	}
	if !reflect.DeepEqual(cfg.TargetLangs, []string{"de", "fr"}) {
		t.Errorf("TargetLangs = %v, want [de fr] from config file", cfg.TargetLangs)
	}
	if cfg.MaxTokens != 1500 {
		t.Errorf("MaxTokens = %d, want 1500 from config file", cfg.MaxTokens)
	}

	// Keys absent from the config file keep the flag defaults.
	if cfg.I18nDir != "i18n" {
		t.Errorf("I18nDir = %s, want flag default i18n", cfg.I18nDir)
	}
}

func TestBuildConfigWithSourcesFile(t *testing.T) {
	originalConfig := viper.New()
	*originalConfig = *viper.GetViper()
	defer func() {
		*viper.GetViper() = *originalConfig
	}()
	viper.Reset()

	tmpDir := t.TempDir()
	sourcesPath := filepath.Join(tmpDir, "sources.yaml")
	content := `sources:
  - name: Custom Feed
    url: https://example.com/feed.xml
    category: AI
`
	if err := os.WriteFile(sourcesPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create sources file: %v", err)
	}

	flags := NewFlags()
	flags.SourcesFile = sourcesPath

	cfg, err := BuildConfig(flags)
	if err != nil {
		t.Fatalf("BuildConfig failed: %v", err)
	}

	if len(cfg.Sources) != 1 {
		t.Fatalf("Sources count = %d, want 1", len(cfg.Sources))
	}
	if cfg.Sources[0].Name != "Custom Feed" {
		t.Errorf("Source name = %s, want Custom Feed", cfg.Sources[0].Name)
	}
	if cfg.Sources[0].QualityTier != 5 {
		t.Errorf("QualityTier = %d, want default 5", cfg.Sources[0].QualityTier)
	}
}
