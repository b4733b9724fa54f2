package cli

// Flags holds all command-line flag values
type Flags struct {
	// General flags
	CfgFile     string
	SourcesFile string
	LedgerPath  string
	BlogDir     string
	I18nDir     string
	AudioDir    string
	PendingFile string
	CollectOnly bool
	ProcessFile string
	MaxArticles int
	SkipAudio   bool
	DryRun      bool
	ListModels  bool

	// Language flags
	SourceLang  string
	TargetLangs []string

	// OpenAI flags
	Model       string
	Temperature float32
	MaxTokens   int
	TTSModel    string
	TTSVoice    string
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	return &Flags{
		LedgerPath:  "data/ledger.db",
		BlogDir:     "blog",
		I18nDir:     "i18n",
		AudioDir:    "static/audio",
		PendingFile: "pending_articles.json",
		MaxArticles: 3,
		SourceLang:  "en",
		TargetLangs: []string{"zh", "ja"},
		Model:       "gpt-4o-mini",
		Temperature: 0.7,
		MaxTokens:   2000,
		TTSModel:    "gpt-4o-mini-tts",
	}
}
