package transform

// Article is the polished output of the transformer for one candidate item.
// Category, SourceURL and SourceName are always copied from the originating
// item, never taken from generated text.
type Article struct {
	OriginalTitle string   `json:"original_title"`
	Title         string   `json:"title"`
	Summary       string   `json:"summary"`
	Content       string   `json:"content"`
	Keywords      []string `json:"keywords"`
	Category      string   `json:"category"`
	SourceURL     string   `json:"source_url"`
	SourceName    string   `json:"source_name"`
}
