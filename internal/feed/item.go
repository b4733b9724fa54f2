package feed

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"time"
)

// Item is a single candidate entry collected from a feed. It is immutable
// once the Collector has produced it.
type Item struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	Source      string    `json:"source"`
	Category    string    `json:"category"`
	Published   string    `json:"published,omitempty"`
	Summary     string    `json:"summary"`
	Content     string    `json:"content"`
	CollectedAt time.Time `json:"collected_at"`
	Priority    int       `json:"priority"`

	// Scores assigned by the Collector
	Relevance float64 `json:"relevance_score"`
	Quality   float64 `json:"quality_score"`
	Composite float64 `json:"composite_score"`
}

// ItemID derives the stable identity of an item from its URL and title.
// The same logical entry always hashes to the same identity, regardless of
// when it is fetched.
func ItemID(url, title string) string {
	hash := md5.Sum([]byte(fmt.Sprintf("%s:%s", url, title)))
	return hex.EncodeToString(hash[:])
}
