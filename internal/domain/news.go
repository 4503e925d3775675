package domain

import (
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"time"
)

// ErrStoreCorrupt marks a persisted store document that fails to parse. The
// read layer maps it to a 500 instead of crashing.
var ErrStoreCorrupt = errors.New("news store document is corrupt")

// NewsItem is one enriched article, both the persisted record and the API
// response element. Translated fields equal their source counterparts when
// translation degraded.
type NewsItem struct {
	ID                    string    `json:"id"`
	TitleSource           string    `json:"title_source"`
	TitleTranslated       string    `json:"title_translated"`
	DescriptionSource     string    `json:"description_source"`
	DescriptionTranslated string    `json:"description_translated"`
	BodySource            string    `json:"body_source"`
	BodyTranslated        string    `json:"body_translated"`
	Image                 string    `json:"image"`
	ArticleImages         []string  `json:"article_images"`
	Category              string    `json:"category"`
	Link                  string    `json:"link"`
	TimeLabel             string    `json:"time_label"`
	HoursAgo              int       `json:"hours_ago"`
	IsRecent              bool      `json:"is_recent"`
	IngestedAt            time.Time `json:"ingested_at"`
}

// ItemID derives the stable identity for a canonical link. The dedup key must
// survive process restarts, so it is a fixed sha1 over the UTF-8 bytes of the
// link, never a runtime-seeded hash.
func ItemID(link string) string {
	sum := sha1.Sum([]byte(link))
	return hex.EncodeToString(sum[:])
}

// RunResult counts the outcome of a single ingestion run.
type RunResult struct {
	Added   int
	Skipped int
	Failed  int
}
