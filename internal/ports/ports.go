package ports

import (
	"context"
	"time"

	"TeleshopNews/internal/domain"
	"TeleshopNews/internal/extract"
)

// Extractor discovers listing candidates and loads article bodies from the
// configured news source.
type Extractor interface {
	ListCandidates(ctx context.Context) ([]extract.Candidate, error)
	FetchArticle(ctx context.Context, link string) (extract.Article, error)
}

// Translator converts source-language text to the target language. Callers
// fall back to the source text on error and must not retry.
type Translator interface {
	Translate(ctx context.Context, text string) (string, error)
}

// NewsRepository persists the bounded news collection as a single document.
// Load on a missing document returns an empty collection, not an error.
type NewsRepository interface {
	Load(ctx context.Context) ([]domain.NewsItem, error)
	Persist(ctx context.Context, items []domain.NewsItem) error
	Stat() (exists bool, modified time.Time)
}

// Ingestor runs one ingestion pass; the read layer triggers it on cooldown.
type Ingestor interface {
	Run(ctx context.Context) (domain.RunResult, error)
}
