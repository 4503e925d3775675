package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"TeleshopNews/internal/domain"
	"TeleshopNews/internal/enrich"
	"TeleshopNews/internal/extract"
	"TeleshopNews/internal/ports"
)

// PipelineDeps wires all driven adapters into the ingestion pipeline.
type PipelineDeps struct {
	Extractor    ports.Extractor
	Translator   ports.Translator
	Repository   ports.NewsRepository
	Logger       *slog.Logger
	MaxStoreSize int
	RecentHours  int
	FetchTimeout time.Duration
	FetchDelay   time.Duration
}

// Pipeline implements one incremental ingestion-and-merge run: discover
// candidates, skip known links, enrich survivors in isolation, merge into the
// bounded store.
type Pipeline struct {
	extractor    ports.Extractor
	translator   ports.Translator
	repository   ports.NewsRepository
	logger       *slog.Logger
	limiter      *rate.Limiter
	maxStoreSize int
	recentHours  int
	fetchTimeout time.Duration

	// runMu serializes runs; the store is only ever mutated under it.
	runMu sync.Mutex
	now   func() time.Time
}

var _ ports.Ingestor = (*Pipeline)(nil)

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	delay := deps.FetchDelay
	if delay <= 0 {
		delay = time.Second
	}
	timeout := deps.FetchTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	maxSize := deps.MaxStoreSize
	if maxSize <= 0 {
		maxSize = 200
	}
	recent := deps.RecentHours
	if recent <= 0 {
		recent = 24
	}

	return &Pipeline{
		extractor:    deps.Extractor,
		translator:   deps.Translator,
		repository:   deps.Repository,
		logger:       deps.Logger,
		limiter:      rate.NewLimiter(rate.Every(delay), 1),
		maxStoreSize: maxSize,
		recentHours:  recent,
		fetchTimeout: timeout,
		now:          time.Now,
	}
}

// Run executes a single ingestion pass. A listing failure aborts the run with
// the store untouched; per-candidate enrichment failures are dropped and
// logged, never retried within the run. At most one run is in flight.
func (p *Pipeline) Run(ctx context.Context) (domain.RunResult, error) {
	p.runMu.Lock()
	defer p.runMu.Unlock()

	var result domain.RunResult

	existing, err := p.repository.Load(ctx)
	if err != nil {
		return result, fmt.Errorf("load store: %w", err)
	}

	known := make(map[string]struct{}, len(existing))
	for _, item := range existing {
		known[item.Link] = struct{}{}
	}

	listCtx, cancel := context.WithTimeout(ctx, p.fetchTimeout)
	candidates, err := p.extractor.ListCandidates(listCtx)
	cancel()
	if err != nil {
		return result, fmt.Errorf("source unavailable: %w", err)
	}

	var fresh []domain.NewsItem
	for _, candidate := range candidates {
		if _, seen := known[candidate.Link]; seen {
			result.Skipped++
			continue
		}

		if err := p.limiter.Wait(ctx); err != nil {
			return result, fmt.Errorf("politeness wait: %w", err)
		}

		item, err := p.enrich(ctx, candidate)
		if err != nil {
			result.Failed++
			p.warn("candidate enrichment failed", "link", candidate.Link, "error", err)
			continue
		}

		known[item.Link] = struct{}{}
		fresh = append(fresh, item)
		result.Added++
	}

	if result.Added == 0 {
		p.info("run finished, store untouched", "skipped", result.Skipped, "failed", result.Failed)
		return result, nil
	}

	merged := Merge(existing, fresh, p.maxStoreSize)
	if err := p.repository.Persist(ctx, merged); err != nil {
		return domain.RunResult{Skipped: result.Skipped, Failed: result.Failed}, fmt.Errorf("persist store: %w", err)
	}

	p.info("run finished", "added", result.Added, "skipped", result.Skipped, "failed", result.Failed, "store_size", len(merged))
	return result, nil
}

func (p *Pipeline) enrich(ctx context.Context, candidate extract.Candidate) (domain.NewsItem, error) {
	fetchCtx, cancel := context.WithTimeout(ctx, p.fetchTimeout)
	article, err := p.extractor.FetchArticle(fetchCtx, candidate.Link)
	cancel()
	if err != nil {
		return domain.NewsItem{}, fmt.Errorf("fetch article: %w", err)
	}

	hours := enrich.ParseHours(candidate.TimeLabel)

	item := domain.NewsItem{
		ID:                domain.ItemID(candidate.Link),
		TitleSource:       candidate.Title,
		DescriptionSource: candidate.Title,
		BodySource:        article.BodyText,
		Image:             candidate.ImageURL,
		ArticleImages:     article.ImageURLs,
		Category:          enrich.Classify(candidate.Title),
		Link:              candidate.Link,
		TimeLabel:         candidate.TimeLabel,
		HoursAgo:          hours,
		IsRecent:          hours <= p.recentHours,
		IngestedAt:        p.now(),
	}

	item.TitleTranslated = p.translateOrFallback(ctx, item.TitleSource)
	item.DescriptionTranslated = p.translateOrFallback(ctx, item.DescriptionSource)
	item.BodyTranslated = p.translateOrFallback(ctx, item.BodySource)

	return item, nil
}

// translateOrFallback degrades to the source text on any translator error;
// the run never retries a translation.
func (p *Pipeline) translateOrFallback(ctx context.Context, text string) string {
	if p.translator == nil || text == "" {
		return text
	}

	translated, err := p.translator.Translate(ctx, text)
	if err != nil {
		p.warn("translation degraded", "error", err)
		return text
	}
	return translated
}

func (p *Pipeline) info(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Info(msg, args...)
	}
}

func (p *Pipeline) warn(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Warn(msg, args...)
	}
}
