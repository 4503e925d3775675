package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"TeleshopNews/internal/domain"
	"TeleshopNews/internal/extract"
	"TeleshopNews/internal/usecase"
)

type fakeExtractor struct {
	candidates []extract.Candidate
	listErr    error
	articles   map[string]extract.Article
	fetchErr   map[string]error
}

func (f *fakeExtractor) ListCandidates(ctx context.Context) ([]extract.Candidate, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.candidates, nil
}

func (f *fakeExtractor) FetchArticle(ctx context.Context, link string) (extract.Article, error) {
	if err := f.fetchErr[link]; err != nil {
		return extract.Article{}, err
	}
	return f.articles[link], nil
}

type fakeTranslator struct {
	prefix string
	err    error
}

func (f *fakeTranslator) Translate(ctx context.Context, text string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.prefix + text, nil
}

type memRepository struct {
	items      []domain.NewsItem
	persists   int
	loadErr    error
	persistErr error
}

func (m *memRepository) Load(ctx context.Context) ([]domain.NewsItem, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.items, nil
}

func (m *memRepository) Persist(ctx context.Context, items []domain.NewsItem) error {
	if m.persistErr != nil {
		return m.persistErr
	}
	m.items = items
	m.persists++
	return nil
}

func (m *memRepository) Stat() (bool, time.Time) {
	return len(m.items) > 0, time.Now()
}

func candidate(n string, label string) extract.Candidate {
	return extract.Candidate{
		Title:     "Samsung Galaxy " + n,
		Link:      "https://gagadget.com/news/phones/" + n,
		ImageURL:  "https://gagadget.com/img/" + n + ".jpg",
		TimeLabel: label,
	}
}

func newTestPipeline(ex *fakeExtractor, tr *fakeTranslator, repo *memRepository) *usecase.Pipeline {
	return usecase.NewPipeline(usecase.PipelineDeps{
		Extractor:    ex,
		Translator:   tr,
		Repository:   repo,
		MaxStoreSize: 200,
		RecentHours:  24,
		FetchTimeout: time.Second,
		FetchDelay:   time.Millisecond,
	})
}

func TestRunEnrichesAndPersistsNewItems(t *testing.T) {
	first := candidate("1", "3 часа назад")
	second := candidate("2", "2 дня назад")
	ex := &fakeExtractor{
		candidates: []extract.Candidate{first, second},
		articles: map[string]extract.Article{
			first.Link:  {BodyText: "body one", ImageURLs: []string{"https://gagadget.com/img/b1.jpg"}},
			second.Link: {BodyText: "body two"},
		},
	}
	repo := &memRepository{}
	pipe := newTestPipeline(ex, &fakeTranslator{prefix: "uz:"}, repo)

	result, err := pipe.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, domain.RunResult{Added: 2}, result)
	require.Equal(t, 1, repo.persists)
	require.Len(t, repo.items, 2)

	got := repo.items[0]
	require.Equal(t, domain.ItemID(first.Link), got.ID)
	require.Equal(t, first.Title, got.TitleSource)
	require.Equal(t, "uz:"+first.Title, got.TitleTranslated)
	require.Equal(t, "uz:body one", got.BodyTranslated)
	require.Equal(t, "Samsung", got.Category)
	require.Equal(t, 3, got.HoursAgo)
	require.True(t, got.IsRecent)
	require.False(t, got.IngestedAt.IsZero())

	older := repo.items[1]
	require.Equal(t, 48, older.HoursAgo)
	require.False(t, older.IsRecent)
}

func TestRunSkipsKnownLinksAndLeavesStoreUntouched(t *testing.T) {
	known := candidate("1", "1 час назад")
	ex := &fakeExtractor{candidates: []extract.Candidate{known}}
	repo := &memRepository{items: []domain.NewsItem{{ID: domain.ItemID(known.Link), Link: known.Link}}}
	pipe := newTestPipeline(ex, &fakeTranslator{}, repo)

	result, err := pipe.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, domain.RunResult{Skipped: 1}, result)
	require.Zero(t, repo.persists)
}

func TestRunTwiceNeverGrowsStore(t *testing.T) {
	first := candidate("1", "1 час назад")
	ex := &fakeExtractor{
		candidates: []extract.Candidate{first},
		articles:   map[string]extract.Article{first.Link: {BodyText: "body"}},
	}
	repo := &memRepository{}
	pipe := newTestPipeline(ex, &fakeTranslator{}, repo)

	_, err := pipe.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, repo.items, 1)

	result, err := pipe.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, domain.RunResult{Skipped: 1}, result)
	require.Len(t, repo.items, 1)
}

func TestRunIsolatesEnrichmentFailures(t *testing.T) {
	good := candidate("1", "1 час назад")
	bad := candidate("2", "1 час назад")
	alsoGood := candidate("3", "1 час назад")
	ex := &fakeExtractor{
		candidates: []extract.Candidate{good, bad, alsoGood},
		articles: map[string]extract.Article{
			good.Link:     {BodyText: "ok"},
			alsoGood.Link: {BodyText: "ok"},
		},
		fetchErr: map[string]error{bad.Link: errors.New("boom")},
	}
	repo := &memRepository{}
	pipe := newTestPipeline(ex, &fakeTranslator{}, repo)

	result, err := pipe.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, domain.RunResult{Added: 2, Failed: 1}, result)
	require.Equal(t, []string{good.Link, alsoGood.Link}, []string{repo.items[0].Link, repo.items[1].Link})
}

func TestRunListingFailureAbortsFailClosed(t *testing.T) {
	repo := &memRepository{items: []domain.NewsItem{{ID: "keep", Link: "https://example.com/keep"}}}
	pipe := newTestPipeline(&fakeExtractor{listErr: errors.New("down")}, &fakeTranslator{}, repo)

	_, err := pipe.Run(context.Background())
	require.Error(t, err)
	require.Zero(t, repo.persists)
	require.Len(t, repo.items, 1)
}

func TestRunTranslationFallback(t *testing.T) {
	first := candidate("1", "1 час назад")
	ex := &fakeExtractor{
		candidates: []extract.Candidate{first},
		articles:   map[string]extract.Article{first.Link: {BodyText: "исходный текст"}},
	}
	repo := &memRepository{}
	pipe := newTestPipeline(ex, &fakeTranslator{err: errors.New("quota")}, repo)

	result, err := pipe.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, result.Added)

	got := repo.items[0]
	require.Equal(t, got.TitleSource, got.TitleTranslated)
	require.Equal(t, got.BodySource, got.BodyTranslated)
}

func TestRunBoundsStoreSize(t *testing.T) {
	first := candidate("1", "1 час назад")
	second := candidate("2", "1 час назад")
	ex := &fakeExtractor{
		candidates: []extract.Candidate{first, second},
		articles: map[string]extract.Article{
			first.Link:  {BodyText: "one"},
			second.Link: {BodyText: "two"},
		},
	}
	repo := &memRepository{items: []domain.NewsItem{
		{ID: "old1", Link: "https://example.com/old1"},
		{ID: "old2", Link: "https://example.com/old2"},
	}}

	pipe := usecase.NewPipeline(usecase.PipelineDeps{
		Extractor:    ex,
		Translator:   &fakeTranslator{},
		Repository:   repo,
		MaxStoreSize: 3,
		RecentHours:  24,
		FetchTimeout: time.Second,
		FetchDelay:   time.Millisecond,
	})

	_, err := pipe.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, repo.items, 3)
	require.Equal(t, first.Link, repo.items[0].Link)
	require.Equal(t, second.Link, repo.items[1].Link)
	require.Equal(t, "old1", repo.items[2].ID)
}

func TestRunDeduplicatesWithinListing(t *testing.T) {
	dup := candidate("1", "1 час назад")
	ex := &fakeExtractor{
		candidates: []extract.Candidate{dup, dup},
		articles:   map[string]extract.Article{dup.Link: {BodyText: "body"}},
	}
	repo := &memRepository{}
	pipe := newTestPipeline(ex, &fakeTranslator{}, repo)

	result, err := pipe.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, domain.RunResult{Added: 1, Skipped: 1}, result)
	require.Len(t, repo.items, 1)
}
