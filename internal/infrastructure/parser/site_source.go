package parser

import (
	"context"
	"fmt"
	"log/slog"

	"TeleshopNews/internal/config"
	"TeleshopNews/internal/extract"
	"TeleshopNews/internal/ports"
)

// SiteSource implements ports.Extractor via a registered scanner strategy,
// resolved from the configured source.
type SiteSource struct {
	registry *extract.Registry
	source   config.SourceConfig
	logger   *slog.Logger
}

var _ ports.Extractor = (*SiteSource)(nil)

// NewSiteSource wires the scanner registry with the config-defined source.
func NewSiteSource(reg *extract.Registry, source config.SourceConfig, log *slog.Logger) *SiteSource {
	return &SiteSource{
		registry: reg,
		source:   source,
		logger:   log,
	}
}

// ListCandidates executes the source's scanner against its listing page.
func (s *SiteSource) ListCandidates(ctx context.Context) ([]extract.Candidate, error) {
	scanner, err := s.resolve()
	if err != nil {
		return nil, err
	}

	candidates, err := scanner.List(ctx, s.request())
	if err != nil {
		return nil, fmt.Errorf("site %s: %w", s.source.Name, err)
	}

	s.debug("listing scanned", "site", s.source.Name, "candidates", len(candidates))
	return candidates, nil
}

// FetchArticle loads one article page through the source's scanner.
func (s *SiteSource) FetchArticle(ctx context.Context, link string) (extract.Article, error) {
	scanner, err := s.resolve()
	if err != nil {
		return extract.Article{}, err
	}

	article, err := scanner.Fetch(ctx, s.request(), link)
	if err != nil {
		return extract.Article{}, fmt.Errorf("site %s: %w", s.source.Name, err)
	}

	return article, nil
}

func (s *SiteSource) resolve() (extract.Scanner, error) {
	if s.registry == nil {
		return nil, fmt.Errorf("scanner registry is not configured")
	}
	scanner, err := s.registry.Resolve(s.source.Scanner)
	if err != nil {
		return nil, fmt.Errorf("site %s: %w", s.source.Name, err)
	}
	return scanner, nil
}

func (s *SiteSource) request() extract.Request {
	return extract.Request{
		SiteName:      s.source.Name,
		ListURL:       s.source.ListURL,
		BaseURL:       s.source.BaseURL,
		MaxCandidates: s.source.MaxCandidates,
		Options:       s.source.Options,
	}
}

func (s *SiteSource) debug(msg string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}
