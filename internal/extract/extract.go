package extract

import (
	"context"
	"fmt"
)

// Candidate is one listing entry, not yet confirmed new.
type Candidate struct {
	Title     string
	Link      string
	ImageURL  string
	TimeLabel string
}

// Article is the full body content fetched for a single candidate.
type Article struct {
	BodyText  string
	ImageURLs []string
}

// Request carries the site parameters a scanner needs for one run.
type Request struct {
	SiteName      string
	ListURL       string
	BaseURL       string
	MaxCandidates int
	Options       map[string]string
}

// Scanner captures a single site-extraction strategy.
type Scanner interface {
	Name() string
	List(ctx context.Context, req Request) ([]Candidate, error)
	Fetch(ctx context.Context, req Request, link string) (Article, error)
}

// Registry keeps a mapping from scanner names to their implementations.
type Registry struct {
	scanners map[string]Scanner
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{scanners: map[string]Scanner{}}
}

// Register adds or replaces a scanner implementation.
func (r *Registry) Register(scanner Scanner) {
	if r.scanners == nil {
		r.scanners = map[string]Scanner{}
	}
	r.scanners[scanner.Name()] = scanner
}

// Resolve returns a scanner by name or an error if it is absent.
func (r *Registry) Resolve(name string) (Scanner, error) {
	if scanner, ok := r.scanners[name]; ok {
		return scanner, nil
	}
	return nil, fmt.Errorf("scanner %s is not registered", name)
}
