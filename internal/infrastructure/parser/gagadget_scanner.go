package parser

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"

	"TeleshopNews/internal/enrich"
	"TeleshopNews/internal/extract"
)

const (
	listingCardSelector = "div.l-grid_3"
	titleSelector       = "span.cell-title a"
	imageSelector       = "a.cell-img img"
	dateSelector        = "span.cell-date"
	bodySelector        = "div.b-font-def"

	// Paragraphs shorter than this are navigation crumbs, not article text.
	minParagraphLen = 40
)

// GagadgetScanner extracts phone-news candidates and article bodies from
// gagadget.com pages.
type GagadgetScanner struct {
	client *http.Client
}

// NewGagadgetScanner wires an HTTP client; a 15s-timeout default is applied.
func NewGagadgetScanner(client *http.Client) *GagadgetScanner {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &GagadgetScanner{client: client}
}

// Name identifies the strategy inside the registry.
func (g *GagadgetScanner) Name() string {
	return "gagadget"
}

// List fetches the listing page and returns at most req.MaxCandidates entries
// in page order.
func (g *GagadgetScanner) List(ctx context.Context, req extract.Request) ([]extract.Candidate, error) {
	doc, err := g.fetchDocument(ctx, req.ListURL)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", req.ListURL, err)
	}

	var candidates []extract.Candidate
	doc.Find(listingCardSelector).EachWithBreak(func(i int, card *goquery.Selection) bool {
		if req.MaxCandidates > 0 && len(candidates) >= req.MaxCandidates {
			return false
		}

		titleLink := card.Find(titleSelector).First()
		href, ok := titleLink.Attr("href")
		if !ok || strings.TrimSpace(titleLink.Text()) == "" {
			return true
		}

		candidate := extract.Candidate{
			Title: enrich.Normalize(titleLink.Text()),
			Link:  absoluteURL(req.BaseURL, href),
		}

		if src, ok := card.Find(imageSelector).First().Attr("src"); ok {
			candidate.ImageURL = absoluteURL(req.BaseURL, src)
		}

		candidate.TimeLabel = enrich.Normalize(card.Find(dateSelector).First().Text())
		if candidate.TimeLabel == "" {
			candidate.TimeLabel = "0 часов назад"
		}

		candidates = append(candidates, candidate)
		return true
	})

	return candidates, nil
}

// Fetch loads a single article page and extracts its paragraphs and images.
// When the site's body container is missing the page is handed to readability
// as a fallback before returning an empty article.
func (g *GagadgetScanner) Fetch(ctx context.Context, req extract.Request, link string) (extract.Article, error) {
	doc, err := g.fetchDocument(ctx, link)
	if err != nil {
		return extract.Article{}, fmt.Errorf("article %s: %w", link, err)
	}

	body := doc.Find(bodySelector).First()
	if body.Length() == 0 {
		return g.fallbackExtract(doc, link)
	}

	var paragraphs []string
	body.Find("p").Each(func(i int, p *goquery.Selection) {
		text := enrich.Normalize(p.Text())
		if len(text) > minParagraphLen {
			paragraphs = append(paragraphs, text)
		}
	})

	var images []string
	body.Find("img").Each(func(i int, img *goquery.Selection) {
		src, ok := img.Attr("src")
		if !ok || src == "" {
			return
		}
		if strings.Contains(src, "logo") || strings.Contains(src, "icon") {
			return
		}
		images = append(images, absoluteURL(req.BaseURL, src))
	})

	return extract.Article{
		BodyText:  strings.Join(paragraphs, "\n\n"),
		ImageURLs: images,
	}, nil
}

func (g *GagadgetScanner) fallbackExtract(doc *goquery.Document, link string) (extract.Article, error) {
	html, err := doc.Html()
	if err != nil {
		return extract.Article{}, fmt.Errorf("render document %s: %w", link, err)
	}

	pageURL, err := url.Parse(link)
	if err != nil {
		return extract.Article{}, fmt.Errorf("parse link %s: %w", link, err)
	}

	article, err := readability.FromReader(strings.NewReader(html), pageURL)
	if err != nil {
		return extract.Article{}, fmt.Errorf("readability %s: %w", link, err)
	}

	return extract.Article{BodyText: enrich.Normalize(article.TextContent)}, nil
}

func (g *GagadgetScanner) fetchDocument(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")
	req.Header.Set("Accept-Language", "ru-RU,ru;q=0.9")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request document: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("source returned %s", resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	return doc, nil
}

func absoluteURL(base, ref string) string {
	if ref == "" || strings.HasPrefix(ref, "http") {
		return ref
	}
	return strings.TrimSuffix(base, "/") + "/" + strings.TrimPrefix(ref, "/")
}
