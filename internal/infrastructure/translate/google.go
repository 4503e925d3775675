package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"TeleshopNews/internal/config"
	"TeleshopNews/internal/ports"
)

// Texts at least this long get translated; shorter ones pass through as-is.
const minTranslateLen = 5

// The endpoint rejects oversized queries, so longer texts are chunked.
const maxChunkLen = 4500

// GoogleClient implements ports.Translator against the public Google
// translate web endpoint.
type GoogleClient struct {
	endpoint   string
	sourceLang string
	targetLang string
	httpClient *http.Client
}

var _ ports.Translator = (*GoogleClient)(nil)

// NewGoogleClient builds a client from configuration.
func NewGoogleClient(cfg config.TranslateConfig) *GoogleClient {
	return &GoogleClient{
		endpoint:   cfg.Endpoint,
		sourceLang: cfg.SourceLang,
		targetLang: cfg.TargetLang,
		httpClient: &http.Client{Timeout: cfg.Timeout()},
	}
}

// Translate converts text to the target language, chunking long inputs.
// Errors surface to the caller, whose contract is to keep the source text.
func (c *GoogleClient) Translate(ctx context.Context, text string) (string, error) {
	if c.endpoint == "" {
		return "", fmt.Errorf("translate client misconfigured")
	}

	runes := []rune(text)
	if len(runes) < minTranslateLen {
		return text, nil
	}

	if len(runes) <= maxChunkLen {
		return c.translateChunk(ctx, text)
	}

	var parts []string
	for start := 0; start < len(runes); start += maxChunkLen {
		end := start + maxChunkLen
		if end > len(runes) {
			end = len(runes)
		}
		translated, err := c.translateChunk(ctx, string(runes[start:end]))
		if err != nil {
			return "", err
		}
		parts = append(parts, translated)
	}

	return strings.Join(parts, " "), nil
}

func (c *GoogleClient) translateChunk(ctx context.Context, text string) (string, error) {
	query := url.Values{}
	query.Set("client", "gtx")
	query.Set("sl", c.sourceLang)
	query.Set("tl", c.targetLang)
	query.Set("dt", "t")
	query.Set("q", text)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("new request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request translation: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("translate error %s: %s", resp.Status, strings.TrimSpace(string(payload)))
	}

	translated, err := decodeResponse(resp.Body)
	if err != nil {
		return "", err
	}

	return translated, nil
}

// decodeResponse walks the endpoint's nested-array payload:
// [[["translated","source",…],…],…]. Segment translations are concatenated.
func decodeResponse(body io.Reader) (string, error) {
	var payload []json.RawMessage
	if err := json.NewDecoder(body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decode translation: %w", err)
	}
	if len(payload) == 0 {
		return "", fmt.Errorf("empty translation payload")
	}

	var segments [][]json.RawMessage
	if err := json.Unmarshal(payload[0], &segments); err != nil {
		return "", fmt.Errorf("decode segments: %w", err)
	}

	var b strings.Builder
	for _, segment := range segments {
		if len(segment) == 0 {
			continue
		}
		var part string
		if err := json.Unmarshal(segment[0], &part); err != nil {
			return "", fmt.Errorf("decode segment text: %w", err)
		}
		b.WriteString(part)
	}

	if b.Len() == 0 {
		return "", fmt.Errorf("translation payload had no text")
	}

	return b.String(), nil
}
