package http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/aline-ai/kbscrape"
)

// Ensure APIStrategy implements kbscrape.Strategy at compile time.
var _ kbscrape.Strategy = (*APIStrategy)(nil)

// maxAPIResponseBytes bounds how much of an API response is read.
const maxAPIResponseBytes = 4 * 1024 * 1024

// APIStrategy extracts post content by probing JSON endpoints that some
// blog backends expose alongside their HTML pages:
//
//   - a REST endpoint at {origin}/api/v1/blog/posts/{slug}
//   - the Next.js data endpoint at {origin}/_next/data/latest/blog/{slug}.json
//
// Both return the post body as HTML in a "content" or "body" field together
// with author/reading-time/published-at metadata.
type APIStrategy struct {
	client    *http.Client
	userAgent string
}

// APIOption configures an APIStrategy.
type APIOption func(*APIStrategy)

// WithAPIUserAgent overrides the User-Agent header for API requests.
func WithAPIUserAgent(ua string) APIOption {
	return func(s *APIStrategy) {
		s.userAgent = ua
	}
}

// NewAPIStrategy creates a new APIStrategy.
// If client is nil, http.DefaultClient is used.
func NewAPIStrategy(client *http.Client, opts ...APIOption) *APIStrategy {
	if client == nil {
		client = http.DefaultClient
	}
	s := &APIStrategy{
		client:    client,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the strategy's identifier.
func (s *APIStrategy) Name() string {
	return "api"
}

// Extract probes the API endpoints derived from the page URL. The fetched
// page HTML is not used; this strategy works entirely off the URL.
func (s *APIStrategy) Extract(ctx context.Context, pageURL string, _ string) (*kbscrape.ExtractResult, error) {
	parsed, err := url.Parse(pageURL)
	if err != nil {
		return nil, kbscrape.Errorf(kbscrape.EINVALID, "invalid page URL: %v", err)
	}

	slug := postSlug(parsed.Path)
	if slug == "" {
		return nil, nil
	}

	origin := &url.URL{Scheme: parsed.Scheme, Host: parsed.Host}

	endpoints := []string{
		origin.String() + "/api/v1/blog/posts/" + slug,
		origin.String() + "/_next/data/latest/blog/" + slug + ".json",
	}

	for _, endpoint := range endpoints {
		result, err := s.probe(ctx, endpoint, pageURL)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			continue
		}
		if !result.Empty() {
			return result, nil
		}
	}

	return nil, nil
}

// probe fetches one JSON endpoint and maps its payload to an ExtractResult.
func (s *APIStrategy) probe(ctx context.Context, endpoint, referer string) (*kbscrape.ExtractResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("Accept", "application/json, text/plain, */*")
	req.Header.Set("Referer", referer)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, endpoint)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxAPIResponseBytes))
	if err != nil {
		return nil, err
	}

	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decoding API response: %w", err)
	}

	// Next.js data endpoints nest the post under pageProps.
	post := payload
	if props, ok := payload["pageProps"].(map[string]any); ok {
		if p, ok := props["post"].(map[string]any); ok {
			post = p
		} else if a, ok := props["article"].(map[string]any); ok {
			post = a
		} else {
			post = props
		}
	}

	return PostFromJSON(post), nil
}

// PostFromJSON maps a decoded post object to an ExtractResult. It accepts
// both camelCase and snake_case metadata keys and author given as either a
// string or an object with a name field. Returns nil if the object carries
// no content.
func PostFromJSON(post map[string]any) *kbscrape.ExtractResult {
	content := stringField(post, "content")
	if content == "" {
		content = stringField(post, "body")
	}
	if content == "" {
		return nil
	}

	result := &kbscrape.ExtractResult{
		Title:       stringField(post, "title"),
		ContentHTML: content,
		PublishedAt: firstStringField(post, "publishedAt", "published_at", "date"),
		ReadingTime: firstStringField(post, "readingTime", "reading_time"),
	}

	switch author := post["author"].(type) {
	case string:
		result.Author = author
	case map[string]any:
		result.Author = stringField(author, "name")
	}

	return result
}

// postSlug returns the final path segment, or "" when the path has none.
func postSlug(path string) string {
	path = strings.TrimSuffix(path, "/")
	idx := strings.LastIndex(path, "/")
	if idx < 0 || idx == len(path)-1 {
		return ""
	}
	return path[idx+1:]
}

func stringField(m map[string]any, key string) string {
	v, _ := m[key].(string)
	return v
}

func firstStringField(m map[string]any, keys ...string) string {
	for _, key := range keys {
		if v := stringField(m, key); v != "" {
			return v
		}
	}
	return ""
}
