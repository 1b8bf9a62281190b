package scrape

import (
	"context"
	"net/url"
	"strings"

	"github.com/aline-ai/kbscrape"
)

// Compile-time interface verification.
var (
	_ kbscrape.Strategy = (*ExtractorStrategy)(nil)
	_ kbscrape.Strategy = (*PlatformStrategy)(nil)
	_ kbscrape.Strategy = (*RenderedStrategy)(nil)
)

// ExtractorStrategy adapts a chain of Extractors into a Strategy. Extractors
// are tried in order and the first non-empty result wins; extractor errors
// fall through to the next extractor.
type ExtractorStrategy struct {
	name       string
	extractors []kbscrape.Extractor
}

// NewExtractorStrategy creates a Strategy from one or more Extractors.
func NewExtractorStrategy(name string, extractors ...kbscrape.Extractor) *ExtractorStrategy {
	return &ExtractorStrategy{name: name, extractors: extractors}
}

// Name returns the strategy's identifier.
func (s *ExtractorStrategy) Name() string { return s.name }

// Extract runs the extractor chain against the page HTML.
func (s *ExtractorStrategy) Extract(_ context.Context, _ string, html string) (*kbscrape.ExtractResult, error) {
	for _, e := range s.extractors {
		result, err := e.Extract(html)
		if err != nil {
			continue
		}
		if !result.Empty() {
			return result, nil
		}
	}
	return nil, nil
}

// PlatformStrategy runs an extractor only on pages belonging to a specific
// platform, identified by host suffix or by the platform detector.
type PlatformStrategy struct {
	name       string
	platform   kbscrape.Platform
	hostSuffix string
	detector   kbscrape.PlatformDetector
	inner      kbscrape.Extractor
}

// NewPlatformStrategy creates a platform-gated Strategy. The hostSuffix
// short-circuits detection for platform-hosted blogs (e.g. "substack.com").
func NewPlatformStrategy(name string, platform kbscrape.Platform, hostSuffix string, detector kbscrape.PlatformDetector, inner kbscrape.Extractor) *PlatformStrategy {
	return &PlatformStrategy{
		name:       name,
		platform:   platform,
		hostSuffix: hostSuffix,
		detector:   detector,
		inner:      inner,
	}
}

// Name returns the strategy's identifier.
func (s *PlatformStrategy) Name() string { return s.name }

// Extract runs the inner extractor when the page matches the platform.
func (s *PlatformStrategy) Extract(_ context.Context, pageURL string, html string) (*kbscrape.ExtractResult, error) {
	if !s.matches(pageURL, html) {
		return nil, nil
	}
	return s.inner.Extract(html)
}

func (s *PlatformStrategy) matches(pageURL string, html string) bool {
	if s.hostSuffix != "" {
		if u, err := url.Parse(pageURL); err == nil {
			if strings.HasSuffix(strings.ToLower(u.Hostname()), s.hostSuffix) {
				return true
			}
		}
	}
	return s.detector != nil && s.detector.Detect(html) == s.platform
}

// RenderedStrategy refetches the page through a rendering fetcher (headless
// Chrome) and reruns inner strategies on the rendered DOM. It sits last in
// the chain and only fires for pages that look JavaScript-rendered.
type RenderedStrategy struct {
	fetcher kbscrape.Fetcher
	inner   []kbscrape.Strategy
}

// NewRenderedStrategy creates a RenderedStrategy. The fetcher must produce
// rendered HTML; the inner strategies are rerun against it.
func NewRenderedStrategy(fetcher kbscrape.Fetcher, inner ...kbscrape.Strategy) *RenderedStrategy {
	return &RenderedStrategy{fetcher: fetcher, inner: inner}
}

// Name returns the strategy's identifier.
func (s *RenderedStrategy) Name() string { return "rendered" }

// Extract refetches pageURL with rendering and reruns the inner strategies.
// Pages that already look server-rendered are skipped.
func (s *RenderedStrategy) Extract(ctx context.Context, pageURL string, html string) (*kbscrape.ExtractResult, error) {
	if !looksClientRendered(html) {
		return nil, nil
	}

	rendered, err := s.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	for _, strategy := range s.inner {
		result, err := strategy.Extract(ctx, pageURL, rendered)
		if err != nil {
			continue
		}
		if !result.Empty() {
			return result, nil
		}
	}
	return nil, nil
}

// looksClientRendered reports whether the static HTML looks like an app
// shell waiting for JavaScript: a framework mount point with almost no text.
func looksClientRendered(html string) bool {
	lower := strings.ToLower(html)
	hasMount := strings.Contains(lower, `id="__next"`) ||
		strings.Contains(lower, `id="root"`) ||
		strings.Contains(lower, `id="app"`)
	if !hasMount {
		return false
	}
	// Rough text check: strip tags would be overkill, the shell pages the
	// original handled were a few KB of script references.
	return len(html) < 50_000
}
