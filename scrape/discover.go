package scrape

import (
	"context"
	"net/url"
	"time"

	"github.com/aline-ai/kbscrape"
)

// Frontier sizing for on-page discovery.
const (
	frontierExpectedURLs      = 10000
	frontierFalsePositiveRate = 0.01
)

// Compile-time interface verification.
var _ kbscrape.URLSource = (*Source)(nil)

// Source merges the three discovery channels into one candidate list:
// sitemaps (robots.txt directives plus well-known locations), RSS/Atom
// feeds, and an on-page crawl with a priority frontier. Results are
// deduplicated and scope-filtered.
type Source struct {
	Fetcher     kbscrape.Fetcher
	Sitemaps    kbscrape.SitemapService
	Feeds       kbscrape.FeedService
	Links       kbscrape.LinkSelector
	Classifier  kbscrape.ArticleClassifier
	RateLimiter kbscrape.DomainLimiter
	RetryDelays []time.Duration

	// FeedHints extracts rel=alternate feed URLs from the seed page HTML.
	// Optional; without it feed discovery relies on well-known paths only.
	FeedHints func(html string, baseURL string) []string
}

// Discover returns candidate post URLs for the seed, at most one crawl
// budget's worth per channel. Discovery is best effort: a channel that
// fails is skipped, never fatal.
func (s *Source) Discover(ctx context.Context, seedURL string, maxPages int) ([]string, error) {
	seed, err := NormalizeURL(seedURL)
	if err != nil {
		return nil, err
	}
	scope, err := NewScope(seed)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var candidates []string
	add := func(raw string) {
		normalized, err := NormalizeURL(raw)
		if err != nil || !scope.Contains(normalized) {
			return
		}
		if !seen[normalized] {
			seen[normalized] = true
			candidates = append(candidates, normalized)
		}
	}

	// Sitemaps
	if s.Sitemaps != nil {
		if urls, err := s.Sitemaps.DiscoverURLs(ctx, seed, nil); err == nil {
			for _, u := range urls {
				add(u)
			}
		}
	}

	// Seed page HTML feeds both the feed hints and the on-page crawl.
	seedHTML := s.fetch(ctx, seed)

	// Feeds
	if s.Feeds != nil {
		var hints []string
		if s.FeedHints != nil && seedHTML != "" {
			hints = s.FeedHints(seedHTML, seed)
		}
		if feeds, err := s.Feeds.DiscoverFeeds(ctx, seed, hints); err == nil {
			for _, feedURL := range feeds {
				entries, err := s.Feeds.FetchEntries(ctx, feedURL)
				if err != nil {
					continue
				}
				for _, entry := range entries {
					add(entry.URL)
				}
			}
		}
	}

	// On-page crawl
	if s.Links != nil {
		s.crawl(ctx, seed, seedHTML, scope, maxPages, add)

		// Low coverage on a root seed gets a deeper second pass. Seeds
		// with a path restriction are never broadened beyond it.
		if len(candidates) < maxPages/5 && scope.PathPrefix() == "" {
			s.crawl(ctx, seed, seedHTML, scope.Broadened(), 2*maxPages, add)
		}
	}

	return candidates, nil
}

// crawl runs a BFS from start, following in-scope links by priority until
// the fetch budget is spent. Pages are collected when they sit under a
// blog-hint path or the classifier judges them article-like.
func (s *Source) crawl(ctx context.Context, start, startHTML string, scope *Scope, budget int, add func(string)) {
	frontier := NewFrontier(frontierExpectedURLs, frontierFalsePositiveRate)
	frontier.Push(kbscrape.DiscoveredLink{URL: start, Priority: kbscrape.PriorityBlogPath})

	fetched := 0
	for fetched < budget {
		if ctx.Err() != nil {
			return
		}

		link, ok := frontier.Pop()
		if !ok {
			return
		}

		var html string
		if link.URL == start && startHTML != "" {
			html = startHTML
		} else {
			html = s.fetch(ctx, link.URL)
		}
		fetched++
		if html == "" {
			continue
		}

		links, err := s.Links.ExtractLinks(html, link.URL)
		if err == nil {
			for _, discovered := range links {
				if discovered.Priority <= kbscrape.PriorityIgnore {
					continue
				}
				if scope.Contains(discovered.URL) {
					frontier.Push(discovered)
				}
			}
		}

		if link.URL == start {
			continue
		}
		if link.Priority >= kbscrape.PriorityBlogPath ||
			s.Classifier == nil || s.Classifier.LooksLikeArticle(html) {
			add(link.URL)
		}
	}
}

// fetch retrieves a URL with rate limiting and retry, returning "" on failure.
func (s *Source) fetch(ctx context.Context, rawURL string) string {
	if s.RateLimiter != nil {
		u, err := url.Parse(rawURL)
		if err != nil {
			return ""
		}
		if err := s.RateLimiter.Wait(ctx, u.Host); err != nil {
			return ""
		}
	}

	delays := s.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	html, err := FetchWithRetryDelays(ctx, rawURL, s.Fetcher.Fetch, nil, delays)
	if err != nil {
		return ""
	}
	return html
}
