package kbscrape

import (
	"context"
	"regexp"
)

// SitemapService discovers URLs from website sitemaps.
type SitemapService interface {
	// DiscoverURLs finds all URLs from a site's sitemaps.
	// It first checks robots.txt for sitemap directives, then falls back
	// to common sitemap locations. Sitemap indexes are resolved recursively.
	//
	// The filter can be used to include/exclude URLs by pattern.
	// If filter is nil, all URLs are returned.
	DiscoverURLs(ctx context.Context, baseURL string, filter *URLFilter) ([]string, error)
}

// FeedEntry is one entry parsed from an RSS or Atom feed.
type FeedEntry struct {
	Title       string
	URL         string
	PublishedAt string
}

// FeedService discovers and reads RSS/Atom feeds for a site.
type FeedService interface {
	// DiscoverFeeds probes common feed locations under the base URL and
	// verifies each candidate actually serves a feed. The hints slice
	// carries additional candidates, typically <link rel="alternate">
	// URLs scraped from the seed page.
	DiscoverFeeds(ctx context.Context, baseURL string, hints []string) ([]string, error)

	// FetchEntries fetches a feed and returns its entries.
	FetchEntries(ctx context.Context, feedURL string) ([]FeedEntry, error)
}

// URLSource discovers candidate post URLs for a seed. Implementations hide
// the sitemap/feed/on-page combination behind a single call.
type URLSource interface {
	Discover(ctx context.Context, seedURL string, maxPages int) ([]string, error)
}

// URLFilter specifies patterns for including/excluding URLs.
type URLFilter struct {
	// Include patterns - if set, only URLs matching at least one pattern are included.
	Include []*regexp.Regexp

	// Exclude patterns - URLs matching any pattern are excluded.
	// Exclude is applied after Include.
	Exclude []*regexp.Regexp
}

// Match returns true if the URL passes the filter.
// If the filter is nil, all URLs pass.
func (f *URLFilter) Match(url string) bool {
	if f == nil {
		return true
	}

	// If include patterns exist, URL must match at least one
	if len(f.Include) > 0 {
		matched := false
		for _, re := range f.Include {
			if re.MatchString(url) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	// Check exclude patterns
	for _, re := range f.Exclude {
		if re.MatchString(url) {
			return false
		}
	}

	return true
}
