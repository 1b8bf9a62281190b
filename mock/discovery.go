package mock

import (
	"context"

	"github.com/aline-ai/kbscrape"
)

var (
	_ kbscrape.SitemapService = (*SitemapService)(nil)
	_ kbscrape.FeedService    = (*FeedService)(nil)
	_ kbscrape.URLSource      = (*URLSource)(nil)
)

// SitemapService is a mock implementation of kbscrape.SitemapService.
type SitemapService struct {
	DiscoverURLsFn func(ctx context.Context, baseURL string, filter *kbscrape.URLFilter) ([]string, error)
}

func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *kbscrape.URLFilter) ([]string, error) {
	return s.DiscoverURLsFn(ctx, baseURL, filter)
}

// FeedService is a mock implementation of kbscrape.FeedService.
type FeedService struct {
	DiscoverFeedsFn func(ctx context.Context, baseURL string, hints []string) ([]string, error)
	FetchEntriesFn  func(ctx context.Context, feedURL string) ([]kbscrape.FeedEntry, error)
}

func (s *FeedService) DiscoverFeeds(ctx context.Context, baseURL string, hints []string) ([]string, error) {
	return s.DiscoverFeedsFn(ctx, baseURL, hints)
}

func (s *FeedService) FetchEntries(ctx context.Context, feedURL string) ([]kbscrape.FeedEntry, error) {
	return s.FetchEntriesFn(ctx, feedURL)
}

// URLSource is a mock implementation of kbscrape.URLSource.
type URLSource struct {
	DiscoverFn func(ctx context.Context, seedURL string, maxPages int) ([]string, error)
}

func (s *URLSource) Discover(ctx context.Context, seedURL string, maxPages int) ([]string, error) {
	return s.DiscoverFn(ctx, seedURL, maxPages)
}
