package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/aline-ai/kbscrape"
)

// Ensure the decorators implement their interfaces.
var (
	_ kbscrape.SitemapService = (*LoggingSitemapService)(nil)
	_ kbscrape.FeedService    = (*LoggingFeedService)(nil)
	_ kbscrape.URLSource      = (*LoggingURLSource)(nil)
)

// LoggingSitemapService wraps a SitemapService with debug logging.
type LoggingSitemapService struct {
	next   kbscrape.SitemapService
	logger *slog.Logger
}

// NewLoggingSitemapService creates a new LoggingSitemapService.
func NewLoggingSitemapService(next kbscrape.SitemapService, logger *slog.Logger) *LoggingSitemapService {
	return &LoggingSitemapService{next: next, logger: logger}
}

// DiscoverURLs delegates to the wrapped service and logs the operation.
func (s *LoggingSitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *kbscrape.URLFilter) (urls []string, err error) {
	defer func(begin time.Time) {
		s.logger.Info("sitemap discovery",
			"url", baseURL,
			"count", len(urls),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DiscoverURLs(ctx, baseURL, filter)
}

// LoggingFeedService wraps a FeedService with debug logging.
type LoggingFeedService struct {
	next   kbscrape.FeedService
	logger *slog.Logger
}

// NewLoggingFeedService creates a new LoggingFeedService.
func NewLoggingFeedService(next kbscrape.FeedService, logger *slog.Logger) *LoggingFeedService {
	return &LoggingFeedService{next: next, logger: logger}
}

// DiscoverFeeds delegates to the wrapped service and logs the operation.
func (s *LoggingFeedService) DiscoverFeeds(ctx context.Context, baseURL string, hints []string) (feeds []string, err error) {
	defer func(begin time.Time) {
		s.logger.Info("feed discovery",
			"url", baseURL,
			"hints", len(hints),
			"count", len(feeds),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DiscoverFeeds(ctx, baseURL, hints)
}

// FetchEntries delegates to the wrapped service and logs the operation.
func (s *LoggingFeedService) FetchEntries(ctx context.Context, feedURL string) (entries []kbscrape.FeedEntry, err error) {
	defer func(begin time.Time) {
		s.logger.Info("feed entries",
			"url", feedURL,
			"count", len(entries),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FetchEntries(ctx, feedURL)
}

// LoggingURLSource wraps a URLSource with debug logging.
type LoggingURLSource struct {
	next   kbscrape.URLSource
	logger *slog.Logger
}

// NewLoggingURLSource creates a new LoggingURLSource.
func NewLoggingURLSource(next kbscrape.URLSource, logger *slog.Logger) *LoggingURLSource {
	return &LoggingURLSource{next: next, logger: logger}
}

// Discover delegates to the wrapped source and logs the operation.
func (s *LoggingURLSource) Discover(ctx context.Context, seedURL string, maxPages int) (urls []string, err error) {
	defer func(begin time.Time) {
		s.logger.Info("url discovery",
			"seed", seedURL,
			"max_pages", maxPages,
			"count", len(urls),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Discover(ctx, seedURL, maxPages)
}
