package scrape

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"github.com/aline-ai/kbscrape"
	"github.com/cespare/xxhash/v2"
	"golang.org/x/sync/errgroup"
)

// DefaultMinContentLength is the minimum Markdown length for a page to
// produce a record. Shorter extractions are almost always navigation
// fragments or teasers.
const DefaultMinContentLength = 80

// Scraper orchestrates a scrape run: discover candidate URLs, fetch each
// page concurrently, run the extraction strategy chain, and assemble the
// deduplicated output collection.
type Scraper struct {
	Source      kbscrape.URLSource
	Fetcher     kbscrape.Fetcher
	Strategies  []kbscrape.Strategy
	Converter   kbscrape.Converter
	Metadata    kbscrape.MetadataExtractor
	RateLimiter kbscrape.DomainLimiter
	Concurrency int
	RetryDelays []time.Duration

	// MinContentLength overrides DefaultMinContentLength when positive.
	MinContentLength int
}

// Result holds the outcome of a scrape run.
type Result struct {
	Saved   int // pages that produced a record
	Skipped int // pages fetched but yielding no usable content
	Failed  int // pages that could not be fetched
	Bytes   int // total Markdown bytes saved
}

// ProgressEvent reports progress during a scrape run.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting scrape progress.
type ProgressFunc func(event ProgressEvent)

// pageResult holds the outcome of processing a single URL.
type pageResult struct {
	position int
	url      string
	item     *kbscrape.Item
	hash     uint64
	err      error
}

// Scrape runs the full pipeline for a seed URL. The progress callback, if
// provided, receives events as pages complete. Page-level failures are
// counted, never fatal; the error return covers discovery and setup only.
func (s *Scraper) Scrape(ctx context.Context, seedURL string, maxPages int, progress ProgressFunc) (*kbscrape.Collection, *Result, error) {
	seed, err := NormalizeURL(seedURL)
	if err != nil {
		return nil, nil, err
	}

	urls, err := s.Source.Discover(ctx, seed, maxPages)
	if err != nil {
		return nil, nil, fmt.Errorf("url discovery: %w", err)
	}
	if len(urls) > maxPages {
		urls = urls[:maxPages]
	}

	total := len(urls)
	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: total})
	}

	concurrency := s.Concurrency
	if concurrency <= 0 {
		concurrency = 10
	}

	resultCh := make(chan pageResult, total)
	var completed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, u := range urls {
			i, u := i, u
			g.Go(func() error {
				resultCh <- s.processURL(gctx, i, u)
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	results := make([]pageResult, total)
	var result Result
	for r := range resultCh {
		completed.Add(1)
		results[r.position] = r

		if r.err != nil {
			result.Failed++
			if progress != nil {
				progress(ProgressEvent{
					Type:      ProgressFailed,
					Completed: int(completed.Load()),
					Total:     total,
					URL:       r.url,
					Error:     r.err,
				})
			}
			continue
		}
		if progress != nil {
			progress(ProgressEvent{
				Type:      ProgressCompleted,
				Completed: int(completed.Load()),
				Total:     total,
				URL:       r.url,
			})
		}
	}

	// Assemble in discovery order, deduplicating by source URL and by
	// content hash so mirrored pages produce one record.
	seenURL := make(map[string]bool)
	seenHash := make(map[uint64]bool)
	collection := &kbscrape.Collection{Site: seed, Items: []*kbscrape.Item{}}
	for _, r := range results {
		if r.err != nil || r.item == nil {
			if r.err == nil && r.item == nil {
				result.Skipped++
			}
			continue
		}
		if seenURL[r.item.SourceURL] || seenHash[r.hash] {
			result.Skipped++
			continue
		}
		seenURL[r.item.SourceURL] = true
		seenHash[r.hash] = true
		collection.Items = append(collection.Items, r.item)
		result.Saved++
		result.Bytes += len(r.item.Content)
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	}

	return collection, &result, nil
}

// processURL fetches one page and runs the strategy chain. A nil item with
// a nil error means the page yielded nothing usable.
func (s *Scraper) processURL(ctx context.Context, position int, pageURL string) pageResult {
	result := pageResult{position: position, url: pageURL}

	if s.RateLimiter != nil {
		u, err := url.Parse(pageURL)
		if err != nil {
			result.err = err
			return result
		}
		if err := s.RateLimiter.Wait(ctx, u.Host); err != nil {
			result.err = err
			return result
		}
	}

	delays := s.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	html, err := FetchWithRetryDelays(ctx, pageURL, s.Fetcher.Fetch, nil, delays)
	if err != nil {
		result.err = err
		return result
	}

	extracted := s.runStrategies(ctx, pageURL, html)
	if extracted.Empty() {
		return result
	}

	markdown, err := s.Converter.Convert(extracted.ContentHTML)
	if err != nil {
		return result
	}
	markdown = strings.TrimSpace(markdown)

	minLen := s.MinContentLength
	if minLen <= 0 {
		minLen = DefaultMinContentLength
	}
	if len(markdown) < minLen {
		return result
	}

	item := &kbscrape.Item{
		Title:       extracted.Title,
		Content:     markdown,
		SourceURL:   pageURL,
		Author:      extracted.Author,
		PublishedAt: extracted.PublishedAt,
		ReadingTime: extracted.ReadingTime,
	}

	// OpenGraph tags fill whatever the strategy left blank.
	if s.Metadata != nil {
		if meta, err := s.Metadata.ExtractMetadata(html); err == nil {
			if item.Title == "" {
				item.Title = meta.Title
			}
			if item.Author == "" {
				item.Author = meta.Author
			}
			if item.PublishedAt == "" {
				item.PublishedAt = meta.PublishedAt
			}
		}
	}
	if item.Title == "" {
		item.Title = pageTitle(html)
	}
	if item.Title == "" {
		item.Title = pageURL
	}

	item.ContentType = GuessContentType(pageURL, item.Title, html)

	result.item = item
	result.hash = xxhash.Sum64String(markdown)
	return result
}

// runStrategies tries each strategy in order and returns the first
// non-empty result. Strategy errors fall through to the next strategy.
func (s *Scraper) runStrategies(ctx context.Context, pageURL, html string) *kbscrape.ExtractResult {
	for _, strategy := range s.Strategies {
		extracted, err := strategy.Extract(ctx, pageURL, html)
		if err != nil {
			continue
		}
		if !extracted.Empty() {
			return extracted
		}
	}
	return nil
}

// pageTitle pulls the document title tag as a last-resort item title.
func pageTitle(html string) string {
	lower := strings.ToLower(html)
	start := strings.Index(lower, "<title")
	if start == -1 {
		return ""
	}
	open := strings.Index(lower[start:], ">")
	if open == -1 {
		return ""
	}
	rest := html[start+open+1:]
	end := strings.Index(strings.ToLower(rest), "</title>")
	if end == -1 {
		return ""
	}
	return strings.TrimSpace(rest[:end])
}
