package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/aline-ai/kbscrape"
	"github.com/beevik/etree"
)

// Ensure FeedService implements kbscrape.FeedService.
var _ kbscrape.FeedService = (*FeedService)(nil)

// commonFeedPaths are probed relative to the domain root.
var commonFeedPaths = []string{
	"/feed",
	"/rss",
	"/atom.xml",
	"/index.xml",
	"/blog/feed",
	"/blog/rss.xml",
	"/blog/atom.xml",
}

// relativeFeedPaths are additionally probed relative to the seed's own path,
// so a seed like https://example.com/blog also checks /blog/feed etc.
var relativeFeedPaths = []string{
	"feed",
	"rss",
	"atom.xml",
	"index.xml",
}

// maxFeedProbeBytes bounds how much of a candidate body is read when
// checking for feed markers.
const maxFeedProbeBytes = 64 * 1024

// FeedService discovers and reads RSS/Atom feeds via HTTP.
type FeedService struct {
	client *http.Client
}

// NewFeedService creates a new FeedService with the given HTTP client.
// If client is nil, http.DefaultClient is used.
func NewFeedService(client *http.Client) *FeedService {
	if client == nil {
		client = http.DefaultClient
	}
	return &FeedService{client: client}
}

// DiscoverFeeds probes common feed locations under the base URL plus any
// hint URLs and returns the candidates that actually serve a feed.
// A candidate counts as a feed when its content type mentions XML or its
// body starts a <rss> or <feed> document.
func (s *FeedService) DiscoverFeeds(ctx context.Context, baseURL string, hints []string) ([]string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	root := *base
	root.Path = ""
	root.RawQuery = ""
	root.Fragment = ""

	candidates := make([]string, 0, len(commonFeedPaths)+len(relativeFeedPaths)+len(hints))
	seen := make(map[string]bool)
	add := func(raw string) {
		if raw == "" || seen[raw] {
			return
		}
		seen[raw] = true
		candidates = append(candidates, raw)
	}

	for _, p := range commonFeedPaths {
		add(root.ResolveReference(&url.URL{Path: p}).String())
	}
	if base.Path != "" && base.Path != "/" {
		for _, p := range relativeFeedPaths {
			ref, err := url.Parse(p)
			if err != nil {
				continue
			}
			// Resolve relative to the seed path treated as a directory.
			dir := *base
			if !strings.HasSuffix(dir.Path, "/") {
				dir.Path += "/"
			}
			add(dir.ResolveReference(ref).String())
		}
	}
	for _, h := range hints {
		ref, err := url.Parse(h)
		if err != nil {
			continue
		}
		add(base.ResolveReference(ref).String())
	}

	var feeds []string
	for _, candidate := range candidates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		ok, err := s.isFeed(ctx, candidate)
		if err != nil {
			continue
		}
		if ok {
			feeds = append(feeds, candidate)
		}
	}

	return feeds, nil
}

// isFeed fetches a candidate URL and checks whether it serves a feed.
func (s *FeedService) isFeed(ctx context.Context, candidate string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, candidate, nil)
	if err != nil {
		return false, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, nil
	}

	contentType := strings.ToLower(resp.Header.Get("Content-Type"))
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFeedProbeBytes))
	if err != nil {
		return false, err
	}
	text := string(body)

	if strings.Contains(contentType, "xml") {
		return true, nil
	}
	return strings.Contains(text, "<rss") || strings.Contains(text, "<feed"), nil
}

// FetchEntries fetches a feed and returns its entries. Both RSS 2.0
// (rss > channel > item) and Atom (feed > entry) documents are handled.
func (s *FeedService) FetchEntries(ctx context.Context, feedURL string) ([]kbscrape.FeedEntry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, feedURL)
	}

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(resp.Body); err != nil {
		return nil, fmt.Errorf("parsing feed XML: %w", err)
	}

	root := doc.Root()
	if root == nil {
		return nil, kbscrape.Errorf(kbscrape.EINVALID, "empty feed document: %s", feedURL)
	}

	switch root.Tag {
	case "rss":
		return parseRSS(root), nil
	case "feed":
		return parseAtom(root), nil
	default:
		return nil, kbscrape.Errorf(kbscrape.EINVALID, "unrecognized feed root element %q", root.Tag)
	}
}

// parseRSS extracts entries from an <rss> document.
func parseRSS(root *etree.Element) []kbscrape.FeedEntry {
	var entries []kbscrape.FeedEntry
	for _, channel := range root.SelectElements("channel") {
		for _, item := range channel.SelectElements("item") {
			entry := kbscrape.FeedEntry{
				Title:       elementText(item, "title"),
				URL:         elementText(item, "link"),
				PublishedAt: elementText(item, "pubDate"),
			}
			if entry.URL != "" {
				entries = append(entries, entry)
			}
		}
	}
	return entries
}

// parseAtom extracts entries from an Atom <feed> document.
func parseAtom(root *etree.Element) []kbscrape.FeedEntry {
	var entries []kbscrape.FeedEntry
	for _, item := range root.SelectElements("entry") {
		entry := kbscrape.FeedEntry{
			Title:       elementText(item, "title"),
			PublishedAt: elementText(item, "published"),
		}
		if entry.PublishedAt == "" {
			entry.PublishedAt = elementText(item, "updated")
		}
		// Prefer the alternate link; fall back to the first link element.
		for _, link := range item.SelectElements("link") {
			href := link.SelectAttrValue("href", "")
			if href == "" {
				continue
			}
			rel := link.SelectAttrValue("rel", "alternate")
			if rel == "alternate" {
				entry.URL = href
				break
			}
			if entry.URL == "" {
				entry.URL = href
			}
		}
		if entry.URL != "" {
			entries = append(entries, entry)
		}
	}
	return entries
}

// elementText returns the trimmed text of a child element, or "".
func elementText(parent *etree.Element, tag string) string {
	el := parent.SelectElement(tag)
	if el == nil {
		return ""
	}
	return strings.TrimSpace(el.Text())
}
