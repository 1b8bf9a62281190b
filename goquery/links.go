package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/aline-ai/kbscrape"
)

// Ensure ArticleSelector implements kbscrape.LinkSelector at compile time.
var _ kbscrape.LinkSelector = (*ArticleSelector)(nil)

// blogHintPaths mark URL paths likely to lead to posts. Links under these
// paths are crawled and collected with the highest priority.
var blogHintPaths = []string{
	"/blog",
	"/blogs",
	"/articles",
	"/article",
	"/posts",
	"/post",
	"/stories",
	"/learn",
	"/guides",
	"/guide",
	"/topics",
	"/resources",
}

// ArticleSelector extracts prioritized links for on-page post discovery.
// Links under blog-hint paths rank highest, then rel=next pagination, then
// links inside content containers; everything else is a fallback candidate
// whose articleness the crawler verifies separately.
type ArticleSelector struct{}

// NewArticleSelector creates a new ArticleSelector.
func NewArticleSelector() *ArticleSelector {
	return &ArticleSelector{}
}

// Name returns the selector's identifier.
func (s *ArticleSelector) Name() string {
	return "article"
}

// ExtractLinks parses HTML and returns discovered links with priority.
// Links are deduplicated by URL, keeping the highest priority version.
// External links (different host than baseURL) are filtered out.
func (s *ArticleSelector) ExtractLinks(html string, baseURL string) ([]kbscrape.DiscoveredLink, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, kbscrape.Errorf(kbscrape.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, kbscrape.Errorf(kbscrape.EINVALID, "failed to parse HTML: %v", err)
	}

	// Track seen URLs with their index in the result slice for O(1) updates
	seen := make(map[string]int)
	var links []kbscrape.DiscoveredLink

	add := func(resolved, text string, priority kbscrape.LinkPriority, source string) {
		link := kbscrape.DiscoveredLink{
			URL:      resolved,
			Priority: priority,
			Text:     text,
			Source:   source,
		}
		if idx, ok := seen[resolved]; ok {
			if priority > links[idx].Priority {
				links[idx] = link
			}
		} else {
			seen[resolved] = len(links)
			links = append(links, link)
		}
	}

	extract := func(selector string, priority kbscrape.LinkPriority, source string) {
		doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
			href, exists := sel.Attr("href")
			if !exists || href == "" || isNonHTTPLink(href) {
				return
			}

			resolved := resolveURL(base, href)
			if resolved == "" || !isSameHost(base, resolved) {
				return
			}

			// Blog-hint paths outrank whatever container the link sits in
			if priority < kbscrape.PriorityBlogPath && hasBlogHintPath(resolved) {
				priority = kbscrape.PriorityBlogPath
				source = "blog-path"
			}

			add(resolved, strings.TrimSpace(sel.Text()), priority, source)
		})
	}

	// Pagination: <link rel="next"> and anchors marked rel=next
	extract("link[rel='next'], a[rel='next']", kbscrape.PriorityPagination, "pagination")

	// Content containers
	extract("main a[href], article a[href], .content a[href], .post a[href]", kbscrape.PriorityContent, "content")

	// Everything else on the page is a low-priority fallback
	extract("a[href]", kbscrape.PriorityFallback, "fallback")

	return links, nil
}

// FeedLinks returns feed URLs advertised through rel=alternate link tags,
// resolved against baseURL. These feed discovery hints complement the
// well-known feed paths probed separately.
func FeedLinks(html string, baseURL string) []string {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}

	var feeds []string
	seen := make(map[string]bool)
	doc.Find("link[rel='alternate']").Each(func(_ int, sel *goquery.Selection) {
		linkType, _ := sel.Attr("type")
		linkType = strings.ToLower(linkType)
		if !strings.Contains(linkType, "rss") &&
			!strings.Contains(linkType, "atom") &&
			!strings.Contains(linkType, "xml") {
			return
		}
		href, ok := sel.Attr("href")
		if !ok || href == "" {
			return
		}
		ref, err := url.Parse(href)
		if err != nil {
			return
		}
		u := base.ResolveReference(ref).String()
		if !seen[u] {
			seen[u] = true
			feeds = append(feeds, u)
		}
	})
	return feeds
}

// hasBlogHintPath reports whether the URL path starts with a blog-hint segment.
func hasBlogHintPath(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	path := strings.ToLower(u.Path)
	for _, hint := range blogHintPaths {
		if path == hint || strings.HasPrefix(path, hint+"/") {
			return true
		}
	}
	return false
}

// resolveURL resolves href against base, stripping fragments. Returns ""
// for self-referential links.
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(ref)
	resolved.Fragment = "" // Strip fragment for deduplication

	result := resolved.String()
	baseNoFragment := *base
	baseNoFragment.Fragment = ""
	if result == baseNoFragment.String() {
		return ""
	}
	return result
}

// isSameHost checks if the resolved URL has the same host as the base URL.
// This uses exact host matching - subdomains are considered different hosts.
func isSameHost(base *url.URL, resolved string) bool {
	u, err := url.Parse(resolved)
	if err != nil {
		return false
	}
	return u.Host == base.Host
}

// isNonHTTPLink checks if a href is a non-HTTP link that should be skipped.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}
