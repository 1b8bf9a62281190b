package scrape

import (
	"strings"

	"github.com/aline-ai/kbscrape"
)

// GuessContentType classifies an extracted page from its URL, title and raw
// HTML. The signals are checked in a fixed order; pages matching nothing
// default to blog.
func GuessContentType(url, title, html string) string {
	u := strings.ToLower(url)
	t := strings.ToLower(title)
	h := strings.ToLower(html)

	switch {
	case strings.Contains(u, "linkedin.com"):
		return kbscrape.ContentTypeLinkedInPost
	case strings.Contains(u, "reddit.com"):
		return kbscrape.ContentTypeRedditComment
	case strings.Contains(u, "podcast") || strings.Contains(t, "podcast") || strings.Contains(h, "<audio"):
		return kbscrape.ContentTypePodcast
	case strings.Contains(u, "transcript") || strings.Contains(t, "transcript"):
		return kbscrape.ContentTypeCallTranscript
	case strings.Contains(u, "/book") || strings.Contains(t, "chapter"):
		return kbscrape.ContentTypeBook
	default:
		return kbscrape.ContentTypeBlog
	}
}
