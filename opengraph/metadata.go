// Package opengraph reads page-level metadata from OpenGraph tags. The
// scrape pipeline uses it to fill title, author and date gaps left by the
// extraction strategies.
package opengraph

import (
	"strings"

	"github.com/aline-ai/kbscrape"
	"github.com/dyatlov/go-opengraph/opengraph"
)

// Ensure MetadataExtractor implements kbscrape.MetadataExtractor at compile time.
var _ kbscrape.MetadataExtractor = (*MetadataExtractor)(nil)

// MetadataExtractor parses OpenGraph meta tags from raw HTML.
type MetadataExtractor struct{}

// NewMetadataExtractor creates a new MetadataExtractor.
func NewMetadataExtractor() *MetadataExtractor {
	return &MetadataExtractor{}
}

// ExtractMetadata reads OpenGraph tags from raw HTML. Pages without any
// OpenGraph tags return a zero-valued PageMeta, not an error.
func (e *MetadataExtractor) ExtractMetadata(html string) (*kbscrape.PageMeta, error) {
	if html == "" {
		return nil, kbscrape.Errorf(kbscrape.EINVALID, "empty HTML input")
	}

	og := opengraph.NewOpenGraph()
	if err := og.ProcessHTML(strings.NewReader(html)); err != nil {
		return nil, kbscrape.Errorf(kbscrape.EINVALID, "failed to parse OpenGraph tags: %v", err)
	}

	meta := &kbscrape.PageMeta{
		Title:    og.Title,
		SiteName: og.SiteName,
		Type:     og.Type,
	}

	if og.Article != nil {
		if og.Article.PublishedTime != nil {
			meta.PublishedAt = og.Article.PublishedTime.Format("2006-01-02")
		}
		for _, author := range og.Article.Authors {
			name := strings.TrimSpace(author)
			if name != "" {
				meta.Author = name
				break
			}
		}
	}

	return meta, nil
}
