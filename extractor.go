package kbscrape

import "context"

// ExtractResult holds the content extracted from an HTML page.
type ExtractResult struct {
	// Title is the post title extracted from metadata or headings.
	Title string

	// ContentHTML is the main content as clean HTML.
	// Boilerplate (nav, footer, sidebar, ads) has been removed.
	ContentHTML string

	// Author, PublishedAt and ReadingTime are optional metadata, recorded
	// as found on the page without normalization.
	Author      string
	PublishedAt string
	ReadingTime string
}

// Empty returns true if the result carries no usable content.
func (r *ExtractResult) Empty() bool {
	return r == nil || r.ContentHTML == ""
}

// Extractor extracts main content from HTML pages, removing boilerplate.
type Extractor interface {
	// Extract processes raw HTML and returns the main content.
	// The title comes from page metadata (meta tags, JSON+LD, etc.).
	Extract(html string) (*ExtractResult, error)
}

// Strategy is one extraction method tried against a fetched page. Strategies
// are independent and stateless; the pipeline runs them in a fixed fallback
// order and takes the first non-empty result. A strategy may issue its own
// HTTP requests (e.g. API endpoint probing), hence the context and page URL.
//
// A nil or empty result with a nil error means "nothing found here, try the
// next strategy"; an error means the strategy itself failed, which the
// pipeline treats the same way.
type Strategy interface {
	// Name returns the strategy's identifier (e.g. "static", "api").
	Name() string

	// Extract attempts to pull post content out of the fetched page.
	Extract(ctx context.Context, pageURL string, html string) (*ExtractResult, error)
}

// PageMeta holds page-level metadata read from OpenGraph and similar tags.
// It is used to fill gaps left by the extraction strategies.
type PageMeta struct {
	Title       string
	Author      string
	PublishedAt string
	SiteName    string
	Type        string // og:type, e.g. "article"
}

// MetadataExtractor reads page-level metadata from raw HTML.
type MetadataExtractor interface {
	ExtractMetadata(html string) (*PageMeta, error)
}
