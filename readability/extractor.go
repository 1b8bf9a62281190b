// Package readability provides a kbscrape.Extractor backed by
// go-readability. It serves as the fallback when trafilatura returns
// nothing usable.
package readability

import (
	"strings"

	"github.com/aline-ai/kbscrape"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements kbscrape.Extractor at compile time.
var _ kbscrape.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content. The byline, when
// readability finds one, becomes the author.
func (e *Extractor) Extract(rawHTML string) (*kbscrape.ExtractResult, error) {
	if rawHTML == "" {
		return nil, kbscrape.Errorf(kbscrape.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, err
	}

	return &kbscrape.ExtractResult{
		Title:       article.Title,
		ContentHTML: article.Content,
		Author:      article.Byline,
	}, nil
}
