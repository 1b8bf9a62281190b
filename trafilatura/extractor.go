// Package trafilatura provides a kbscrape.Extractor backed by
// go-trafilatura's boilerplate-removal algorithm. It is the first extractor
// the static strategy tries on fetched pages.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/aline-ai/kbscrape"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements kbscrape.Extractor at compile time.
var _ kbscrape.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content along with the
// title, author and publication date trafilatura recovers from metadata.
func (e *Extractor) Extract(rawHTML string) (*kbscrape.ExtractResult, error) {
	if rawHTML == "" {
		return nil, kbscrape.Errorf(kbscrape.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, err
	}

	var contentHTML string
	if result.ContentNode != nil {
		contentHTML, err = renderNode(result.ContentNode)
		if err != nil {
			return nil, err
		}
	}

	extracted := &kbscrape.ExtractResult{
		Title:       result.Metadata.Title,
		ContentHTML: contentHTML,
		Author:      result.Metadata.Author,
	}
	if !result.Metadata.Date.IsZero() {
		extracted.PublishedAt = result.Metadata.Date.Format("2006-01-02")
	}
	return extracted, nil
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
