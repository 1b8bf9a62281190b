package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/aline-ai/kbscrape"
)

// Ensure SubstackExtractor implements kbscrape.Extractor at compile time.
var _ kbscrape.Extractor = (*SubstackExtractor)(nil)

// substackBodySelectors are tried in order to locate the post body.
var substackBodySelectors = []string{
	"[data-post-body]",
	"article [data-post-body]",
	"article",
	".post-body",
	".available-content",
}

// lazyImageAttrs are checked to repair images that Substack loads lazily.
var lazyImageAttrs = []string{"data-src", "data-image-src", "data-asset-url"}

// minSubstackTextLength filters out empty post-body shells. Substack pages
// keep the body container even when the content is gated or still loading.
const minSubstackTextLength = 40

// SubstackExtractor extracts post content from Substack pages. It knows
// Substack's DOM structure: the post body data attribute, lazy-loaded
// images, and the teaser block shown on paywalled posts.
type SubstackExtractor struct{}

// NewSubstackExtractor creates a new SubstackExtractor.
func NewSubstackExtractor() *SubstackExtractor {
	return &SubstackExtractor{}
}

// Extract processes raw HTML and returns the post content.
// Paywalled teasers ("paid subscribers" marker) return an empty result so
// truncated previews never end up in the output.
func (e *SubstackExtractor) Extract(rawHTML string) (*kbscrape.ExtractResult, error) {
	if rawHTML == "" {
		return nil, kbscrape.Errorf(kbscrape.EINVALID, "empty HTML input")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, kbscrape.Errorf(kbscrape.EINVALID, "failed to parse HTML: %v", err)
	}

	if isPaywalled(doc) {
		return nil, nil
	}

	repairLazyImages(doc)

	var node *goquery.Selection
	for _, selector := range substackBodySelectors {
		sel := doc.Find(selector).First()
		if sel.Length() > 0 {
			node = sel
			break
		}
	}
	if node == nil {
		return nil, nil
	}
	if len(strings.TrimSpace(node.Text())) < minSubstackTextLength {
		return nil, nil
	}

	contentHTML, err := goquery.OuterHtml(node)
	if err != nil {
		return nil, err
	}

	title := ""
	if h1 := doc.Find("h1").First(); h1.Length() > 0 {
		title = strings.TrimSpace(h1.Text())
	}

	return &kbscrape.ExtractResult{
		Title:       title,
		ContentHTML: contentHTML,
	}, nil
}

// isPaywalled checks for the subscriber-only teaser marker.
func isPaywalled(doc *goquery.Document) bool {
	paywalled := false
	doc.Find("*").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if s.Children().Length() > 0 {
			return true
		}
		if strings.Contains(strings.ToLower(s.Text()), "paid subscribers") {
			paywalled = true
			return false
		}
		return true
	})
	return paywalled
}

// repairLazyImages copies lazy-load attributes into src so images survive
// the markdown conversion.
func repairLazyImages(doc *goquery.Document) {
	doc.Find("img").Each(func(_ int, img *goquery.Selection) {
		if src, ok := img.Attr("src"); ok && src != "" {
			return
		}
		for _, attr := range lazyImageAttrs {
			if v, ok := img.Attr(attr); ok && v != "" {
				img.SetAttr("src", v)
				return
			}
		}
	})
}
