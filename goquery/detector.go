// Package goquery provides HTML-parsing implementations for kbscrape:
// blog platform detection, platform-specific content extraction, embedded
// framework data extraction, and on-page link discovery.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/aline-ai/kbscrape"
)

// Ensure Detector implements kbscrape.PlatformDetector at compile time.
var _ kbscrape.PlatformDetector = (*Detector)(nil)

// Detector identifies blog platforms from HTML content.
// It checks meta generator tags first, then platform-specific structural
// markers unique to each publishing platform.
type Detector struct{}

// NewDetector creates a new Detector.
func NewDetector() *Detector {
	return &Detector{}
}

// Detect analyzes HTML and returns the identified platform.
// Returns PlatformUnknown if the platform cannot be determined.
func (d *Detector) Detect(html string) kbscrape.Platform {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return kbscrape.PlatformUnknown
	}

	// Meta generator tags are the most reliable signal when present
	if platform := d.detectFromMetaGenerator(doc); platform != kbscrape.PlatformUnknown {
		return platform
	}

	// Substack markers: post body data attribute, subscription widget classes
	if d.hasSelector(doc, "[data-post-body]") ||
		d.hasSelector(doc, ".available-content") ||
		d.hasSelector(doc, ".subscription-widget-wrap") {
		return kbscrape.PlatformSubstack
	}

	// Next.js embeds its page state in a __NEXT_DATA__ script tag
	if d.hasSelector(doc, "script#__NEXT_DATA__") || d.hasSelector(doc, "#__next") {
		return kbscrape.PlatformNextJS
	}

	// Medium markers
	if d.hasSelector(doc, "meta[property='al:android:app_name'][content='Medium']") ||
		d.hasSelector(doc, ".meteredContent") {
		return kbscrape.PlatformMedium
	}

	// Ghost marks content with gh- prefixed classes
	if d.hasSelector(doc, ".gh-content") || d.hasSelector(doc, ".gh-article") {
		return kbscrape.PlatformGhost
	}

	// WordPress themes keep wp- body classes even without a generator tag
	if d.hasWordPressClasses(doc) {
		return kbscrape.PlatformWordPress
	}

	return kbscrape.PlatformUnknown
}

// detectFromMetaGenerator checks the meta generator tag for platform identification.
func (d *Detector) detectFromMetaGenerator(doc *goquery.Document) kbscrape.Platform {
	generator := ""
	doc.Find("meta[name='generator']").Each(func(_ int, s *goquery.Selection) {
		if content, exists := s.Attr("content"); exists {
			generator = strings.ToLower(content)
		}
	})

	if generator == "" {
		return kbscrape.PlatformUnknown
	}

	switch {
	case strings.Contains(generator, "substack"):
		return kbscrape.PlatformSubstack
	case strings.Contains(generator, "ghost"):
		return kbscrape.PlatformGhost
	case strings.Contains(generator, "wordpress"):
		return kbscrape.PlatformWordPress
	case strings.Contains(generator, "medium"):
		return kbscrape.PlatformMedium
	case strings.Contains(generator, "hugo"):
		return kbscrape.PlatformHugo
	case strings.Contains(generator, "jekyll"):
		return kbscrape.PlatformJekyll
	case strings.Contains(generator, "next.js"):
		return kbscrape.PlatformNextJS
	}

	return kbscrape.PlatformUnknown
}

// hasSelector checks if the document contains at least one element matching the selector.
func (d *Detector) hasSelector(doc *goquery.Document, selector string) bool {
	return doc.Find(selector).Length() > 0
}

// hasWordPressClasses checks for wp- prefixed classes on the body element.
func (d *Detector) hasWordPressClasses(doc *goquery.Document) bool {
	bodyClass := ""
	doc.Find("body").Each(func(_ int, s *goquery.Selection) {
		if class, exists := s.Attr("class"); exists {
			bodyClass = class
		}
	})

	if bodyClass == "" {
		return false
	}

	for _, c := range strings.Fields(bodyClass) {
		if strings.HasPrefix(c, "wp-") {
			return true
		}
	}
	return false
}

// IsSubstack reports whether a page belongs to Substack, either by host
// suffix or by its meta generator tag.
func IsSubstack(html string, host string) bool {
	if strings.HasSuffix(strings.ToLower(host), "substack.com") {
		return true
	}
	return NewDetector().Detect(html) == kbscrape.PlatformSubstack
}
