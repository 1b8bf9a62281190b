package mock

import "github.com/aline-ai/kbscrape"

var (
	_ kbscrape.LinkSelector      = (*LinkSelector)(nil)
	_ kbscrape.PlatformDetector  = (*PlatformDetector)(nil)
	_ kbscrape.ArticleClassifier = (*ArticleClassifier)(nil)
)

// LinkSelector is a mock implementation of kbscrape.LinkSelector.
type LinkSelector struct {
	ExtractLinksFn func(html string, baseURL string) ([]kbscrape.DiscoveredLink, error)
	NameFn         func() string
}

func (s *LinkSelector) ExtractLinks(html string, baseURL string) ([]kbscrape.DiscoveredLink, error) {
	return s.ExtractLinksFn(html, baseURL)
}

func (s *LinkSelector) Name() string {
	if s.NameFn == nil {
		return "mock"
	}
	return s.NameFn()
}

// PlatformDetector is a mock implementation of kbscrape.PlatformDetector.
type PlatformDetector struct {
	DetectFn func(html string) kbscrape.Platform
}

func (d *PlatformDetector) Detect(html string) kbscrape.Platform {
	return d.DetectFn(html)
}

// ArticleClassifier is a mock implementation of kbscrape.ArticleClassifier.
type ArticleClassifier struct {
	LooksLikeArticleFn func(html string) bool
}

func (c *ArticleClassifier) LooksLikeArticle(html string) bool {
	return c.LooksLikeArticleFn(html)
}
