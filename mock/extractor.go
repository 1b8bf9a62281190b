package mock

import (
	"context"

	"github.com/aline-ai/kbscrape"
)

var (
	_ kbscrape.Extractor         = (*Extractor)(nil)
	_ kbscrape.Strategy          = (*Strategy)(nil)
	_ kbscrape.MetadataExtractor = (*MetadataExtractor)(nil)
)

// Extractor is a mock implementation of kbscrape.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*kbscrape.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*kbscrape.ExtractResult, error) {
	return e.ExtractFn(html)
}

// Strategy is a mock implementation of kbscrape.Strategy.
type Strategy struct {
	NameFn    func() string
	ExtractFn func(ctx context.Context, pageURL string, html string) (*kbscrape.ExtractResult, error)
}

func (s *Strategy) Name() string {
	if s.NameFn == nil {
		return "mock"
	}
	return s.NameFn()
}

func (s *Strategy) Extract(ctx context.Context, pageURL string, html string) (*kbscrape.ExtractResult, error) {
	return s.ExtractFn(ctx, pageURL, html)
}

// MetadataExtractor is a mock implementation of kbscrape.MetadataExtractor.
type MetadataExtractor struct {
	ExtractMetadataFn func(html string) (*kbscrape.PageMeta, error)
}

func (e *MetadataExtractor) ExtractMetadata(html string) (*kbscrape.PageMeta, error) {
	return e.ExtractMetadataFn(html)
}
