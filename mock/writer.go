package mock

import (
	"context"

	"github.com/aline-ai/kbscrape"
)

var _ kbscrape.CollectionWriter = (*CollectionWriter)(nil)

// CollectionWriter is a mock implementation of kbscrape.CollectionWriter.
type CollectionWriter struct {
	WriteCollectionFn func(ctx context.Context, c *kbscrape.Collection) error
}

func (w *CollectionWriter) WriteCollection(ctx context.Context, c *kbscrape.Collection) error {
	return w.WriteCollectionFn(ctx, c)
}
