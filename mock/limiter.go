package mock

import (
	"context"

	"github.com/aline-ai/kbscrape"
)

var _ kbscrape.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of kbscrape.DomainLimiter.
// A nil WaitFn never blocks.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	if d.WaitFn == nil {
		return nil
	}
	return d.WaitFn(ctx, domain)
}
