package mock

import "github.com/aline-ai/kbscrape"

var _ kbscrape.Converter = (*Converter)(nil)

// Converter is a mock implementation of kbscrape.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
