package goquery

import (
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/aline-ai/kbscrape"
)

// Ensure NextDataExtractor implements kbscrape.Extractor at compile time.
var _ kbscrape.Extractor = (*NextDataExtractor)(nil)

// NextDataExtractor extracts post content from the __NEXT_DATA__ script tag
// that Next.js embeds into server-rendered pages. The page state under
// props.pageProps carries the post object with its content and metadata.
type NextDataExtractor struct{}

// NewNextDataExtractor creates a new NextDataExtractor.
func NewNextDataExtractor() *NextDataExtractor {
	return &NextDataExtractor{}
}

// Extract processes raw HTML and returns the post content found in the
// embedded page state. Pages without a usable __NEXT_DATA__ block return
// an empty result.
func (e *NextDataExtractor) Extract(rawHTML string) (*kbscrape.ExtractResult, error) {
	if rawHTML == "" {
		return nil, kbscrape.Errorf(kbscrape.EINVALID, "empty HTML input")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, kbscrape.Errorf(kbscrape.EINVALID, "failed to parse HTML: %v", err)
	}

	script := doc.Find("script#__NEXT_DATA__").First()
	if script.Length() == 0 {
		return nil, nil
	}

	var data struct {
		Props struct {
			PageProps map[string]any `json:"pageProps"`
		} `json:"props"`
	}
	if err := json.Unmarshal([]byte(script.Text()), &data); err != nil {
		// Malformed embedded state is a page quirk, not a failure.
		return nil, nil
	}

	props := data.Props.PageProps
	if props == nil {
		return nil, nil
	}

	post := props
	if p, ok := props["post"].(map[string]any); ok {
		post = p
	} else if a, ok := props["article"].(map[string]any); ok {
		post = a
	}

	return postFromState(post), nil
}

// postFromState maps the embedded post object to an ExtractResult.
func postFromState(post map[string]any) *kbscrape.ExtractResult {
	content, _ := post["content"].(string)
	if content == "" {
		content, _ = post["body"].(string)
	}
	if content == "" {
		return nil
	}

	result := &kbscrape.ExtractResult{
		ContentHTML: content,
	}
	result.Title, _ = post["title"].(string)

	switch author := post["author"].(type) {
	case string:
		result.Author = author
	case map[string]any:
		result.Author, _ = author["name"].(string)
	}

	if v, ok := post["readingTime"].(string); ok {
		result.ReadingTime = v
	} else if v, ok := post["reading_time"].(string); ok {
		result.ReadingTime = v
	}

	if v, ok := post["publishedAt"].(string); ok {
		result.PublishedAt = v
	} else if v, ok := post["published_at"].(string); ok {
		result.PublishedAt = v
	}

	return result
}
