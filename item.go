package kbscrape

import "context"

// Content types assigned to extracted items. The type is a heuristic guess
// based on the source URL, title, and page HTML; "blog" is the default.
const (
	ContentTypeBlog           = "blog"
	ContentTypeLinkedInPost   = "linkedin_post"
	ContentTypeRedditComment  = "reddit_comment"
	ContentTypePodcast        = "podcast_transcript"
	ContentTypeCallTranscript = "call_transcript"
	ContentTypeBook           = "book"
)

// Item is one extracted content record. Items are independent; the source
// URL is their only identity and output collections are deduplicated by it.
// Optional fields are omitted from JSON when absent.
type Item struct {
	Title       string `json:"title"`
	Content     string `json:"content"` // Markdown
	ContentType string `json:"content_type"`
	SourceURL   string `json:"source_url"`
	Author      string `json:"author,omitempty"`
	PublishedAt string `json:"published_at,omitempty"`
	ReadingTime string `json:"reading_time,omitempty"`
}

// Validate returns an error if the item contains invalid fields.
func (it *Item) Validate() error {
	if it.SourceURL == "" {
		return Errorf(EINVALID, "item source URL required")
	}
	if it.Content == "" {
		return Errorf(EINVALID, "item content required")
	}
	return nil
}

// Collection is the serialized output of a scrape run.
type Collection struct {
	Site  string  `json:"site"`
	Items []*Item `json:"items"`
}

// CollectionWriter persists a collection. Implementations are expected to
// write atomically so a failed run never leaves a partial output file.
type CollectionWriter interface {
	WriteCollection(ctx context.Context, c *Collection) error
}
