package scrape_test

import (
	"testing"

	"github.com/aline-ai/kbscrape"
	"github.com/aline-ai/kbscrape/scrape"
	"github.com/stretchr/testify/assert"
)

func TestGuessContentType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		url   string
		title string
		html  string
		want  string
	}{
		{name: "linkedin URL", url: "https://www.linkedin.com/posts/someone_activity", want: kbscrape.ContentTypeLinkedInPost},
		{name: "reddit URL", url: "https://www.reddit.com/r/golang/comments/abc", want: kbscrape.ContentTypeRedditComment},
		{name: "podcast in URL", url: "https://example.com/podcast/ep-12", want: kbscrape.ContentTypePodcast},
		{name: "podcast in title", url: "https://example.com/ep-12", title: "Podcast Episode 12", want: kbscrape.ContentTypePodcast},
		{name: "audio element", url: "https://example.com/ep-12", html: `<audio src="ep12.ogg"></audio>`, want: kbscrape.ContentTypePodcast},
		{name: "transcript in URL", url: "https://example.com/transcripts/call-1", want: kbscrape.ContentTypeCallTranscript},
		{name: "transcript in title", url: "https://example.com/call-1", title: "Customer Call Transcript", want: kbscrape.ContentTypeCallTranscript},
		{name: "book path", url: "https://example.com/book/part-1", want: kbscrape.ContentTypeBook},
		{name: "chapter title", url: "https://example.com/part-1", title: "Chapter 1: Foundations", want: kbscrape.ContentTypeBook},
		{name: "defaults to blog", url: "https://example.com/blog/why-ships-float", title: "Why Ships Float", want: kbscrape.ContentTypeBlog},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, scrape.GuessContentType(tt.url, tt.title, tt.html))
		})
	}
}
