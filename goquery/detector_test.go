package goquery_test

import (
	"testing"

	"github.com/aline-ai/kbscrape"
	"github.com/aline-ai/kbscrape/goquery"
	"github.com/stretchr/testify/assert"
)

func TestDetector_Detect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		html     string
		expected kbscrape.Platform
	}{
		{
			name:     "substack via meta generator",
			html:     `<html><head><meta name="generator" content="Substack"></head><body></body></html>`,
			expected: kbscrape.PlatformSubstack,
		},
		{
			name:     "substack via post body marker",
			html:     `<html><body><div data-post-body><p>Hi</p></div></body></html>`,
			expected: kbscrape.PlatformSubstack,
		},
		{
			name:     "substack via subscription widget",
			html:     `<html><body><div class="subscription-widget-wrap"></div></body></html>`,
			expected: kbscrape.PlatformSubstack,
		},
		{
			name:     "nextjs via __NEXT_DATA__ script",
			html:     `<html><body><div id="__next"></div><script id="__NEXT_DATA__" type="application/json">{}</script></body></html>`,
			expected: kbscrape.PlatformNextJS,
		},
		{
			name:     "ghost via meta generator",
			html:     `<html><head><meta name="generator" content="Ghost 5.0"></head><body></body></html>`,
			expected: kbscrape.PlatformGhost,
		},
		{
			name:     "ghost via gh-content class",
			html:     `<html><body><section class="gh-content"></section></body></html>`,
			expected: kbscrape.PlatformGhost,
		},
		{
			name:     "wordpress via meta generator",
			html:     `<html><head><meta name="generator" content="WordPress 6.4"></head><body></body></html>`,
			expected: kbscrape.PlatformWordPress,
		},
		{
			name:     "wordpress via body classes",
			html:     `<html><body class="home wp-singular wp-theme-twentytwentyfour"></body></html>`,
			expected: kbscrape.PlatformWordPress,
		},
		{
			name:     "medium via app name meta",
			html:     `<html><head><meta property="al:android:app_name" content="Medium"></head><body></body></html>`,
			expected: kbscrape.PlatformMedium,
		},
		{
			name:     "hugo via meta generator",
			html:     `<html><head><meta name="generator" content="Hugo 0.121.0"></head><body></body></html>`,
			expected: kbscrape.PlatformHugo,
		},
		{
			name:     "jekyll via meta generator",
			html:     `<html><head><meta name="generator" content="Jekyll v4.3.2"></head><body></body></html>`,
			expected: kbscrape.PlatformJekyll,
		},
		{
			name:     "unknown for plain page",
			html:     `<html><body><p>Hello</p></body></html>`,
			expected: kbscrape.PlatformUnknown,
		},
	}

	detector := goquery.NewDetector()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, detector.Detect(tt.html))
		})
	}
}

func TestIsSubstack(t *testing.T) {
	t.Parallel()

	t.Run("true for substack.com host regardless of HTML", func(t *testing.T) {
		t.Parallel()
		assert.True(t, goquery.IsSubstack("<html></html>", "example.substack.com"))
	})

	t.Run("true for custom domain with substack markers", func(t *testing.T) {
		t.Parallel()
		html := `<html><body><div class="available-content"></div></body></html>`
		assert.True(t, goquery.IsSubstack(html, "blog.example.com"))
	})

	t.Run("false otherwise", func(t *testing.T) {
		t.Parallel()
		assert.False(t, goquery.IsSubstack("<html><body></body></html>", "example.com"))
	})
}
