package scrape_test

import (
	"testing"

	"github.com/aline-ai/kbscrape/scrape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "bare domain gets https", in: "interviewing.io", want: "https://interviewing.io"},
		{name: "keeps explicit http", in: "http://example.com/blog", want: "http://example.com/blog"},
		{name: "strips fragment", in: "https://example.com/blog/post#intro", want: "https://example.com/blog/post"},
		{name: "strips trailing slash on path", in: "https://example.com/blog/", want: "https://example.com/blog"},
		{name: "keeps root slash", in: "https://example.com/", want: "https://example.com/"},
		{name: "lowercases host", in: "https://Example.COM/blog", want: "https://example.com/blog"},
		{name: "empty URL", in: "  ", wantErr: true},
		{name: "unsupported scheme", in: "ftp://example.com", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := scrape.NormalizeURL(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestScope_Contains(t *testing.T) {
	t.Parallel()

	t.Run("same registered domain is in scope", func(t *testing.T) {
		t.Parallel()

		scope, err := scrape.NewScope("https://example.com/")
		require.NoError(t, err)

		assert.True(t, scope.Contains("https://example.com/blog/post"))
		assert.True(t, scope.Contains("https://www.example.com/blog/post"), "www variant shares registered domain")
		assert.True(t, scope.Contains("https://blog.example.com/post"), "subdomain shares registered domain")
		assert.False(t, scope.Contains("https://other.com/blog/post"))
	})

	t.Run("seed path restricts scope", func(t *testing.T) {
		t.Parallel()

		scope, err := scrape.NewScope("https://quill.co/blog")
		require.NoError(t, err)

		assert.True(t, scope.Contains("https://quill.co/blog"))
		assert.True(t, scope.Contains("https://quill.co/blog/my-post"))
		assert.False(t, scope.Contains("https://quill.co/pricing"))
		assert.False(t, scope.Contains("https://quill.co/blogroll"), "prefix must match at a segment boundary")
	})

	t.Run("binary extensions are out of scope", func(t *testing.T) {
		t.Parallel()

		scope, err := scrape.NewScope("https://example.com/")
		require.NoError(t, err)

		for _, u := range []string{
			"https://example.com/logo.png",
			"https://example.com/report.pdf",
			"https://example.com/sitemap.xml",
			"https://example.com/archive.zip",
		} {
			assert.False(t, scope.Contains(u), u)
		}
		assert.True(t, scope.Contains("https://example.com/blog/post"))
	})

	t.Run("non-http schemes are out of scope", func(t *testing.T) {
		t.Parallel()

		scope, err := scrape.NewScope("https://example.com/")
		require.NoError(t, err)

		assert.False(t, scope.Contains("mailto:hi@example.com"))
	})

	t.Run("broadened scope drops the path prefix", func(t *testing.T) {
		t.Parallel()

		scope, err := scrape.NewScope("https://quill.co/blog")
		require.NoError(t, err)
		assert.Equal(t, "/blog", scope.PathPrefix())

		broad := scope.Broadened()
		assert.Empty(t, broad.PathPrefix())
		assert.True(t, broad.Contains("https://quill.co/pricing"))
	})
}
