package http_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/aline-ai/kbscrape"
	kbhttp "github.com/aline-ai/kbscrape/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSitemapService_DiscoverURLs(t *testing.T) {
	t.Parallel()

	t.Run("discovers sitemap from robots.txt directive", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		server := httptest.NewServer(mux)
		defer server.Close()

		mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprintf(w, "User-agent: *\nSitemap: %s/custom-sitemap.xml\n", server.URL)
		})
		mux.HandleFunc("/custom-sitemap.xml", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprintf(w, `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
	<url><loc>%s/blog/one</loc></url>
	<url><loc>%s/blog/two</loc></url>
</urlset>`, server.URL, server.URL)
		})

		svc := kbhttp.NewSitemapService(nil)
		urls, err := svc.DiscoverURLs(context.Background(), server.URL, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{server.URL + "/blog/one", server.URL + "/blog/two"}, urls)
	})

	t.Run("falls back to common sitemap locations", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		server := httptest.NewServer(mux)
		defer server.Close()

		mux.HandleFunc("/sitemap_index.xml", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprintf(w, `<?xml version="1.0" encoding="UTF-8"?>
<urlset><url><loc>%s/posts/hello</loc></url></urlset>`, server.URL)
		})

		svc := kbhttp.NewSitemapService(nil)
		urls, err := svc.DiscoverURLs(context.Background(), server.URL, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{server.URL + "/posts/hello"}, urls)
	})

	t.Run("resolves sitemap indexes recursively", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		server := httptest.NewServer(mux)
		defer server.Close()

		mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprintf(w, "Sitemap: %s/sitemap.xml\n", server.URL)
		})
		mux.HandleFunc("/sitemap.xml", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprintf(w, `<?xml version="1.0" encoding="UTF-8"?>
<sitemapindex>
	<sitemap><loc>%s/sitemap-posts.xml</loc></sitemap>
</sitemapindex>`, server.URL)
		})
		mux.HandleFunc("/sitemap-posts.xml", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprintf(w, `<urlset><url><loc>%s/blog/nested</loc></url></urlset>`, server.URL)
		})

		svc := kbhttp.NewSitemapService(nil)
		urls, err := svc.DiscoverURLs(context.Background(), server.URL, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{server.URL + "/blog/nested"}, urls)
	})

	t.Run("filters by seed path prefix", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		server := httptest.NewServer(mux)
		defer server.Close()

		mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprintf(w, "Sitemap: %s/sitemap.xml\n", server.URL)
		})
		mux.HandleFunc("/sitemap.xml", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprintf(w, `<urlset>
	<url><loc>%s/blog/post</loc></url>
	<url><loc>%s/about</loc></url>
	<url><loc>%s/blogger/other</loc></url>
</urlset>`, server.URL, server.URL, server.URL)
		})

		svc := kbhttp.NewSitemapService(nil)
		urls, err := svc.DiscoverURLs(context.Background(), server.URL+"/blog", nil)
		require.NoError(t, err)
		assert.Equal(t, []string{server.URL + "/blog/post"}, urls)
	})

	t.Run("applies user filter", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		server := httptest.NewServer(mux)
		defer server.Close()

		mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprintf(w, "Sitemap: %s/sitemap.xml\n", server.URL)
		})
		mux.HandleFunc("/sitemap.xml", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprintf(w, `<urlset>
	<url><loc>%s/blog/keep</loc></url>
	<url><loc>%s/blog/tag/skip</loc></url>
</urlset>`, server.URL, server.URL)
		})

		filter := &kbscrape.URLFilter{
			Exclude: []*regexp.Regexp{regexp.MustCompile(`/tag/`)},
		}

		svc := kbhttp.NewSitemapService(nil)
		urls, err := svc.DiscoverURLs(context.Background(), server.URL, filter)
		require.NoError(t, err)
		assert.Equal(t, []string{server.URL + "/blog/keep"}, urls)
	})

	t.Run("returns empty slice when no sitemaps exist", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.NotFoundHandler())
		defer server.Close()

		svc := kbhttp.NewSitemapService(nil)
		urls, err := svc.DiscoverURLs(context.Background(), server.URL, nil)
		require.NoError(t, err)
		assert.Empty(t, urls)
	})
}
