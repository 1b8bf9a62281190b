package http_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aline-ai/kbscrape"
	kbhttp "github.com/aline-ai/kbscrape/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure APIStrategy implements kbscrape.Strategy at compile time.
var _ kbscrape.Strategy = (*kbhttp.APIStrategy)(nil)

func TestAPIStrategy_Extract(t *testing.T) {
	t.Parallel()

	t.Run("extracts from REST endpoint", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		server := httptest.NewServer(mux)
		defer server.Close()

		mux.HandleFunc("/api/v1/blog/posts/my-post", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `{
				"title": "My Post",
				"content": "<p>Hello from the API</p>",
				"author": "Jane Doe",
				"readingTime": "4 minute read",
				"publishedAt": "2024-01-02"
			}`)
		})

		strategy := kbhttp.NewAPIStrategy(nil)
		result, err := strategy.Extract(context.Background(), server.URL+"/blog/my-post", "")
		require.NoError(t, err)
		require.NotNil(t, result)
		assert.Equal(t, "My Post", result.Title)
		assert.Equal(t, "<p>Hello from the API</p>", result.ContentHTML)
		assert.Equal(t, "Jane Doe", result.Author)
		assert.Equal(t, "4 minute read", result.ReadingTime)
		assert.Equal(t, "2024-01-02", result.PublishedAt)
	})

	t.Run("falls back to Next.js data endpoint", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		server := httptest.NewServer(mux)
		defer server.Close()

		mux.HandleFunc("/_next/data/latest/blog/my-post.json", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `{
				"pageProps": {
					"post": {
						"title": "Next Post",
						"body": "<p>From pageProps</p>",
						"author": {"name": "John Smith"},
						"published_at": "2024-02-03"
					}
				}
			}`)
		})

		strategy := kbhttp.NewAPIStrategy(nil)
		result, err := strategy.Extract(context.Background(), server.URL+"/blog/my-post", "")
		require.NoError(t, err)
		require.NotNil(t, result)
		assert.Equal(t, "Next Post", result.Title)
		assert.Equal(t, "<p>From pageProps</p>", result.ContentHTML)
		assert.Equal(t, "John Smith", result.Author)
		assert.Equal(t, "2024-02-03", result.PublishedAt)
	})

	t.Run("returns nil result when endpoints yield nothing", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.NotFoundHandler())
		defer server.Close()

		strategy := kbhttp.NewAPIStrategy(nil)
		result, err := strategy.Extract(context.Background(), server.URL+"/blog/missing", "")
		require.NoError(t, err)
		assert.True(t, result.Empty())
	})

	t.Run("returns nil result for URL without slug", func(t *testing.T) {
		t.Parallel()

		strategy := kbhttp.NewAPIStrategy(nil)
		result, err := strategy.Extract(context.Background(), "https://example.com/", "")
		require.NoError(t, err)
		assert.True(t, result.Empty())
	})

	t.Run("ignores JSON without content field", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		server := httptest.NewServer(mux)
		defer server.Close()

		mux.HandleFunc("/api/v1/blog/posts/empty", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"title": "No body here"}`)
		})

		strategy := kbhttp.NewAPIStrategy(nil)
		result, err := strategy.Extract(context.Background(), server.URL+"/blog/empty", "")
		require.NoError(t, err)
		assert.True(t, result.Empty())
	})
}

func TestPostFromJSON(t *testing.T) {
	t.Parallel()

	t.Run("prefers content over body", func(t *testing.T) {
		t.Parallel()

		result := kbhttp.PostFromJSON(map[string]any{
			"content": "<p>a</p>",
			"body":    "<p>b</p>",
		})
		require.NotNil(t, result)
		assert.Equal(t, "<p>a</p>", result.ContentHTML)
	})

	t.Run("nil for empty object", func(t *testing.T) {
		t.Parallel()

		assert.Nil(t, kbhttp.PostFromJSON(map[string]any{}))
	})
}
