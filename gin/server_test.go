package gin_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	stdgin "github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aline-ai/kbscrape"
	kbgin "github.com/aline-ai/kbscrape/gin"
)

func init() {
	stdgin.SetMode(stdgin.TestMode)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testCollection() *kbscrape.Collection {
	return &kbscrape.Collection{
		Site: "https://example.com/blog",
		Items: []*kbscrape.Item{
			{
				Title:       "Why Ships Float",
				Content:     "# Why Ships Float\n\nDisplacement.",
				ContentType: kbscrape.ContentTypeBlog,
				SourceURL:   "https://example.com/blog/why-ships-float",
			},
		},
	}
}

func TestServer_Index(t *testing.T) {
	t.Parallel()

	server := kbgin.NewServer(nil, discardLogger())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	server.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")

	body := rec.Body.String()
	assert.Contains(t, body, `action="/scrape"`)
	assert.Contains(t, body, `name="url"`)
	assert.Contains(t, body, `name="max_pages"`)
}

func TestServer_Scrape(t *testing.T) {
	t.Parallel()

	t.Run("returns collection and result ID for JSON request", func(t *testing.T) {
		t.Parallel()

		var gotURL string
		var gotMaxPages int
		scraper := kbgin.ScraperFunc(func(ctx context.Context, seedURL string, maxPages int) (*kbscrape.Collection, error) {
			gotURL = seedURL
			gotMaxPages = maxPages
			return testCollection(), nil
		})

		server := kbgin.NewServer(scraper, discardLogger())

		payload := `{"url": "https://example.com/blog", "max_pages": 25}`
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/scrape", strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		server.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "https://example.com/blog", gotURL)
		assert.Equal(t, 25, gotMaxPages)

		var resp kbgin.ScrapeResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.ID)
		assert.Equal(t, 1, resp.Count)
		require.NotNil(t, resp.Collection)
		assert.Equal(t, "https://example.com/blog", resp.Collection.Site)
	})

	t.Run("accepts form data", func(t *testing.T) {
		t.Parallel()

		scraper := kbgin.ScraperFunc(func(ctx context.Context, seedURL string, maxPages int) (*kbscrape.Collection, error) {
			return testCollection(), nil
		})

		server := kbgin.NewServer(scraper, discardLogger())

		form := url.Values{"url": {"https://example.com/blog"}, "max_pages": {"10"}}
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/scrape", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		server.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("rejects missing URL", func(t *testing.T) {
		t.Parallel()

		server := kbgin.NewServer(nil, discardLogger())

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/scrape", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		server.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("caps max pages at the server limit", func(t *testing.T) {
		t.Parallel()

		var gotMaxPages int
		scraper := kbgin.ScraperFunc(func(ctx context.Context, seedURL string, maxPages int) (*kbscrape.Collection, error) {
			gotMaxPages = maxPages
			return testCollection(), nil
		})

		server := kbgin.NewServer(scraper, discardLogger(), kbgin.WithMaxPages(50))

		payload := `{"url": "https://example.com", "max_pages": 9999}`
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/scrape", strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		server.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 50, gotMaxPages)
	})

	t.Run("maps invalid seed to 400", func(t *testing.T) {
		t.Parallel()

		scraper := kbgin.ScraperFunc(func(ctx context.Context, seedURL string, maxPages int) (*kbscrape.Collection, error) {
			return nil, kbscrape.Errorf(kbscrape.EINVALID, "unsupported scheme %q", "ftp")
		})

		server := kbgin.NewServer(scraper, discardLogger())

		payload := `{"url": "ftp://example.com"}`
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/scrape", strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		server.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "unsupported scheme")
	})

	t.Run("maps internal errors to 500", func(t *testing.T) {
		t.Parallel()

		scraper := kbgin.ScraperFunc(func(ctx context.Context, seedURL string, maxPages int) (*kbscrape.Collection, error) {
			return nil, kbscrape.Errorf(kbscrape.EINTERNAL, "boom")
		})

		server := kbgin.NewServer(scraper, discardLogger())

		payload := `{"url": "https://example.com"}`
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/scrape", strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		server.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestServer_Download(t *testing.T) {
	t.Parallel()

	t.Run("serves a stored result as attachment", func(t *testing.T) {
		t.Parallel()

		scraper := kbgin.ScraperFunc(func(ctx context.Context, seedURL string, maxPages int) (*kbscrape.Collection, error) {
			return testCollection(), nil
		})

		server := kbgin.NewServer(scraper, discardLogger())

		// Run a scrape first to store a result.
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/scrape", strings.NewReader(`{"url": "https://example.com/blog"}`))
		req.Header.Set("Content-Type", "application/json")
		server.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp kbgin.ScrapeResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

		rec = httptest.NewRecorder()
		req = httptest.NewRequest(http.MethodGet, "/download/"+resp.ID, nil)
		server.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment")
		assert.Contains(t, rec.Header().Get("Content-Disposition"), resp.ID)

		var got kbscrape.Collection
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, "https://example.com/blog", got.Site)
		require.Len(t, got.Items, 1)
		assert.Equal(t, "Why Ships Float", got.Items[0].Title)
	})

	t.Run("returns 404 for unknown ID", func(t *testing.T) {
		t.Parallel()

		server := kbgin.NewServer(nil, discardLogger())

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/download/does-not-exist", nil)
		server.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
