// Package gin provides the web frontend for running scrapes.
package gin

import (
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/aline-ai/kbscrape"
)

// Scraper runs the scrape pipeline for a seed URL.
type Scraper interface {
	Scrape(ctx context.Context, seedURL string, maxPages int) (*kbscrape.Collection, error)
}

// ScraperFunc adapts a function to the Scraper interface.
type ScraperFunc func(ctx context.Context, seedURL string, maxPages int) (*kbscrape.Collection, error)

func (f ScraperFunc) Scrape(ctx context.Context, seedURL string, maxPages int) (*kbscrape.Collection, error) {
	return f(ctx, seedURL, maxPages)
}

// Server serves the scrape form and API. Completed results are held in
// memory, keyed by a generated ID, until the process exits.
type Server struct {
	scraper  Scraper
	logger   *slog.Logger
	maxPages int
	timeout  time.Duration

	mu      sync.RWMutex
	results map[string]*kbscrape.Collection

	router *gin.Engine
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithMaxPages caps the per-request page budget.
func WithMaxPages(n int) ServerOption {
	return func(s *Server) { s.maxPages = n }
}

// WithTimeout bounds the duration of a single scrape request.
func WithTimeout(d time.Duration) ServerOption {
	return func(s *Server) { s.timeout = d }
}

// Default request limits.
const (
	DefaultMaxPages = 200
	DefaultTimeout  = 5 * time.Minute
)

// NewServer creates a Server and registers its routes.
func NewServer(scraper Scraper, logger *slog.Logger, opts ...ServerOption) *Server {
	s := &Server{
		scraper:  scraper,
		logger:   logger,
		maxPages: DefaultMaxPages,
		timeout:  DefaultTimeout,
		results:  make(map[string]*kbscrape.Collection),
	}
	for _, opt := range opts {
		opt(s)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.GET("/", s.handleIndex)
	router.POST("/scrape", s.handleScrape)
	router.GET("/download/:id", s.handleDownload)
	s.router = router

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Run starts the server on the given address and blocks.
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head><title>kbscrape</title></head>
<body>
<h1>Scrape a blog</h1>
<form method="post" action="/scrape">
  <label>Blog URL <input type="url" name="url" placeholder="https://example.com/blog" required></label>
  <label>Max pages <input type="number" name="max_pages" value="{{.MaxPages}}" min="1" max="{{.MaxPages}}"></label>
  <button type="submit">Scrape</button>
</form>
</body>
</html>
`))

func (s *Server) handleIndex(c *gin.Context) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := indexTemplate.Execute(c.Writer, gin.H{"MaxPages": s.maxPages}); err != nil {
		s.logger.Error("render form", "err", err)
	}
}

// ScrapeRequest is the POST /scrape payload, accepted as JSON or form data.
type ScrapeRequest struct {
	URL      string `form:"url" json:"url" binding:"required"`
	MaxPages int    `form:"max_pages" json:"max_pages"`
}

// ScrapeResponse is the POST /scrape result envelope.
type ScrapeResponse struct {
	ID         string               `json:"id"`
	Count      int                  `json:"count"`
	Collection *kbscrape.Collection `json:"collection"`
}

func (s *Server) handleScrape(c *gin.Context) {
	var req ScrapeRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.MaxPages <= 0 || req.MaxPages > s.maxPages {
		req.MaxPages = s.maxPages
	}

	s.logger.Info("scrape request", "url", req.URL, "max_pages", req.MaxPages)

	ctx, cancel := context.WithTimeout(c.Request.Context(), s.timeout)
	defer cancel()

	collection, err := s.scraper.Scrape(ctx, req.URL, req.MaxPages)
	if err != nil {
		status := http.StatusInternalServerError
		if kbscrape.ErrorCode(err) == kbscrape.EINVALID {
			status = http.StatusBadRequest
		}
		s.logger.Error("scrape failed", "url", req.URL, "err", err)
		c.JSON(status, gin.H{"error": kbscrape.ErrorMessage(err)})
		return
	}

	id := uuid.NewString()
	s.mu.Lock()
	s.results[id] = collection
	s.mu.Unlock()

	s.logger.Info("scrape completed", "url", req.URL, "id", id, "count", len(collection.Items))

	c.JSON(http.StatusOK, ScrapeResponse{
		ID:         id,
		Count:      len(collection.Items),
		Collection: collection,
	})
}

func (s *Server) handleDownload(c *gin.Context) {
	id := c.Param("id")

	s.mu.RLock()
	collection, ok := s.results[id]
	s.mu.RUnlock()

	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "result not found"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="kbscrape-%s.json"`, id))
	c.IndentedJSON(http.StatusOK, collection)
}
