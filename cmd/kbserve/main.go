package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/aline-ai/kbscrape"
	kbgin "github.com/aline-ai/kbscrape/gin"
	"github.com/aline-ai/kbscrape/goquery"
	"github.com/aline-ai/kbscrape/htmltomarkdown"
	kbhttp "github.com/aline-ai/kbscrape/http"
	"github.com/aline-ai/kbscrape/opengraph"
	"github.com/aline-ai/kbscrape/readability"
	"github.com/aline-ai/kbscrape/rod"
	"github.com/aline-ai/kbscrape/scrape"
	kbslog "github.com/aline-ai/kbscrape/slog"
	"github.com/aline-ai/kbscrape/trafilatura"
	"github.com/aline-ai/kbscrape/yaml"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct{}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config string `short:"f" help:"Path to YAML config file"`
	Listen string `short:"l" help:"Listen address (overrides config)"`
}

// Run executes the server with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("kbserve"),
		kong.Description("Web frontend for scraping blog posts into a JSON knowledge base"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	_, err = parser.Parse(args)
	if err != nil {
		return err
	}

	cfg := yaml.Default()
	if cli.Config != "" {
		cfg, err = yaml.Load(cli.Config)
		if err != nil {
			return err
		}
	}
	if cli.Listen != "" {
		cfg.Server.ListenAddr = cli.Listen
	}

	logger := newLogger(stderr, cfg.Logging.Level)

	scraper, cleanup, err := buildScraper(cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	server := kbgin.NewServer(scraper, logger,
		kbgin.WithMaxPages(cfg.Scrape.MaxPages),
		kbgin.WithTimeout(cfg.Scrape.Timeout()),
	)

	logger.Info("listening", "addr", cfg.Server.ListenAddr)
	return server.Run(cfg.Server.ListenAddr)
}

// buildScraper wires the scrape pipeline from the config. The returned
// cleanup function closes the fetchers.
func buildScraper(cfg *yaml.Config, logger *slog.Logger) (kbgin.Scraper, func(), error) {
	fetcher := kbslog.NewLoggingFetcher(kbhttp.NewFetcher(), logger)

	rateLimiter := scrape.NewDomainLimiter(cfg.Scrape.RateLimit)

	source := &scrape.Source{
		Fetcher:     fetcher,
		Sitemaps:    kbslog.NewLoggingSitemapService(kbhttp.NewSitemapService(nil), logger),
		Feeds:       kbslog.NewLoggingFeedService(kbhttp.NewFeedService(nil), logger),
		Links:       goquery.NewArticleSelector(),
		Classifier:  goquery.NewClassifier(),
		RateLimiter: rateLimiter,
		FeedHints:   goquery.FeedLinks,
	}

	static := scrape.NewExtractorStrategy("static", trafilatura.NewExtractor(), readability.NewExtractor())
	nextdata := scrape.NewExtractorStrategy("nextdata", goquery.NewNextDataExtractor())
	substack := scrape.NewPlatformStrategy("substack", kbscrape.PlatformSubstack, "substack.com",
		goquery.NewDetector(), goquery.NewSubstackExtractor())

	strategies := []kbscrape.Strategy{
		static,
		kbhttp.NewAPIStrategy(nil),
		nextdata,
		substack,
	}

	cleanup := func() { fetcher.Close() }

	if cfg.Scrape.Render {
		rodFetcher, err := rod.NewFetcher()
		if err != nil {
			return nil, cleanup, fmt.Errorf("failed to start browser: %w", err)
		}
		strategies = append(strategies, scrape.NewRenderedStrategy(rodFetcher, static, nextdata))
		cleanup = func() {
			rodFetcher.Close()
			fetcher.Close()
		}
	}

	scraper := &scrape.Scraper{
		Source:           source,
		Fetcher:          fetcher,
		Strategies:       strategies,
		Converter:        htmltomarkdown.NewConverter(),
		Metadata:         opengraph.NewMetadataExtractor(),
		RateLimiter:      rateLimiter,
		Concurrency:      cfg.Scrape.Concurrency,
		MinContentLength: cfg.Scrape.MinContentLength,
	}

	adapter := kbgin.ScraperFunc(func(ctx context.Context, seedURL string, maxPages int) (*kbscrape.Collection, error) {
		collection, _, err := scraper.Scrape(ctx, seedURL, maxPages, nil)
		return collection, err
	})

	return adapter, cleanup, nil
}

func newLogger(w io.Writer, level string) *slog.Logger {
	var l slog.Level
	switch level {
	case "debug":
		l = slog.LevelDebug
	case "warn":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: l}))
}
