package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/alecthomas/kong"

	"github.com/aline-ai/kbscrape"
	"github.com/aline-ai/kbscrape/fs"
	"github.com/aline-ai/kbscrape/goquery"
	"github.com/aline-ai/kbscrape/htmltomarkdown"
	kbhttp "github.com/aline-ai/kbscrape/http"
	"github.com/aline-ai/kbscrape/opengraph"
	"github.com/aline-ai/kbscrape/readability"
	"github.com/aline-ai/kbscrape/rod"
	"github.com/aline-ai/kbscrape/scrape"
	kbslog "github.com/aline-ai/kbscrape/slog"
	"github.com/aline-ai/kbscrape/trafilatura"
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

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("kbscrape"),
		kong.Description("Scrape blog posts into a JSON knowledge base"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle no arguments
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no arguments provided")
	}

	// Handle help flags
	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	_, err = parser.Parse(args)
	if err != nil {
		return err
	}

	if cli.MaxPages < 1 {
		return fmt.Errorf("--max-pages must be at least 1")
	}

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	timeout := cli.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	// Wire the fetchers
	var fetcher kbscrape.Fetcher = kbhttp.NewFetcher(kbhttp.WithTimeout(timeout))
	if cli.Verbose {
		fetcher = kbslog.NewLoggingFetcher(fetcher, logger)
	}
	defer fetcher.Close()

	// Discovery services
	var sitemaps kbscrape.SitemapService = kbhttp.NewSitemapService(nil)
	if cli.Verbose {
		sitemaps = kbslog.NewLoggingSitemapService(sitemaps, logger)
	}

	rateLimiter := scrape.NewDomainLimiter(cli.RateLimit)

	source := &scrape.Source{
		Fetcher:     fetcher,
		Sitemaps:    sitemaps,
		Feeds:       kbhttp.NewFeedService(nil),
		Links:       goquery.NewArticleSelector(),
		Classifier:  goquery.NewClassifier(),
		RateLimiter: rateLimiter,
		FeedHints:   goquery.FeedLinks,
	}

	// Extraction strategy chain, in fallback order
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

	if cli.Render {
		rodFetcher, err := rod.NewFetcher()
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed for --render")
			return fmt.Errorf("failed to start browser: %w", err)
		}
		defer rodFetcher.Close()
		strategies = append(strategies, scrape.NewRenderedStrategy(rodFetcher, static, nextdata))
	}

	scraper := &scrape.Scraper{
		Source:      source,
		Fetcher:     fetcher,
		Strategies:  strategies,
		Converter:   htmltomarkdown.NewConverter(),
		Metadata:    opengraph.NewMetadataExtractor(),
		RateLimiter: rateLimiter,
		Concurrency: cli.Concurrency,
	}

	var progress scrape.ProgressFunc
	if !cli.NoProgress {
		progress = progressPrinter(stderr)
	}

	collection, result, err := scraper.Scrape(ctx, cli.URL, cli.MaxPages, progress)
	if err != nil {
		return err
	}

	fmt.Fprintf(stderr, "Saved %d posts (%s), skipped %d, failed %d\n",
		result.Saved, scrape.FormatBytes(result.Bytes), result.Skipped, result.Failed)

	if cli.Out != "" {
		return fs.NewWriter(cli.Out).WriteCollection(ctx, collection)
	}

	data, err := json.MarshalIndent(collection, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(stdout, string(data))
	return err
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	MaxPages    int           `name:"max-pages" default:"200" help:"Maximum number of pages to scrape"`
	Concurrency int           `short:"c" default:"10" help:"Concurrent fetch limit"`
	Timeout     time.Duration `short:"t" default:"10s" help:"Fetch timeout per page"`
	Out         string        `short:"o" help:"Output file path (default: stdout)"`
	NoProgress  bool          `help:"Disable progress output"`
	Render      bool          `help:"Enable headless-browser rendering for JavaScript-heavy pages"`
	RateLimit   float64       `name:"rate-limit" default:"2" help:"Requests per second per domain"`
	Verbose     bool          `short:"v" help:"Enable debug logging"`
	URL         string        `arg:"" required:"" help:"Blog URL to scrape"`
}

// progressPrinter writes one line per completed page to w.
func progressPrinter(w io.Writer) scrape.ProgressFunc {
	return func(event scrape.ProgressEvent) {
		switch event.Type {
		case scrape.ProgressStarted:
			fmt.Fprintf(w, "Scraping %d pages...\n", event.Total)
		case scrape.ProgressCompleted:
			fmt.Fprintf(w, "[%d/%d] %s\n", event.Completed, event.Total, scrape.TruncateURL(event.URL, 60))
		case scrape.ProgressFailed:
			fmt.Fprintf(w, "[%d/%d] FAILED %s: %v\n", event.Completed, event.Total, scrape.TruncateURL(event.URL, 60), event.Error)
		case scrape.ProgressFinished:
			fmt.Fprintln(w, "Done.")
		}
	}
}
