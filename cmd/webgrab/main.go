package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/jgrochowski/webgrab"
	"github.com/jgrochowski/webgrab/export"
	webhtml "github.com/jgrochowski/webgrab/html"
	webhttp "github.com/jgrochowski/webgrab/http"
	"github.com/jgrochowski/webgrab/scrape"
	webslog "github.com/jgrochowski/webgrab/slog"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

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
	URL            string        `arg:"" required:"" help:"Page URL to scrape (must be http or https)."`
	Tags           string        `default:"h1,h2,h3,p,span,title" help:"Comma-delimited tags whose text content is captured."`
	Attrs          string        `default:"href,src,class,id" help:"Comma-delimited attributes whose values are captured."`
	DownloadImages bool          `default:"true" negatable:"" help:"Download discovered images."`
	CollectFiles   bool          `default:"true" negatable:"" help:"Download discovered files (pdf, zip, ...)."`
	ImagesDir      string        `default:"scraped_images" help:"Destination folder for images."`
	FilesDir       string        `default:"scraped_files" help:"Destination folder for files."`
	Concurrency    int           `short:"c" default:"4" help:"Concurrent download limit."`
	Timeout        time.Duration `short:"t" default:"15s" help:"Timeout per fetch."`
	Rate           float64       `default:"0" help:"Max downloads per second per host (0 = unlimited)."`
	Out            string        `short:"o" help:"Write the report to this file instead of stdout."`
	Format         string        `enum:"json,csv,txt" default:"json" help:"Report format: json, csv or txt."`
	Verbose        bool          `short:"v" help:"Enable debug logging."`
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("webgrab"),
		kong.Description("Extract tagged text, attributes, links, images and files from a web page"),
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

	if _, err := parser.Parse(args); err != nil {
		return err
	}

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	// Wire dependencies
	client := webhttp.NewClient(webhttp.WithTimeout(cli.Timeout))

	scraper := &scrape.Scraper{
		Fetcher:   webslog.NewLoggingFetcher(client, logger),
		Extractor: webhtml.NewExtractor(),
		Logger:    logger,
	}

	cfg := webgrab.NewConfig(cli.URL, webgrab.SplitList(cli.Tags), webgrab.SplitList(cli.Attrs))

	result, err := scraper.Scrape(ctx, cfg)
	if err != nil {
		return fmt.Errorf("scrape failed: %s", webgrab.ErrorMessage(err))
	}

	pipeline := &scrape.Pipeline{
		Fetcher:     webslog.NewLoggingResourceFetcher(client, logger),
		Concurrency: cli.Concurrency,
		ItemTimeout: cli.Timeout,
		Logger:      logger,
	}
	if cli.Rate > 0 {
		pipeline.Limiter = scrape.NewDomainLimiter(cli.Rate)
	}

	var outcomes []webgrab.Outcome
	if cli.DownloadImages {
		batch, err := m.download(ctx, pipeline, result.ClassifiedImages(), cli.ImagesDir, "images", stderr)
		if err != nil {
			return err
		}
		outcomes = append(outcomes, batch...)
	}
	if cli.CollectFiles {
		batch, err := m.download(ctx, pipeline, result.ClassifiedFiles(), cli.FilesDir, "files", stderr)
		if err != nil {
			return err
		}
		outcomes = append(outcomes, batch...)
	}

	reportFailures(outcomes, stderr)

	report := export.NewReport(result, outcomes)
	if cli.Out == "" {
		return export.Write(stdout, export.Format(cli.Format), report)
	}

	if dir := filepath.Dir(cli.Out); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	f, err := os.Create(cli.Out)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := export.Write(f, export.Format(cli.Format), report); err != nil {
		return err
	}
	fmt.Fprintf(stderr, "report written to %s\n", cli.Out)
	return nil
}

// download runs one pipeline batch with a terminal progress bar.
func (m *Main) download(ctx context.Context, pipeline *scrape.Pipeline, urls []webgrab.ClassifiedURL, dir, label string, stderr io.Writer) ([]webgrab.Outcome, error) {
	if len(urls) == 0 {
		return nil, nil
	}

	bar := newProgressBar(len(urls), "downloading "+label, stderr)
	outcomes, err := pipeline.Download(ctx, urls, dir, func(e webgrab.ProgressEvent) {
		switch e.Type {
		case webgrab.ProgressCompleted, webgrab.ProgressFailed, webgrab.ProgressSkipped:
			_ = bar.Add(1)
		}
	})
	_ = bar.Finish()
	fmt.Fprintln(stderr)
	if err != nil {
		return nil, fmt.Errorf("download %s: %s", label, webgrab.ErrorMessage(err))
	}
	return outcomes, nil
}

// reportFailures summarizes per-item download failures. Failures do not
// fail the run: the document itself was fetched and extracted.
func reportFailures(outcomes []webgrab.Outcome, stderr io.Writer) {
	var failed []webgrab.Outcome
	for _, o := range outcomes {
		if !o.Succeeded {
			failed = append(failed, o)
		}
	}
	if len(failed) == 0 {
		return
	}

	fmt.Fprintf(stderr, "%d of %d downloads failed:\n", len(failed), len(outcomes))
	for _, o := range failed {
		fmt.Fprintf(stderr, "  %s: %v\n", o.URL, o.Err)
	}
}
