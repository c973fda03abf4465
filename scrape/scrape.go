// Package scrape provides extraction orchestration and the bounded
// concurrency retrieval pipeline. It coordinates document fetching,
// streaming extraction, and downloading of classified resources.
package scrape

import (
	"context"
	"log/slog"

	"github.com/jgrochowski/webgrab"
)

// Scraper orchestrates a single extraction: validate the config, fetch the
// document, drive the extraction engine over it.
type Scraper struct {
	Fetcher   webgrab.DocumentFetcher
	Extractor webgrab.Extractor
	Logger    *slog.Logger
}

// Scrape fetches the document at cfg.BaseURL and extracts it. A fetch
// failure is terminal: no extraction is attempted and no partial results
// are produced. The config is validated before any network activity.
func (s *Scraper) Scrape(ctx context.Context, cfg *webgrab.Config) (*webgrab.Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	body, err := s.Fetcher.Fetch(ctx, cfg.BaseURL)
	if err != nil {
		return nil, webgrab.Errorf(webgrab.EUNAVAILABLE, "fetch %s: %v", cfg.BaseURL, err)
	}

	res := s.Extractor.Extract(body, cfg)

	if s.Logger != nil {
		s.Logger.Info("extracted",
			"url", cfg.BaseURL,
			"texts", len(res.Texts),
			"attrs", len(res.Attrs),
			"links", len(res.Links),
			"images", len(res.Images),
			"files", len(res.Files))
	}

	return res, nil
}
