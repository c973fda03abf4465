// Package slog provides log/slog-based logging decorators for the webgrab
// fetcher interfaces.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/jgrochowski/webgrab"
)

// Ensure LoggingFetcher implements webgrab.DocumentFetcher at compile time.
var _ webgrab.DocumentFetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a DocumentFetcher with structured logging.
type LoggingFetcher struct {
	next   webgrab.DocumentFetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next webgrab.DocumentFetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the outcome with byte
// count and duration.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (string, error) {
	begin := time.Now()
	body, err := f.next.Fetch(ctx, url)
	if err != nil {
		f.logger.Error("fetch", "url", url, "duration", time.Since(begin), "err", err)
		return "", err
	}
	f.logger.Info("fetch", "url", url, "bytes", len(body), "duration", time.Since(begin))
	return body, nil
}

// Ensure LoggingResourceFetcher implements webgrab.ResourceFetcher at
// compile time.
var _ webgrab.ResourceFetcher = (*LoggingResourceFetcher)(nil)

// LoggingResourceFetcher wraps a ResourceFetcher with structured logging.
type LoggingResourceFetcher struct {
	next   webgrab.ResourceFetcher
	logger *slog.Logger
}

// NewLoggingResourceFetcher creates a new LoggingResourceFetcher.
func NewLoggingResourceFetcher(next webgrab.ResourceFetcher, logger *slog.Logger) *LoggingResourceFetcher {
	return &LoggingResourceFetcher{next: next, logger: logger}
}

// FetchResource delegates to the wrapped fetcher and logs the outcome.
func (f *LoggingResourceFetcher) FetchResource(ctx context.Context, url, destPath string) error {
	begin := time.Now()
	err := f.next.FetchResource(ctx, url, destPath)
	if err != nil {
		f.logger.Error("download", "url", url, "duration", time.Since(begin), "err", err)
		return err
	}
	f.logger.Info("download", "url", url, "dest", destPath, "duration", time.Since(begin))
	return nil
}
