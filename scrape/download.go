package scrape

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"sync/atomic"
	"time"

	"github.com/jgrochowski/webgrab"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the worker pool size used when Pipeline.Concurrency
// is not set.
const DefaultConcurrency = 4

// DefaultItemTimeout bounds each individual retrieval, consistent with the
// document fetch timeout. A stalled transfer becomes a failure, not a hang.
const DefaultItemTimeout = 15 * time.Second

// Pipeline downloads classified URLs to a destination directory with
// bounded parallelism. Each retrieval is independent: failures yield a
// per-item outcome and never abort sibling retrievals.
type Pipeline struct {
	Fetcher webgrab.ResourceFetcher

	// Concurrency is the maximum number of retrievals in flight at once.
	// Values below 1 fall back to DefaultConcurrency. A value of 1 yields
	// strictly sequential, deterministic-order processing.
	Concurrency int

	// ItemTimeout bounds each individual retrieval. Defaults to
	// DefaultItemTimeout.
	ItemTimeout time.Duration

	// Limiter, when set, throttles retrievals per host.
	Limiter *DomainLimiter

	Logger *slog.Logger
}

// jobResult carries one resolved job from a worker to the collector.
type jobResult struct {
	position int
	outcome  webgrab.Outcome
	skipped  bool
}

// Download retrieves every URL into dir and returns one outcome per input,
// in input order. The destination directory is created if needed before the
// first write. Progress events carry a monotonically increasing processed
// count that reaches len(urls) exactly once every job has resolved.
//
// Cancelling ctx stops new retrievals from starting; in-flight transfers
// are allowed to finish (still bounded by the per-item timeout) and jobs
// that never started resolve as skipped failures. Already-produced outcomes
// are kept.
func (p *Pipeline) Download(ctx context.Context, urls []webgrab.ClassifiedURL, dir string, progress webgrab.ProgressFunc) ([]webgrab.Outcome, error) {
	total := len(urls)
	if total == 0 {
		return nil, nil
	}

	// MkdirAll tolerates a concurrent creator, so racing pipelines aimed
	// at the same directory are safe.
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, webgrab.Errorf(webgrab.EINTERNAL, "create %s: %v", dir, err)
	}

	// Local names are assigned sequentially up front so collision
	// disambiguation is deterministic regardless of worker scheduling.
	paths := assignPaths(urls, dir)

	concurrency := p.Concurrency
	if concurrency < 1 {
		concurrency = DefaultConcurrency
	}
	timeout := p.ItemTimeout
	if timeout <= 0 {
		timeout = DefaultItemTimeout
	}

	if progress != nil {
		progress(webgrab.ProgressEvent{Type: webgrab.ProgressStarted, Total: total})
	}

	resultCh := make(chan jobResult, total)

	g := &errgroup.Group{}
	g.SetLimit(concurrency)

	go func() {
		for i, u := range urls {
			i, u := i, u
			g.Go(func() error {
				outcome, skipped := p.retrieve(ctx, u, paths[i], timeout)
				resultCh <- jobResult{position: i, outcome: outcome, skipped: skipped}
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	// The collector owns the processed count, so it is strictly
	// increasing even though outcomes arrive in completion order.
	outcomes := make([]webgrab.Outcome, total)
	var completed atomic.Int64
	for r := range resultCh {
		outcomes[r.position] = r.outcome
		done := int(completed.Add(1))

		if progress != nil {
			ev := webgrab.ProgressEvent{
				Completed: done,
				Total:     total,
				URL:       r.outcome.URL,
				Error:     r.outcome.Err,
			}
			switch {
			case r.outcome.Succeeded:
				ev.Type = webgrab.ProgressCompleted
			case r.skipped:
				ev.Type = webgrab.ProgressSkipped
			default:
				ev.Type = webgrab.ProgressFailed
			}
			progress(ev)
		}
	}

	if progress != nil {
		progress(webgrab.ProgressEvent{Type: webgrab.ProgressFinished, Completed: total, Total: total})
	}

	return outcomes, nil
}

// retrieve resolves a single job. It checks for cancellation before
// starting; once a transfer is in flight it runs detached from the cancel
// signal so it can drain, bounded only by the per-item timeout.
func (p *Pipeline) retrieve(ctx context.Context, u webgrab.ClassifiedURL, destPath string, timeout time.Duration) (outcome webgrab.Outcome, skipped bool) {
	if ctx.Err() != nil {
		return webgrab.Outcome{URL: u.URL, Err: ctx.Err()}, true
	}

	if p.Limiter != nil {
		if err := p.Limiter.Wait(ctx, hostOf(u.URL)); err != nil {
			// Wait only fails when the context is canceled.
			return webgrab.Outcome{URL: u.URL, Err: err}, true
		}
	}

	fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()

	if err := p.Fetcher.FetchResource(fctx, u.URL, destPath); err != nil {
		if p.Logger != nil {
			p.Logger.Warn("download failed", "url", u.URL, "role", u.Role.String(), "err", err)
		}
		return webgrab.Outcome{URL: u.URL, Err: err}, false
	}

	if p.Logger != nil {
		p.Logger.Debug("downloaded", "url", u.URL, "role", u.Role.String(), "path", destPath)
	}
	return webgrab.Outcome{URL: u.URL, LocalPath: destPath, Succeeded: true}, false
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Host
}
