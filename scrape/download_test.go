package scrape_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jgrochowski/webgrab"
	"github.com/jgrochowski/webgrab/mock"
	"github.com/jgrochowski/webgrab/scrape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writingFetcher returns a mock that writes a marker file at destPath.
func writingFetcher() *mock.ResourceFetcher {
	return &mock.ResourceFetcher{
		FetchResourceFn: func(_ context.Context, url, destPath string) error {
			return os.WriteFile(destPath, []byte(url), 0644)
		},
	}
}

func images(urls ...string) []webgrab.ClassifiedURL {
	out := make([]webgrab.ClassifiedURL, len(urls))
	for i, u := range urls {
		out[i] = webgrab.ClassifiedURL{URL: u, Role: webgrab.RoleImage}
	}
	return out
}

func TestPipeline_Download(t *testing.T) {
	t.Parallel()

	t.Run("downloads every URL and returns outcomes in input order", func(t *testing.T) {
		t.Parallel()

		dir := filepath.Join(t.TempDir(), "out")
		p := &scrape.Pipeline{Fetcher: writingFetcher(), Concurrency: 4}

		urls := images("https://e.co/a.png", "https://e.co/b.png", "https://e.co/c.png")
		outcomes, err := p.Download(context.Background(), urls, dir, nil)

		require.NoError(t, err)
		require.Len(t, outcomes, 3)
		for i, o := range outcomes {
			assert.Equal(t, urls[i].URL, o.URL)
			assert.True(t, o.Succeeded)
			assert.FileExists(t, o.LocalPath)
		}
	})

	t.Run("creates the destination directory before the first write", func(t *testing.T) {
		t.Parallel()

		dir := filepath.Join(t.TempDir(), "nested", "deep", "out")
		p := &scrape.Pipeline{Fetcher: writingFetcher(), Concurrency: 1}

		_, err := p.Download(context.Background(), images("https://e.co/a.png"), dir, nil)

		require.NoError(t, err)
		assert.DirExists(t, dir)
	})

	t.Run("empty queue resolves immediately", func(t *testing.T) {
		t.Parallel()

		var events []webgrab.ProgressEvent
		p := &scrape.Pipeline{Fetcher: writingFetcher()}

		outcomes, err := p.Download(context.Background(), nil, t.TempDir(), func(e webgrab.ProgressEvent) {
			events = append(events, e)
		})

		require.NoError(t, err)
		assert.Empty(t, outcomes)
		assert.Empty(t, events)
	})

	t.Run("individual failures do not abort siblings", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.ResourceFetcher{
			FetchResourceFn: func(_ context.Context, url, destPath string) error {
				if strings.Contains(url, "bad") {
					return errors.New("connection reset")
				}
				return os.WriteFile(destPath, []byte(url), 0644)
			},
		}
		p := &scrape.Pipeline{Fetcher: fetcher, Concurrency: 1}

		outcomes, err := p.Download(context.Background(),
			images("https://e.co/ok1.png", "https://e.co/bad.png", "https://e.co/ok2.png"),
			t.TempDir(), nil)

		require.NoError(t, err)
		require.Len(t, outcomes, 3)
		assert.True(t, outcomes[0].Succeeded)
		assert.False(t, outcomes[1].Succeeded)
		assert.Empty(t, outcomes[1].LocalPath)
		assert.Error(t, outcomes[1].Err)
		assert.True(t, outcomes[2].Succeeded)
	})

	t.Run("sequential processing reports a strict progress sequence", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.ResourceFetcher{
			FetchResourceFn: func(_ context.Context, url, destPath string) error {
				if strings.Contains(url, "2") {
					return errors.New("transport error")
				}
				return os.WriteFile(destPath, []byte(url), 0644)
			},
		}
		p := &scrape.Pipeline{Fetcher: fetcher, Concurrency: 1}

		var events []webgrab.ProgressEvent
		outcomes, err := p.Download(context.Background(),
			images("https://e.co/1.png", "https://e.co/2.png", "https://e.co/3.png"),
			t.TempDir(), func(e webgrab.ProgressEvent) {
				events = append(events, e)
			})

		require.NoError(t, err)
		assert.Equal(t, []bool{true, false, true}, []bool{
			outcomes[0].Succeeded, outcomes[1].Succeeded, outcomes[2].Succeeded,
		})

		require.Len(t, events, 5)
		assert.Equal(t, webgrab.ProgressStarted, events[0].Type)
		assert.Equal(t, webgrab.ProgressCompleted, events[1].Type)
		assert.Equal(t, webgrab.ProgressFailed, events[2].Type)
		assert.Equal(t, webgrab.ProgressCompleted, events[3].Type)
		assert.Equal(t, webgrab.ProgressFinished, events[4].Type)
		for i, ev := range events[1:4] {
			assert.Equal(t, i+1, ev.Completed)
			assert.Equal(t, 3, ev.Total)
		}
	})

	t.Run("never exceeds the configured concurrency", func(t *testing.T) {
		t.Parallel()

		var inFlight, peak atomic.Int64
		fetcher := &mock.ResourceFetcher{
			FetchResourceFn: func(_ context.Context, url, destPath string) error {
				cur := inFlight.Add(1)
				defer inFlight.Add(-1)
				for {
					old := peak.Load()
					if cur <= old || peak.CompareAndSwap(old, cur) {
						break
					}
				}
				time.Sleep(10 * time.Millisecond)
				return os.WriteFile(destPath, []byte(url), 0644)
			},
		}
		p := &scrape.Pipeline{Fetcher: fetcher, Concurrency: 3}

		var urls []string
		for i := 0; i < 12; i++ {
			urls = append(urls, "https://e.co/pic-"+string(rune('a'+i))+".png")
		}
		outcomes, err := p.Download(context.Background(), images(urls...), t.TempDir(), nil)

		require.NoError(t, err)
		assert.Len(t, outcomes, 12)
		assert.LessOrEqual(t, peak.Load(), int64(3))
	})

	t.Run("processed count reaches the queue length despite failures", func(t *testing.T) {
		t.Parallel()

		n := 0
		var mu sync.Mutex
		fetcher := &mock.ResourceFetcher{
			FetchResourceFn: func(_ context.Context, url, destPath string) error {
				mu.Lock()
				n++
				fail := n%2 == 0
				mu.Unlock()
				if fail {
					return errors.New("flaky")
				}
				return os.WriteFile(destPath, []byte(url), 0644)
			},
		}
		p := &scrape.Pipeline{Fetcher: fetcher, Concurrency: 4}

		var final webgrab.ProgressEvent
		var counts []int
		outcomes, err := p.Download(context.Background(),
			images("https://e.co/1", "https://e.co/2", "https://e.co/3", "https://e.co/4", "https://e.co/5"),
			t.TempDir(), func(e webgrab.ProgressEvent) {
				if e.Type == webgrab.ProgressCompleted || e.Type == webgrab.ProgressFailed {
					counts = append(counts, e.Completed)
				}
				final = e
			})

		require.NoError(t, err)
		assert.Len(t, outcomes, 5)
		assert.Equal(t, webgrab.ProgressFinished, final.Type)
		assert.Equal(t, 5, final.Completed)
		assert.IsIncreasing(t, counts)
		assert.Equal(t, 5, counts[len(counts)-1])
	})

	t.Run("cancellation skips unstarted jobs but resolves all of them", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		var started atomic.Int64
		fetcher := &mock.ResourceFetcher{
			FetchResourceFn: func(fctx context.Context, url, destPath string) error {
				started.Add(1)
				cancel()
				// The transfer context must stay live after cancellation so
				// in-flight work can drain.
				assert.NoError(t, fctx.Err())
				return os.WriteFile(destPath, []byte(url), 0644)
			},
		}
		p := &scrape.Pipeline{Fetcher: fetcher, Concurrency: 1}

		var skipped int
		outcomes, err := p.Download(ctx,
			images("https://e.co/1", "https://e.co/2", "https://e.co/3", "https://e.co/4"),
			t.TempDir(), func(e webgrab.ProgressEvent) {
				if e.Type == webgrab.ProgressSkipped {
					skipped++
				}
			})

		require.NoError(t, err)
		require.Len(t, outcomes, 4)
		// With concurrency 1, exactly the first job runs; the rest are
		// skipped but still resolve.
		assert.Equal(t, int64(1), started.Load())
		assert.Equal(t, 3, skipped)
		assert.True(t, outcomes[0].Succeeded)
		for _, o := range outcomes[1:] {
			assert.False(t, o.Succeeded)
			assert.Error(t, o.Err)
		}
	})

	t.Run("colliding filenames are disambiguated, never overwritten", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		p := &scrape.Pipeline{Fetcher: writingFetcher(), Concurrency: 4}

		outcomes, err := p.Download(context.Background(),
			images("https://a.co/img/photo.png", "https://b.co/other/photo.png", "https://c.co/photo.png"),
			dir, nil)

		require.NoError(t, err)
		paths := map[string]bool{}
		for _, o := range outcomes {
			require.True(t, o.Succeeded)
			assert.False(t, paths[o.LocalPath], "path %q assigned twice", o.LocalPath)
			paths[o.LocalPath] = true

			// Each file holds the URL it was fetched from, proving no
			// overwrite occurred.
			content, err := os.ReadFile(o.LocalPath)
			require.NoError(t, err)
			assert.Equal(t, o.URL, string(content))
		}
		assert.Contains(t, paths, filepath.Join(dir, "photo.png"))
		assert.Contains(t, paths, filepath.Join(dir, "photo-1.png"))
		assert.Contains(t, paths, filepath.Join(dir, "photo-2.png"))
	})

	t.Run("synthesized names are stable across runs", func(t *testing.T) {
		t.Parallel()

		urls := images("https://e.co/", "https://e.co")

		p := &scrape.Pipeline{Fetcher: writingFetcher(), Concurrency: 1}
		first, err := p.Download(context.Background(), urls, t.TempDir(), nil)
		require.NoError(t, err)
		second, err := p.Download(context.Background(), urls, t.TempDir(), nil)
		require.NoError(t, err)

		for i := range first {
			assert.Equal(t, filepath.Base(first[i].LocalPath), filepath.Base(second[i].LocalPath))
		}
	})
}
