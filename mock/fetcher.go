package mock

import (
	"context"

	"github.com/jgrochowski/webgrab"
)

var _ webgrab.DocumentFetcher = (*DocumentFetcher)(nil)

// DocumentFetcher is a mock implementation of webgrab.DocumentFetcher.
type DocumentFetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
}

func (f *DocumentFetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

var _ webgrab.ResourceFetcher = (*ResourceFetcher)(nil)

// ResourceFetcher is a mock implementation of webgrab.ResourceFetcher.
type ResourceFetcher struct {
	FetchResourceFn func(ctx context.Context, url, destPath string) error
}

func (f *ResourceFetcher) FetchResource(ctx context.Context, url, destPath string) error {
	return f.FetchResourceFn(ctx, url, destPath)
}
