package webgrab

import "context"

// DocumentFetcher retrieves the HTML body of a document.
// A failure here is terminal for the whole extraction: no partial results
// are produced.
type DocumentFetcher interface {
	// Fetch performs a single blocking attempt to retrieve the document.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (body string, err error)
}

// ResourceFetcher retrieves a single binary resource to a local path.
type ResourceFetcher interface {
	// FetchResource downloads the resource byte-for-byte to destPath.
	// The destination directory must already exist. On failure no partial
	// file is left behind.
	FetchResource(ctx context.Context, url, destPath string) error
}
