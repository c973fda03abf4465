// Package http provides net/http-based implementations of
// webgrab.DocumentFetcher and webgrab.ResourceFetcher.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/jgrochowski/webgrab"
)

// DefaultTimeout is the default timeout for both document fetches and
// individual resource retrievals.
const DefaultTimeout = 15 * time.Second

// DefaultUserAgent is the conventional client identity sent with every
// request.
const DefaultUserAgent = "Mozilla/5.0 (compatible; webgrab/1.0)"

// Ensure Client implements both fetcher interfaces at compile time.
var (
	_ webgrab.DocumentFetcher = (*Client)(nil)
	_ webgrab.ResourceFetcher = (*Client)(nil)
)

// Client fetches documents and resources over HTTP.
type Client struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the per-request timeout.
// Defaults to DefaultTimeout (15s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// NewClient creates a new Client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		timeout:   DefaultTimeout,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.client = &http.Client{
		Timeout: c.timeout,
	}

	return c
}

// Fetch retrieves the document body from the given URL in a single attempt.
func (c *Client) Fetch(ctx context.Context, url string) (string, error) {
	resp, err := c.get(ctx, url)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	return string(body), nil
}

// FetchResource downloads the resource at url to destPath. The destination
// directory must already exist. On any failure the partial file is removed
// so a failed retrieval never leaves a truncated artifact behind.
func (c *Client) FetchResource(ctx context.Context, url, destPath string) error {
	resp, err := c.get(ctx, url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	f, err := os.Create(destPath)
	if err != nil {
		return err
	}

	if _, err := io.Copy(f, resp.Body); err != nil {
		f.Close()
		os.Remove(destPath)
		return err
	}

	if err := f.Close(); err != nil {
		os.Remove(destPath)
		return err
	}

	return nil
}

func (c *Client) get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}

	return resp, nil
}
