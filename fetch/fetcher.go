// Package fetch retrieves raw source bytes for a sync run.
package fetch

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/pkg/errors"

	"github.com/hmistry/gutensync/version"
)

// Fetcher turns a source reference (http(s) URL or local file path) into raw
// bytes. One attempt per call, no retries; the retry policy belongs to the
// caller.
type Fetcher interface {
	Fetch(ctx context.Context, src string) ([]byte, error)
}

// Client fetches http(s) sources over the network and anything else from the
// local filesystem (the bundled seed catalog).
type Client struct {
	client *http.Client
}

func NewClient(timeout time.Duration) *Client {
	return &Client{
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *Client) Fetch(ctx context.Context, src string) ([]byte, error) {
	if u, err := url.Parse(src); err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		return c.fetchHTTP(ctx, src)
	}
	return c.fetchFile(src)
}

func (c *Client) fetchHTTP(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create request")
	}
	req.Header.Set("User-Agent", "gutensync/"+version.GetCurrentVersion())

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to fetch %s", rawURL)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("unexpected status %d fetching %s", resp.StatusCode, rawURL)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read body of %s", rawURL)
	}
	return data, nil
}

func (c *Client) fetchFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}
	return data, nil
}
