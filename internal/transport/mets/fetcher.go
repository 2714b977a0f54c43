package mets

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/kailas-cloud/dlfindex/internal/domain"
)

// DefaultFetchTimeout bounds one remote descriptor download.
const DefaultFetchTimeout = 30 * time.Second

// Fetcher opens descriptor locations: local paths, file:// and http(s):// URLs.
type Fetcher struct {
	client *http.Client
}

// NewFetcher creates a fetcher whose remote requests time out after timeout.
func NewFetcher(timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	return &Fetcher{client: &http.Client{Timeout: timeout}}
}

// Fetch opens location for reading. The caller closes the reader.
func (f *Fetcher) Fetch(ctx context.Context, location string) (io.ReadCloser, error) {
	u, err := url.Parse(location)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid location %q: %w", domain.ErrMalformedDocument, location, err)
	}

	switch u.Scheme {
	case "http", "https":
		return f.fetchHTTP(ctx, location)
	case "file":
		return openFile(u.Path)
	case "":
		return openFile(location)
	default:
		return nil, fmt.Errorf("%w: unsupported location scheme %q", domain.ErrMalformedDocument, u.Scheme)
	}
}

func (f *Fetcher) fetchHTTP(ctx context.Context, location string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrMalformedDocument, err)
	}
	req.Header.Set("Accept", "application/xml, text/xml")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrMalformedDocument, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("%w: %s returned %d", domain.ErrMalformedDocument, location, resp.StatusCode)
	}
	return resp.Body, nil
}

func openFile(path string) (io.ReadCloser, error) {
	file, err := os.Open(path) //nolint:gosec // locations come from the relational store
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrMalformedDocument, err)
	}
	return file, nil
}
