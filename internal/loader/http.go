package loader

import (
	"cmp"
	"context"
	"fmt"
	"io"
	"net/http"
)

// DefaultMaxBytes bounds documents fetched over HTTP.
const DefaultMaxBytes = 8 << 20

// HTTP serves http:// and https:// URIs.
type HTTP struct {
	client   *http.Client
	maxBytes int64
}

// NewHTTP creates an HTTP fetcher. A nil client selects http.DefaultClient;
// maxBytes <= 0 selects DefaultMaxBytes.
func NewHTTP(client *http.Client, maxBytes int64) *HTTP {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTP{client: client, maxBytes: cmp.Or(max(maxBytes, 0), DefaultMaxBytes)}
}

// Fetch implements Fetcher.
func (h *HTTP) Fetch(ctx context.Context, uri string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, StripFragment(uri), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/schema+json, application/json")
	resp, err := h.client.Do(req)
	if err != nil {
		return nil, err
	}
	switch {
	case resp.StatusCode == http.StatusNotFound:
		_ = resp.Body.Close()
		return nil, fmt.Errorf("%s: %w", uri, ErrNotFound)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		_ = resp.Body.Close()
		return nil, fmt.Errorf("%s: unexpected status %s", uri, resp.Status)
	}
	if resp.ContentLength > h.maxBytes {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("%s: %w", uri, ErrTooLarge)
	}
	return &limitedBody{rc: resp.Body, remaining: h.maxBytes}, nil
}

// limitedBody fails with ErrTooLarge instead of silently truncating.
type limitedBody struct {
	rc        io.ReadCloser
	remaining int64
}

func (b *limitedBody) Read(p []byte) (int, error) {
	if b.remaining < 0 {
		return 0, ErrTooLarge
	}
	if int64(len(p)) > b.remaining+1 {
		p = p[:b.remaining+1]
	}
	n, err := b.rc.Read(p)
	b.remaining -= int64(n)
	if b.remaining < 0 {
		return n, ErrTooLarge
	}
	return n, err
}

func (b *limitedBody) Close() error {
	return b.rc.Close()
}
