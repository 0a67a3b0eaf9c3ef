// Package loader fetches schema documents by URI for cross-document $ref
// resolution and for driver inputs.
package loader

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
)

var (
	// ErrNotFound reports a URI with no document behind it.
	ErrNotFound = errors.New("document not found")
	// ErrUnsupportedScheme reports a URI scheme with no registered fetcher.
	ErrUnsupportedScheme = errors.New("unsupported uri scheme")
	// ErrTooLarge reports a document above the configured size limit.
	ErrTooLarge = errors.New("document exceeds size limit")
)

// Fetcher retrieves the raw bytes of the document at uri. The fragment of uri
// is ignored. Callers close the returned reader.
type Fetcher interface {
	Fetch(ctx context.Context, uri string) (io.ReadCloser, error)
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc func(ctx context.Context, uri string) (io.ReadCloser, error)

// Fetch implements Fetcher.
func (f FetcherFunc) Fetch(ctx context.Context, uri string) (io.ReadCloser, error) {
	return f(ctx, uri)
}

// ReadAll fetches uri and reads it fully, closing the reader.
func ReadAll(ctx context.Context, f Fetcher, uri string) ([]byte, error) {
	if f == nil {
		return nil, fmt.Errorf("fetch %s: no fetcher configured", uri)
	}
	rc, err := f.Fetch(ctx, uri)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", uri, err)
	}
	var buf bytes.Buffer
	_, readErr := buf.ReadFrom(rc)
	closeErr := rc.Close()
	if readErr != nil {
		return nil, fmt.Errorf("read %s: %w", uri, readErr)
	}
	if closeErr != nil {
		return nil, fmt.Errorf("close %s: %w", uri, closeErr)
	}
	return buf.Bytes(), nil
}

// StripFragment returns uri without its fragment.
func StripFragment(uri string) string {
	if i := strings.IndexByte(uri, '#'); i >= 0 {
		return uri[:i]
	}
	return uri
}

// Map serves documents from memory keyed by absolute URI.
type Map map[string][]byte

// Fetch implements Fetcher.
func (m Map) Fetch(ctx context.Context, uri string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, ok := m[StripFragment(uri)]
	if !ok {
		return nil, fmt.Errorf("%s: %w", uri, ErrNotFound)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

// Mux dispatches to a Fetcher by URI scheme.
type Mux struct {
	byScheme map[string]Fetcher
	fallback Fetcher
}

// NewMux creates an empty scheme multiplexer.
func NewMux() *Mux {
	return &Mux{byScheme: make(map[string]Fetcher)}
}

// Handle registers f for scheme. Schemes are case-insensitive.
func (m *Mux) Handle(scheme string, f Fetcher) *Mux {
	m.byScheme[strings.ToLower(scheme)] = f
	return m
}

// Fallback sets the fetcher used for schemes with no registered handler.
func (m *Mux) Fallback(f Fetcher) *Mux {
	m.fallback = f
	return m
}

// Fetch implements Fetcher.
func (m *Mux) Fetch(ctx context.Context, uri string) (io.ReadCloser, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return nil, fmt.Errorf("parse uri %q: %w", uri, err)
	}
	f, ok := m.byScheme[strings.ToLower(u.Scheme)]
	if !ok || f == nil {
		f = m.fallback
	}
	if f == nil {
		return nil, fmt.Errorf("%q: %w", u.Scheme, ErrUnsupportedScheme)
	}
	return f.Fetch(ctx, uri)
}
