package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/url"
	"path"
	"strings"
)

// FileScheme is the URI scheme assigned to documents served by FS.
const FileScheme = "file"

// FS serves file:// URIs from an fs.FS with strict path validation.
type FS struct {
	fsys fs.FS
}

// NewFS creates a fetcher backed by fsys.
func NewFS(fsys fs.FS) *FS {
	return &FS{fsys: fsys}
}

// URI returns the file:// URI for a slash-separated location inside the FS.
func URI(location string) (string, error) {
	name, err := cleanLocation(location)
	if err != nil {
		return "", err
	}
	u := url.URL{Scheme: FileScheme, Path: "/" + name}
	return u.String(), nil
}

// Fetch implements Fetcher.
func (f *FS) Fetch(ctx context.Context, uri string) (io.ReadCloser, error) {
	if f == nil || f.fsys == nil {
		return nil, fmt.Errorf("no filesystem configured")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	u, err := url.Parse(uri)
	if err != nil {
		return nil, fmt.Errorf("parse uri %q: %w", uri, err)
	}
	if u.Scheme != "" && u.Scheme != FileScheme {
		return nil, fmt.Errorf("%q: %w", u.Scheme, ErrUnsupportedScheme)
	}
	name, err := cleanLocation(strings.TrimPrefix(u.Path, "/"))
	if err != nil {
		return nil, err
	}
	file, err := f.fsys.Open(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", name, ErrNotFound)
		}
		return nil, err
	}
	return file, nil
}

func cleanLocation(location string) (string, error) {
	if location == "" {
		return "", fmt.Errorf("schema location is empty")
	}
	if strings.Contains(location, "\\") {
		return "", fmt.Errorf("schema location contains backslash: %q", location)
	}
	if strings.HasPrefix(location, "/") {
		return "", fmt.Errorf("schema location must be relative: %q", location)
	}
	for seg := range strings.SplitSeq(location, "/") {
		if seg == "" {
			return "", fmt.Errorf("invalid schema location segment: %q", location)
		}
	}
	canonical := path.Clean(location)
	if canonical == "." {
		return "", fmt.Errorf("schema location is empty")
	}
	if canonical == ".." || strings.HasPrefix(canonical, "../") {
		return "", fmt.Errorf("schema location escapes root: %q", location)
	}
	return canonical, nil
}
