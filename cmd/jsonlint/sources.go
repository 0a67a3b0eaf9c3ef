package main

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/jacoelho/jsonschema"
)

// remoteFetcher serves http(s) and s3 sources. The S3 client is created on
// first use from the environment.
type remoteFetcher struct {
	http    jsonschema.Fetcher
	s3      jsonschema.Fetcher
	s3Err   error
	getenv  func(string) string
	s3Once  sync.Once
	schemes jsonschema.Fetcher
}

func newRemoteFetcher(getenv func(string) string) *remoteFetcher {
	f := &remoteFetcher{
		http:   jsonschema.HTTPFetcher(nil, 0),
		getenv: getenv,
	}
	s3 := jsonschema.FetcherFunc(func(ctx context.Context, uri string) (io.ReadCloser, error) {
		client, err := f.s3Client()
		if err != nil {
			return nil, err
		}
		return client.Fetch(ctx, uri)
	})
	f.schemes = jsonschema.SchemeFetcher(map[string]jsonschema.Fetcher{
		"http":  f.http,
		"https": f.http,
		"s3":    s3,
	})
	return f
}

func (f *remoteFetcher) s3Client() (jsonschema.Fetcher, error) {
	f.s3Once.Do(func() {
		endpoint := f.getenv("S3_ENDPOINT")
		if endpoint == "" {
			f.s3Err = fmt.Errorf("s3 source requires S3_ENDPOINT")
			return
		}
		f.s3, f.s3Err = jsonschema.NewS3Fetcher(jsonschema.S3Config{
			Endpoint:        endpoint,
			AccessKeyID:     f.getenv("AWS_ACCESS_KEY_ID"),
			SecretAccessKey: f.getenv("AWS_SECRET_ACCESS_KEY"),
			Region:          f.getenv("AWS_REGION"),
			UseSSL:          f.getenv("S3_USE_SSL") != "false",
		})
	})
	return f.s3, f.s3Err
}

// Fetch implements jsonschema.Fetcher.
func (f *remoteFetcher) Fetch(ctx context.Context, uri string) (io.ReadCloser, error) {
	return f.schemes.Fetch(ctx, uri)
}

// isRemote reports whether src names a URL rather than a local path.
func isRemote(src string) bool {
	u, err := url.Parse(src)
	if err != nil {
		return false
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https", "s3":
		return true
	default:
		return false
	}
}

// open returns a reader for a local path or remote URL.
func (f *remoteFetcher) open(ctx context.Context, src string) (io.ReadCloser, error) {
	if isRemote(src) {
		return f.Fetch(ctx, src)
	}
	return os.Open(src)
}

// loadSchema compiles the schema at src. Local schemas resolve relative
// $ref values from their directory; every schema may reference remote
// documents.
func loadSchema(ctx context.Context, f *remoteFetcher, src string, opts jsonschema.LoadOptions) (*jsonschema.Schema, error) {
	opts = opts.WithFetcher(f)
	set := jsonschema.NewSchemaSet(opts)
	if !isRemote(src) {
		if err := set.AddFS(os.DirFS(filepath.Dir(src)), filepath.Base(src)); err != nil {
			return nil, err
		}
		return set.CompileContext(ctx)
	}
	rc, err := f.Fetch(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("fetch schema %s: %w", src, err)
	}
	data, readErr := io.ReadAll(rc)
	closeErr := rc.Close()
	if readErr != nil {
		return nil, fmt.Errorf("read schema %s: %w", src, readErr)
	}
	if closeErr != nil {
		return nil, fmt.Errorf("close schema %s: %w", src, closeErr)
	}
	if err := set.AddResource(src, data); err != nil {
		return nil, err
	}
	return set.CompileContext(ctx)
}
