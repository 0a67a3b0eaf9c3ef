package jsonschema

import (
	"io/fs"
	"net/http"

	"github.com/jacoelho/jsonschema/internal/loader"
	minio "github.com/minio/minio-go/v7"
)

// Fetcher retrieves external schema documents by absolute URI.
type Fetcher = loader.Fetcher

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc = loader.FetcherFunc

// S3Config configures an S3-compatible object store fetcher.
type S3Config = loader.S3Config

// FSFetcher serves file:// URIs from fsys.
func FSFetcher(fsys fs.FS) Fetcher {
	return loader.NewFS(fsys)
}

// HTTPFetcher serves http:// and https:// URIs. A nil client selects
// http.DefaultClient; maxBytes <= 0 selects the default size limit.
func HTTPFetcher(client *http.Client, maxBytes int64) Fetcher {
	return loader.NewHTTP(client, maxBytes)
}

// S3Fetcher serves s3://bucket/key URIs through an existing minio client.
func S3Fetcher(client *minio.Client) Fetcher {
	return loader.NewS3(client)
}

// NewS3Fetcher creates an S3 fetcher from connection settings.
func NewS3Fetcher(cfg S3Config) (Fetcher, error) {
	s3, err := loader.NewS3FromConfig(cfg)
	if err != nil {
		return nil, err
	}
	return s3, nil
}

// MapFetcher serves documents from memory keyed by absolute URI.
func MapFetcher(docs map[string][]byte) Fetcher {
	return loader.Map(docs)
}

// SchemeFetcher dispatches by URI scheme. Keys are schemes such as "https"
// or "s3".
func SchemeFetcher(byScheme map[string]Fetcher) Fetcher {
	mux := loader.NewMux()
	for scheme, f := range byScheme {
		mux.Handle(scheme, f)
	}
	return mux
}
