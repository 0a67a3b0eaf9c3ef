package loader

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	minio "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// S3Scheme is the URI scheme served by S3.
const S3Scheme = "s3"

// S3Config configures an S3-compatible object store client.
type S3Config struct {
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	Region          string
	UseSSL          bool
}

type objectGetter interface {
	getObject(ctx context.Context, bucket, key string) (io.ReadCloser, error)
}

// S3 serves s3://bucket/key URIs from an S3-compatible object store.
type S3 struct {
	store objectGetter
}

// NewS3 creates a fetcher over an existing minio client.
func NewS3(client *minio.Client) *S3 {
	return &S3{store: minioStore{client: client}}
}

// NewS3FromConfig creates a minio client from cfg and wraps it.
func NewS3FromConfig(cfg S3Config) (*S3, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("create s3 client: %w", err)
	}
	return NewS3(client), nil
}

// Fetch implements Fetcher.
func (s *S3) Fetch(ctx context.Context, uri string) (io.ReadCloser, error) {
	bucket, key, err := splitS3URI(uri)
	if err != nil {
		return nil, err
	}
	return s.store.getObject(ctx, bucket, key)
}

func splitS3URI(uri string) (string, string, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return "", "", fmt.Errorf("parse uri %q: %w", uri, err)
	}
	if u.Scheme != S3Scheme {
		return "", "", fmt.Errorf("%q: %w", u.Scheme, ErrUnsupportedScheme)
	}
	key := strings.TrimPrefix(u.Path, "/")
	if u.Host == "" || key == "" {
		return "", "", fmt.Errorf("s3 uri %q must be s3://bucket/key", uri)
	}
	return u.Host, key, nil
}

type minioStore struct {
	client *minio.Client
}

func (m minioStore) getObject(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
	obj, err := m.client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("get s3://%s/%s: %w", bucket, key, err)
	}
	// GetObject is lazy; Stat surfaces missing objects before the first read.
	if _, err := obj.Stat(); err != nil {
		_ = obj.Close()
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, fmt.Errorf("s3://%s/%s: %w", bucket, key, ErrNotFound)
		}
		return nil, fmt.Errorf("stat s3://%s/%s: %w", bucket, key, err)
	}
	return obj, nil
}
