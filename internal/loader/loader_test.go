package loader

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFSFetch(t *testing.T) {
	fsys := fstest.MapFS{
		"schemas/root.json":   {Data: []byte(`{"$ref":"defs.json"}`)},
		"schemas/defs.json":   {Data: []byte(`{}`)},
		"schemas/nested/a.js": {Data: []byte(`true`)},
	}
	f := NewFS(fsys)

	data, err := ReadAll(context.Background(), f, "file:///schemas/defs.json#/x")
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(data))

	_, err = ReadAll(context.Background(), f, "file:///schemas/missing.json")
	require.ErrorIs(t, err, ErrNotFound)

	_, err = f.Fetch(context.Background(), "http://example.com/a.json")
	require.ErrorIs(t, err, ErrUnsupportedScheme)
}

func TestURI(t *testing.T) {
	uri, err := URI("schemas/./root.json")
	require.NoError(t, err)
	assert.Equal(t, "file:///schemas/root.json", uri)

	for _, bad := range []string{"", "/abs.json", `a\b.json`, "../up.json", "a//b.json"} {
		_, err := URI(bad)
		assert.Error(t, err, bad)
	}
}

func TestHTTPFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/schema.json":
			w.Header().Set("Content-Type", "application/schema+json")
			_, _ = io.WriteString(w, `{"type":"string"}`)
		case "/big.json":
			_, _ = io.WriteString(w, strings.Repeat(" ", 64))
		case "/broken.json":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	h := NewHTTP(srv.Client(), 32)
	ctx := context.Background()

	data, err := ReadAll(ctx, h, srv.URL+"/schema.json#frag")
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"string"}`, string(data))

	_, err = ReadAll(ctx, h, srv.URL+"/missing.json")
	require.ErrorIs(t, err, ErrNotFound)

	_, err = ReadAll(ctx, h, srv.URL+"/broken.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")

	_, err = ReadAll(ctx, h, srv.URL+"/big.json")
	require.ErrorIs(t, err, ErrTooLarge)
}

func TestHTTPFetchHonoursContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{}`)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewHTTP(nil, 0).Fetch(ctx, srv.URL)
	require.ErrorIs(t, err, context.Canceled)
}

type fakeStore map[string]string

func (f fakeStore) getObject(_ context.Context, bucket, key string) (io.ReadCloser, error) {
	data, ok := f[bucket+"/"+key]
	if !ok {
		return nil, ErrNotFound
	}
	return io.NopCloser(strings.NewReader(data)), nil
}

func TestS3Fetch(t *testing.T) {
	s := &S3{store: fakeStore{"schemas/person.json": `{"type":"object"}`}}

	data, err := ReadAll(context.Background(), s, "s3://schemas/person.json")
	require.NoError(t, err)
	assert.Equal(t, `{"type":"object"}`, string(data))

	_, err = ReadAll(context.Background(), s, "s3://schemas/none.json")
	require.ErrorIs(t, err, ErrNotFound)

	for _, bad := range []string{"s3://bucket-only", "s3:///key", "http://host/key"} {
		_, err := s.Fetch(context.Background(), bad)
		assert.Error(t, err, bad)
	}
}

func TestNewS3FromConfig(t *testing.T) {
	s, err := NewS3FromConfig(S3Config{Endpoint: "localhost:9000", AccessKeyID: "a", SecretAccessKey: "b"})
	require.NoError(t, err)
	require.NotNil(t, s)
}

func TestMuxDispatch(t *testing.T) {
	mem := Map{"mem:///a.json": []byte(`1`)}
	mux := NewMux().Handle("MEM", mem)

	data, err := ReadAll(context.Background(), mux, "mem:///a.json#/x")
	require.NoError(t, err)
	assert.Equal(t, "1", string(data))

	_, err = mux.Fetch(context.Background(), "ftp://host/a.json")
	require.ErrorIs(t, err, ErrUnsupportedScheme)

	mux.Fallback(Map{"ftp://host/a.json": []byte(`2`)})
	data, err = ReadAll(context.Background(), mux, "ftp://host/a.json")
	require.NoError(t, err)
	assert.Equal(t, "2", string(data))
}

func TestReadAllWrapsFetchError(t *testing.T) {
	boom := errors.New("boom")
	f := FetcherFunc(func(context.Context, string) (io.ReadCloser, error) { return nil, boom })
	_, err := ReadAll(context.Background(), f, "x:y")
	require.ErrorIs(t, err, boom)

	_, err = ReadAll(context.Background(), nil, "x:y")
	require.Error(t, err)
}
