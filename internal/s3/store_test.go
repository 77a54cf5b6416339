package s3

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/rpggio/projectboard/internal/domain/project"
	"github.com/rpggio/projectboard/internal/repository"
	"github.com/stretchr/testify/require"
)

// fakeS3 is an http.RoundTripper serving path-style GetObject and PutObject.
type fakeS3 struct {
	mu      sync.Mutex
	objects map[string][]byte
	puts    int
}

func (f *fakeS3) RoundTrip(req *http.Request) (*http.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	// Path style: /<bucket>/<key>
	parts := strings.SplitN(strings.TrimPrefix(req.URL.Path, "/"), "/", 2)
	key := ""
	if len(parts) == 2 {
		key = parts[1]
	}

	switch req.Method {
	case http.MethodPut:
		body, _ := io.ReadAll(req.Body)
		if dec, ok := decodeChunked(body); ok {
			body = dec
		}
		f.objects[key] = body
		f.puts++
		return &http.Response{StatusCode: http.StatusOK, Body: io.NopCloser(bytes.NewReader(nil)), Header: http.Header{"ETag": {"\"etag\""}}}, nil
	case http.MethodGet:
		body, ok := f.objects[key]
		if !ok {
			payload := `<?xml version="1.0" encoding="UTF-8"?><Error><Code>NoSuchKey</Code><Message>The specified key does not exist.</Message></Error>`
			return &http.Response{StatusCode: http.StatusNotFound, Body: io.NopCloser(strings.NewReader(payload)), Header: http.Header{"Content-Type": {"application/xml"}}}, nil
		}
		return &http.Response{StatusCode: http.StatusOK, Body: io.NopCloser(bytes.NewReader(body)), Header: http.Header{
			"Content-Type": {contentType},
			"ETag":         {"\"etag\""},
		}}, nil
	}
	return &http.Response{StatusCode: http.StatusNotImplemented, Body: io.NopCloser(bytes.NewReader(nil)), Header: http.Header{}}, nil
}

// decodeChunked unwraps a single-chunk aws-chunked payload: <hex>[;ext]\r\n<body>\r\n0\r\n...
func decodeChunked(b []byte) ([]byte, bool) {
	parts := strings.Split(string(b), "\r\n")
	if len(parts) < 3 {
		return nil, false
	}
	header := strings.SplitN(parts[0], ";", 2)[0]
	var size int
	for _, c := range header {
		size <<= 4
		switch {
		case c >= '0' && c <= '9':
			size += int(c - '0')
		case c >= 'a' && c <= 'f':
			size += int(c-'a') + 10
		case c >= 'A' && c <= 'F':
			size += int(c-'A') + 10
		default:
			return nil, false
		}
	}
	if len(parts[1]) != size {
		return nil, false
	}
	return []byte(parts[1]), true
}

func newFakeStore(t *testing.T) (*Store, *fakeS3) {
	t.Helper()
	fake := &fakeS3{objects: make(map[string][]byte)}
	store, err := New(context.Background(), Config{
		Region:          "us-east-1",
		Bucket:          "test-bucket",
		Prefix:          "projectboard/",
		Endpoint:        "https://mock.s3.local",
		AccessKeyID:     "AKIA",
		SecretAccessKey: "SECRET",
		PathStyle:       true,
		HTTPClient:      &http.Client{Transport: fake},
	})
	require.NoError(t, err)
	return store, fake
}

func TestStore_RequiresBucket(t *testing.T) {
	_, err := New(context.Background(), Config{})
	require.Error(t, err)
}

func TestStore_GetMissing(t *testing.T) {
	store, _ := newFakeStore(t)
	_, err := store.Get(context.Background(), "@projects_v4")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestStore_PutGet(t *testing.T) {
	store, fake := newFakeStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "@projects_v4", []byte(`[]`)))
	require.Contains(t, fake.objects, "projectboard/@projects_v4")

	got, err := store.Get(ctx, "@projects_v4")
	require.NoError(t, err)
	require.Equal(t, `[]`, string(got))
}

func TestStore_BacksQueryService(t *testing.T) {
	store, fake := newFakeStore(t)
	ctx := context.Background()
	svc := project.NewService(store, project.Options{}, nil)

	seeded, err := svc.List(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, fake.puts)

	again, err := svc.List(ctx)
	require.NoError(t, err)
	require.Equal(t, seeded, again)
	require.Equal(t, 1, fake.puts)
}
