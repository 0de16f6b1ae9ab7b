package docstore

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeS3 is an in-memory http.RoundTripper answering GetObject and PutObject.
type fakeS3 struct {
	mu      sync.Mutex
	objects map[string][]byte
	puts    int
}

func (f *fakeS3) RoundTrip(req *http.Request) (*http.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := strings.TrimPrefix(req.URL.Path, "/")
	switch req.Method {
	case http.MethodGet:
		body, ok := f.objects[key]
		if !ok {
			return xmlResponse(http.StatusNotFound, `<Error><Code>NoSuchKey</Code><Message>missing</Message></Error>`), nil
		}
		return &http.Response{
			StatusCode:    http.StatusOK,
			Body:          io.NopCloser(bytes.NewReader(body)),
			ContentLength: int64(len(body)),
			Header:        http.Header{"Content-Type": {"application/json"}},
		}, nil
	case http.MethodPut:
		body, err := io.ReadAll(req.Body)
		if err != nil {
			return nil, err
		}
		f.objects[key] = body
		f.puts++
		return &http.Response{StatusCode: http.StatusOK, Body: io.NopCloser(bytes.NewReader(nil)), Header: http.Header{"ETag": {`"etag"`}}}, nil
	}
	return xmlResponse(http.StatusNotImplemented, `<Error><Code>NotImplemented</Code></Error>`), nil
}

func xmlResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     http.Header{"Content-Type": {"application/xml"}},
	}
}

func newFakeS3Backend(t *testing.T) (*S3Backend, *fakeS3) {
	t.Helper()

	fake := &fakeS3{objects: map[string][]byte{}}
	backend, err := NewS3Backend(context.Background(), S3Config{
		Bucket:          "fleet",
		Key:             "store/data.json",
		Region:          "eu-west-2",
		Endpoint:        "https://s3.mock.local",
		AccessKeyID:     "AKIA",
		SecretAccessKey: "SECRET",
		PathStyle:       true,
		HTTPClient:      &http.Client{Transport: fake},
	})
	require.NoError(t, err)
	return backend, fake
}

func TestS3BackendMissingObjectIsEmpty(t *testing.T) {
	backend, _ := newFakeS3Backend(t)

	data, err := backend.Load(context.Background())
	require.NoError(t, err)
	require.Empty(t, data)
}

func TestS3BackendRoundTrip(t *testing.T) {
	backend, fake := newFakeS3Backend(t)
	store, _ := newTestStore(t, backend)
	ctx := context.Background()

	doc, err := store.Create(ctx, "mutual_aid_schemes", Document{"name": "Valley", "balance": 10})
	require.NoError(t, err)

	_, err = store.Update(ctx, "mutual_aid_schemes", doc.ID(), Document{"balance": 25})
	require.NoError(t, err)

	got, err := store.Get(ctx, "mutual_aid_schemes", doc.ID())
	require.NoError(t, err)
	require.Equal(t, float64(25), got["balance"])

	require.Equal(t, 2, fake.puts)
	require.Contains(t, fake.objects, "fleet/store/data.json")
}

func TestNewS3BackendRequiresBucket(t *testing.T) {
	_, err := NewS3Backend(context.Background(), S3Config{})
	require.Error(t, err)
}
