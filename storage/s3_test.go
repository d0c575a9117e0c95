package storage

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	mu          sync.Mutex
	path        string
	contentType string
	body        []byte
	status      int
}

func (f *fakeS3) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if r.Method != http.MethodPut {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	f.path = r.URL.Path
	f.contentType = r.Header.Get("Content-Type")
	f.body, _ = io.ReadAll(r.Body)
	if f.status != 0 {
		w.WriteHeader(f.status)
		return
	}
	w.Header().Set("ETag", `"abc"`)
	w.WriteHeader(http.StatusOK)
}

func TestS3PhotoStore_Put(t *testing.T) {
	fake := &fakeS3{}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	store, err := NewS3PhotoStore(S3Config{
		Bucket:    "photos",
		Prefix:    "/trainers/",
		Region:    "sa-east-1",
		Endpoint:  srv.URL,
		AccessKey: "test",
		SecretKey: "test",
	}, discardLogger())
	require.NoError(t, err)

	url, err := store.Put(context.Background(), "abc.png", "image/png", []byte("\x89PNG data"))
	require.NoError(t, err)

	assert.Equal(t, srv.URL+"/photos/trainers/abc.png", url)
	assert.Equal(t, "/photos/trainers/abc.png", fake.path)
	assert.Equal(t, "image/png", fake.contentType)
	assert.Equal(t, []byte("\x89PNG data"), fake.body)
}

func TestS3PhotoStore_PublicBaseURL(t *testing.T) {
	fake := &fakeS3{}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	store, err := NewS3PhotoStore(S3Config{
		Bucket:        "photos",
		Endpoint:      srv.URL,
		AccessKey:     "test",
		SecretKey:     "test",
		PublicBaseURL: "https://cdn.example.com/",
	}, discardLogger())
	require.NoError(t, err)

	url, err := store.Put(context.Background(), "x.jpg", "image/jpeg", []byte{0xff, 0xd8})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/x.jpg", url)
}

func TestS3PhotoStore_UploadFailure(t *testing.T) {
	fake := &fakeS3{status: http.StatusForbidden}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	store, err := NewS3PhotoStore(S3Config{
		Bucket:    "photos",
		Endpoint:  srv.URL,
		AccessKey: "test",
		SecretKey: "test",
	}, discardLogger())
	require.NoError(t, err)

	_, err = store.Put(context.Background(), "x.jpg", "image/jpeg", []byte{0xff})
	assert.Error(t, err)
}

func TestS3PhotoStore_DefaultURL(t *testing.T) {
	store := &S3PhotoStore{cfg: S3Config{Bucket: "photos", Region: "sa-east-1"}}
	assert.Equal(t, "https://photos.s3.sa-east-1.amazonaws.com/a/b.png", store.objectURL("a/b.png"))
}

func TestNewS3PhotoStore_RequiresBucket(t *testing.T) {
	_, err := NewS3PhotoStore(S3Config{}, discardLogger())
	assert.Error(t, err)
}
