package s3_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fileupload/internal/config"
	"fileupload/internal/port"
	s3storage "fileupload/internal/storage/s3"
)

type recordedRequest struct {
	method string
	path   string
	acl    string
}

func newFakeS3(t *testing.T, status int) (*httptest.Server, func() []recordedRequest) {
	t.Helper()
	var (
		mu   sync.Mutex
		reqs []recordedRequest
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		reqs = append(reqs, recordedRequest{
			method: r.Method,
			path:   r.URL.Path,
			acl:    r.Header.Get("x-amz-acl"),
		})
		mu.Unlock()
		w.Header().Set("ETag", `"abc123"`)
		w.WriteHeader(status)
	}))
	t.Cleanup(srv.Close)
	return srv, func() []recordedRequest {
		mu.Lock()
		defer mu.Unlock()
		return append([]recordedRequest(nil), reqs...)
	}
}

func testConfig(endpoint string) *config.S3Config {
	return &config.S3Config{
		Provider:  config.ProviderS3,
		Region:    "us-east-1",
		Bucket:    "mybucket",
		Endpoint:  endpoint,
		AccessKey: "AKIATEST",
		SecretKey: "secret",
	}
}

func TestS3Client_PutObject_SinglePrivatePut(t *testing.T) {
	srv, requests := newFakeS3(t, http.StatusOK)
	client, err := s3storage.NewS3Client(testConfig(srv.URL), 5*1024*1024)
	require.NoError(t, err)

	out, err := client.PutObject(context.Background(), port.PutObjectInput{
		Bucket:      "mybucket",
		Key:         "photo.jpg",
		Body:        []byte("jpeg bytes"),
		ContentType: "image/jpeg",
		ACL:         port.ACLPrivate,
	})

	require.NoError(t, err)
	assert.Equal(t, `"abc123"`, out.ETag)

	reqs := requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, http.MethodPut, reqs[0].method)
	assert.Equal(t, "/mybucket/photo.jpg", reqs[0].path)
	assert.Equal(t, "private", reqs[0].acl)
}

func TestS3Client_PutObject_ErrorIsNotRetried(t *testing.T) {
	srv, requests := newFakeS3(t, http.StatusInternalServerError)
	client, err := s3storage.NewS3Client(testConfig(srv.URL), 5*1024*1024)
	require.NoError(t, err)

	_, err = client.PutObject(context.Background(), port.PutObjectInput{
		Bucket: "mybucket",
		Key:    "photo.jpg",
		Body:   []byte("jpeg bytes"),
		ACL:    port.ACLPrivate,
	})

	assert.Error(t, err)
	assert.Len(t, requests(), 1)
}

func TestS3Client_Ping(t *testing.T) {
	srv, requests := newFakeS3(t, http.StatusOK)
	client, err := s3storage.NewS3Client(testConfig(srv.URL), 5*1024*1024)
	require.NoError(t, err)

	assert.NoError(t, client.Ping(context.Background(), "mybucket"))

	reqs := requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, http.MethodHead, reqs[0].method)
	assert.Equal(t, "/mybucket", reqs[0].path)
}

func TestS3Client_Ping_MissingBucket(t *testing.T) {
	srv, _ := newFakeS3(t, http.StatusNotFound)
	client, err := s3storage.NewS3Client(testConfig(srv.URL), 5*1024*1024)
	require.NoError(t, err)

	assert.Error(t, client.Ping(context.Background(), "mybucket"))
}
