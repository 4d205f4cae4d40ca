package storage

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type fakeBucket struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func (b *fakeBucket) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch r.Method {
	case http.MethodPut:
		body, _ := io.ReadAll(r.Body)
		b.objects[r.URL.Path] = body
		w.WriteHeader(http.StatusOK)
	case http.MethodGet:
		body, ok := b.objects[r.URL.Path]
		if !ok {
			w.Header().Set("Content-Type", "application/xml")
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `<?xml version="1.0" encoding="UTF-8"?><Error><Code>NoSuchKey</Code><Message>missing</Message></Error>`)
			return
		}
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write(body)
	case http.MethodDelete:
		delete(b.objects, r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func newTestStore(t *testing.T) (*S3Store, *fakeBucket) {
	t.Helper()
	bucket := &fakeBucket{objects: map[string][]byte{}}
	srv := httptest.NewServer(bucket)
	t.Cleanup(srv.Close)

	client := s3.New(s3.Options{
		Region:                     "us-east-1",
		BaseEndpoint:               aws.String(srv.URL),
		UsePathStyle:               true,
		Credentials:                credentials.NewStaticCredentialsProvider("key", "secret", ""),
		RequestChecksumCalculation: aws.RequestChecksumCalculationWhenRequired,
		ResponseChecksumValidation: aws.ResponseChecksumValidationWhenRequired,
	})
	return NewS3Store(client, "feedback"), bucket
}

func TestInputKey(t *testing.T) {
	if got := InputKey("abc123"); got != "reports/abc123.txt" {
		t.Fatalf("unexpected key %q", got)
	}
}

func TestS3Store_RoundTrip(t *testing.T) {
	store, bucket := newTestStore(t)
	ctx := context.Background()
	key := InputKey("r1")

	if err := store.PutText(ctx, key, "Great product. Slow delivery."); err != nil {
		t.Fatalf("put: %v", err)
	}
	if _, ok := bucket.objects["/feedback/reports/r1.txt"]; !ok {
		t.Fatalf("object not stored under bucket path, have %v", bucket.objects)
	}

	got, err := store.GetText(ctx, key)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != "Great product. Slow delivery." {
		t.Fatalf("unexpected content %q", got)
	}

	if err := store.DeleteFile(ctx, key); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.GetText(ctx, key); !errors.Is(err, ErrObjectNotFound) {
		t.Fatalf("expected ErrObjectNotFound after delete, got %v", err)
	}
}
