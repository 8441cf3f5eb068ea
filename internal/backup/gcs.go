package backup

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"cloud.google.com/go/storage"
)

// GCSBackend uploads and downloads objects in a single Google Cloud Storage
// bucket, authenticating via Application Default Credentials.
type GCSBackend struct {
	client *storage.Client
	bucket string
}

func newGCSBackend(ctx context.Context, bucket string) (*GCSBackend, error) {
	if bucket == "" {
		return nil, fmt.Errorf("gs backup destination is missing a bucket name")
	}
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("create GCS client: %w", err)
	}
	return &GCSBackend{client: client, bucket: bucket}, nil
}

func (b *GCSBackend) Upload(ctx context.Context, localPath, key string) error {
	f, err := os.Open(localPath) //nolint:gosec // path is caller-controlled
	if err != nil {
		return fmt.Errorf("open %s: %w", localPath, err)
	}
	defer f.Close() //nolint:errcheck

	w := b.client.Bucket(b.bucket).Object(key).NewWriter(ctx)
	if _, err := io.Copy(w, f); err != nil {
		_ = w.Close()
		return fmt.Errorf("upload %s to gs://%s/%s: %w", localPath, b.bucket, key, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("finalize upload of %s to gs://%s/%s: %w", localPath, b.bucket, key, err)
	}
	return nil
}

func (b *GCSBackend) Download(ctx context.Context, key, localPath string) error {
	if err := os.MkdirAll(filepath.Dir(localPath), 0o755); err != nil {
		return fmt.Errorf("create parent dir for %s: %w", localPath, err)
	}
	r, err := b.client.Bucket(b.bucket).Object(key).NewReader(ctx)
	if err != nil {
		return fmt.Errorf("open gs://%s/%s: %w", b.bucket, key, err)
	}
	defer r.Close() //nolint:errcheck

	f, err := os.Create(localPath) //nolint:gosec // path is caller-controlled
	if err != nil {
		return fmt.Errorf("create %s: %w", localPath, err)
	}
	defer f.Close() //nolint:errcheck

	if _, err := io.Copy(f, r); err != nil {
		return fmt.Errorf("download gs://%s/%s to %s: %w", b.bucket, key, localPath, err)
	}
	return nil
}
