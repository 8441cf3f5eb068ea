package backup

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Backend uploads and downloads objects in a single S3 bucket, using the
// SDK's default credential chain (env vars, shared config, instance role).
type S3Backend struct {
	client *s3.Client
	bucket string
}

func newS3Backend(ctx context.Context, bucket string) (*S3Backend, error) {
	if bucket == "" {
		return nil, fmt.Errorf("s3 backup destination is missing a bucket name")
	}
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}
	return &S3Backend{client: s3.NewFromConfig(cfg), bucket: bucket}, nil
}

func (b *S3Backend) Upload(ctx context.Context, localPath, key string) error {
	f, err := os.Open(localPath) //nolint:gosec // path is caller-controlled
	if err != nil {
		return fmt.Errorf("open %s: %w", localPath, err)
	}
	defer f.Close() //nolint:errcheck

	uploader := manager.NewUploader(b.client)
	_, err = uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket: &b.bucket,
		Key:    &key,
		Body:   f,
	})
	if err != nil {
		return fmt.Errorf("upload %s to s3://%s/%s: %w", localPath, b.bucket, key, err)
	}
	return nil
}

func (b *S3Backend) Download(ctx context.Context, key, localPath string) error {
	if err := os.MkdirAll(filepath.Dir(localPath), 0o755); err != nil {
		return fmt.Errorf("create parent dir for %s: %w", localPath, err)
	}
	f, err := os.Create(localPath) //nolint:gosec // path is caller-controlled
	if err != nil {
		return fmt.Errorf("create %s: %w", localPath, err)
	}
	defer f.Close() //nolint:errcheck

	downloader := manager.NewDownloader(b.client)
	_, err = downloader.Download(ctx, f, &s3.GetObjectInput{
		Bucket: &b.bucket,
		Key:    &key,
	})
	if err != nil {
		return fmt.Errorf("download s3://%s/%s to %s: %w", b.bucket, key, localPath, err)
	}
	return nil
}
