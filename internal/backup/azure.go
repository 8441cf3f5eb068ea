package backup

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
)

// AzureBackend uploads and downloads blobs in a single Azure Storage
// container, authenticating with AZURE_STORAGE_ACCOUNT_KEY (shared-key
// credentials), matching the teacher's presigner construction pattern.
type AzureBackend struct {
	client    *azblob.Client
	container string
}

func newAzureBackend(_ context.Context, account, container string) (*AzureBackend, error) {
	key := os.Getenv("AZURE_STORAGE_ACCOUNT_KEY")
	if key == "" {
		return nil, fmt.Errorf("AZURE_STORAGE_ACCOUNT_KEY is required for azblob://%s/%s", account, container)
	}
	cred, err := azblob.NewSharedKeyCredential(account, key)
	if err != nil {
		return nil, fmt.Errorf("create Azure shared key credential: %w", err)
	}
	serviceURL := fmt.Sprintf("https://%s.blob.core.windows.net", account)
	client, err := azblob.NewClientWithSharedKeyCredential(serviceURL, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("create Azure blob client: %w", err)
	}
	return &AzureBackend{client: client, container: container}, nil
}

func (b *AzureBackend) Upload(ctx context.Context, localPath, key string) error {
	f, err := os.Open(localPath) //nolint:gosec // path is caller-controlled
	if err != nil {
		return fmt.Errorf("open %s: %w", localPath, err)
	}
	defer f.Close() //nolint:errcheck

	if _, err := b.client.UploadFile(ctx, b.container, key, f, nil); err != nil {
		return fmt.Errorf("upload %s to azblob://%s/%s: %w", localPath, b.container, key, err)
	}
	return nil
}

func (b *AzureBackend) Download(ctx context.Context, key, localPath string) error {
	if err := os.MkdirAll(filepath.Dir(localPath), 0o755); err != nil {
		return fmt.Errorf("create parent dir for %s: %w", localPath, err)
	}
	f, err := os.Create(localPath) //nolint:gosec // path is caller-controlled
	if err != nil {
		return fmt.Errorf("create %s: %w", localPath, err)
	}
	defer f.Close() //nolint:errcheck

	if _, err := b.client.DownloadFile(ctx, b.container, key, f, nil); err != nil {
		return fmt.Errorf("download azblob://%s/%s to %s: %w", b.container, key, localPath, err)
	}
	return nil
}
