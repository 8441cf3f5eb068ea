// Package backup pushes the orchestrator's artifacts (the DuckDB database
// file, and the files written under a run's configured output location) to
// object storage and pulls them back. It is a collaborator the core
// orchestrator never calls itself — spec.md section 1 places remote
// persistence out of scope for the core specification — wired instead
// directly from the CLI's backup/restore commands.
package backup

import (
	"context"
	"fmt"
	"net/url"
)

// Backend uploads and downloads a single object against one cloud storage
// provider. Implementations: S3Backend, AzureBackend, GCSBackend.
type Backend interface {
	// Upload reads localPath and writes it to key under the backend's
	// configured container/bucket.
	Upload(ctx context.Context, localPath, key string) error
	// Download reads key from the backend's configured container/bucket and
	// writes it to localPath, creating parent directories as needed.
	Download(ctx context.Context, key, localPath string) error
}

// ForURI constructs the Backend implied by uri's scheme: s3://, azblob://,
// or gs://. The returned Backend is already bound to the bucket/container
// named in uri; callers pass only the object key to Upload/Download.
func ForURI(ctx context.Context, uri string) (Backend, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return nil, fmt.Errorf("parse backup destination %q: %w", uri, err)
	}
	switch u.Scheme {
	case "s3":
		return newS3Backend(ctx, u.Host)
	case "azblob":
		account, container, err := splitAzureHost(u)
		if err != nil {
			return nil, err
		}
		return newAzureBackend(ctx, account, container)
	case "gs":
		return newGCSBackend(ctx, u.Host)
	default:
		return nil, fmt.Errorf("unsupported backup scheme %q, want s3, azblob, or gs", u.Scheme)
	}
}

// KeyFromURI returns the object key portion of uri (everything after the
// bucket/container), trimmed of its leading slash.
func KeyFromURI(uri string) (string, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return "", fmt.Errorf("parse backup destination %q: %w", uri, err)
	}
	key := u.Path
	if len(key) > 0 && key[0] == '/' {
		key = key[1:]
	}
	if u.Scheme == "azblob" {
		// azblob://account/container/key — the container is the first path
		// segment, already consumed by splitAzureHost; strip it here too.
		if idx := indexByte(key, '/'); idx >= 0 {
			key = key[idx+1:]
		} else {
			key = ""
		}
	}
	if key == "" {
		return "", fmt.Errorf("backup destination %q has no object key", uri)
	}
	return key, nil
}

func indexByte(s string, b byte) int {
	for i := 0; i < len(s); i++ {
		if s[i] == b {
			return i
		}
	}
	return -1
}

func splitAzureHost(u *url.URL) (account, container string, err error) {
	account = u.Host
	path := u.Path
	if len(path) > 0 && path[0] == '/' {
		path = path[1:]
	}
	if idx := indexByte(path, '/'); idx >= 0 {
		container = path[:idx]
	} else {
		container = path
	}
	if account == "" || container == "" {
		return "", "", fmt.Errorf("azblob destination %q must be azblob://account/container/key", u.String())
	}
	return account, container, nil
}
