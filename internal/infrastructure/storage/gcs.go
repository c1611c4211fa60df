// Package storage adapts Google Cloud Storage to the uploader port: a staged
// local file goes in, a public location and object key come out. There is no
// remote deletion path; replaced or orphaned remote objects stay behind.
package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	gcs "cloud.google.com/go/storage"

	"github.com/miniblog/blog-api/internal/core/ports"
)

const uploadTimeout = 30 * time.Second

// Config captures the object-store settings.
type Config struct {
	Bucket string
	// PublicBaseURL overrides the default public object URL, e.g. a CDN
	// domain. Empty means the storage.googleapis.com form.
	PublicBaseURL string
}

// Uploader pushes staged files into a GCS bucket.
type Uploader struct {
	client        *gcs.Client
	bucket        string
	publicBaseURL string
}

// NewUploader wraps an existing GCS client. The client is process-wide state
// owned by the caller and closed on shutdown.
func NewUploader(client *gcs.Client, cfg Config) (*Uploader, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("storage: bucket name is required")
	}
	return &Uploader{
		client:        client,
		bucket:        cfg.Bucket,
		publicBaseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
	}, nil
}

// Upload streams the file at localPath into the bucket under key and returns
// the stored object's location.
func (u *Uploader) Upload(ctx context.Context, localPath, key string) (ports.UploadResult, error) {
	ctx, cancel := context.WithTimeout(ctx, uploadTimeout)
	defer cancel()

	f, err := os.Open(localPath)
	if err != nil {
		return ports.UploadResult{}, fmt.Errorf("storage: open %s: %w", localPath, err)
	}
	defer f.Close()

	w := u.client.Bucket(u.bucket).Object(key).NewWriter(ctx)
	if _, err := io.Copy(w, f); err != nil {
		_ = w.Close()
		return ports.UploadResult{}, fmt.Errorf("storage: write %s: %w", key, err)
	}
	if err := w.Close(); err != nil {
		return ports.UploadResult{}, fmt.Errorf("storage: commit %s: %w", key, err)
	}

	return ports.UploadResult{Location: u.publicURL(key), Key: key}, nil
}

func (u *Uploader) publicURL(key string) string {
	if u.publicBaseURL != "" {
		return u.publicBaseURL + "/" + key
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", u.bucket, key)
}

var _ ports.Uploader = (*Uploader)(nil)
