package ports

import (
	"context"
	"io"

	"github.com/miniblog/blog-api/internal/core/domain"
)

// FileManager owns the local residency of uploaded artifacts.
type FileManager interface {
	// Stage writes src into the staging directory under a unique name
	// derived from prefix and the original filename's extension.
	Stage(src io.Reader, originalName, prefix string) (StagedUpload, error)
	// DeleteLocal removes a staged or persisted file. Idempotent: an absent
	// path is a no-op, not an error.
	DeleteLocal(path string) error
	// ScheduleDelete queues a best-effort asynchronous local delete. Failures
	// are logged, never propagated.
	ScheduleDelete(path string)
	// LocalPath resolves an image locator to its on-disk path, or "" when the
	// locator is not locally resident (remote URL or empty).
	LocalPath(locator string) string
}

// UploadResult identifies a stored remote object.
type UploadResult struct {
	// Location is the publicly addressable URL of the object.
	Location string
	// Key is the object's name within the bucket.
	Key string
}

// Uploader pushes a locally staged file into remote object storage.
type Uploader interface {
	Upload(ctx context.Context, localPath, key string) (UploadResult, error)
}

// PostListCache is a read-through cache for the full post listing. All
// methods are best-effort; a failed Get is a miss, failed Set/Invalidate are
// logged by the implementation.
type PostListCache interface {
	Get(ctx context.Context) ([]domain.Post, bool)
	Set(ctx context.Context, posts []domain.Post)
	Invalidate(ctx context.Context)
}
