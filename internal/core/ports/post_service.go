package ports

import (
	"context"

	"github.com/miniblog/blog-api/internal/core/domain"
)

// StagedUpload describes a multipart file already written to the local
// staging directory by the file lifecycle manager.
type StagedUpload struct {
	// Name is the generated unique filename (the upload locator).
	Name string
	// Path is the absolute path of the staged temp file.
	Path string
}

// CreatePostInput carries a new post plus the identity of its author, taken
// from the bearer token. The owner snapshot is completed by the synchronizer
// after the post document is persisted.
type CreatePostInput struct {
	Title   string
	Content string
	OwnerID string
	Upload  *StagedUpload // optional image
}

// PostService defines use-case operations for posts.
type PostService interface {
	Create(ctx context.Context, input CreatePostInput) (*domain.Post, error)
	Get(ctx context.Context, id string) (*domain.Post, error)
	List(ctx context.Context) ([]domain.Post, error)
	Update(ctx context.Context, id string, patch PostPatch) (*domain.Post, error)
	Delete(ctx context.Context, id string) error
	// Sweep deletes every post that has no image and returns the count.
	Sweep(ctx context.Context) (int64, error)
}
