package ports

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/miniblog/blog-api/internal/core/domain"
)

// PostPatch is the allow-listed set of fields a post update may touch. Nil
// means "leave unchanged". Request bodies are never spread into updates.
type PostPatch struct {
	Title   *string
	Content *string
}

// Empty reports whether the patch changes nothing.
func (p PostPatch) Empty() bool {
	return p.Title == nil && p.Content == nil
}

// PostSweep selects posts for a maintenance delete.
type PostSweep struct {
	// MissingImage matches posts with no image artifact.
	MissingImage bool
}

// PostRepository defines persistence operations for the post aggregate.
type PostRepository interface {
	Insert(ctx context.Context, p *domain.Post) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Post, error)
	List(ctx context.Context) ([]domain.Post, error)
	// UpdateFields applies the patch and returns the updated document.
	// Returns domain.ErrPostNotFound when the id is absent; never upserts.
	UpdateFields(ctx context.Context, id primitive.ObjectID, patch PostPatch) (*domain.Post, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	// DeleteWhere removes all posts matching the sweep and returns the count.
	DeleteWhere(ctx context.Context, sweep PostSweep) (int64, error)

	// UpdateOwnerSnapshot rewrites a single post's embedded owner copy.
	UpdateOwnerSnapshot(ctx context.Context, id primitive.ObjectID, snap domain.OwnerSnapshot) error
	// UpdateOwnerSnapshots fans the snapshot out to every post whose embedded
	// owner id equals ownerID. Returns the number of matched posts.
	UpdateOwnerSnapshots(ctx context.Context, ownerID primitive.ObjectID, snap domain.OwnerSnapshot) (int64, error)
}
