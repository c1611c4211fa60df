package ports

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/miniblog/blog-api/internal/core/domain"
)

// UserPatch is the allow-listed set of fields a profile update may touch.
type UserPatch struct {
	FirstName *string
	LastName  *string
	Email     *string
	Avatar    *string
	Role      *domain.Role
}

// Empty reports whether the patch changes nothing.
func (p UserPatch) Empty() bool {
	return p.FirstName == nil && p.LastName == nil && p.Email == nil &&
		p.Avatar == nil && p.Role == nil
}

// UserSweep selects users for a maintenance delete.
type UserSweep struct {
	// MissingAvatar matches users with no avatar of their own (empty value;
	// the registration default does not count as missing).
	MissingAvatar bool
}

// UserRepository defines persistence operations for the user aggregate,
// including the embedded-posts array the synchronizer maintains.
type UserRepository interface {
	// Insert persists a new user. Returns domain.ErrDuplicateEmail when the
	// unique email index rejects the document.
	Insert(ctx context.Context, u *domain.User) error
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	UpdateFields(ctx context.Context, id primitive.ObjectID, patch UserPatch) (*domain.User, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteWhere(ctx context.Context, sweep UserSweep) (int64, error)

	// PushPost appends a post snapshot to the user's embedded posts array.
	PushPost(ctx context.Context, userID primitive.ObjectID, post domain.Post) error
	// PullPost removes the embedded post with the given id.
	PullPost(ctx context.Context, userID primitive.ObjectID, postID primitive.ObjectID) error
	// ReplacePost overwrites the embedded post matching post.ID, or appends
	// it when no entry matches.
	ReplacePost(ctx context.Context, userID primitive.ObjectID, post domain.Post) error
	// UpdateEmbeddedOwner rewrites the owner snapshot inside every entry of
	// the user's own embedded posts array.
	UpdateEmbeddedOwner(ctx context.Context, userID primitive.ObjectID, snap domain.OwnerSnapshot) error
}
