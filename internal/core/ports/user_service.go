package ports

import (
	"context"

	"github.com/miniblog/blog-api/internal/core/domain"
)

// RegisterInput carries a new account's profile fields.
type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Role      domain.Role   // defaults to RoleUser when empty
	Upload    *StagedUpload // optional avatar
}

// UserService defines use-case operations for users.
type UserService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	// Login returns a signed bearer token and the authenticated user.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, id string, patch UserPatch, avatar *StagedUpload) (*domain.User, error)
	Delete(ctx context.Context, id string) error
	// Sweep deletes every user without an avatar and returns the count.
	Sweep(ctx context.Context) (int64, error)
}
