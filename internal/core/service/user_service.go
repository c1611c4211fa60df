package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/miniblog/blog-api/internal/core/domain"
	"github.com/miniblog/blog-api/internal/core/ports"
)

// UserService implements registration, login, and profile management with
// denormalization fan-out on updates.
type UserService struct {
	repo      ports.UserRepository
	sync      *Synchronizer
	files     ports.FileManager
	uploader  ports.Uploader // nil in local residency mode
	jwtSecret string
	tokenTTL  time.Duration
	logger    zerolog.Logger
}

func NewUserService(
	repo ports.UserRepository,
	sync *Synchronizer,
	files ports.FileManager,
	uploader ports.Uploader,
	jwtSecret string,
	tokenTTL time.Duration,
	logger zerolog.Logger,
) *UserService {
	if tokenTTL <= 0 {
		tokenTTL = 30 * 24 * time.Hour
	}
	return &UserService{
		repo:      repo,
		sync:      sync,
		files:     files,
		uploader:  uploader,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		logger:    logger,
	}
}

func (s *UserService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	if strings.TrimSpace(input.FirstName) == "" || strings.TrimSpace(input.LastName) == "" || input.Password == "" {
		return nil, fmt.Errorf("%w: firstName, lastName and password are required", domain.ErrValidation)
	}
	if _, err := mail.ParseAddress(input.Email); err != nil {
		return nil, fmt.Errorf("%w: email is not valid", domain.ErrValidation)
	}

	role := input.Role
	if role == "" {
		role = domain.RoleUser
	}
	if !domain.ValidRole(role) {
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrValidation, role)
	}

	if existing, err := s.repo.FindByEmail(ctx, input.Email); err == nil && existing != nil {
		return nil, domain.ErrDuplicateEmail
	} else if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("register: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("register: hash password: %w", err)
	}

	user := &domain.User{
		ID:           primitive.NewObjectID(),
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
		PasswordHash: string(hash),
		Role:         role,
		Avatar:       s.resolveAvatar(ctx, input.Upload),
		Posts:        []domain.Post{},
	}

	// The unique email index still guards the race between the lookup above
	// and this insert.
	if err := s.repo.Insert(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", user.ID.Hex()).Str("role", string(user.Role)).Msg("user registered")
	return user, nil
}

// resolveAvatar settles the residency of an uploaded avatar the same way the
// post service settles images, falling back to the placeholder.
func (s *UserService) resolveAvatar(ctx context.Context, upload *ports.StagedUpload) string {
	if upload == nil {
		return domain.DefaultAvatar
	}
	if s.uploader == nil {
		return upload.Name
	}
	res, err := s.uploader.Upload(ctx, upload.Path, upload.Name)
	if err != nil {
		s.logger.Error().Err(err).Str("file", upload.Name).Msg("avatar upload failed, using placeholder")
		return domain.DefaultAvatar
	}
	if err := s.files.DeleteLocal(upload.Path); err != nil {
		s.logger.Warn().Err(err).Str("path", upload.Path).Msg("stale local avatar not removed")
	}
	return res.Location
}

// Login authenticates by email and password. Unknown email and wrong
// password produce the same error so the endpoint cannot be used as an
// email-existence oracle.
func (s *UserService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, fmt.Errorf("%w: email and password are required", domain.ErrValidation)
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("login: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, fmt.Errorf("login: sign token: %w", err)
	}
	return token, user, nil
}

func (s *UserService) generateToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"email": user.Email,
		"id":    user.ID.Hex(),
		"role":  string(user.Role),
		"exp":   time.Now().Add(s.tokenTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed user id", domain.ErrValidation)
	}
	return s.repo.FindByID(ctx, oid)
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// Update patches the profile, replaces the avatar artifact when a new one was
// uploaded, then fans the fresh snapshot out to every owned post.
func (s *UserService) Update(ctx context.Context, id string, patch ports.UserPatch, avatar *ports.StagedUpload) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed user id", domain.ErrValidation)
	}
	if patch.Email != nil {
		if _, err := mail.ParseAddress(*patch.Email); err != nil {
			return nil, fmt.Errorf("%w: email is not valid", domain.ErrValidation)
		}
	}
	if patch.Role != nil && !domain.ValidRole(*patch.Role) {
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrValidation, *patch.Role)
	}
	if patch.Empty() && avatar == nil {
		return nil, fmt.Errorf("%w: nothing to update", domain.ErrValidation)
	}

	var previousAvatar string
	if avatar != nil {
		// Capture the old artifact before the record points elsewhere.
		current, err := s.repo.FindByID(ctx, oid)
		if err != nil {
			return nil, err
		}
		previousAvatar = current.Avatar
		resolved := s.resolveAvatar(ctx, avatar)
		patch.Avatar = &resolved
	}

	user, err := s.repo.UpdateFields(ctx, oid, patch)
	if err != nil {
		return nil, err
	}

	if previousAvatar != "" && previousAvatar != domain.DefaultAvatar {
		if path := s.files.LocalPath(previousAvatar); path != "" {
			s.files.ScheduleDelete(path)
		}
	}

	if err := s.sync.UserUpdated(ctx, user); err != nil {
		return nil, err
	}

	// Re-read so the returned document carries the refreshed embedded posts.
	return s.repo.FindByID(ctx, oid)
}

// Delete removes the user and schedules a best-effort delete of a locally
// resident avatar. Posts authored by the user keep their last snapshot; there
// is no cascade.
func (s *UserService) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: malformed user id", domain.ErrValidation)
	}

	user, err := s.repo.FindByID(ctx, oid)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, oid); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	if user.Avatar != domain.DefaultAvatar {
		if path := s.files.LocalPath(user.Avatar); path != "" {
			s.files.ScheduleDelete(path)
		}
	}

	s.logger.Info().Str("user_id", oid.Hex()).Msg("user deleted")
	return nil
}

// Sweep removes every user without an avatar and returns the count.
func (s *UserService) Sweep(ctx context.Context) (int64, error) {
	n, err := s.repo.DeleteWhere(ctx, ports.UserSweep{MissingAvatar: true})
	if err != nil {
		return 0, fmt.Errorf("sweep users: %w", err)
	}
	s.logger.Info().Int64("deleted", n).Msg("user sweep finished")
	return n, nil
}

var _ ports.UserService = (*UserService)(nil)
