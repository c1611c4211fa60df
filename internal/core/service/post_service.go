package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/miniblog/blog-api/internal/api/metrics"
	"github.com/miniblog/blog-api/internal/core/domain"
	"github.com/miniblog/blog-api/internal/core/ports"
)

// PostService implements post CRUD with denormalization and file lifecycle
// side effects.
type PostService struct {
	repo     ports.PostRepository
	sync     *Synchronizer
	files    ports.FileManager
	uploader ports.Uploader // nil in local residency mode
	cache    ports.PostListCache
	logger   zerolog.Logger
}

func NewPostService(
	repo ports.PostRepository,
	sync *Synchronizer,
	files ports.FileManager,
	uploader ports.Uploader,
	cache ports.PostListCache,
	logger zerolog.Logger,
) *PostService {
	return &PostService{
		repo:     repo,
		sync:     sync,
		files:    files,
		uploader: uploader,
		cache:    cache,
		logger:   logger,
	}
}

// Create persists a new post and synchronizes the owner's embedded copy.
//
// Write order: image residency is resolved first, then the post document is
// inserted, then the owner is loaded and updated. An owner-lookup miss is
// returned to the caller even though the post stays committed.
func (s *PostService) Create(ctx context.Context, input ports.CreatePostInput) (*domain.Post, error) {
	if strings.TrimSpace(input.Title) == "" || strings.TrimSpace(input.Content) == "" {
		return nil, fmt.Errorf("%w: title and content are required", domain.ErrValidation)
	}
	ownerID, err := primitive.ObjectIDFromHex(input.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed owner id", domain.ErrValidation)
	}

	post := &domain.Post{
		ID:      primitive.NewObjectID(),
		Title:   input.Title,
		Content: input.Content,
		Date:    time.Now().UTC(),
		Image:   s.resolveImage(ctx, input.Upload),
		User:    domain.OwnerSnapshot{ID: ownerID},
	}

	if err := s.repo.Insert(ctx, post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	metrics.PostsCreatedTotal.WithLabelValues(strconv.FormatBool(post.Image != "")).Inc()
	s.invalidateList(ctx)

	if err := s.sync.PostCreated(ctx, post); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("post_id", post.ID.Hex()).
		Str("owner_id", ownerID.Hex()).
		Msg("post created")
	return post, nil
}

// resolveImage settles the residency of an uploaded image. In remote mode the
// staged file is pushed to object storage and the local temp copy removed
// once the remote copy is confirmed; an upload failure downgrades to "no
// image" rather than failing the request. In local mode the staged filename
// itself is the locator.
func (s *PostService) resolveImage(ctx context.Context, upload *ports.StagedUpload) string {
	if upload == nil {
		return ""
	}
	if s.uploader == nil {
		return upload.Name
	}

	res, err := s.uploader.Upload(ctx, upload.Path, upload.Name)
	if err != nil {
		metrics.UploadsTotal.WithLabelValues("error").Inc()
		s.logger.Error().Err(err).
			Str("file", upload.Name).
			Msg("object storage upload failed, post will have no image")
		return ""
	}
	metrics.UploadsTotal.WithLabelValues("ok").Inc()

	if err := s.files.DeleteLocal(upload.Path); err != nil {
		s.logger.Warn().Err(err).Str("path", upload.Path).Msg("stale local upload not removed")
	}
	return res.Location
}

func (s *PostService) Get(ctx context.Context, id string) (*domain.Post, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed post id", domain.ErrValidation)
	}
	return s.repo.FindByID(ctx, oid)
}

func (s *PostService) List(ctx context.Context) ([]domain.Post, error) {
	if s.cache != nil {
		if posts, ok := s.cache.Get(ctx); ok {
			return posts, nil
		}
	}
	posts, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	if s.cache != nil {
		s.cache.Set(ctx, posts)
	}
	return posts, nil
}

// Update patches title/content, then refreshes the owner's embedded copy.
func (s *PostService) Update(ctx context.Context, id string, patch ports.PostPatch) (*domain.Post, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed post id", domain.ErrValidation)
	}
	if patch.Empty() {
		return nil, fmt.Errorf("%w: nothing to update", domain.ErrValidation)
	}

	post, err := s.repo.UpdateFields(ctx, oid, patch)
	if err != nil {
		return nil, err
	}
	s.invalidateList(ctx)

	if err := s.sync.PostUpdated(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// Delete removes the post, prunes the owner's embedded copy, and schedules a
// best-effort delete of a locally resident image artifact.
func (s *PostService) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: malformed post id", domain.ErrValidation)
	}

	// Capture the image reference before the record disappears.
	post, err := s.repo.FindByID(ctx, oid)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, oid); err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	s.invalidateList(ctx)

	s.sync.PostDeleted(ctx, post.User.ID, post.ID)

	if path := s.files.LocalPath(post.Image); path != "" {
		s.files.ScheduleDelete(path)
	}

	s.logger.Info().Str("post_id", post.ID.Hex()).Msg("post deleted")
	return nil
}

// Sweep removes every post without an image. Owners' embedded copies are left
// to the per-post delete path; the sweep matches the maintenance endpoint of
// the original system and does not fan out.
func (s *PostService) Sweep(ctx context.Context) (int64, error) {
	n, err := s.repo.DeleteWhere(ctx, ports.PostSweep{MissingImage: true})
	if err != nil {
		return 0, fmt.Errorf("sweep posts: %w", err)
	}
	if n > 0 {
		s.invalidateList(ctx)
	}
	s.logger.Info().Int64("deleted", n).Msg("post sweep finished")
	return n, nil
}

func (s *PostService) invalidateList(ctx context.Context) {
	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}
}

var _ ports.PostService = (*PostService)(nil)
