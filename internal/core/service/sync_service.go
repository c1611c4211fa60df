package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/miniblog/blog-api/internal/api/metrics"
	"github.com/miniblog/blog-api/internal/core/domain"
	"github.com/miniblog/blog-api/internal/core/ports"
)

// Synchronizer propagates denormalized copies between the user and post
// aggregates. There are no transactions across the two collections: the
// primary-aggregate write always happens first, then the secondary copy is
// brought up to date with plain sequential writes. Two concurrent requests
// touching the same user/post pair can interleave; last write wins.
type Synchronizer struct {
	posts ports.PostRepository
	users ports.UserRepository
	log   zerolog.Logger
}

func NewSynchronizer(posts ports.PostRepository, users ports.UserRepository, log zerolog.Logger) *Synchronizer {
	return &Synchronizer{posts: posts, users: users, log: log}
}

// PostCreated completes the owner snapshot of a freshly persisted post and
// appends the post to the owner's embedded array.
//
// The post document already exists when this runs. When the owner cannot be
// resolved, domain.ErrOwnerNotFound is returned and the orphaned post is NOT
// rolled back; the primary write stays committed. Changing that asymmetry
// needs product sign-off.
func (s *Synchronizer) PostCreated(ctx context.Context, post *domain.Post) error {
	owner, err := s.users.FindByID(ctx, post.User.ID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.SyncFailuresTotal.WithLabelValues("post_create", "owner_not_found").Inc()
			s.log.Warn().
				Str("post_id", post.ID.Hex()).
				Str("owner_id", post.User.ID.Hex()).
				Msg("post created for unknown owner, post kept")
			return domain.ErrOwnerNotFound
		}
		metrics.SyncFailuresTotal.WithLabelValues("post_create", "store_error").Inc()
		return fmt.Errorf("sync post create: %w", err)
	}

	// The create-time snapshot only carried the owner id from the token;
	// rewrite it from the live user before the copy spreads.
	snap := owner.Snapshot()
	if err := s.posts.UpdateOwnerSnapshot(ctx, post.ID, snap); err != nil {
		metrics.SyncFailuresTotal.WithLabelValues("post_create", "store_error").Inc()
		return fmt.Errorf("sync post create: snapshot: %w", err)
	}
	post.User = snap

	if err := s.users.PushPost(ctx, owner.ID, *post); err != nil {
		metrics.SyncFailuresTotal.WithLabelValues("post_create", "store_error").Inc()
		return fmt.Errorf("sync post create: push: %w", err)
	}

	metrics.SyncPropagationsTotal.WithLabelValues("post_create").Inc()
	return nil
}

// PostUpdated replaces the owner's embedded copy of the post with its current
// state, appending when no matching entry exists. The post update is already
// committed; a missing owner is logged and swallowed in favor of the primary
// write's availability.
func (s *Synchronizer) PostUpdated(ctx context.Context, post *domain.Post) error {
	err := s.users.ReplacePost(ctx, post.User.ID, *post)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.SyncFailuresTotal.WithLabelValues("post_update", "owner_not_found").Inc()
			s.log.Warn().
				Str("post_id", post.ID.Hex()).
				Str("owner_id", post.User.ID.Hex()).
				Msg("post updated but owner missing, embedded copy not refreshed")
			return nil
		}
		metrics.SyncFailuresTotal.WithLabelValues("post_update", "store_error").Inc()
		return fmt.Errorf("sync post update: %w", err)
	}
	metrics.SyncPropagationsTotal.WithLabelValues("post_update").Inc()
	return nil
}

// PostDeleted removes the deleted post from the owner's embedded array.
// Best-effort: every failure is logged and swallowed, the delete response
// already succeeded.
func (s *Synchronizer) PostDeleted(ctx context.Context, ownerID, postID primitive.ObjectID) {
	if err := s.users.PullPost(ctx, ownerID, postID); err != nil {
		reason := "store_error"
		if errors.Is(err, domain.ErrUserNotFound) {
			reason = "owner_not_found"
		}
		metrics.SyncFailuresTotal.WithLabelValues("post_delete", reason).Inc()
		s.log.Warn().Err(err).
			Str("post_id", postID.Hex()).
			Str("owner_id", ownerID.Hex()).
			Msg("embedded post not removed from owner")
		return
	}
	metrics.SyncPropagationsTotal.WithLabelValues("post_delete").Inc()
}

// UserUpdated fans the user's fresh snapshot out to every post whose embedded
// owner id matches, and to the snapshots nested inside the user's own
// embedded posts array. The user document itself was already updated.
func (s *Synchronizer) UserUpdated(ctx context.Context, user *domain.User) error {
	snap := user.Snapshot()

	if _, err := s.posts.UpdateOwnerSnapshots(ctx, user.ID, snap); err != nil {
		metrics.SyncFailuresTotal.WithLabelValues("user_update", "store_error").Inc()
		return fmt.Errorf("sync user update: fan-out: %w", err)
	}

	if err := s.users.UpdateEmbeddedOwner(ctx, user.ID, snap); err != nil {
		metrics.SyncFailuresTotal.WithLabelValues("user_update", "store_error").Inc()
		return fmt.Errorf("sync user update: embedded: %w", err)
	}

	metrics.SyncPropagationsTotal.WithLabelValues("user_update").Inc()
	return nil
}
