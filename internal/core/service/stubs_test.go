package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/miniblog/blog-api/internal/core/domain"
	"github.com/miniblog/blog-api/internal/core/ports"
)

// --- Post repository stub ---

type stubPostRepo struct {
	mu    sync.Mutex
	posts map[primitive.ObjectID]*domain.Post
}

func newStubPostRepo() *stubPostRepo {
	return &stubPostRepo{posts: make(map[primitive.ObjectID]*domain.Post)}
}

func clonePost(p *domain.Post) *domain.Post {
	if p == nil {
		return nil
	}
	clone := *p
	return &clone
}

func (r *stubPostRepo) Insert(_ context.Context, p *domain.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.posts[p.ID] = clonePost(p)
	return nil
}

func (r *stubPostRepo) FindByID(_ context.Context, id primitive.ObjectID) (*domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok {
		return nil, domain.ErrPostNotFound
	}
	return clonePost(p), nil
}

func (r *stubPostRepo) List(_ context.Context) ([]domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.Post{}
	for _, p := range r.posts {
		out = append(out, *clonePost(p))
	}
	return out, nil
}

func (r *stubPostRepo) UpdateFields(_ context.Context, id primitive.ObjectID, patch ports.PostPatch) (*domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok {
		return nil, domain.ErrPostNotFound
	}
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Content != nil {
		p.Content = *patch.Content
	}
	return clonePost(p), nil
}

func (r *stubPostRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.posts[id]; !ok {
		return domain.ErrPostNotFound
	}
	delete(r.posts, id)
	return nil
}

func (r *stubPostRepo) DeleteWhere(_ context.Context, sweep ports.PostSweep) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for id, p := range r.posts {
		if sweep.MissingImage && p.Image == "" {
			delete(r.posts, id)
			n++
		}
	}
	return n, nil
}

func (r *stubPostRepo) UpdateOwnerSnapshot(_ context.Context, id primitive.ObjectID, snap domain.OwnerSnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok {
		return domain.ErrPostNotFound
	}
	p.User = snap
	return nil
}

func (r *stubPostRepo) UpdateOwnerSnapshots(_ context.Context, ownerID primitive.ObjectID, snap domain.OwnerSnapshot) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, p := range r.posts {
		if p.User.ID == ownerID {
			p.User = snap
			n++
		}
	}
	return n, nil
}

// --- User repository stub ---

type stubUserRepo struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]*domain.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[primitive.ObjectID]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	clone.Posts = append([]domain.Post(nil), u.Posts...)
	return &clone
}

func (r *stubUserRepo) Insert(_ context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return domain.ErrDuplicateEmail
		}
	}
	r.users[u.ID] = cloneUser(u)
	return nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id primitive.ObjectID) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) List(_ context.Context) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.User{}
	for _, u := range r.users {
		out = append(out, *cloneUser(u))
	}
	return out, nil
}

func (r *stubUserRepo) UpdateFields(_ context.Context, id primitive.ObjectID, patch ports.UserPatch) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if patch.FirstName != nil {
		u.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		u.LastName = *patch.LastName
	}
	if patch.Email != nil {
		u.Email = *patch.Email
	}
	if patch.Avatar != nil {
		u.Avatar = *patch.Avatar
	}
	if patch.Role != nil {
		u.Role = *patch.Role
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *stubUserRepo) DeleteWhere(_ context.Context, sweep ports.UserSweep) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for id, u := range r.users {
		if sweep.MissingAvatar && u.Avatar == "" {
			delete(r.users, id)
			n++
		}
	}
	return n, nil
}

func (r *stubUserRepo) PushPost(_ context.Context, userID primitive.ObjectID, post domain.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Posts = append(u.Posts, post)
	return nil
}

func (r *stubUserRepo) PullPost(_ context.Context, userID primitive.ObjectID, postID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	kept := u.Posts[:0]
	for _, p := range u.Posts {
		if p.ID != postID {
			kept = append(kept, p)
		}
	}
	u.Posts = kept
	return nil
}

func (r *stubUserRepo) ReplacePost(_ context.Context, userID primitive.ObjectID, post domain.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	for i, p := range u.Posts {
		if p.ID == post.ID {
			u.Posts[i] = post
			return nil
		}
	}
	u.Posts = append(u.Posts, post)
	return nil
}

func (r *stubUserRepo) UpdateEmbeddedOwner(_ context.Context, userID primitive.ObjectID, snap domain.OwnerSnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	for i := range u.Posts {
		u.Posts[i].User = snap
	}
	return nil
}

// --- File manager stub ---

type stubFiles struct {
	mu        sync.Mutex
	dir       string
	deleted   []string
	scheduled []string
}

func newStubFiles() *stubFiles {
	return &stubFiles{dir: "/uploads"}
}

func (f *stubFiles) Stage(_ io.Reader, originalName, prefix string) (ports.StagedUpload, error) {
	name := prefix + "-" + originalName
	return ports.StagedUpload{Name: name, Path: filepath.Join(f.dir, name)}, nil
}

func (f *stubFiles) DeleteLocal(path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, path)
	return nil
}

func (f *stubFiles) ScheduleDelete(path string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scheduled = append(f.scheduled, path)
}

func (f *stubFiles) LocalPath(locator string) string {
	if locator == "" || strings.Contains(locator, "://") {
		return ""
	}
	return filepath.Join(f.dir, locator)
}

// --- Uploader stub ---

type stubUploader struct {
	mu     sync.Mutex
	failed bool
	keys   []string
}

func (u *stubUploader) Upload(_ context.Context, _ string, key string) (ports.UploadResult, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.failed {
		return ports.UploadResult{}, fmt.Errorf("%w: bucket unreachable", domain.ErrUpstreamStorage)
	}
	u.keys = append(u.keys, key)
	return ports.UploadResult{Location: "https://cdn.example.com/" + key, Key: key}, nil
}
