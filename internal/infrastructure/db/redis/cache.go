package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/miniblog/blog-api/internal/core/domain"
	"github.com/miniblog/blog-api/internal/core/ports"
)

const (
	postListKey = "posts:all"
	postListTTL = 30 * time.Second
)

// PostListCache caches the full post listing in Redis. Any error is treated
// as a miss and logged at debug level; the store stays authoritative.
type PostListCache struct {
	client *redis.Client
	log    zerolog.Logger
}

// NewPostListCache creates a PostListCache wrapping the given Redis client.
func NewPostListCache(client *redis.Client, log zerolog.Logger) *PostListCache {
	return &PostListCache{client: client, log: log}
}

func (c *PostListCache) Get(ctx context.Context) ([]domain.Post, bool) {
	raw, err := c.client.Get(ctx, postListKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Debug().Err(err).Msg("post list cache read failed")
		}
		return nil, false
	}

	var posts []domain.Post
	if err := json.Unmarshal(raw, &posts); err != nil {
		c.log.Debug().Err(err).Msg("post list cache entry corrupt, dropping")
		c.Invalidate(ctx)
		return nil, false
	}
	return posts, true
}

func (c *PostListCache) Set(ctx context.Context, posts []domain.Post) {
	raw, err := json.Marshal(posts)
	if err != nil {
		c.log.Debug().Err(err).Msg("post list cache marshal failed")
		return
	}
	if err := c.client.Set(ctx, postListKey, raw, postListTTL).Err(); err != nil {
		c.log.Debug().Err(err).Msg("post list cache write failed")
	}
}

func (c *PostListCache) Invalidate(ctx context.Context) {
	if err := c.client.Del(ctx, postListKey).Err(); err != nil {
		c.log.Debug().Err(err).Msg("post list cache invalidation failed")
	}
}

var _ ports.PostListCache = (*PostListCache)(nil)
