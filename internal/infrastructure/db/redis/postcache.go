package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/inkpost/blog-api/internal/api/metrics"
	"github.com/inkpost/blog-api/internal/core/domain"
)

const (
	pageTTL    = time.Minute
	versionKey = "posts:list:ver"
)

// PostListCache caches rendered pages of the public post listing.
// Keys embed a version counter; mutations bump the counter with a single
// INCR, which orphans every cached page at once and lets the TTL reap them.
// Key format: posts:list:<version>:<page>:<size>
type PostListCache struct {
	client *redis.Client
}

// NewPostListCache creates a PostListCache wrapping the given Redis client.
func NewPostListCache(client *redis.Client) *PostListCache {
	return &PostListCache{client: client}
}

// GetPage returns the cached page or (nil, nil) on a miss.
func (c *PostListCache) GetPage(ctx context.Context, page, size int64) (*domain.PagedPosts, error) {
	ver, err := c.version(ctx)
	if err != nil {
		return nil, err
	}

	raw, err := c.client.Get(ctx, c.key(ver, page, size)).Bytes()
	if errors.Is(err, redis.Nil) {
		metrics.PostListCacheTotal.WithLabelValues("miss").Inc()
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	}

	var paged domain.PagedPosts
	if err := json.Unmarshal(raw, &paged); err != nil {
		return nil, fmt.Errorf("cache decode: %w", err)
	}
	metrics.PostListCacheTotal.WithLabelValues("hit").Inc()
	return &paged, nil
}

// StorePage caches a page under the current version (expires after pageTTL).
func (c *PostListCache) StorePage(ctx context.Context, page, size int64, posts *domain.PagedPosts) error {
	ver, err := c.version(ctx)
	if err != nil {
		return err
	}

	raw, err := json.Marshal(posts)
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}
	return c.client.Set(ctx, c.key(ver, page, size), raw, pageTTL).Err()
}

// Invalidate drops all cached pages by bumping the version counter.
func (c *PostListCache) Invalidate(ctx context.Context) error {
	return c.client.Incr(ctx, versionKey).Err()
}

func (c *PostListCache) version(ctx context.Context) (int64, error) {
	ver, err := c.client.Get(ctx, versionKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("cache version: %w", err)
	}
	return ver, nil
}

func (c *PostListCache) key(version, page, size int64) string {
	return fmt.Sprintf("posts:list:%d:%d:%d", version, page, size)
}
