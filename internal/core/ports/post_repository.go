package ports

import (
	"context"

	"github.com/inkpost/blog-api/internal/core/domain"
)

// PostRepository defines the persistence interface for posts.
type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) (*domain.Post, error)
	FindByID(ctx context.Context, id int64) (*domain.Post, error)
	List(ctx context.Context, limit, offset int64) ([]domain.Post, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, post *domain.Post) error
	Delete(ctx context.Context, id int64) error
}

// PostListCache is a read-through cache for public post listings. A miss is
// (nil, nil); implementations must never fabricate a page.
type PostListCache interface {
	GetPage(ctx context.Context, page, size int64) (*domain.PagedPosts, error)
	StorePage(ctx context.Context, page, size int64, posts *domain.PagedPosts) error
	Invalidate(ctx context.Context) error
}
