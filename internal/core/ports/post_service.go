package ports

import (
	"context"

	"github.com/inkpost/blog-api/internal/core/domain"
)

// UpdatePostInput carries a partial update; nil fields are left unchanged.
type UpdatePostInput struct {
	Title *string
	Body  *string
}

type PostService interface {
	Create(ctx context.Context, identity domain.Identity, title, body string) (*domain.Post, error)
	Get(ctx context.Context, id int64) (*domain.Post, error)
	List(ctx context.Context, page, size int64) (*domain.PagedPosts, error)
	Update(ctx context.Context, identity domain.Identity, id int64, input UpdatePostInput) (*domain.Post, error)
	Delete(ctx context.Context, identity domain.Identity, id int64) error
}
