package ports

import (
	"context"

	"github.com/inkpost/blog-api/internal/core/domain"
)

type CommentService interface {
	ListForPost(ctx context.Context, postID int64) ([]domain.Comment, error)
	Create(ctx context.Context, identity domain.Identity, postID int64, body string) (*domain.Comment, error)
	Update(ctx context.Context, identity domain.Identity, id int64, body string) (*domain.Comment, error)
	Delete(ctx context.Context, identity domain.Identity, id int64) error
}
