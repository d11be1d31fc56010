package ports

import (
	"context"

	"github.com/inkpost/blog-api/internal/core/domain"
)

// UserRepository defines the persistence interface for accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
}
