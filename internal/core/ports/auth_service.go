package ports

import (
	"context"

	"github.com/inkpost/blog-api/internal/core/domain"
)

// AuthService implements sign-up and sign-in. Both return the account and a
// freshly issued session token.
type AuthService interface {
	Register(ctx context.Context, username, email, password string) (*domain.User, string, error)
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
}
