package handler

import (
	"fmt"

	"github.com/labstack/echo/v4"

	"github.com/inkpost/blog-api/internal/api/middleware"
	"github.com/inkpost/blog-api/internal/core/domain"
)

// ctxIdentity extracts the identity injected by the Auth middleware and
// performs a fast-fail check before any service call: a zero user id means
// the middleware did not run on this route, which is a wiring bug surfaced
// as 401 rather than an ownership check against user 0.
func ctxIdentity(c echo.Context) (domain.Identity, error) {
	identity, _ := c.Get(middleware.IdentityContextKey).(domain.Identity)
	if identity.UserID == 0 {
		return domain.Identity{}, fmt.Errorf("no identity in request context: %w", domain.ErrUnauthenticated)
	}
	return identity, nil
}
