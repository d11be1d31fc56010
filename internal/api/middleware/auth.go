package middleware

import (
	"fmt"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/inkpost/blog-api/internal/auth"
	"github.com/inkpost/blog-api/internal/core/domain"
)

// IdentityContextKey is the echo context key the verified identity is stored
// under for the duration of one request.
const IdentityContextKey = "identity"

// Auth extracts the session token from the Authorization header (Bearer) or
// the auth cookie, verifies it, and injects the resulting identity into the
// request context. Missing, malformed, expired, and badly signed tokens all
// produce the same ErrUnauthenticated, rendered as one uniform 401, so
// clients cannot tell which check failed.
func Auth(issuer *auth.TokenIssuer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := extractToken(c)
			if !ok {
				return fmt.Errorf("no credentials presented: %w", domain.ErrUnauthenticated)
			}

			claims, err := issuer.Verify(token)
			if err != nil {
				return fmt.Errorf("token rejected: %w", domain.ErrUnauthenticated)
			}

			identity, err := claims.Identity()
			if err != nil {
				return fmt.Errorf("claims rejected: %w", domain.ErrUnauthenticated)
			}

			c.Set(IdentityContextKey, identity)
			return next(c)
		}
	}
}

func extractToken(c echo.Context) (string, bool) {
	if header := c.Request().Header.Get("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") && parts[1] != "" {
			return parts[1], true
		}
		return "", false
	}

	if cookie, err := c.Cookie(auth.CookieName); err == nil && cookie.Value != "" {
		return cookie.Value, true
	}
	return "", false
}
