package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/quillpress/blog-api/internal/core/domain"
	"github.com/quillpress/blog-api/internal/core/ports"
)

// RequireRole lets the request through only when the caller resolved by Auth
// holds role. It must run after Auth.
func RequireRole(guard ports.AccessGuard, role domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := Caller(c)
			if user == nil {
				return domain.ErrMissingToken
			}
			if err := guard.RequireRole(user, role); err != nil {
				return err
			}
			return next(c)
		}
	}
}
