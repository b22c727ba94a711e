package middleware

import (
	"errors"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/quillpress/blog-api/internal/core/domain"
	"github.com/quillpress/blog-api/internal/core/ports"
	"github.com/quillpress/blog-api/internal/metrics"
)

// CallerKey is the echo.Context key holding the resolved *domain.User.
const CallerKey = "caller"

// Auth resolves the bearer token into an active user and injects it into the
// context. Every failure is returned as-is; the error handler turns the whole
// authentication class into one generic 401.
func Auth(guard ports.AccessGuard) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, err := guard.ResolveCaller(c.Request().Context(), bearerToken(c))
			metrics.TokenValidationsTotal.WithLabelValues(outcome(err)).Inc()
			if err != nil {
				return err
			}

			c.Set(CallerKey, user)
			return next(c)
		}
	}
}

// Caller returns the user stored by Auth, or nil on unauthenticated routes.
func Caller(c echo.Context) *domain.User {
	user, _ := c.Get(CallerKey).(*domain.User)
	return user
}

// bearerToken extracts the token from "Authorization: Bearer <token>". The
// scheme is case-insensitive; any other shape yields "".
func bearerToken(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrMissingToken):
		return "missing"
	case errors.Is(err, domain.ErrInvalidSignature):
		return "invalid_signature"
	case errors.Is(err, domain.ErrTokenExpired):
		return "expired"
	case errors.Is(err, domain.ErrMalformedToken):
		return "malformed"
	case errors.Is(err, domain.ErrUnknownSubject):
		return "unknown_subject"
	case errors.Is(err, domain.ErrInactiveAccount):
		return "inactive"
	default:
		return "error"
	}
}
