package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/quillpress/blog-api/internal/core/domain"
	"github.com/quillpress/blog-api/internal/metrics"
)

const (
	msgCouldNotValidate = "could not validate credentials"
	msgBadLogin         = "incorrect email or password"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Collapses every token and caller-resolution failure into one opaque 401.
//   - Maps the remaining domain errors to their HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		if code == http.StatusUnauthorized {
			c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
		}
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	switch {
	case domain.IsAuthenticationError(err):
		return http.StatusUnauthorized, msgCouldNotValidate
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, msgBadLogin
	case errors.Is(err, domain.ErrPermissionDenied):
		metrics.PermissionDeniedTotal.WithLabelValues(c.Path()).Inc()
		return http.StatusForbidden, domain.ErrPermissionDenied.Error()
	case errors.Is(err, domain.ErrDuplicateEmail):
		return http.StatusBadRequest, domain.ErrDuplicateEmail.Error()
	case errors.Is(err, domain.ErrDuplicateUsername):
		return http.StatusBadRequest, domain.ErrDuplicateUsername.Error()
	case errors.Is(err, domain.ErrInvalidRole):
		return http.StatusBadRequest, domain.ErrInvalidRole.Error()
	case errors.Is(err, domain.ErrPasswordTooLong):
		return http.StatusUnprocessableEntity, domain.ErrPasswordTooLong.Error()
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "user not found"
	case errors.Is(err, domain.ErrPostNotFound):
		return http.StatusNotFound, "post not found"
	case errors.Is(err, domain.ErrCommentNotFound):
		return http.StatusNotFound, "comment not found"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
