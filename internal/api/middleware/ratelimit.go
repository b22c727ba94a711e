package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/quillpress/blog-api/internal/metrics"
)

// Limiter decides whether one more hit for key fits in the current window.
type Limiter interface {
	Allow(ctx context.Context, scope, key string, limit int, window time.Duration) (bool, error)
}

// RateLimit rejects a client IP with 429 once it exceeds limit requests per
// window in scope. A nil limiter or non-positive limit disables the check. When
// the limiter itself fails the request is let through.
func RateLimit(limiter Limiter, scope string, limit int, window time.Duration, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		if limiter == nil || limit <= 0 {
			return next
		}
		return func(c echo.Context) error {
			ip := c.RealIP()
			ok, err := limiter.Allow(c.Request().Context(), scope, ip, limit, window)
			if err != nil {
				log.Warn().Err(err).Str("scope", scope).Msg("rate limiter unavailable")
				return next(c)
			}
			if !ok {
				metrics.RateLimitedTotal.WithLabelValues(scope).Inc()
				log.Info().Str("scope", scope).Str("ip", ip).Msg("rate limit exceeded")
				return echo.NewHTTPError(http.StatusTooManyRequests, "too many requests")
			}
			return next(c)
		}
	}
}
