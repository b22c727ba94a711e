package api

import (
	"net"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/quillpress/blog-api/docs"
	"github.com/quillpress/blog-api/internal/api/handler"
	"github.com/quillpress/blog-api/internal/api/middleware"
	"github.com/quillpress/blog-api/internal/core/domain"
	"github.com/quillpress/blog-api/internal/core/ports"
)

// RateLimits are per-client-IP budgets per window. Zero disables a limit.
type RateLimits struct {
	Login    int
	Register int
	Read     int
	Write    int
	Comment  int
	Window   time.Duration
}

// Dependencies is everything the router needs to serve requests.
type Dependencies struct {
	Auth     ports.AuthService
	Guard    ports.AccessGuard
	Posts    ports.PostService
	Comments ports.CommentService
	Users    ports.UserAdminService

	// Limiter may be nil, which disables rate limiting.
	Limiter middleware.Limiter
	Limits  RateLimits
	// TrustedProxies are the only peers whose X-Forwarded-For is believed.
	// When empty the client IP is the TCP peer address.
	TrustedProxies []*net.IPNet

	// Checks are the readiness probes, keyed by dependency name.
	Checks map[string]handler.Check

	Logger zerolog.Logger
	// EnableMetrics mounts the Prometheus middleware and /metrics. It registers
	// collectors globally, so only one router per process may enable it.
	EnableMetrics bool
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.IPExtractor = clientIPExtractor(deps.TrustedProxies)
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Logger))
	if deps.EnableMetrics {
		e.Use(echoprometheus.NewMiddleware("blog"))
		e.GET("/metrics", echoprometheus.NewHandler())
	}

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	postHandler := handler.NewPostHandler(deps.Posts)
	commentHandler := handler.NewCommentHandler(deps.Comments)
	userHandler := handler.NewUserAdminHandler(deps.Users)
	healthHandler := handler.NewHealthHandler(deps.Checks)

	auth := middleware.Auth(deps.Guard)
	limit := func(scope string, n int) echo.MiddlewareFunc {
		return middleware.RateLimit(deps.Limiter, scope, n, deps.Limits.Window, deps.Logger)
	}
	readLimit := limit("read", deps.Limits.Read)
	writeLimit := limit("write", deps.Limits.Write)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register, limit("register", deps.Limits.Register))
	e.POST("/auth/login", authHandler.Login, limit("login", deps.Limits.Login))

	// --- Users ---
	e.GET("/users/me", authHandler.Me, auth)

	// --- Posts ---
	e.GET("/posts", postHandler.List, readLimit)
	e.GET("/posts/:id", postHandler.Get, readLimit)
	e.POST("/posts", postHandler.Create, writeLimit, auth)
	e.PUT("/posts/:id", postHandler.Update, writeLimit, auth)
	e.DELETE("/posts/:id", postHandler.Delete, writeLimit, auth)

	// --- Comments ---
	e.GET("/posts/:id/comments", commentHandler.ListByPost, readLimit)
	e.POST("/posts/:id/comments", commentHandler.Create, limit("comment", deps.Limits.Comment), auth)
	e.PUT("/comments/:id", commentHandler.Update, writeLimit, auth)
	e.DELETE("/comments/:id", commentHandler.Delete, writeLimit, auth)

	// --- Admin ---
	admin := e.Group("/admin", auth, middleware.RequireRole(deps.Guard, domain.RoleAdmin))
	admin.GET("/users", userHandler.List)
	admin.PUT("/users/:id/role", userHandler.UpdateRole)
	admin.PUT("/users/:id/active", userHandler.UpdateActive)

	// --- Health probes (no auth required) ---
	e.GET("/health", healthHandler.Liveness)        // liveness  – is the process alive?
	e.GET("/health/ready", healthHandler.Readiness) // readiness – are dependencies up?

	// --- API docs ---
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// clientIPExtractor keys rate limits on the peer address unless the peer is a
// configured proxy, in which case the X-Forwarded-For chain is walked back to
// the first untrusted hop.
func clientIPExtractor(trusted []*net.IPNet) echo.IPExtractor {
	if len(trusted) == 0 {
		return echo.ExtractIPDirect()
	}
	opts := []echo.TrustOption{
		echo.TrustLoopback(false),
		echo.TrustLinkLocal(false),
		echo.TrustPrivateNet(false),
	}
	for _, n := range trusted {
		opts = append(opts, echo.TrustIPRange(n))
	}
	return echo.ExtractIPFromXFFHeader(opts...)
}

// requestLogger writes one zerolog line per request. The Authorization header
// is never logged.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Status >= 500 {
				ev = log.Error().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Str("remote_ip", v.RemoteIP).
				Msg("request")
			return nil
		},
	})
}
