// @title                       Blog API
// @version                     1.0
// @description                 Blog posts and comments behind bearer-token authentication.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the access token.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/quillpress/blog-api/internal/api"
	"github.com/quillpress/blog-api/internal/api/handler"
	"github.com/quillpress/blog-api/internal/core/service"
	"github.com/quillpress/blog-api/internal/infrastructure/config"
	mongodb "github.com/quillpress/blog-api/internal/infrastructure/db/mongo"
	redisdb "github.com/quillpress/blog-api/internal/infrastructure/db/redis"
	"github.com/quillpress/blog-api/internal/infrastructure/queue"
	"github.com/quillpress/blog-api/pkg/logger"
)

const serviceName = "blog-api"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		log := logger.New(logger.Options{Service: serviceName})
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	log := logger.New(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: serviceName,
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped with error")
	}
	log.Info().Msg("server stopped")
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	// --- Token service first: a bad secret or algorithm must stop startup ---
	tokens, err := service.NewTokenService(service.TokenConfig{
		Secret:    []byte(cfg.Auth.JWTSecret),
		Algorithm: cfg.Auth.JWTAlgorithm,
		TTL:       cfg.Auth.AccessTokenTTL,
	})
	if err != nil {
		return err
	}

	// --- Storage ---
	client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	users := mongodb.NewUserRepository(db)
	posts := mongodb.NewPostRepository(db)
	comments := mongodb.NewCommentRepository(db)
	if err := mongodb.EnsureIndexes(ctx, users, posts, comments); err != nil {
		return err
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err != nil {
		return err
	}
	defer rdb.Close()

	// --- Password hashing pool ---
	poolCtx, stopPool := context.WithCancel(context.Background())
	hasher := service.NewBcryptHasher(cfg.Auth.BcryptCost)
	pool := queue.NewHashPool(cfg.Auth.HashWorkers, hasher, logger.Component(log, "hash_pool"))
	pool.Start(poolCtx)
	defer func() {
		stopPool()
		pool.Wait()
	}()

	// --- Services ---
	proxies, err := cfg.HTTP.ProxyNets()
	if err != nil {
		return err
	}
	auth, err := service.NewAuthService(users, pool, tokens, logger.Component(log, "auth"))
	if err != nil {
		return err
	}
	guard := service.NewAccessGuard(tokens, users, logger.Component(log, "access_guard"))
	e := api.NewRouter(api.Dependencies{
		Auth:     auth,
		Guard:    guard,
		Posts:    service.NewPostService(posts, comments, guard, logger.Component(log, "posts")),
		Comments: service.NewCommentService(comments, posts, guard, logger.Component(log, "comments")),
		Users:    service.NewUserAdminService(users, guard, logger.Component(log, "users")),
		Limiter:  redisdb.NewRateLimiter(rdb),
		Limits: api.RateLimits{
			Login:    cfg.RateLimit.Login,
			Register: cfg.RateLimit.Register,
			Read:     cfg.RateLimit.Read,
			Write:    cfg.RateLimit.Write,
			Comment:  cfg.RateLimit.Comment,
			Window:   cfg.RateLimit.Window,
		},
		TrustedProxies: proxies,
		Checks: map[string]handler.Check{
			"mongodb": mongodb.PingCheck(client),
			"redis":   redisdb.PingCheck(rdb),
		},
		Logger:        log,
		EnableMetrics: true,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      e,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info().
			Str("addr", srv.Addr).
			Str("env", cfg.Env).
			Int("bcrypt_cost", hasher.Cost()).
			Dur("token_ttl", tokens.TTL()).
			Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
