package config

import (
	"context"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"

	"github.com/quillpress/blog-api/internal/core/domain"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	HTTP      HTTPConfig
	Auth      AuthConfig
	Mongo     MongoConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
}

type HTTPConfig struct {
	ReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT,     default=10s"`
	WriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT,    default=15s"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT, default=15s"`
	// TrustedProxies is a comma-separated list of CIDRs allowed to set
	// X-Forwarded-For. Empty means the TCP peer is the client.
	TrustedProxies []string `env:"TRUSTED_PROXIES"`
}

// ProxyNets parses TrustedProxies. A bare IP is taken as a single-host range.
func (h HTTPConfig) ProxyNets() ([]*net.IPNet, error) {
	nets := make([]*net.IPNet, 0, len(h.TrustedProxies))
	for _, raw := range h.TrustedProxies {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		if !strings.Contains(raw, "/") {
			ip := net.ParseIP(raw)
			if ip == nil {
				return nil, fmt.Errorf("config: TRUSTED_PROXIES: invalid address %q", raw)
			}
			bits := 128
			if ip.To4() != nil {
				ip, bits = ip.To4(), 32
			}
			nets = append(nets, &net.IPNet{IP: ip, Mask: net.CIDRMask(bits, bits)})
			continue
		}
		_, n, err := net.ParseCIDR(raw)
		if err != nil {
			return nil, fmt.Errorf("config: TRUSTED_PROXIES: %w", err)
		}
		nets = append(nets, n)
	}
	return nets, nil
}

// AuthConfig has no default secret; the process refuses to start without one.
type AuthConfig struct {
	JWTSecret      string        `env:"JWT_SECRET, required"`
	JWTAlgorithm   string        `env:"JWT_ALGORITHM,    default=HS256"`
	AccessTokenTTL time.Duration `env:"ACCESS_TOKEN_TTL, default=30m"`
	BcryptCost     int           `env:"BCRYPT_COST,      default=12"`
	HashWorkers    int           `env:"HASH_WORKERS,     default=0"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=blog"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

// RateLimitConfig holds per-client request budgets. Zero disables a limit.
type RateLimitConfig struct {
	Login    int           `env:"LOGIN_RATE_LIMIT,    default=10"`
	Register int           `env:"REGISTER_RATE_LIMIT, default=5"`
	Read     int           `env:"READ_RATE_LIMIT,     default=30"`
	Write    int           `env:"WRITE_RATE_LIMIT,    default=10"`
	Comment  int           `env:"COMMENT_RATE_LIMIT,  default=15"`
	Window   time.Duration `env:"RATE_LIMIT_WINDOW,   default=1m"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return LoadFrom(ctx, envconfig.OsLookuper())
}

// LoadFrom reads configuration through the given lookuper and validates it.
func LoadFrom(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings that would leave token handling unsafe or broken.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Auth.JWTSecret) == "" {
		return fmt.Errorf("config: JWT_SECRET: %w", domain.ErrMissingSigningSecret)
	}
	switch c.Auth.JWTAlgorithm {
	case "HS256", "HS384", "HS512":
	default:
		return fmt.Errorf("config: JWT_ALGORITHM %q: %w", c.Auth.JWTAlgorithm, domain.ErrUnsupportedAlgorithm)
	}
	if c.Auth.AccessTokenTTL <= 0 {
		return fmt.Errorf("config: ACCESS_TOKEN_TTL must be positive, got %s", c.Auth.AccessTokenTTL)
	}
	if c.RateLimit.Window <= 0 {
		return fmt.Errorf("config: RATE_LIMIT_WINDOW must be positive, got %s", c.RateLimit.Window)
	}
	if _, err := c.HTTP.ProxyNets(); err != nil {
		return err
	}
	return nil
}

// IsProduction reports whether ENV selects production behaviour.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}
