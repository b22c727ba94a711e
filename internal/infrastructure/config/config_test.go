package config

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"

	"github.com/quillpress/blog-api/internal/core/domain"
)

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET": "s3cret",
	}))
	if err != nil {
		t.Fatalf("LoadFrom returned error: %v", err)
	}
	if cfg.Auth.JWTAlgorithm != "HS256" {
		t.Fatalf("expected HS256, got %s", cfg.Auth.JWTAlgorithm)
	}
	if cfg.Auth.AccessTokenTTL != 30*time.Minute {
		t.Fatalf("expected 30m TTL, got %s", cfg.Auth.AccessTokenTTL)
	}
	if cfg.Port != "8080" || cfg.Mongo.Database != "blog" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.RateLimit.Login != 10 || cfg.RateLimit.Register != 5 || cfg.RateLimit.Write != 10 {
		t.Fatalf("unexpected rate limits: %+v", cfg.RateLimit)
	}
	if cfg.RateLimit.Read != 30 || cfg.RateLimit.Comment != 15 {
		t.Fatalf("unexpected read/comment limits: %+v", cfg.RateLimit)
	}
	if len(cfg.HTTP.TrustedProxies) != 0 {
		t.Fatalf("expected no trusted proxies by default, got %v", cfg.HTTP.TrustedProxies)
	}
	if cfg.IsProduction() {
		t.Fatalf("expected development by default")
	}
}

func TestLoadFrom_Overrides(t *testing.T) {
	cfg, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":       "s3cret",
		"JWT_ALGORITHM":    "HS512",
		"ACCESS_TOKEN_TTL": "5m",
		"ENV":              "production",
	}))
	if err != nil {
		t.Fatalf("LoadFrom returned error: %v", err)
	}
	if cfg.Auth.JWTAlgorithm != "HS512" || cfg.Auth.AccessTokenTTL != 5*time.Minute {
		t.Fatalf("overrides not applied: %+v", cfg.Auth)
	}
	if !cfg.IsProduction() {
		t.Fatalf("expected production")
	}
}

func TestLoadFrom_TrustedProxies(t *testing.T) {
	cfg, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":      "s3cret",
		"TRUSTED_PROXIES": "10.0.0.0/8,192.0.2.7",
	}))
	if err != nil {
		t.Fatalf("LoadFrom returned error: %v", err)
	}
	nets, err := cfg.HTTP.ProxyNets()
	if err != nil {
		t.Fatalf("ProxyNets returned error: %v", err)
	}
	if len(nets) != 2 {
		t.Fatalf("expected 2 ranges, got %d", len(nets))
	}
	if !nets[0].Contains(net.ParseIP("10.1.2.3")) {
		t.Fatalf("expected 10.1.2.3 in %s", nets[0])
	}
	if !nets[1].Contains(net.ParseIP("192.0.2.7")) || nets[1].Contains(net.ParseIP("192.0.2.8")) {
		t.Fatalf("expected single-host range, got %s", nets[1])
	}
}

func TestLoadFrom_InvalidTrustedProxy(t *testing.T) {
	_, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":      "s3cret",
		"TRUSTED_PROXIES": "not-an-ip",
	}))
	if err == nil {
		t.Fatalf("expected error for invalid TRUSTED_PROXIES")
	}
}

func TestLoadFrom_MissingSecret(t *testing.T) {
	if _, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{})); err == nil {
		t.Fatalf("expected error without JWT_SECRET")
	}
}

func TestValidate(t *testing.T) {
	base := func() Config {
		return Config{
			Auth:      AuthConfig{JWTSecret: "s", JWTAlgorithm: "HS256", AccessTokenTTL: time.Minute},
			RateLimit: RateLimitConfig{Window: time.Minute},
		}
	}

	blank := base()
	blank.Auth.JWTSecret = "   "
	if err := blank.Validate(); !errors.Is(err, domain.ErrMissingSigningSecret) {
		t.Fatalf("expected ErrMissingSigningSecret, got %v", err)
	}

	rsa := base()
	rsa.Auth.JWTAlgorithm = "RS256"
	if err := rsa.Validate(); !errors.Is(err, domain.ErrUnsupportedAlgorithm) {
		t.Fatalf("expected ErrUnsupportedAlgorithm, got %v", err)
	}

	ttl := base()
	ttl.Auth.AccessTokenTTL = 0
	if err := ttl.Validate(); err == nil {
		t.Fatalf("expected error for zero TTL")
	}

	ok := base()
	if err := ok.Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
}
