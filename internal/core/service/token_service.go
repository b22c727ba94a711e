package service

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/quillpress/blog-api/internal/core/domain"
)

const DefaultTokenTTL = 30 * time.Minute

// TokenConfig is the signing configuration, loaded once at startup.
type TokenConfig struct {
	Secret    []byte
	Algorithm string
	TTL       time.Duration
}

// TokenService issues and validates HMAC-signed JWT access tokens.
type TokenService struct {
	secret []byte
	method *jwt.SigningMethodHMAC
	ttl    time.Duration
}

// NewTokenService builds a TokenService from cfg. There is no fallback
// secret: an empty one is a configuration error.
func NewTokenService(cfg TokenConfig) (*TokenService, error) {
	if len(bytes.TrimSpace(cfg.Secret)) == 0 {
		return nil, domain.ErrMissingSigningSecret
	}

	alg := cfg.Algorithm
	if alg == "" {
		alg = jwt.SigningMethodHS256.Alg()
	}
	method, ok := jwt.GetSigningMethod(alg).(*jwt.SigningMethodHMAC)
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedAlgorithm, alg)
	}

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}

	secret := make([]byte, len(cfg.Secret))
	copy(secret, cfg.Secret)

	return &TokenService{secret: secret, method: method, ttl: ttl}, nil
}

// TTL is the lifetime applied when Issue is called without one.
func (s *TokenService) TTL() time.Duration {
	return s.ttl
}

// Issue signs a token for subjectID valid from now until now+ttl.
// A non-positive ttl uses the configured default.
func (s *TokenService) Issue(subjectID string, now time.Time, ttl time.Duration) (string, error) {
	if subjectID == "" {
		return "", errors.New("issue token: empty subject")
	}
	if ttl <= 0 {
		ttl = s.ttl
	}

	claims := jwt.RegisteredClaims{
		Subject:   subjectID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		ID:        uuid.NewString(),
	}

	signed, err := jwt.NewWithClaims(s.method, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Validate checks the token's signature and expiry as of now and returns its
// subject. The signature is checked before any claim, so a forged token is
// always reported as domain.ErrInvalidSignature.
func (s *TokenService) Validate(token string, now time.Time) (string, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{s.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)

	claims := &jwt.RegisteredClaims{}
	if _, err := parser.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	}); err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return "", domain.ErrInvalidSignature
		case errors.Is(err, jwt.ErrTokenExpired):
			return "", domain.ErrTokenExpired
		default:
			return "", domain.ErrMalformedToken
		}
	}

	if claims.Subject == "" {
		return "", domain.ErrMalformedToken
	}
	return claims.Subject, nil
}
