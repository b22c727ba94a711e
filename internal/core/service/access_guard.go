package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/quillpress/blog-api/internal/core/domain"
	"github.com/quillpress/blog-api/internal/core/ports"
)

// AccessGuard turns a bearer token into a live, active user and answers
// role and ownership questions about that user.
type AccessGuard struct {
	tokens ports.TokenService
	users  ports.UserRepository
	logger zerolog.Logger
	now    func() time.Time
}

func NewAccessGuard(tokens ports.TokenService, users ports.UserRepository, logger zerolog.Logger) *AccessGuard {
	return &AccessGuard{
		tokens: tokens,
		users:  users,
		logger: logger,
		now:    time.Now,
	}
}

// ResolveCaller validates token and re-reads its subject from the store, so a
// deleted or deactivated account loses access immediately.
func (g *AccessGuard) ResolveCaller(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, domain.ErrMissingToken
	}

	subject, err := g.tokens.Validate(token, g.now())
	if err != nil {
		g.logger.Debug().Err(err).Str("stage", string(domain.StageUnauthenticated)).Msg("token rejected")
		return nil, err
	}

	user, err := g.users.FindByID(ctx, subject)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			g.logger.Debug().Str("stage", string(domain.StageTokenValidated)).Str("user_id", subject).Msg("token subject not found")
			return nil, domain.ErrUnknownSubject
		}
		return nil, fmt.Errorf("resolve caller: %w", err)
	}

	if !user.IsActive {
		g.logger.Debug().Str("stage", string(domain.StageTokenValidated)).Str("user_id", subject).Msg("inactive account")
		return nil, domain.ErrInactiveAccount
	}
	return user, nil
}

// RequireRole allows only callers holding exactly role.
func (g *AccessGuard) RequireRole(user *domain.User, role domain.Role) error {
	if user == nil || user.Role != role {
		return g.deny(user, "role")
	}
	return nil
}

// RequireOwnershipOrAdmin allows the owner of a resource, identified by the
// resource's owner id, and any admin.
func (g *AccessGuard) RequireOwnershipOrAdmin(user *domain.User, ownerID string) error {
	if user == nil {
		return g.deny(nil, "ownership")
	}
	if user.Role.IsAdmin() || (ownerID != "" && user.ID == ownerID) {
		return nil
	}
	return g.deny(user, "ownership")
}

func (g *AccessGuard) deny(user *domain.User, check string) error {
	ev := g.logger.Info().Str("stage", string(domain.StageDenied)).Str("check", check)
	if user != nil {
		ev = ev.Str("user_id", user.ID).Str("role", string(user.Role))
	}
	ev.Msg("authorization denied")
	return domain.ErrPermissionDenied
}
