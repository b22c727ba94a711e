package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/quillpress/blog-api/internal/core/domain"
	"github.com/quillpress/blog-api/internal/core/ports"
)

const defaultUserPageLimit = 100

// UserAdminService exposes account administration to admins. Any active admin
// may promote, demote, activate or deactivate other accounts, but never their own.
type UserAdminService struct {
	users  ports.UserRepository
	guard  ports.AccessGuard
	logger zerolog.Logger
}

func NewUserAdminService(users ports.UserRepository, guard ports.AccessGuard, logger zerolog.Logger) *UserAdminService {
	return &UserAdminService{users: users, guard: guard, logger: logger}
}

func (s *UserAdminService) List(ctx context.Context, caller *domain.User, page ports.Page) ([]*domain.User, error) {
	if err := s.guard.RequireRole(caller, domain.RoleAdmin); err != nil {
		return nil, err
	}
	return s.users.List(ctx, normalizePage(page, defaultUserPageLimit))
}

func (s *UserAdminService) UpdateRole(ctx context.Context, caller *domain.User, userID string, role domain.Role) (*domain.User, error) {
	if err := s.guard.RequireRole(caller, domain.RoleAdmin); err != nil {
		return nil, err
	}
	if _, err := domain.ParseRole(string(role)); err != nil {
		return nil, err
	}
	if userID == caller.ID && role != domain.RoleAdmin {
		return nil, domain.ErrPermissionDenied
	}

	user, err := s.users.UpdateRole(ctx, userID, role)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("user_id", userID).Str("role", string(role)).Str("by", caller.ID).Msg("user role updated")
	return user, nil
}

func (s *UserAdminService) UpdateActive(ctx context.Context, caller *domain.User, userID string, active bool) (*domain.User, error) {
	if err := s.guard.RequireRole(caller, domain.RoleAdmin); err != nil {
		return nil, err
	}
	if userID == caller.ID && !active {
		return nil, domain.ErrPermissionDenied
	}

	user, err := s.users.UpdateActive(ctx, userID, active)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("user_id", userID).Bool("is_active", active).Str("by", caller.ID).Msg("user active flag updated")
	return user, nil
}
