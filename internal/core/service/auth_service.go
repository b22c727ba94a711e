package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/quillpress/blog-api/internal/core/domain"
	"github.com/quillpress/blog-api/internal/core/ports"
)

const TokenTypeBearer = "bearer"

// dummyPassword is hashed at construction and compared against when an email
// is unknown, so both login failure paths pay for one bcrypt comparison.
const dummyPassword = "timing-equalisation-password"

// AuthService implements registration, credential checks and login.
type AuthService struct {
	repo   ports.UserRepository
	hasher ports.PasswordHasher
	tokens ports.TokenService
	logger zerolog.Logger
	now    func() time.Time

	dummyHash string
}

// NewAuthService hashes the timing password up front, so hasher must already
// be accepting work. A hasher failure here fails construction.
func NewAuthService(repo ports.UserRepository, hasher ports.PasswordHasher, tokens ports.TokenService, logger zerolog.Logger) (*AuthService, error) {
	dummy, err := hasher.Hash(context.Background(), dummyPassword)
	if err != nil {
		return nil, fmt.Errorf("prepare timing hash: %w", err)
	}
	return &AuthService{
		repo:      repo,
		hasher:    hasher,
		tokens:    tokens,
		logger:    logger,
		now:       time.Now,
		dummyHash: dummy,
	}, nil
}

// Register creates a standard, active account. The duplicate pre-checks give a
// fast answer; the store's unique indexes remain the authority when two
// registrations race.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	if strings.TrimSpace(in.Username) == "" || strings.TrimSpace(in.Email) == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	if len(in.Password) > MaxPasswordBytes {
		return nil, domain.ErrPasswordTooLong
	}

	if _, err := s.repo.FindByEmail(ctx, in.Email); err == nil {
		return nil, domain.ErrDuplicateEmail
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("register: lookup email: %w", err)
	}

	if _, err := s.repo.FindByUsername(ctx, in.Username); err == nil {
		return nil, domain.ErrDuplicateUsername
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("register: lookup username: %w", err)
	}

	hash, err := s.hasher.Hash(ctx, in.Password)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	now := s.now().UTC()
	created, err := s.repo.Create(ctx, &domain.User{
		Username:     in.Username,
		Email:        in.Email,
		FullName:     in.FullName,
		PasswordHash: hash,
		Role:         domain.RoleUser,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) || errors.Is(err, domain.ErrDuplicateUsername) {
			return nil, err
		}
		return nil, fmt.Errorf("register: %w", err)
	}

	s.logger.Info().Str("user_id", created.ID).Str("username", created.Username).Msg("user registered")
	return created, nil
}

// Authenticate resolves an email and password to a user. Unknown email and
// wrong password both yield domain.ErrInvalidCredentials after the same amount
// of hashing work.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, domain.ErrUserNotFound) {
			return nil, fmt.Errorf("authenticate: %w", err)
		}
		s.hasher.Verify(ctx, password, s.dummyHash)
		return nil, domain.ErrInvalidCredentials
	}

	if !s.hasher.Verify(ctx, password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}
	return user, nil
}

// Login authenticates and issues an access token. Deactivated accounts cannot
// log in and get the same generic failure.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	user, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		s.logger.Info().Str("user_id", user.ID).Msg("login refused for inactive account")
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, s.now(), 0)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	return &ports.LoginResult{
		AccessToken: token,
		TokenType:   TokenTypeBearer,
		ExpiresIn:   s.tokens.TTL(),
		User:        user,
	}, nil
}
