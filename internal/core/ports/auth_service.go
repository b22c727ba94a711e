package ports

import (
	"context"
	"time"

	"github.com/quillpress/blog-api/internal/core/domain"
)

// PasswordHasher hashes and checks plaintext passwords. Verify never fails
// loudly: a malformed hash simply does not match.
type PasswordHasher interface {
	Hash(ctx context.Context, plaintext string) (string, error)
	Verify(ctx context.Context, plaintext, hash string) bool
}

// TokenService issues and validates signed bearer tokens. Validate only proves
// the token is authentic and unexpired; it does not check the subject exists.
type TokenService interface {
	Issue(subjectID string, now time.Time, ttl time.Duration) (string, error)
	Validate(token string, now time.Time) (string, error)
	TTL() time.Duration
}

// RegisterInput carries the fields accepted at registration.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	FullName string
}

// LoginResult is returned by a successful login.
type LoginResult struct {
	AccessToken string
	TokenType   string
	ExpiresIn   time.Duration
	User        *domain.User
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
}

// AccessGuard resolves the caller behind a bearer token and answers
// authorization questions about them.
type AccessGuard interface {
	ResolveCaller(ctx context.Context, token string) (*domain.User, error)
	RequireRole(user *domain.User, role domain.Role) error
	RequireOwnershipOrAdmin(user *domain.User, ownerID string) error
}
