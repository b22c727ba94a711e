package ports

import (
	"context"

	"github.com/quillpress/blog-api/internal/core/domain"
)

// UserRepository is the credential store. Every method is a single atomic
// operation; uniqueness of username and email is enforced by the store itself,
// and Create reports a violation as domain.ErrDuplicateEmail or
// domain.ErrDuplicateUsername.
type UserRepository interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	UpdateRole(ctx context.Context, id string, role domain.Role) (*domain.User, error)
	UpdateActive(ctx context.Context, id string, active bool) (*domain.User, error)
	List(ctx context.Context, page Page) ([]*domain.User, error)
}

// Page is an offset window over a listing.
type Page struct {
	Skip  int
	Limit int
}
