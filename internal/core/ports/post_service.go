package ports

import (
	"context"

	"github.com/quillpress/blog-api/internal/core/domain"
)

// CreatePostInput carries the fields of a new post.
type CreatePostInput struct {
	Title   string
	Content string
	Summary string
}

// PostService defines the post use cases. Mutations take the resolved caller
// and check ownership before writing.
type PostService interface {
	List(ctx context.Context, page Page) ([]*domain.Post, error)
	Get(ctx context.Context, id string) (*domain.Post, error)
	Create(ctx context.Context, caller *domain.User, input CreatePostInput) (*domain.Post, error)
	Update(ctx context.Context, caller *domain.User, id string, patch PostPatch) (*domain.Post, error)
	Delete(ctx context.Context, caller *domain.User, id string) error
}

// CommentService defines the comment use cases.
type CommentService interface {
	ListByPost(ctx context.Context, postID string, page Page) ([]*domain.Comment, error)
	Create(ctx context.Context, caller *domain.User, postID, content string) (*domain.Comment, error)
	Update(ctx context.Context, caller *domain.User, id, content string) (*domain.Comment, error)
	Delete(ctx context.Context, caller *domain.User, id string) error
}

// UserAdminService defines account administration, restricted to admins.
type UserAdminService interface {
	List(ctx context.Context, caller *domain.User, page Page) ([]*domain.User, error)
	UpdateRole(ctx context.Context, caller *domain.User, userID string, role domain.Role) (*domain.User, error)
	UpdateActive(ctx context.Context, caller *domain.User, userID string, active bool) (*domain.User, error)
}
