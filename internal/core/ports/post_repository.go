package ports

import (
	"context"

	"github.com/quillpress/blog-api/internal/core/domain"
)

// PostPatch lists the fields of a post to change; nil fields are left alone.
type PostPatch struct {
	Title   *string
	Content *string
	Summary *string
}

// PostRepository defines persistence operations for blog posts.
type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) (*domain.Post, error)
	FindByID(ctx context.Context, id string) (*domain.Post, error)
	List(ctx context.Context, page Page) ([]*domain.Post, error)
	Update(ctx context.Context, id string, patch PostPatch) (*domain.Post, error)
	Delete(ctx context.Context, id string) error
}

// CommentRepository defines persistence operations for comments.
type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) (*domain.Comment, error)
	FindByID(ctx context.Context, id string) (*domain.Comment, error)
	ListByPost(ctx context.Context, postID string, page Page) ([]*domain.Comment, error)
	UpdateContent(ctx context.Context, id, content string) (*domain.Comment, error)
	Delete(ctx context.Context, id string) error
	DeleteByPost(ctx context.Context, postID string) (int64, error)
}
