package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/quillpress/blog-api/internal/core/domain"
	"github.com/quillpress/blog-api/internal/core/ports"
)

const defaultCommentPageLimit = 10

type CommentService struct {
	comments ports.CommentRepository
	posts    ports.PostRepository
	guard    ports.AccessGuard
	logger   zerolog.Logger
	now      func() time.Time
}

func NewCommentService(comments ports.CommentRepository, posts ports.PostRepository, guard ports.AccessGuard, logger zerolog.Logger) *CommentService {
	return &CommentService{
		comments: comments,
		posts:    posts,
		guard:    guard,
		logger:   logger,
		now:      time.Now,
	}
}

// ListByPost returns a page of the post's comments. The post must exist.
func (s *CommentService) ListByPost(ctx context.Context, postID string, page ports.Page) ([]*domain.Comment, error) {
	if _, err := s.posts.FindByID(ctx, postID); err != nil {
		return nil, err
	}
	return s.comments.ListByPost(ctx, postID, normalizePage(page, defaultCommentPageLimit))
}

func (s *CommentService) Create(ctx context.Context, caller *domain.User, postID, content string) (*domain.Comment, error) {
	if caller == nil {
		return nil, domain.ErrUnknownSubject
	}
	if strings.TrimSpace(content) == "" {
		return nil, domain.ErrInvalidInput
	}
	if _, err := s.posts.FindByID(ctx, postID); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	comment, err := s.comments.Create(ctx, &domain.Comment{
		Content:   content,
		AuthorID:  caller.ID,
		PostID:    postID,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}

	s.logger.Info().Str("comment_id", comment.ID).Str("post_id", postID).Str("user_id", caller.ID).Msg("comment created")
	return comment, nil
}

func (s *CommentService) Update(ctx context.Context, caller *domain.User, id, content string) (*domain.Comment, error) {
	if _, err := s.authorize(ctx, caller, id); err != nil {
		return nil, err
	}
	if strings.TrimSpace(content) == "" {
		return nil, domain.ErrInvalidInput
	}
	return s.comments.UpdateContent(ctx, id, content)
}

func (s *CommentService) Delete(ctx context.Context, caller *domain.User, id string) error {
	if _, err := s.authorize(ctx, caller, id); err != nil {
		return err
	}
	if err := s.comments.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("comment_id", id).Str("user_id", caller.ID).Msg("comment deleted")
	return nil
}

func (s *CommentService) authorize(ctx context.Context, caller *domain.User, id string) (*domain.Comment, error) {
	if caller == nil {
		return nil, domain.ErrUnknownSubject
	}
	comment, err := s.comments.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.guard.RequireOwnershipOrAdmin(caller, comment.AuthorID); err != nil {
		return nil, err
	}
	return comment, nil
}
