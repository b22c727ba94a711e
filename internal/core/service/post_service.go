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

const defaultPostPageLimit = 10

type PostService struct {
	posts    ports.PostRepository
	comments ports.CommentRepository
	guard    ports.AccessGuard
	logger   zerolog.Logger
	now      func() time.Time
}

func NewPostService(posts ports.PostRepository, comments ports.CommentRepository, guard ports.AccessGuard, logger zerolog.Logger) *PostService {
	return &PostService{
		posts:    posts,
		comments: comments,
		guard:    guard,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *PostService) List(ctx context.Context, page ports.Page) ([]*domain.Post, error) {
	return s.posts.List(ctx, normalizePage(page, defaultPostPageLimit))
}

func (s *PostService) Get(ctx context.Context, id string) (*domain.Post, error) {
	return s.posts.FindByID(ctx, id)
}

// Create stores a post authored by caller.
func (s *PostService) Create(ctx context.Context, caller *domain.User, in ports.CreatePostInput) (*domain.Post, error) {
	if caller == nil {
		return nil, domain.ErrUnknownSubject
	}
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Content) == "" {
		return nil, domain.ErrInvalidInput
	}

	now := s.now().UTC()
	post, err := s.posts.Create(ctx, &domain.Post{
		Title:     in.Title,
		Content:   in.Content,
		Summary:   in.Summary,
		AuthorID:  caller.ID,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", caller.ID).Msg("failed to create post")
		return nil, fmt.Errorf("create post: %w", err)
	}

	s.logger.Info().Str("post_id", post.ID).Str("user_id", caller.ID).Msg("post created")
	return post, nil
}

// Update applies patch once caller is confirmed as the post's author or an admin.
func (s *PostService) Update(ctx context.Context, caller *domain.User, id string, patch ports.PostPatch) (*domain.Post, error) {
	post, err := s.authorize(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	if (patch.Title != nil && strings.TrimSpace(*patch.Title) == "") ||
		(patch.Content != nil && strings.TrimSpace(*patch.Content) == "") {
		return nil, domain.ErrInvalidInput
	}
	if patch.Title == nil && patch.Content == nil && patch.Summary == nil {
		return post, nil
	}

	updated, err := s.posts.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("post_id", id).Str("user_id", caller.ID).Msg("post updated")
	return updated, nil
}

// Delete removes the post's comments and then the post. A failure part way
// leaves the post in place, so the call can be retried.
func (s *PostService) Delete(ctx context.Context, caller *domain.User, id string) error {
	if _, err := s.authorize(ctx, caller, id); err != nil {
		return err
	}

	removed, err := s.comments.DeleteByPost(ctx, id)
	if err != nil {
		return fmt.Errorf("delete post comments: %w", err)
	}

	if err := s.posts.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Str("post_id", id).Str("user_id", caller.ID).Int64("comments_removed", removed).Msg("post deleted")
	return nil
}

func (s *PostService) authorize(ctx context.Context, caller *domain.User, id string) (*domain.Post, error) {
	if caller == nil {
		return nil, domain.ErrUnknownSubject
	}
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.guard.RequireOwnershipOrAdmin(caller, post.AuthorID); err != nil {
		return nil, err
	}
	return post, nil
}
