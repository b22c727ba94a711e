package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/quillpress/blog-api/internal/api/middleware"
	"github.com/quillpress/blog-api/internal/core/domain"
	"github.com/quillpress/blog-api/internal/core/ports"
)

type stubCommentService struct {
	postID  string
	content string
	err     error
}

func (s *stubCommentService) ListByPost(_ context.Context, postID string, _ ports.Page) ([]*domain.Comment, error) {
	s.postID = postID
	if s.err != nil {
		return nil, s.err
	}
	return []*domain.Comment{}, nil
}

func (s *stubCommentService) Create(_ context.Context, caller *domain.User, postID, content string) (*domain.Comment, error) {
	s.postID, s.content = postID, content
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Comment{ID: "c1", PostID: postID, Content: content, AuthorID: caller.ID}, nil
}

func (s *stubCommentService) Update(_ context.Context, caller *domain.User, id, content string) (*domain.Comment, error) {
	s.content = content
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Comment{ID: id, Content: content, AuthorID: caller.ID}, nil
}

func (s *stubCommentService) Delete(_ context.Context, _ *domain.User, _ string) error {
	return s.err
}

func TestCommentHandler_Create(t *testing.T) {
	e := newTestEcho()
	svc := &stubCommentService{}
	handler := NewCommentHandler(svc)

	c, rec := jsonRequest(e, http.MethodPost, "/posts/p1/comments", `{"content":"nice"}`)
	c.SetParamNames("id")
	c.SetParamValues("p1")
	c.Set(middleware.CallerKey, testCaller)

	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if svc.postID != "p1" || svc.content != "nice" {
		t.Fatalf("unexpected service args: %s %s", svc.postID, svc.content)
	}
}

func TestCommentHandler_Create_PostMissing(t *testing.T) {
	e := newTestEcho()
	handler := NewCommentHandler(&stubCommentService{err: domain.ErrPostNotFound})

	c, _ := jsonRequest(e, http.MethodPost, "/posts/zz/comments", `{"content":"nice"}`)
	c.SetParamNames("id")
	c.SetParamValues("zz")
	c.Set(middleware.CallerKey, testCaller)

	if err := handler.Create(c); !errors.Is(err, domain.ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound, got %v", err)
	}
}

func TestCommentHandler_Update_Validation(t *testing.T) {
	e := newTestEcho()
	handler := NewCommentHandler(&stubCommentService{})

	c, _ := jsonRequest(e, http.MethodPut, "/comments/c1", `{"content":""}`)
	c.SetParamNames("id")
	c.SetParamValues("c1")
	c.Set(middleware.CallerKey, testCaller)

	if code := httpStatus(t, handler.Update(c)); code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", code)
	}
}

func TestCommentHandler_Delete_Forbidden(t *testing.T) {
	e := newTestEcho()
	handler := NewCommentHandler(&stubCommentService{err: domain.ErrPermissionDenied})

	c, _ := jsonRequest(e, http.MethodDelete, "/comments/c1", "")
	c.SetParamNames("id")
	c.SetParamValues("c1")
	c.Set(middleware.CallerKey, testCaller)

	if err := handler.Delete(c); !errors.Is(err, domain.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}
}

func TestCommentHandler_ListByPost(t *testing.T) {
	e := newTestEcho()
	svc := &stubCommentService{}
	handler := NewCommentHandler(svc)

	c, rec := jsonRequest(e, http.MethodGet, "/posts/p1/comments", "")
	c.SetParamNames("id")
	c.SetParamValues("p1")

	if err := handler.ListByPost(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK || svc.postID != "p1" {
		t.Fatalf("unexpected result: %d %s", rec.Code, svc.postID)
	}
	if body := rec.Body.String(); body != "[]\n" {
		t.Fatalf("expected empty array, got %q", body)
	}
}
