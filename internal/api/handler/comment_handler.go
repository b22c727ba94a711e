package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/quillpress/blog-api/internal/core/ports"
)

// CommentHandler handles HTTP requests for comments.
type CommentHandler struct {
	service ports.CommentService
}

func NewCommentHandler(service ports.CommentService) *CommentHandler {
	return &CommentHandler{service: service}
}

// ListByPost handles GET /posts/:id/comments.
//
// @Summary      List a post's comments
// @Tags         comments
// @Produce      json
// @Param        id     path      string  true   "Post ID"
// @Param        skip   query     int     false  "Offset"
// @Param        limit  query     int     false  "Page size (max 100)"
// @Success      200    {array}   commentResponse
// @Failure      404    {object}  errorResponse
// @Router       /posts/{id}/comments [get]
func (h *CommentHandler) ListByPost(c echo.Context) error {
	page, err := pageParams(c)
	if err != nil {
		return err
	}
	comments, err := h.service.ListByPost(c.Request().Context(), c.Param("id"), page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCommentResponses(comments))
}

// Create handles POST /posts/:id/comments.
//
// @Summary      Comment on a post
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "Post ID"
// @Param        body  body      commentRequest  true  "Comment"
// @Success      201   {object}  commentResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /posts/{id}/comments [post]
func (h *CommentHandler) Create(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	var req commentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	comment, err := h.service.Create(c.Request().Context(), user, c.Param("id"), req.Content)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toCommentResponse(comment))
}

// Update handles PUT /comments/:id.
//
// @Summary      Edit a comment
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "Comment ID"
// @Param        body  body      commentRequest  true  "Comment"
// @Success      200   {object}  commentResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /comments/{id} [put]
func (h *CommentHandler) Update(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	var req commentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	comment, err := h.service.Update(c.Request().Context(), user, c.Param("id"), req.Content)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCommentResponse(comment))
}

// Delete handles DELETE /comments/:id.
//
// @Summary      Delete a comment
// @Tags         comments
// @Security     BearerAuth
// @Param        id   path  string  true  "Comment ID"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /comments/{id} [delete]
func (h *CommentHandler) Delete(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), user, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
