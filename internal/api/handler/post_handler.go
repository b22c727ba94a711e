package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/quillpress/blog-api/internal/core/ports"
)

// PostHandler handles HTTP requests for blog posts.
type PostHandler struct {
	service ports.PostService
}

func NewPostHandler(service ports.PostService) *PostHandler {
	return &PostHandler{service: service}
}

// List handles GET /posts.
//
// @Summary      List posts
// @Tags         posts
// @Produce      json
// @Param        skip   query     int  false  "Offset"
// @Param        limit  query     int  false  "Page size (max 100)"
// @Success      200    {array}   postResponse
// @Failure      400    {object}  errorResponse
// @Router       /posts [get]
func (h *PostHandler) List(c echo.Context) error {
	page, err := pageParams(c)
	if err != nil {
		return err
	}
	posts, err := h.service.List(c.Request().Context(), page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPostResponses(posts))
}

// Get handles GET /posts/:id.
//
// @Summary      Get a post
// @Tags         posts
// @Produce      json
// @Param        id   path      string  true  "Post ID"
// @Success      200  {object}  postResponse
// @Failure      404  {object}  errorResponse
// @Router       /posts/{id} [get]
func (h *PostHandler) Get(c echo.Context) error {
	post, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPostResponse(post))
}

// Create handles POST /posts.
//
// @Summary      Create a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createPostRequest  true  "Post"
// @Success      201   {object}  postResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /posts [post]
func (h *PostHandler) Create(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	var req createPostRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	post, err := h.service.Create(c.Request().Context(), user, ports.CreatePostInput{
		Title:   req.Title,
		Content: req.Content,
		Summary: req.Summary,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toPostResponse(post))
}

// Update handles PUT /posts/:id.
//
// @Summary      Update a post
// @Description  Only the author or an admin may update a post.
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Post ID"
// @Param        body  body      updatePostRequest  true  "Fields to change"
// @Success      200   {object}  postResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /posts/{id} [put]
func (h *PostHandler) Update(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	var req updatePostRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	post, err := h.service.Update(c.Request().Context(), user, c.Param("id"), toPostPatch(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPostResponse(post))
}

// Delete handles DELETE /posts/:id.
//
// @Summary      Delete a post and its comments
// @Tags         posts
// @Security     BearerAuth
// @Param        id   path  string  true  "Post ID"
// @Success      204
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /posts/{id} [delete]
func (h *PostHandler) Delete(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), user, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
