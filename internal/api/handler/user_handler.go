package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/quillpress/blog-api/internal/core/domain"
	"github.com/quillpress/blog-api/internal/core/ports"
)

// UserAdminHandler serves the /admin/users routes.
type UserAdminHandler struct {
	service ports.UserAdminService
}

func NewUserAdminHandler(service ports.UserAdminService) *UserAdminHandler {
	return &UserAdminHandler{service: service}
}

// List handles GET /admin/users.
//
// @Summary      List users
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        skip   query     int  false  "Offset"
// @Param        limit  query     int  false  "Page size (max 100)"
// @Success      200    {array}   userResponse
// @Failure      403    {object}  errorResponse
// @Router       /admin/users [get]
func (h *UserAdminHandler) List(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	page, err := pageParams(c)
	if err != nil {
		return err
	}
	users, err := h.service.List(c.Request().Context(), user, page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponses(users))
}

// UpdateRole handles PUT /admin/users/:id/role.
//
// @Summary      Change a user's role
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "User ID"
// @Param        body  body      updateRoleRequest  true  "New role"
// @Success      200   {object}  userResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /admin/users/{id}/role [put]
func (h *UserAdminHandler) UpdateRole(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	var req updateRoleRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	updated, err := h.service.UpdateRole(c.Request().Context(), user, c.Param("id"), domain.Role(req.Role))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(updated))
}

// UpdateActive handles PUT /admin/users/:id/active.
//
// @Summary      Activate or deactivate a user
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "User ID"
// @Param        body  body      updateActiveRequest  true  "Active flag"
// @Success      200   {object}  userResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /admin/users/{id}/active [put]
func (h *UserAdminHandler) UpdateActive(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	var req updateActiveRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	updated, err := h.service.UpdateActive(c.Request().Context(), user, c.Param("id"), *req.IsActive)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(updated))
}
