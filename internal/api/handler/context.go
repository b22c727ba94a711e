package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/quillpress/blog-api/internal/api/middleware"
	"github.com/quillpress/blog-api/internal/core/domain"
	"github.com/quillpress/blog-api/internal/core/ports"
)

// currentUser returns the caller resolved by the Auth middleware. A missing
// caller means the route was wired without Auth, which is reported as 401.
func currentUser(c echo.Context) (*domain.User, error) {
	user := middleware.Caller(c)
	if user == nil {
		return nil, domain.ErrMissingToken
	}
	return user, nil
}

// bindAndValidate decodes the request body into req and runs the validator:
// undecodable bodies are 400, well-formed bodies that break a rule are 422.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	return nil
}

// pageParams reads ?skip=&limit=. Out-of-range values are clamped by the services.
func pageParams(c echo.Context) (ports.Page, error) {
	var page ports.Page
	err := echo.QueryParamsBinder(c).
		Int("skip", &page.Skip).
		Int("limit", &page.Limit).
		BindError()
	if err != nil {
		return ports.Page{}, echo.NewHTTPError(http.StatusBadRequest, "skip and limit must be integers")
	}
	return page, nil
}
