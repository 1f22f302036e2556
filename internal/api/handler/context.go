package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/talentgate/jobboard/internal/api/middleware"
	"github.com/talentgate/jobboard/internal/core/domain"
	"github.com/talentgate/jobboard/internal/core/ports"
)

// caller returns the identity attached by the Authenticate middleware, or
// nil. The authorization check rejects a nil caller, so handlers pass it
// through without checking.
func caller(c echo.Context) *domain.Identity {
	return middleware.IdentityFrom(c)
}

// bindValid binds the request body into req and validates it.
func bindValid(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

// pageRequest reads the page and limit query parameters. Out-of-range
// values are normalized rather than rejected.
func pageRequest(c echo.Context) (ports.PageRequest, error) {
	var req ports.PageRequest
	err := echo.QueryParamsBinder(c).
		Int("page", &req.Page).
		Int("limit", &req.Limit).
		BindError()
	if err != nil {
		return req, echo.NewHTTPError(http.StatusBadRequest, "page and limit must be integers")
	}
	return req.Normalize(), nil
}

// list renders a paginated listing.
func list[T any](c echo.Context, page *ports.Page[T]) error {
	return c.JSON(http.StatusOK, paginatedResponse{
		Data:       page.Items,
		Count:      page.Total,
		Page:       page.Page,
		Limit:      page.Limit,
		TotalPages: page.TotalPages,
	})
}
