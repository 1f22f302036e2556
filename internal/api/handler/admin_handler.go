package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/talentgate/jobboard/internal/core/ports"
)

type AdminHandler struct {
	admin ports.AdminService
}

func NewAdminHandler(admin ports.AdminService) *AdminHandler {
	return &AdminHandler{admin: admin}
}

// ListUsers handles GET /api/admin/users.
//
// @Summary      List users
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        role    query     string  false  "candidate, recruiter or admin"
// @Param        search  query     string  false  "Match on email or name"
// @Param        page    query     int     false  "Page (default 1)"
// @Param        limit   query     int     false  "Page size (default 10, max 100)"
// @Success      200     {object}  paginatedResponse
// @Failure      401     {object}  errorResponse
// @Failure      403     {object}  errorResponse
// @Router       /api/admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	page, err := pageRequest(c)
	if err != nil {
		return err
	}

	result, err := h.admin.ListUsers(c.Request().Context(), caller(c), ports.ListUsersInput{
		Role:        c.QueryParam("role"),
		Search:      c.QueryParam("search"),
		PageRequest: page,
	})
	if err != nil {
		return err
	}
	return list(c, result)
}

// GetUser handles GET /api/admin/users/:userId.
//
// @Summary      Get a user
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        userId  path      string  true  "User id"
// @Success      200     {object}  dataResponse
// @Failure      401     {object}  errorResponse
// @Failure      403     {object}  errorResponse
// @Failure      404     {object}  errorResponse
// @Router       /api/admin/users/{userId} [get]
func (h *AdminHandler) GetUser(c echo.Context) error {
	user, err := h.admin.GetUser(c.Request().Context(), caller(c), c.Param("userId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dataResponse{Data: user})
}

// DeleteUser handles DELETE /api/admin/users/:userId.
//
// @Summary      Delete a user
// @Tags         admin
// @Security     BearerAuth
// @Param        userId  path  string  true  "User id"
// @Success      204
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/admin/users/{userId} [delete]
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	if err := h.admin.DeleteUser(c.Request().Context(), caller(c), c.Param("userId")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ChangeRole handles PUT /api/admin/users/:userId/role.
//
// @Summary      Change a user's role
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        userId  path      string             true  "User id"
// @Param        body    body      changeRoleRequest  true  "New role"
// @Success      200     {object}  dataResponse
// @Failure      400     {object}  errorResponse
// @Failure      401     {object}  errorResponse
// @Failure      403     {object}  errorResponse
// @Failure      404     {object}  errorResponse
// @Router       /api/admin/users/{userId}/role [put]
func (h *AdminHandler) ChangeRole(c echo.Context) error {
	var req changeRoleRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}

	user, err := h.admin.ChangeRole(c.Request().Context(), caller(c), c.Param("userId"), req.Role)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dataResponse{Data: user, Message: "Role updated"})
}
