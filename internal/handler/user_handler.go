package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"fitsync/internal/service"
)

// UserHandler handles user endpoints.
type UserHandler struct {
	svc service.UserService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// RoleResponse carries the caller's role.
type RoleResponse struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Me godoc
// @Summary Current user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.User
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /me [get]
func (h *UserHandler) Me(c echo.Context) error {
	claims, err := Principal(c)
	if err != nil {
		return err
	}
	user, err := h.svc.GetUser(c.Request().Context(), claims.Email)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, user)
}

// Role godoc
// @Summary Role of the current user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} RoleResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/role [get]
func (h *UserHandler) Role(c echo.Context) error {
	claims, err := Principal(c)
	if err != nil {
		return err
	}
	role, err := h.svc.GetRole(c.Request().Context(), claims.Email)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, RoleResponse{Email: claims.Email, Role: string(role)})
}

// ListUsers godoc
// @Summary List users
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.User
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/users [get]
func (h *UserHandler) ListUsers(c echo.Context) error {
	users, err := h.svc.ListUsers(c.Request().Context())
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, users)
}
