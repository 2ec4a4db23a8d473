package handler

import (
	"github.com/labstack/echo/v4"

	"fitsync/internal/model"
	"fitsync/internal/service"
)

// RequireRole allows the request through only when the caller's stored role is one of roles.
// The role is read from the store, not the token.
func RequireRole(users service.UserService, roles ...model.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, err := Principal(c)
			if err != nil {
				return err
			}
			role, err := users.GetRole(c.Request().Context(), claims.Email)
			if err != nil {
				return forbidden()
			}
			for _, allowed := range roles {
				if role == allowed {
					c.Set("role", role)
					return next(c)
				}
			}
			return forbidden()
		}
	}
}
