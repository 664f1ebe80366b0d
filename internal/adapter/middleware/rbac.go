package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"vsla-backend/internal/domain/user"
)

// RequirePermission gates a route on the static permission table. It must
// run after Auth.
func RequirePermission(permission string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(CtxRole).(string)
			if role == "" {
				return unauthorized(c, "authentication required")
			}
			if !user.HasPermission(user.Role(role), permission) {
				return c.JSON(http.StatusForbidden, map[string]any{
					"success": false,
					"message": "insufficient permissions",
				})
			}
			return next(c)
		}
	}
}
