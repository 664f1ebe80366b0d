package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"vsla-backend/internal/usecase/auth"
)

// Context keys shared with the handlers.
const (
	CtxUserID = "user_id"
	CtxRole   = "role"
)

func unauthorized(c echo.Context, msg string) error {
	return c.JSON(http.StatusUnauthorized, map[string]any{"success": false, "message": msg})
}

// Auth verifies the bearer token and stores the caller's identity on the
// request context.
func Auth(tokens *auth.Usecase) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return unauthorized(c, "missing Authorization header")
			}
			const prefix = "Bearer "
			if !strings.HasPrefix(header, prefix) {
				return unauthorized(c, "Authorization header must be a bearer token")
			}
			claims, err := tokens.ParseToken(strings.TrimSpace(strings.TrimPrefix(header, prefix)))
			if err != nil {
				return unauthorized(c, "invalid or expired token")
			}
			c.Set(CtxUserID, claims.UserID)
			c.Set(CtxRole, claims.Role)
			return next(c)
		}
	}
}
