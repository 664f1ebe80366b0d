package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"vsla-backend/internal/domain/user"
	loanUC "vsla-backend/internal/usecase/loan"
)

type Handler struct{}

func NewHandler() *Handler { return &Handler{} }

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339Nano),
	})
}

// Context keys set by the auth middleware.
const (
	CtxUserID = "user_id"
	CtxRole   = "role"
)

// actorFrom reads the authenticated identity the middleware stored on the
// request context.
func actorFrom(c echo.Context) loanUC.Actor {
	userID, _ := c.Get(CtxUserID).(string)
	role, _ := c.Get(CtxRole).(string)
	return loanUC.Actor{UserID: userID, Role: user.Role(role)}
}
