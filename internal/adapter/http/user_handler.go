package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	userUC "vsla-backend/internal/usecase/user"
)

type UserHandler struct{ uc *userUC.Usecase }

func NewUserHandler(uc *userUC.Usecase) *UserHandler { return &UserHandler{uc: uc} }

func (h *UserHandler) ListUsers(c echo.Context) error {
	rows, err := h.uc.List(c.Request().Context())
	if err != nil {
		return failDomain(c, err)
	}
	return ok(c, http.StatusOK, rows)
}

func (h *UserHandler) GetUser(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("user_id"))
	if err != nil {
		return failDomain(c, err)
	}
	return ok(c, http.StatusOK, dto)
}

func (h *UserHandler) UpdateUser(c echo.Context) error {
	var req userUC.UpdateUserInput
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}
	dto, err := h.uc.Update(c.Request().Context(), c.Param("user_id"), req)
	if err != nil {
		return failDomain(c, err)
	}
	return ok(c, http.StatusOK, dto)
}

func (h *UserHandler) SuspendUser(c echo.Context) error {
	dto, err := h.uc.Suspend(c.Request().Context(), c.Param("user_id"))
	if err != nil {
		return failDomain(c, err)
	}
	return ok(c, http.StatusOK, dto)
}

func (h *UserHandler) ActivateUser(c echo.Context) error {
	dto, err := h.uc.Activate(c.Request().Context(), c.Param("user_id"))
	if err != nil {
		return failDomain(c, err)
	}
	return ok(c, http.StatusOK, dto)
}
