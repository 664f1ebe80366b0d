package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"vsla-backend/internal/usecase/auth"
)

type AuthHandler struct{ uc *auth.Usecase }

func NewAuthHandler(uc *auth.Usecase) *AuthHandler { return &AuthHandler{uc: uc} }

type registerReq struct {
	Name     string `json:"name"     validate:"required,min=2,max=255"`
	Phone    string `json:"phone"    validate:"required,phone"`
	Email    string `json:"email"    validate:"omitempty,email"`
	Password string `json:"password" validate:"required,min=8"`
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return failDetails(c, http.StatusBadRequest, "validation failed", ToFieldErrors(err))
	}
	dto, err := h.uc.Register(c.Request().Context(), auth.RegisterInput{
		Name:     req.Name,
		Phone:    req.Phone,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return failDomain(c, err)
	}
	return ok(c, http.StatusCreated, dto)
}

type loginReq struct {
	Phone    string `json:"phone"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return failDetails(c, http.StatusBadRequest, "validation failed", ToFieldErrors(err))
	}
	dto, err := h.uc.Login(c.Request().Context(), auth.LoginInput(req))
	if err != nil {
		return failDomain(c, err)
	}
	return ok(c, http.StatusOK, dto)
}
