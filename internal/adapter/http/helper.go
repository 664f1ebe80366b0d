package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"vsla-backend/internal/domain/contribution"
	"vsla-backend/internal/domain/group"
	"vsla-backend/internal/domain/loan"
	"vsla-backend/internal/domain/membership"
	"vsla-backend/internal/domain/user"
)

// Response is the envelope every endpoint answers with.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Error   any    `json:"error,omitempty"`
}

func ok(c echo.Context, code int, data any) error {
	return c.JSON(code, Response{Success: true, Data: data})
}

func fail(c echo.Context, code int, msg string) error {
	return c.JSON(code, Response{Success: false, Message: msg})
}

func failDetails(c echo.Context, code int, msg string, details any) error {
	return c.JSON(code, Response{Success: false, Message: msg, Error: details})
}

// domainStatus maps domain sentinel errors onto HTTP status codes. Anything
// unrecognized is a 500.
func domainStatus(err error) int {
	switch {
	case errors.Is(err, loan.ErrNotFound),
		errors.Is(err, group.ErrNotFound),
		errors.Is(err, membership.ErrNotFound),
		errors.Is(err, user.ErrNotFound),
		errors.Is(err, contribution.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, loan.ErrValidation),
		errors.Is(err, group.ErrValidation),
		errors.Is(err, user.ErrValidation),
		errors.Is(err, contribution.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, loan.ErrForbidden),
		errors.Is(err, membership.ErrNotMember):
		return http.StatusForbidden
	case errors.Is(err, user.ErrInvalidCredentials),
		errors.Is(err, user.ErrSuspended):
		return http.StatusUnauthorized
	case errors.Is(err, loan.ErrInvalidTransition),
		errors.Is(err, group.ErrDuplicateName),
		errors.Is(err, user.ErrDuplicatePhone),
		errors.Is(err, user.ErrDuplicateEmail),
		errors.Is(err, membership.ErrAlreadyMember),
		errors.Is(err, membership.ErrGroupFull):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// failDomain translates a usecase error into the envelope. 500s hide the
// underlying error from the client.
func failDomain(c echo.Context, err error) error {
	code := domainStatus(err)
	if code == http.StatusInternalServerError {
		return fail(c, code, "internal error")
	}
	return fail(c, code, err.Error())
}
