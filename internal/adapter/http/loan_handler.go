package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"vsla-backend/internal/usecase/loan"
)

type LoanHandler struct{ uc *loan.Usecase }

func NewLoanHandler(uc *loan.Usecase) *LoanHandler { return &LoanHandler{uc: uc} }

func (h *LoanHandler) RequestLoan(c echo.Context) error {
	var req loan.RequestLoanInput
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}
	dto, err := h.uc.Request(c.Request().Context(), actorFrom(c), req)
	if err != nil {
		return failDomain(c, err)
	}
	return ok(c, http.StatusCreated, dto)
}

func (h *LoanHandler) ListLoans(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	in := loan.ListInput{
		Status:  c.QueryParam("status"),
		GroupID: c.QueryParam("group_id"),
		UserID:  c.QueryParam("user_id"),
		Page:    page,
		Limit:   limit,
	}
	dto, err := h.uc.List(c.Request().Context(), actorFrom(c), in)
	if err != nil {
		return failDomain(c, err)
	}
	return ok(c, http.StatusOK, dto)
}

func (h *LoanHandler) GetLoan(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), actorFrom(c), c.Param("loan_id"))
	if err != nil {
		return failDomain(c, err)
	}
	return ok(c, http.StatusOK, dto)
}

func (h *LoanHandler) ReviewLoan(c echo.Context) error {
	var req loan.ReviewInput
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}
	dto, err := h.uc.Review(c.Request().Context(), actorFrom(c), c.Param("loan_id"), req)
	if err != nil {
		return failDomain(c, err)
	}
	return ok(c, http.StatusOK, dto)
}

func (h *LoanHandler) ApproveLoan(c echo.Context) error {
	var req loan.ReviewInput
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}
	dto, err := h.uc.Approve(c.Request().Context(), actorFrom(c), c.Param("loan_id"), req)
	if err != nil {
		return failDomain(c, err)
	}
	return ok(c, http.StatusOK, dto)
}

func (h *LoanHandler) DisburseLoan(c echo.Context) error {
	var req loan.DisburseInput
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}
	dto, err := h.uc.Disburse(c.Request().Context(), actorFrom(c), c.Param("loan_id"), req)
	if err != nil {
		return failDomain(c, err)
	}
	return ok(c, http.StatusOK, dto)
}

func (h *LoanHandler) RepayLoan(c echo.Context) error {
	var req loan.RepayInput
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}
	dto, err := h.uc.Repay(c.Request().Context(), actorFrom(c), c.Param("loan_id"), req)
	if err != nil {
		return failDomain(c, err)
	}
	return ok(c, http.StatusCreated, dto)
}

func (h *LoanHandler) DefaultLoan(c echo.Context) error {
	dto, err := h.uc.MarkDefaulted(c.Request().Context(), actorFrom(c), c.Param("loan_id"))
	if err != nil {
		return failDomain(c, err)
	}
	return ok(c, http.StatusOK, dto)
}

func (h *LoanHandler) ListRepayments(c echo.Context) error {
	rows, err := h.uc.Repayments(c.Request().Context(), actorFrom(c), c.Param("loan_id"))
	if err != nil {
		return failDomain(c, err)
	}
	return ok(c, http.StatusOK, rows)
}
