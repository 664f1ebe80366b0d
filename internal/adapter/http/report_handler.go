package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	reportUC "vsla-backend/internal/usecase/report"
)

type ReportHandler struct{ uc *reportUC.Usecase }

func NewReportHandler(uc *reportUC.Usecase) *ReportHandler { return &ReportHandler{uc: uc} }

func (h *ReportHandler) GroupSummary(c echo.Context) error {
	dto, err := h.uc.GroupFinancialSummary(c.Request().Context(), c.Param("group_id"))
	if err != nil {
		return failDomain(c, err)
	}
	return ok(c, http.StatusOK, dto)
}

func (h *ReportHandler) LoanStatusReport(c echo.Context) error {
	dto, err := h.uc.LoanStatusReport(c.Request().Context(), c.QueryParam("group_id"))
	if err != nil {
		return failDomain(c, err)
	}
	return ok(c, http.StatusOK, dto)
}

func (h *ReportHandler) UserLoanSummary(c echo.Context) error {
	dto, err := h.uc.UserLoanSummary(c.Request().Context(), c.Param("user_id"))
	if err != nil {
		return failDomain(c, err)
	}
	return ok(c, http.StatusOK, dto)
}
