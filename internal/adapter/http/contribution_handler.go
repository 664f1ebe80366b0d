package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	contributionUC "vsla-backend/internal/usecase/contribution"
)

type ContributionHandler struct{ uc *contributionUC.Usecase }

func NewContributionHandler(uc *contributionUC.Usecase) *ContributionHandler {
	return &ContributionHandler{uc: uc}
}

func (h *ContributionHandler) RecordContribution(c echo.Context) error {
	var req contributionUC.RecordInput
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}
	recordedBy, _ := c.Get(CtxUserID).(string)
	dto, err := h.uc.Record(c.Request().Context(), recordedBy, req)
	if err != nil {
		return failDomain(c, err)
	}
	return ok(c, http.StatusCreated, dto)
}

// ListContributions filters by group_id or user_id; exactly one is required.
func (h *ContributionHandler) ListContributions(c echo.Context) error {
	groupID := c.QueryParam("group_id")
	userID := c.QueryParam("user_id")
	ctx := c.Request().Context()

	switch {
	case groupID != "" && userID == "":
		rows, err := h.uc.ListByGroup(ctx, groupID)
		if err != nil {
			return failDomain(c, err)
		}
		return ok(c, http.StatusOK, rows)
	case userID != "" && groupID == "":
		rows, err := h.uc.ListByUser(ctx, userID)
		if err != nil {
			return failDomain(c, err)
		}
		return ok(c, http.StatusOK, rows)
	default:
		return fail(c, http.StatusBadRequest, "provide exactly one of group_id or user_id")
	}
}
