package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	groupUC "vsla-backend/internal/usecase/group"
	membershipUC "vsla-backend/internal/usecase/membership"
)

type GroupHandler struct {
	groups      *groupUC.Usecase
	memberships *membershipUC.Usecase
}

func NewGroupHandler(groups *groupUC.Usecase, memberships *membershipUC.Usecase) *GroupHandler {
	return &GroupHandler{groups: groups, memberships: memberships}
}

func (h *GroupHandler) CreateGroup(c echo.Context) error {
	var req groupUC.CreateGroupInput
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}
	dto, err := h.groups.Create(c.Request().Context(), req)
	if err != nil {
		return failDomain(c, err)
	}
	return ok(c, http.StatusCreated, dto)
}

func (h *GroupHandler) ListGroups(c echo.Context) error {
	rows, err := h.groups.List(c.Request().Context())
	if err != nil {
		return failDomain(c, err)
	}
	return ok(c, http.StatusOK, rows)
}

func (h *GroupHandler) GetGroup(c echo.Context) error {
	dto, err := h.groups.Get(c.Request().Context(), c.Param("group_id"))
	if err != nil {
		return failDomain(c, err)
	}
	return ok(c, http.StatusOK, dto)
}

func (h *GroupHandler) UpdateGroup(c echo.Context) error {
	var req groupUC.UpdateGroupInput
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}
	dto, err := h.groups.Update(c.Request().Context(), c.Param("group_id"), req)
	if err != nil {
		return failDomain(c, err)
	}
	return ok(c, http.StatusOK, dto)
}

func (h *GroupHandler) ArchiveGroup(c echo.Context) error {
	dto, err := h.groups.Archive(c.Request().Context(), c.Param("group_id"))
	if err != nil {
		return failDomain(c, err)
	}
	return ok(c, http.StatusOK, dto)
}

func (h *GroupHandler) ListMembers(c echo.Context) error {
	rows, err := h.memberships.Members(c.Request().Context(), c.Param("group_id"))
	if err != nil {
		return failDomain(c, err)
	}
	return ok(c, http.StatusOK, rows)
}

func (h *GroupHandler) AddMember(c echo.Context) error {
	var req membershipUC.JoinInput
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}
	dto, err := h.memberships.Join(c.Request().Context(), c.Param("group_id"), req)
	if err != nil {
		return failDomain(c, err)
	}
	return ok(c, http.StatusCreated, dto)
}

func (h *GroupHandler) RemoveMember(c echo.Context) error {
	dto, err := h.memberships.Leave(c.Request().Context(), c.Param("user_id"), c.Param("group_id"))
	if err != nil {
		return failDomain(c, err)
	}
	return ok(c, http.StatusOK, dto)
}
