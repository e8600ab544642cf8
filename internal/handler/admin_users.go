package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/parsab/complaint-desk/internal/model"
	"github.com/parsab/complaint-desk/internal/repository"
)

// AdminUserHandler implements the user directory, the staff approval gate
// and account deletion.
type AdminUserHandler struct {
	Users   userStore
	Revoked revoker
	Prod    bool
}

func NewAdminUserHandler(users userStore, revoked revoker, prod bool) *AdminUserHandler {
	return &AdminUserHandler{Users: users, Revoked: revoked, Prod: prod}
}

// List handles GET /api/admin/users with optional search and role filters.
func (h *AdminUserHandler) List(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	rows, err := h.Users.List(ctx,
		strings.TrimSpace(c.QueryParam("search")),
		strings.TrimSpace(c.QueryParam("role")))
	if err != nil {
		return fail(c, http.StatusInternalServerError, "Server error", err, h.Prod)
	}
	return c.JSON(http.StatusOK, rows)
}

// UpdateStaffStatus handles PATCH /api/admin/users/:id/status, moving a
// staff account between Pending, Authorized and Rejected. The change gates
// the next login; a rejection additionally recalls tokens the account
// already holds via the revocation list.
func (h *AdminUserHandler) UpdateStaffStatus(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "Invalid user id", nil, h.Prod)
	}
	var req statusReq
	if err := c.Bind(&req); err != nil || !model.ValidStaffStatus(req.Status) {
		return fail(c, http.StatusBadRequest, "Invalid or missing status", nil, h.Prod)
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Users.UpdateStaffStatus(ctx, id, req.Status); err != nil {
		if err == repository.ErrNotFound {
			return fail(c, http.StatusNotFound, "Staff not found", nil, h.Prod)
		}
		return fail(c, http.StatusInternalServerError, "Error updating status", err, h.Prod)
	}
	if req.Status == model.StaffRejected {
		// Best effort: without Redis the rejection still takes effect on
		// the next login once the current access token expires.
		_ = h.Revoked.Revoke(ctx, id)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Status updated", "id": id, "status": req.Status})
}

// Delete handles DELETE /api/admin/users/:id — a hard delete that cascades
// to the account's complaints and comments, then recalls its outstanding
// tokens.
func (h *AdminUserHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "Invalid user id", nil, h.Prod)
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Users.Delete(ctx, id); err != nil {
		if err == repository.ErrNotFound {
			return fail(c, http.StatusNotFound, "User not found", nil, h.Prod)
		}
		return fail(c, http.StatusInternalServerError, "Error deleting user", err, h.Prod)
	}
	_ = h.Revoked.Revoke(ctx, id)
	return c.JSON(http.StatusOK, echo.Map{"message": "User deleted", "id": id})
}
