package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/parsab/complaint-desk/internal/model"
	"github.com/parsab/complaint-desk/internal/repository"
)

// AdminComplaintHandler implements complaint oversight: listing with full
// filters, detail with the comment trail, status changes, assignment,
// commenting and deletion.
type AdminComplaintHandler struct {
	Complaints complaintStore
	Comments   commentStore
	Users      userStore
	Prod       bool
}

func NewAdminComplaintHandler(complaints complaintStore, comments commentStore, users userStore, prod bool) *AdminComplaintHandler {
	return &AdminComplaintHandler{Complaints: complaints, Comments: comments, Users: users, Prod: prod}
}

// List handles GET /api/admin/complaints with search/role/type/status
// query filters.
func (h *AdminComplaintHandler) List(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	rows, err := h.Complaints.ListAll(ctx, repository.Filter{
		Search: strings.TrimSpace(c.QueryParam("search")),
		Role:   strings.TrimSpace(c.QueryParam("role")),
		Type:   strings.TrimSpace(c.QueryParam("type")),
		Status: strings.TrimSpace(c.QueryParam("status")),
	})
	if err != nil {
		return fail(c, http.StatusInternalServerError, "Error fetching complaints", err, h.Prod)
	}
	return c.JSON(http.StatusOK, rows)
}

// Get handles GET /api/admin/complaints/:id — the full record plus its
// comment trail in creation order.
func (h *AdminComplaintHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "Invalid complaint id", nil, h.Prod)
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	d, err := h.Complaints.Get(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return fail(c, http.StatusNotFound, "Complaint not found", nil, h.Prod)
		}
		return fail(c, http.StatusInternalServerError, "Error fetching complaint", err, h.Prod)
	}
	return c.JSON(http.StatusOK, d)
}

// UpdateStatus handles PATCH /api/admin/complaints/:id/status. Admins use
// the same canonical status set as staff; the two operations accepting
// different vocabularies was an inconsistency, not a design.
func (h *AdminComplaintHandler) UpdateStatus(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "Invalid complaint id", nil, h.Prod)
	}
	var req statusReq
	if err := c.Bind(&req); err != nil || !model.ValidComplaintStatus(req.Status) {
		return fail(c, http.StatusBadRequest, "Invalid or missing status", nil, h.Prod)
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Complaints.UpdateStatus(ctx, id, req.Status); err != nil {
		if err == repository.ErrNotFound {
			return fail(c, http.StatusNotFound, "Complaint not found", nil, h.Prod)
		}
		return fail(c, http.StatusInternalServerError, "Error updating status", err, h.Prod)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Status updated", "id": id, "status": req.Status})
}

type assignReq struct {
	StaffID uint64 `json:"staff_id"`
}

// Assign handles PATCH /api/admin/complaints/:id/assign. The staff id
// comes from the authorized-staff picker but is not re-verified against
// the users table at write time.
func (h *AdminComplaintHandler) Assign(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "Invalid complaint id", nil, h.Prod)
	}
	var req assignReq
	if err := c.Bind(&req); err != nil || req.StaffID == 0 {
		return fail(c, http.StatusBadRequest, "Missing staff_id", nil, h.Prod)
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Complaints.Assign(ctx, id, req.StaffID); err != nil {
		if err == repository.ErrNotFound {
			return fail(c, http.StatusNotFound, "Complaint not found", nil, h.Prod)
		}
		return fail(c, http.StatusInternalServerError, "Error assigning complaint", err, h.Prod)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Assigned", "id": id, "staff_id": req.StaffID})
}

type commentReq struct {
	Comment string `json:"comment"`
}

// AddComment handles POST /api/admin/complaints/:id/comment, appending an
// immutable comment attributed to the calling admin. The response carries
// the refreshed comment trail so the detail view can redraw without a
// second request.
func (h *AdminComplaintHandler) AddComment(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "Invalid complaint id", nil, h.Prod)
	}
	adminID, ok := callerID(c)
	if !ok {
		return fail(c, http.StatusUnauthorized, "Unauthorized: Admin ID missing", nil, h.Prod)
	}
	var req commentReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.Comment) == "" {
		return fail(c, http.StatusBadRequest, "Empty comment", nil, h.Prod)
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if _, err := h.Comments.Add(ctx, id, adminID, strings.TrimSpace(req.Comment)); err != nil {
		if err == repository.ErrNotFound {
			return fail(c, http.StatusNotFound, "Complaint not found", nil, h.Prod)
		}
		return fail(c, http.StatusInternalServerError, "Error adding comment", err, h.Prod)
	}
	trail, err := h.Comments.ListByComplaint(ctx, id)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "Error fetching comments", err, h.Prod)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Comment added", "comments": trail})
}

// Delete handles DELETE /api/admin/complaints/:id — an unconditional hard
// delete; the comment trail goes with the complaint in one transaction.
func (h *AdminComplaintHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "Invalid complaint id", nil, h.Prod)
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Complaints.Delete(ctx, id); err != nil {
		if err == repository.ErrNotFound {
			return fail(c, http.StatusNotFound, "Complaint not found", nil, h.Prod)
		}
		return fail(c, http.StatusInternalServerError, "Error deleting complaint", err, h.Prod)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Complaint deleted", "id": id})
}

// AuthorizedStaff handles GET /api/admin/authorized-staff, the assignment
// dropdown source.
func (h *AdminComplaintHandler) AuthorizedStaff(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	staff, err := h.Users.AuthorizedStaff(ctx)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "Error fetching staff list", err, h.Prod)
	}
	return c.JSON(http.StatusOK, staff)
}
