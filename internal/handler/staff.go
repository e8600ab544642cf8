package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/parsab/complaint-desk/internal/model"
	"github.com/parsab/complaint-desk/internal/repository"
)

// StaffHandler implements the staff-facing triage endpoints.
type StaffHandler struct {
	Users      userStore
	Complaints complaintStore
	Stats      statsStore
	Prod       bool
}

func NewStaffHandler(users userStore, complaints complaintStore, stats statsStore, prod bool) *StaffHandler {
	return &StaffHandler{Users: users, Complaints: complaints, Stats: stats, Prod: prod}
}

// Profile returns the staff member's display name for the sidebar.
func (h *StaffHandler) Profile(c echo.Context) error {
	uid, ok := callerID(c)
	if !ok {
		return fail(c, http.StatusUnauthorized, "Unauthorized", nil, h.Prod)
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	u, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		if err == repository.ErrNotFound {
			return fail(c, http.StatusNotFound, "Staff not found", nil, h.Prod)
		}
		return fail(c, http.StatusInternalServerError, "Error fetching staff profile", err, h.Prod)
	}
	return c.JSON(http.StatusOK, echo.Map{"name": u.FullName()})
}

// ComplaintStats returns the dashboard numbers and per-type chart data.
func (h *StaffHandler) ComplaintStats(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	stats, err := h.Stats.Staff(ctx)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "Error fetching statistics", err, h.Prod)
	}
	return c.JSON(http.StatusOK, stats)
}

// staffListItem mirrors the columns of the all-complaints triage table.
type staffListItem struct {
	ID      uint64    `json:"id"`
	User    string    `json:"user"`
	Subject string    `json:"subject"`
	Type    string    `json:"type"`
	Issued  time.Time `json:"issued"`
	Desc    string    `json:"desc"`
	Status  string    `json:"status"`
}

// ListComplaints returns every complaint, optionally narrowed by a search
// term (filer name, subject, type) and/or an exact type filter.
func (h *StaffHandler) ListComplaints(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	rows, err := h.Complaints.ListAll(ctx, repository.Filter{
		Search: strings.TrimSpace(c.QueryParam("search")),
		Type:   strings.TrimSpace(c.QueryParam("type")),
	})
	if err != nil {
		return fail(c, http.StatusInternalServerError, "Error fetching complaints", err, h.Prod)
	}

	out := make([]staffListItem, 0, len(rows))
	for _, r := range rows {
		out = append(out, staffListItem{
			ID:      r.ID,
			User:    r.User,
			Subject: r.Subject,
			Type:    r.Type,
			Issued:  r.CreatedAt,
			Desc:    r.Desc,
			Status:  r.Status,
		})
	}
	return c.JSON(http.StatusOK, out)
}

type statusReq struct {
	Status string `json:"status"`
}

// UpdateStatus moves a complaint to a new lifecycle status. The accepted
// set is the canonical four-state enum; re-applying the current status is
// allowed and succeeds.
func (h *StaffHandler) UpdateStatus(c echo.Context) error {
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

// solvedListItem mirrors the columns of the solved-complaints table.
type solvedListItem struct {
	ID          uint64    `json:"id"`
	User        string    `json:"user"`
	Subject     string    `json:"subject"`
	Type        string    `json:"type"`
	IssuedDate  time.Time `json:"issuedDate"`
	SolvedDate  time.Time `json:"solvedDate"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
}

// SolvedComplaints lists every solved complaint, most recently resolved
// first.
func (h *StaffHandler) SolvedComplaints(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	rows, err := h.Complaints.ListSolved(ctx)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "Error fetching solved complaints", err, h.Prod)
	}

	out := make([]solvedListItem, 0, len(rows))
	for _, r := range rows {
		out = append(out, solvedListItem{
			ID:          r.ID,
			User:        r.User,
			Subject:     r.Subject,
			Type:        r.Type,
			IssuedDate:  r.CreatedAt,
			SolvedDate:  r.UpdatedAt,
			Description: r.Desc,
			Status:      r.Status,
		})
	}
	return c.JSON(http.StatusOK, out)
}
