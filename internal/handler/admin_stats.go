package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// AdminStatsHandler serves the dashboard cards and the reporting
// endpoints. Everything here is read-only aggregation.
type AdminStatsHandler struct {
	Stats      statsStore
	Complaints complaintStore
	Prod       bool
}

func NewAdminStatsHandler(stats statsStore, complaints complaintStore, prod bool) *AdminStatsHandler {
	return &AdminStatsHandler{Stats: stats, Complaints: complaints, Prod: prod}
}

// Dashboard handles GET /api/admin/dashboard-stats.
func (h *AdminStatsHandler) Dashboard(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	d, err := h.Stats.Dashboard(ctx)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "Error fetching dashboard stats", err, h.Prod)
	}
	return c.JSON(http.StatusOK, d)
}

// RecentComplaints handles GET /api/admin/recent-complaints — the ten
// newest complaints for the dashboard table.
func (h *AdminStatsHandler) RecentComplaints(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	rows, err := h.Complaints.Recent(ctx, 10)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "Error fetching recent complaints", err, h.Prod)
	}
	return c.JSON(http.StatusOK, rows)
}

// Statistics handles GET /api/admin/statistics — the full report payload.
func (h *AdminStatsHandler) Statistics(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	rep, err := h.Stats.Statistics(ctx)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "Error fetching statistics", err, h.Prod)
	}
	return c.JSON(http.StatusOK, rep)
}

// LongestOpen handles GET /api/admin/statistics/longest-open with optional
// search, status and role filters.
func (h *AdminStatsHandler) LongestOpen(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	rows, err := h.Stats.LongestOpen(ctx,
		strings.TrimSpace(c.QueryParam("search")),
		strings.TrimSpace(c.QueryParam("status")),
		strings.TrimSpace(c.QueryParam("role")))
	if err != nil {
		return fail(c, http.StatusInternalServerError, "Error fetching longest open complaints", err, h.Prod)
	}
	return c.JSON(http.StatusOK, rows)
}

// RecentlyClosed handles GET /api/admin/statistics/recently-closed.
func (h *AdminStatsHandler) RecentlyClosed(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	rows, err := h.Stats.RecentlyClosed(ctx)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "Error fetching closed complaints", err, h.Prod)
	}
	return c.JSON(http.StatusOK, rows)
}

// StaffAssignment handles GET /api/admin/statistics/staff-assignment.
func (h *AdminStatsHandler) StaffAssignment(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	rows, err := h.Stats.StaffAssignment(ctx)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "Error fetching staff assignment stats", err, h.Prod)
	}
	return c.JSON(http.StatusOK, rows)
}
