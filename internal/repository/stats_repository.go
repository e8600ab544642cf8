package repository

import (
	"context"
	"database/sql"
	"math"
	"strings"
	"time"

	"github.com/parsab/complaint-desk/internal/model"
)

// StatsRepo runs the aggregate queries behind the staff and admin
// dashboards. Everything here is read-only.
type StatsRepo struct{ DB *sql.DB }

func NewStatsRepo(db *sql.DB) *StatsRepo { return &StatsRepo{DB: db} }

// TypeBreakdown counts one complaint type by status.
type TypeBreakdown struct {
	Type     string `json:"type"`
	Unsolved int    `json:"unsolved"`
	Pending  int    `json:"pending"`
	Solved   int    `json:"solved"`
	Total    int    `json:"total"`
}

// StaffStats feeds the staff dashboard cards and chart.
type StaffStats struct {
	Total    int             `json:"total"`
	Unsolved int             `json:"unsolved"`
	Pending  int             `json:"pending"`
	Solved   int             `json:"solved"`
	ByType   []TypeBreakdown `json:"byType"`
}

// Staff aggregates complaint counts overall and per type.
func (r *StatsRepo) Staff(ctx context.Context) (StaffStats, error) {
	var s StaffStats
	err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*),
		        COALESCE(SUM(status=?),0),
		        COALESCE(SUM(status=?),0),
		        COALESCE(SUM(status=?),0)
		 FROM complaints`,
		model.StatusUnsolved, model.StatusPending, model.StatusSolved).
		Scan(&s.Total, &s.Unsolved, &s.Pending, &s.Solved)
	if err != nil {
		return StaffStats{}, err
	}

	rows, err := r.DB.QueryContext(ctx,
		`SELECT type,
		        COALESCE(SUM(status=?),0),
		        COALESCE(SUM(status=?),0),
		        COALESCE(SUM(status=?),0),
		        COUNT(*)
		 FROM complaints GROUP BY type`,
		model.StatusUnsolved, model.StatusPending, model.StatusSolved)
	if err != nil {
		return StaffStats{}, err
	}
	defer rows.Close()

	byType := []TypeBreakdown{}
	for rows.Next() {
		var t TypeBreakdown
		if err := rows.Scan(&t.Type, &t.Unsolved, &t.Pending, &t.Solved, &t.Total); err != nil {
			return StaffStats{}, err
		}
		byType = append(byType, t)
	}
	if err := rows.Err(); err != nil {
		return StaffStats{}, err
	}
	s.ByType = byType
	return s, nil
}

// DashboardStats feeds the four admin dashboard cards.
type DashboardStats struct {
	TotalUsers       int `json:"totalUsers"`
	TotalComplaints  int `json:"totalComplaints"`
	SolvedComplaints int `json:"solvedComplaints"`
	NewComplaints    int `json:"newComplaints"`
}

// Dashboard counts users, complaints, solved complaints and complaints
// filed today.
func (r *StatsRepo) Dashboard(ctx context.Context) (DashboardStats, error) {
	var d DashboardStats
	if err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&d.TotalUsers); err != nil {
		return d, err
	}
	err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*),
		        COALESCE(SUM(status=?),0),
		        COALESCE(SUM(DATE(created_at)=CURDATE()),0)
		 FROM complaints`, model.StatusSolved).
		Scan(&d.TotalComplaints, &d.SolvedComplaints, &d.NewComplaints)
	return d, err
}

// Report is the full statistics endpoint payload.
type Report struct {
	TotalComplaints   int         `json:"totalComplaints"`
	Unsolved          int         `json:"unsolved"`
	Pending           int         `json:"pending"`
	Solved            int         `json:"solved"`
	Rejected          int         `json:"rejected"`
	Unassigned        int         `json:"unassigned"`
	AvgResolutionDays float64     `json:"avgResolutionDays"`
	ByType            []TypeCount `json:"byType"`
	ByRole            []RoleCount `json:"byRole"`
}

// TypeCount counts complaints of one type.
type TypeCount struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

// RoleCount counts complaints filed by users of one role.
type RoleCount struct {
	Role  string `json:"role"`
	Count int    `json:"count"`
}

// Statistics aggregates the report endpoint: per-status and per-type
// counts, unassigned volume, average days to resolution, and filer role
// distribution.
func (r *StatsRepo) Statistics(ctx context.Context) (Report, error) {
	var rep Report
	var avg sql.NullFloat64
	err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*),
		        COALESCE(SUM(status=?),0),
		        COALESCE(SUM(status=?),0),
		        COALESCE(SUM(status=?),0),
		        COALESCE(SUM(status=?),0),
		        COALESCE(SUM(assigned_to IS NULL),0)
		 FROM complaints`,
		model.StatusUnsolved, model.StatusPending, model.StatusSolved, model.StatusRejected).
		Scan(&rep.TotalComplaints, &rep.Unsolved, &rep.Pending, &rep.Solved,
			&rep.Rejected, &rep.Unassigned)
	if err != nil {
		return rep, err
	}

	err = r.DB.QueryRowContext(ctx,
		"SELECT AVG(DATEDIFF(updated_at, created_at)) FROM complaints WHERE status=?",
		model.StatusSolved).Scan(&avg)
	if err != nil {
		return rep, err
	}
	if avg.Valid {
		rep.AvgResolutionDays = math.Round(avg.Float64*100) / 100
	}

	typeRows, err := r.DB.QueryContext(ctx,
		"SELECT type, COUNT(*) FROM complaints GROUP BY type")
	if err != nil {
		return rep, err
	}
	defer typeRows.Close()
	rep.ByType = []TypeCount{}
	for typeRows.Next() {
		var t TypeCount
		if err := typeRows.Scan(&t.Type, &t.Count); err != nil {
			return rep, err
		}
		rep.ByType = append(rep.ByType, t)
	}
	if err := typeRows.Err(); err != nil {
		return rep, err
	}

	roleRows, err := r.DB.QueryContext(ctx,
		`SELECT r.name, COUNT(*)
		 FROM complaints c
		 JOIN users u ON c.user_id=u.id
		 JOIN roles r ON u.role_id=r.id
		 GROUP BY r.name`)
	if err != nil {
		return rep, err
	}
	defer roleRows.Close()
	rep.ByRole = []RoleCount{}
	for roleRows.Next() {
		var rc RoleCount
		if err := roleRows.Scan(&rc.Role, &rc.Count); err != nil {
			return rep, err
		}
		rep.ByRole = append(rep.ByRole, rc)
	}
	return rep, roleRows.Err()
}

// OpenComplaint is one row of the longest-open report.
type OpenComplaint struct {
	Idx        int    `json:"idx"`
	Subject    string `json:"subject"`
	Status     string `json:"status"`
	User       string `json:"user"`
	Role       string `json:"role"`
	DaysOpen   int    `json:"daysOpen"`
	AssignedTo string `json:"assignedTo"`
}

// LongestOpen lists the oldest unresolved complaints (up to 15), optionally
// filtered by search term, status and filer role.
func (r *StatsRepo) LongestOpen(ctx context.Context, search, status, role string) ([]OpenComplaint, error) {
	q := `SELECT c.subject, c.status, CONCAT(u.first_name,' ',u.last_name), r.name,
	             c.created_at,
	             COALESCE(CONCAT(a.first_name,' ',a.last_name),'')
	      FROM complaints c
	      JOIN users u ON c.user_id=u.id
	      JOIN roles r ON u.role_id=r.id
	      LEFT JOIN users a ON c.assigned_to=a.id
	      WHERE c.status NOT IN (?,?)`
	args := []interface{}{model.StatusSolved, model.StatusRejected}
	if search != "" {
		q += " AND (c.subject LIKE ? OR u.first_name LIKE ? OR u.last_name LIKE ? OR c.id LIKE ?)"
		p := "%" + search + "%"
		args = append(args, p, p, p, p)
	}
	if status != "" {
		q += " AND c.status=?"
		args = append(args, status)
	}
	if role != "" {
		q += " AND LOWER(r.name)=?"
		args = append(args, strings.ToLower(role))
	}
	q += " ORDER BY c.created_at ASC LIMIT 15"

	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	now := time.Now()
	out := []OpenComplaint{}
	for rows.Next() {
		var o OpenComplaint
		var created time.Time
		if err := rows.Scan(&o.Subject, &o.Status, &o.User, &o.Role, &created, &o.AssignedTo); err != nil {
			return nil, err
		}
		o.Idx = len(out) + 1
		o.DaysOpen = int(math.Round(now.Sub(created).Hours() / 24))
		out = append(out, o)
	}
	return out, rows.Err()
}

// ClosedComplaint is one row of the recently-closed report.
type ClosedComplaint struct {
	Idx        int       `json:"idx"`
	Subject    string    `json:"subject"`
	User       string    `json:"user"`
	Role       string    `json:"role"`
	ClosedAt   time.Time `json:"closed"`
	AssignedTo string    `json:"assignedTo"`
}

// RecentlyClosed lists the 10 most recently solved complaints.
func (r *StatsRepo) RecentlyClosed(ctx context.Context) ([]ClosedComplaint, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT c.subject, CONCAT(u.first_name,' ',u.last_name), r.name, c.updated_at,
		        COALESCE(CONCAT(a.first_name,' ',a.last_name),'')
		 FROM complaints c
		 JOIN users u ON c.user_id=u.id
		 JOIN roles r ON u.role_id=r.id
		 LEFT JOIN users a ON c.assigned_to=a.id
		 WHERE c.status=?
		 ORDER BY c.updated_at DESC LIMIT 10`, model.StatusSolved)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []ClosedComplaint{}
	for rows.Next() {
		var cc ClosedComplaint
		if err := rows.Scan(&cc.Subject, &cc.User, &cc.Role, &cc.ClosedAt, &cc.AssignedTo); err != nil {
			return nil, err
		}
		cc.Idx = len(out) + 1
		out = append(out, cc)
	}
	return out, rows.Err()
}

// StaffLoad is one row of the staff assignment report.
type StaffLoad struct {
	Idx      int    `json:"idx"`
	Staff    string `json:"staff"`
	Assigned int    `json:"assigned"`
}

// StaffAssignment lists staff members (up to 20) by how many complaints are
// assigned to each, busiest first.
func (r *StatsRepo) StaffAssignment(ctx context.Context) ([]StaffLoad, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT CONCAT(u.first_name,' ',u.last_name) AS staff, COUNT(c.id)
		 FROM users u
		 JOIN roles r ON u.role_id=r.id
		 LEFT JOIN complaints c ON u.id=c.assigned_to
		 WHERE LOWER(r.name)=?
		 GROUP BY u.id
		 ORDER BY COUNT(c.id) DESC, staff ASC
		 LIMIT 20`, model.RoleStaff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []StaffLoad{}
	for rows.Next() {
		var sl StaffLoad
		if err := rows.Scan(&sl.Staff, &sl.Assigned); err != nil {
			return nil, err
		}
		sl.Idx = len(out) + 1
		out = append(out, sl)
	}
	return out, rows.Err()
}
