package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/parsab/complaint-desk/internal/model"
)

// ComplaintRepo persists complaints and drives their status lifecycle.
type ComplaintRepo struct{ DB *sql.DB }

func NewComplaintRepo(db *sql.DB) *ComplaintRepo { return &ComplaintRepo{DB: db} }

// Create inserts a complaint owned by userID with the initial Unsolved
// status and no assignee, and returns the new id. attachment is the stored
// filename, empty when the caller uploaded nothing.
func (r *ComplaintRepo) Create(ctx context.Context, userID uint64, subject, ctype, description, attachment string) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO complaints (user_id, subject, type, description, attachment, status)
		 VALUES (?,?,?,?,?,?)`,
		userID, subject, ctype, description, attachment, model.StatusUnsolved)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// ListByOwner returns the caller's complaints with the given status,
// newest first.
func (r *ComplaintRepo) ListByOwner(ctx context.Context, userID uint64, status string) ([]model.Complaint, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, user_id, subject, type, description, COALESCE(attachment,''),
		        status, assigned_to, created_at, updated_at
		 FROM complaints WHERE user_id=? AND status=? ORDER BY created_at DESC`,
		userID, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Complaint{}
	for rows.Next() {
		var c model.Complaint
		var assigned sql.NullInt64
		if err := rows.Scan(&c.ID, &c.UserID, &c.Subject, &c.Type, &c.Description,
			&c.Attachment, &c.Status, &assigned, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		if assigned.Valid {
			v := uint64(assigned.Int64)
			c.AssignedTo = &v
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Overview is a complaint joined with the name of the user who filed it,
// as shown in the staff and admin listing tables.
type Overview struct {
	ID         uint64    `json:"id"`
	User       string    `json:"user"`
	UserRole   string    `json:"role,omitempty"`
	Subject    string    `json:"subject"`
	Type       string    `json:"type"`
	Desc       string    `json:"description"`
	Status     string    `json:"status"`
	AssignedTo string    `json:"assignedTo,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Filter narrows administrative complaint listings. Zero values mean "no
// constraint". Search matches against the filer's name, the subject, the
// complaint type and (for the admin view) the numeric id.
type Filter struct {
	Search string
	Role   string
	Type   string
	Status string
}

// ListAll returns complaints matching the filter joined with filer and
// assignee names, newest first. It serves both the staff listing (search +
// type) and the admin listing (all four filter fields).
func (r *ComplaintRepo) ListAll(ctx context.Context, f Filter) ([]Overview, error) {
	q := `SELECT c.id, CONCAT(u.first_name,' ',u.last_name), r.name,
	             c.subject, c.type, c.description, c.status,
	             COALESCE(CONCAT(a.first_name,' ',a.last_name),''),
	             c.created_at, c.updated_at
	      FROM complaints c
	      JOIN users u ON c.user_id=u.id
	      JOIN roles r ON u.role_id=r.id
	      LEFT JOIN users a ON c.assigned_to=a.id
	      WHERE 1=1`
	args := []interface{}{}
	if f.Search != "" {
		q += " AND (u.first_name LIKE ? OR u.last_name LIKE ? OR c.subject LIKE ? OR c.type LIKE ? OR c.id LIKE ?)"
		p := "%" + f.Search + "%"
		args = append(args, p, p, p, p, p)
	}
	if f.Role != "" {
		q += " AND LOWER(r.name)=?"
		args = append(args, strings.ToLower(f.Role))
	}
	if f.Type != "" {
		q += " AND c.type=?"
		args = append(args, f.Type)
	}
	if f.Status != "" {
		q += " AND c.status=?"
		args = append(args, f.Status)
	}
	q += " ORDER BY c.created_at DESC"

	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Overview{}
	for rows.Next() {
		var o Overview
		if err := rows.Scan(&o.ID, &o.User, &o.UserRole, &o.Subject, &o.Type,
			&o.Desc, &o.Status, &o.AssignedTo, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// ListSolved returns every solved complaint with filer names, ordered by
// resolution time (updated_at) descending.
func (r *ComplaintRepo) ListSolved(ctx context.Context) ([]Overview, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT c.id, CONCAT(u.first_name,' ',u.last_name), r.name,
		        c.subject, c.type, c.description, c.status,
		        COALESCE(CONCAT(a.first_name,' ',a.last_name),''),
		        c.created_at, c.updated_at
		 FROM complaints c
		 JOIN users u ON c.user_id=u.id
		 JOIN roles r ON u.role_id=r.id
		 LEFT JOIN users a ON c.assigned_to=a.id
		 WHERE c.status=?
		 ORDER BY c.updated_at DESC`, model.StatusSolved)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Overview{}
	for rows.Next() {
		var o Overview
		if err := rows.Scan(&o.ID, &o.User, &o.UserRole, &o.Subject, &o.Type,
			&o.Desc, &o.Status, &o.AssignedTo, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// Recent returns the newest complaints up to limit, for the admin
// dashboard table.
func (r *ComplaintRepo) Recent(ctx context.Context, limit int) ([]Overview, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT c.id, CONCAT(u.first_name,' ',u.last_name), r.name,
		        c.subject, c.type, c.description, c.status,
		        COALESCE(CONCAT(a.first_name,' ',a.last_name),''),
		        c.created_at, c.updated_at
		 FROM complaints c
		 JOIN users u ON c.user_id=u.id
		 JOIN roles r ON u.role_id=r.id
		 LEFT JOIN users a ON c.assigned_to=a.id
		 ORDER BY c.created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Overview{}
	for rows.Next() {
		var o Overview
		if err := rows.Scan(&o.ID, &o.User, &o.UserRole, &o.Subject, &o.Type,
			&o.Desc, &o.Status, &o.AssignedTo, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// Detail is the full admin view of one complaint including its comment
// trail.
type Detail struct {
	Overview
	Comments []CommentView `json:"comments"`
}

// Get returns the detail view for one complaint, or ErrNotFound.
func (r *ComplaintRepo) Get(ctx context.Context, id uint64) (Detail, error) {
	var d Detail
	err := r.DB.QueryRowContext(ctx,
		`SELECT c.id, CONCAT(u.first_name,' ',u.last_name), r.name,
		        c.subject, c.type, c.description, c.status,
		        COALESCE(CONCAT(a.first_name,' ',a.last_name),''),
		        c.created_at, c.updated_at
		 FROM complaints c
		 JOIN users u ON c.user_id=u.id
		 JOIN roles r ON u.role_id=r.id
		 LEFT JOIN users a ON c.assigned_to=a.id
		 WHERE c.id=? LIMIT 1`, id).
		Scan(&d.ID, &d.User, &d.UserRole, &d.Subject, &d.Type, &d.Desc,
			&d.Status, &d.AssignedTo, &d.CreatedAt, &d.UpdatedAt)
	if err == sql.ErrNoRows {
		return d, ErrNotFound
	}
	if err != nil {
		return d, err
	}

	comments, err := listComments(ctx, r.DB, id)
	if err != nil {
		return d, err
	}
	d.Comments = comments
	return d, nil
}

// UpdateStatus sets a new status and refreshes updated_at. The caller has
// already validated the status against the canonical set. Re-applying the
// current status is not an error; only a genuinely missing row yields
// ErrNotFound.
func (r *ComplaintRepo) UpdateStatus(ctx context.Context, id uint64, status string) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE complaints SET status=?, updated_at=NOW() WHERE id=?", status, id)
	if err != nil {
		return err
	}
	return r.checkAffected(ctx, res, id)
}

// Assign points a complaint at a staff account and refreshes updated_at.
// The staff id is taken at face value here; callers populate the picker
// from AuthorizedStaff but nothing re-checks the referenced account at
// write time (inherited from the original design, see DESIGN.md).
func (r *ComplaintRepo) Assign(ctx context.Context, id, staffID uint64) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE complaints SET assigned_to=?, updated_at=NOW() WHERE id=?", staffID, id)
	if err != nil {
		return err
	}
	return r.checkAffected(ctx, res, id)
}

// Delete removes a complaint and its comments in one transaction, so a
// crash can never leave orphaned comment rows behind.
func (r *ComplaintRepo) Delete(ctx context.Context, id uint64) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM admin_comments WHERE complaint_id=?", id); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, "DELETE FROM complaints WHERE id=?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return tx.Commit()
}

// checkAffected distinguishes "row missing" from "update changed nothing";
// MySQL reports zero affected rows for both.
func (r *ComplaintRepo) checkAffected(ctx context.Context, res sql.Result, id uint64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	var one int
	err = r.DB.QueryRowContext(ctx, "SELECT 1 FROM complaints WHERE id=? LIMIT 1", id).Scan(&one)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	return err
}
