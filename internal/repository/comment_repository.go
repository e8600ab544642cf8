package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"
)

// CommentRepo persists the append-only admin comment trail. Comments are
// never updated or deleted individually; they disappear only when their
// parent complaint is removed.
type CommentRepo struct{ DB *sql.DB }

func NewCommentRepo(db *sql.DB) *CommentRepo { return &CommentRepo{DB: db} }

// CommentView is a comment joined with its author's name, ordered oldest
// first in the complaint detail view.
type CommentView struct {
	ID        uint64    `json:"id"`
	Author    string    `json:"user"`
	Comment   string    `json:"msg"`
	CreatedAt time.Time `json:"date"`
}

// Add appends a comment by adminID to the given complaint. A foreign key
// failure on the complaint id surfaces as ErrNotFound so handlers can
// answer 404 instead of 500.
func (r *CommentRepo) Add(ctx context.Context, complaintID, adminID uint64, text string) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO admin_comments (complaint_id, admin_id, comment) VALUES (?,?,?)",
		complaintID, adminID, text)
	if err != nil {
		// 1452 = foreign key constraint fails (no such complaint)
		if strings.Contains(err.Error(), "1452") {
			return 0, ErrNotFound
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// ListByComplaint returns the comment trail of one complaint in creation
// order.
func (r *CommentRepo) ListByComplaint(ctx context.Context, complaintID uint64) ([]CommentView, error) {
	return listComments(ctx, r.DB, complaintID)
}

// listComments is shared with ComplaintRepo.Get, which embeds the trail in
// the complaint detail response.
func listComments(ctx context.Context, db *sql.DB, complaintID uint64) ([]CommentView, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT ac.id, CONCAT(a.first_name,' ',a.last_name), ac.comment, ac.created_at
		 FROM admin_comments ac
		 JOIN users a ON ac.admin_id=a.id
		 WHERE ac.complaint_id=?
		 ORDER BY ac.created_at ASC`, complaintID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []CommentView{}
	for rows.Next() {
		var cv CommentView
		if err := rows.Scan(&cv.ID, &cv.Author, &cv.Comment, &cv.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, cv)
	}
	return out, rows.Err()
}
