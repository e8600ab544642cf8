package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/parsab/complaint-desk/internal/model"
	"github.com/parsab/complaint-desk/internal/utils"
)

// UserRepo persists user accounts and their staff-approval state.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// NewUser carries the validated registration fields into Create.
type NewUser struct {
	FirstName  string
	LastName   string
	Email      string
	Password   string // plaintext, hashed inside Create
	Role       string // normalized lowercase role name
	RollNumber string
	Branch     string
}

// Create inserts a user and returns its ID. The role name is resolved
// against the roles table; an unknown role yields ErrInvalidRole. Staff
// accounts start with staff_status Pending, everyone else is Authorized
// from the start. The password is bcrypt-hashed before it touches the
// database.
func (r *UserRepo) Create(ctx context.Context, nu NewUser, cost int) (uint64, error) {
	email := strings.ToLower(strings.TrimSpace(nu.Email))

	role, err := r.roleByName(ctx, nu.Role)
	if err != nil {
		return 0, err
	}

	hash, err := utils.HashPassword(nu.Password, cost)
	if err != nil {
		return 0, err
	}

	status := model.StaffAuthorized
	if nu.Role == model.RoleStaff {
		status = model.StaffPending
	}

	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO users
		   (first_name, last_name, email, password_hash, role_id, staff_status, roll_number, branch)
		 VALUES (?,?,?,?,?,?,?,?)`,
		nu.FirstName, nu.LastName, email, hash, role.ID, status, nu.RollNumber, nu.Branch)
	if err != nil {
		// 1062 = duplicate key on the unique email index
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// roleByName resolves a normalized role name against the roles table. An
// unknown name yields ErrInvalidRole.
func (r *UserRepo) roleByName(ctx context.Context, name string) (model.RoleRow, error) {
	var role model.RoleRow
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, name FROM roles WHERE LOWER(name)=? LIMIT 1", name).
		Scan(&role.ID, &role.Name)
	if err == sql.ErrNoRows {
		return role, ErrInvalidRole
	}
	return role, err
}

const userColumns = `u.id, u.first_name, u.last_name, u.email, u.password_hash,
	r.name, u.staff_status, u.roll_number, u.branch, u.created_at, u.updated_at`

func scanUser(row *sql.Row) (model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.PasswordHash,
		&u.Role, &u.StaffStatus, &u.RollNumber, &u.Branch, &u.CreatedAt, &u.UpdatedAt)
	if err == sql.ErrNoRows {
		return u, ErrNotFound
	}
	return u, err
}

// GetByEmail fetches a user by normalized email, joined with its role name.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users u JOIN roles r ON u.role_id=r.id WHERE u.email=? LIMIT 1",
		email))
}

// GetByID fetches a user by id, joined with its role name.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	return scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users u JOIN roles r ON u.role_id=r.id WHERE u.id=? LIMIT 1",
		id))
}

// AccountRow is one line of the admin user directory. Status carries the
// staff approval state for staff accounts and "N/A" for everyone else.
type AccountRow struct {
	ID     uint64 `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Status string `json:"status"`
}

// List returns all accounts, optionally narrowed by a name/email search
// term and/or an exact role name.
func (r *UserRepo) List(ctx context.Context, search, role string) ([]AccountRow, error) {
	q := `SELECT u.id,
	             CONCAT(COALESCE(u.first_name,''),' ',COALESCE(u.last_name,'')),
	             u.email, r.name,
	             CASE WHEN LOWER(r.name)=? THEN COALESCE(u.staff_status,?) ELSE 'N/A' END
	      FROM users u JOIN roles r ON u.role_id=r.id WHERE 1=1`
	args := []interface{}{model.RoleStaff, model.StaffPending}
	if search != "" {
		q += " AND (u.first_name LIKE ? OR u.last_name LIKE ? OR u.email LIKE ?)"
		p := "%" + search + "%"
		args = append(args, p, p, p)
	}
	if role != "" {
		q += " AND LOWER(r.name)=?"
		args = append(args, strings.ToLower(role))
	}
	q += " ORDER BY u.id ASC"

	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []AccountRow{}
	for rows.Next() {
		var a AccountRow
		if err := rows.Scan(&a.ID, &a.Name, &a.Email, &a.Role, &a.Status); err != nil {
			return nil, err
		}
		a.Name = strings.TrimSpace(a.Name)
		out = append(out, a)
	}
	return out, rows.Err()
}

// UpdateStaffStatus persists a new approval state for the target account.
// The caller validates the status value; this method only reports
// ErrNotFound when no row matches the id. The change gates the next login
// attempt; tokens already issued stay valid until the revocation list or
// natural expiry catches them.
func (r *UserRepo) UpdateStaffStatus(ctx context.Context, id uint64, status string) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE users SET staff_status=? WHERE id=?", status, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// MySQL reports zero affected rows both for a missing row and for
		// an update that changed nothing; only the former is an error.
		return r.exists(ctx, id)
	}
	return nil
}

func (r *UserRepo) exists(ctx context.Context, id uint64) error {
	var one int
	err := r.DB.QueryRowContext(ctx, "SELECT 1 FROM users WHERE id=? LIMIT 1", id).Scan(&one)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	return err
}

// Delete hard-deletes an account inside one transaction. Complaints the
// user filed are removed along with their admin comments, comments the
// user authored as an admin are removed, and assignments pointing at the
// user are cleared. Returns ErrNotFound when the account does not exist.
func (r *UserRepo) Delete(ctx context.Context, id uint64) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE ac FROM admin_comments ac
		   JOIN complaints c ON ac.complaint_id=c.id
		  WHERE c.user_id=?`, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		"DELETE FROM admin_comments WHERE admin_id=?", id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		"DELETE FROM complaints WHERE user_id=?", id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		"UPDATE complaints SET assigned_to=NULL WHERE assigned_to=?", id); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, "DELETE FROM users WHERE id=?", id)
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

// StaffOption is a dropdown entry for the assignment picker.
type StaffOption struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// AuthorizedStaff lists staff accounts cleared to receive assignments.
func (r *UserRepo) AuthorizedStaff(ctx context.Context) ([]StaffOption, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT u.id, CONCAT(u.first_name,' ',u.last_name)
		 FROM users u JOIN roles r ON u.role_id=r.id
		 WHERE LOWER(r.name)=? AND u.staff_status=?
		 ORDER BY u.first_name`, model.RoleStaff, model.StaffAuthorized)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []StaffOption{}
	for rows.Next() {
		var s StaffOption
		if err := rows.Scan(&s.ID, &s.Name); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
