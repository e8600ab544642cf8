package model

import "time"

// Role names as stored in the `roles` table. Roles are matched
// case-insensitively on input and stored normalized to these values.
const (
	RoleUser  = "user"
	RoleStaff = "staff"
	RoleAdmin = "admin"
)

// Staff approval statuses as stored in users.staff_status. A staff account
// whose status is not Authorized cannot obtain a session token; the value
// is meaningless for user and admin accounts.
const (
	StaffPending    = "Pending"
	StaffAuthorized = "Authorized"
	StaffRejected   = "Rejected"
)

// ValidStaffStatus reports whether s is one of the three approval states.
func ValidStaffStatus(s string) bool {
	return s == StaffPending || s == StaffAuthorized || s == StaffRejected
}

// User represents a row of the `users` table joined with its role name.
// PasswordHash holds the bcrypt digest and must never be serialized into a
// response; handlers build separate response types.
//
// Fields:
//  ID          – primary key identifier of the user.
//  FirstName   – given name.
//  LastName    – family name.
//  Email       – unique email address.
//  PasswordHash– bcrypt hashed password.
//  Role        – role name from the roles table (user, staff, admin).
//  StaffStatus – approval gate for staff accounts (Pending/Authorized/Rejected).
//  RollNumber  – optional student roll number.
//  Branch      – optional department/branch.
//  CreatedAt   – timestamp of creation.
//  UpdatedAt   – timestamp of last update.
type User struct {
	ID           uint64
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
	Role         string
	StaffStatus  string
	RollNumber   string
	Branch       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// FullName joins first and last name the way list endpoints display users.
func (u User) FullName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// Role represents a row in the `roles` table mapping a small integer ID to
// a role name. Users reference it via users.role_id.
type RoleRow struct {
	ID   uint8
	Name string
}
