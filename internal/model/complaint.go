package model

import "time"

// Complaint statuses. A complaint starts Unsolved; Pending marks work in
// progress; Solved and Rejected are terminal. Both the staff and admin
// status-update operations accept exactly this set, and re-applying the
// current status is allowed (the update is idempotent).
const (
	StatusUnsolved = "Unsolved"
	StatusPending  = "Pending"
	StatusSolved   = "Solved"
	StatusRejected = "Rejected"
)

// ValidComplaintStatus reports whether s belongs to the canonical status set.
func ValidComplaintStatus(s string) bool {
	switch s {
	case StatusUnsolved, StatusPending, StatusSolved, StatusRejected:
		return true
	}
	return false
}

// Complaint represents a row of the `complaints` table.
//
// Fields:
//  ID          – primary key identifier.
//  UserID      – owner who filed the complaint.
//  Subject     – short summary line.
//  Type        – category (e.g. Facilities, Academics).
//  Description – free-text body.
//  Attachment  – stored filename of an optional upload, empty when absent.
//  Status      – one of the canonical statuses above.
//  AssignedTo  – staff user id the complaint is assigned to, nil when
//                unassigned.
//  CreatedAt   – timestamp of creation.
//  UpdatedAt   – timestamp of the last status/assignment change.
type Complaint struct {
	ID          uint64
	UserID      uint64
	Subject     string
	Type        string
	Description string
	Attachment  string
	Status      string
	AssignedTo  *uint64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
