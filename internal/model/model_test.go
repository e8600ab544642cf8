package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidComplaintStatus(t *testing.T) {
	t.Parallel()

	for _, s := range []string{StatusUnsolved, StatusPending, StatusSolved, StatusRejected} {
		assert.True(t, ValidComplaintStatus(s), s)
	}
	for _, s := range []string{"", "unsolved", "SOLVED", "Closed", "In Progress"} {
		assert.False(t, ValidComplaintStatus(s), s)
	}
}

func TestValidStaffStatus(t *testing.T) {
	t.Parallel()

	for _, s := range []string{StaffPending, StaffAuthorized, StaffRejected} {
		assert.True(t, ValidStaffStatus(s), s)
	}
	for _, s := range []string{"", "pending", "Approved"} {
		assert.False(t, ValidStaffStatus(s), s)
	}
}

func TestFullName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Ada Lovelace", User{FirstName: "Ada", LastName: "Lovelace"}.FullName())
	assert.Equal(t, "Ada", User{FirstName: "Ada"}.FullName())
	assert.Equal(t, "Lovelace", User{LastName: "Lovelace"}.FullName())
	assert.Equal(t, "", User{}.FullName())
}
