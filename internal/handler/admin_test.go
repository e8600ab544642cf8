package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parsab/complaint-desk/internal/middleware"
	"github.com/parsab/complaint-desk/internal/model"
	"github.com/parsab/complaint-desk/internal/repository"
)

func jsonBody(v interface{}) (*bytes.Reader, error) {
	b, err := json.Marshal(v)
	return bytes.NewReader(b), err
}

func newAdminComplaints(complaints *fakeComplaintStore, comments *fakeCommentStore) *AdminComplaintHandler {
	return NewAdminComplaintHandler(complaints, comments, newFakeUserStore(), false)
}

func TestAdminAssignComplaint(t *testing.T) {
	t.Parallel()

	store := newFakeComplaintStore()
	h := newAdminComplaints(store, &fakeCommentStore{})

	rec := jsonWithID(t, h.Assign, "12", map[string]uint64{"staff_id": 8})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, uint64(8), store.assignCalls[12])
}

func TestAdminAssignMissingStaffID(t *testing.T) {
	t.Parallel()

	store := newFakeComplaintStore()
	h := newAdminComplaints(store, &fakeCommentStore{})

	rec := jsonWithID(t, h.Assign, "12", map[string]uint64{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, store.assignCalls)
}

func TestAdminAssignUnknownComplaint(t *testing.T) {
	t.Parallel()

	store := newFakeComplaintStore()
	store.assignErr = repository.ErrNotFound
	h := newAdminComplaints(store, &fakeCommentStore{})

	rec := jsonWithID(t, h.Assign, "99", map[string]uint64{"staff_id": 8})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdminAddComment(t *testing.T) {
	t.Parallel()

	comments := &fakeCommentStore{}
	h := newAdminComplaints(newFakeComplaintStore(), comments)

	body, err := jsonBody(map[string]string{"comment": "  following up with maintenance  "})
	require.NoError(t, err)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("12")
	c.Set(middleware.CtxUserID, uint64(2))
	require.NoError(t, h.AddComment(c))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, comments.added, 1)
	assert.Equal(t, uint64(12), comments.added[0].complaintID)
	assert.Equal(t, uint64(2), comments.added[0].adminID)
	assert.Equal(t, "following up with maintenance", comments.added[0].text)

	// The response echoes the refreshed trail including the new comment.
	assert.Contains(t, rec.Body.String(), "following up with maintenance")
}

func TestAdminAddCommentBlank(t *testing.T) {
	t.Parallel()

	comments := &fakeCommentStore{}
	h := newAdminComplaints(newFakeComplaintStore(), comments)

	body, err := jsonBody(map[string]string{"comment": "   "})
	require.NoError(t, err)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("12")
	c.Set(middleware.CtxUserID, uint64(2))
	require.NoError(t, h.AddComment(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, comments.added)
}

func TestAdminDeleteComplaint(t *testing.T) {
	t.Parallel()

	store := newFakeComplaintStore()
	h := newAdminComplaints(store, &fakeCommentStore{})

	e := echo.New()
	req := httptest.NewRequest(http.MethodDelete, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("12")
	require.NoError(t, h.Delete(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []uint64{12}, store.deletedIDs)
}

func TestAdminStaffStatusRejectRevokesTokens(t *testing.T) {
	t.Parallel()

	users := newFakeUserStore()
	rv := &fakeRevoker{}
	h := NewAdminUserHandler(users, rv, false)

	rec := jsonWithID(t, h.UpdateStaffStatus, "6", map[string]string{"status": model.StaffRejected})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, model.StaffRejected, users.statusCalls[6])
	assert.Equal(t, []uint64{6}, rv.revoked)
}

func TestAdminStaffStatusApproveDoesNotRevoke(t *testing.T) {
	t.Parallel()

	users := newFakeUserStore()
	rv := &fakeRevoker{}
	h := NewAdminUserHandler(users, rv, false)

	rec := jsonWithID(t, h.UpdateStaffStatus, "6", map[string]string{"status": model.StaffAuthorized})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, model.StaffAuthorized, users.statusCalls[6])
	assert.Empty(t, rv.revoked)
}

func TestAdminStaffStatusInvalid(t *testing.T) {
	t.Parallel()

	users := newFakeUserStore()
	h := NewAdminUserHandler(users, &fakeRevoker{}, false)

	for _, status := range []string{"", "approved", "Banned"} {
		rec := jsonWithID(t, h.UpdateStaffStatus, "6", map[string]string{"status": status})
		assert.Equal(t, http.StatusBadRequest, rec.Code, "status %q", status)
	}
	assert.Empty(t, users.statusCalls)
}

func TestAdminDeleteUserRevokesTokens(t *testing.T) {
	t.Parallel()

	users := newFakeUserStore()
	rv := &fakeRevoker{}
	h := NewAdminUserHandler(users, rv, false)

	e := echo.New()
	req := httptest.NewRequest(http.MethodDelete, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("6")
	require.NoError(t, h.Delete(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []uint64{6}, users.deletedIDs)
	assert.Equal(t, []uint64{6}, rv.revoked)
}

func TestAdminDeleteUnknownUser(t *testing.T) {
	t.Parallel()

	users := newFakeUserStore()
	users.deleteErr = repository.ErrNotFound
	rv := &fakeRevoker{}
	h := NewAdminUserHandler(users, rv, false)

	e := echo.New()
	req := httptest.NewRequest(http.MethodDelete, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("99")
	require.NoError(t, h.Delete(c))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, rv.revoked)
}
