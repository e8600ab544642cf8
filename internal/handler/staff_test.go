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

	"github.com/parsab/complaint-desk/internal/model"
	"github.com/parsab/complaint-desk/internal/repository"
)

// jsonWithID runs a handler against a JSON body with the :id path
// parameter set, which is how the lifecycle endpoints are routed.
func jsonWithID(t *testing.T, h echo.HandlerFunc, id string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(id)
	require.NoError(t, h(c))
	return rec
}

func TestStaffUpdateStatusValidation(t *testing.T) {
	t.Parallel()

	store := newFakeComplaintStore()
	h := NewStaffHandler(newFakeUserStore(), store, &fakeStatsStore{}, false)

	for _, status := range []string{"", "solved", "Closed", "Done"} {
		rec := jsonWithID(t, h.UpdateStatus, "4", map[string]string{"status": status})
		assert.Equal(t, http.StatusBadRequest, rec.Code, "status %q", status)
	}
	rec := jsonWithID(t, h.UpdateStatus, "abc", map[string]string{"status": model.StatusSolved})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	assert.Empty(t, store.statusCalls)
}

func TestStaffUpdateStatusApplied(t *testing.T) {
	t.Parallel()

	store := newFakeComplaintStore()
	h := NewStaffHandler(newFakeUserStore(), store, &fakeStatsStore{}, false)

	for _, status := range []string{
		model.StatusUnsolved, model.StatusPending, model.StatusSolved, model.StatusRejected,
	} {
		rec := jsonWithID(t, h.UpdateStatus, "4", map[string]string{"status": status})
		require.Equal(t, http.StatusOK, rec.Code, "status %q", status)
		assert.Equal(t, status, store.statusCalls[4])
	}
}

func TestStaffUpdateStatusUnknownComplaint(t *testing.T) {
	t.Parallel()

	store := newFakeComplaintStore()
	store.statusErr = repository.ErrNotFound
	h := NewStaffHandler(newFakeUserStore(), store, &fakeStatsStore{}, false)

	rec := jsonWithID(t, h.UpdateStatus, "99", map[string]string{"status": model.StatusSolved})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStaffListComplaintsFilters(t *testing.T) {
	t.Parallel()

	store := newFakeComplaintStore()
	h := NewStaffHandler(newFakeUserStore(), store, &fakeStatsStore{}, false)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/staff/complaints?search=hostel&type=Facilities", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, h.ListComplaints(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "hostel", store.lastFilter.Search)
	assert.Equal(t, "Facilities", store.lastFilter.Type)
	assert.Empty(t, store.lastFilter.Status)
}

func TestStaffProfile(t *testing.T) {
	t.Parallel()

	users := newFakeUserStore()
	users.usersByID[5] = model.User{ID: 5, FirstName: "Grace", LastName: "Hopper"}
	h := NewStaffHandler(users, newFakeComplaintStore(), &fakeStatsStore{}, false)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/staff/profile", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", uint64(5))
	require.NoError(t, h.Profile(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Grace Hopper", decodeBody(t, rec)["name"])
}
