package handler

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parsab/complaint-desk/internal/middleware"
	"github.com/parsab/complaint-desk/internal/model"
	"github.com/parsab/complaint-desk/internal/storage"
)

// multipartBody builds a complaint submission form, optionally with an
// attachment file.
func multipartBody(t *testing.T, fields map[string]string, filename, fileContent string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if filename != "" {
		fw, err := w.CreateFormFile("attachment", filename)
		require.NoError(t, err)
		_, err = io.WriteString(fw, fileContent)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func runCreate(t *testing.T, h *ComplaintHandler, uid interface{}, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/complaints", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if uid != nil {
		c.Set(middleware.CtxUserID, uid)
	}
	require.NoError(t, h.Create(c))
	return rec
}

func complaintFields() map[string]string {
	return map[string]string{
		"subject":     "Broken AC",
		"type":        "Facilities",
		"description": "unit not cooling",
	}
}

func TestCreateComplaintMissingFields(t *testing.T) {
	t.Parallel()

	store := newFakeComplaintStore()
	h := NewComplaintHandler(store, storage.NewUploadStore(t.TempDir()), false)

	for _, field := range []string{"subject", "type", "description"} {
		fields := complaintFields()
		fields[field] = "  "
		body, ct := multipartBody(t, fields, "", "")
		rec := runCreate(t, h, uint64(7), body, ct)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "missing %s", field)
	}
	assert.Nil(t, store.created)
}

func TestCreateComplaintOwnedByCaller(t *testing.T) {
	t.Parallel()

	store := newFakeComplaintStore()
	h := NewComplaintHandler(store, storage.NewUploadStore(t.TempDir()), false)

	body, ct := multipartBody(t, complaintFields(), "", "")
	rec := runCreate(t, h, uint64(7), body, ct)
	require.Equal(t, http.StatusCreated, rec.Code)

	require.NotNil(t, store.created)
	assert.Equal(t, uint64(7), store.created.userID)
	assert.Equal(t, "Broken AC", store.created.subject)
	assert.Equal(t, "Facilities", store.created.ctype)
	assert.Equal(t, "unit not cooling", store.created.description)
	assert.Empty(t, store.created.attachment)
}

func TestCreateComplaintSavesAttachment(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	store := newFakeComplaintStore()
	h := NewComplaintHandler(store, storage.NewUploadStore(dir), false)

	body, ct := multipartBody(t, complaintFields(), "photo.jpg", "jpeg-bytes")
	rec := runCreate(t, h, uint64(7), body, ct)
	require.Equal(t, http.StatusCreated, rec.Code)

	require.NotNil(t, store.created)
	assert.Equal(t, "photo.jpg", store.created.attachment)

	saved, err := os.ReadFile(filepath.Join(dir, "photo.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "jpeg-bytes", string(saved))
}

func TestCreateComplaintNoIdentity(t *testing.T) {
	t.Parallel()

	store := newFakeComplaintStore()
	h := NewComplaintHandler(store, storage.NewUploadStore(t.TempDir()), false)

	body, ct := multipartBody(t, complaintFields(), "", "")
	rec := runCreate(t, h, nil, body, ct)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestListOwnComplaints(t *testing.T) {
	t.Parallel()

	store := newFakeComplaintStore()
	store.byOwner = []model.Complaint{{
		ID:          3,
		UserID:      7,
		Subject:     "Broken AC",
		Type:        "Facilities",
		Description: "unit not cooling",
		Status:      model.StatusUnsolved,
		CreatedAt:   time.Now(),
	}}
	h := NewComplaintHandler(store, storage.NewUploadStore(t.TempDir()), false)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/complaints/unsolved", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.CtxUserID, uint64(7))

	require.NoError(t, h.Unsolved(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Broken AC")
	assert.Contains(t, rec.Body.String(), model.StatusUnsolved)
}
