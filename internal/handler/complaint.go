package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/parsab/complaint-desk/internal/model"
	"github.com/parsab/complaint-desk/internal/storage"
)

// ComplaintHandler implements the end-user complaint endpoints: filing a
// complaint (multipart, optional attachment) and listing one's own
// complaints by status.
type ComplaintHandler struct {
	Complaints complaintStore
	Uploads    *storage.UploadStore
	Prod       bool
}

func NewComplaintHandler(complaints complaintStore, uploads *storage.UploadStore, prod bool) *ComplaintHandler {
	return &ComplaintHandler{Complaints: complaints, Uploads: uploads, Prod: prod}
}

// ownComplaint is the JSON shape of a complaint in the owner's lists.
type ownComplaint struct {
	ID          uint64    `json:"id"`
	Subject     string    `json:"subject"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	Attachment  string    `json:"attachment,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// Create handles POST /api/complaints. Fields arrive as multipart form
// data; the optional attachment file is stored on disk first and the row
// references it by name. The file write and the insert are separate steps,
// so a crash in between can leave a file without a row — the attachment is
// written first so the row never points at bytes that were not saved.
func (h *ComplaintHandler) Create(c echo.Context) error {
	uid, ok := callerID(c)
	if !ok {
		return fail(c, http.StatusUnauthorized, "Unauthorized", nil, h.Prod)
	}

	subject := strings.TrimSpace(c.FormValue("subject"))
	ctype := strings.TrimSpace(c.FormValue("type"))
	description := strings.TrimSpace(c.FormValue("description"))
	if subject == "" || ctype == "" || description == "" {
		return fail(c, http.StatusBadRequest, "Subject, type, and description are required", nil, h.Prod)
	}

	attachment := ""
	if fh, err := c.FormFile("attachment"); err == nil && fh != nil && fh.Filename != "" {
		src, err := fh.Open()
		if err != nil {
			return fail(c, http.StatusInternalServerError, "Could not read attachment", err, h.Prod)
		}
		defer src.Close()
		attachment, err = h.Uploads.Save(fh.Filename, src)
		if err != nil {
			return fail(c, http.StatusInternalServerError, "Could not save attachment", err, h.Prod)
		}
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	id, err := h.Complaints.Create(ctx, uid, subject, ctype, description, attachment)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "Could not submit complaint", err, h.Prod)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Complaint submitted successfully!",
		"id":      id,
	})
}

// Unsolved handles GET /api/complaints/unsolved: the caller's open
// complaints, newest first.
func (h *ComplaintHandler) Unsolved(c echo.Context) error {
	return h.listByStatus(c, model.StatusUnsolved)
}

// Solved handles GET /api/complaints/solved: the caller's resolved
// complaints, newest first.
func (h *ComplaintHandler) Solved(c echo.Context) error {
	return h.listByStatus(c, model.StatusSolved)
}

func (h *ComplaintHandler) listByStatus(c echo.Context, status string) error {
	uid, ok := callerID(c)
	if !ok {
		return fail(c, http.StatusUnauthorized, "Unauthorized", nil, h.Prod)
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	rows, err := h.Complaints.ListByOwner(ctx, uid, status)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "Unable to fetch complaints", err, h.Prod)
	}

	out := make([]ownComplaint, 0, len(rows))
	for _, r := range rows {
		out = append(out, ownComplaint{
			ID:          r.ID,
			Subject:     r.Subject,
			Type:        r.Type,
			Description: r.Description,
			Attachment:  r.Attachment,
			Status:      r.Status,
			CreatedAt:   r.CreatedAt,
		})
	}
	return c.JSON(http.StatusOK, out)
}
