package handler // handler implements the HTTP route handlers

import (
	"context"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/parsab/complaint-desk/internal/middleware"
	"github.com/parsab/complaint-desk/internal/model"
	"github.com/parsab/complaint-desk/internal/repository"
)

// dbTimeout bounds every database call made from a handler so a stalled
// connection cannot pin a worker for the life of the request.
const dbTimeout = 5 * time.Second

// userStore is the slice of UserRepo the handlers consume. Declaring it on
// the consumer side lets tests substitute an in-memory fake.
type userStore interface {
	Create(ctx context.Context, nu repository.NewUser, cost int) (uint64, error)
	GetByEmail(ctx context.Context, email string) (model.User, error)
	GetByID(ctx context.Context, id uint64) (model.User, error)
	List(ctx context.Context, search, role string) ([]repository.AccountRow, error)
	UpdateStaffStatus(ctx context.Context, id uint64, status string) error
	Delete(ctx context.Context, id uint64) error
	AuthorizedStaff(ctx context.Context) ([]repository.StaffOption, error)
}

// complaintStore is the slice of ComplaintRepo the handlers consume.
type complaintStore interface {
	Create(ctx context.Context, userID uint64, subject, ctype, description, attachment string) (uint64, error)
	ListByOwner(ctx context.Context, userID uint64, status string) ([]model.Complaint, error)
	ListAll(ctx context.Context, f repository.Filter) ([]repository.Overview, error)
	ListSolved(ctx context.Context) ([]repository.Overview, error)
	Recent(ctx context.Context, limit int) ([]repository.Overview, error)
	Get(ctx context.Context, id uint64) (repository.Detail, error)
	UpdateStatus(ctx context.Context, id uint64, status string) error
	Assign(ctx context.Context, id, staffID uint64) error
	Delete(ctx context.Context, id uint64) error
}

// commentStore is the slice of CommentRepo the handlers consume.
type commentStore interface {
	Add(ctx context.Context, complaintID, adminID uint64, text string) (uint64, error)
	ListByComplaint(ctx context.Context, complaintID uint64) ([]repository.CommentView, error)
}

// statsStore is the slice of StatsRepo the handlers consume.
type statsStore interface {
	Staff(ctx context.Context) (repository.StaffStats, error)
	Dashboard(ctx context.Context) (repository.DashboardStats, error)
	Statistics(ctx context.Context) (repository.Report, error)
	LongestOpen(ctx context.Context, search, status, role string) ([]repository.OpenComplaint, error)
	RecentlyClosed(ctx context.Context) ([]repository.ClosedComplaint, error)
	StaffAssignment(ctx context.Context) ([]repository.StaffLoad, error)
}

// revoker invalidates outstanding tokens for a user and answers whether a
// token minted at a given instant has been recalled. Satisfied by
// token.RevocationList; a nil-backed list revokes nothing and admits
// everything.
type revoker interface {
	Revoke(ctx context.Context, userID uint64) error
	IsRevoked(ctx context.Context, userID uint64, issuedAt time.Time) bool
}

// reqCtx derives the bounded context used for all database work in a
// handler.
func reqCtx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), dbTimeout)
}

// callerID returns the authenticated user id the auth gate stored on the
// context. ok is false when the gate did not run, which means a routing
// mistake rather than a client error.
func callerID(c echo.Context) (uint64, bool) {
	id, ok := c.Get(middleware.CtxUserID).(uint64)
	return id, ok
}

// pathID parses the :id route parameter.
func pathID(c echo.Context) (uint64, error) {
	return strconv.ParseUint(c.Param("id"), 10, 64)
}

// fail writes the error response convention: a human-readable message
// always, the diagnostic string only outside production so internals are
// not leaked to API consumers.
func fail(c echo.Context, status int, msg string, err error, prod bool) error {
	body := echo.Map{"message": msg}
	if err != nil && !prod {
		body["error"] = err.Error()
	}
	return c.JSON(status, body)
}
