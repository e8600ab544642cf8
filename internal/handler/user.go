package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/parsab/complaint-desk/internal/repository"
)

// UserHandler serves the authenticated user's own profile.
type UserHandler struct {
	Users userStore
	Prod  bool
}

func NewUserHandler(users userStore, prod bool) *UserHandler {
	return &UserHandler{Users: users, Prod: prod}
}

// Me returns the caller's profile for the account page and navbar.
func (h *UserHandler) Me(c echo.Context) error {
	uid, ok := callerID(c)
	if !ok {
		return fail(c, http.StatusUnauthorized, "Unauthorized", nil, h.Prod)
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	u, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		if err == repository.ErrNotFound {
			return fail(c, http.StatusNotFound, "No user found", nil, h.Prod)
		}
		return fail(c, http.StatusInternalServerError, "Error loading profile", err, h.Prod)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"username":    u.FullName(),
		"email":       u.Email,
		"first_name":  u.FirstName,
		"last_name":   u.LastName,
		"roll_number": u.RollNumber,
		"branch":      u.Branch,
	})
}
