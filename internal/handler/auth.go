package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/parsab/complaint-desk/internal/model"
	"github.com/parsab/complaint-desk/internal/repository"
	"github.com/parsab/complaint-desk/internal/token"
	"github.com/parsab/complaint-desk/internal/utils"
)

// AuthHandler implements registration, login and token refresh.
type AuthHandler struct {
	Users      userStore
	Tokens     *token.Service
	Revoked    revoker
	BcryptCost int
	Prod       bool
}

func NewAuthHandler(users userStore, tokens *token.Service, revoked revoker, bcryptCost int, prod bool) *AuthHandler {
	return &AuthHandler{Users: users, Tokens: tokens, Revoked: revoked, BcryptCost: bcryptCost, Prod: prod}
}

// ----- DTOs -----

type registerReq struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Role       string `json:"role"`
	RollNumber string `json:"roll_number"`
	Branch     string `json:"branch"`
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshReq struct {
	RefreshToken string `json:"refresh_token"`
}

// profilePart is the sanitized user representation returned from auth
// endpoints. The password hash has no field here and can never be
// serialized, whatever code path builds the response.
type profilePart struct {
	ID          uint64 `json:"id"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	RollNumber  string `json:"roll_number,omitempty"`
	Branch      string `json:"branch,omitempty"`
	StaffStatus string `json:"staff_status,omitempty"`
}

func profileOf(u model.User) profilePart {
	p := profilePart{
		ID:         u.ID,
		Email:      u.Email,
		Role:       u.Role,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		RollNumber: u.RollNumber,
		Branch:     u.Branch,
	}
	if u.Role == model.RoleStaff {
		p.StaffStatus = u.StaffStatus
	}
	return p
}

// Register creates a user or staff account. User registrations are
// auto-approved and answered with a fresh token pair; staff registrations
// are stored Pending and receive no token, so login stays deferred until
// an admin acts.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body", err, h.Prod)
	}
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	role := strings.ToLower(strings.TrimSpace(req.Role))

	if req.FirstName == "" || req.LastName == "" || req.Email == "" || req.Password == "" || role == "" {
		return fail(c, http.StatusBadRequest, "Missing required fields", nil, h.Prod)
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	uid, err := h.Users.Create(ctx, repository.NewUser{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Email:      req.Email,
		Password:   req.Password,
		Role:       role,
		RollNumber: req.RollNumber,
		Branch:     req.Branch,
	}, h.BcryptCost)
	if err != nil {
		switch err {
		case repository.ErrInvalidRole:
			return fail(c, http.StatusBadRequest, "Invalid role specified", nil, h.Prod)
		case repository.ErrEmailExists:
			return fail(c, http.StatusConflict, "Email already registered. Please log in.", nil, h.Prod)
		}
		return fail(c, http.StatusInternalServerError, "Registration failed", err, h.Prod)
	}

	if role == model.RoleStaff {
		return c.JSON(http.StatusCreated, echo.Map{
			"message": "Staff registration submitted! Await admin approval.",
		})
	}

	access, err := h.Tokens.IssueAccess(uid, role)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "Registration failed", err, h.Prod)
	}
	refresh, err := h.Tokens.IssueRefresh(uid, role)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "Registration failed", err, h.Prod)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message":       "Registration successful!",
		"access_token":  access,
		"refresh_token": refresh,
		"user": profilePart{
			ID:         uid,
			Email:      req.Email,
			Role:       role,
			FirstName:  req.FirstName,
			LastName:   req.LastName,
			RollNumber: req.RollNumber,
			Branch:     req.Branch,
		},
	})
}

// Login verifies credentials and, for staff, the approval gate, then
// answers with a fresh access/refresh pair and the sanitized profile.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body", err, h.Prod)
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return fail(c, http.StatusBadRequest, "Email and password are required", nil, h.Prod)
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if err == repository.ErrNotFound {
			return fail(c, http.StatusNotFound, "No account with this email. Please register.", nil, h.Prod)
		}
		return fail(c, http.StatusInternalServerError, "Login failed", err, h.Prod)
	}

	// The approval gate is checked before the password so a pending staff
	// member learns their account state instead of a generic failure.
	if u.Role == model.RoleStaff {
		switch u.StaffStatus {
		case model.StaffPending:
			return fail(c, http.StatusForbidden, "Staff account is pending admin approval.", nil, h.Prod)
		case model.StaffRejected:
			return fail(c, http.StatusForbidden, "Your staff account was rejected by admin.", nil, h.Prod)
		}
	}

	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return fail(c, http.StatusUnauthorized, "Incorrect password.", nil, h.Prod)
	}

	access, err := h.Tokens.IssueAccess(u.ID, u.Role)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "Login failed", err, h.Prod)
	}
	refresh, err := h.Tokens.IssueRefresh(u.ID, u.Role)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "Login failed", err, h.Prod)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message":       "Login successful",
		"access_token":  access,
		"refresh_token": refresh,
		"user":          profileOf(u),
	})
}

// Refresh exchanges a valid refresh token for one new access token. The
// refresh token itself is not rotated or invalidated; it stays usable
// until it expires.
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.RefreshToken) == "" {
		return fail(c, http.StatusBadRequest, "Refresh token missing", nil, h.Prod)
	}

	claims, err := h.Tokens.Verify(strings.TrimSpace(req.RefreshToken))
	if err != nil {
		if err == token.ErrExpired {
			return fail(c, http.StatusUnauthorized, "Refresh token expired, please login again", nil, h.Prod)
		}
		return fail(c, http.StatusUnauthorized, "Invalid refresh token", nil, h.Prod)
	}

	// A recalled account must not be able to launder its refresh token
	// into a fresh access token whose iat postdates the cutoff, so the
	// revocation list is consulted here exactly as at the auth gate.
	ctx, cancel := reqCtx(c)
	defer cancel()
	if h.Revoked.IsRevoked(ctx, claims.UserID, claims.IssuedAt) {
		return fail(c, http.StatusForbidden, "Token revoked, please login again", nil, h.Prod)
	}

	access, err := h.Tokens.IssueAccess(claims.UserID, claims.Role)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "Could not refresh token", err, h.Prod)
	}
	return c.JSON(http.StatusOK, echo.Map{"access_token": access})
}
