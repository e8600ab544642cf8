package router // router wires HTTP routes to their handlers and middleware

import (
	"database/sql"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/parsab/complaint-desk/internal/config"
	"github.com/parsab/complaint-desk/internal/handler"
	"github.com/parsab/complaint-desk/internal/middleware"
	"github.com/parsab/complaint-desk/internal/model"
	"github.com/parsab/complaint-desk/internal/token"
)

// Handlers bundles every handler the router mounts.
type Handlers struct {
	Auth            *handler.AuthHandler
	User            *handler.UserHandler
	Complaint       *handler.ComplaintHandler
	Staff           *handler.StaffHandler
	AdminComplaints *handler.AdminComplaintHandler
	AdminUsers      *handler.AdminUserHandler
	AdminStats      *handler.AdminStatsHandler
}

// Register mounts all routes. Route groups carry the authorization
// policy: the auth gate verifies identity, RequireRole states which roles
// an operation admits, and handlers never re-derive either from the URL.
func Register(e *echo.Echo, h Handlers, svc *token.Service, revoked *token.RevocationList,
	rdb *redis.Client, rlCfg config.RateLimitConfig, db *sql.DB) {

	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())

	e.GET("/healthz", handler.Health(db))

	authGate := middleware.JWTAuth(svc, revoked)
	limiter := middleware.NewTokenBucket(rlCfg, rdb)

	// Unauthenticated session endpoints.
	auth := e.Group("/api/auth", limiter)
	auth.POST("/register", h.Auth.Register)
	auth.POST("/login", h.Auth.Login)
	auth.POST("/refresh", h.Auth.Refresh)

	// Profile for every authenticated role.
	user := e.Group("/api/user", authGate, limiter,
		middleware.RequireRole(model.RoleUser, model.RoleStaff, model.RoleAdmin))
	user.GET("/me", h.User.Me)

	// End-user complaint filing and listing.
	complaints := e.Group("/api/complaints", authGate, limiter,
		middleware.RequireRole(model.RoleUser))
	complaints.POST("", h.Complaint.Create)
	complaints.GET("/unsolved", h.Complaint.Unsolved)
	complaints.GET("/solved", h.Complaint.Solved)

	// Staff triage surface.
	staff := e.Group("/api/staff", authGate, limiter,
		middleware.RequireRole(model.RoleStaff))
	staff.GET("/profile", h.Staff.Profile)
	staff.GET("/complaints/stats", h.Staff.ComplaintStats)
	staff.GET("/complaints", h.Staff.ListComplaints)
	staff.GET("/complaints/solved", h.Staff.SolvedComplaints)
	staff.POST("/complaints/:id/status", h.Staff.UpdateStatus)

	// Admin oversight surface.
	admin := e.Group("/api/admin", authGate, limiter,
		middleware.RequireRole(model.RoleAdmin))
	admin.GET("/dashboard-stats", h.AdminStats.Dashboard)
	admin.GET("/recent-complaints", h.AdminStats.RecentComplaints)
	admin.GET("/statistics", h.AdminStats.Statistics)
	admin.GET("/statistics/longest-open", h.AdminStats.LongestOpen)
	admin.GET("/statistics/recently-closed", h.AdminStats.RecentlyClosed)
	admin.GET("/statistics/staff-assignment", h.AdminStats.StaffAssignment)

	admin.GET("/complaints", h.AdminComplaints.List)
	admin.GET("/complaints/:id", h.AdminComplaints.Get)
	admin.PATCH("/complaints/:id/status", h.AdminComplaints.UpdateStatus)
	admin.PATCH("/complaints/:id/assign", h.AdminComplaints.Assign)
	admin.POST("/complaints/:id/comment", h.AdminComplaints.AddComment)
	admin.DELETE("/complaints/:id", h.AdminComplaints.Delete)
	admin.GET("/authorized-staff", h.AdminComplaints.AuthorizedStaff)

	admin.GET("/users", h.AdminUsers.List)
	admin.PATCH("/users/:id/status", h.AdminUsers.UpdateStaffStatus)
	admin.DELETE("/users/:id", h.AdminUsers.Delete)
}
