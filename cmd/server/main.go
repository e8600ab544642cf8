package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/parsab/complaint-desk/internal/config"
	"github.com/parsab/complaint-desk/internal/database"
	"github.com/parsab/complaint-desk/internal/handler"
	"github.com/parsab/complaint-desk/internal/repository"
	"github.com/parsab/complaint-desk/internal/router"
	"github.com/parsab/complaint-desk/internal/storage"
	"github.com/parsab/complaint-desk/internal/token"
)

func main() {
	// .env is a development convenience; deployed environments inject
	// real variables and have no file to load.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	tokens := token.New(cfg.JWTSecret, cfg.AccessTTLMin, cfg.RefreshTTLDays)

	// Redis is optional: without it the revocation list and rate limiter
	// are disabled and the API still serves.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable: revocation list and rate limiting disabled")
	}
	revoked := token.NewRevocationList(rdb, tokens.RefreshTTL())

	users := repository.NewUserRepo(db)
	complaints := repository.NewComplaintRepo(db)
	comments := repository.NewCommentRepo(db)
	stats := repository.NewStatsRepo(db)
	uploads := storage.NewUploadStore(cfg.UploadDir)

	prod := cfg.IsProd()
	h := router.Handlers{
		Auth:            handler.NewAuthHandler(users, tokens, revoked, cfg.BcryptCost, prod),
		User:            handler.NewUserHandler(users, prod),
		Complaint:       handler.NewComplaintHandler(complaints, uploads, prod),
		Staff:           handler.NewStaffHandler(users, complaints, stats, prod),
		AdminComplaints: handler.NewAdminComplaintHandler(complaints, comments, users, prod),
		AdminUsers:      handler.NewAdminUserHandler(users, revoked, prod),
		AdminStats:      handler.NewAdminStatsHandler(stats, complaints, prod),
	}

	e := echo.New()
	e.HideBanner = true
	router.Register(e, h, tokens, revoked, rdb, config.LoadRateLimitConfig(), db)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
