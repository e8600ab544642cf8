package config // package config loads application configuration from environment variables

import (
	"log"     // log reports configuration errors and halts execution
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
)

// Config holds every runtime setting the server needs. Each field maps to
// one environment variable. Values are read once at startup and passed
// explicitly to the constructors that need them (database pool, token
// service, upload store); nothing reads the environment after Load returns.
type Config struct {
	Env            string // application environment ("dev", "test", "prod")
	Port           string // HTTP port to listen on
	DBUser         string // database username
	DBPass         string // database password (optional)
	DBHost         string // database host address
	DBPort         string // database port number
	DBName         string // database name
	JWTSecret      string // secret used to sign access and refresh tokens
	AccessTTLMin   int    // access token time-to-live in minutes
	RefreshTTLDays int    // refresh token time-to-live in days
	BcryptCost     int    // bcrypt cost for password hashing
	UploadDir      string // directory for complaint attachments
}

// Load reads the configuration from the environment and returns a Config.
// Required variables are enforced by must(); a missing one is a hard stop,
// not a recoverable error. In particular the server refuses to run without
// a signing secret. TTLs, bcrypt cost and the upload directory fall back
// to defaults so a minimal .env is enough for local development.
func Load() Config {
	return Config{
		Env:            envOr("APP_ENV", "dev"),
		Port:           envOr("APP_PORT", "8080"),
		DBUser:         must("DB_USER"),
		DBPass:         os.Getenv("DB_PASS"), // empty password allowed
		DBHost:         must("DB_HOST"),
		DBPort:         envOr("DB_PORT", "3306"),
		DBName:         must("DB_NAME"),
		JWTSecret:      must("JWT_SECRET"),
		AccessTTLMin:   intOr("ACCESS_TOKEN_TTL_MIN", 30),
		RefreshTTLDays: intOr("REFRESH_TOKEN_TTL_DAYS", 7),
		BcryptCost:     intOr("BCRYPT_COST", 10),
		UploadDir:      envOr("UPLOAD_DIR", "uploads"),
	}
}

// IsProd reports whether the server runs in production. Handlers use this
// to decide whether diagnostic strings may be echoed back to API clients.
func (c Config) IsProd() bool { return c.Env == "prod" }

// must retrieves a required environment variable. If the variable is unset
// or empty the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// envOr returns the value of key, or def when unset or empty.
func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// intOr returns the integer value of key, or def when unset. A value that
// is present but not a valid integer is a configuration mistake and halts
// startup, same as a missing required variable.
func intOr(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, v)
	}
	return n
}
