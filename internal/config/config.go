package config

import (
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Application
	AppName string
	AppEnv  string
	AppURL  string
	Port    string

	// Team scope: partition key isolating this deployment's entries/files
	TeamID string

	// Database (optional driver switch via ENV, default: sqlite)
	DBDriver     string
	DBConnection string

	// Security
	JWTSecret            string
	JWTExpiry            time.Duration
	TokenMagicLinkExpiry time.Duration

	// Email
	EmailFrom    string
	ResendAPIKey string

	// Observability (optional)
	SentryDSN string

	// Storage (S3-compatible: MinIO, AWS S3, Cloudflare R2, etc.)
	S3Region            string
	S3Bucket            string
	S3AccessKey         string
	S3SecretKey         string
	S3Endpoint          string // Optional: for S3-compatible services
	SignedURLExpiry     time.Duration // bulk mint for attachment links
	SignedURLRefreshTTL time.Duration // on-demand refresh of a stale link
}

func Load() *Config {
	// Load .env file if it exists
	err := godotenv.Load()
	if err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg := &Config{
		AppName: envString("APP_NAME", "Jokbo"),
		AppEnv:  envRequired("APP_ENV"), // 'development' or 'production'
		AppURL:  envRequired("APP_URL"), // base URL for magic-link emails
		Port:    envString("PORT", "8090"),

		TeamID: envString("TEAM_ID", "demo-team"),

		DBDriver:     envString("DB_DRIVER", "sqlite"),
		DBConnection: envString("DB_CONNECTION", "./data/jokbo.db?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)"),

		JWTSecret:            envRequired("JWT_SECRET"),
		JWTExpiry:            envDuration("JWT_EXPIRY", 168*time.Hour),                // 7 days
		TokenMagicLinkExpiry: envDuration("TOKEN_MAGIC_LINK_EXPIRY", 10*time.Minute),

		// RESEND_API_KEY optional in development, required in production
		EmailFrom:    envString("EMAIL_FROM", "noreply@example.com"),
		ResendAPIKey: envString("RESEND_API_KEY", ""),

		SentryDSN: envString("SENTRY_DSN", ""),

		S3Region:            envRequired("S3_REGION"),
		S3Bucket:            envString("S3_BUCKET", "attachments"),
		S3AccessKey:         envRequired("S3_ACCESS_KEY"),
		S3SecretKey:         envRequired("S3_SECRET_KEY"),
		S3Endpoint:          envString("S3_ENDPOINT", ""),
		SignedURLExpiry:     envDuration("SIGNED_URL_EXPIRY", 30*24*time.Hour), // 30 days
		SignedURLRefreshTTL: envDuration("SIGNED_URL_REFRESH_TTL", time.Hour),
	}

	if cfg.IsProduction() {
		validateProduction(cfg)
	}

	return cfg
}

// validateProduction ensures required services are configured for production.
// Development lets email fall back to log mode for local testing.
func validateProduction(cfg *Config) {
	if cfg.ResendAPIKey == "" {
		slog.Error("production deployment requires RESEND_API_KEY",
			"hint", "set APP_ENV=development for local testing with email log mode")
		os.Exit(1)
	}
}

func envString(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		value = def
	}
	return value
}

func envDuration(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("config invalid duration, using default", "key", key, "value", v, "default", def)
		return def
	}
	return d
}

func envRequired(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	slog.Error("config required env var missing", "key", key)
	os.Exit(1)
	return ""
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// Sanitized returns a copy with only public fields, safe to expose to
// request contexts and client-facing responses.
func (c *Config) Sanitized() *Config {
	return &Config{
		AppName: c.AppName,
		AppEnv:  c.AppEnv,
		AppURL:  c.AppURL,
		Port:    c.Port,
		TeamID:  c.TeamID,

		EmailFrom:  c.EmailFrom,
		S3Endpoint: c.S3Endpoint,
	}
}
