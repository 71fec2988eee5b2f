package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Session cookie (signed JWT)
	SessionSecret     string
	SessionTTL        time.Duration
	SessionCookieName string
	BcryptCost        int

	// Mail
	SendGridAPIKey  string
	MailFrom        string
	WebClientOrigin string

	// Rate limiting
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RateLimitMax  int

	// Observability
	SentryDSN        string
	LogRetentionDays int

	// Server
	AppEnv      string
	Port        string
	TLSCertFile string
	TLSKeyFile  string
}

func Load() *Config {
	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "gradcollab"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		SessionSecret:     getEnv("SESSION_SECRET", ""),
		SessionTTL:        parseDuration(getEnv("SESSION_TTL", "720h"), 720*time.Hour),
		SessionCookieName: getEnv("SESSION_COOKIE_NAME", "gc_session"),
		BcryptCost:        parseInt(getEnv("BCRYPT_COST", "10"), 10),

		SendGridAPIKey:  getEnv("SENDGRID_API_KEY", ""),
		MailFrom:        getEnv("MAIL_FROM", "invites@vivadoc.io"),
		WebClientOrigin: strings.TrimRight(getEnv("WEB_CLIENT_ORIGIN", "http://localhost:3000"), "/"),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       parseInt(getEnv("REDIS_DB", "0"), 0),
		RateLimitMax:  parseInt(getEnv("RATE_LIMIT_MAX", "60"), 60),

		SentryDSN:        getEnv("SENTRY_DSN", ""),
		LogRetentionDays: parseInt(getEnv("LOG_RETENTION_DAYS", "30"), 30),

		AppEnv:      getEnv("APP_ENV", "development"),
		Port:        getEnv("PORT", "3001"),
		TLSCertFile: getEnv("TLS_CERT_FILE", "./certs/vivadoc.cert"),
		TLSKeyFile:  getEnv("TLS_KEY_FILE", "./certs/vivadoc-private-key.pem"),
	}
}

// IsProduction reports whether the server should listen with TLS and issue
// secure cookies.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// Validate collects every missing required setting into one error.
func (c *Config) Validate() error {
	var missing []string
	if c.SessionSecret == "" {
		missing = append(missing, "SESSION_SECRET")
	}
	if c.DBPassword == "" {
		missing = append(missing, "DB_PASSWORD")
	}
	if c.IsProduction() && c.SendGridAPIKey == "" {
		missing = append(missing, "SENDGRID_API_KEY")
	}
	if len(missing) > 0 {
		return errors.New("missing required environment variables: " + strings.Join(missing, ", "))
	}
	return nil
}

func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}

func parseInt(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return n
}
