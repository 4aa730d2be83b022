package app

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/lanternhq/lantern/pkg/jwtx"
)

type Config struct {
	Issuer string // Issuer claim for access tokens

	SigningKeyFile string // Optional: PKCS8 PEM Ed25519 key; empty means ephemeral
	DatabaseFile   string // Path to SQLite database file (default: ./identity.db)
	PepperFile     string // Path to password hashing pepper file (default: ./pepper)

	AccessTokenTTL  time.Duration // Access token lifetime (default: 15m)
	RefreshTokenTTL time.Duration // Refresh token lifetime (default: 168h)
	VerificationTTL time.Duration // Verification token lifetime (default: 15m)
	ResendCooldown  time.Duration // Minimum gap between verification emails (default: 5m)

	AdminEmails []string // Addresses granted the admin role at registration

	BootstrapAdminEmail    string // Optional: seed admin account email
	BootstrapAdminName     string // Optional: seed admin display name
	BootstrapAdminPassword string // Optional: seed admin password, generated when empty

	MailBaseURL string // Base URL used in verification links

	Env       string // Environment (dev, staging, prod) (default: dev)
	LogLevel  string // Log level (debug, info, warn, error) (default: info)
	LogFormat string // Log format (json, text) (default: json)
	Port      int    // HTTP server port (default: 8080)

	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Expired refresh token sweep interval (default: 1h)
	RevocationSweep      time.Duration // Revoked access token sweep interval (default: 10m)
}

func LoadConfig() Config {
	cfg := Config{
		Issuer:         getEnvOrDefault("IDENTITY_ISSUER", "lantern-identity"),
		SigningKeyFile: os.Getenv("IDENTITY_SIGNING_KEY_FILE"),
		DatabaseFile:   getEnvOrDefault("IDENTITY_DATABASE_FILE", "identity.db"),
		PepperFile:     getEnvOrDefault("IDENTITY_PEPPER_FILE", "pepper"),

		AccessTokenTTL:  getEnvDurationOrDefault("IDENTITY_ACCESS_TTL", jwtx.DefaultAccessTokenTTL),
		RefreshTokenTTL: getEnvDurationOrDefault("IDENTITY_REFRESH_TTL", jwtx.DefaultRefreshTokenTTL),
		VerificationTTL: getEnvDurationOrDefault("IDENTITY_VERIFICATION_TTL", 15*time.Minute),
		ResendCooldown:  getEnvDurationOrDefault("IDENTITY_RESEND_COOLDOWN", 5*time.Minute),

		AdminEmails: splitCSV(os.Getenv("IDENTITY_ADMIN_EMAILS")),

		BootstrapAdminEmail:    os.Getenv("IDENTITY_BOOTSTRAP_ADMIN_EMAIL"),
		BootstrapAdminName:     getEnvOrDefault("IDENTITY_BOOTSTRAP_ADMIN_NAME", "Administrator"),
		BootstrapAdminPassword: os.Getenv("IDENTITY_BOOTSTRAP_ADMIN_PASSWORD"),

		MailBaseURL: getEnvOrDefault("IDENTITY_MAIL_BASE_URL", "http://localhost:8080"),

		Env:       getEnvOrDefault("ENV", "dev"),
		LogLevel:  getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat: getEnvOrDefault("LOG_FORMAT", "json"),
		Port:      getEnvIntOrDefault("PORT", 8080),

		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
		RevocationSweep:      getEnvDurationOrDefault("REVOCATION_SWEEP_INTERVAL", 10*time.Minute),
	}

	return cfg
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Bare integers are taken as minutes.
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}

func splitCSV(value string) []string {
	if value == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
