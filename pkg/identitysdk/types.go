// Package identitysdk holds the wire types of the identity service plus a
// small HTTP client for them. Handlers and consumers share these structs so
// the JSON surface is defined exactly once.
package identitysdk

import "time"

// ErrorResponse is the standard JSON error body.
type ErrorResponse struct {
	// Error is the machine-readable error code (e.g. "invalid_credentials")
	Error string `json:"error"`

	// ErrorDescription is a human-readable description of the error
	ErrorDescription string `json:"error_description,omitempty"`
}

// RegisterRequest creates a new, unverified account.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`

	// Optional profile attributes.
	Gender      string   `json:"gender,omitempty"`
	Phone       string   `json:"phone,omitempty"`
	DateOfBirth string   `json:"date_of_birth,omitempty"` // YYYY-MM-DD
	Height      *float64 `json:"height,omitempty"`
}

// ResendRequest asks for a fresh verification email.
type ResendRequest struct {
	Email string `json:"email"`
}

// LoginRequest exchanges credentials for a token pair.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RefreshRequest exchanges a refresh token for a new access token.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// LogoutRequest retires the session named by the refresh token. The access
// token to revoke travels in the Authorization header.
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// TokenResponse is the token pair returned by login and refresh.
type TokenResponse struct {
	// AccessToken is the JWT used to authenticate API requests
	AccessToken string `json:"access_token"`

	// RefreshToken is the opaque token used to obtain new access tokens
	RefreshToken string `json:"refresh_token"`

	// TokenType is always "Bearer"
	TokenType string `json:"token_type"`

	// ExpiresIn is the lifetime in seconds of the access token
	ExpiresIn int `json:"expires_in"`
}

// ProfileUpdateRequest mutates the self-serviceable profile fields.
type ProfileUpdateRequest struct {
	Name   string   `json:"name"`
	Phone  string   `json:"phone,omitempty"`
	Gender string   `json:"gender,omitempty"`
	Height *float64 `json:"height,omitempty"`
}

// AccountResponse is the public view of an account.
type AccountResponse struct {
	ID      string   `json:"id"`
	Email   string   `json:"email"`
	Name    string   `json:"name"`
	Enabled bool     `json:"enabled"`
	Roles   []string `json:"roles"`

	Gender      string   `json:"gender,omitempty"`
	Phone       string   `json:"phone,omitempty"`
	DateOfBirth string   `json:"date_of_birth,omitempty"`
	Height      *float64 `json:"height,omitempty"`

	LastProfileUpdate *time.Time `json:"last_profile_update,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
}

// AccountListResponse wraps the admin account listing.
type AccountListResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

// AuditEntryResponse is one audit trail record.
type AuditEntryResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Action    string    `json:"action"`
	Detail    string    `json:"detail,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// AuditListResponse wraps the admin audit listing.
type AuditListResponse struct {
	Entries []AuditEntryResponse `json:"entries"`
}

// MessageResponse carries a human-readable confirmation for endpoints with
// no other payload.
type MessageResponse struct {
	Message string `json:"message"`
}

// HealthResponse is returned by the livez and readyz probes.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports per-dependency readiness.
type HealthChecks struct {
	Database string `json:"database"`
	Signer   string `json:"signer"`
}
