package domain

import "time"

// TokenPair is what a successful login or refresh returns: the short-lived
// access token (JWT) and the opaque refresh token.
type TokenPair struct {
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
	TokenType    string        `json:"token_type,omitempty"` // "Bearer"
	ExpiresIn    time.Duration `json:"expires_in"`           // access token lifetime
}

// VerificationToken is a single-use email-confirmation credential. Expired
// tokens are rejected lazily, they are only deleted when acted upon.
type VerificationToken struct {
	ID        string
	AccountID string
	Token     string // opaque random string, unique
	ExpiresAt time.Time
	SentAt    time.Time
	CreatedAt time.Time
}

// Expired reports whether the token's lifetime has passed.
func (t VerificationToken) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}

// RefreshToken models the stored refresh token record. At most one live
// token exists per account; the storage layer enforces this with a unique
// index on account_id. Only the SHA-256 fingerprint of the opaque value is
// persisted.
type RefreshToken struct {
	ID        string
	AccountID string
	TokenHash string // base64url SHA-256 fingerprint
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired reports whether the token's hard lifetime has passed.
func (t RefreshToken) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}
