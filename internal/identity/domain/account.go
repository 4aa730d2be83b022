package domain

import "time"

// Role tags assigned at registration. The role set is fixed for the
// lifetime of the account.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Account is the root identity entity. Email is globally unique and the
// enabled flag only flips true through email verification.
type Account struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string // argon2id PHC encoded
	Enabled      bool
	Roles        []string // non-empty, immutable after creation

	// Optional profile attributes.
	Gender      string
	Phone       string
	DateOfBirth *time.Time
	Height      *float64

	LastProfileUpdate *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// HasRole reports whether the account carries the given role tag.
func (a Account) HasRole(role string) bool {
	for _, r := range a.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// CanUpdateProfile reports whether the self-service profile cooldown has
// elapsed: never updated, or last updated more than one calendar month ago.
func (a Account) CanUpdateProfile(now time.Time) bool {
	return a.LastProfileUpdate == nil || a.LastProfileUpdate.Before(now.AddDate(0, -1, 0))
}
