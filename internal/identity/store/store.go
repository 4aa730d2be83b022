package store

import (
	"context"
	"errors"
	"time"

	"github.com/lanternhq/lantern/internal/identity/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite today,
// postgres later) implement this. It exposes sub-repositories to keep
// concerns tidy and testable. Uniqueness (account email, token strings, one
// refresh token per account) is enforced by the driver's schema, not by
// application checks alone.
type Store interface {
	Accounts() Accounts
	VerificationTokens() VerificationTokens
	RefreshTokens() RefreshTokens
	AuditLog() AuditLog

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction rolls back, otherwise it commits. This is the preferred
	// way to run multi-step writes (e.g. refresh-token replacement).
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Accounts interface {
	// GetAccountByID returns an account by id.
	GetAccountByID(ctx context.Context, id string) (domain.Account, error)

	// GetAccountByEmail is used during login and registration duplicate checks.
	GetAccountByEmail(ctx context.Context, email string) (domain.Account, error)

	// CreateAccount inserts a new account (id provided by the app via ULID).
	// Returns ErrAlreadyExists when the email is taken.
	CreateAccount(ctx context.Context, a domain.Account) error

	// SetEnabled flips the enabled flag and bumps updated_at.
	SetEnabled(ctx context.Context, accountID string, enabled bool) error

	// UpdateProfile mutates the self-serviceable profile fields and stamps
	// last_profile_update.
	UpdateProfile(ctx context.Context, accountID string, p ProfileUpdate) error

	// ListAccounts returns all accounts ordered by creation (newest first).
	ListAccounts(ctx context.Context) ([]domain.Account, error)

	// DeleteAccount removes an account; verification and refresh tokens
	// cascade per schema, audit entries deliberately do not.
	DeleteAccount(ctx context.Context, accountID string) error
}

// ProfileUpdate carries the mutable profile fields plus the cooldown stamp.
type ProfileUpdate struct {
	Name      string
	Phone     string
	Gender    string
	Height    *float64
	UpdatedAt time.Time // becomes last_profile_update
}

type VerificationTokens interface {
	// CreateVerificationToken stores a freshly minted token row.
	CreateVerificationToken(ctx context.Context, t domain.VerificationToken) error

	// GetVerificationToken looks a token up by its opaque value.
	GetVerificationToken(ctx context.Context, token string) (domain.VerificationToken, error)

	// GetVerificationTokenByAccount returns the token owned by an account,
	// used by the resend flow.
	GetVerificationTokenByAccount(ctx context.Context, accountID string) (domain.VerificationToken, error)

	// UpdateVerificationToken resets expiry and sent_at on resend.
	UpdateVerificationToken(ctx context.Context, id string, expiresAt, sentAt time.Time) error

	// DeleteVerificationToken removes a consumed or expired token.
	DeleteVerificationToken(ctx context.Context, id string) error
}

type RefreshTokens interface {
	// CreateRefreshToken stores a new refresh token record. The unique
	// index on account_id rejects a second live token for the same account.
	CreateRefreshToken(ctx context.Context, t domain.RefreshToken) error

	// GetRefreshTokenByHash returns the token by its SHA-256 fingerprint.
	GetRefreshTokenByHash(ctx context.Context, hash string) (domain.RefreshToken, error)

	// DeleteRefreshTokenByHash removes a single token (logout, expiry-on-use).
	DeleteRefreshTokenByHash(ctx context.Context, hash string) error

	// DeleteRefreshTokensByAccount clears the account's live token before a
	// new login mints its replacement.
	DeleteRefreshTokensByAccount(ctx context.Context, accountID string) error

	// DeleteExpiredRefreshTokens is housekeeping.
	DeleteExpiredRefreshTokens(ctx context.Context, now time.Time) error
}

type AuditLog interface {
	// AppendAuditEntry writes one immutable entry. There is no update or
	// delete path, audit rows only ever accumulate.
	AppendAuditEntry(ctx context.Context, e domain.AuditEntry) error

	// ListAuditEntriesByEmail returns entries for one account email, newest
	// first, for the admin review endpoint.
	ListAuditEntriesByEmail(ctx context.Context, email string, limit int) ([]domain.AuditEntry, error)
}
