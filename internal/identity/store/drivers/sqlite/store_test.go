package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/lanternhq/lantern/internal/identity/domain"
	"github.com/lanternhq/lantern/internal/identity/store"
	"github.com/lanternhq/lantern/pkg/idx"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())
	return st
}

func testAccount(email string) domain.Account {
	now := time.Now().UTC().Truncate(time.Second)
	return domain.Account{
		ID:           idx.New().String(),
		Email:        email,
		Name:         "Test",
		PasswordHash: "$argon2id$v=19$m=19456,t=2,p=1$c2FsdA$aGFzaA",
		Roles:        []string{domain.RoleUser},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestAccountEmailUniqueness(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.Accounts().CreateAccount(ctx, testAccount("alice@example.com")))

	err := st.Accounts().CreateAccount(ctx, testAccount("alice@example.com"))
	require.ErrorIs(t, err, store.ErrAlreadyExists)

	// COLLATE NOCASE makes casing variants collide too.
	err = st.Accounts().CreateAccount(ctx, testAccount("ALICE@example.com"))
	require.ErrorIs(t, err, store.ErrAlreadyExists)
}

func TestAccountRoundTrip(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	dob := time.Date(1990, 5, 10, 0, 0, 0, 0, time.UTC)
	height := 180.0
	a := testAccount("alice@example.com")
	a.Roles = []string{domain.RoleAdmin, domain.RoleUser}
	a.Gender = "female"
	a.Phone = "+61400000000"
	a.DateOfBirth = &dob
	a.Height = &height
	require.NoError(t, st.Accounts().CreateAccount(ctx, a))

	got, err := st.Accounts().GetAccountByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	require.Equal(t, a.ID, got.ID)
	require.Equal(t, []string{domain.RoleAdmin, domain.RoleUser}, got.Roles)
	require.False(t, got.Enabled)
	require.NotNil(t, got.DateOfBirth)
	require.True(t, dob.Equal(*got.DateOfBirth))
	require.NotNil(t, got.Height)
	require.Equal(t, height, *got.Height)
	require.Nil(t, got.LastProfileUpdate)

	require.NoError(t, st.Accounts().SetEnabled(ctx, a.ID, true))
	got, err = st.Accounts().GetAccountByID(ctx, a.ID)
	require.NoError(t, err)
	require.True(t, got.Enabled)

	_, err = st.Accounts().GetAccountByEmail(ctx, "nobody@example.com")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestUpdateProfileStampsCooldown(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	a := testAccount("alice@example.com")
	require.NoError(t, st.Accounts().CreateAccount(ctx, a))

	stamp := time.Now().UTC().Truncate(time.Second)
	height := 172.5
	require.NoError(t, st.Accounts().UpdateProfile(ctx, a.ID, store.ProfileUpdate{
		Name:      "Renamed",
		Phone:     "+61411111111",
		Gender:    "female",
		Height:    &height,
		UpdatedAt: stamp,
	}))

	got, err := st.Accounts().GetAccountByID(ctx, a.ID)
	require.NoError(t, err)
	require.Equal(t, "Renamed", got.Name)
	require.NotNil(t, got.LastProfileUpdate)
	require.True(t, stamp.Equal(*got.LastProfileUpdate))

	err = st.Accounts().UpdateProfile(ctx, "missing", store.ProfileUpdate{UpdatedAt: stamp})
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestRefreshTokenSingleSessionConstraint(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	a := testAccount("alice@example.com")
	require.NoError(t, st.Accounts().CreateAccount(ctx, a))

	now := time.Now().UTC().Truncate(time.Second)
	first := domain.RefreshToken{
		ID:        idx.New().String(),
		AccountID: a.ID,
		TokenHash: "hash-one",
		ExpiresAt: now.Add(time.Hour),
		CreatedAt: now,
	}
	require.NoError(t, st.RefreshTokens().CreateRefreshToken(ctx, first))

	// The schema refuses a second live token for the same account.
	second := first
	second.ID = idx.New().String()
	second.TokenHash = "hash-two"
	err := st.RefreshTokens().CreateRefreshToken(ctx, second)
	require.ErrorIs(t, err, store.ErrAlreadyExists)

	// Delete-then-insert is the replacement path.
	require.NoError(t, st.RefreshTokens().DeleteRefreshTokensByAccount(ctx, a.ID))
	require.NoError(t, st.RefreshTokens().CreateRefreshToken(ctx, second))

	got, err := st.RefreshTokens().GetRefreshTokenByHash(ctx, "hash-two")
	require.NoError(t, err)
	require.Equal(t, a.ID, got.AccountID)
}

func TestDeleteExpiredRefreshTokens(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	alice := testAccount("alice@example.com")
	bob := testAccount("bob@example.com")
	require.NoError(t, st.Accounts().CreateAccount(ctx, alice))
	require.NoError(t, st.Accounts().CreateAccount(ctx, bob))

	now := time.Now().UTC().Truncate(time.Second)
	stale := domain.RefreshToken{
		ID: idx.New().String(), AccountID: alice.ID, TokenHash: "stale",
		ExpiresAt: now.Add(-time.Minute), CreatedAt: now.Add(-time.Hour),
	}
	live := domain.RefreshToken{
		ID: idx.New().String(), AccountID: bob.ID, TokenHash: "live",
		ExpiresAt: now.Add(time.Hour), CreatedAt: now,
	}
	require.NoError(t, st.RefreshTokens().CreateRefreshToken(ctx, stale))
	require.NoError(t, st.RefreshTokens().CreateRefreshToken(ctx, live))

	require.NoError(t, st.RefreshTokens().DeleteExpiredRefreshTokens(ctx, now))

	_, err := st.RefreshTokens().GetRefreshTokenByHash(ctx, "stale")
	require.ErrorIs(t, err, store.ErrNotFound)
	_, err = st.RefreshTokens().GetRefreshTokenByHash(ctx, "live")
	require.NoError(t, err)
}

func TestTokensCascadeWithAccount(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	a := testAccount("alice@example.com")
	require.NoError(t, st.Accounts().CreateAccount(ctx, a))

	now := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, st.VerificationTokens().CreateVerificationToken(ctx, domain.VerificationToken{
		ID: idx.New().String(), AccountID: a.ID, Token: "verify-me",
		ExpiresAt: now.Add(time.Hour), SentAt: now, CreatedAt: now,
	}))
	require.NoError(t, st.RefreshTokens().CreateRefreshToken(ctx, domain.RefreshToken{
		ID: idx.New().String(), AccountID: a.ID, TokenHash: "hash",
		ExpiresAt: now.Add(time.Hour), CreatedAt: now,
	}))

	require.NoError(t, st.Accounts().DeleteAccount(ctx, a.ID))

	_, err := st.VerificationTokens().GetVerificationToken(ctx, "verify-me")
	require.ErrorIs(t, err, store.ErrNotFound)
	_, err = st.RefreshTokens().GetRefreshTokenByHash(ctx, "hash")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestWithTxRollsBackOnError(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	a := testAccount("alice@example.com")
	errBoom := context.DeadlineExceeded

	err := st.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Accounts().CreateAccount(ctx, a); err != nil {
			return err
		}
		return errBoom
	})
	require.ErrorIs(t, err, errBoom)

	_, err = st.Accounts().GetAccountByEmail(ctx, "alice@example.com")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestAuditLogOrderingAndLimit(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)
	actions := []domain.AuditAction{domain.AuditRegister, domain.AuditLogin, domain.AuditLogout}
	for i, action := range actions {
		require.NoError(t, st.AuditLog().AppendAuditEntry(ctx, domain.AuditEntry{
			ID:        idx.New().String(),
			Email:     "alice@example.com",
			Action:    action,
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		}))
	}

	entries, err := st.AuditLog().ListAuditEntriesByEmail(ctx, "alice@example.com", 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, domain.AuditLogout, entries[0].Action)
	require.Equal(t, domain.AuditLogin, entries[1].Action)

	entries, err = st.AuditLog().ListAuditEntriesByEmail(ctx, "nobody@example.com", 10)
	require.NoError(t, err)
	require.Empty(t, entries)
}
