package service

import (
	"context"
	"testing"
	"time"

	"github.com/lanternhq/lantern/internal/identity/domain"
	"github.com/lanternhq/lantern/internal/identity/store"
	"github.com/stretchr/testify/require"
)

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.reg.Register(ctx, RegisterParams{
		Email:    "alice@example.com",
		Password: "correct horse battery staple",
		Name:     "Alice",
	}))

	err := env.reg.Register(ctx, RegisterParams{
		Email:    "alice@example.com",
		Password: "another password",
		Name:     "Imposter",
	})
	require.ErrorIs(t, err, ErrDuplicateAccount)

	// Case-insensitive: the same address with different casing is the same
	// account.
	err = env.reg.Register(ctx, RegisterParams{
		Email:    "Alice@Example.COM",
		Password: "another password",
		Name:     "Imposter",
	})
	require.ErrorIs(t, err, ErrDuplicateAccount)
}

func TestRegisterAssignsRolesByPolicy(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.reg.Register(ctx, RegisterParams{
		Email:    "root@example.com",
		Password: "admin password here",
		Name:     "Root",
	}))
	require.NoError(t, env.reg.Register(ctx, RegisterParams{
		Email:    "bob@example.com",
		Password: "user password here",
		Name:     "Bob",
	}))

	admin, err := env.store.Accounts().GetAccountByEmail(ctx, "root@example.com")
	require.NoError(t, err)
	require.True(t, admin.HasRole(domain.RoleAdmin))
	require.True(t, admin.HasRole(domain.RoleUser))
	require.False(t, admin.Enabled)

	user, err := env.store.Accounts().GetAccountByEmail(ctx, "bob@example.com")
	require.NoError(t, err)
	require.False(t, user.HasRole(domain.RoleAdmin))
	require.True(t, user.HasRole(domain.RoleUser))
}

func TestVerifyEmailEnablesAccountAndConsumesToken(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.reg.Register(ctx, RegisterParams{
		Email:    "alice@example.com",
		Password: "correct horse battery staple",
		Name:     "Alice",
	}))
	token := env.waitForEmail(t, "alice@example.com")

	// Unverified accounts cannot log in.
	_, err := env.sessions.Login(ctx, "alice@example.com", "correct horse battery staple")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	require.NoError(t, env.reg.VerifyEmail(ctx, token))

	account, err := env.store.Accounts().GetAccountByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	require.True(t, account.Enabled)

	// Single use: presenting the consumed token again fails.
	require.ErrorIs(t, env.reg.VerifyEmail(ctx, token), ErrInvalidOrExpiredToken)

	_, err = env.sessions.Login(ctx, "alice@example.com", "correct horse battery staple")
	require.NoError(t, err)
}

func TestVerifyEmailRejectsExpiredToken(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.reg.Register(ctx, RegisterParams{
		Email:    "alice@example.com",
		Password: "correct horse battery staple",
		Name:     "Alice",
	}))
	token := env.waitForEmail(t, "alice@example.com")

	env.advance(DefaultVerificationTTL + time.Second)

	require.ErrorIs(t, env.reg.VerifyEmail(ctx, token), ErrInvalidOrExpiredToken)

	// Lazy expiry removed the row, so the failure mode is now "unknown token".
	_, err := env.store.VerificationTokens().GetVerificationToken(ctx, token)
	require.ErrorIs(t, err, store.ErrNotFound)

	account, err := env.store.Accounts().GetAccountByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	require.False(t, account.Enabled)
}

func TestVerifyEmailRejectsUnknownToken(t *testing.T) {
	env := newTestEnv(t)

	err := env.reg.VerifyEmail(context.Background(), "no-such-token")
	require.ErrorIs(t, err, ErrInvalidOrExpiredToken)
}

func TestResendVerificationThrottle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.reg.Register(ctx, RegisterParams{
		Email:    "alice@example.com",
		Password: "correct horse battery staple",
		Name:     "Alice",
	}))
	first := env.waitForEmail(t, "alice@example.com")

	// Inside the cooldown window nothing is re-sent and the stored token is
	// untouched.
	require.ErrorIs(t, env.reg.ResendVerification(ctx, "alice@example.com"), ErrResendTooSoon)
	require.Equal(t, 1, env.mailer.count())

	env.advance(DefaultResendCooldown + time.Second)

	require.NoError(t, env.reg.ResendVerification(ctx, "alice@example.com"))

	deadline := time.Now().Add(2 * time.Second)
	for env.mailer.count() < 2 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	require.Equal(t, 2, env.mailer.count())

	// Same token string, refreshed expiry.
	second := env.waitForEmail(t, "alice@example.com")
	require.Equal(t, first, second)
	require.NoError(t, env.reg.VerifyEmail(ctx, second))
}

func TestResendVerificationAfterTokenExpiry(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.reg.Register(ctx, RegisterParams{
		Email:    "alice@example.com",
		Password: "correct horse battery staple",
		Name:     "Alice",
	}))
	first := env.waitForEmail(t, "alice@example.com")

	env.advance(DefaultVerificationTTL + time.Second)

	// The expired token is still on file, so resend refreshes it rather
	// than minting a new one, and the refreshed token verifies.
	require.NoError(t, env.reg.ResendVerification(ctx, "alice@example.com"))
	require.NoError(t, env.reg.VerifyEmail(ctx, first))
}

func TestResendVerificationEdgeCases(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	require.ErrorIs(t, env.reg.ResendVerification(ctx, "ghost@example.com"), ErrAccountNotFound)

	env.register(t, "alice@example.com", "correct horse battery staple")
	require.ErrorIs(t, env.reg.ResendVerification(ctx, "alice@example.com"), ErrAlreadyVerified)
}

func TestRegisterWritesAuditEntry(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.reg.Register(ctx, RegisterParams{
		Email:    "alice@example.com",
		Password: "correct horse battery staple",
		Name:     "Alice",
	}))

	entries, err := env.audit.ListByEmail(ctx, "alice@example.com", 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, domain.AuditRegister, entries[0].Action)
}
