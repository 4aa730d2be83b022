package service

import (
	"context"
	"testing"
	"time"

	"github.com/lanternhq/lantern/internal/identity/domain"
	"github.com/stretchr/testify/require"
)

func TestUpdateSelfEnforcesMonthlyCooldown(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.register(t, "alice@example.com", "correct horse battery staple")

	height := 172.5
	updated, err := env.profiles.UpdateSelf(ctx, "alice@example.com", ProfileUpdateParams{
		Name:   "Alice Updated",
		Phone:  "+61400000000",
		Gender: "female",
		Height: &height,
	})
	require.NoError(t, err)
	require.Equal(t, "Alice Updated", updated.Name)
	require.NotNil(t, updated.LastProfileUpdate)

	// A second self-service update inside the calendar month is refused and
	// changes nothing.
	_, err = env.profiles.UpdateSelf(ctx, "alice@example.com", ProfileUpdateParams{Name: "Too Eager"})
	require.ErrorIs(t, err, ErrProfileUpdateTooSoon)

	account, err := env.profiles.Get(ctx, "alice@example.com")
	require.NoError(t, err)
	require.Equal(t, "Alice Updated", account.Name)

	// Still inside the window weeks later (shorter than any calendar month).
	env.advance(20 * 24 * time.Hour)
	_, err = env.profiles.UpdateSelf(ctx, "alice@example.com", ProfileUpdateParams{Name: "Still Too Eager"})
	require.ErrorIs(t, err, ErrProfileUpdateTooSoon)

	// Past one calendar month the update goes through and restarts the clock.
	env.advance(12 * 24 * time.Hour)
	updated, err = env.profiles.UpdateSelf(ctx, "alice@example.com", ProfileUpdateParams{Name: "Alice Again"})
	require.NoError(t, err)
	require.Equal(t, "Alice Again", updated.Name)

	_, err = env.profiles.UpdateSelf(ctx, "alice@example.com", ProfileUpdateParams{Name: "Nope"})
	require.ErrorIs(t, err, ErrProfileUpdateTooSoon)
}

func TestUpdateByAdminBypassesCooldown(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.register(t, "alice@example.com", "correct horse battery staple")

	_, err := env.profiles.UpdateSelf(ctx, "alice@example.com", ProfileUpdateParams{Name: "Alice Updated"})
	require.NoError(t, err)

	// The cooldown binds self-service only; an admin edits at will.
	updated, err := env.profiles.UpdateByAdmin(ctx, "root@example.com", "alice@example.com", ProfileUpdateParams{
		Name: "Admin Corrected",
	})
	require.NoError(t, err)
	require.Equal(t, "Admin Corrected", updated.Name)

	entries, err := env.audit.ListByEmail(ctx, "alice@example.com", 10)
	require.NoError(t, err)
	require.Equal(t, domain.AuditProfileUpdateByAdmin, entries[0].Action)
	require.Contains(t, entries[0].Detail, "root@example.com")
}

func TestProfileGetUnknownAccount(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.profiles.Get(context.Background(), "ghost@example.com")
	require.ErrorIs(t, err, ErrAccountNotFound)
}

func TestUpdateSelfWritesAuditEntry(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.register(t, "alice@example.com", "correct horse battery staple")

	_, err := env.profiles.UpdateSelf(ctx, "alice@example.com", ProfileUpdateParams{Name: "Alice Updated"})
	require.NoError(t, err)

	entries, err := env.audit.ListByEmail(ctx, "alice@example.com", 10)
	require.NoError(t, err)
	require.Equal(t, domain.AuditProfileUpdate, entries[0].Action)
}

func TestEnsureAdminBootstrapsOnce(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	boot := &BootstrapService{
		Store:         env.store,
		Logger:        testLogger(),
		AdminEmail:    "ops@example.com",
		AdminName:     "Ops",
		AdminPassword: "bootstrap password!",
		Now:           env.clock,
	}
	require.NoError(t, boot.EnsureAdmin(ctx))

	account, err := env.store.Accounts().GetAccountByEmail(ctx, "ops@example.com")
	require.NoError(t, err)
	require.True(t, account.Enabled)
	require.True(t, account.HasRole(domain.RoleAdmin))

	// Idempotent on restart.
	require.NoError(t, boot.EnsureAdmin(ctx))

	// The seeded account logs in without any verification step.
	_, err = env.sessions.Login(ctx, "ops@example.com", "bootstrap password!")
	require.NoError(t, err)
}

func TestEnsureAdminDisabledWithoutEmail(t *testing.T) {
	env := newTestEnv(t)

	boot := &BootstrapService{Store: env.store, Logger: testLogger(), Now: env.clock}
	require.NoError(t, boot.EnsureAdmin(context.Background()))

	accounts, err := env.profiles.ListAccounts(context.Background())
	require.NoError(t, err)
	require.Empty(t, accounts)
}
