package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/lanternhq/lantern/internal/identity/domain"
	"github.com/lanternhq/lantern/internal/identity/store"
	"github.com/lanternhq/lantern/pkg/cryptox"
	"github.com/lanternhq/lantern/pkg/idx"
)

// BootstrapService seeds the initial admin account at startup so a fresh
// deployment is administrable without a manual database edit. The seeded
// account is created enabled, skipping email verification.
type BootstrapService struct {
	Store  store.Store
	Logger *slog.Logger

	// AdminEmail and AdminName configure the seed account. An empty email
	// disables bootstrapping entirely.
	AdminEmail string
	AdminName  string

	// AdminPassword, when empty, is generated and logged exactly once.
	AdminPassword string

	Now func() time.Time
}

// EnsureAdmin creates the configured admin account if it does not exist
// yet. Idempotent: an existing account (admin or not) is left untouched.
func (s *BootstrapService) EnsureAdmin(ctx context.Context) error {
	if s.AdminEmail == "" {
		return nil
	}
	now := s.now()
	email := normalizeEmail(s.AdminEmail)

	_, err := s.Store.Accounts().GetAccountByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return err
	}

	password := s.AdminPassword
	generated := false
	if password == "" {
		password, err = cryptox.GeneratePassword()
		if err != nil {
			return err
		}
		generated = true
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return err
	}

	account := domain.Account{
		ID:           idx.New().String(),
		Email:        email,
		Name:         s.AdminName,
		PasswordHash: hash,
		Enabled:      true,
		Roles:        []string{domain.RoleAdmin, domain.RoleUser},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.Store.Accounts().CreateAccount(ctx, account); err != nil {
		// Lost a race against a concurrent registration; that account wins.
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil
		}
		return err
	}

	if generated {
		// The only place the generated password ever appears. Change it
		// after first login.
		s.Logger.Warn("bootstrap admin created with generated password",
			"email", email,
			"password", password,
		)
	} else {
		s.Logger.Info("bootstrap admin created", "email", email)
	}
	return nil
}

func (s *BootstrapService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}
