package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lanternhq/lantern/internal/identity/domain"
	"github.com/lanternhq/lantern/internal/identity/mail"
	"github.com/lanternhq/lantern/internal/identity/store"
	"github.com/lanternhq/lantern/pkg/cryptox"
	"github.com/lanternhq/lantern/pkg/idx"
	"github.com/lanternhq/lantern/pkg/slogx"
)

// Default lifetimes for the email confirmation flow.
const (
	DefaultVerificationTTL = 15 * time.Minute
	DefaultResendCooldown  = 5 * time.Minute
)

var (
	ErrDuplicateAccount      = errors.New("duplicate_account")
	ErrAccountNotFound       = errors.New("account_not_found")
	ErrInvalidOrExpiredToken = errors.New("invalid_or_expired_token")
	ErrAlreadyVerified       = errors.New("already_verified")
	ErrResendTooSoon         = errors.New("resend_too_soon")
)

// RegistrationService owns account creation and the email confirmation
// lifecycle. Accounts start disabled and only verification enables them.
type RegistrationService struct {
	Store  store.Store
	Mailer mail.Mailer
	Audit  *AuditService

	// AdminEmails is the injected role policy: addresses in this set get
	// the admin role at registration, everyone else gets the plain user
	// role. The role set is fixed afterwards.
	AdminEmails map[string]struct{}

	VerificationTTL time.Duration
	ResendCooldown  time.Duration

	// Now is the clock for expiry and throttle decisions, swappable in tests.
	Now func() time.Time
}

// RegisterParams carries everything a new registration needs. Optional
// profile attributes may be zero.
type RegisterParams struct {
	Email    string
	Password string
	Name     string
	Gender   string
	Phone    string

	DateOfBirth *time.Time
	Height      *float64
}

// Register creates a disabled account, mints its verification token and
// dispatches the confirmation email. The email is fire-and-forget: a
// dispatch failure is logged but never fails the registration, resending
// is the recovery path.
func (s *RegistrationService) Register(ctx context.Context, p RegisterParams) error {
	log := slogx.FromContext(ctx)
	now := s.now()
	email := normalizeEmail(p.Email)

	hash, err := cryptox.HashPassword(p.Password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	account := domain.Account{
		ID:           idx.New().String(),
		Email:        email,
		Name:         p.Name,
		PasswordHash: hash,
		Enabled:      false,
		Roles:        s.rolesFor(email),
		Gender:       p.Gender,
		Phone:        p.Phone,
		DateOfBirth:  p.DateOfBirth,
		Height:       p.Height,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	token := domain.VerificationToken{
		ID:        idx.New().String(),
		AccountID: account.ID,
		Token:     uuid.NewString(),
		ExpiresAt: now.Add(s.verificationTTL()),
		SentAt:    now,
		CreatedAt: now,
	}

	// Account and token are inserted together; the unique email index is
	// the final arbiter of duplicates even under concurrent registration.
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Accounts().CreateAccount(ctx, account); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return ErrDuplicateAccount
			}
			return err
		}
		return tx.VerificationTokens().CreateVerificationToken(ctx, token)
	})
	if err != nil {
		return err
	}

	if err := s.Audit.Record(ctx, email, domain.AuditRegister, "account registered"); err != nil {
		return err
	}

	s.dispatchEmail(ctx, account.Email, account.Name, token.Token)
	log.Info("account registered", "email", email, "roles", account.Roles)
	return nil
}

// VerifyEmail consumes a verification token and enables its account. The
// token is single use: success deletes it, and presenting an expired token
// deletes it too (lazy expiry) while still reporting failure.
func (s *RegistrationService) VerifyEmail(ctx context.Context, token string) error {
	now := s.now()

	vt, err := s.Store.VerificationTokens().GetVerificationToken(ctx, strings.TrimSpace(token))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrInvalidOrExpiredToken
		}
		return err
	}

	if vt.Expired(now) {
		_ = s.Store.VerificationTokens().DeleteVerificationToken(ctx, vt.ID)
		return ErrInvalidOrExpiredToken
	}

	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Accounts().SetEnabled(ctx, vt.AccountID, true); err != nil {
			return err
		}
		return tx.VerificationTokens().DeleteVerificationToken(ctx, vt.ID)
	})
}

// ResendVerification re-issues the confirmation email for an unverified
// account. Throttled: a token sent within the cooldown window is left
// untouched and the call fails.
func (s *RegistrationService) ResendVerification(ctx context.Context, email string) error {
	now := s.now()
	email = normalizeEmail(email)

	account, err := s.Store.Accounts().GetAccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrAccountNotFound
		}
		return err
	}
	if account.Enabled {
		return ErrAlreadyVerified
	}

	vt, err := s.Store.VerificationTokens().GetVerificationTokenByAccount(ctx, account.ID)
	switch {
	case err == nil:
		if vt.SentAt.After(now.Add(-s.resendCooldown())) {
			return ErrResendTooSoon
		}
		if err := s.Store.VerificationTokens().UpdateVerificationToken(ctx, vt.ID, now.Add(s.verificationTTL()), now); err != nil {
			return err
		}
	case errors.Is(err, store.ErrNotFound):
		vt = domain.VerificationToken{
			ID:        idx.New().String(),
			AccountID: account.ID,
			Token:     uuid.NewString(),
			ExpiresAt: now.Add(s.verificationTTL()),
			SentAt:    now,
			CreatedAt: now,
		}
		if err := s.Store.VerificationTokens().CreateVerificationToken(ctx, vt); err != nil {
			return err
		}
	default:
		return err
	}

	s.dispatchEmail(ctx, account.Email, account.Name, vt.Token)
	return nil
}

// dispatchEmail hands the verification email to the mailer without tying
// its fate to the caller: the goroutine gets a detached context and any
// error only reaches the log.
func (s *RegistrationService) dispatchEmail(ctx context.Context, to, name, token string) {
	log := slogx.FromContext(ctx)
	go func() {
		if err := s.Mailer.SendVerificationEmail(context.WithoutCancel(ctx), to, name, token); err != nil {
			log.Error("verification email dispatch failed", "email", to, "err", err)
		}
	}()
}

func (s *RegistrationService) rolesFor(email string) []string {
	if _, ok := s.AdminEmails[email]; ok {
		return []string{domain.RoleAdmin, domain.RoleUser}
	}
	return []string{domain.RoleUser}
}

func (s *RegistrationService) verificationTTL() time.Duration {
	if s.VerificationTTL > 0 {
		return s.VerificationTTL
	}
	return DefaultVerificationTTL
}

func (s *RegistrationService) resendCooldown() time.Duration {
	if s.ResendCooldown > 0 {
		return s.ResendCooldown
	}
	return DefaultResendCooldown
}

func (s *RegistrationService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
