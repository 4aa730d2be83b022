package service

import (
	"context"
	"errors"
	"time"

	"github.com/lanternhq/lantern/internal/identity/domain"
	"github.com/lanternhq/lantern/internal/identity/store"
)

// ErrProfileUpdateTooSoon rejects a self-service profile update inside the
// one-calendar-month cooldown window.
var ErrProfileUpdateTooSoon = errors.New("profile_update_too_soon")

// ProfileService reads and mutates the self-serviceable account profile.
// Self updates are throttled to one per calendar month; admin updates are
// not and leave the owner's cooldown clock alone.
type ProfileService struct {
	Store store.Store
	Audit *AuditService

	Now func() time.Time
}

// ProfileUpdateParams carries the mutable profile fields. A nil Height
// clears the stored value.
type ProfileUpdateParams struct {
	Name   string
	Phone  string
	Gender string
	Height *float64
}

// Get returns the account behind an email.
func (s *ProfileService) Get(ctx context.Context, email string) (domain.Account, error) {
	account, err := s.Store.Accounts().GetAccountByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Account{}, ErrAccountNotFound
		}
		return domain.Account{}, err
	}
	return account, nil
}

// UpdateSelf applies a profile update on the caller's own account, subject
// to the cooldown. The cooldown clock restarts at the stored timestamp.
func (s *ProfileService) UpdateSelf(ctx context.Context, email string, p ProfileUpdateParams) (domain.Account, error) {
	now := s.now()

	account, err := s.Get(ctx, email)
	if err != nil {
		return domain.Account{}, err
	}

	if !account.CanUpdateProfile(now) {
		return domain.Account{}, ErrProfileUpdateTooSoon
	}

	account, err = s.apply(ctx, account, p, now)
	if err != nil {
		return domain.Account{}, err
	}

	if err := s.Audit.Record(ctx, account.Email, domain.AuditProfileUpdate, "profile updated"); err != nil {
		return domain.Account{}, err
	}
	return account, nil
}

// UpdateByAdmin applies a profile update on any account, bypassing the
// cooldown. The acting admin's email goes into the audit detail.
func (s *ProfileService) UpdateByAdmin(ctx context.Context, adminEmail, targetEmail string, p ProfileUpdateParams) (domain.Account, error) {
	now := s.now()

	account, err := s.Get(ctx, targetEmail)
	if err != nil {
		return domain.Account{}, err
	}

	account, err = s.apply(ctx, account, p, now)
	if err != nil {
		return domain.Account{}, err
	}

	if err := s.Audit.Record(ctx, account.Email, domain.AuditProfileUpdateByAdmin, "profile updated by "+normalizeEmail(adminEmail)); err != nil {
		return domain.Account{}, err
	}
	return account, nil
}

// ListAccounts returns every account, newest first, for the admin surface.
func (s *ProfileService) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	return s.Store.Accounts().ListAccounts(ctx)
}

func (s *ProfileService) apply(ctx context.Context, account domain.Account, p ProfileUpdateParams, now time.Time) (domain.Account, error) {
	update := store.ProfileUpdate{
		Name:      p.Name,
		Phone:     p.Phone,
		Gender:    p.Gender,
		Height:    p.Height,
		UpdatedAt: now,
	}
	if err := s.Store.Accounts().UpdateProfile(ctx, account.ID, update); err != nil {
		return domain.Account{}, err
	}

	account.Name = p.Name
	account.Phone = p.Phone
	account.Gender = p.Gender
	account.Height = p.Height
	account.LastProfileUpdate = &now
	account.UpdatedAt = now
	return account, nil
}

func (s *ProfileService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}
