package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lanternhq/lantern/internal/identity/domain"
	"github.com/lanternhq/lantern/internal/identity/revocation"
	"github.com/lanternhq/lantern/internal/identity/store"
	"github.com/lanternhq/lantern/pkg/cryptox"
	"github.com/lanternhq/lantern/pkg/idx"
	"github.com/lanternhq/lantern/pkg/jwtx"
	"github.com/lanternhq/lantern/pkg/slogx"
)

var (
	// ErrInvalidCredentials covers unknown email, wrong password and
	// unverified accounts alike, so login never leaks which one it was.
	ErrInvalidCredentials = errors.New("invalid_credentials")

	ErrInvalidRefreshToken = errors.New("invalid_refresh_token")
	ErrRefreshTokenExpired = errors.New("refresh_token_expired")

	// ErrInvalidAccessToken rejects a logout whose access token does not
	// verify. Logout is fail-closed: a token we cannot decode cannot be
	// blacklisted, so the whole operation is refused.
	ErrInvalidAccessToken = errors.New("invalid_access_token")
)

// SessionService issues and retires session credentials: the signed
// short-lived access token and the opaque stored refresh token.
type SessionService struct {
	Store     store.Store
	Signer    *jwtx.Signer
	Verifier  *jwtx.Verifier
	Blacklist *revocation.Registry
	Audit     *AuditService

	Issuer     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration

	// Now is the clock for token lifetimes, swappable in tests.
	Now func() time.Time
}

// Login checks credentials and mints a fresh token pair. Any existing
// refresh token for the account is replaced: one live session per account.
func (s *SessionService) Login(ctx context.Context, email, password string) (domain.TokenPair, error) {
	log := slogx.FromContext(ctx)
	now := s.now()
	email = normalizeEmail(email)

	account, err := s.Store.Accounts().GetAccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.TokenPair{}, ErrInvalidCredentials
		}
		return domain.TokenPair{}, err
	}

	if err := cryptox.VerifyPassword(password, account.PasswordHash); err != nil {
		log.Info("login rejected", "email", email)
		return domain.TokenPair{}, ErrInvalidCredentials
	}

	if !account.Enabled {
		log.Info("login rejected for unverified account", "email", email)
		return domain.TokenPair{}, ErrInvalidCredentials
	}

	accessToken, err := s.signAccess(account, now)
	if err != nil {
		return domain.TokenPair{}, err
	}

	refreshOpaque, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return domain.TokenPair{}, err
	}

	refresh := domain.RefreshToken{
		ID:        idx.New().String(),
		AccountID: account.ID,
		TokenHash: cryptox.FingerprintToken(refreshOpaque),
		ExpiresAt: now.Add(s.refreshTTL()),
		CreatedAt: now,
	}

	// Replace-then-insert in one transaction so the unique account_id
	// index never sees two live tokens for the account.
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.RefreshTokens().DeleteRefreshTokensByAccount(ctx, account.ID); err != nil {
			return err
		}
		return tx.RefreshTokens().CreateRefreshToken(ctx, refresh)
	})
	if err != nil {
		return domain.TokenPair{}, err
	}

	if err := s.Audit.Record(ctx, email, domain.AuditLogin, "logged in"); err != nil {
		return domain.TokenPair{}, err
	}

	return domain.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshOpaque,
		TokenType:    "Bearer",
		ExpiresIn:    s.accessTTL(),
	}, nil
}

// Refresh validates a stored refresh token and mints a new access token
// for the account's current roles. The refresh token itself is not
// rotated, only re-validated; an expired one is deleted on use and the
// caller must log in again.
func (s *SessionService) Refresh(ctx context.Context, refreshOpaque string) (domain.TokenPair, error) {
	now := s.now()

	fp := cryptox.FingerprintToken(refreshOpaque)
	rt, err := s.Store.RefreshTokens().GetRefreshTokenByHash(ctx, fp)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.TokenPair{}, ErrInvalidRefreshToken
		}
		return domain.TokenPair{}, err
	}

	if rt.Expired(now) {
		if err := s.Store.RefreshTokens().DeleteRefreshTokenByHash(ctx, fp); err != nil {
			return domain.TokenPair{}, err
		}
		return domain.TokenPair{}, ErrRefreshTokenExpired
	}

	account, err := s.Store.Accounts().GetAccountByID(ctx, rt.AccountID)
	if err != nil {
		return domain.TokenPair{}, err
	}

	accessToken, err := s.signAccess(account, now)
	if err != nil {
		return domain.TokenPair{}, err
	}

	return domain.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshOpaque,
		TokenType:    "Bearer",
		ExpiresIn:    s.accessTTL(),
	}, nil
}

// Logout retires a session: the refresh token row is deleted and the
// presented access token is blacklisted until its natural expiry. The
// access token must verify (fail-closed) because its expiry drives the
// blacklist entry.
func (s *SessionService) Logout(ctx context.Context, refreshOpaque, accessToken string) error {
	fp := cryptox.FingerprintToken(refreshOpaque)
	rt, err := s.Store.RefreshTokens().GetRefreshTokenByHash(ctx, fp)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrInvalidRefreshToken
		}
		return err
	}

	claims, err := s.Verifier.Verify(accessToken)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidAccessToken, err)
	}

	account, err := s.Store.Accounts().GetAccountByID(ctx, rt.AccountID)
	if err != nil {
		return err
	}

	if err := s.Audit.Record(ctx, account.Email, domain.AuditLogout, "logged out"); err != nil {
		return err
	}

	if err := s.Store.RefreshTokens().DeleteRefreshTokenByHash(ctx, fp); err != nil {
		return err
	}

	s.Blacklist.Revoke(accessToken, claims.ExpiresAt.Time)
	return nil
}

func (s *SessionService) signAccess(account domain.Account, now time.Time) (string, error) {
	claims := jwtx.NewAccessClaims(account.Email, account.Roles, s.accessTTL(), s.Issuer, now)
	return s.Signer.Sign(claims)
}

func (s *SessionService) accessTTL() time.Duration {
	if s.AccessTTL > 0 {
		return s.AccessTTL
	}
	return jwtx.DefaultAccessTokenTTL
}

func (s *SessionService) refreshTTL() time.Duration {
	if s.RefreshTTL > 0 {
		return s.RefreshTTL
	}
	return jwtx.DefaultRefreshTokenTTL
}

func (s *SessionService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}
