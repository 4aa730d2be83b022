package sqlite

import (
	"context"
	"time"

	"github.com/lanternhq/lantern/internal/identity/domain"
)

type verificationTokensRepo struct {
	db dbtx
}

const verificationTokenColumns = `id, account_id, token, expires_at, sent_at, created_at`

func (r *verificationTokensRepo) CreateVerificationToken(ctx context.Context, t domain.VerificationToken) error {
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO verification_tokens (id, account_id, token, expires_at, sent_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		t.ID, t.AccountID, t.Token, t.ExpiresAt, t.SentAt, t.CreatedAt)
	return mapConstraint(err)
}

func (r *verificationTokensRepo) GetVerificationToken(ctx context.Context, token string) (domain.VerificationToken, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+verificationTokenColumns+` FROM verification_tokens WHERE token = ?`, token)
	return scanVerificationToken(row)
}

func (r *verificationTokensRepo) GetVerificationTokenByAccount(ctx context.Context, accountID string) (domain.VerificationToken, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+verificationTokenColumns+` FROM verification_tokens WHERE account_id = ?`, accountID)
	return scanVerificationToken(row)
}

func (r *verificationTokensRepo) UpdateVerificationToken(ctx context.Context, id string, expiresAt, sentAt time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE verification_tokens SET expires_at = ?, sent_at = ? WHERE id = ?`,
		expiresAt, sentAt, id)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *verificationTokensRepo) DeleteVerificationToken(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM verification_tokens WHERE id = ?`, id)
	return err
}

func scanVerificationToken(s scanner) (domain.VerificationToken, error) {
	var t domain.VerificationToken
	err := s.Scan(&t.ID, &t.AccountID, &t.Token, &t.ExpiresAt, &t.SentAt, &t.CreatedAt)
	if err != nil {
		return domain.VerificationToken{}, mapNotFound(err)
	}
	return t, nil
}
