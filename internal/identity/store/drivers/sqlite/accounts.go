package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/lanternhq/lantern/internal/identity/domain"
	"github.com/lanternhq/lantern/internal/identity/store"
)

type accountsRepo struct {
	db dbtx
}

const accountColumns = `id, email, name, password_hash, enabled, roles,
	gender, phone, date_of_birth, height, last_profile_update, created_at, updated_at`

func (r *accountsRepo) GetAccountByID(ctx context.Context, id string) (domain.Account, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE id = ?`, id)
	return scanAccount(row)
}

func (r *accountsRepo) GetAccountByEmail(ctx context.Context, email string) (domain.Account, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE email = ?`, email)
	return scanAccount(row)
}

func (r *accountsRepo) CreateAccount(ctx context.Context, a domain.Account) error {
	now := time.Now().UTC()
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}
	if a.UpdatedAt.IsZero() {
		a.UpdatedAt = now
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO accounts (
			id, email, name, password_hash, enabled, roles,
			gender, phone, date_of_birth, height, last_profile_update,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.Email, a.Name, a.PasswordHash, a.Enabled, joinRoles(a.Roles),
		a.Gender, a.Phone, mapOptionalTime(a.DateOfBirth), mapOptionalFloat(a.Height),
		mapOptionalTime(a.LastProfileUpdate), a.CreatedAt, a.UpdatedAt,
	)
	return mapConstraint(err)
}

func (r *accountsRepo) SetEnabled(ctx context.Context, accountID string, enabled bool) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE accounts SET enabled = ?, updated_at = ? WHERE id = ?`,
		enabled, time.Now().UTC(), accountID)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *accountsRepo) UpdateProfile(ctx context.Context, accountID string, p store.ProfileUpdate) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE accounts
		SET name = ?, phone = ?, gender = ?, height = ?,
			last_profile_update = ?, updated_at = ?
		WHERE id = ?`,
		p.Name, p.Phone, p.Gender, mapOptionalFloat(p.Height),
		p.UpdatedAt, p.UpdatedAt, accountID)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *accountsRepo) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+accountColumns+` FROM accounts ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *accountsRepo) DeleteAccount(ctx context.Context, accountID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM accounts WHERE id = ?`, accountID)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanAccount(s scanner) (domain.Account, error) {
	var (
		a           domain.Account
		roles       string
		dob, lastUp sql.NullTime
		height      sql.NullFloat64
	)
	err := s.Scan(
		&a.ID, &a.Email, &a.Name, &a.PasswordHash, &a.Enabled, &roles,
		&a.Gender, &a.Phone, &dob, &height, &lastUp, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return domain.Account{}, mapNotFound(err)
	}

	a.Roles = splitRoles(roles)
	a.DateOfBirth = mapNullTimePtr(dob)
	a.Height = mapNullFloatPtr(height)
	a.LastProfileUpdate = mapNullTimePtr(lastUp)
	return a, nil
}

func requireRowAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
