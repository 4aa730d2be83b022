package sqlite

import (
	"context"

	"github.com/lanternhq/lantern/internal/identity/domain"
)

type auditLogRepo struct {
	db dbtx
}

func (r *auditLogRepo) AppendAuditEntry(ctx context.Context, e domain.AuditEntry) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO audit_log (id, email, action, detail, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		e.ID, e.Email, string(e.Action), e.Detail, e.CreatedAt)
	return err
}

func (r *auditLogRepo) ListAuditEntriesByEmail(ctx context.Context, email string, limit int) ([]domain.AuditEntry, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, email, action, detail, created_at
		FROM audit_log WHERE email = ?
		ORDER BY created_at DESC LIMIT ?`, email, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.AuditEntry
	for rows.Next() {
		var e domain.AuditEntry
		var action string
		if err := rows.Scan(&e.ID, &e.Email, &action, &e.Detail, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.Action = domain.AuditAction(action)
		out = append(out, e)
	}
	return out, rows.Err()
}
