package service

import (
	"context"
	"errors"
	"time"

	"github.com/lanternhq/lantern/internal/identity/domain"
	"github.com/lanternhq/lantern/internal/identity/store"
	"github.com/lanternhq/lantern/pkg/idx"
)

var ErrEmptyAuditAction = errors.New("empty_audit_action")

// AuditService appends security events to the audit trail. Writes are
// synchronous and store errors propagate: a dropped audit entry is a
// security defect, not a cosmetic one. No other component ever reads the
// trail; the admin review endpoint is the only consumer.
type AuditService struct {
	Store store.Store

	// Now is the clock used for entry timestamps, swappable in tests.
	Now func() time.Time
}

// Record appends one entry. The action tag must be non-empty; everything
// else is taken as-is.
func (s *AuditService) Record(ctx context.Context, email string, action domain.AuditAction, detail string) error {
	if action == "" {
		return ErrEmptyAuditAction
	}

	return s.Store.AuditLog().AppendAuditEntry(ctx, domain.AuditEntry{
		ID:        idx.New().String(),
		Email:     email,
		Action:    action,
		Detail:    detail,
		CreatedAt: s.now(),
	})
}

// ListByEmail returns the newest entries for one account email.
func (s *AuditService) ListByEmail(ctx context.Context, email string, limit int) ([]domain.AuditEntry, error) {
	return s.Store.AuditLog().ListAuditEntriesByEmail(ctx, email, limit)
}

func (s *AuditService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}
