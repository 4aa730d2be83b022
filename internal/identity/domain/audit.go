package domain

import "time"

// AuditAction enumerates the security events the audit trail records.
type AuditAction string

const (
	AuditRegister             AuditAction = "REGISTER"
	AuditLogin                AuditAction = "LOGIN"
	AuditLogout               AuditAction = "LOGOUT"
	AuditProfileUpdate        AuditAction = "PROFILE_UPDATE"
	AuditProfileUpdateByAdmin AuditAction = "PROFILE_UPDATE_BY_ADMIN"
)

// AuditEntry is an append-only record of a security-relevant event. The
// email is denormalized on purpose: entries must survive account deletion.
type AuditEntry struct {
	ID        string
	Email     string
	Action    AuditAction
	Detail    string
	CreatedAt time.Time
}
