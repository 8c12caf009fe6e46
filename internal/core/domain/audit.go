package domain

import "time"

// AuditAction classifies an entry in the authorization audit trail.
type AuditAction string

const (
	AuditAuthFailed   AuditAction = "auth_failed"
	AuditAccessDenied AuditAction = "access_denied"
	AuditKeyMinted    AuditAction = "key_minted"
	AuditKeyRevoked   AuditAction = "key_revoked"
	AuditRoleGranted  AuditAction = "role_granted"
	AuditRoleRevoked  AuditAction = "role_revoked"
)

// AuditEvent is one record of an authorization-relevant decision. Events are
// written asynchronously and never block the request that produced them.
type AuditEvent struct {
	Action   AuditAction
	UserID   int64 // zero when the actor never authenticated
	TenantID int64 // zero when not tenant-scoped
	ShopID   int64 // zero when not shop-scoped
	Detail   string
	At       time.Time
}
