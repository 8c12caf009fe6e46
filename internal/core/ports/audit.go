package ports

import "github.com/planventa/planning-system/internal/core/domain"

// AuditSink accepts authorization audit events. Record is fire-and-forget:
// it must not block the caller and must swallow delivery failures (they are
// logged by the sink, never surfaced to the request).
type AuditSink interface {
	Record(event domain.AuditEvent)
}
