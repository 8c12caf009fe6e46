package ports

import (
	"context"

	"github.com/planventa/planning-system/internal/core/domain"
)

// RoleAssignmentStore reads and mutates raw role-assignment rows. The store
// guarantees that a shop-scoped row's shop belongs to any tenant id the row
// also carries; the resolver does not re-check that.
type RoleAssignmentStore interface {
	ListByUser(ctx context.Context, userID int64) ([]domain.RoleAssignment, error)
	Grant(ctx context.Context, assignment domain.RoleAssignment) error
	Revoke(ctx context.Context, assignment domain.RoleAssignment) error
}
