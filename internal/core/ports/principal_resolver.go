package ports

import (
	"context"

	"github.com/planventa/planning-system/internal/core/domain"
)

// PrincipalResolver turns a presented credential into a fully resolved
// principal. ResolveSecret is the API-key path and fails with
// domain.ErrInvalidCredential for unknown or expired secrets. ResolveUser is
// the post-JWT path: the user id is already authenticated and only the role
// and ownership resolution runs.
//
// Resolution performs no writes and is safe to retry.
type PrincipalResolver interface {
	ResolveSecret(ctx context.Context, secret string) (*domain.Principal, error)
	ResolveUser(ctx context.Context, userID int64) (*domain.Principal, error)
}
