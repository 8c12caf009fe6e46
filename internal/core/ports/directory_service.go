package ports

import (
	"context"

	"github.com/planventa/planning-system/internal/core/domain"
)

// DirectoryService owns the tenant/shop/role surface. Every method takes the
// caller's resolved principal and enforces the matching access rule before
// touching storage; handlers stay thin.
type DirectoryService interface {
	CreateTenant(ctx context.Context, p *domain.Principal, name string, ownerID int64) (*domain.Tenant, error)
	GetTenant(ctx context.Context, p *domain.Principal, tenantID int64) (*domain.Tenant, error)
	ListAccessibleTenants(ctx context.Context, p *domain.Principal) ([]domain.Tenant, error)

	CreateShop(ctx context.Context, p *domain.Principal, tenantID int64, name string) (*domain.Shop, error)
	GetShop(ctx context.Context, p *domain.Principal, shopID int64) (*domain.Shop, error)

	GrantRole(ctx context.Context, p *domain.Principal, assignment domain.RoleAssignment) error
	RevokeRole(ctx context.Context, p *domain.Principal, assignment domain.RoleAssignment) error

	UpsertPlanEntry(ctx context.Context, p *domain.Principal, entry *domain.PlanEntry) error
	ListPlanEntries(ctx context.Context, p *domain.Principal, shopID int64) ([]domain.PlanEntry, error)
}
