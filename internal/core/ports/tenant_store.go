package ports

import (
	"context"

	"github.com/planventa/planning-system/internal/core/domain"
)

// TenantStore persists tenants. Ownership lives on the tenant record itself,
// so the owned-tenant lookup used by the resolver is served here rather than
// by the role store.
type TenantStore interface {
	ListOwnedTenantIDs(ctx context.Context, userID int64) ([]int64, error)
	FindByID(ctx context.Context, tenantID int64) (*domain.Tenant, error)
	FindByIDs(ctx context.Context, tenantIDs []int64) ([]domain.Tenant, error)
	Insert(ctx context.Context, tenant *domain.Tenant) (*domain.Tenant, error)
}

// ShopStore persists shops.
type ShopStore interface {
	FindByID(ctx context.Context, shopID int64) (*domain.Shop, error)
	Insert(ctx context.Context, shop *domain.Shop) (*domain.Shop, error)
}
