package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/planventa/planning-system/internal/core/domain"
	"github.com/planventa/planning-system/internal/core/ports"
)

// DirectoryService owns the tenant/shop/role/plan operations. Every method
// validates the caller's access before touching storage and records denied
// or privileged actions on the audit trail.
type DirectoryService struct {
	tenants ports.TenantStore
	shops   ports.ShopStore
	roles   ports.RoleAssignmentStore
	plans   ports.PlanStore
	audit   ports.AuditSink
	now     func() time.Time
}

func NewDirectoryService(tenants ports.TenantStore, shops ports.ShopStore, roles ports.RoleAssignmentStore, plans ports.PlanStore, audit ports.AuditSink) *DirectoryService {
	return &DirectoryService{
		tenants: tenants,
		shops:   shops,
		roles:   roles,
		plans:   plans,
		audit:   audit,
		now:     time.Now,
	}
}

// CreateTenant is restricted to system admins; tenant provisioning is a
// platform operation, not something tenant admins do.
func (s *DirectoryService) CreateTenant(ctx context.Context, p *domain.Principal, name string, ownerID int64) (*domain.Tenant, error) {
	if !p.IsSystemAdmin {
		return nil, s.denied(p, 0, 0, "System admin access required")
	}
	now := s.now().UTC()
	return s.tenants.Insert(ctx, &domain.Tenant{
		Name:      name,
		OwnerID:   ownerID,
		CreatedAt: now,
		UpdatedAt: now,
	})
}

func (s *DirectoryService) GetTenant(ctx context.Context, p *domain.Principal, tenantID int64) (*domain.Tenant, error) {
	if err := p.ValidateTenantAdminAccess(tenantID); err != nil {
		return nil, s.deniedErr(p, tenantID, 0, err)
	}
	return s.tenants.FindByID(ctx, tenantID)
}

// ListAccessibleTenants returns the tenants in the principal's membership
// set, in stable id order.
func (s *DirectoryService) ListAccessibleTenants(ctx context.Context, p *domain.Principal) ([]domain.Tenant, error) {
	ids := make([]int64, 0, len(p.AccessibleTenantIDs))
	for id := range p.AccessibleTenantIDs {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	if len(ids) == 0 {
		return []domain.Tenant{}, nil
	}
	return s.tenants.FindByIDs(ctx, ids)
}

func (s *DirectoryService) CreateShop(ctx context.Context, p *domain.Principal, tenantID int64, name string) (*domain.Shop, error) {
	if err := p.ValidateTenantAdminAccess(tenantID); err != nil {
		return nil, s.deniedErr(p, tenantID, 0, err)
	}
	now := s.now().UTC()
	return s.shops.Insert(ctx, &domain.Shop{
		TenantID:  tenantID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	})
}

func (s *DirectoryService) GetShop(ctx context.Context, p *domain.Principal, shopID int64) (*domain.Shop, error) {
	shop, err := s.shops.FindByID(ctx, shopID)
	if err != nil {
		return nil, err
	}
	if err := p.ValidateReadAccess(shop.ID, shop.TenantID); err != nil {
		return nil, s.deniedErr(p, shop.TenantID, shopID, err)
	}
	return shop, nil
}

// GrantRole adds a role row. Granting requires tenant admin access on the
// assignment's tenant; shop-scoped grants resolve the tenant through the
// shop when the row does not carry one.
func (s *DirectoryService) GrantRole(ctx context.Context, p *domain.Principal, assignment domain.RoleAssignment) error {
	tenantID, err := s.assignmentTenant(ctx, assignment)
	if err != nil {
		return err
	}
	if err := p.ValidateTenantAdminAccess(tenantID); err != nil {
		return s.deniedErr(p, tenantID, 0, err)
	}
	if err := s.roles.Grant(ctx, assignment); err != nil {
		return fmt.Errorf("grant role: %w", err)
	}
	s.audit.Record(domain.AuditEvent{
		Action:   domain.AuditRoleGranted,
		UserID:   p.UserID,
		TenantID: tenantID,
		Detail:   string(assignment.Role),
		At:       s.now().UTC(),
	})
	return nil
}

func (s *DirectoryService) RevokeRole(ctx context.Context, p *domain.Principal, assignment domain.RoleAssignment) error {
	tenantID, err := s.assignmentTenant(ctx, assignment)
	if err != nil {
		return err
	}
	if err := p.ValidateTenantAdminAccess(tenantID); err != nil {
		return s.deniedErr(p, tenantID, 0, err)
	}
	if err := s.roles.Revoke(ctx, assignment); err != nil {
		return fmt.Errorf("revoke role: %w", err)
	}
	s.audit.Record(domain.AuditEvent{
		Action:   domain.AuditRoleRevoked,
		UserID:   p.UserID,
		TenantID: tenantID,
		Detail:   string(assignment.Role),
		At:       s.now().UTC(),
	})
	return nil
}

func (s *DirectoryService) UpsertPlanEntry(ctx context.Context, p *domain.Principal, entry *domain.PlanEntry) error {
	shop, err := s.shops.FindByID(ctx, entry.ShopID)
	if err != nil {
		return err
	}
	if err := p.ValidateWriteAccess(shop.ID, shop.TenantID); err != nil {
		return s.deniedErr(p, shop.TenantID, shop.ID, err)
	}
	entry.UpdatedBy = p.UserID
	entry.UpdatedAt = s.now().UTC()
	return s.plans.Upsert(ctx, entry)
}

func (s *DirectoryService) ListPlanEntries(ctx context.Context, p *domain.Principal, shopID int64) ([]domain.PlanEntry, error) {
	shop, err := s.shops.FindByID(ctx, shopID)
	if err != nil {
		return nil, err
	}
	if err := p.ValidateReadAccess(shop.ID, shop.TenantID); err != nil {
		return nil, s.deniedErr(p, shop.TenantID, shop.ID, err)
	}
	return s.plans.ListByShop(ctx, shopID)
}

// assignmentTenant determines which tenant an assignment is scoped under. A
// global grant has no tenant and cannot be created through this surface.
func (s *DirectoryService) assignmentTenant(ctx context.Context, a domain.RoleAssignment) (int64, error) {
	switch a.Scope() {
	case domain.ScopeTenant:
		return *a.TenantID, nil
	case domain.ScopeShop:
		if a.TenantID != nil {
			return *a.TenantID, nil
		}
		shop, err := s.shops.FindByID(ctx, *a.ShopID)
		if err != nil {
			return 0, err
		}
		return shop.TenantID, nil
	default:
		return 0, &domain.AccessDeniedError{Reason: "Global roles cannot be granted through this endpoint"}
	}
}

func (s *DirectoryService) denied(p *domain.Principal, tenantID, shopID int64, reason string) error {
	return s.deniedErr(p, tenantID, shopID, &domain.AccessDeniedError{Reason: reason})
}

// deniedErr records the denial on the audit trail and returns the error
// unchanged so the handler layer can render it.
func (s *DirectoryService) deniedErr(p *domain.Principal, tenantID, shopID int64, err error) error {
	if errors.Is(err, domain.ErrAccessDenied) {
		s.audit.Record(domain.AuditEvent{
			Action:   domain.AuditAccessDenied,
			UserID:   p.UserID,
			TenantID: tenantID,
			ShopID:   shopID,
			Detail:   err.Error(),
			At:       s.now().UTC(),
		})
	}
	return err
}
