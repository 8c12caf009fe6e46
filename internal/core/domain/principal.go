package domain

// RoleSet is a set of role names keyed for O(1) membership checks.
type RoleSet map[Role]struct{}

// Has reports whether the set contains the given role.
func (s RoleSet) Has(r Role) bool {
	_, ok := s[r]
	return ok
}

// IDSet is a set of tenant or shop ids.
type IDSet map[int64]struct{}

// Has reports whether the set contains the given id.
func (s IDSet) Has(id int64) bool {
	_, ok := s[id]
	return ok
}

// Principal is the fully resolved identity attached to one request: the
// system-admin flag, the tenants the user owns, and the user's tenant- and
// shop-level roles. It is built fresh by the resolver on every request,
// never persisted, and must not be mutated after construction.
type Principal struct {
	UserID        int64
	IsSystemAdmin bool

	// OwnedTenantIDs comes from Tenant.OwnerID, not from role rows.
	OwnedTenantIDs IDSet

	// TenantRoles holds roles from tenant-scoped assignments only.
	TenantRoles map[int64]RoleSet

	// ShopRoles holds roles from shop-scoped assignments only.
	ShopRoles map[int64]RoleSet

	// AccessibleTenantIDs = keys(TenantRoles) ∪ OwnedTenantIDs. Always a
	// superset of OwnedTenantIDs, even when no role row exists for an
	// owned tenant.
	AccessibleTenantIDs IDSet
}

// NewPrincipal assembles a principal from resolved parts and derives
// AccessibleTenantIDs. Assignment rows must already be partitioned; nil maps
// are normalized so every predicate is total.
func NewPrincipal(userID int64, isSystemAdmin bool, owned IDSet, tenantRoles, shopRoles map[int64]RoleSet) *Principal {
	if owned == nil {
		owned = IDSet{}
	}
	if tenantRoles == nil {
		tenantRoles = map[int64]RoleSet{}
	}
	if shopRoles == nil {
		shopRoles = map[int64]RoleSet{}
	}

	accessible := make(IDSet, len(tenantRoles)+len(owned))
	for t := range tenantRoles {
		accessible[t] = struct{}{}
	}
	for t := range owned {
		accessible[t] = struct{}{}
	}

	return &Principal{
		UserID:              userID,
		IsSystemAdmin:       isSystemAdmin,
		OwnedTenantIDs:      owned,
		TenantRoles:         tenantRoles,
		ShopRoles:           shopRoles,
		AccessibleTenantIDs: accessible,
	}
}

// IsTenantOwner reports whether the principal owns the tenant.
func (p *Principal) IsTenantOwner(tenantID int64) bool {
	return p.OwnedTenantIDs.Has(tenantID)
}

// IsTenantAdmin reports whether the principal holds an explicit tenantAdmin
// role on the tenant.
func (p *Principal) IsTenantAdmin(tenantID int64) bool {
	return p.TenantRoles[tenantID].Has(RoleTenantAdmin)
}

// HasTenantAccess reports whether the principal is owner or admin of the
// tenant. Ownership counts even with zero role rows for the tenant.
func (p *Principal) HasTenantAccess(tenantID int64) bool {
	return p.IsTenantOwner(tenantID) || p.IsTenantAdmin(tenantID)
}

// HasAdminAccess reports whether the principal is a system admin, or — when
// a tenant id is supplied — owner/admin of that tenant. Pass nil for a
// global-only check.
func (p *Principal) HasAdminAccess(tenantID *int64) bool {
	if p.IsSystemAdmin {
		return true
	}
	return tenantID != nil && p.HasTenantAccess(*tenantID)
}

// HasReadAccess reports whether the principal may read shop data. Tenant
// owner/admin access always suffices; otherwise a viewer or editor role on
// the shop itself is required.
func (p *Principal) HasReadAccess(shopID, tenantID int64) bool {
	if p.IsSystemAdmin || p.HasTenantAccess(tenantID) {
		return true
	}
	roles := p.ShopRoles[shopID]
	return roles.Has(RoleViewer) || roles.Has(RoleEditor)
}

// HasWriteAccess reports whether the principal may mutate shop data. Tenant
// owner/admin access always suffices; otherwise an editor role on the shop
// itself is required.
func (p *Principal) HasWriteAccess(shopID, tenantID int64) bool {
	if p.IsSystemAdmin || p.HasTenantAccess(tenantID) {
		return true
	}
	return p.ShopRoles[shopID].Has(RoleEditor)
}
