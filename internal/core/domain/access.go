package domain

// Validating counterparts of the access predicates. Each one applies the
// tenant membership guard first: a principal with no relationship to the
// tenant at all is denied before any role check runs, so a missing guard in
// a predicate can never widen access here.

const (
	reasonNoTenantRelationship = "No relationship with this tenant"
	reasonTenantAdminRequired  = "Tenant owner or admin access required"
	reasonReadRoleRequired     = "Viewer or editor role required for this shop"
	reasonWriteRoleRequired    = "Editor role required for this shop"
)

// ValidateTenantAdminAccess denies unless the principal is owner or admin of
// the tenant.
func (p *Principal) ValidateTenantAdminAccess(tenantID int64) error {
	if !p.AccessibleTenantIDs.Has(tenantID) {
		return &AccessDeniedError{Reason: reasonNoTenantRelationship}
	}
	if !p.HasTenantAccess(tenantID) {
		return &AccessDeniedError{Reason: reasonTenantAdminRequired}
	}
	return nil
}

// ValidateReadAccess denies unless the principal may read the shop's data.
func (p *Principal) ValidateReadAccess(shopID, tenantID int64) error {
	if err := p.validateShopScope(shopID, tenantID); err != nil {
		return err
	}
	if !p.HasReadAccess(shopID, tenantID) {
		return &AccessDeniedError{Reason: reasonReadRoleRequired}
	}
	return nil
}

// ValidateWriteAccess denies unless the principal may mutate the shop's data.
func (p *Principal) ValidateWriteAccess(shopID, tenantID int64) error {
	if err := p.validateShopScope(shopID, tenantID); err != nil {
		return err
	}
	if !p.HasWriteAccess(shopID, tenantID) {
		return &AccessDeniedError{Reason: reasonWriteRoleRequired}
	}
	return nil
}

// validateShopScope is the membership guard for shop-level checks: the
// principal must reach the shop either through its tenant or through a
// shop-scoped role row.
func (p *Principal) validateShopScope(shopID, tenantID int64) error {
	if p.AccessibleTenantIDs.Has(tenantID) {
		return nil
	}
	if _, ok := p.ShopRoles[shopID]; ok {
		return nil
	}
	return &AccessDeniedError{Reason: reasonNoTenantRelationship}
}
