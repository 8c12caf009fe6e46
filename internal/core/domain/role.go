package domain

// Role names the permission level granted by a role assignment. The four
// reserved names below are the only ones the access predicates understand;
// any other string is carried through the principal's role maps untouched so
// that new roles can be seeded administratively without a code change.
type Role string

const (
	RoleSystemAdmin Role = "systemAdmin" // global scope only
	RoleTenantAdmin Role = "tenantAdmin" // tenant scope
	RoleEditor      Role = "editor"      // shop scope
	RoleViewer      Role = "viewer"      // shop scope
)

// AssignmentScope classifies a role assignment by which scope ids it carries.
type AssignmentScope int

const (
	ScopeGlobal AssignmentScope = iota
	ScopeTenant
	ScopeShop
)

// RoleAssignment is one raw row from the role store: a role name granted to a
// user, optionally narrowed to a tenant or a single shop. A shop-scoped row
// may carry a denormalized tenant id for lookup; the shop id wins when both
// are present.
type RoleAssignment struct {
	UserID   int64
	Role     Role
	TenantID *int64
	ShopID   *int64
}

// Scope returns the shape of the assignment as defined by which ids are set.
func (a RoleAssignment) Scope() AssignmentScope {
	switch {
	case a.ShopID != nil:
		return ScopeShop
	case a.TenantID != nil:
		return ScopeTenant
	default:
		return ScopeGlobal
	}
}
