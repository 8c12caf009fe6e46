package domain

import "time"

// Tenant is the top-level multi-tenancy boundary. Ownership is a plain
// foreign key on the tenant record, not a role assignment; the resolver
// folds it into the principal's owned-tenant set.
type Tenant struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	OwnerID   int64     `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Shop is a sales location nested under a tenant; the finest-grained scope
// for editor/viewer roles.
type Shop struct {
	ID        int64     `json:"id"`
	TenantID  int64     `json:"tenant_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
